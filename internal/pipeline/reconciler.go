// Package pipeline mantém a visão kanban dos negócios consistente com a coleção
// remota, aplicando movimentos de forma otimista e ressincronizando em caso de falha.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vfg2006/cre-deals-api/internal/domain"
	"github.com/vfg2006/cre-deals-api/pkg/log"
)

// RemoteStore é a fonte de verdade dos negócios
type RemoteStore interface {
	// Update aplica uma atualização parcial; qualquer erro é tratado como falha da atualização
	Update(ctx context.Context, id string, patch domain.DealPatch) error
	// FetchAll carrega a coleção completa, sem cache
	FetchAll(ctx context.Context) ([]domain.Deal, error)
}

// Source publica a coleção de negócios sempre que ela muda
type Source interface {
	Subscribe(fn func([]domain.Deal)) func()
}

var ErrRemoteUpdateFailure = errors.New("remote update failed")

// RemoteUpdateError indica que a atualização remota de status falhou e o estado
// otimista foi descartado
type RemoteUpdateError struct {
	DealID string
	Err    error
}

func (e *RemoteUpdateError) Error() string {
	return fmt.Sprintf("%s: deal %s: %v", ErrRemoteUpdateFailure, e.DealID, e.Err)
}

func (e *RemoteUpdateError) Unwrap() error {
	return e.Err
}

func (e *RemoteUpdateError) Is(target error) bool {
	return target == ErrRemoteUpdateFailure
}

type Outcome string

const (
	// OutcomeNoop: nada mudou (mesma posição, índice obsoleto ou estágio fora do kanban)
	OutcomeNoop Outcome = "noop"
	// OutcomeReordered: reordenação local dentro da mesma coluna, sem chamada remota
	OutcomeReordered Outcome = "reordered"
	// OutcomeMoved: mudança de estágio confirmada pela fonte remota
	OutcomeMoved Outcome = "moved"
	// OutcomeReverted: a atualização remota falhou e a partição foi ressincronizada
	OutcomeReverted Outcome = "reverted"
)

type MoveResult struct {
	Outcome Outcome      `json:"outcome"`
	Deal    *domain.Deal `json:"deal,omitempty"`
	Err     error        `json:"-"`
}

// Success é o sinal de sucesso repassado à camada de interface
func (r MoveResult) Success() bool {
	return r.Outcome != OutcomeReverted
}

type Reconciler struct {
	remote    RemoteStore
	mu        sync.Mutex
	partition Partition
	subs      map[int]func(Partition)
	nextID    int
}

func NewReconciler(remote RemoteStore) *Reconciler {
	return &Reconciler{
		remote:    remote,
		partition: NewPartition(),
		subs:      make(map[int]func(Partition)),
	}
}

// Watch inscreve o reconciliador nas mudanças da coleção de negócios
func (r *Reconciler) Watch(source Source) func() {
	return source.Subscribe(r.Reset)
}

// Reset rederiva a partição a partir da coleção completa
func (r *Reconciler) Reset(deals []domain.Deal) {
	partition := Derive(deals)

	r.mu.Lock()
	r.partition = partition
	snapshot := partition.Clone()
	r.mu.Unlock()

	r.notify(snapshot)
}

// Refresh busca a coleção na fonte remota e rederiva a partição
func (r *Reconciler) Refresh(ctx context.Context) error {
	deals, err := r.remote.FetchAll(ctx)
	if err != nil {
		return err
	}

	r.Reset(deals)
	return nil
}

// Snapshot retorna uma cópia da partição atual
func (r *Reconciler) Snapshot() Partition {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.partition.Clone()
}

// Subscribe registra fn para receber a partição a cada mudança, inclusive a otimista
func (r *Reconciler) Subscribe(fn func(Partition)) func() {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.subs, id)
		r.mu.Unlock()
	}
}

// HandleMove aplica um arraste do kanban.
//
// Movimentos entre estágios são aplicados localmente antes da chamada remota.
// Se a atualização remota falhar, a partição é descartada e rederivada a partir
// de um único FetchAll. Reordenações dentro do mesmo estágio são apenas locais.
// Movimentos sobrepostos não são serializados: o último a chegar na fonte remota prevalece.
func (r *Reconciler) HandleMove(ctx context.Context, move domain.Move) MoveResult {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"deal_id":      move.DealID,
		"source_stage": move.SourceStage,
		"dest_stage":   move.DestStage,
	})

	if move.SourceStage == move.DestStage && move.SourceIndex == move.DestIndex {
		return MoveResult{Outcome: OutcomeNoop}
	}

	if !move.SourceStage.IsReorderable() || !move.DestStage.IsReorderable() {
		logger.Warn("Movimento ignorado: estágio fora do kanban")
		return MoveResult{Outcome: OutcomeNoop}
	}

	r.mu.Lock()

	deal, ok := r.partition.At(move.SourceStage, move.SourceIndex)
	if !ok || (move.DealID != "" && deal.ID != move.DealID) {
		r.mu.Unlock()
		logger.Warn("Movimento ignorado: negócio não encontrado na posição de origem")
		return MoveResult{Outcome: OutcomeNoop}
	}

	if move.SourceStage == move.DestStage {
		column := removeAt(r.partition[move.SourceStage], move.SourceIndex)
		r.partition[move.SourceStage] = insertAt(column, move.DestIndex, deal)
		snapshot := r.partition.Clone()
		r.mu.Unlock()

		r.notify(snapshot)
		return MoveResult{Outcome: OutcomeReordered, Deal: &deal}
	}

	previous := r.partition.Clone()

	moved := deal
	moved.Status = move.DestStage
	r.partition[move.SourceStage] = removeAt(r.partition[move.SourceStage], move.SourceIndex)
	r.partition[move.DestStage] = insertAt(r.partition[move.DestStage], move.DestIndex, moved)
	optimistic := r.partition.Clone()
	r.mu.Unlock()

	r.notify(optimistic)

	status := move.DestStage
	err := r.remote.Update(ctx, deal.ID, domain.DealPatch{Status: &status})
	if err == nil {
		logger.Debug("Mudança de estágio confirmada")
		return MoveResult{Outcome: OutcomeMoved, Deal: &moved}
	}

	logger.WithError(err).Warn("Falha na atualização remota do estágio, ressincronizando partição")

	deals, fetchErr := r.remote.FetchAll(ctx)

	r.mu.Lock()
	if fetchErr != nil {
		// sem a fonte de verdade, volta para o estado anterior ao movimento
		logger.WithError(fetchErr).Error("Erro ao recarregar negócios após falha de atualização")
		r.partition = previous
	} else {
		r.partition = Derive(deals)
	}
	restored := r.partition.Clone()
	r.mu.Unlock()

	r.notify(restored)

	return MoveResult{
		Outcome: OutcomeReverted,
		Deal:    &deal,
		Err:     &RemoteUpdateError{DealID: deal.ID, Err: err},
	}
}

func (r *Reconciler) notify(partition Partition) {
	r.mu.Lock()
	subs := make([]func(Partition), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.mu.Unlock()

	for _, fn := range subs {
		fn(partition.Clone())
	}
}
