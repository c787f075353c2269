// Package store contém contêineres de estado explícitos: cada Collection é dona
// de uma coleção de entidades, com suas flags de carregamento e erro, e avisa
// os inscritos quando a coleção muda.
package store

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Loader busca a coleção completa na fonte de verdade
type Loader[T any] func(ctx context.Context) ([]T, error)

// State é uma cópia do estado do contêiner em um dado momento
type State[T any] struct {
	Items   []T
	Loading bool
	Err     error
	Loaded  bool
}

type Collection[T any] struct {
	name   string
	load   Loader[T]
	mu     sync.RWMutex
	items  []T
	state  State[T]
	subs   map[int]func([]T)
	nextID int

	// publishMu serializa publicação + notificação; inscritos não devem chamar Load no callback
	publishMu sync.Mutex
	// loadSeq numera as cargas iniciadas; published é a sequência da última coleção publicada
	loadSeq   uint64
	published uint64
}

func NewCollection[T any](name string, load Loader[T]) *Collection[T] {
	return &Collection[T]{
		name: name,
		load: load,
		subs: make(map[int]func([]T)),
	}
}

// Load recarrega a coleção. Em caso de erro os itens anteriores são mantidos
// e apenas a flag de erro é atualizada. Uma carga que termina depois de outra
// iniciada mais tarde é descartada, para não publicar uma coleção antiga.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	c.state.Loading = true
	c.mu.Unlock()

	items, err := c.load(ctx)

	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	c.mu.Lock()
	if seq == c.loadSeq {
		c.state.Loading = false
	}

	if seq < c.published {
		c.mu.Unlock()

		logrus.WithFields(logrus.Fields{
			"collection": c.name,
			"seq":        seq,
			"published":  c.published,
		}).Debug("Carga descartada: uma carga mais recente já foi publicada")
		return err
	}

	if err != nil {
		c.state.Err = err
		c.mu.Unlock()

		logrus.WithError(err).WithField("collection", c.name).Error("Erro ao carregar coleção")
		return err
	}
	c.published = seq
	c.state.Err = nil
	c.state.Loaded = true
	c.items = items
	c.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"collection": c.name,
		"items":      len(items),
	}).Debug("Coleção carregada")

	c.notify(items)
	return nil
}

// Replace substitui os itens sem consultar a fonte de verdade. Cargas ainda em
// andamento passam a ser consideradas antigas.
func (c *Collection[T]) Replace(items []T) {
	c.publishMu.Lock()
	defer c.publishMu.Unlock()

	c.mu.Lock()
	c.published = c.loadSeq + 1
	c.loadSeq = c.published
	c.state.Loading = false
	c.items = items
	c.state.Err = nil
	c.state.Loaded = true
	c.mu.Unlock()

	c.notify(items)
}

func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) State() State[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state := c.state
	state.Items = make([]T, len(c.items))
	copy(state.Items, c.items)
	return state
}

// Subscribe registra fn para receber a coleção a cada mudança.
// A função retornada cancela a inscrição.
func (c *Collection[T]) Subscribe(fn func([]T)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// notify chama os inscritos fora do lock, cada um com sua própria cópia
func (c *Collection[T]) notify(items []T) {
	c.mu.RLock()
	subs := make([]func([]T), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.RUnlock()

	for _, fn := range subs {
		snapshot := make([]T, len(items))
		copy(snapshot, items)
		fn(snapshot)
	}
}
