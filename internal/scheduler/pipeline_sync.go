package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cre-deals-api/internal/config"
)

const pipelineSyncTimeout = 30 * time.Second

// Reloader recarrega a coleção de negócios a partir da fonte de verdade
type Reloader interface {
	Load(ctx context.Context) error
}

// PipelineSyncConfig representa a configuração do agendador de ressincronização do kanban
type PipelineSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// PipelineSyncService recarrega periodicamente a coleção de negócios, trazendo
// para o kanban as alterações feitas por outros usuários
type PipelineSyncService struct {
	scheduler           *gocron.Scheduler
	config              PipelineSyncConfig
	deals               Reloader
	baseCtx             context.Context
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func NewPipelineSyncService(deals Reloader, appConfig *config.Config) *PipelineSyncService {
	syncConfig := PipelineSyncConfig{
		CronSchedule: appConfig.PipelineSync.CronSchedule,
		SyncEnabled:  appConfig.PipelineSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de ressincronização do kanban carregada")

	return &PipelineSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		deals:     deals,
		baseCtx:   context.Background(),
	}
}

// Start agenda a ressincronização; o agendador para quando ctx for cancelado
func (s *PipelineSyncService) Start(ctx context.Context) error {
	s.baseCtx = ctx

	if !s.config.SyncEnabled {
		logrus.Info("Ressincronização do kanban desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de ressincronização do kanban")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncPipeline()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar ressincronização do kanban: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de ressincronização do kanban")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *PipelineSyncService) syncPipeline() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Ressincronização do kanban já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	startTime := time.Now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	ctx, cancel := context.WithTimeout(s.baseCtx, pipelineSyncTimeout)
	defer cancel()

	err := s.deals.Load(ctx)

	s.syncMutex.Lock()
	s.syncRunning = false
	if err != nil {
		s.lastSyncError = err.Error()
	} else {
		s.lastSyncError = ""
		s.lastSyncCompletedAt = time.Now()
	}
	s.syncMutex.Unlock()

	if err != nil {
		logrus.WithError(err).Error("Erro na ressincronização do kanban")
		return
	}

	logrus.WithField("duration", time.Since(startTime).String()).Info("Ressincronização do kanban concluída")
}

// TriggerManualSync dispara uma ressincronização fora do agendamento.
// Retorna false se já existe uma em andamento.
func (s *PipelineSyncService) TriggerManualSync() bool {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Ressincronização do kanban já em andamento, ignorando solicitação manual")
		return false
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando ressincronização manual do kanban")
	go s.syncPipeline()
	return true
}

// GetStatus retorna o status atual da ressincronização
func (s *PipelineSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}
