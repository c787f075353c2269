package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/cre-deals-api/pkg/apiErrors"
	"github.com/vfg2006/cre-deals-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypePipeline = "pipeline"
	CronJobTypeAll      = "all"
)

// ManualSyncer é uma rotina agendada que também pode ser disparada manualmente
type ManualSyncer interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	PipelineSyncService ManualSyncer
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		switch cronType {
		case CronJobTypePipeline, CronJobTypeAll:
			if services.PipelineSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização do pipeline não disponível", nil)
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: pipeline, all", nil)
			return
		}

		started := services.PipelineSyncService.TriggerManualSync()
		log.ForContext(r.Context()).WithField("type", cronType).WithField("started", started).Info("Cron job disparada manualmente")

		message := "Cron job iniciada com sucesso"
		if !started {
			message = "Sincronização já em andamento"
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": message,
			"type":    cronType,
			"started": started,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.PipelineSyncService != nil {
			status[CronJobTypePipeline] = services.PipelineSyncService.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
