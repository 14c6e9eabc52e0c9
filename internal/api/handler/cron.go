package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/ad-report-api/pkg/apiErrors"
	"github.com/vfg2006/ad-report-api/pkg/log"
)

// CronJobTypeSync é a única rotina agendada: a sincronização das contas Meta
const CronJobTypeSync = "sync"

// SyncScheduler é a parte do agendador exposta pela API
type SyncScheduler interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(scheduler SyncScheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType != CronJobTypeSync {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: sync", nil)
			return
		}

		if scheduler == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização não disponível", nil)
			return
		}

		started := scheduler.TriggerManualSync(r.Context())

		log.ForContext(r.Context()).WithFields(log.Fields{
			"type":    cronType,
			"started": started,
		}).Info("cron: manual run requested")

		message := "Cron job iniciada com sucesso"
		status := http.StatusAccepted
		if !started {
			message = "Sincronização já em andamento"
			status = http.StatusConflict
		}

		writeJSON(w, status, map[string]any{
			"message": message,
			"type":    cronType,
		})
	})
}

// GetCronStatus retorna o status da cron job
func GetCronStatus(scheduler SyncScheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType != CronJobTypeSync {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: sync", nil)
			return
		}

		if scheduler == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização não disponível", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			CronJobTypeSync: scheduler.GetStatus(),
		})
	})
}
