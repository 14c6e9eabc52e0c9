package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/ad-report-api/internal/domain"
	"github.com/vfg2006/ad-report-api/internal/usecases/reporting"
	"github.com/vfg2006/ad-report-api/pkg/apiErrors"
	"github.com/vfg2006/ad-report-api/pkg/log"
	"github.com/vfg2006/ad-report-api/pkg/utils"
)

type syncRequest struct {
	AccountID string `json:"account_id"`
	Currency  string `json:"currency"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// SyncProject busca a conta Meta do projeto e substitui as linhas. O corpo é
// opcional: sem ele, vale a conta vinculada ao projeto.
func SyncProject(service reporting.ReportService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var body syncRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil && err != io.EOF {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		startDate, err := utils.ParseDate(strings.TrimSpace(body.StartDate))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "start_date deve estar no formato AAAA-MM-DD", nil)
			return
		}

		endDate, err := utils.ParseDate(strings.TrimSpace(body.EndDate))
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "end_date deve estar no formato AAAA-MM-DD", nil)
			return
		}

		if startDate != nil && endDate != nil && endDate.Before(*startDate) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "end_date anterior a start_date", nil)
			return
		}

		result, err := service.Sync(r.Context(), id, domain.SyncRequest{
			AccountID: body.AccountID,
			Currency:  body.Currency,
			StartDate: startDate,
			EndDate:   endDate,
		})
		if err != nil {
			writeServiceError(w, logger, err, "Erro ao sincronizar projeto")
			return
		}

		logger.WithFields(log.Fields{
			"project_id": id,
			"sync_id":    result.SyncID,
			"applied":    result.Applied,
		}).Info("sync: project synced")

		writeJSON(w, http.StatusOK, result)
	})
}
