package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/vfg2006/ad-report-api/internal/usecases/reporting"
	"github.com/vfg2006/ad-report-api/pkg/apiErrors"
	"github.com/vfg2006/ad-report-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("api: failed to encode response")
	}
}

// writeServiceError traduz o erro do serviço de relatórios para a resposta
// padronizada. Erros sem código viram erro interno com a mensagem fallback.
func writeServiceError(w http.ResponseWriter, logger log.Logger, err error, fallback string) {
	var reportingErr *reporting.ReportingError
	if !errors.As(err, &reportingErr) {
		logger.WithError(err).Error("api: unexpected service error")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
		return
	}

	message := reportingErr.Details
	if message == "" {
		message = reportingErr.Err.Error()
	}

	details := map[string]any{"error_type": reportingErr.Err.Error()}
	if reportingErr.ProjectID != "" {
		details["project_id"] = reportingErr.ProjectID
	}

	logger.WithFields(log.Fields{
		"code":       reportingErr.Code,
		"project_id": reportingErr.ProjectID,
		"error":      err.Error(),
	}).Warn("api: request failed")

	apiErrors.WriteError(w, reportingErr.Code, message, details)
}
