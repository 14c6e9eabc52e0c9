package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/ad-report-api/internal/domain"
	"github.com/vfg2006/ad-report-api/internal/usecases/normalizing"
	"github.com/vfg2006/ad-report-api/internal/usecases/reporting"
	"github.com/vfg2006/ad-report-api/pkg/apiErrors"
	"github.com/vfg2006/ad-report-api/pkg/log"
)

// ListRows aceita level, status, q, sort e direction (asc|desc)
func ListRows(service reporting.ReportService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		query := r.URL.Query()

		filters := domain.RowFilters{
			Tab:           strings.TrimSpace(query.Get("level")),
			Status:        domain.StatusFilter(strings.TrimSpace(query.Get("status"))),
			Query:         query.Get("q"),
			SortKey:       strings.TrimSpace(query.Get("sort")),
			SortAscending: strings.EqualFold(query.Get("direction"), "asc"),
		}

		switch filters.Status {
		case "", domain.StatusFilterAll, domain.StatusFilterActive, domain.StatusFilterDelivered:
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "status deve ser all, active ou delivered", nil)
			return
		}

		if filters.SortKey != "" && !normalizing.IsSortKey(filters.SortKey) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Coluna de ordenação desconhecida: "+filters.SortKey, nil)
			return
		}

		table, err := service.ListRows(r.Context(), id, filters)
		if err != nil {
			writeServiceError(w, log.ForContext(r.Context()), err, "Erro ao listar linhas")
			return
		}

		writeJSON(w, http.StatusOK, table)
	})
}

type resultTypeRequest struct {
	ResultType string `json:"result_type"`
}

func OverrideResultType(service reporting.ReportService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		params := httprouter.ParamsFromContext(r.Context())

		var body resultTypeRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}
		if strings.TrimSpace(body.ResultType) == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "result_type é obrigatório", nil)
			return
		}

		row, err := service.OverrideResult(r.Context(), params.ByName("id"), params.ByName("row_id"), body.ResultType)
		if err != nil {
			writeServiceError(w, logger, err, "Erro ao trocar tipo de resultado")
			return
		}

		writeJSON(w, http.StatusOK, row)
	})
}

func Demographics(service reporting.ReportService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params := httprouter.ParamsFromContext(r.Context())

		report, err := service.Demographics(r.Context(), params.ByName("id"), domain.Level(params.ByName("level")))
		if err != nil {
			writeServiceError(w, log.ForContext(r.Context()), err, "Erro ao agregar dados demográficos")
			return
		}

		writeJSON(w, http.StatusOK, report)
	})
}
