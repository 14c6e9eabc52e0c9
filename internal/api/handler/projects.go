package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/ad-report-api/internal/domain"
	"github.com/vfg2006/ad-report-api/internal/usecases/reporting"
	"github.com/vfg2006/ad-report-api/pkg/apiErrors"
	"github.com/vfg2006/ad-report-api/pkg/log"
)

func CreateProject(service reporting.ReportService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var request domain.CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido: "+err.Error(), nil)
			return
		}

		project, err := service.CreateProject(r.Context(), &request)
		if err != nil {
			writeServiceError(w, logger, err, "Erro ao criar projeto")
			return
		}

		logger.WithField("project_id", project.ID).Info("projects: project created")
		writeJSON(w, http.StatusCreated, project)
	})
}

func ListProjects(service reporting.ReportService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		projects, err := service.ListProjects(r.Context())
		if err != nil {
			writeServiceError(w, log.ForContext(r.Context()), err, "Erro ao listar projetos")
			return
		}

		writeJSON(w, http.StatusOK, projects)
	})
}

func GetProject(service reporting.ReportService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		project, err := service.GetProject(r.Context(), id)
		if err != nil {
			writeServiceError(w, log.ForContext(r.Context()), err, "Erro ao buscar projeto")
			return
		}

		writeJSON(w, http.StatusOK, project)
	})
}

// ListAdAccounts lista as contas de anúncios da Meta disponíveis para vínculo
func ListAdAccounts(service reporting.ReportService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accounts, err := service.ListAdAccounts(r.Context())
		if err != nil {
			writeServiceError(w, log.ForContext(r.Context()), err, "Erro ao listar contas da Meta")
			return
		}

		writeJSON(w, http.StatusOK, accounts)
	})
}
