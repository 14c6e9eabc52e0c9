package handler

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/ad-report-api/internal/usecases/normalizing"
	"github.com/vfg2006/ad-report-api/internal/usecases/reporting"
	"github.com/vfg2006/ad-report-api/pkg/apiErrors"
	"github.com/vfg2006/ad-report-api/pkg/log"
)

const (
	maxUploadSize   = 32 << 20
	importFileField = "file"
)

// ImportFiles recebe um ou mais CSVs exportados do gerenciador de anúncios
func ImportFiles(service reporting.ReportService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formulário inválido: "+err.Error(), nil)
			return
		}
		defer r.MultipartForm.RemoveAll()

		headers := r.MultipartForm.File[importFileField]
		if len(headers) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhum arquivo enviado no campo 'file'", nil)
			return
		}

		tables := make([]normalizing.Table, 0, len(headers))
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, fmt.Sprintf("Não foi possível abrir %s", header.Filename), nil)
				return
			}

			table := normalizing.ReadTable(file)
			file.Close()

			table.Source = header.Filename
			tables = append(tables, table)
		}

		logger.WithFields(log.Fields{
			"project_id": id,
			"files":      len(tables),
		}).Info("imports: files received")

		result, err := service.Import(r.Context(), id, tables)
		if err != nil {
			writeServiceError(w, logger, err, "Erro ao importar arquivos")
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}
