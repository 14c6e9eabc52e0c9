package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/ad-report-api/internal/usecases/reporting"
	"github.com/vfg2006/ad-report-api/pkg/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportWorkbook gera a planilha em memória antes de responder, para que uma
// falha ainda possa virar erro JSON
func ExportWorkbook(service reporting.ReportService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var sheets []string
		if raw := r.URL.Query().Get("sheets"); raw != "" {
			sheets = strings.Split(raw, ",")
		}

		var buf bytes.Buffer
		if err := service.Export(r.Context(), id, sheets, &buf); err != nil {
			writeServiceError(w, logger, err, "Erro ao exportar planilha")
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "report-"+id+".xlsx"))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)

		if _, err := buf.WriteTo(w); err != nil {
			logger.WithError(err).Warn("export: failed to write workbook")
		}
	})
}
