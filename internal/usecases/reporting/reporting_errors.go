package reporting

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de relatórios
var (
	// Erros de validação
	ErrProjectIDRequired   = errors.New("project ID is required")
	ErrProjectNameRequired = errors.New("project name is required")
	ErrMetaAccountRequired = errors.New("meta account is required")
	ErrInvalidReportType   = errors.New("invalid report type")
	ErrInvalidDemographic  = errors.New("invalid demographic level")
	ErrEmptyImport         = errors.New("no rows found in the uploaded files")

	// Erros de recurso inexistente
	ErrProjectNotFound = errors.New("project not found")
	ErrRowNotFound     = errors.New("row not found")

	// Erros de serviços externos
	ErrMetaAuthExpired = errors.New("meta access token expired")
	ErrMetaIntegration = errors.New("error fetching data from Meta")

	// Erros de banco de dados
	ErrDatabaseOperation = errors.New("database operation error")

	// Erros de geração
	ErrGenerateID = errors.New("error generating project ID")
	ErrExport     = errors.New("error writing workbook")
)

// ReportingError é um erro com contexto adicional para o handler
type ReportingError struct {
	Err       error  // Erro base
	Code      string // Código de erro para API
	ProjectID string // Projeto envolvido (quando aplicável)
	Details   string // Detalhes adicionais
}

func (e *ReportingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportingError) Unwrap() error {
	return e.Err
}

func NewReportingError(err error, code string, details string) *ReportingError {
	return &ReportingError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewReportingErrorWithID(err error, code string, projectID string, details string) *ReportingError {
	return &ReportingError{
		Err:       err,
		Code:      code,
		ProjectID: projectID,
		Details:   details,
	}
}
