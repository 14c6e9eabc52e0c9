package metaclient

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	metadomain "github.com/vfg2006/ad-report-api/infrastructure/integrator/meta/domain"
)

var (
	// ErrRateLimited indica que a Graph API recusou por limite de chamadas.
	// A requisição é repetida conforme a RetryPolicy.
	ErrRateLimited = errors.New("meta api rate limit reached")
	// ErrAuthExpired indica token inválido ou expirado. Não há nova tentativa.
	ErrAuthExpired = errors.New("meta access token expired or invalid")
)

// PlatformError é qualquer outro erro devolvido pela Graph API
type PlatformError struct {
	StatusCode int
	Code       int
	Subcode    int
	Type       string
	Message    string
	TraceID    string
}

func (e *PlatformError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("meta api error: status=%d code=%d subcode=%d type=%s: %s",
			e.StatusCode, e.Code, e.Subcode, e.Type, e.Message)
	}
	return fmt.Sprintf("meta api error: status=%d: %s", e.StatusCode, e.Message)
}

// ParseErrorResponse tenta parsear um erro da API do Meta
func ParseErrorResponse(body []byte) (*metadomain.ErrorResponse, error) {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil, err
	}
	if errorResp.Error.Code == 0 && errorResp.Error.Message == "" {
		return nil, errors.New("body is not a meta error response")
	}
	return &errorResp, nil
}

// classifyError converte uma resposta de erro em ErrAuthExpired, ErrRateLimited
// ou *PlatformError
func classifyError(statusCode int, body []byte) error {
	errorResp, parseErr := ParseErrorResponse(body)
	if parseErr != nil {
		if containsTokenExpirationMessage(string(body)) {
			return ErrAuthExpired
		}
		if statusCode == http.StatusTooManyRequests {
			return ErrRateLimited
		}
		return &PlatformError{StatusCode: statusCode, Message: strings.TrimSpace(string(body))}
	}

	switch {
	case errorResp.IsTokenExpired():
		return fmt.Errorf("%w: %s", ErrAuthExpired, errorResp.Error.Message)
	case errorResp.IsRateLimited() || statusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: code=%d %s", ErrRateLimited, errorResp.Error.Code, errorResp.Error.Message)
	}

	return &PlatformError{
		StatusCode: statusCode,
		Code:       errorResp.Error.Code,
		Subcode:    errorResp.Error.ErrorSubcode,
		Type:       errorResp.Error.Type,
		Message:    errorResp.Error.Message,
		TraceID:    errorResp.Error.FBTraceID,
	}
}

// containsTokenExpirationMessage verifica se a mensagem contém indicação de token expirado
func containsTokenExpirationMessage(message string) bool {
	return strings.Contains(message, "Error validating access token") ||
		strings.Contains(message, "Session has expired") ||
		strings.Contains(message, "The session has been invalidated")
}
