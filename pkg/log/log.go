package log

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields logrus.Fields

// Logger é a interface usada pelos handlers HTTP
type Logger interface {
	WithField(key string, value any) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	WithContext(ctx context.Context) Logger

	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Warnf(format string, args ...any)
	Error(args ...any)
}

type contextKey string

// CorrelationIDKey é a chave para armazenar o ID de correlação no contexto
const CorrelationIDKey contextKey = "correlation_id"

type logger struct {
	entry *logrus.Entry
}

// L é uma instância global de Logger para uso direto
var L Logger = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

func (l *logger) WithField(key string, value any) Logger {
	return &logger{entry: l.entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	return &logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}

// WithContext inclui o ID de correlação, quando o contexto tiver um
func (l *logger) WithContext(ctx context.Context) Logger {
	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		return l.WithField(string(CorrelationIDKey), correlationID)
	}
	return l
}

func (l *logger) Debug(args ...any) {
	l.entry.Debug(args...)
}

func (l *logger) Info(args ...any) {
	l.entry.Info(args...)
}

func (l *logger) Warn(args ...any) {
	l.entry.Warn(args...)
}

func (l *logger) Warnf(format string, args ...any) {
	l.entry.Warnf(format, args...)
}

func (l *logger) Error(args ...any) {
	l.entry.Error(args...)
}

// WithCorrelationID adiciona um ID de correlação ao contexto
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	correlationID := uuid.New().String()
	return context.WithValue(ctx, CorrelationIDKey, correlationID), correlationID
}

// GetCorrelationID obtém o ID de correlação do contexto
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}
	return ""
}

// ForContext cria um logger com o ID de correlação do contexto
func ForContext(ctx context.Context) Logger {
	return L.WithContext(ctx)
}
