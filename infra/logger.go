package infra

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/haneulab/thumbsmith-api/config"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

type LoggerClient struct {
	logger *slog.Logger
}

// InitLoggerClient builds the service logger. With an OTLP endpoint configured
// the records are bridged to the OpenTelemetry log pipeline, otherwise they go
// to stdout as JSON.
func InitLoggerClient(cfg *config.EnvConfig) *LoggerClient {
	if cfg.Grafana.OTLPEndpoint == "" {
		return &LoggerClient{
			logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		}
	}

	return &LoggerClient{
		logger: otelslog.NewLogger(cfg.Grafana.ServiceName),
	}
}

func (l *LoggerClient) InfoWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.logger.InfoContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) WarningWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.logger.WarnContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) ErrorWithContextf(ctx context.Context, err error, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		l.logger.ErrorContext(ctx, msg, "error", err.Error())
		return
	}
	l.logger.ErrorContext(ctx, msg)
}
