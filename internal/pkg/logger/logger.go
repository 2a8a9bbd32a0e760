// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

var base zerolog.Logger

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	base = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Init 在服务启动时设置全局 logger 的服务名和日志级别。
func Init(serviceName string) {
	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	base = zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// Logger 返回全局 logger，用于没有请求上下文的场景（启动、关停）。
func Logger() *zerolog.Logger {
	return &base
}

// Ctx 返回一个带有当前 trace_id/span_id 字段的 logger。
// 如果上下文中没有有效的 Span，则退化为全局 logger。
func Ctx(ctx context.Context) *zerolog.Logger {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return &base
	}
	l := base.With().
		Str("trace_id", spanCtx.TraceID().String()).
		Str("span_id", spanCtx.SpanID().String()).
		Logger()
	return &l
}
