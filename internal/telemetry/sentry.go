// Package telemetry initialises Sentry error reporting.
package telemetry

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/Humanoid-1/Web-backend/pkg/httputil"
)

const flushTimeout = 5 * time.Second

// Config holds the configuration for Sentry initialization.
type Config struct {
	DSN              string
	Environment      string
	Release          string
	ServerName       string
	TracesSampleRate float64
}

// Init initializes Sentry and routes 5xx responses written by httputil to it.
// The returned function flushes pending events. An empty DSN disables Sentry
// and returns a no-op.
func Init(cfg Config, logger *slog.Logger) (func(), error) {
	if cfg.DSN == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		ServerName:       cfg.ServerName,
		EnableTracing:    cfg.TracesSampleRate > 0,
		TracesSampleRate: cfg.TracesSampleRate,
		TracesSampler: sentry.TracesSampler(func(ctx sentry.SamplingContext) float64 {
			if strings.Contains(ctx.Span.Name, "/health/") || strings.HasSuffix(ctx.Span.Name, "/metrics") {
				return 0
			}
			var emptySpanID sentry.SpanID
			if ctx.Span.ParentSpanID != emptySpanID {
				if ctx.Span.Sampled.Bool() {
					return 1
				}
				return 0
			}
			return cfg.TracesSampleRate
		}),
	})
	if err != nil {
		logger.Warn("sentry disabled", slog.String("error", err.Error()))
		return func() {}, nil
	}

	httputil.SetReporter(CaptureError)
	logger.Info("sentry initialized",
		slog.String("environment", cfg.Environment),
		slog.Float64("traces_sample_rate", cfg.TracesSampleRate),
	)

	return func() {
		httputil.SetReporter(nil)
		sentry.Flush(flushTimeout)
	}, nil
}

// CaptureError reports err on the request hub when there is one.
func CaptureError(ctx context.Context, err error) {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	sentry.CaptureException(err)
}
