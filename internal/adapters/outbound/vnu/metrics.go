package vnu

import (
	"context"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/vnupipe/vnupipe/internal/domain"
)

var (
	tracer = otel.Tracer("vnupipe.vnu")
	meter  = otel.Meter("vnupipe.vnu")
)

// Run statuses recorded on spans and metrics.
const (
	runOK      = "ok"
	runFailed  = "failed"
	runTimeout = "timeout"
	runMissing = "missing"
)

var (
	runLatency metric.Float64Histogram
	runTotal   metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		runLatency, err = meter.Float64Histogram(
			"vnu_run_duration_seconds",
			metric.WithDescription("Duration of validator runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		runTotal, err = meter.Int64Counter(
			"vnu_runs_total",
			metric.WithDescription("Total number of validator runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func startRunSpan(ctx context.Context, inv domain.Invocation) (context.Context, trace.Span) {
	return tracer.Start(ctx, "ShellRunner.Run",
		trace.WithAttributes(
			attribute.String("vnu.java", inv.Java),
			attribute.Int("vnu.argc", len(inv.Argv)),
			attribute.Int64("vnu.timeout_ms", inv.Timeout.Milliseconds()),
		),
	)
}

func setRunSpanResult(span trace.Span, state *os.ProcessState, status string) {
	exitCode := -1
	if state != nil {
		exitCode = state.ExitCode()
	}
	span.SetAttributes(
		attribute.String("vnu.status", status),
		attribute.Int("vnu.exit_code", exitCode),
	)
	if status != runOK && status != runFailed {
		span.SetStatus(codes.Error, status)
	}
}

func recordRunMetrics(ctx context.Context, duration time.Duration, status string) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("status", status))
	runLatency.Record(ctx, duration.Seconds(), attrs)
	runTotal.Add(ctx, 1, attrs)
}
