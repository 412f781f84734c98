package simulation

import (
	"context"
	"time"

	"bcf-backend/internal/analyzer"
	"bcf-backend/internal/shared/metrics"
	"bcf-backend/internal/shared/telemetry"
	"bcf-backend/internal/shared/util"
)

const (
	// JSONFlag asks the analyzer for machine-readable chart data.
	JSONFlag = "--json"

	modeJSON       = "json"
	modeTranscript = "transcript"

	maxLoggedStderr = 2048
)

// Source says where a payload came from.
type Source string

const (
	SourceAnalyzer Source = "analyzer"
	SourceFallback Source = "fallback"
)

// Invoker runs the external analyzer with extra arguments.
type Invoker interface {
	Run(ctx context.Context, args ...string) (analyzer.Result, error)
}

// Service turns analyzer runs into payloads, falling back to demo values on any failure.
type Service struct {
	Invoker Invoker
}

// NewService constructs a Service.
func NewService(inv Invoker) *Service {
	return &Service{Invoker: inv}
}

// ChartData returns parsed analyzer readings, or FallbackChartData when the
// analyzer cannot be run or prints something other than the reading pair.
func (s *Service) ChartData(ctx context.Context) (ChartData, Source) {
	res, err := s.invoke(ctx, modeJSON, JSONFlag)
	if err != nil {
		telemetry.Warn("chart_data.fallback", map[string]any{
			"reason": "invoke",
			"error":  err,
		})
		metrics.IncFallback("chart_data")
		return FallbackChartData(), SourceFallback
	}

	data, err := ParseChartData(res.Stdout)
	if err != nil {
		telemetry.Warn("chart_data.fallback", map[string]any{
			"reason":    "parse",
			"error":     err,
			"candidate": res.Candidate.String(),
		})
		metrics.IncFallback("chart_data")
		return FallbackChartData(), SourceFallback
	}
	return data, SourceAnalyzer
}

// Transcript returns the analyzer's narrative output verbatim, or the demo
// transcript with the captured error text when no candidate succeeded.
func (s *Service) Transcript(ctx context.Context) (string, Source) {
	res, err := s.invoke(ctx, modeTranscript)
	if err != nil {
		telemetry.Warn("run.fallback", map[string]any{
			"error": err,
		})
		metrics.IncFallback("run")
		return DemoTranscript(res.Stderr), SourceFallback
	}
	return res.Stdout, SourceAnalyzer
}

// Logic returns chart data with both trip determinations.
func (s *Service) Logic(ctx context.Context) (Logic, Source) {
	data, src := s.ChartData(ctx)
	return Analyze(data), src
}

func (s *Service) invoke(ctx context.Context, mode string, args ...string) (analyzer.Result, error) {
	if s == nil || s.Invoker == nil {
		return analyzer.Result{Stderr: analyzer.ErrNoAnalyzer.Error()}, analyzer.ErrNoAnalyzer
	}

	start := time.Now()
	res, err := s.Invoker.Run(ctx, args...)
	elapsed := time.Since(start)
	if err == nil && !res.OK {
		err = analyzer.ErrNoAnalyzer
	}

	metrics.ObserveAnalyzerDuration(mode, elapsed)
	metrics.IncInvocation(mode, err == nil)
	fields := map[string]any{
		"mode":        mode,
		"ok":          err == nil,
		"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
	}
	if err == nil {
		fields["candidate"] = res.Candidate.String()
	}
	telemetry.Info("analyzer.invoke", fields)

	if err != nil && res.Stderr == "" {
		res.Stderr = err.Error()
	}
	return res, err
}

// ObserveAttempt logs and counts one candidate run. It is meant for
// analyzer.Invoker.OnAttempt.
func ObserveAttempt(a analyzer.Attempt) {
	metrics.IncAttempt(a.Candidate.Command, string(a.Outcome))
	fields := map[string]any{
		"candidate":   a.Candidate.String(),
		"outcome":     string(a.Outcome),
		"exit_code":   a.ExitCode,
		"duration_ms": float64(a.Duration.Microseconds()) / 1000.0,
	}
	if a.Err != nil {
		fields["error"] = a.Err
	}
	if a.Stderr != "" {
		fields["stderr"] = util.TruncateForLog(a.Stderr, maxLoggedStderr)
	}
	telemetry.Debug("analyzer.attempt", fields)
}
