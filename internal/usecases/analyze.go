package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"wellness_checkin/internal/ai"
	"wellness_checkin/internal/models"
	"wellness_checkin/internal/observability"
)

const PROMPT = `
You are an empathetic wellness assistant for young people.
User said: "%s"
Please output EXACTLY in this JSON format:
{"mood":"<one word mood>", "response":"<empathetic short reply>", "suggestion":"<coping activity>"}
`

const (
	unavailableResponse   = "AI not available (check credentials)."
	unavailableSuggestion = "Try: Take a short break."
)

type AnalyzerOptions struct {
	MaxTokens int
	Timeout   time.Duration
	Logger    *zap.Logger
	Tracer    trace.Tracer
	Metrics   *observability.Collector
}

// MoodAnalyzer asks the model for a mood label, a reply and a suggestion.
// It never returns an error: failures come back as fallback text tagged in
// models.Analysis.
type MoodAnalyzer struct {
	gen       ai.Generator
	maxTokens int
	timeout   time.Duration
	logger    *zap.Logger
	tracer    trace.Tracer
	metrics   *observability.Collector
}

func NewMoodAnalyzer(gen ai.Generator, opts AnalyzerOptions) *MoodAnalyzer {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 250
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Tracer == nil {
		opts.Tracer = noop.NewTracerProvider().Tracer(observability.TracerName)
	}
	return &MoodAnalyzer{
		gen:       gen,
		maxTokens: opts.MaxTokens,
		timeout:   opts.Timeout,
		logger:    opts.Logger,
		tracer:    opts.Tracer,
		metrics:   opts.Metrics,
	}
}

func BuildPrompt(userText string) string {
	return fmt.Sprintf(PROMPT, userText)
}

func (a *MoodAnalyzer) Analyze(ctx context.Context, userText string) models.Analysis {
	ctx, span := a.tracer.Start(ctx, "analyzer.Analyze")
	defer span.End()

	analysis := a.analyze(ctx, userText, span)

	outcome := string(analysis.Failure)
	if analysis.OK() {
		outcome = "ok"
	}
	span.SetAttributes(
		attribute.String("analysis.outcome", outcome),
		attribute.String("analysis.mood", analysis.Result.Mood),
	)
	if analysis.Err != nil {
		span.RecordError(analysis.Err)
		a.logger.Warn("mood analysis failed",
			zap.String("failure", string(analysis.Failure)),
			zap.Error(analysis.Err),
		)
	}
	if a.metrics != nil {
		a.metrics.Analyses.WithLabelValues(outcome).Inc()
	}

	return analysis
}

func (a *MoodAnalyzer) analyze(ctx context.Context, userText string, span trace.Span) models.Analysis {
	if _, ok := a.gen.(ai.Unavailable); ok {
		return unavailable(ai.ErrUnavailable)
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	raw, err := a.gen.Generate(ctx, BuildPrompt(userText), a.maxTokens)
	if err != nil {
		if errors.Is(err, ai.ErrUnavailable) {
			return unavailable(err)
		}
		return failed(models.FailureCall, err)
	}

	text := strings.TrimSpace(raw)

	// Emitted before parsing: a reply that ignores the format is diagnosed from here.
	a.logger.Info("raw model output", zap.String("output", text))
	span.AddEvent("model.raw_output", trace.WithAttributes(attribute.String("output", text)))

	if text == "" {
		return failed(models.FailureCall, errEmptyReply)
	}

	result, err := ParseAnalysisResponse(text)
	if err != nil {
		return failed(models.FailureParse, err)
	}

	return models.Analysis{Result: result}
}

func unavailable(err error) models.Analysis {
	return models.Analysis{
		Result: models.AnalysisResult{
			Mood:       models.UnknownMood,
			Response:   unavailableResponse,
			Suggestion: unavailableSuggestion,
		},
		Failure: models.FailureUnavailable,
		Err:     err,
	}
}

func failed(reason models.FailureReason, err error) models.Analysis {
	return models.Analysis{
		Result: models.AnalysisResult{
			Mood:     models.UnknownMood,
			Response: fmt.Sprintf("Error calling AI: %v", err),
		},
		Failure: reason,
		Err:     err,
	}
}
