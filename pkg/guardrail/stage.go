package guardrail

import (
	"context"
	"errors"

	"ai-question-answer-be/internal/pkg/logger"

	"go.opentelemetry.io/otel"
)

// ErrUpstreamUnavailable marks a failed call to an external model or
// scoring service. It propagates as a hard fault (500-class), unlike the
// ErrorType outcomes which are well-formed 400-class responses.
var ErrUpstreamUnavailable = errors.New("upstream model unavailable")

// ErrStageOrdering marks a broken stage contract (e.g. Translate ran
// before LanguageIdentify). This is a programming error, never user input.
var ErrStageOrdering = errors.New("guardrail stage ordering violated")

// Stage is one step of the pipeline. Process returns the next outcome, or
// an error for hard faults only. Every stage must pass an incoming
// *ResponseError through untouched.
type Stage interface {
	Name() string
	Process(ctx context.Context, query *Query, out Outcome) (Outcome, error)
}

// Chain runs an explicit ordered list of stages. Order is configuration,
// not convention: Translate depends on LanguageIdentify having run.
type Chain struct {
	stages []Stage
	logger logger.ILogger
}

func NewChain(logger logger.ILogger, stages ...Stage) *Chain {
	return &Chain{
		stages: stages,
		logger: logger,
	}
}

func (c *Chain) Run(ctx context.Context, query *Query, out Outcome) (Outcome, error) {
	tracer := otel.Tracer("guardrail")

	for _, stage := range c.stages {
		stageCtx, span := tracer.Start(ctx, "guardrail."+stage.Name())

		next, err := stage.Process(stageCtx, query, out)
		span.End()
		if err != nil {
			c.logger.Error("GUARDRAIL", "stage failed", map[string]interface{}{
				"stage": stage.Name(),
				"error": err.Error(),
			})
			return nil, err
		}
		out = next
	}
	return out, nil
}

// Stages exposes the configured order for inspection and tests.
func (c *Chain) Stages() []Stage {
	return c.stages
}
