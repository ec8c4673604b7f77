package pipeline

import (
	"context"
	"fmt"

	"ai-question-answer-be/internal/pkg/logger"
	"ai-question-answer-be/pkg/embedding"
	"ai-question-answer-be/pkg/guardrail"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
)

type Config struct {
	TopNSimilar int
}

// Pipeline wraps the core retrieve-and-generate step in the ordered
// guardrail chains. Pre-stages run before retrieval, post-stages after
// generation; stage order is fixed at construction and reordering
// changes semantics (Translate depends on LanguageIdentify).
type Pipeline struct {
	pre       *guardrail.Chain
	post      *guardrail.Chain
	embedder  embedding.EmbeddingProvider
	searcher  SimilaritySearcher
	generator *Generator
	cfg       Config
	logger    logger.ILogger
}

func New(
	pre *guardrail.Chain,
	post *guardrail.Chain,
	embedder embedding.EmbeddingProvider,
	searcher SimilaritySearcher,
	generator *Generator,
	cfg Config,
	logger logger.ILogger,
) *Pipeline {
	if cfg.TopNSimilar <= 0 {
		cfg.TopNSimilar = 4
	}
	return &Pipeline{
		pre:       pre,
		post:      post,
		embedder:  embedder,
		searcher:  searcher,
		generator: generator,
		cfg:       cfg,
		logger:    logger,
	}
}

// Execute runs one query through the full pipeline. The returned Outcome
// is terminal: a final Response or a ResponseError. A non-nil error is a
// hard fault (upstream outage, broken stage contract) and surfaces as a
// server error, not a pipeline outcome.
func (p *Pipeline) Execute(
	ctx context.Context,
	userId uuid.UUID,
	query *guardrail.Query,
	response *guardrail.Response,
	generate bool,
) (guardrail.Outcome, error) {
	out, err := p.pre.Run(ctx, query, response)
	if err != nil {
		return nil, err
	}

	if healthy, ok := out.(*guardrail.Response); ok {
		out, err = p.retrieveAndGenerate(ctx, userId, query, healthy, generate)
		if err != nil {
			return nil, err
		}
	}

	out, err = p.post.Run(ctx, query, out)
	if err != nil {
		return nil, err
	}

	if final, ok := out.(*guardrail.Response); ok {
		final.State = guardrail.StateFinal
	}
	return out, nil
}

func (p *Pipeline) retrieveAndGenerate(
	ctx context.Context,
	userId uuid.UUID,
	query *guardrail.Query,
	resp *guardrail.Response,
	generate bool,
) (guardrail.Outcome, error) {
	tracer := otel.Tracer("pipeline")

	retrieveCtx, span := tracer.Start(ctx, "pipeline.retrieve")
	vector, err := p.embedder.Generate(retrieveCtx, query.Text)
	if err != nil {
		span.End()
		return nil, fmt.Errorf("%w: %v", guardrail.ErrUpstreamUnavailable, err)
	}

	matches, err := p.searcher.SearchSimilar(retrieveCtx, userId, vector, p.cfg.TopNSimilar)
	span.End()
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	resp.ContentMatches = matches

	if !generate {
		return resp, nil
	}

	generateCtx, span := tracer.Start(ctx, "pipeline.generate")
	answer, err := p.generator.Generate(generateCtx, query.Text, matches)
	span.End()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", guardrail.ErrUpstreamUnavailable, err)
	}
	resp.LLMAnswer = &answer

	return resp, nil
}
