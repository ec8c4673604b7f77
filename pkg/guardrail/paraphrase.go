package guardrail

import (
	"context"

	"ai-question-answer-be/internal/pkg/logger"
	"ai-question-answer-be/pkg/llm"
)

// ParaphraseStage normalizes the working text before retrieval. Failure
// is a soft pipeline error surfaced to the caller, unlike the translate
// precondition which is a hard internal fault.
type ParaphraseStage struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewParaphraseStage(provider llm.LLMProvider, logger logger.ILogger) *ParaphraseStage {
	return &ParaphraseStage{
		provider: provider,
		logger:   logger,
	}
}

func (s *ParaphraseStage) Name() string {
	return "paraphrase"
}

func (s *ParaphraseStage) Process(ctx context.Context, query *Query, out Outcome) (Outcome, error) {
	if errOut, ok := out.(*ResponseError); ok {
		return errOut, nil
	}
	resp := out.(*Response)

	paraphrased, err := askModel(ctx, s.provider, paraphrasePrompt, query.Text)
	if err != nil {
		return nil, err
	}

	if paraphrased == ParaphraseFailedMessage {
		s.logger.Info("GUARDRAIL", "paraphrase failed", map[string]interface{}{
			"query_id":   resp.QueryId.String(),
			"query_text": query.Text,
		})
		return NewResponseError(resp, resp.QueryId, ErrorUnableToParaphrase, "Unable to paraphrase the query."), nil
	}

	query.Text = paraphrased
	resp.DebugInfo["paraphrased_question"] = paraphrased
	return resp, nil
}
