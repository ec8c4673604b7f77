package guardrail

import (
	"context"
	"fmt"

	"ai-question-answer-be/internal/pkg/logger"
	"ai-question-answer-be/pkg/llm"
)

// TranslateStage rewrites the working text into the default language.
// Requires LanguageIdentifyStage to have run; a missing language is a
// stage-ordering fault, not a pipeline outcome.
type TranslateStage struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewTranslateStage(provider llm.LLMProvider, logger logger.ILogger) *TranslateStage {
	return &TranslateStage{
		provider: provider,
		logger:   logger,
	}
}

func (s *TranslateStage) Name() string {
	return "translate"
}

func (s *TranslateStage) Process(ctx context.Context, query *Query, out Outcome) (Outcome, error) {
	if errOut, ok := out.(*ResponseError); ok {
		return errOut, nil
	}
	resp := out.(*Response)

	if query.OriginalLanguage == nil {
		return nil, fmt.Errorf("%w: language must be identified before translation", ErrStageOrdering)
	}
	if *query.OriginalLanguage == DefaultLanguage {
		return resp, nil
	}

	translated, err := askModel(ctx, s.provider, translatePrompt(*query.OriginalLanguage), query.Text)
	if err != nil {
		return nil, err
	}

	if translated == TranslateFailedMessage {
		s.logger.Info("GUARDRAIL", "translation failed", map[string]interface{}{
			"query_id": resp.QueryId.String(),
			"language": string(*query.OriginalLanguage),
		})
		return NewResponseError(resp, resp.QueryId, ErrorUnableToTranslate, "Unable to translate."), nil
	}

	query.Text = translated
	resp.DebugInfo["translated_question"] = translated
	return resp, nil
}
