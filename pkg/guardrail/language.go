package guardrail

import (
	"context"
	"fmt"
	"strings"

	"ai-question-answer-be/internal/pkg/logger"
	"ai-question-answer-be/pkg/llm"
)

// LanguageIdentifyStage classifies the query language against the closed
// supported set. Must run before TranslateStage.
type LanguageIdentifyStage struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewLanguageIdentifyStage(provider llm.LLMProvider, logger logger.ILogger) *LanguageIdentifyStage {
	return &LanguageIdentifyStage{
		provider: provider,
		logger:   logger,
	}
}

func (s *LanguageIdentifyStage) Name() string {
	return "language_identify"
}

func (s *LanguageIdentifyStage) Process(ctx context.Context, query *Query, out Outcome) (Outcome, error) {
	if errOut, ok := out.(*ResponseError); ok {
		return errOut, nil
	}
	resp := out.(*Response)

	raw, err := askModel(ctx, s.provider, languageIdentificationPrompt, query.Text)
	if err != nil {
		return nil, err
	}

	lang := ParseLanguageLabel(raw)
	query.OriginalLanguage = &lang
	resp.DebugInfo["query_text_original"] = query.OriginalText
	resp.DebugInfo["original_language"] = string(lang)

	if lang.IsSupported() {
		return resp, nil
	}

	supported := strings.Join(SupportedLanguages(), ", ")
	var errType ErrorType
	var message string
	switch lang {
	case LanguageUnintelligible:
		errType = ErrorUnintelligibleInput
		message = fmt.Sprintf("Unintelligible input. The following languages are supported: %s.", supported)
	default:
		errType = ErrorUnsupportedLanguage
		message = fmt.Sprintf("Unsupported language. Only the following languages are supported: %s.", supported)
	}

	s.logger.Info("GUARDRAIL", "language identification blocked query", map[string]interface{}{
		"query_id": resp.QueryId.String(),
		"language": string(lang),
	})

	return NewResponseError(resp, resp.QueryId, errType, message), nil
}
