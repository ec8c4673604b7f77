package guardrail

import (
	"context"
	"fmt"
	"strings"

	"ai-question-answer-be/internal/pkg/logger"
	"ai-question-answer-be/pkg/llm"
)

// SafetyClassifyStage blocks inappropriate or prompt-injection queries.
type SafetyClassifyStage struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewSafetyClassifyStage(provider llm.LLMProvider, logger logger.ILogger) *SafetyClassifyStage {
	return &SafetyClassifyStage{
		provider: provider,
		logger:   logger,
	}
}

func (s *SafetyClassifyStage) Name() string {
	return "safety_classify"
}

func (s *SafetyClassifyStage) Process(ctx context.Context, query *Query, out Outcome) (Outcome, error) {
	if errOut, ok := out.(*ResponseError); ok {
		return errOut, nil
	}
	resp := out.(*Response)

	raw, err := askModel(ctx, s.provider, safetyClassificationPrompt, query.Text)
	if err != nil {
		return nil, err
	}

	classification := ParseSafetyLabel(raw)
	if classification == SafetySafe {
		resp.DebugInfo["safety_classification"] = string(classification)
		return resp, nil
	}

	message := fmt.Sprintf("%s found.", strings.ToLower(string(classification)))
	errOut := NewResponseError(resp, resp.QueryId, ErrorQueryUnsafe, message)
	// record the offending text for audit
	errOut.DebugInfo["safety_classification"] = string(classification)
	errOut.DebugInfo["query_text"] = query.Text

	s.logger.Info("GUARDRAIL", "safety check blocked query", map[string]interface{}{
		"query_id":       resp.QueryId.String(),
		"classification": string(classification),
	})

	return errOut, nil
}
