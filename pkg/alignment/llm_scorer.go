package alignment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-question-answer-be/internal/pkg/logger"
	"ai-question-answer-be/pkg/llm"
)

const llmAlignmentPrompt = `Using only the following context, score how consistent the user's statement is with it.

Context:
%s

Respond with a JSON object of the form {"score": <number between 0 and 1>, "reason": "<short explanation>"} and nothing else.`

// LLMScorer asks the model itself for a structured {score, reason}
// judgment. A malformed judgment is logged and reported as a nil result,
// never as an error: the request must not fail on a flaky judge.
type LLMScorer struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

var _ Scorer = &LLMScorer{}

func NewLLMScorer(provider llm.LLMProvider, logger logger.ILogger) *LLMScorer {
	return &LLMScorer{
		provider: provider,
		logger:   logger,
	}
}

func (s *LLMScorer) Method() string {
	return "LLM"
}

func (s *LLMScorer) Score(ctx context.Context, evidence, claim string) (*Result, error) {
	raw, err := s.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: fmt.Sprintf(llmAlignmentPrompt, evidence)},
		{Role: "user", Content: claim},
	}, llm.WithTemperature(0))
	if err != nil {
		return nil, fmt.Errorf("llm alignment request: %w", err)
	}

	var result Result
	if err := json.Unmarshal([]byte(removeJSONMarkdown(raw)), &result); err != nil {
		s.logger.Warn("ALIGNMENT", "llm alignment score is not valid json", map[string]interface{}{
			"raw":   raw,
			"error": err.Error(),
		})
		return nil, nil
	}

	return &result, nil
}

// removeJSONMarkdown strips a ```json fenced block so the payload can be
// unmarshalled even when the model wraps its answer.
func removeJSONMarkdown(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
