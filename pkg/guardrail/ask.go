package guardrail

import (
	"context"
	"fmt"
	"strings"

	"ai-question-answer-be/pkg/llm"
)

// askModel sends a system prompt plus the user text to the model at
// temperature 0. Transport failures are wrapped as ErrUpstreamUnavailable
// so callers can distinguish infra faults from guardrail rejections.
func askModel(ctx context.Context, provider llm.LLMProvider, systemPrompt, userText string) (string, error) {
	reply, err := provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userText},
	}, llm.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	return strings.TrimSpace(reply), nil
}
