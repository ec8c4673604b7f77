package pipeline

import (
	"context"
	"fmt"
	"strings"

	"ai-question-answer-be/internal/pkg/logger"
	"ai-question-answer-be/pkg/guardrail"
	"ai-question-answer-be/pkg/llm"
)

const ragAnswerPrompt = `You are a helpful question-answering assistant.
Answer the user's question using ONLY the numbered references below.
If the references do not contain the answer, say that you do not know.
Do not invent information that is not in the references.

REFERENCES:
%s`

// Generator produces the synthesized answer grounded in retrieved
// content.
type Generator struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, logger logger.ILogger) *Generator {
	return &Generator{
		provider: provider,
		logger:   logger,
	}
}

func (g *Generator) Generate(ctx context.Context, query string, matches []guardrail.ContentMatch) (string, error) {
	answer, err := g.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: fmt.Sprintf(ragAnswerPrompt, BuildContextString(matches))},
		{Role: "user", Content: query},
	}, llm.WithTemperature(0))
	if err != nil {
		g.logger.Error("PIPELINE", "answer generation failed", map[string]interface{}{
			"matches": len(matches),
			"error":   err.Error(),
		})
		return "", fmt.Errorf("rag answer generation: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// BuildContextString renders matches as a numbered grounding context,
// title then text, in retrieval rank order.
func BuildContextString(matches []guardrail.ContentMatch) string {
	parts := make([]string, len(matches))
	for i, match := range matches {
		parts[i] = fmt.Sprintf("%d. %s\n%s", i+1, match.Title, match.Text)
	}
	return strings.Join(parts, "\n\n")
}
