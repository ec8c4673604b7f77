package guardrail

import (
	"context"

	"ai-question-answer-be/internal/pkg/logger"
	"ai-question-answer-be/pkg/llm"
)

// TopicClassifyStage blocks queries the classifier marks explicitly
// off-topic. UNKNOWN passes through: an unsure classifier never blocks.
type TopicClassifyStage struct {
	provider llm.LLMProvider
	logger   logger.ILogger
}

func NewTopicClassifyStage(provider llm.LLMProvider, logger logger.ILogger) *TopicClassifyStage {
	return &TopicClassifyStage{
		provider: provider,
		logger:   logger,
	}
}

func (s *TopicClassifyStage) Name() string {
	return "topic_classify"
}

func (s *TopicClassifyStage) Process(ctx context.Context, query *Query, out Outcome) (Outcome, error) {
	if errOut, ok := out.(*ResponseError); ok {
		return errOut, nil
	}
	resp := out.(*Response)

	raw, err := askModel(ctx, s.provider, topicClassificationPrompt, query.Text)
	if err != nil {
		return nil, err
	}

	label := ParseTopicLabel(raw)
	resp.DebugInfo["on_off_topic"] = string(label)

	if label != TopicOffTopic {
		return resp, nil
	}

	errOut := NewResponseError(resp, resp.QueryId, ErrorOffTopic, "Off-topic query.")
	errOut.DebugInfo["query_text"] = query.Text

	s.logger.Info("GUARDRAIL", "off-topic query blocked", map[string]interface{}{
		"query_id":   resp.QueryId.String(),
		"query_text": query.Text,
	})

	return errOut, nil
}
