package guardrail

import (
	"context"
	"fmt"
	"strings"

	"ai-question-answer-be/internal/pkg/logger"
	"ai-question-answer-be/pkg/alignment"
)

// AlignmentScoreStage is the post-generation guardrail: it scores the
// generated answer against the retrieved evidence and clears the answer
// when the score falls below the threshold. It never converts the
// outcome to an error; a weak answer downgrades to retrieval-only.
type AlignmentScoreStage struct {
	scorer    alignment.Scorer
	threshold float64
	logger    logger.ILogger
}

func NewAlignmentScoreStage(scorer alignment.Scorer, threshold float64, logger logger.ILogger) *AlignmentScoreStage {
	return &AlignmentScoreStage{
		scorer:    scorer,
		threshold: threshold,
		logger:    logger,
	}
}

func (s *AlignmentScoreStage) Name() string {
	return "alignment_score"
}

func (s *AlignmentScoreStage) Process(ctx context.Context, query *Query, out Outcome) (Outcome, error) {
	if errOut, ok := out.(*ResponseError); ok {
		return errOut, nil
	}
	resp := out.(*Response)

	if resp.LLMAnswer == nil {
		// retrieval-only run, nothing to score
		return resp, nil
	}

	claim := *resp.LLMAnswer
	result, err := s.scorer.Score(ctx, buildEvidence(resp.ContentMatches), claim)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if result == nil {
		// judge produced no usable score; keep the answer rather than
		// failing the request
		s.logger.Warn("GUARDRAIL", "alignment score unavailable", map[string]interface{}{
			"query_id": resp.QueryId.String(),
		})
		return resp, nil
	}

	resp.DebugInfo["factual_consistency"] = map[string]interface{}{
		"method": s.scorer.Method(),
		"score":  result.Score,
		"reason": result.Reason,
		"claim":  claim,
	}

	if result.Score < s.threshold {
		s.logger.Info("GUARDRAIL", "generated answer below alignment threshold", map[string]interface{}{
			"query_id":  resp.QueryId.String(),
			"score":     result.Score,
			"threshold": s.threshold,
		})
		resp.LLMAnswer = nil
	}

	return resp, nil
}

func buildEvidence(matches []ContentMatch) string {
	var sb strings.Builder
	for _, match := range matches {
		sb.WriteString(match.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}
