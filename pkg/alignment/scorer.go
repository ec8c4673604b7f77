package alignment

import "context"

// Result is one factual-consistency judgment: how well the claim is
// supported by the evidence, on a 0-1 scale.
type Result struct {
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// Scorer computes an alignment score between retrieved evidence and a
// generated claim. Implementations: the external AlignScore API and an
// LLM-as-judge fallback.
type Scorer interface {
	Method() string
	Score(ctx context.Context, evidence, claim string) (*Result, error)
}
