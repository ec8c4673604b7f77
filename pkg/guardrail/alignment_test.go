package guardrail

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-question-answer-be/pkg/alignment"

	"github.com/google/uuid"
)

type fakeScorer struct {
	result *alignment.Result
	err    error

	gotEvidence string
	gotClaim    string
}

func (s *fakeScorer) Method() string { return "fake" }

func (s *fakeScorer) Score(ctx context.Context, evidence, claim string) (*alignment.Result, error) {
	s.gotEvidence = evidence
	s.gotClaim = claim
	return s.result, s.err
}

func newAnsweredResponse(answer string) *Response {
	resp := NewResponse(uuid.New(), "secret")
	resp.ContentMatches = []ContentMatch{
		{Title: "Malaria", Text: "Malaria causes fever and chills.", ContentId: uuid.New(), Score: 0.9},
		{Title: "Treatment", Text: "Treatment uses artemisinin.", ContentId: uuid.New(), Score: 0.8},
	}
	resp.LLMAnswer = &answer
	return resp
}

func TestAlignmentKeepsAnswerAboveThreshold(t *testing.T) {
	scorer := &fakeScorer{result: &alignment.Result{Score: 0.92, Reason: "well grounded"}}
	stage := NewAlignmentScoreStage(scorer, 0.7, nopLogger{})
	resp := newAnsweredResponse("Malaria causes fever.")

	out, err := stage.Process(context.Background(), NewQuery("q", nil), resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.(*Response)
	if got.LLMAnswer == nil {
		t.Fatal("answer dropped despite passing score")
	}

	fc, ok := got.DebugInfo["factual_consistency"].(map[string]interface{})
	if !ok {
		t.Fatalf("factual_consistency missing: %v", got.DebugInfo)
	}
	if fc["score"] != 0.92 || fc["method"] != "fake" || fc["claim"] != "Malaria causes fever." {
		t.Errorf("factual_consistency = %v", fc)
	}
	// evidence is the newline-joined retrieved texts
	if !strings.Contains(scorer.gotEvidence, "Malaria causes fever and chills.\n") ||
		!strings.Contains(scorer.gotEvidence, "Treatment uses artemisinin.\n") {
		t.Errorf("evidence = %q", scorer.gotEvidence)
	}
}

func TestAlignmentDropsAnswerBelowThreshold(t *testing.T) {
	scorer := &fakeScorer{result: &alignment.Result{Score: 0.3, Reason: "not grounded"}}
	stage := NewAlignmentScoreStage(scorer, 0.7, nopLogger{})
	resp := newAnsweredResponse("The moon is made of cheese.")

	out, err := stage.Process(context.Background(), NewQuery("q", nil), resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.(*Response)
	if got.LLMAnswer != nil {
		t.Fatal("low-scoring answer must be dropped")
	}
	// the score is still recorded for debugging even though the answer went away
	if _, ok := got.DebugInfo["factual_consistency"]; !ok {
		t.Error("factual_consistency missing after downgrade")
	}
}

func TestAlignmentSkipsWithoutAnswer(t *testing.T) {
	scorer := &fakeScorer{err: errors.New("must not be called")}
	stage := NewAlignmentScoreStage(scorer, 0.7, nopLogger{})
	resp := NewResponse(uuid.New(), "secret")

	out, err := stage.Process(context.Background(), NewQuery("q", nil), resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.(*Response) != resp {
		t.Fatal("expected pass-through for retrieval-only response")
	}
	if scorer.gotClaim != "" {
		t.Error("scorer called for a response without an answer")
	}
}

func TestAlignmentNilResultKeepsAnswer(t *testing.T) {
	scorer := &fakeScorer{result: nil}
	stage := NewAlignmentScoreStage(scorer, 0.7, nopLogger{})
	resp := newAnsweredResponse("Some answer.")

	out, err := stage.Process(context.Background(), NewQuery("q", nil), resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.(*Response)
	if got.LLMAnswer == nil {
		t.Fatal("answer must survive an unusable judge result")
	}
	if _, ok := got.DebugInfo["factual_consistency"]; ok {
		t.Error("factual_consistency recorded without a score")
	}
}

func TestAlignmentScorerFailureIsHardFault(t *testing.T) {
	scorer := &fakeScorer{err: errors.New("scoring service down")}
	stage := NewAlignmentScoreStage(scorer, 0.7, nopLogger{})
	resp := newAnsweredResponse("Some answer.")

	_, err := stage.Process(context.Background(), NewQuery("q", nil), resp)
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}
