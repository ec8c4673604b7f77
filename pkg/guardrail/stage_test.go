package guardrail

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-question-answer-be/pkg/llm"

	"github.com/google/uuid"
)

// nopLogger satisfies logger.ILogger without output.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// scriptedProvider answers each system prompt with a canned reply.
type scriptedProvider struct {
	replies map[string]string
	err     error
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	reply, ok := p.replies[history[0].Content]
	if !ok {
		return "", errors.New("unexpected prompt")
	}
	return reply, nil
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func newTestOutcome() (*Query, *Response) {
	query := NewQuery("what are the symptoms of malaria?", nil)
	resp := NewResponse(uuid.New(), "secret")
	return query, resp
}

func TestLanguageIdentifySupported(t *testing.T) {
	provider := &scriptedProvider{replies: map[string]string{
		languageIdentificationPrompt: "ENGLISH",
	}}
	stage := NewLanguageIdentifyStage(provider, nopLogger{})
	query, resp := newTestOutcome()

	out, err := stage.Process(context.Background(), query, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := out.(*Response)
	if !ok {
		t.Fatalf("expected healthy response, got %T", out)
	}
	if query.OriginalLanguage == nil || *query.OriginalLanguage != LanguageEnglish {
		t.Errorf("query language not recorded: %v", query.OriginalLanguage)
	}
	if got.DebugInfo["original_language"] != "ENGLISH" {
		t.Errorf("debug original_language = %v", got.DebugInfo["original_language"])
	}
	if got.DebugInfo["query_text_original"] != query.OriginalText {
		t.Errorf("debug query_text_original = %v", got.DebugInfo["query_text_original"])
	}
}

func TestLanguageIdentifyUnintelligible(t *testing.T) {
	provider := &scriptedProvider{replies: map[string]string{
		languageIdentificationPrompt: "UNINTELLIGIBLE",
	}}
	stage := NewLanguageIdentifyStage(provider, nopLogger{})
	query, resp := newTestOutcome()

	out, err := stage.Process(context.Background(), query, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	errOut, ok := out.(*ResponseError)
	if !ok {
		t.Fatalf("expected ResponseError, got %T", out)
	}
	if errOut.ErrorType != ErrorUnintelligibleInput {
		t.Errorf("ErrorType = %v, want %v", errOut.ErrorType, ErrorUnintelligibleInput)
	}
	wantMessage := "Unintelligible input. The following languages are supported: " + strings.Join(SupportedLanguages(), ", ") + "."
	if errOut.ErrorMessage != wantMessage {
		t.Errorf("ErrorMessage = %q, want %q", errOut.ErrorMessage, wantMessage)
	}
	// debug info collected before the rejection must survive
	if errOut.DebugInfo["original_language"] != "UNINTELLIGIBLE" {
		t.Errorf("debug info not carried into error: %v", errOut.DebugInfo)
	}
}

func TestLanguageIdentifyUnrecognizedLabelBlocks(t *testing.T) {
	provider := &scriptedProvider{replies: map[string]string{
		languageIdentificationPrompt: "definitely not a label",
	}}
	stage := NewLanguageIdentifyStage(provider, nopLogger{})
	query, resp := newTestOutcome()

	out, err := stage.Process(context.Background(), query, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	errOut, ok := out.(*ResponseError)
	if !ok {
		t.Fatalf("expected ResponseError, got %T", out)
	}
	if errOut.ErrorType != ErrorUnsupportedLanguage {
		t.Errorf("ErrorType = %v, want %v", errOut.ErrorType, ErrorUnsupportedLanguage)
	}
	wantMessage := "Unsupported language. Only the following languages are supported: " + strings.Join(SupportedLanguages(), ", ") + "."
	if errOut.ErrorMessage != wantMessage {
		t.Errorf("ErrorMessage = %q, want %q", errOut.ErrorMessage, wantMessage)
	}
}

func TestTranslateDefaultLanguageNoOp(t *testing.T) {
	stage := NewTranslateStage(&scriptedProvider{}, nopLogger{})
	query, resp := newTestOutcome()
	lang := LanguageEnglish
	query.OriginalLanguage = &lang

	out, err := stage.Process(context.Background(), query, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := out.(*Response); !ok || got != resp {
		t.Fatalf("expected pass-through response, got %T", out)
	}
	if query.Text != query.OriginalText {
		t.Errorf("text changed on no-op translate: %q", query.Text)
	}
	if _, ok := resp.DebugInfo["translated_question"]; ok {
		t.Errorf("translated_question recorded for no-op translate")
	}
}

func TestTranslateRewritesWorkingText(t *testing.T) {
	provider := &scriptedProvider{replies: map[string]string{
		translatePrompt(LanguageFrench): "what are the symptoms of malaria?",
	}}
	stage := NewTranslateStage(provider, nopLogger{})
	query, resp := newTestOutcome()
	query.Text = "quels sont les symptomes du paludisme?"
	lang := LanguageFrench
	query.OriginalLanguage = &lang

	out, err := stage.Process(context.Background(), query, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.(*Response)
	if query.Text != "what are the symptoms of malaria?" {
		t.Errorf("working text not rewritten: %q", query.Text)
	}
	if got.DebugInfo["translated_question"] != "what are the symptoms of malaria?" {
		t.Errorf("debug translated_question = %v", got.DebugInfo["translated_question"])
	}
}

func TestTranslateSentinelBecomesError(t *testing.T) {
	provider := &scriptedProvider{replies: map[string]string{
		translatePrompt(LanguageHindi): TranslateFailedMessage,
	}}
	stage := NewTranslateStage(provider, nopLogger{})
	query, resp := newTestOutcome()
	lang := LanguageHindi
	query.OriginalLanguage = &lang

	out, err := stage.Process(context.Background(), query, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	errOut, ok := out.(*ResponseError)
	if !ok {
		t.Fatalf("expected ResponseError, got %T", out)
	}
	if errOut.ErrorType != ErrorUnableToTranslate {
		t.Errorf("ErrorType = %v", errOut.ErrorType)
	}
}

func TestTranslateWithoutLanguageIsHardFault(t *testing.T) {
	stage := NewTranslateStage(&scriptedProvider{}, nopLogger{})
	query, resp := newTestOutcome()

	_, err := stage.Process(context.Background(), query, resp)
	if !errors.Is(err, ErrStageOrdering) {
		t.Fatalf("expected ErrStageOrdering, got %v", err)
	}
}

func TestParaphraseSentinelBecomesError(t *testing.T) {
	provider := &scriptedProvider{replies: map[string]string{
		paraphrasePrompt: ParaphraseFailedMessage,
	}}
	stage := NewParaphraseStage(provider, nopLogger{})
	query, resp := newTestOutcome()

	out, err := stage.Process(context.Background(), query, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	errOut, ok := out.(*ResponseError)
	if !ok {
		t.Fatalf("expected ResponseError, got %T", out)
	}
	if errOut.ErrorType != ErrorUnableToParaphrase {
		t.Errorf("ErrorType = %v", errOut.ErrorType)
	}
}

func TestParaphraseRewritesWorkingText(t *testing.T) {
	provider := &scriptedProvider{replies: map[string]string{
		paraphrasePrompt: "malaria symptoms",
	}}
	stage := NewParaphraseStage(provider, nopLogger{})
	query, resp := newTestOutcome()

	out, err := stage.Process(context.Background(), query, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.(*Response)
	if query.Text != "malaria symptoms" {
		t.Errorf("working text = %q", query.Text)
	}
	if got.DebugInfo["paraphrased_question"] != "malaria symptoms" {
		t.Errorf("debug paraphrased_question = %v", got.DebugInfo["paraphrased_question"])
	}
}

func TestSafetyClassifyBlocksUnsafe(t *testing.T) {
	provider := &scriptedProvider{replies: map[string]string{
		safetyClassificationPrompt: "INAPPROPRIATE_LANGUAGE",
	}}
	stage := NewSafetyClassifyStage(provider, nopLogger{})
	query, resp := newTestOutcome()

	out, err := stage.Process(context.Background(), query, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	errOut, ok := out.(*ResponseError)
	if !ok {
		t.Fatalf("expected ResponseError, got %T", out)
	}
	if errOut.ErrorType != ErrorQueryUnsafe {
		t.Errorf("ErrorType = %v", errOut.ErrorType)
	}
	if errOut.ErrorMessage != "inappropriate_language found." {
		t.Errorf("ErrorMessage = %q", errOut.ErrorMessage)
	}
	if errOut.DebugInfo["query_text"] != query.Text {
		t.Errorf("offending text not recorded: %v", errOut.DebugInfo)
	}
}

func TestSafetyClassifyPassesSafe(t *testing.T) {
	provider := &scriptedProvider{replies: map[string]string{
		safetyClassificationPrompt: "SAFE",
	}}
	stage := NewSafetyClassifyStage(provider, nopLogger{})
	query, resp := newTestOutcome()

	out, err := stage.Process(context.Background(), query, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.(*Response)
	if got.DebugInfo["safety_classification"] != "SAFE" {
		t.Errorf("debug safety_classification = %v", got.DebugInfo["safety_classification"])
	}
}

func TestTopicClassifyUnknownPasses(t *testing.T) {
	provider := &scriptedProvider{replies: map[string]string{
		topicClassificationPrompt: "no idea honestly",
	}}
	stage := NewTopicClassifyStage(provider, nopLogger{})
	query, resp := newTestOutcome()

	out, err := stage.Process(context.Background(), query, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := out.(*Response)
	if !ok {
		t.Fatalf("UNKNOWN must not block, got %T", out)
	}
	if got.DebugInfo["on_off_topic"] != "UNKNOWN" {
		t.Errorf("debug on_off_topic = %v", got.DebugInfo["on_off_topic"])
	}
}

func TestTopicClassifyOffTopicBlocks(t *testing.T) {
	provider := &scriptedProvider{replies: map[string]string{
		topicClassificationPrompt: "OFF TOPIC",
	}}
	stage := NewTopicClassifyStage(provider, nopLogger{})
	query, resp := newTestOutcome()

	out, err := stage.Process(context.Background(), query, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	errOut, ok := out.(*ResponseError)
	if !ok {
		t.Fatalf("expected ResponseError, got %T", out)
	}
	if errOut.ErrorType != ErrorOffTopic {
		t.Errorf("ErrorType = %v", errOut.ErrorType)
	}
	if errOut.ErrorMessage != "Off-topic query." {
		t.Errorf("ErrorMessage = %q", errOut.ErrorMessage)
	}
}

func TestChainShortCircuitsOnError(t *testing.T) {
	// first stage rejects, remaining stages must pass the error through
	provider := &scriptedProvider{replies: map[string]string{
		languageIdentificationPrompt: "UNSUPPORTED",
		safetyClassificationPrompt:   "SAFE",
		topicClassificationPrompt:    "ON TOPIC",
		paraphrasePrompt:             "anything",
	}}
	chain := NewChain(nopLogger{},
		NewLanguageIdentifyStage(provider, nopLogger{}),
		NewTranslateStage(provider, nopLogger{}),
		NewParaphraseStage(provider, nopLogger{}),
		NewSafetyClassifyStage(provider, nopLogger{}),
		NewTopicClassifyStage(provider, nopLogger{}),
	)
	query, resp := newTestOutcome()

	out, err := chain.Run(context.Background(), query, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	errOut, ok := out.(*ResponseError)
	if !ok {
		t.Fatalf("expected ResponseError, got %T", out)
	}
	if errOut.ErrorType != ErrorUnsupportedLanguage {
		t.Errorf("ErrorType = %v", errOut.ErrorType)
	}
	// the later stages never ran, so none of their debug keys exist
	for _, key := range []string{"paraphrased_question", "safety_classification", "on_off_topic"} {
		if _, ok := errOut.DebugInfo[key]; ok {
			t.Errorf("stage after rejection wrote debug key %q", key)
		}
	}
}

func TestChainAccumulatesDebugInfo(t *testing.T) {
	provider := &scriptedProvider{replies: map[string]string{
		languageIdentificationPrompt: "ENGLISH",
		paraphrasePrompt:             "malaria symptoms",
		safetyClassificationPrompt:   "SAFE",
		topicClassificationPrompt:    "ON TOPIC",
	}}
	chain := NewChain(nopLogger{},
		NewLanguageIdentifyStage(provider, nopLogger{}),
		NewTranslateStage(provider, nopLogger{}),
		NewParaphraseStage(provider, nopLogger{}),
		NewSafetyClassifyStage(provider, nopLogger{}),
		NewTopicClassifyStage(provider, nopLogger{}),
	)
	query, resp := newTestOutcome()

	out, err := chain.Run(context.Background(), query, resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.(*Response)

	for key, want := range map[string]interface{}{
		"query_text_original":   "what are the symptoms of malaria?",
		"original_language":     "ENGLISH",
		"paraphrased_question":  "malaria symptoms",
		"safety_classification": "SAFE",
		"on_off_topic":          "ON_TOPIC",
	} {
		if got.DebugInfo[key] != want {
			t.Errorf("DebugInfo[%q] = %v, want %v", key, got.DebugInfo[key], want)
		}
	}
}

func TestChainPropagatesUpstreamFault(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("connection refused")}
	chain := NewChain(nopLogger{},
		NewLanguageIdentifyStage(provider, nopLogger{}),
	)
	query, resp := newTestOutcome()

	_, err := chain.Run(context.Background(), query, resp)
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestChainKeepsConfiguredStageOrder(t *testing.T) {
	provider := &scriptedProvider{}
	chain := NewChain(nopLogger{},
		NewLanguageIdentifyStage(provider, nopLogger{}),
		NewTranslateStage(provider, nopLogger{}),
		NewParaphraseStage(provider, nopLogger{}),
		NewSafetyClassifyStage(provider, nopLogger{}),
		NewTopicClassifyStage(provider, nopLogger{}),
	)

	want := []string{"language_identify", "translate", "paraphrase", "safety_classify", "topic_classify"}
	stages := chain.Stages()
	if len(stages) != len(want) {
		t.Fatalf("expected %d stages, got %d", len(want), len(stages))
	}
	for i, stage := range stages {
		if stage.Name() != want[i] {
			t.Errorf("stage %d = %q, want %q", i, stage.Name(), want[i])
		}
	}
}
