package guardrail

import (
	"testing"
)

func TestParseLanguageLabel(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want IdentifiedLanguage
	}{
		{name: "exact match", raw: "ENGLISH", want: LanguageEnglish},
		{name: "lowercase", raw: "swahili", want: LanguageSwahili},
		{name: "surrounding whitespace", raw: "  FRENCH \n", want: LanguageFrench},
		{name: "quoted", raw: `"HINDI"`, want: LanguageHindi},
		{name: "trailing period", raw: "ENGLISH.", want: LanguageEnglish},
		{name: "unintelligible sentinel", raw: "UNINTELLIGIBLE", want: LanguageUnintelligible},
		{name: "unrecognized falls back to unsupported", raw: "KLINGON", want: LanguageUnsupported},
		{name: "empty falls back to unsupported", raw: "", want: LanguageUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLanguageLabel(tt.raw); got != tt.want {
				t.Errorf("ParseLanguageLabel(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseSafetyLabel(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want SafetyClassification
	}{
		{name: "safe", raw: "SAFE", want: SafetySafe},
		{name: "inappropriate with spaces", raw: "INAPPROPRIATE LANGUAGE", want: SafetyInappropriateLanguage},
		{name: "prompt injection", raw: "PROMPT_INJECTION", want: SafetyPromptInjection},
		{name: "unrecognized fails safe", raw: "SOMETHING ELSE", want: SafetyPromptInjection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSafetyLabel(tt.raw); got != tt.want {
				t.Errorf("ParseSafetyLabel(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseTopicLabel(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want TopicClassification
	}{
		{name: "on topic with spaces", raw: "ON TOPIC", want: TopicOnTopic},
		{name: "off topic underscored", raw: "OFF_TOPIC", want: TopicOffTopic},
		{name: "lowercase mixed", raw: "off topic", want: TopicOffTopic},
		{name: "unrecognized fails open to unknown", raw: "MAYBE", want: TopicUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTopicLabel(tt.raw); got != tt.want {
				t.Errorf("ParseTopicLabel(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSupportedLanguagesStableOrder(t *testing.T) {
	first := SupportedLanguages()
	second := SupportedLanguages()

	if len(first) != 4 {
		t.Fatalf("expected 4 supported languages, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order not stable: %v vs %v", first, second)
		}
	}
}
