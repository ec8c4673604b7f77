package guardrail

import (
	"sort"
	"strings"
)

// IdentifiedLanguage is the closed label set for language identification.
// UNINTELLIGIBLE and UNSUPPORTED are sentinels, not real languages.
type IdentifiedLanguage string

const (
	LanguageEnglish        IdentifiedLanguage = "ENGLISH"
	LanguageSwahili        IdentifiedLanguage = "SWAHILI"
	LanguageFrench         IdentifiedLanguage = "FRENCH"
	LanguageHindi          IdentifiedLanguage = "HINDI"
	LanguageUnintelligible IdentifiedLanguage = "UNINTELLIGIBLE"
	LanguageUnsupported    IdentifiedLanguage = "UNSUPPORTED"
)

// DefaultLanguage is the pipeline's native language. Translate is a no-op
// for queries already in it.
const DefaultLanguage = LanguageEnglish

var supportedLanguages = map[IdentifiedLanguage]bool{
	LanguageEnglish: true,
	LanguageSwahili: true,
	LanguageFrench:  true,
	LanguageHindi:   true,
}

// SupportedLanguages returns the supported set in stable order, for error
// messages enumerating what the caller can use.
func SupportedLanguages() []string {
	names := make([]string, 0, len(supportedLanguages))
	for lang := range supportedLanguages {
		names = append(names, string(lang))
	}
	sort.Strings(names)
	return names
}

func (l IdentifiedLanguage) IsSupported() bool {
	return supportedLanguages[l]
}

var languageLabels = map[string]IdentifiedLanguage{
	"ENGLISH":        LanguageEnglish,
	"SWAHILI":        LanguageSwahili,
	"FRENCH":         LanguageFrench,
	"HINDI":          LanguageHindi,
	"UNINTELLIGIBLE": LanguageUnintelligible,
	"UNSUPPORTED":    LanguageUnsupported,
}

// ParseLanguageLabel maps raw model output onto the closed set. Anything
// unrecognized is UNSUPPORTED: language gating fails safe, not open.
func ParseLanguageLabel(raw string) IdentifiedLanguage {
	if lang, ok := languageLabels[normalizeLabel(raw)]; ok {
		return lang
	}
	return LanguageUnsupported
}

// SafetyClassification is the closed label set for the safety check.
type SafetyClassification string

const (
	SafetySafe                  SafetyClassification = "SAFE"
	SafetyInappropriateLanguage SafetyClassification = "INAPPROPRIATE_LANGUAGE"
	SafetyPromptInjection       SafetyClassification = "PROMPT_INJECTION"
)

var safetyLabels = map[string]SafetyClassification{
	"SAFE":                   SafetySafe,
	"INAPPROPRIATE_LANGUAGE": SafetyInappropriateLanguage,
	"PROMPT_INJECTION":       SafetyPromptInjection,
}

// ParseSafetyLabel fails safe: an unrecognized classifier answer is
// treated as a prompt-injection attempt rather than waved through.
func ParseSafetyLabel(raw string) SafetyClassification {
	if label, ok := safetyLabels[normalizeLabel(raw)]; ok {
		return label
	}
	return SafetyPromptInjection
}

// TopicClassification is the closed label set for the on/off-topic check.
type TopicClassification string

const (
	TopicOnTopic  TopicClassification = "ON_TOPIC"
	TopicOffTopic TopicClassification = "OFF_TOPIC"
	TopicUnknown  TopicClassification = "UNKNOWN"
)

var topicLabels = map[string]TopicClassification{
	"ON_TOPIC":  TopicOnTopic,
	"OFF_TOPIC": TopicOffTopic,
	"UNKNOWN":   TopicUnknown,
}

// ParseTopicLabel fails open: only an explicit OFF_TOPIC blocks the
// query, everything unrecognized is UNKNOWN and passes.
func ParseTopicLabel(raw string) TopicClassification {
	if label, ok := topicLabels[normalizeLabel(raw)]; ok {
		return label
	}
	return TopicUnknown
}

func normalizeLabel(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, `"'.`)
	cleaned = strings.ReplaceAll(cleaned, " ", "_")
	return strings.ToUpper(cleaned)
}
