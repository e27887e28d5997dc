package arabictext

import "strings"

// Sentiment is the outcome of choice-answer classification.
type Sentiment int

const (
	SentimentUnknown Sentiment = iota
	Satisfied
	Neutral
	Dissatisfied
)

func (s Sentiment) String() string {
	switch s {
	case Satisfied:
		return "satisfied"
	case Neutral:
		return "neutral"
	case Dissatisfied:
		return "dissatisfied"
	}
	return "unknown"
}

// MatchesIntent reports whether the normalized text contains any keyword
// from the set. Used to detect whether a question's display text concerns
// a target concept such as recommendation likelihood or satisfaction.
func MatchesIntent(text string, keywords []string) bool {
	normalized := Normalize(text, false)
	if normalized == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}

// ClassifyChoice classifies a single-choice answer's sentiment against the
// curated keyword sets. Precedence is satisfied, then dissatisfied, then
// neutral; the first set with a match wins.
func ClassifyChoice(text string) Sentiment {
	normalized := Normalize(text, false)
	if normalized == "" {
		return SentimentUnknown
	}
	if containsAny(normalized, satisfiedKeywords) {
		return Satisfied
	}
	if containsAny(normalized, dissatisfiedKeywords) {
		return Dissatisfied
	}
	if containsAny(normalized, neutralKeywords) {
		return Neutral
	}
	return SentimentUnknown
}

func containsAny(normalized string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			return true
		}
	}
	return false
}
