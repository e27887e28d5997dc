package arabictext

import "strings"

// Verdict is the outcome of yes/no classification.
type Verdict int

const (
	Unknown Verdict = iota
	Yes
	No
)

func (v Verdict) String() string {
	switch v {
	case Yes:
		return "yes"
	case No:
		return "no"
	}
	return "unknown"
}

// ClassifyYesNo maps free text to a yes/no/unknown verdict. Matching is
// bidirectional containment: a keyword matches when it is a substring of
// the normalized text or the normalized text is a substring of the
// keyword. YES keywords are checked before NO keywords.
//
// Bidirectional containment is deliberately permissive and can over-match
// very short tokens; the behavior is kept for parity with the classifier
// this replaces.
func ClassifyYesNo(text string) Verdict {
	normalized := Normalize(text, false)
	if normalized == "" {
		return Unknown
	}
	for _, kw := range yesKeywords {
		if strings.Contains(normalized, kw) || strings.Contains(kw, normalized) {
			return Yes
		}
	}
	for _, kw := range noKeywords {
		if strings.Contains(normalized, kw) || strings.Contains(kw, normalized) {
			return No
		}
	}
	return Unknown
}
