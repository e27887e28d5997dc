package services

import "github.com/istitla/istitla/internal/arabictext"

// Question selection is an ordered list of pure selector rules; the first
// rule that yields a candidate wins. Rules never mutate their input.

type selectorRule func([]*Question) *Question

var npsRules = []selectorRule{
	// 1. explicit NPS flag
	func(qs []*Question) *Question {
		for _, q := range qs {
			if q.NPSCalculate {
				return q
			}
		}
		return nil
	},
	// 2. semantic tag
	func(qs []*Question) *Question {
		for _, q := range qs {
			if q.SemanticTag == SemanticNPS {
				return q
			}
		}
		return nil
	},
	// 3. rating question whose text reads like a recommendation ask
	func(qs []*Question) *Question {
		for _, q := range qs {
			if q.Type == QuestionRating && arabictext.MatchesIntent(q.Text, arabictext.NPSKeywords) {
				return q
			}
		}
		return nil
	},
	// 4. any rating question
	func(qs []*Question) *Question {
		for _, q := range qs {
			if q.Type == QuestionRating {
				return q
			}
		}
		return nil
	},
}

var csatRules = []selectorRule{
	// 1. explicit CSAT flag
	func(qs []*Question) *Question {
		for _, q := range qs {
			if q.CSATCalculate {
				return q
			}
		}
		return nil
	},
	// 2. semantic tag
	func(qs []*Question) *Question {
		for _, q := range qs {
			if q.SemanticTag == SemanticCSAT {
				return q
			}
		}
		return nil
	},
	// 3. intent-matched question, preferring rating over yes/no over
	// single choice
	func(qs []*Question) *Question {
		for _, qt := range []QuestionType{QuestionRating, QuestionYesNo, QuestionSingleChoice} {
			for _, q := range qs {
				if q.Type == qt && arabictext.MatchesIntent(q.Text, arabictext.CSATKeywords) {
					return q
				}
			}
		}
		return nil
	},
	// 4. any question whose text matches the satisfaction vocabulary
	func(qs []*Question) *Question {
		for _, q := range qs {
			if arabictext.MatchesIntent(q.Text, arabictext.CSATKeywords) {
				return q
			}
		}
		return nil
	},
}

func selectQuestion(questions []*Question, rules []selectorRule) *Question {
	for _, rule := range rules {
		if q := rule(questions); q != nil {
			return q
		}
	}
	return nil
}

// SelectNPSQuestion picks the question NPS should be computed from, or nil
// when no rule yields a candidate.
func SelectNPSQuestion(questions []*Question) *Question {
	return selectQuestion(questions, npsRules)
}

// SelectCSATQuestion picks the question CSAT should be computed from, or
// nil when no rule yields a candidate.
func SelectCSATQuestion(questions []*Question) *Question {
	return selectQuestion(questions, csatRules)
}
