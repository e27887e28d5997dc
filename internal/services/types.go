package services

import "time"

// QuestionType enumerates the answer formats the analytics engine
// understands. Anything else is treated as free text and ignored by the
// NPS/CSAT selectors unless keyword matching pulls it in.
type QuestionType string

const (
	QuestionRating       QuestionType = "rating"
	QuestionSingleChoice QuestionType = "single_choice"
	QuestionYesNo        QuestionType = "yes_no"
	QuestionOther        QuestionType = "other"
)

// SemanticTag marks a question's analytics role when the author labeled it
// explicitly instead of relying on the boolean flags.
type SemanticTag string

const (
	SemanticNone SemanticTag = ""
	SemanticNPS  SemanticTag = "nps"
	SemanticCSAT SemanticTag = "csat"
)

// Default rating scale when a question declares none.
const (
	defaultMinScale = 0
	defaultMaxScale = 5
)

type Survey struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id,omitempty"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type Question struct {
	ID            string       `json:"id"`
	SurveyID      string       `json:"survey_id"`
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	NPSCalculate  bool         `json:"nps_calculate,omitempty"`
	CSATCalculate bool         `json:"csat_calculate,omitempty"`
	MinScale      *int         `json:"min_scale,omitempty"`
	MaxScale      *int         `json:"max_scale,omitempty"`
	SemanticTag   SemanticTag  `json:"semantic_tag,omitempty"`
	Position      int          `json:"position,omitempty"`
}

// ScaleBounds returns the declared rating scale with the 0/5 defaults
// applied for absent bounds. Validity (min < max) is the caller's concern.
func (q *Question) ScaleBounds() (minScale, maxScale int) {
	minScale, maxScale = defaultMinScale, defaultMaxScale
	if q.MinScale != nil {
		minScale = *q.MinScale
	}
	if q.MaxScale != nil {
		maxScale = *q.MaxScale
	}
	return minScale, maxScale
}

// HasExplicitScale reports whether both bounds were declared by the author
// rather than defaulted.
func (q *Question) HasExplicitScale() bool {
	return q.MinScale != nil && q.MaxScale != nil
}

type QuestionOption struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
	// SatisfactionValue maps the option to a CSAT sentiment: 2 satisfied,
	// 1 neutral, 0 dissatisfied. Nil means legacy data without a mapping.
	SatisfactionValue *int `json:"satisfaction_value,omitempty"`
}

// Answer carries the already-decrypted text value of one answered question.
// The value may be empty, malformed, or out of range; aggregators tolerate
// all of that per item.
type Answer struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	ResponseID string `json:"response_id"`
	Value      string `json:"value"`
}

type Response struct {
	ID          string     `json:"id"`
	SurveyID    string     `json:"survey_id"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	IsComplete  bool       `json:"is_complete"`
}

// Countable reports whether the response contributes to time-bucketed
// analytics: complete and carrying a submission instant.
func (r *Response) Countable() bool {
	return r != nil && r.IsComplete && r.SubmittedAt != nil
}

type Tenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	PassHash  []byte    `json:"-"`
	TenantID  string    `json:"tenant_id"`
	CreatedAt time.Time `json:"created_at"`
}
