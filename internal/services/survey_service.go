package services

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SurveyStore abstracts the persistence operations the survey-management
// workflow needs.
type SurveyStore interface {
	AddSurvey(sv *Survey) error
	GetSurvey(id string) (*Survey, error)
	AddQuestion(q *Question) error
	GetQuestion(id string) (*Question, error)
	ListQuestions(surveyID string) ([]*Question, error)
	AddOptions(opts []*QuestionOption) error
	AddResponse(r *Response, answers []*Answer) error
}

// SubmittedAnswer mirrors the inbound payload for one answered question.
type SubmittedAnswer struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
}

// SurveyService hosts survey creation and response submission.
type SurveyService struct {
	store SurveyStore
	now   func() time.Time
	idGen func(n int) string
}

func NewSurveyService(store SurveyStore) *SurveyService {
	return &SurveyService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: shortID,
	}
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}

func (s *SurveyService) CreateSurvey(tenantID, title string) (*Survey, error) {
	if tenantID == "" {
		return nil, NewForbiddenError("unauthorized")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, NewInvalidError("title required")
	}
	sv := &Survey{ID: s.idGen(8), TenantID: tenantID, Title: title, CreatedAt: s.now()}
	if err := s.store.AddSurvey(sv); err != nil {
		return nil, err
	}
	return sv, nil
}

// AddQuestion validates the analytics flags against the question type
// before storing: the NPS flag is only meaningful on rating questions and
// the CSAT flag only on single-choice, rating, and yes/no questions.
func (s *SurveyService) AddQuestion(tenantID string, q *Question) (*Question, error) {
	if q == nil || strings.TrimSpace(q.Text) == "" {
		return nil, NewInvalidError("question text required")
	}
	sv, err := s.store.GetSurvey(q.SurveyID)
	if err != nil {
		return nil, err
	}
	if sv == nil {
		return nil, NewNotFoundError("survey not found")
	}
	if tenantID != "" && sv.TenantID != tenantID {
		return nil, NewForbiddenError("forbidden")
	}
	switch q.Type {
	case QuestionRating, QuestionSingleChoice, QuestionYesNo, QuestionOther:
	case "":
		q.Type = QuestionOther
	default:
		return nil, NewInvalidError("unknown question type")
	}
	if q.NPSCalculate && q.Type != QuestionRating {
		return nil, NewInvalidError("nps_calculate is only valid for rating questions")
	}
	if q.CSATCalculate {
		switch q.Type {
		case QuestionSingleChoice, QuestionRating, QuestionYesNo:
		default:
			return nil, NewInvalidError("csat_calculate is only valid for single_choice, rating, or yes_no questions")
		}
	}
	if q.Type == QuestionRating && q.HasExplicitScale() {
		if minScale, maxScale := q.ScaleBounds(); minScale >= maxScale {
			return nil, NewInvalidError("min_scale must be less than max_scale")
		}
	}
	if q.ID == "" {
		q.ID = s.idGen(8)
	}
	if err := s.store.AddQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

// AddOptions stores the answer options of a single-choice question. For
// CSAT questions every option should carry a satisfaction value; legacy
// gaps are tolerated (the classifier falls back to keywords) but logged.
func (s *SurveyService) AddOptions(tenantID, questionID string, opts []*QuestionOption) ([]*QuestionOption, error) {
	q, err := s.store.GetQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, NewNotFoundError("question not found")
	}
	sv, err := s.store.GetSurvey(q.SurveyID)
	if err != nil {
		return nil, err
	}
	if sv == nil {
		return nil, NewNotFoundError("survey not found")
	}
	if tenantID != "" && sv.TenantID != tenantID {
		return nil, NewForbiddenError("forbidden")
	}
	missing := 0
	for _, opt := range opts {
		if strings.TrimSpace(opt.Text) == "" {
			return nil, NewInvalidError("option text required")
		}
		if opt.SatisfactionValue != nil {
			if v := *opt.SatisfactionValue; v < 0 || v > 2 {
				return nil, NewInvalidError("satisfaction_value must be 0, 1, or 2")
			}
		} else {
			missing++
		}
		if opt.ID == "" {
			opt.ID = s.idGen(8)
		}
		opt.QuestionID = questionID
	}
	if missing > 0 && q.CSATCalculate && q.Type == QuestionSingleChoice {
		log.Printf("survey: question %s is CSAT single_choice but %d option(s) lack satisfaction_value; keyword fallback will apply", q.ID, missing)
	}
	if err := s.store.AddOptions(opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// SubmitResponse stores one respondent's answers. Unknown question ids are
// skipped rather than failing the batch.
func (s *SurveyService) SubmitResponse(surveyID string, submitted []SubmittedAnswer, complete bool) (*Response, error) {
	sv, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, err
	}
	if sv == nil {
		return nil, NewNotFoundError("survey not found")
	}
	known := map[string]bool{}
	questions, err := s.store.ListQuestions(surveyID)
	if err != nil {
		return nil, err
	}
	for _, q := range questions {
		known[q.ID] = true
	}

	submittedAt := s.now()
	resp := &Response{
		ID:          s.idGen(12),
		SurveyID:    surveyID,
		SubmittedAt: &submittedAt,
		IsComplete:  complete,
	}
	answers := make([]*Answer, 0, len(submitted))
	for _, sa := range submitted {
		if sa.QuestionID == "" || !known[sa.QuestionID] {
			continue
		}
		answers = append(answers, &Answer{
			ID:         s.idGen(12),
			QuestionID: sa.QuestionID,
			ResponseID: resp.ID,
			Value:      sa.Value,
		})
	}
	if err := s.store.AddResponse(resp, answers); err != nil {
		return nil, err
	}
	return resp, nil
}
