package services

import (
	"log"
	"time"

	"github.com/istitla/istitla/internal/arabictext"
)

// AnalyticsStore is the narrow read contract the aggregators consume. The
// host supplies already-materialized, already-decrypted records in bulk;
// a fetch error here is the only failure the analytics operations surface.
type AnalyticsStore interface {
	GetSurvey(id string) (*Survey, error)
	ListQuestions(surveyID string) ([]*Question, error)
	ListOptions(questionID string) ([]*QuestionOption, error)
	ListResponses(surveyID string) ([]*Response, error)
	ListAnswers(questionID string) ([]*Answer, error)
}

// AnalyticsOptions configures the request-independent defaults.
type AnalyticsOptions struct {
	// DefaultTimezone is substituted for invalid or missing request
	// zones. Empty means Asia/Dubai.
	DefaultTimezone string
	// NPSBands overrides the score interpretation table.
	NPSBands []NPSBand
	// ExcludeUnknownYesNo drops unclassifiable yes/no answers from CSAT
	// instead of counting them as neutral.
	ExcludeUnknownYesNo bool
}

const fallbackTimezone = "Asia/Dubai"

// AnalyticsService computes the survey analytics read models. It holds no
// mutable state and is safe for concurrent use.
type AnalyticsService struct {
	store          AnalyticsStore
	defaultZone    *time.Location
	bands          []NPSBand
	excludeUnknown bool
}

func NewAnalyticsService(store AnalyticsStore, opts AnalyticsOptions) *AnalyticsService {
	name := opts.DefaultTimezone
	if name == "" {
		name = fallbackTimezone
	}
	zone, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("analytics: default timezone %q unavailable, using UTC: %v", name, err)
		zone = time.UTC
	}
	bands := opts.NPSBands
	if len(bands) == 0 {
		bands = DefaultNPSBands
	}
	return &AnalyticsService{
		store:          store,
		defaultZone:    zone,
		bands:          bands,
		excludeUnknown: opts.ExcludeUnknownYesNo,
	}
}

// resolveLocation loads the requested IANA zone, substituting the
// configured default for empty or invalid names.
func (s *AnalyticsService) resolveLocation(tz string) *time.Location {
	if tz == "" {
		return s.defaultZone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("analytics: unknown timezone %q, using %s: %v", tz, s.defaultZone, err)
		return s.defaultZone
	}
	return loc
}

// resolveGrain parses the group-by parameter, substituting day for
// unrecognized values.
func (s *AnalyticsService) resolveGrain(groupBy string) Grain {
	if groupBy == "" {
		return GrainDay
	}
	grain, ok := ParseGrain(groupBy)
	if !ok {
		log.Printf("analytics: invalid group_by %q, using day", groupBy)
	}
	return grain
}

// Authorize checks that the survey exists and belongs to the tenant
// without computing anything. Callers serving cached analytics must call
// it before the cache lookup so a hit never bypasses ownership.
func (s *AnalyticsService) Authorize(tenantID, surveyID string) error {
	_, err := s.authorize(tenantID, surveyID)
	return err
}

func (s *AnalyticsService) authorize(tenantID, surveyID string) (*Survey, error) {
	sv, err := s.store.GetSurvey(surveyID)
	if err != nil {
		return nil, err
	}
	if sv == nil {
		return nil, NewNotFoundError("survey not found")
	}
	if tenantID != "" && sv.TenantID != tenantID {
		return nil, NewForbiddenError("forbidden")
	}
	return sv, nil
}

// Heatmap buckets the survey's submissions into a 7x24 weekday/hour
// matrix in the requested timezone.
func (s *AnalyticsService) Heatmap(tenantID, surveyID, tz string) (*Heatmap, error) {
	if _, err := s.authorize(tenantID, surveyID); err != nil {
		return nil, err
	}
	responses, err := s.store.ListResponses(surveyID)
	if err != nil {
		return nil, err
	}
	return BuildHeatmap(responses, s.resolveLocation(tz)), nil
}

// NPS selects the survey's NPS question and scores its answers. A nil
// result (with nil error) means no question qualified, the scale was
// unusable, or no valid answer existed.
func (s *AnalyticsService) NPS(tenantID, surveyID string) (*NPSResult, error) {
	if _, err := s.authorize(tenantID, surveyID); err != nil {
		return nil, err
	}
	questions, err := s.store.ListQuestions(surveyID)
	if err != nil {
		return nil, err
	}
	q := SelectNPSQuestion(questions)
	if q == nil {
		log.Printf("analytics: survey %s has no NPS candidate question", surveyID)
		return nil, nil
	}
	answers, err := s.store.ListAnswers(q.ID)
	if err != nil {
		return nil, err
	}
	responses, err := s.store.ListResponses(surveyID)
	if err != nil {
		return nil, err
	}
	complete := make(map[string]bool, len(responses))
	for _, r := range responses {
		complete[r.ID] = r.IsComplete
	}

	values := make([]float64, 0, len(answers))
	for _, a := range answers {
		if !complete[a.ResponseID] {
			continue
		}
		if v, ok := arabictext.ExtractNumber(a.Value); ok {
			values = append(values, v)
		}
	}
	return aggregateNPS(q, values, s.bands), nil
}

// CSATTracking selects the survey's CSAT question, classifies its answers,
// and buckets them by calendar period in the requested timezone. The
// result is an empty (never nil) slice when no question or answer
// qualifies.
func (s *AnalyticsService) CSATTracking(tenantID, surveyID, tz, groupBy string, fillEmpty bool) ([]CSATPeriod, error) {
	if _, err := s.authorize(tenantID, surveyID); err != nil {
		return nil, err
	}
	questions, err := s.store.ListQuestions(surveyID)
	if err != nil {
		return nil, err
	}
	q := SelectCSATQuestion(questions)
	if q == nil {
		log.Printf("analytics: survey %s has no CSAT candidate question", surveyID)
		return []CSATPeriod{}, nil
	}
	answers, err := s.store.ListAnswers(q.ID)
	if err != nil {
		return nil, err
	}
	options, err := s.store.ListOptions(q.ID)
	if err != nil {
		return nil, err
	}
	responses, err := s.store.ListResponses(surveyID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*Response, len(responses))
	for _, r := range responses {
		byID[r.ID] = r
	}

	loc := s.resolveLocation(tz)
	classified := classifyCSATAnswers(q, answers, options, byID, loc, s.excludeUnknown)
	return bucketCSAT(classified, s.resolveGrain(groupBy), fillEmpty), nil
}
