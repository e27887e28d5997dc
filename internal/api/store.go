package api

import (
	"sort"
	"strings"
	"sync"

	"github.com/istitla/istitla/internal/services"
)

// Store is everything the HTTP layer needs from persistence: the union of
// the narrow per-service contracts. Both the sqlite store and the memory
// store below satisfy it.
type Store interface {
	services.SurveyStore
	services.AnalyticsStore
	services.AuthStore
}

// memoryStore keeps everything in maps behind one RWMutex. It backs tests
// and zero-config deployments; production points at sqlite instead.
type memoryStore struct {
	mu           sync.RWMutex
	surveys      map[string]*services.Survey
	questions    map[string]*services.Question
	bySurvey     map[string][]*services.Question
	options      map[string][]*services.QuestionOption
	responses    map[string][]*services.Response
	answers      map[string][]*services.Answer
	tenants      map[string]*services.Tenant
	usersByEmail map[string]*services.User
}

func NewMemoryStore() Store { return newMemoryStore() }

func newMemoryStore() *memoryStore {
	return &memoryStore{
		surveys:      map[string]*services.Survey{},
		questions:    map[string]*services.Question{},
		bySurvey:     map[string][]*services.Question{},
		options:      map[string][]*services.QuestionOption{},
		responses:    map[string][]*services.Response{},
		answers:      map[string][]*services.Answer{},
		tenants:      map[string]*services.Tenant{},
		usersByEmail: map[string]*services.User{},
	}
}

func (s *memoryStore) AddSurvey(sv *services.Survey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surveys[sv.ID] = sv
	return nil
}

func (s *memoryStore) GetSurvey(id string) (*services.Survey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.surveys[id], nil
}

func (s *memoryStore) AddQuestion(q *services.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[q.ID] = q
	s.bySurvey[q.SurveyID] = append(s.bySurvey[q.SurveyID], q)
	// stable order: author position, then id
	qs := s.bySurvey[q.SurveyID]
	sort.SliceStable(qs, func(i, j int) bool {
		if qs[i].Position != qs[j].Position {
			return qs[i].Position < qs[j].Position
		}
		return qs[i].ID < qs[j].ID
	})
	return nil
}

func (s *memoryStore) GetQuestion(id string) (*services.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.questions[id], nil
}

func (s *memoryStore) ListQuestions(surveyID string) ([]*services.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*services.Question(nil), s.bySurvey[surveyID]...), nil
}

func (s *memoryStore) AddOptions(opts []*services.QuestionOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, opt := range opts {
		s.options[opt.QuestionID] = append(s.options[opt.QuestionID], opt)
	}
	return nil
}

func (s *memoryStore) ListOptions(questionID string) ([]*services.QuestionOption, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*services.QuestionOption(nil), s.options[questionID]...), nil
}

func (s *memoryStore) AddResponse(r *services.Response, answers []*services.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[r.SurveyID] = append(s.responses[r.SurveyID], r)
	for _, a := range answers {
		s.answers[a.QuestionID] = append(s.answers[a.QuestionID], a)
	}
	return nil
}

func (s *memoryStore) ListResponses(surveyID string) ([]*services.Response, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*services.Response(nil), s.responses[surveyID]...), nil
}

func (s *memoryStore) ListAnswers(questionID string) ([]*services.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*services.Answer(nil), s.answers[questionID]...), nil
}

func (s *memoryStore) AddTenant(t *services.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants[t.ID] = t
	return nil
}

func (s *memoryStore) AddUser(u *services.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersByEmail[strings.ToLower(u.Email)] = u
	return nil
}

func (s *memoryStore) FindUserByEmail(email string) (*services.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usersByEmail[strings.ToLower(strings.TrimSpace(email))], nil
}
