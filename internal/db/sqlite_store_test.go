package db

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/istitla/istitla/internal/services"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	if err := RunMigrations(conn, ""); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store, err := NewSQLiteStore(conn)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	return store
}

func intPtr(v int) *int { return &v }

func TestSurveyRoundTrip(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddTenant(&services.Tenant{ID: "t1", Name: "اختبار"}); err != nil {
		t.Fatalf("AddTenant: %v", err)
	}
	created := time.Date(2025, 9, 22, 12, 0, 0, 0, time.UTC)
	sv := &services.Survey{ID: "s1", TenantID: "t1", Title: "تقييم الخدمة", CreatedAt: created}
	if err := store.AddSurvey(sv); err != nil {
		t.Fatalf("AddSurvey: %v", err)
	}

	got, err := store.GetSurvey("s1")
	if err != nil {
		t.Fatalf("GetSurvey: %v", err)
	}
	if got == nil || got.Title != sv.Title || got.TenantID != "t1" || !got.CreatedAt.Equal(created) {
		t.Fatalf("got %+v", got)
	}

	missing, err := store.GetSurvey("nope")
	if err != nil || missing != nil {
		t.Fatalf("missing survey: %v, %v", missing, err)
	}
}

func TestQuestionRoundTrip(t *testing.T) {
	store := newTestStore(t)
	_ = store.AddTenant(&services.Tenant{ID: "t1"})
	_ = store.AddSurvey(&services.Survey{ID: "s1", TenantID: "t1", Title: "x"})

	q := &services.Question{
		ID: "q1", SurveyID: "s1", Text: "هل توصي بنا؟", Type: services.QuestionRating,
		NPSCalculate: true, MinScale: intPtr(0), MaxScale: intPtr(10), Position: 2,
	}
	if err := store.AddQuestion(q); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	q2 := &services.Question{ID: "q2", SurveyID: "s1", Text: "رأيك؟", Type: services.QuestionOther, Position: 1}
	if err := store.AddQuestion(q2); err != nil {
		t.Fatalf("AddQuestion q2: %v", err)
	}

	got, err := store.GetQuestion("q1")
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if got == nil || !got.NPSCalculate || got.Type != services.QuestionRating {
		t.Fatalf("got %+v", got)
	}
	if got.MinScale == nil || *got.MinScale != 0 || got.MaxScale == nil || *got.MaxScale != 10 {
		t.Fatalf("scale bounds lost: %+v", got)
	}

	list, err := store.ListQuestions("s1")
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(list) != 2 || list[0].ID != "q2" || list[1].ID != "q1" {
		t.Fatalf("ordering by position broken: %+v", list)
	}
	// absent bounds stay nil
	if list[0].MinScale != nil || list[0].MaxScale != nil {
		t.Fatalf("q2 bounds should be nil: %+v", list[0])
	}
}

func TestOptionsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	_ = store.AddTenant(&services.Tenant{ID: "t1"})
	_ = store.AddSurvey(&services.Survey{ID: "s1", TenantID: "t1", Title: "x"})
	_ = store.AddQuestion(&services.Question{ID: "q1", SurveyID: "s1", Text: "اختر", Type: services.QuestionSingleChoice})

	opts := []*services.QuestionOption{
		{ID: "o1", QuestionID: "q1", Text: "راضي", SatisfactionValue: intPtr(2)},
		{ID: "o2", QuestionID: "q1", Text: "غير راضي", SatisfactionValue: intPtr(0)},
		{ID: "o3", QuestionID: "q1", Text: "بدون تصنيف"},
	}
	if err := store.AddOptions(opts); err != nil {
		t.Fatalf("AddOptions: %v", err)
	}
	got, err := store.ListOptions("q1")
	if err != nil {
		t.Fatalf("ListOptions: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d options", len(got))
	}
	if got[0].SatisfactionValue == nil || *got[0].SatisfactionValue != 2 {
		t.Fatalf("o1 = %+v", got[0])
	}
	if got[2].SatisfactionValue != nil {
		t.Fatalf("o3 should have nil satisfaction: %+v", got[2])
	}
}

func TestResponseRoundTrip(t *testing.T) {
	store := newTestStore(t)
	_ = store.AddTenant(&services.Tenant{ID: "t1"})
	_ = store.AddSurvey(&services.Survey{ID: "s1", TenantID: "t1", Title: "x"})
	_ = store.AddQuestion(&services.Question{ID: "q1", SurveyID: "s1", Text: "قيمنا", Type: services.QuestionRating})

	at := time.Date(2025, 9, 22, 14, 30, 0, 0, time.UTC)
	r := &services.Response{ID: "r1", SurveyID: "s1", SubmittedAt: &at, IsComplete: true}
	answers := []*services.Answer{{ID: "a1", QuestionID: "q1", ResponseID: "r1", Value: "٩"}}
	if err := store.AddResponse(r, answers); err != nil {
		t.Fatalf("AddResponse: %v", err)
	}
	// incomplete, no timestamp
	if err := store.AddResponse(&services.Response{ID: "r2", SurveyID: "s1"}, nil); err != nil {
		t.Fatalf("AddResponse r2: %v", err)
	}

	responses, err := store.ListResponses("s1")
	if err != nil {
		t.Fatalf("ListResponses: %v", err)
	}
	if len(responses) != 2 {
		t.Fatalf("got %d responses", len(responses))
	}
	byID := map[string]*services.Response{}
	for _, resp := range responses {
		byID[resp.ID] = resp
	}
	if got := byID["r1"]; got == nil || !got.Countable() || !got.SubmittedAt.Equal(at) {
		t.Fatalf("r1 = %+v", got)
	}
	if got := byID["r2"]; got == nil || got.SubmittedAt != nil || got.Countable() {
		t.Fatalf("r2 = %+v", got)
	}

	got, err := store.ListAnswers("q1")
	if err != nil {
		t.Fatalf("ListAnswers: %v", err)
	}
	if len(got) != 1 || got[0].Value != "٩" || got[0].ResponseID != "r1" {
		t.Fatalf("answers = %+v", got)
	}
}

func TestUserRoundTrip(t *testing.T) {
	store := newTestStore(t)
	_ = store.AddTenant(&services.Tenant{ID: "t1", Name: "x"})
	u := &services.User{ID: "u1", Email: "admin@example.com", PassHash: []byte("hash"), TenantID: "t1"}
	if err := store.AddUser(u); err != nil {
		t.Fatalf("AddUser: %v", err)
	}

	got, err := store.FindUserByEmail("  Admin@Example.com ")
	if err != nil {
		t.Fatalf("FindUserByEmail: %v", err)
	}
	if got == nil || got.ID != "u1" || string(got.PassHash) != "hash" {
		t.Fatalf("got %+v", got)
	}

	missing, err := store.FindUserByEmail("nobody@example.com")
	if err != nil || missing != nil {
		t.Fatalf("missing user: %v, %v", missing, err)
	}

	// duplicate email violates the unique constraint
	if err := store.AddUser(&services.User{ID: "u2", Email: "admin@example.com", PassHash: []byte("h"), TenantID: "t1"}); err == nil {
		t.Fatal("duplicate email should fail")
	}
}
