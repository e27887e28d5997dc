package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/istitla/istitla/internal/cache"
	"github.com/istitla/istitla/internal/middleware"
	"github.com/istitla/istitla/internal/services"
)

type testEnv struct {
	t      *testing.T
	server http.Handler
	token  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := NewMemoryStore()
	auth, err := middleware.NewAuth("test-secret")
	if err != nil {
		t.Fatal(err)
	}
	rt := NewRouter(Config{
		Store:     store,
		Auth:      services.NewAuthService(store, auth.SignToken),
		Surveys:   services.NewSurveyService(store),
		Analytics: services.NewAnalyticsService(store, services.AnalyticsOptions{DefaultTimezone: "UTC"}),
		Cache:     cache.NewMemory(),
		CacheTTL:  time.Minute,
	})
	r := chi.NewRouter()
	rt.Register(r, auth)
	return &testEnv{t: t, server: r}
}

func (e *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(method, path string, body any, out any) {
	e.t.Helper()
	rec := e.do(method, path, body)
	if rec.Code != http.StatusOK {
		e.t.Fatalf("%s %s: status %d: %s", method, path, rec.Code, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			e.t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
}

func (e *testEnv) register() {
	var res struct {
		Token string `json:"token"`
	}
	e.doJSON(http.MethodPost, "/api/auth/register",
		map[string]string{"email": "admin@example.com", "password": "s3cret", "tenant_name": "شركة"}, &res)
	if res.Token == "" {
		e.t.Fatal("no token returned")
	}
	e.token = res.Token
}

func TestAuthRequiredForManagement(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/surveys", map[string]string{"title": "x"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestSurveyAnalyticsFlow(t *testing.T) {
	env := newTestEnv(t)
	env.register()

	var sv services.Survey
	env.doJSON(http.MethodPost, "/api/surveys", map[string]string{"title": "تقييم الخدمة"}, &sv)
	if sv.ID == "" {
		t.Fatal("no survey id")
	}

	var q services.Question
	env.doJSON(http.MethodPost, "/api/surveys/"+sv.ID+"/questions", map[string]any{
		"text": "ما مدى احتمال أن توصي بنا؟", "type": "rating",
		"nps_calculate": true, "csat_calculate": true,
		"min_scale": 0, "max_scale": 5,
	}, &q)
	if q.ID == "" {
		t.Fatal("no question id")
	}

	// submissions are public
	env.token = ""
	for _, v := range []string{"5", "4", "3", "0", "2"} {
		env.doJSON(http.MethodPost, "/api/surveys/"+sv.ID+"/responses", map[string]any{
			"answers": []map[string]string{{"question_id": q.ID, "value": v}},
		}, nil)
	}

	env.login()

	var npsRes struct {
		Available bool                `json:"available"`
		NPS       *services.NPSResult `json:"nps"`
	}
	env.doJSON(http.MethodGet, "/api/surveys/"+sv.ID+"/analytics/nps", nil, &npsRes)
	if !npsRes.Available || npsRes.NPS == nil {
		t.Fatalf("nps = %+v", npsRes)
	}
	if npsRes.NPS.Score != -40.0 || npsRes.NPS.TotalResponses != 5 {
		t.Fatalf("nps = %+v", npsRes.NPS)
	}

	var hm services.Heatmap
	env.doJSON(http.MethodGet, "/api/surveys/"+sv.ID+"/analytics/heatmap", nil, &hm)
	if hm.Total != 5 {
		t.Fatalf("heatmap total = %d", hm.Total)
	}

	var csatRes struct {
		Periods []services.CSATPeriod  `json:"periods"`
		Summary *services.CSATSummary  `json:"summary"`
	}
	env.doJSON(http.MethodGet, "/api/surveys/"+sv.ID+"/analytics/csat?group_by=day", nil, &csatRes)
	if len(csatRes.Periods) != 1 || csatRes.Summary == nil {
		t.Fatalf("csat = %+v", csatRes)
	}
	if csatRes.Summary.Total != 5 {
		t.Fatalf("summary = %+v", csatRes.Summary)
	}
}

// login signs back in with the account register() created.
func (e *testEnv) login() {
	var res struct {
		Token string `json:"token"`
	}
	e.doJSON(http.MethodPost, "/api/auth/login",
		map[string]string{"email": "admin@example.com", "password": "s3cret"}, &res)
	e.token = res.Token
}

func TestTenantIsolationOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.register()

	var sv services.Survey
	env.doJSON(http.MethodPost, "/api/surveys", map[string]string{"title": "خاص"}, &sv)

	// a second tenant cannot read the first tenant's analytics
	var res struct {
		Token string `json:"token"`
	}
	env.token = ""
	env.doJSON(http.MethodPost, "/api/auth/register",
		map[string]string{"email": "other@example.com", "password": "pw", "tenant_name": "أخرى"}, &res)
	env.token = res.Token

	rec := env.do(http.MethodGet, "/api/surveys/"+sv.ID+"/analytics/nps", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestTenantIsolationSurvivesWarmCache(t *testing.T) {
	env := newTestEnv(t)
	env.register()

	var sv services.Survey
	env.doJSON(http.MethodPost, "/api/surveys", map[string]string{"title": "خاص"}, &sv)

	// the owner reads first, populating the analytics cache
	for _, path := range []string{"nps", "heatmap", "csat"} {
		env.doJSON(http.MethodGet, "/api/surveys/"+sv.ID+"/analytics/"+path, nil, nil)
	}

	var res struct {
		Token string `json:"token"`
	}
	env.token = ""
	env.doJSON(http.MethodPost, "/api/auth/register",
		map[string]string{"email": "other@example.com", "password": "pw", "tenant_name": "أخرى"}, &res)
	env.token = res.Token

	// a cached result must not bypass the ownership check
	for _, path := range []string{"nps", "heatmap", "csat"} {
		rec := env.do(http.MethodGet, "/api/surveys/"+sv.ID+"/analytics/"+path, nil)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s: status = %d, want 403: %s", path, rec.Code, rec.Body.String())
		}
	}
}

func TestSubmitInvalidatesAnalyticsCache(t *testing.T) {
	env := newTestEnv(t)
	env.register()

	var sv services.Survey
	env.doJSON(http.MethodPost, "/api/surveys", map[string]string{"title": "تقييم"}, &sv)
	var q services.Question
	env.doJSON(http.MethodPost, "/api/surveys/"+sv.ID+"/questions", map[string]any{
		"text": "قيمنا", "type": "rating", "nps_calculate": true, "min_scale": 0, "max_scale": 5,
	}, &q)

	submit := func(v string) {
		env.doJSON(http.MethodPost, "/api/surveys/"+sv.ID+"/responses", map[string]any{
			"answers": []map[string]string{{"question_id": q.ID, "value": v}},
		}, nil)
	}
	nps := func() *services.NPSResult {
		var res struct {
			NPS *services.NPSResult `json:"nps"`
		}
		env.doJSON(http.MethodGet, "/api/surveys/"+sv.ID+"/analytics/nps", nil, &res)
		return res.NPS
	}

	submit("5")
	if got := nps(); got == nil || got.TotalResponses != 1 {
		t.Fatalf("first read = %+v", got)
	}
	// second submission must show up despite the cached first read
	submit("0")
	if got := nps(); got == nil || got.TotalResponses != 2 {
		t.Fatalf("after invalidation = %+v", got)
	}
}

func TestUnknownSurveyIs404(t *testing.T) {
	env := newTestEnv(t)
	env.register()
	rec := env.do(http.MethodGet, "/api/surveys/ghost/analytics/nps", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
	rec = env.do(http.MethodPost, "/api/surveys/ghost/responses", map[string]any{"answers": []any{}})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("submit status = %d, want 404", rec.Code)
	}
}

func TestQuestionValidationOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	env.register()
	var sv services.Survey
	env.doJSON(http.MethodPost, "/api/surveys", map[string]string{"title": "تقييم"}, &sv)

	rec := env.do(http.MethodPost, fmt.Sprintf("/api/surveys/%s/questions", sv.ID), map[string]any{
		"text": "هل؟", "type": "yes_no", "nps_calculate": true,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}
