package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/istitla/istitla/internal/cache"
	"github.com/istitla/istitla/internal/middleware"
	"github.com/istitla/istitla/internal/services"
)

// Router wires the HTTP surface to the services. Analytics responses are
// cached per survey and invalidated whenever a new response lands.
type Router struct {
	store     Store
	auth      *services.AuthService
	surveys   *services.SurveyService
	analytics *services.AnalyticsService
	cache     cache.Cache
	cacheTTL  time.Duration
}

// Config carries the router's dependencies from the composition root.
type Config struct {
	Store     Store
	Auth      *services.AuthService
	Surveys   *services.SurveyService
	Analytics *services.AnalyticsService
	Cache     cache.Cache
	CacheTTL  time.Duration
}

func NewRouter(cfg Config) *Router {
	c := cfg.Cache
	if c == nil {
		c = cache.NewMemory()
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Router{
		store:     cfg.Store,
		auth:      cfg.Auth,
		surveys:   cfg.Surveys,
		analytics: cfg.Analytics,
		cache:     c,
		cacheTTL:  ttl,
	}
}

// Register mounts the API routes. Survey management requires a bearer
// token; response submission and analytics-free routes stay public so
// respondent links work without an account.
func (rt *Router) Register(r chi.Router, auth *middleware.Auth) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", rt.handleRegister)
		r.Post("/auth/login", rt.handleLogin)

		r.Post("/surveys/{surveyID}/responses", rt.handleSubmitResponse)

		r.Group(func(r chi.Router) {
			r.Use(auth.WithAuth, middleware.RequireAuth)
			r.Post("/surveys", rt.handleCreateSurvey)
			r.Post("/surveys/{surveyID}/questions", rt.handleAddQuestion)
			r.Post("/questions/{questionID}/options", rt.handleAddOptions)
			r.Get("/surveys/{surveyID}/analytics/heatmap", rt.handleHeatmap)
			r.Get("/surveys/{surveyID}/analytics/nps", rt.handleNPS)
			r.Get("/surveys/{surveyID}/analytics/csat", rt.handleCSAT)
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}

// writeError maps service error codes to HTTP statuses; anything without
// a code is an internal error and the detail stays out of the response.
func writeError(w http.ResponseWriter, err error) {
	if se, ok := services.AsServiceError(err); ok {
		status := http.StatusInternalServerError
		switch se.Code {
		case services.ErrorInvalid:
			status = http.StatusBadRequest
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case services.ErrorForbidden:
			status = http.StatusForbidden
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		}
		writeJSON(w, status, map[string]string{"error": se.Message})
		return
	}
	log.Printf("api: internal error: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return false
	}
	return true
}

// --- auth ---

func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		TenantName string `json:"tenant_name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := rt.auth.Register(req.Email, req.Password, req.TenantName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// --- survey management ---

func (rt *Router) handleCreateSurvey(w http.ResponseWriter, r *http.Request) {
	tid, _ := middleware.TenantIDFromContext(r.Context())
	var req struct {
		Title string `json:"title"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	sv, err := rt.surveys.CreateSurvey(tid, req.Title)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sv)
}

func (rt *Router) handleAddQuestion(w http.ResponseWriter, r *http.Request) {
	tid, _ := middleware.TenantIDFromContext(r.Context())
	var q services.Question
	if !decodeBody(w, r, &q) {
		return
	}
	q.SurveyID = chi.URLParam(r, "surveyID")
	added, err := rt.surveys.AddQuestion(tid, &q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, added)
}

func (rt *Router) handleAddOptions(w http.ResponseWriter, r *http.Request) {
	tid, _ := middleware.TenantIDFromContext(r.Context())
	var req struct {
		Options []*services.QuestionOption `json:"options"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	opts, err := rt.surveys.AddOptions(tid, chi.URLParam(r, "questionID"), req.Options)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"options": opts})
}

// --- response collection ---

func (rt *Router) handleSubmitResponse(w http.ResponseWriter, r *http.Request) {
	surveyID := chi.URLParam(r, "surveyID")
	var req struct {
		Answers  []services.SubmittedAnswer `json:"answers"`
		Complete *bool                      `json:"complete"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	complete := true
	if req.Complete != nil {
		complete = *req.Complete
	}
	resp, err := rt.surveys.SubmitResponse(surveyID, req.Answers, complete)
	if err != nil {
		writeError(w, err)
		return
	}
	rt.cache.InvalidatePrefix("survey:" + surveyID + ":")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "response_id": resp.ID})
}

// --- analytics ---

func (rt *Router) handleHeatmap(w http.ResponseWriter, r *http.Request) {
	tid, _ := middleware.TenantIDFromContext(r.Context())
	surveyID := chi.URLParam(r, "surveyID")
	tz := r.URL.Query().Get("tz")
	if err := rt.analytics.Authorize(tid, surveyID); err != nil {
		writeError(w, err)
		return
	}

	key := fmt.Sprintf("survey:%s:heatmap:%s", surveyID, tz)
	if v, ok := rt.cache.Get(key); ok {
		writeJSON(w, http.StatusOK, v)
		return
	}
	hm, err := rt.analytics.Heatmap(tid, surveyID, tz)
	if err != nil {
		writeError(w, err)
		return
	}
	rt.cache.Set(key, hm, rt.cacheTTL)
	writeJSON(w, http.StatusOK, hm)
}

func (rt *Router) handleNPS(w http.ResponseWriter, r *http.Request) {
	tid, _ := middleware.TenantIDFromContext(r.Context())
	surveyID := chi.URLParam(r, "surveyID")
	if err := rt.analytics.Authorize(tid, surveyID); err != nil {
		writeError(w, err)
		return
	}

	key := "survey:" + surveyID + ":nps"
	if v, ok := rt.cache.Get(key); ok {
		writeJSON(w, http.StatusOK, v)
		return
	}
	res, err := rt.analytics.NPS(tid, surveyID)
	if err != nil {
		writeError(w, err)
		return
	}
	payload := map[string]any{"available": res != nil, "nps": res}
	rt.cache.Set(key, payload, rt.cacheTTL)
	writeJSON(w, http.StatusOK, payload)
}

func (rt *Router) handleCSAT(w http.ResponseWriter, r *http.Request) {
	tid, _ := middleware.TenantIDFromContext(r.Context())
	surveyID := chi.URLParam(r, "surveyID")
	q := r.URL.Query()
	tz := q.Get("tz")
	groupBy := q.Get("group_by")
	fillEmpty := q.Get("include_empty") == "true"
	if err := rt.analytics.Authorize(tid, surveyID); err != nil {
		writeError(w, err)
		return
	}

	key := fmt.Sprintf("survey:%s:csat:%s:%s:%t", surveyID, tz, groupBy, fillEmpty)
	if v, ok := rt.cache.Get(key); ok {
		writeJSON(w, http.StatusOK, v)
		return
	}
	periods, err := rt.analytics.CSATTracking(tid, surveyID, tz, groupBy, fillEmpty)
	if err != nil {
		writeError(w, err)
		return
	}
	payload := map[string]any{"periods": periods, "summary": services.SummarizeCSAT(periods)}
	rt.cache.Set(key, payload, rt.cacheTTL)
	writeJSON(w, http.StatusOK, payload)
}
