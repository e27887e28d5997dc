package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/istitla/istitla/internal/services"
)

// SQLiteStore backs every service store interface with one sqlite file.
// Timestamps are stored as RFC3339Nano UTC strings.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func toNullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func fromNullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

// --- surveys ---

func (s *SQLiteStore) AddSurvey(sv *services.Survey) error {
	if sv == nil {
		return errors.New("nil survey")
	}
	created := sv.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.Exec(`INSERT INTO surveys (id, tenant_id, title, created_at) VALUES (?, ?, ?, ?)`,
		sv.ID, sv.TenantID, sv.Title, formatTime(created))
	return err
}

func (s *SQLiteStore) GetSurvey(id string) (*services.Survey, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	row := s.db.QueryRow(`SELECT id, tenant_id, title, created_at FROM surveys WHERE id = ?`, id)
	var sv services.Survey
	var created string
	if err := row.Scan(&sv.ID, &sv.TenantID, &sv.Title, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if t, err := parseTime(created); err == nil {
		sv.CreatedAt = t
	}
	return &sv, nil
}

// --- questions ---

func (s *SQLiteStore) AddQuestion(q *services.Question) error {
	if q == nil {
		return errors.New("nil question")
	}
	_, err := s.db.Exec(`INSERT INTO questions
	  (id, survey_id, text, type, nps_calculate, csat_calculate, min_scale, max_scale, semantic_tag, position)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.SurveyID, q.Text, string(q.Type),
		boolToInt64(q.NPSCalculate), boolToInt64(q.CSATCalculate),
		toNullInt(q.MinScale), toNullInt(q.MaxScale), string(q.SemanticTag), q.Position)
	return err
}

func (s *SQLiteStore) GetQuestion(id string) (*services.Question, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	row := s.db.QueryRow(`SELECT id, survey_id, text, type, nps_calculate, csat_calculate,
	  min_scale, max_scale, semantic_tag, position FROM questions WHERE id = ?`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return q, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*services.Question, error) {
	var q services.Question
	var qtype, tag string
	var nps, csat int64
	var minScale, maxScale sql.NullInt64
	if err := row.Scan(&q.ID, &q.SurveyID, &q.Text, &qtype, &nps, &csat,
		&minScale, &maxScale, &tag, &q.Position); err != nil {
		return nil, err
	}
	q.Type = services.QuestionType(qtype)
	q.NPSCalculate = nps != 0
	q.CSATCalculate = csat != 0
	q.MinScale = fromNullInt(minScale)
	q.MaxScale = fromNullInt(maxScale)
	q.SemanticTag = services.SemanticTag(tag)
	return &q, nil
}

func (s *SQLiteStore) ListQuestions(surveyID string) ([]*services.Question, error) {
	rows, err := s.db.Query(`SELECT id, survey_id, text, type, nps_calculate, csat_calculate,
	  min_scale, max_scale, semantic_tag, position FROM questions
	  WHERE survey_id = ? ORDER BY position ASC, id ASC`, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*services.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// --- options ---

func (s *SQLiteStore) AddOptions(opts []*services.QuestionOption) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO question_options (id, question_id, text, satisfaction_value)
		  VALUES (?, ?, ?, ?)`, opt.ID, opt.QuestionID, opt.Text, toNullInt(opt.SatisfactionValue)); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ListOptions(questionID string) ([]*services.QuestionOption, error) {
	rows, err := s.db.Query(`SELECT id, question_id, text, satisfaction_value
	  FROM question_options WHERE question_id = ? ORDER BY id ASC`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*services.QuestionOption{}
	for rows.Next() {
		var opt services.QuestionOption
		var sat sql.NullInt64
		if err := rows.Scan(&opt.ID, &opt.QuestionID, &opt.Text, &sat); err != nil {
			return nil, err
		}
		opt.SatisfactionValue = fromNullInt(sat)
		out = append(out, &opt)
	}
	return out, rows.Err()
}

// --- responses & answers ---

// AddResponse stores the response row and its answers in one transaction
// so analytics never observes a half-written submission.
func (s *SQLiteStore) AddResponse(r *services.Response, answers []*services.Answer) error {
	if r == nil {
		return errors.New("nil response")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	var submitted sql.NullString
	if r.SubmittedAt != nil {
		submitted = sql.NullString{String: formatTime(*r.SubmittedAt), Valid: true}
	}
	if _, err := tx.Exec(`INSERT INTO responses (id, survey_id, submitted_at, is_complete) VALUES (?, ?, ?, ?)`,
		r.ID, r.SurveyID, submitted, boolToInt64(r.IsComplete)); err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, a := range answers {
		if a == nil {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO answers (id, question_id, response_id, value) VALUES (?, ?, ?, ?)`,
			a.ID, a.QuestionID, a.ResponseID, a.Value); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ListResponses(surveyID string) ([]*services.Response, error) {
	rows, err := s.db.Query(`SELECT id, survey_id, submitted_at, is_complete
	  FROM responses WHERE survey_id = ?`, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*services.Response{}
	for rows.Next() {
		var r services.Response
		var submitted sql.NullString
		var complete int64
		if err := rows.Scan(&r.ID, &r.SurveyID, &submitted, &complete); err != nil {
			return nil, err
		}
		if submitted.Valid {
			if t, err := parseTime(submitted.String); err == nil {
				r.SubmittedAt = &t
			}
		}
		r.IsComplete = complete != 0
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ListAnswers(questionID string) ([]*services.Answer, error) {
	rows, err := s.db.Query(`SELECT id, question_id, response_id, value
	  FROM answers WHERE question_id = ?`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*services.Answer{}
	for rows.Next() {
		var a services.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.ResponseID, &a.Value); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

// --- tenants & users ---

func (s *SQLiteStore) AddTenant(t *services.Tenant) error {
	if t == nil {
		return errors.New("nil tenant")
	}
	_, err := s.db.Exec(`INSERT INTO tenants (id, name) VALUES (?, ?)`, t.ID, t.Name)
	return err
}

func (s *SQLiteStore) AddUser(u *services.User) error {
	if u == nil {
		return errors.New("nil user")
	}
	created := u.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.Exec(`INSERT INTO users (id, email, pass_hash, tenant_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PassHash, u.TenantID, formatTime(created))
	return err
}

func (s *SQLiteStore) FindUserByEmail(email string) (*services.User, error) {
	row := s.db.QueryRow(`SELECT id, email, pass_hash, tenant_id, created_at FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))
	var u services.User
	var created string
	if err := row.Scan(&u.ID, &u.Email, &u.PassHash, &u.TenantID, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if t, err := parseTime(created); err == nil {
		u.CreatedAt = t
	}
	return &u, nil
}
