package services

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type AuthStore interface {
	FindUserByEmail(email string) (*User, error)
	AddUser(u *User) error
	AddTenant(t *Tenant) error
}

// TokenSigner issues an access token for the given user; wired to the JWT
// middleware by the caller so the service stays free of HTTP concerns.
type TokenSigner func(uid, tid, email string, ttl time.Duration) (string, error)

type AuthService struct {
	store     AuthStore
	now       func() time.Time
	signToken TokenSigner
	tokenTTL  time.Duration
}

type AuthResult struct {
	Token    string `json:"token"`
	TenantID string `json:"tenant_id"`
	UserID   string `json:"user_id"`
}

func NewAuthService(store AuthStore, signer TokenSigner) *AuthService {
	return &AuthService{
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
		signToken: signer,
		tokenTTL:  30 * 24 * time.Hour,
	}
}

func (s *AuthService) Register(email, password, tenantName string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("email and password required")
	}
	existing, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewConflictError("email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	tenant := &Tenant{ID: "t" + shortID(7), Name: strings.TrimSpace(tenantName)}
	if err := s.store.AddTenant(tenant); err != nil {
		return nil, err
	}
	user := &User{ID: "u" + shortID(7), Email: email, PassHash: hash, TenantID: tenant.ID, CreatedAt: s.now()}
	if err := s.store.AddUser(user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, NewInvalidError("email and password required")
	}
	u, err := s.store.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(u.PassHash, []byte(password)); err != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *User) (*AuthResult, error) {
	if s.signToken == nil {
		return nil, NewInvalidError("token signer not configured")
	}
	token, err := s.signToken(u.ID, u.TenantID, u.Email, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, TenantID: u.TenantID, UserID: u.ID}, nil
}
