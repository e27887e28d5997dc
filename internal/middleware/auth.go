package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

type authCtxKey int

const authKey authCtxKey = 7

type Claims struct {
	UID   string `json:"uid"`
	TID   string `json:"tid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Auth signs and verifies the HS256 access tokens the API issues. The
// secret comes from configuration; an empty secret is rejected at
// construction so a misconfigured deployment fails loudly.
type Auth struct {
	secret []byte
}

func NewAuth(secret string) (*Auth, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &Auth{secret: []byte(secret)}, nil
}

func (a *Auth) SignToken(uid, tid, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:   uid,
		TID:   tid,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *Auth) parseToken(tok string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tok, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

// WithAuth attaches auth claims to the context when a valid bearer token is
// present. Requests without one pass through unauthenticated.
func (a *Auth) WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if strings.HasPrefix(h, "Bearer ") {
			tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			if c, err := a.parseToken(tok); err == nil {
				ctx := context.WithValue(r.Context(), authKey, c)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests WithAuth did not authenticate.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Value(authKey).(*Claims); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func TenantIDFromContext(ctx context.Context) (string, bool) {
	if c, ok := ctx.Value(authKey).(*Claims); ok && c.TID != "" {
		return c.TID, true
	}
	return "", false
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	if c, ok := ctx.Value(authKey).(*Claims); ok && c.UID != "" {
		return c.UID, true
	}
	return "", false
}
