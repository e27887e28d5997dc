package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLocaleMiddleware(t *testing.T) {
	var got string
	handler := LocaleMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = LocaleFromContext(r.Context())
	}))

	cases := []struct {
		url, accept, want string
	}{
		{"/health?lang=en", "", "en"},
		{"/health", "ar-AE,en;q=0.5", "ar"},
		{"/health", "", "ar"},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, c.url, nil)
		if c.accept != "" {
			req.Header.Set("Accept-Language", c.accept)
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if got != c.want {
			t.Errorf("%s (%s): locale = %q, want %q", c.url, c.accept, got, c.want)
		}
	}
}
