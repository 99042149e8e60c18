package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, subject string, secret string, expiry time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func authedProbe(t *testing.T) (http.Handler, *int64) {
	t.Helper()
	var seen int64
	m := NewAuthMiddleware(testSecret, nil, []string{"/healthz"})
	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserID(r.Context())
		if !ok {
			t.Error("user id missing from context")
		}
		seen = id
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seen
}

func TestAuthAcceptsValidToken(t *testing.T) {
	h, seen := authedProbe(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "42", testSecret, time.Hour))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if *seen != 42 {
		t.Fatalf("user id = %d, want 42", *seen)
	}
}

func TestAuthRejections(t *testing.T) {
	h, _ := authedProbe(t)

	cases := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"wrong secret", "Bearer " + signToken(t, "42", "other-secret", time.Hour)},
		{"expired", "Bearer " + signToken(t, "42", testSecret, -time.Hour)},
		{"non-numeric subject", "Bearer " + signToken(t, "alice", testSecret, time.Hour)},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil)
		if c.token != "" {
			req.Header.Set("Authorization", c.token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", c.name, rec.Code)
		}
	}
}

func TestAuthSkipPaths(t *testing.T) {
	m := NewAuthMiddleware(testSecret, nil, []string{"/healthz"})
	h := m.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 without a token", rec.Code)
	}
}

func TestRateLimiterBlocksBursts(t *testing.T) {
	rl := NewRateLimiter(1, 2, nil)
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var blocked int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil)
		req = req.WithContext(WithUserID(req.Context(), 1))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			blocked++
		}
	}
	if blocked == 0 {
		t.Fatal("expected some requests beyond the burst to be blocked")
	}

	// A different caller has an independent bucket.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil)
	req = req.WithContext(WithUserID(req.Context(), 2))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("second caller blocked: status = %d", rec.Code)
	}
}
