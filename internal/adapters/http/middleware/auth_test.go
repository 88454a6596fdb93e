package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

// TestTokenRoundTrip verifies a freshly issued token parses back to its claims.
func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager(testKey)

	token, err := tm.Issue("user-1", "coach", time.Now())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("got user id %q, want user-1", claims.UserID)
	}
	if claims.Role != "coach" {
		t.Errorf("got role %q, want coach", claims.Role)
	}
}

// TestTokenExpiry verifies an expired token is rejected.
func TestTokenExpiry(t *testing.T) {
	tm := NewTokenManager(testKey)

	token, err := tm.Issue("user-1", "coach", time.Now().Add(-TokenTTL-time.Minute))
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := tm.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("got %v, want %v for expired token", err, ErrTokenInvalid)
	}
}

// TestTokenWrongKey verifies a token signed with a different key is rejected.
func TestTokenWrongKey(t *testing.T) {
	token, err := NewTokenManager(testKey).Issue("user-1", "coach", time.Now())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	other := NewTokenManager([]byte("ffffffffffffffffffffffffffffffff"))
	if _, err := other.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("got %v, want %v for wrong key", err, ErrTokenInvalid)
	}
	if _, err := other.Parse("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("got %v, want %v for garbage", err, ErrTokenInvalid)
	}
}

// staticResolver resolves a fixed set of users for middleware tests.
type staticResolver struct {
	principals map[string]Principal
}

func (s *staticResolver) Resolve(_ context.Context, userID string) (Principal, error) {
	if p, ok := s.principals[userID]; ok {
		return p, nil
	}
	return Principal{}, fmt.Errorf("account is not active")
}

// TestAuthMiddleware verifies the principal lands in the request context for
// valid tokens and stays absent otherwise.
func TestAuthMiddleware(t *testing.T) {
	tm := NewTokenManager(testKey)
	resolver := &staticResolver{principals: map[string]Principal{
		"user-1": {UserID: "user-1", Role: "competitor"},
	}}

	var got Principal
	var found bool
	handler := Auth(tm, resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = GetPrincipalFromContext(r.Context())
	}))

	token, err := tm.Issue("user-1", "competitor", time.Now())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name      string
		header    string
		wantFound bool
	}{
		{"valid token", "Bearer " + token, true},
		{"no header", "", false},
		{"malformed header", "Token " + token, false},
		{"garbage token", "Bearer garbage", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found = false
			got = Principal{}
			req := httptest.NewRequest("GET", "/api/users", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)
			if found != tt.wantFound {
				t.Fatalf("got principal present=%v, want %v", found, tt.wantFound)
			}
			if found && got.UserID != "user-1" {
				t.Errorf("got principal %+v, want user-1", got)
			}
		})
	}
}

// TestAuthRevokedUser verifies a valid token for a no-longer-active account
// yields no principal.
func TestAuthRevokedUser(t *testing.T) {
	tm := NewTokenManager(testKey)
	resolver := &staticResolver{} // resolves nobody

	var found bool
	handler := Auth(tm, resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = GetPrincipalFromContext(r.Context())
	}))

	token, err := tm.Issue("user-1", "competitor", time.Now())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	req := httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if found {
		t.Error("revoked user's token should not resolve to a principal")
	}
}

// TestRequireRole verifies the role gate uses the resolved principal.
func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireRole("admin", "coach")(ok)

	tests := []struct {
		name     string
		p        *Principal
		wantCode int
	}{
		{"admin allowed", &Principal{UserID: "u1", Role: "admin"}, http.StatusNoContent},
		{"coach allowed", &Principal{UserID: "u2", Role: "coach"}, http.StatusNoContent},
		{"competitor blocked", &Principal{UserID: "u3", Role: "competitor"}, http.StatusForbidden},
		{"anonymous blocked", nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.p != nil {
				req = req.WithContext(ContextWithPrincipal(req.Context(), *tt.p))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantCode {
				t.Errorf("got status %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}
