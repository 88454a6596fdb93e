package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	domainRole "paddletrack/internal/domain/role"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const principalContextKey contextKey = "principal"

// TokenTTL is the lifetime of an issued bearer token.
const TokenTTL = 24 * time.Hour

// Token errors
var (
	ErrTokenInvalid = errors.New("token is invalid or expired")
)

// Claims is the JWT payload. Role is a snapshot taken at login; authorization
// decisions use the freshly resolved user instead, so a stale snapshot only
// affects clients that inspect the token themselves.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies bearer tokens.
type TokenManager struct {
	key []byte
}

// NewTokenManager creates a TokenManager with the given HMAC key.
// PRE: key is non-empty
// POST: Returns a ready-to-use manager
func NewTokenManager(key []byte) *TokenManager {
	return &TokenManager{key: key}
}

// Issue creates a signed token embedding the user id and role snapshot.
// PRE: userID is non-empty
// POST: Returns a token valid for TokenTTL
func (tm *TokenManager) Issue(userID, role string, now time.Time) (string, error) {
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.key)
}

// Parse verifies the signature and expiry of a token.
// PRE: tokenString is non-empty
// POST: Returns the claims, or ErrTokenInvalid
func (tm *TokenManager) Parse(tokenString string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return tm.key, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}

// Principal is the authenticated caller, resolved fresh from storage on every
// request so role and approval changes take effect without re-login.
type Principal struct {
	UserID    string
	Email     string
	FirstName string
	LastName  string
	Role      string
}

// UserResolver turns a token's user id into a live Principal. Resolution
// fails for unknown, soft-deleted, or unapproved users.
type UserResolver interface {
	Resolve(ctx context.Context, userID string) (Principal, error)
}

// Auth returns middleware that extracts the bearer token, verifies it, and
// resolves the principal into the request context. It does NOT block
// unauthenticated requests — use RequireAuth or RequireRole for that.
func Auth(tokens *TokenManager, resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if claims, err := tokens.Parse(token); err == nil {
					if p, err := resolver.Resolve(r.Context(), claims.UserID); err == nil {
						ctx := context.WithValue(r.Context(), principalContextKey, p)
						r = r.WithContext(ctx)
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "Bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// RequireAuth returns middleware that blocks unauthenticated requests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetPrincipalFromContext(r.Context()); !ok {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole returns middleware that blocks callers without one of the
// specified roles. The check uses the freshly resolved role, never the token
// snapshot.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := GetPrincipalFromContext(r.Context())
			if !ok {
				http.Error(w, "not authenticated", http.StatusUnauthorized)
				return
			}
			if !roleSet[p.Role] {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetPrincipalFromContext extracts the principal from the request context.
func GetPrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(Principal)
	return p, ok
}

// IsRole checks if the current principal has one of the given roles.
func IsRole(ctx context.Context, roles ...string) bool {
	p, ok := GetPrincipalFromContext(ctx)
	if !ok {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// IsAdmin checks if the current principal is an admin.
func IsAdmin(ctx context.Context) bool {
	return IsRole(ctx, domainRole.NameAdmin)
}

// IsCoachOrAdmin checks if the current principal is a coach or admin.
func IsCoachOrAdmin(ctx context.Context) bool {
	return IsRole(ctx, domainRole.NameAdmin, domainRole.NameCoach)
}

// ContextWithPrincipal returns a context with the given principal set.
// Intended for use in tests.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}
