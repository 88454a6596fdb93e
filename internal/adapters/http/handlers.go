package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"paddletrack/internal/adapters/http/middleware"
	"paddletrack/internal/adapters/storage"
	"paddletrack/internal/application/orchestrators"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeList writes a slice response, normalizing nil to an empty JSON array.
func writeList[T any](w http.ResponseWriter, items []T) {
	w.Header().Set("Content-Type", "application/json")
	if items == nil {
		w.Write([]byte("[]"))
		return
	}
	json.NewEncoder(w).Encode(items)
}

// validationError returns a 400 with per-field messages.
func validationError(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"fields": fields,
	})
}

// storeError maps a storage failure to the right status: missing rows to
// 404, unique-constraint collisions to 409, anything else to 500.
func storeError(w http.ResponseWriter, err error, resource string) {
	switch {
	case storage.IsNotFound(err):
		http.Error(w, resource+" not found", http.StatusNotFound)
	case storage.IsUniqueViolation(err):
		http.Error(w, resource+" already exists", http.StatusConflict)
	default:
		internalError(w, err)
	}
}

// domainError maps a domain validation failure to a 400 with the field
// message, or falls through to storeError semantics.
func domainError(w http.ResponseWriter, err error) {
	var missing *orchestrators.MissingFieldsError
	if errors.As(err, &missing) {
		fields := make(map[string]string, len(missing.Fields))
		for _, f := range missing.Fields {
			fields[f] = "required"
		}
		validationError(w, fields)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// requirePrincipal extracts the authenticated caller or replies 401.
// Returns false if the request should not proceed.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (middleware.Principal, bool) {
	p, ok := middleware.GetPrincipalFromContext(r.Context())
	if !ok {
		slog.Warn("auth_denied", "path", r.URL.Path, "reason", "no principal")
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return middleware.Principal{}, false
	}
	return p, true
}

// requireAdmin checks the principal for the admin role.
// Returns false if the request should not proceed.
func requireAdmin(w http.ResponseWriter, r *http.Request) (middleware.Principal, bool) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return middleware.Principal{}, false
	}
	if p.Role != adminRole {
		slog.Warn("auth_denied", "path", r.URL.Path, "user_id", p.UserID, "role", p.Role, "required", adminRole)
		http.Error(w, "forbidden", http.StatusForbidden)
		return middleware.Principal{}, false
	}
	return p, true
}

// pathSuffix returns the path segment after prefix, or "" when the request
// hits the bare collection path. A trailing sub-resource ("/:id/approve")
// stays attached and is split by the caller.
func pathSuffix(r *http.Request, prefix string) string {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	return strings.Trim(rest, "/")
}

// methodNotAllowed is the shared fallthrough for unmatched verbs.
func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
