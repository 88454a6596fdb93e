package web

import (
	"errors"
	"net/http"

	"paddletrack/internal/application/orchestrators"
	userDomain "paddletrack/internal/domain/user"
)

// handleRegister handles POST /api/auth/register
func handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}

	var input struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	u, err := orchestrators.ExecuteRegister(r.Context(), orchestrators.RegisterInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	}, orchestrators.RegisterDeps{
		UserStore: stores.UserStore,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrEmailTaken) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		domainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, userResponse(u))
}

// handleLogin handles POST /api/auth/login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	}, orchestrators.LoginDeps{
		UserStore: stores.UserStore,
		RoleStore: stores.RoleStore,
	})
	if err != nil {
		switch {
		case errors.Is(err, orchestrators.ErrUnknownEmail):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, orchestrators.ErrNotApproved):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, userDomain.ErrWrongPassword):
			http.Error(w, err.Error(), http.StatusUnauthorized)
		default:
			internalError(w, err)
		}
		return
	}

	token, err := tokens.Issue(result.User.ID, result.RoleName, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  userResponse(result.User),
	})
}
