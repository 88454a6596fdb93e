package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"paddletrack/internal/adapters/storage"
	sessionStore "paddletrack/internal/adapters/storage/trainingsession"
	"paddletrack/internal/application/orchestrators"
	roleDomain "paddletrack/internal/domain/role"
	sessionDomain "paddletrack/internal/domain/trainingsession"
)

// sessionView is the wire shape for a training session.
type sessionView struct {
	ID        string                 `json:"id"`
	Plan      string                 `json:"plan"`
	Athlete   string                 `json:"athlete"`
	Coach     string                 `json:"coach"`
	Date      string                 `json:"date"`
	Iteration int                    `json:"iteration"`
	Status    string                 `json:"status"`
	Results   *sessionDomain.Results `json:"results,omitempty"`
	CreatedAt string                 `json:"createdAt"`
	UpdatedAt string                 `json:"updatedAt"`
}

func sessionResponse(s sessionDomain.TrainingSession) sessionView {
	return sessionView{
		ID:        s.ID,
		Plan:      s.PlanID,
		Athlete:   s.AthleteID,
		Coach:     s.CoachID,
		Date:      s.Date.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Iteration: s.Iteration,
		Status:    s.Status,
		Results:   s.Results,
		CreatedAt: s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: s.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func sessionViews(sessions []sessionDomain.TrainingSession) []sessionView {
	views := make([]sessionView, 0, len(sessions))
	for _, s := range sessions {
		views = append(views, sessionResponse(s))
	}
	return views
}

// parseSessionDate accepts RFC3339 or a bare date.
func parseSessionDate(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// handleTrainingSessions handles GET (list) and POST (create) for /api/training-sessions
func handleTrainingSessions(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		filter := sessionStore.ListFilter{
			PlanID: r.URL.Query().Get("plan"),
			Status: r.URL.Query().Get("status"),
		}
		sessions, err := stores.TrainingSessionStore.List(ctx, filter)
		if err != nil {
			internalError(w, err)
			return
		}
		writeList(w, sessionViews(sessions))

	case "POST":
		if p.Role != roleDomain.NameCoach && p.Role != adminRole {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		var input struct {
			Plan      string `json:"plan"`
			Athlete   string `json:"athlete"`
			Coach     string `json:"coach"`
			Date      string `json:"date"`
			Iteration int    `json:"iteration"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		date, ok := parseSessionDate(input.Date)
		if !ok {
			validationError(w, map[string]string{"date": "must be an RFC3339 timestamp or YYYY-MM-DD"})
			return
		}
		coachID := input.Coach
		if coachID == "" {
			coachID = p.UserID
		}
		if input.Iteration < 1 {
			input.Iteration = 1
		}
		now := timeNow().UTC()
		s := sessionDomain.TrainingSession{
			ID:        generateID(),
			PlanID:    input.Plan,
			AthleteID: input.Athlete,
			CoachID:   coachID,
			Date:      date,
			Iteration: input.Iteration,
			Status:    sessionDomain.StatusUpcoming,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.TrainingSessionStore.Save(ctx, s); err != nil {
			storeError(w, err, "training session")
			return
		}
		writeJSON(w, http.StatusCreated, sessionResponse(s))

	default:
		methodNotAllowed(w)
	}
}

// handleMySessions handles GET /api/training-sessions/me.
// Competitors see sessions where they are the athlete; coaches see sessions
// they assigned — never both.
func handleMySessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		methodNotAllowed(w)
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	var sessions []sessionDomain.TrainingSession
	var err error
	switch p.Role {
	case roleDomain.NameCoach:
		sessions, err = stores.TrainingSessionStore.ListByCoach(ctx, p.UserID)
	default:
		sessions, err = stores.TrainingSessionStore.ListByAthlete(ctx, p.UserID)
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeList(w, sessionViews(sessions))
}

// handleAssignPlan handles POST /api/training-sessions/assign-plan
func handleAssignPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	if p.Role != roleDomain.NameCoach && p.Role != adminRole {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var input struct {
		Plan        string   `json:"plan"`
		Competitors []string `json:"competitors"`
		Date        string   `json:"date"`
		Iteration   int      `json:"iteration"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	date, ok := parseSessionDate(input.Date)
	if !ok {
		validationError(w, map[string]string{"date": "must be an RFC3339 timestamp or YYYY-MM-DD"})
		return
	}

	created, err := orchestrators.ExecuteAssignPlan(r.Context(), orchestrators.AssignPlanInput{
		PlanID:        input.Plan,
		CompetitorIDs: input.Competitors,
		CoachID:       p.UserID,
		Date:          date,
		Iteration:     input.Iteration,
	}, orchestrators.AssignPlanDeps{
		PlanStore:    stores.TrainingPlanStore,
		UserStore:    stores.UserStore,
		RoleStore:    stores.RoleStore,
		SessionStore: stores.TrainingSessionStore,
	})
	if err != nil {
		if len(created) > 0 {
			// Creation is not atomic; report what exists plus the failure.
			internalError(w, err)
			return
		}
		storeError(w, err, "training plan")
		return
	}

	writeJSON(w, http.StatusCreated, sessionViews(created))
}

// handleTrainingSessionByID handles GET/PUT/DELETE for /api/training-sessions/:id
// and PUT /api/training-sessions/:id/results.
func handleTrainingSessionByID(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	rest := pathSuffix(r, "/api/training-sessions")
	parts := strings.SplitN(rest, "/", 2)
	id := parts[0]
	if id == "" {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	if len(parts) == 2 {
		if parts[1] == "results" && r.Method == "PUT" {
			handleSubmitResults(w, r, p.UserID, p.Role, id)
			return
		}
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		s, err := stores.TrainingSessionStore.GetByID(ctx, id)
		if err != nil {
			storeError(w, err, "training session")
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse(s))

	case "PUT":
		var input struct {
			Plan      *string `json:"plan"`
			Athlete   *string `json:"athlete"`
			Coach     *string `json:"coach"`
			Date      *string `json:"date"`
			Iteration *int    `json:"iteration"`
			Status    *string `json:"status"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		s, err := stores.TrainingSessionStore.GetByID(ctx, id)
		if err != nil {
			storeError(w, err, "training session")
			return
		}
		if input.Plan != nil {
			s.PlanID = *input.Plan
		}
		if input.Athlete != nil {
			s.AthleteID = *input.Athlete
		}
		if input.Coach != nil {
			s.CoachID = *input.Coach
		}
		if input.Date != nil {
			date, ok := parseSessionDate(*input.Date)
			if !ok {
				validationError(w, map[string]string{"date": "must be an RFC3339 timestamp or YYYY-MM-DD"})
				return
			}
			s.Date = date
		}
		if input.Iteration != nil {
			s.Iteration = *input.Iteration
		}
		if input.Status != nil {
			s.Status = *input.Status
		}
		if err := s.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.UpdatedAt = timeNow().UTC()
		if err := stores.TrainingSessionStore.Save(ctx, s); err != nil {
			storeError(w, err, "training session")
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse(s))

	case "DELETE":
		if err := stores.TrainingSessionStore.Delete(ctx, id); err != nil {
			storeError(w, err, "training session")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		methodNotAllowed(w)
	}
}

// handleSubmitResults handles PUT /api/training-sessions/:id/results.
// Admins can submit on behalf of the athlete; everyone else must be the
// session's assigned athlete.
func handleSubmitResults(w http.ResponseWriter, r *http.Request, userID, role, sessionID string) {
	var input orchestrators.ResultsInput
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	submitterID := userID
	if role == adminRole {
		submitterID = ""
	}

	s, err := orchestrators.ExecuteSubmitResults(r.Context(), orchestrators.SubmitResultsInput{
		SessionID:   sessionID,
		SubmitterID: submitterID,
		Results:     input,
	}, orchestrators.SubmitResultsDeps{
		SessionStore: stores.TrainingSessionStore,
	})
	if err != nil {
		var missing *orchestrators.MissingFieldsError
		switch {
		case errors.Is(err, orchestrators.ErrNotSessionAthlete):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, sessionDomain.ErrAlreadyCompleted):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.As(err, &missing):
			domainError(w, err)
		case errors.Is(err, sessionDomain.ErrZonesLength):
			validationError(w, map[string]string{"timeInZones": sessionDomain.ErrZonesLength.Error()})
		case storage.IsNotFound(err):
			http.Error(w, "training session not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(s))
}
