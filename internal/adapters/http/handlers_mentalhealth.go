package web

import (
	"net/http"

	mentalHealthDomain "paddletrack/internal/domain/mentalhealth"
)

// mentalHealthView is the wire shape for a mood-log entry.
type mentalHealthView struct {
	ID            string `json:"id"`
	User          string `json:"user"`
	MoodRating    int    `json:"moodRating"`
	SleepQuality  *int   `json:"sleepQuality,omitempty"`
	Pulse         *int   `json:"pulse,omitempty"`
	Date          string `json:"date"`
	AdminOverride bool   `json:"adminOverride"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

func mentalHealthResponse(e mentalHealthDomain.Entry) mentalHealthView {
	return mentalHealthView{
		ID:            e.ID,
		User:          e.UserID,
		MoodRating:    e.MoodRating,
		SleepQuality:  e.SleepQuality,
		Pulse:         e.Pulse,
		Date:          e.Date.UTC().Format("2006-01-02"),
		AdminOverride: e.AdminOverride,
		CreatedAt:     e.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     e.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func mentalHealthViews(entries []mentalHealthDomain.Entry) []mentalHealthView {
	views := make([]mentalHealthView, 0, len(entries))
	for _, e := range entries {
		views = append(views, mentalHealthResponse(e))
	}
	return views
}

// handleMentalHealth handles GET (list) and POST (create) for /api/mental-health.
// Non-admin callers only ever see their own entries.
func handleMentalHealth(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		var entries []mentalHealthDomain.Entry
		var err error
		if p.Role == adminRole {
			entries, err = stores.MentalHealthStore.List(ctx)
		} else {
			entries, err = stores.MentalHealthStore.ListByUser(ctx, p.UserID)
		}
		if err != nil {
			internalError(w, err)
			return
		}
		writeList(w, mentalHealthViews(entries))

	case "POST":
		var input struct {
			User         string `json:"user"`
			MoodRating   int    `json:"moodRating"`
			SleepQuality *int   `json:"sleepQuality"`
			Pulse        *int   `json:"pulse"`
			Date         string `json:"date"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		userID := p.UserID
		adminOverride := false
		if input.User != "" && input.User != p.UserID {
			// Only admins may log for another user.
			if p.Role != adminRole {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			userID = input.User
			adminOverride = true
		}
		date, ok := parseSessionDate(input.Date)
		if !ok {
			validationError(w, map[string]string{"date": "must be an RFC3339 timestamp or YYYY-MM-DD"})
			return
		}
		now := timeNow().UTC()
		e := mentalHealthDomain.Entry{
			ID:            generateID(),
			UserID:        userID,
			MoodRating:    input.MoodRating,
			SleepQuality:  input.SleepQuality,
			Pulse:         input.Pulse,
			Date:          date,
			AdminOverride: adminOverride,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := e.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.MentalHealthStore.Save(ctx, e); err != nil {
			storeError(w, err, "mental health entry")
			return
		}
		writeJSON(w, http.StatusCreated, mentalHealthResponse(e))

	default:
		methodNotAllowed(w)
	}
}

// handleMyMentalHealth handles GET /api/mental-health/my
func handleMyMentalHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		methodNotAllowed(w)
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	entries, err := stores.MentalHealthStore.ListByUser(r.Context(), p.UserID)
	if err != nil {
		internalError(w, err)
		return
	}
	writeList(w, mentalHealthViews(entries))
}

// handleMentalHealthByID handles GET/PUT/DELETE for /api/mental-health/:id.
// Owner or admin only.
func handleMentalHealthByID(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	id := pathSuffix(r, "/api/mental-health")
	if id == "" {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	ctx := r.Context()

	e, err := stores.MentalHealthStore.GetByID(ctx, id)
	if err != nil {
		storeError(w, err, "mental health entry")
		return
	}
	if e.UserID != p.UserID && p.Role != adminRole {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	switch r.Method {
	case "GET":
		writeJSON(w, http.StatusOK, mentalHealthResponse(e))

	case "PUT":
		var input struct {
			MoodRating   *int    `json:"moodRating"`
			SleepQuality *int    `json:"sleepQuality"`
			Pulse        *int    `json:"pulse"`
			Date         *string `json:"date"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if input.MoodRating != nil {
			e.MoodRating = *input.MoodRating
		}
		if input.SleepQuality != nil {
			e.SleepQuality = input.SleepQuality
		}
		if input.Pulse != nil {
			e.Pulse = input.Pulse
		}
		if input.Date != nil {
			date, ok := parseSessionDate(*input.Date)
			if !ok {
				validationError(w, map[string]string{"date": "must be an RFC3339 timestamp or YYYY-MM-DD"})
				return
			}
			e.Date = date
		}
		if p.Role == adminRole && e.UserID != p.UserID {
			e.AdminOverride = true
		}
		if err := e.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		e.UpdatedAt = timeNow().UTC()
		if err := stores.MentalHealthStore.Save(ctx, e); err != nil {
			storeError(w, err, "mental health entry")
			return
		}
		writeJSON(w, http.StatusOK, mentalHealthResponse(e))

	case "DELETE":
		if err := stores.MentalHealthStore.Delete(ctx, id); err != nil {
			storeError(w, err, "mental health entry")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		methodNotAllowed(w)
	}
}
