package web

import (
	"net/http"

	teamDomain "paddletrack/internal/domain/team"
)

// teamView is the wire shape for a team.
type teamView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Coach     string   `json:"coach"`
	Members   []string `json:"members"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

func teamResponse(t teamDomain.Team) teamView {
	v := teamView{
		ID:        t.ID,
		Name:      t.Name,
		Coach:     t.CoachID,
		Members:   t.MemberIDs,
		CreatedAt: t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: t.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if v.Members == nil {
		v.Members = []string{}
	}
	return v
}

// teamInput carries team create/update fields.
type teamInput struct {
	Name    *string   `json:"name"`
	Coach   *string   `json:"coach"`
	Members *[]string `json:"members"`
}

func applyTeamInput(t *teamDomain.Team, input teamInput) {
	if input.Name != nil {
		t.Name = *input.Name
	}
	if input.Coach != nil {
		t.CoachID = *input.Coach
	}
	if input.Members != nil {
		t.MemberIDs = *input.Members
	}
}

// handleTeams handles GET (list, ?coach= filter) and POST (create) for /api/teams
func handleTeams(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		var teams []teamDomain.Team
		var err error
		if coachID := r.URL.Query().Get("coach"); coachID != "" {
			teams, err = stores.TeamStore.ListByCoach(ctx, coachID)
		} else {
			teams, err = stores.TeamStore.List(ctx)
		}
		if err != nil {
			internalError(w, err)
			return
		}
		views := make([]teamView, 0, len(teams))
		for _, t := range teams {
			views = append(views, teamResponse(t))
		}
		writeList(w, views)

	case "POST":
		var input teamInput
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		now := timeNow().UTC()
		t := teamDomain.Team{ID: generateID(), CoachID: p.UserID, CreatedAt: now, UpdatedAt: now}
		applyTeamInput(&t, input)
		if err := t.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.TeamStore.Save(ctx, t); err != nil {
			storeError(w, err, "team")
			return
		}
		writeJSON(w, http.StatusCreated, teamResponse(t))

	default:
		methodNotAllowed(w)
	}
}

// handleTeamByID handles GET/PUT/DELETE for /api/teams/:id
func handleTeamByID(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}
	id := pathSuffix(r, "/api/teams")
	if id == "" {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		t, err := stores.TeamStore.GetByID(ctx, id)
		if err != nil {
			storeError(w, err, "team")
			return
		}
		writeJSON(w, http.StatusOK, teamResponse(t))

	case "PUT":
		var input teamInput
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		t, err := stores.TeamStore.GetByID(ctx, id)
		if err != nil {
			storeError(w, err, "team")
			return
		}
		applyTeamInput(&t, input)
		if err := t.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		t.UpdatedAt = timeNow().UTC()
		if err := stores.TeamStore.Save(ctx, t); err != nil {
			storeError(w, err, "team")
			return
		}
		writeJSON(w, http.StatusOK, teamResponse(t))

	case "DELETE":
		if err := stores.TeamStore.Delete(ctx, id); err != nil {
			storeError(w, err, "team")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		methodNotAllowed(w)
	}
}
