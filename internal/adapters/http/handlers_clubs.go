package web

import (
	"net/http"

	clubDomain "paddletrack/internal/domain/club"
)

// clubView is the wire shape for a club. Athletes and coaches carry user ids;
// the client resolves names from the user list.
type clubView struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Location  string   `json:"location,omitempty"`
	Athletes  []string `json:"athletes"`
	Coaches   []string `json:"coaches"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

func clubResponse(c clubDomain.Club) clubView {
	v := clubView{
		ID:        c.ID,
		Name:      c.Name,
		Location:  c.Location,
		Athletes:  c.AthleteIDs,
		Coaches:   c.CoachIDs,
		CreatedAt: c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: c.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if v.Athletes == nil {
		v.Athletes = []string{}
	}
	if v.Coaches == nil {
		v.Coaches = []string{}
	}
	return v
}

// clubInput carries club create/update fields.
type clubInput struct {
	Name     *string   `json:"name"`
	Location *string   `json:"location"`
	Athletes *[]string `json:"athletes"`
	Coaches  *[]string `json:"coaches"`
}

func applyClubInput(c *clubDomain.Club, input clubInput) {
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Location != nil {
		c.Location = *input.Location
	}
	if input.Athletes != nil {
		c.AthleteIDs = *input.Athletes
	}
	if input.Coaches != nil {
		c.CoachIDs = *input.Coaches
	}
}

// handleClubs handles GET (list) and POST (create) for /api/clubs
func handleClubs(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		clubs, err := stores.ClubStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		views := make([]clubView, 0, len(clubs))
		for _, c := range clubs {
			views = append(views, clubResponse(c))
		}
		writeList(w, views)

	case "POST":
		var input clubInput
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		now := timeNow().UTC()
		c := clubDomain.Club{ID: generateID(), CreatedAt: now, UpdatedAt: now}
		applyClubInput(&c, input)
		if err := c.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.ClubStore.Save(ctx, c); err != nil {
			storeError(w, err, "club")
			return
		}
		writeJSON(w, http.StatusCreated, clubResponse(c))

	default:
		methodNotAllowed(w)
	}
}

// handleClubByID handles GET/PUT/DELETE for /api/clubs/:id
func handleClubByID(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}
	id := pathSuffix(r, "/api/clubs")
	if id == "" {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		c, err := stores.ClubStore.GetByID(ctx, id)
		if err != nil {
			storeError(w, err, "club")
			return
		}
		writeJSON(w, http.StatusOK, clubResponse(c))

	case "PUT":
		var input clubInput
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		c, err := stores.ClubStore.GetByID(ctx, id)
		if err != nil {
			storeError(w, err, "club")
			return
		}
		applyClubInput(&c, input)
		if err := c.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c.UpdatedAt = timeNow().UTC()
		if err := stores.ClubStore.Save(ctx, c); err != nil {
			storeError(w, err, "club")
			return
		}
		writeJSON(w, http.StatusOK, clubResponse(c))

	case "DELETE":
		if err := stores.ClubStore.Delete(ctx, id); err != nil {
			storeError(w, err, "club")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		methodNotAllowed(w)
	}
}
