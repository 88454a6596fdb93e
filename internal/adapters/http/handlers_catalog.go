package web

import (
	"net/http"

	boatDomain "paddletrack/internal/domain/boat"
	disciplineDomain "paddletrack/internal/domain/discipline"
)

// boatView is the wire shape for a boat class.
type boatView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

func boatResponse(b boatDomain.Boat) boatView {
	return boatView{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// handleBoats handles GET (list) and POST (create) for /api/boats.
// Boats have no update endpoint: a boat class is renamed by delete+create.
func handleBoats(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		boats, err := stores.BoatStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		views := make([]boatView, 0, len(boats))
		for _, b := range boats {
			views = append(views, boatResponse(b))
		}
		writeList(w, views)

	case "POST":
		var input struct {
			Name string `json:"name"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		b := boatDomain.Boat{ID: generateID(), Name: input.Name, CreatedAt: timeNow().UTC()}
		if err := b.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.BoatStore.Save(ctx, b); err != nil {
			storeError(w, err, "boat")
			return
		}
		writeJSON(w, http.StatusCreated, boatResponse(b))

	default:
		methodNotAllowed(w)
	}
}

// handleBoatByID handles GET/DELETE for /api/boats/:id
func handleBoatByID(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}
	id := pathSuffix(r, "/api/boats")
	if id == "" {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		b, err := stores.BoatStore.GetByID(ctx, id)
		if err != nil {
			storeError(w, err, "boat")
			return
		}
		writeJSON(w, http.StatusOK, boatResponse(b))

	case "DELETE":
		if err := stores.BoatStore.Delete(ctx, id); err != nil {
			storeError(w, err, "boat")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		methodNotAllowed(w)
	}
}

// disciplineView is the wire shape for a race discipline.
type disciplineView struct {
	ID        string  `json:"id"`
	Distance  float64 `json:"distance"`
	Unit      string  `json:"unit"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

func disciplineResponse(d disciplineDomain.Discipline) disciplineView {
	return disciplineView{
		ID:        d.ID,
		Distance:  d.Distance,
		Unit:      d.Unit,
		CreatedAt: d.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: d.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// handleDisciplines handles GET (list) and POST (create) for /api/disciplines
func handleDisciplines(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		disciplines, err := stores.DisciplineStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		views := make([]disciplineView, 0, len(disciplines))
		for _, d := range disciplines {
			views = append(views, disciplineResponse(d))
		}
		writeList(w, views)

	case "POST":
		var input struct {
			Distance float64 `json:"distance"`
			Unit     string  `json:"unit"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		now := timeNow().UTC()
		d := disciplineDomain.Discipline{
			ID:        generateID(),
			Distance:  input.Distance,
			Unit:      input.Unit,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := d.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.DisciplineStore.Save(ctx, d); err != nil {
			storeError(w, err, "discipline")
			return
		}
		writeJSON(w, http.StatusCreated, disciplineResponse(d))

	default:
		methodNotAllowed(w)
	}
}

// handleDisciplineByID handles GET/PUT/DELETE for /api/disciplines/:id
func handleDisciplineByID(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}
	id := pathSuffix(r, "/api/disciplines")
	if id == "" {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		d, err := stores.DisciplineStore.GetByID(ctx, id)
		if err != nil {
			storeError(w, err, "discipline")
			return
		}
		writeJSON(w, http.StatusOK, disciplineResponse(d))

	case "PUT":
		var input struct {
			Distance *float64 `json:"distance"`
			Unit     *string  `json:"unit"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		d, err := stores.DisciplineStore.GetByID(ctx, id)
		if err != nil {
			storeError(w, err, "discipline")
			return
		}
		if input.Distance != nil {
			d.Distance = *input.Distance
		}
		if input.Unit != nil {
			d.Unit = *input.Unit
		}
		if err := d.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		d.UpdatedAt = timeNow().UTC()
		if err := stores.DisciplineStore.Save(ctx, d); err != nil {
			storeError(w, err, "discipline")
			return
		}
		writeJSON(w, http.StatusOK, disciplineResponse(d))

	case "DELETE":
		if err := stores.DisciplineStore.Delete(ctx, id); err != nil {
			storeError(w, err, "discipline")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		methodNotAllowed(w)
	}
}
