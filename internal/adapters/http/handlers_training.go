package web

import (
	"net/http"

	trainingPlanDomain "paddletrack/internal/domain/trainingplan"
	trainingTypeDomain "paddletrack/internal/domain/trainingtype"
)

// trainingTypeView is the wire shape for a training type.
type trainingTypeView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Variant    string   `json:"variant"`
	Categories []string `json:"categories"`
	Exercises  []string `json:"exercises,omitempty"`
	CreatedAt  string   `json:"createdAt"`
	UpdatedAt  string   `json:"updatedAt"`
}

func trainingTypeResponse(t trainingTypeDomain.TrainingType) trainingTypeView {
	v := trainingTypeView{
		ID:         t.ID,
		Name:       t.Name,
		Variant:    t.Variant,
		Categories: t.Categories,
		Exercises:  t.Exercises,
		CreatedAt:  t.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:  t.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if v.Categories == nil {
		v.Categories = []string{}
	}
	return v
}

// trainingTypeInput carries training-type create/update fields.
type trainingTypeInput struct {
	Name       *string   `json:"name"`
	Variant    *string   `json:"variant"`
	Categories *[]string `json:"categories"`
	Exercises  *[]string `json:"exercises"`
}

func applyTrainingTypeInput(t *trainingTypeDomain.TrainingType, input trainingTypeInput) {
	if input.Name != nil {
		t.Name = *input.Name
	}
	if input.Variant != nil {
		t.Variant = *input.Variant
	}
	if input.Categories != nil {
		t.Categories = *input.Categories
	}
	if input.Exercises != nil {
		t.Exercises = *input.Exercises
	}
}

// handleTrainingTypes handles GET (list) and POST (create, admin) for /api/training-types
func handleTrainingTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		if _, ok := requirePrincipal(w, r); !ok {
			return
		}
		types, err := stores.TrainingTypeStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		views := make([]trainingTypeView, 0, len(types))
		for _, t := range types {
			views = append(views, trainingTypeResponse(t))
		}
		writeList(w, views)

	case "POST":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		var input trainingTypeInput
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		now := timeNow().UTC()
		t := trainingTypeDomain.TrainingType{ID: generateID(), CreatedAt: now, UpdatedAt: now}
		applyTrainingTypeInput(&t, input)
		if err := t.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.TrainingTypeStore.Save(ctx, t); err != nil {
			storeError(w, err, "training type")
			return
		}
		writeJSON(w, http.StatusCreated, trainingTypeResponse(t))

	default:
		methodNotAllowed(w)
	}
}

// handleTrainingTypeByID handles GET (token) and PUT/DELETE (admin) for /api/training-types/:id
func handleTrainingTypeByID(w http.ResponseWriter, r *http.Request) {
	id := pathSuffix(r, "/api/training-types")
	if id == "" {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		if _, ok := requirePrincipal(w, r); !ok {
			return
		}
		t, err := stores.TrainingTypeStore.GetByID(ctx, id)
		if err != nil {
			storeError(w, err, "training type")
			return
		}
		writeJSON(w, http.StatusOK, trainingTypeResponse(t))

	case "PUT":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		var input trainingTypeInput
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		t, err := stores.TrainingTypeStore.GetByID(ctx, id)
		if err != nil {
			storeError(w, err, "training type")
			return
		}
		applyTrainingTypeInput(&t, input)
		if err := t.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		t.UpdatedAt = timeNow().UTC()
		if err := stores.TrainingTypeStore.Save(ctx, t); err != nil {
			storeError(w, err, "training type")
			return
		}
		writeJSON(w, http.StatusOK, trainingTypeResponse(t))

	case "DELETE":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		if err := stores.TrainingTypeStore.Delete(ctx, id); err != nil {
			storeError(w, err, "training type")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		methodNotAllowed(w)
	}
}

// trainingPlanView is the wire shape for a training plan. Exercises keep
// their domain JSON encoding (tagged union on variant).
type trainingPlanView struct {
	ID        string                        `json:"id"`
	Name      string                        `json:"name"`
	Exercises []trainingPlanDomain.Exercise `json:"exercises"`
	CreatedAt string                        `json:"createdAt"`
	UpdatedAt string                        `json:"updatedAt"`
}

func trainingPlanResponse(p trainingPlanDomain.TrainingPlan) trainingPlanView {
	v := trainingPlanView{
		ID:        p.ID,
		Name:      p.Name,
		Exercises: p.Exercises,
		CreatedAt: p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if v.Exercises == nil {
		v.Exercises = []trainingPlanDomain.Exercise{}
	}
	return v
}

// handleTrainingPlans handles GET (list) and POST (create) for /api/training-plans
func handleTrainingPlans(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		plans, err := stores.TrainingPlanStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		views := make([]trainingPlanView, 0, len(plans))
		for _, p := range plans {
			views = append(views, trainingPlanResponse(p))
		}
		writeList(w, views)

	case "POST":
		var input struct {
			Name      string                        `json:"name"`
			Exercises []trainingPlanDomain.Exercise `json:"exercises"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		now := timeNow().UTC()
		p := trainingPlanDomain.TrainingPlan{
			ID:        generateID(),
			Name:      input.Name,
			Exercises: input.Exercises,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := p.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.TrainingPlanStore.Save(ctx, p); err != nil {
			storeError(w, err, "training plan")
			return
		}
		writeJSON(w, http.StatusCreated, trainingPlanResponse(p))

	default:
		methodNotAllowed(w)
	}
}

// handleTrainingPlanByID handles GET/PUT/DELETE for /api/training-plans/:id
func handleTrainingPlanByID(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}
	id := pathSuffix(r, "/api/training-plans")
	if id == "" {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		p, err := stores.TrainingPlanStore.GetByID(ctx, id)
		if err != nil {
			storeError(w, err, "training plan")
			return
		}
		writeJSON(w, http.StatusOK, trainingPlanResponse(p))

	case "PUT":
		var input struct {
			Name      *string                        `json:"name"`
			Exercises *[]trainingPlanDomain.Exercise `json:"exercises"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		p, err := stores.TrainingPlanStore.GetByID(ctx, id)
		if err != nil {
			storeError(w, err, "training plan")
			return
		}
		if input.Name != nil {
			p.Name = *input.Name
		}
		if input.Exercises != nil {
			p.Exercises = *input.Exercises
		}
		if err := p.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p.UpdatedAt = timeNow().UTC()
		if err := stores.TrainingPlanStore.Save(ctx, p); err != nil {
			storeError(w, err, "training plan")
			return
		}
		writeJSON(w, http.StatusOK, trainingPlanResponse(p))

	case "DELETE":
		if err := stores.TrainingPlanStore.Delete(ctx, id); err != nil {
			storeError(w, err, "training plan")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		methodNotAllowed(w)
	}
}
