package web

import (
	"net/http"

	roleDomain "paddletrack/internal/domain/role"
)

// roleView is the wire shape for a role.
type roleView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

func roleResponse(role roleDomain.Role) roleView {
	v := roleView{
		ID:          role.ID,
		Name:        role.Name,
		Permissions: role.Permissions,
		CreatedAt:   role.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   role.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if v.Permissions == nil {
		v.Permissions = []string{}
	}
	return v
}

// handleRoles handles GET (list) and POST (create, admin) for /api/roles
func handleRoles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		if _, ok := requirePrincipal(w, r); !ok {
			return
		}
		roles, err := stores.RoleStore.List(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		views := make([]roleView, 0, len(roles))
		for _, role := range roles {
			views = append(views, roleResponse(role))
		}
		writeList(w, views)

	case "POST":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		var input struct {
			Name        string   `json:"name"`
			Permissions []string `json:"permissions"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		now := timeNow().UTC()
		role := roleDomain.Role{
			ID:          generateID(),
			Name:        input.Name,
			Permissions: input.Permissions,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := role.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := stores.RoleStore.Save(ctx, role); err != nil {
			storeError(w, err, "role")
			return
		}
		writeJSON(w, http.StatusCreated, roleResponse(role))

	default:
		methodNotAllowed(w)
	}
}

// handleRoleByID handles GET (token) and PUT/DELETE (admin) for /api/roles/:id
func handleRoleByID(w http.ResponseWriter, r *http.Request) {
	id := pathSuffix(r, "/api/roles")
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
		role, err := stores.RoleStore.GetByID(ctx, id)
		if err != nil {
			storeError(w, err, "role")
			return
		}
		writeJSON(w, http.StatusOK, roleResponse(role))

	case "PUT":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		var input struct {
			Name        *string   `json:"name"`
			Permissions *[]string `json:"permissions"`
		}
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		role, err := stores.RoleStore.GetByID(ctx, id)
		if err != nil {
			storeError(w, err, "role")
			return
		}
		if input.Name != nil {
			role.Name = *input.Name
		}
		if input.Permissions != nil {
			role.Permissions = *input.Permissions
		}
		if err := role.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		role.UpdatedAt = timeNow().UTC()
		if err := stores.RoleStore.Save(ctx, role); err != nil {
			storeError(w, err, "role")
			return
		}
		writeJSON(w, http.StatusOK, roleResponse(role))

	case "DELETE":
		if _, ok := requireAdmin(w, r); !ok {
			return
		}
		if err := stores.RoleStore.Delete(ctx, id); err != nil {
			storeError(w, err, "role")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		methodNotAllowed(w)
	}
}
