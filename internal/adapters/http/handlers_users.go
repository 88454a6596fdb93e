package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"paddletrack/internal/adapters/storage"
	userStore "paddletrack/internal/adapters/storage/user"
	"paddletrack/internal/application/orchestrators"
	userDomain "paddletrack/internal/domain/user"
)

// userView is the public projection of a user: no password hash, role as a
// name (null until approved).
type userView struct {
	ID                 string                         `json:"id"`
	FirstName          string                         `json:"firstName"`
	LastName           string                         `json:"lastName"`
	Email              string                         `json:"email"`
	Role               *string                        `json:"role"`
	Approved           bool                           `json:"approved"`
	Avatar             string                         `json:"avatar,omitempty"`
	Birth              string                         `json:"birth,omitempty"`
	ClubID             string                         `json:"clubId,omitempty"`
	BoatID             string                         `json:"boatId,omitempty"`
	Gender             string                         `json:"gender,omitempty"`
	Height             float64                        `json:"height,omitempty"`
	Weight             float64                        `json:"weight,omitempty"`
	CompetitionResults []userDomain.CompetitionResult `json:"competitionResults,omitempty"`
	CreatedAt          string                         `json:"createdAt"`
	UpdatedAt          string                         `json:"updatedAt"`
}

// userResponse builds the public projection. RoleName must already be
// populated on the user when a non-null role is expected.
func userResponse(u userDomain.User) userView {
	v := userView{
		ID:                 u.ID,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Email:              u.Email,
		Approved:           u.Approved,
		Avatar:             u.Avatar,
		Birth:              u.Birth,
		ClubID:             u.ClubID,
		BoatID:             u.BoatID,
		Gender:             u.Gender,
		Height:             u.Height,
		Weight:             u.Weight,
		CompetitionResults: u.CompetitionResults,
		CreatedAt:          u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:          u.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
	if u.RoleName != "" {
		name := u.RoleName
		v.Role = &name
	}
	return v
}

// roleNames loads the role id -> name map once per request, so list
// projections don't issue one role lookup per user.
func roleNames(ctx context.Context) (map[string]string, error) {
	roles, err := stores.RoleStore.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(roles))
	for _, r := range roles {
		names[r.ID] = r.Name
	}
	return names, nil
}

// handleUsers handles GET /api/users?role=&page=&limit=
func handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		methodNotAllowed(w)
		return
	}
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}
	ctx := r.Context()

	filter := userStore.ListFilter{}
	if roleName := r.URL.Query().Get("role"); roleName != "" {
		role, err := stores.RoleStore.GetByName(ctx, roleName)
		if err != nil {
			if storage.IsNotFound(err) {
				writeList(w, []userView{})
				return
			}
			internalError(w, err)
			return
		}
		filter.RoleID = role.ID
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
		if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 1 {
			filter.Offset = (page - 1) * limit
		}
	}

	users, err := stores.UserStore.List(ctx, filter)
	if err != nil {
		internalError(w, err)
		return
	}
	names, err := roleNames(ctx)
	if err != nil {
		internalError(w, err)
		return
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		u.RoleName = names[u.RoleID]
		views = append(views, userResponse(u))
	}
	writeList(w, views)
}

// handleUnapprovedUsers handles GET /api/users/unapproved
func handleUnapprovedUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		methodNotAllowed(w)
		return
	}
	if _, ok := requireAdmin(w, r); !ok {
		return
	}

	users, err := stores.UserStore.ListUnapproved(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, userResponse(u))
	}
	writeList(w, views)
}

// handleMe handles GET /api/users/me
func handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		methodNotAllowed(w)
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	u, err := stores.UserStore.GetByID(r.Context(), p.UserID)
	if err != nil {
		storeError(w, err, "user")
		return
	}
	u.RoleName = p.Role
	writeJSON(w, http.StatusOK, userResponse(u))
}

// userUpdateInput carries the updatable profile fields. Pointers tell a
// missing field apart from an explicit zero value.
type userUpdateInput struct {
	FirstName          *string                         `json:"firstName"`
	LastName           *string                         `json:"lastName"`
	Email              *string                         `json:"email"`
	Password           *string                         `json:"password"`
	Avatar             *string                         `json:"avatar"`
	Birth              *string                         `json:"birth"`
	ClubID             *string                         `json:"clubId"`
	BoatID             *string                         `json:"boatId"`
	Gender             *string                         `json:"gender"`
	Height             *float64                        `json:"height"`
	Weight             *float64                        `json:"weight"`
	CompetitionResults *[]userDomain.CompetitionResult `json:"competitionResults"`
}

// handleUserByID handles PUT/DELETE /api/users/:id and PUT /api/users/:id/approve
func handleUserByID(w http.ResponseWriter, r *http.Request) {
	rest := pathSuffix(r, "/api/users")
	parts := strings.SplitN(rest, "/", 2)
	id := parts[0]
	if id == "" {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	if len(parts) == 2 {
		if parts[1] == "approve" && r.Method == "PUT" {
			handleApproveUser(w, r, id)
			return
		}
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "GET":
		handleGetUser(w, r, id)
	case "PUT":
		handleUpdateUser(w, r, id)
	case "DELETE":
		handleDeleteUser(w, r, id)
	default:
		methodNotAllowed(w)
	}
}

func handleGetUser(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}
	ctx := r.Context()

	// Direct lookups return soft-deleted users; only lists exclude them.
	u, err := stores.UserStore.GetByID(ctx, id)
	if err != nil {
		storeError(w, err, "user")
		return
	}
	if u.RoleID != "" {
		names, err := roleNames(ctx)
		if err != nil {
			internalError(w, err)
			return
		}
		u.RoleName = names[u.RoleID]
	}
	writeJSON(w, http.StatusOK, userResponse(u))
}

func handleUpdateUser(w http.ResponseWriter, r *http.Request, id string) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	if p.UserID != id && p.Role != adminRole {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	ctx := r.Context()

	var input userUpdateInput
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	u, err := stores.UserStore.GetByID(ctx, id)
	if err != nil {
		storeError(w, err, "user")
		return
	}

	if input.FirstName != nil {
		u.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		u.LastName = *input.LastName
	}
	if input.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Avatar != nil {
		u.Avatar = *input.Avatar
	}
	if input.Birth != nil {
		u.Birth = *input.Birth
	}
	if input.ClubID != nil {
		u.ClubID = *input.ClubID
	}
	if input.BoatID != nil {
		u.BoatID = *input.BoatID
	}
	if input.Gender != nil {
		u.Gender = *input.Gender
	}
	if input.Height != nil {
		u.Height = *input.Height
	}
	if input.Weight != nil {
		u.Weight = *input.Weight
	}
	if input.CompetitionResults != nil {
		u.CompetitionResults = *input.CompetitionResults
	}
	if input.Password != nil {
		if err := u.SetPassword(*input.Password); err != nil {
			validationError(w, map[string]string{"password": err.Error()})
			return
		}
	}

	if err := u.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	u.UpdatedAt = timeNow().UTC()

	if err := stores.UserStore.Save(ctx, u); err != nil {
		storeError(w, err, "user")
		return
	}
	u.RoleName = ""
	if u.RoleID != "" {
		if names, err := roleNames(ctx); err == nil {
			u.RoleName = names[u.RoleID]
		}
	}
	writeJSON(w, http.StatusOK, userResponse(u))
}

func handleDeleteUser(w http.ResponseWriter, r *http.Request, id string) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	if p.UserID != id && p.Role != adminRole {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	ctx := r.Context()

	u, err := stores.UserStore.GetByID(ctx, id)
	if err != nil {
		storeError(w, err, "user")
		return
	}
	if err := u.SoftDelete(timeNow().UTC()); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	u.UpdatedAt = timeNow().UTC()

	if err := stores.UserStore.Save(ctx, u); err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleApproveUser handles PUT /api/users/:id/approve
func handleApproveUser(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := requireAdmin(w, r); !ok {
		return
	}
	ctx := r.Context()

	var input struct {
		RoleID string `json:"roleId"`
		Role   string `json:"role"`
	}
	if err := strictDecode(r, &input); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	roleID := input.RoleID
	if roleID == "" && input.Role != "" {
		role, err := stores.RoleStore.GetByName(ctx, input.Role)
		if err != nil {
			storeError(w, err, "role")
			return
		}
		roleID = role.ID
	}
	if roleID == "" {
		validationError(w, map[string]string{"roleId": "required"})
		return
	}

	u, err := orchestrators.ExecuteApproveUser(ctx, orchestrators.ApproveUserInput{
		UserID: id,
		RoleID: roleID,
	}, orchestrators.ApproveUserDeps{
		UserStore: stores.UserStore,
		RoleStore: stores.RoleStore,
		Sender:    emailSender,
	})
	if err != nil {
		if errors.Is(err, userDomain.ErrAlreadyApproved) || errors.Is(err, userDomain.ErrAlreadyDeleted) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		storeError(w, err, "user")
		return
	}
	writeJSON(w, http.StatusOK, userResponse(u))
}
