package web

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"paddletrack/internal/adapters/email"
	"paddletrack/internal/adapters/http/middleware"
	userStore "paddletrack/internal/adapters/storage/user"
	boatDomain "paddletrack/internal/domain/boat"
	clubDomain "paddletrack/internal/domain/club"
	disciplineDomain "paddletrack/internal/domain/discipline"
	mentalHealthDomain "paddletrack/internal/domain/mentalhealth"
	roleDomain "paddletrack/internal/domain/role"
	teamDomain "paddletrack/internal/domain/team"
	trainingPlanDomain "paddletrack/internal/domain/trainingplan"
	sessionDomain "paddletrack/internal/domain/trainingsession"
	trainingTypeDomain "paddletrack/internal/domain/trainingtype"
	userDomain "paddletrack/internal/domain/user"

	sessionStore "paddletrack/internal/adapters/storage/trainingsession"
)

// notFound mirrors the SQLite stores' error shape so storage.IsNotFound
// classifies mock misses the same way.
func notFound(resource string) error {
	return fmt.Errorf("%s not found: %w", resource, sql.ErrNoRows)
}

// sortedKeys gives the mocks deterministic list order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type mockRoleStore struct {
	roles map[string]roleDomain.Role
}

func (m *mockRoleStore) GetByID(_ context.Context, id string) (roleDomain.Role, error) {
	if r, ok := m.roles[id]; ok {
		return r, nil
	}
	return roleDomain.Role{}, notFound("role")
}

func (m *mockRoleStore) GetByName(_ context.Context, name string) (roleDomain.Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return roleDomain.Role{}, notFound("role")
}

func (m *mockRoleStore) Save(_ context.Context, value roleDomain.Role) error {
	if m.roles == nil {
		m.roles = make(map[string]roleDomain.Role)
	}
	m.roles[value.ID] = value
	return nil
}

func (m *mockRoleStore) Delete(_ context.Context, id string) error {
	if _, ok := m.roles[id]; !ok {
		return notFound("role")
	}
	delete(m.roles, id)
	return nil
}

func (m *mockRoleStore) List(_ context.Context) ([]roleDomain.Role, error) {
	var out []roleDomain.Role
	for _, k := range sortedKeys(m.roles) {
		out = append(out, m.roles[k])
	}
	return out, nil
}

type mockUserStore struct {
	users map[string]userDomain.User
}

func (m *mockUserStore) GetByID(_ context.Context, id string) (userDomain.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return userDomain.User{}, notFound("user")
}

func (m *mockUserStore) GetByEmail(_ context.Context, email string) (userDomain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return userDomain.User{}, notFound("user")
}

func (m *mockUserStore) Save(_ context.Context, value userDomain.User) error {
	if m.users == nil {
		m.users = make(map[string]userDomain.User)
	}
	m.users[value.ID] = value
	return nil
}

// List mirrors the SQLite visibility rules: approved only, no soft-deleted.
func (m *mockUserStore) List(_ context.Context, filter userStore.ListFilter) ([]userDomain.User, error) {
	var out []userDomain.User
	for _, k := range sortedKeys(m.users) {
		u := m.users[k]
		if u.IsDeleted() || !u.Approved {
			continue
		}
		if filter.RoleID != "" && u.RoleID != filter.RoleID {
			continue
		}
		out = append(out, u)
	}
	if filter.Limit > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
		if len(out) > filter.Limit {
			out = out[:filter.Limit]
		}
	}
	return out, nil
}

func (m *mockUserStore) ListUnapproved(_ context.Context) ([]userDomain.User, error) {
	var out []userDomain.User
	for _, k := range sortedKeys(m.users) {
		u := m.users[k]
		if !u.IsDeleted() && !u.Approved {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserStore) Count(_ context.Context) (int, error) {
	return len(m.users), nil
}

type mockClubStore struct {
	clubs map[string]clubDomain.Club
}

func (m *mockClubStore) GetByID(_ context.Context, id string) (clubDomain.Club, error) {
	if c, ok := m.clubs[id]; ok {
		return c, nil
	}
	return clubDomain.Club{}, notFound("club")
}

func (m *mockClubStore) Save(_ context.Context, value clubDomain.Club) error {
	if m.clubs == nil {
		m.clubs = make(map[string]clubDomain.Club)
	}
	m.clubs[value.ID] = value
	return nil
}

func (m *mockClubStore) Delete(_ context.Context, id string) error {
	if _, ok := m.clubs[id]; !ok {
		return notFound("club")
	}
	delete(m.clubs, id)
	return nil
}

func (m *mockClubStore) List(_ context.Context) ([]clubDomain.Club, error) {
	var out []clubDomain.Club
	for _, k := range sortedKeys(m.clubs) {
		out = append(out, m.clubs[k])
	}
	return out, nil
}

type mockBoatStore struct {
	boats map[string]boatDomain.Boat
}

func (m *mockBoatStore) GetByID(_ context.Context, id string) (boatDomain.Boat, error) {
	if b, ok := m.boats[id]; ok {
		return b, nil
	}
	return boatDomain.Boat{}, notFound("boat")
}

func (m *mockBoatStore) Save(_ context.Context, value boatDomain.Boat) error {
	for _, b := range m.boats {
		if b.Name == value.Name && b.ID != value.ID {
			return fmt.Errorf("UNIQUE constraint failed: boat.name")
		}
	}
	if m.boats == nil {
		m.boats = make(map[string]boatDomain.Boat)
	}
	m.boats[value.ID] = value
	return nil
}

func (m *mockBoatStore) Delete(_ context.Context, id string) error {
	if _, ok := m.boats[id]; !ok {
		return notFound("boat")
	}
	delete(m.boats, id)
	return nil
}

func (m *mockBoatStore) List(_ context.Context) ([]boatDomain.Boat, error) {
	var out []boatDomain.Boat
	for _, k := range sortedKeys(m.boats) {
		out = append(out, m.boats[k])
	}
	return out, nil
}

type mockDisciplineStore struct {
	disciplines map[string]disciplineDomain.Discipline
}

func (m *mockDisciplineStore) GetByID(_ context.Context, id string) (disciplineDomain.Discipline, error) {
	if d, ok := m.disciplines[id]; ok {
		return d, nil
	}
	return disciplineDomain.Discipline{}, notFound("discipline")
}

func (m *mockDisciplineStore) Save(_ context.Context, value disciplineDomain.Discipline) error {
	if m.disciplines == nil {
		m.disciplines = make(map[string]disciplineDomain.Discipline)
	}
	m.disciplines[value.ID] = value
	return nil
}

func (m *mockDisciplineStore) Delete(_ context.Context, id string) error {
	if _, ok := m.disciplines[id]; !ok {
		return notFound("discipline")
	}
	delete(m.disciplines, id)
	return nil
}

func (m *mockDisciplineStore) List(_ context.Context) ([]disciplineDomain.Discipline, error) {
	var out []disciplineDomain.Discipline
	for _, k := range sortedKeys(m.disciplines) {
		out = append(out, m.disciplines[k])
	}
	return out, nil
}

type mockTrainingTypeStore struct {
	types map[string]trainingTypeDomain.TrainingType
}

func (m *mockTrainingTypeStore) GetByID(_ context.Context, id string) (trainingTypeDomain.TrainingType, error) {
	if t, ok := m.types[id]; ok {
		return t, nil
	}
	return trainingTypeDomain.TrainingType{}, notFound("training type")
}

func (m *mockTrainingTypeStore) Save(_ context.Context, value trainingTypeDomain.TrainingType) error {
	if m.types == nil {
		m.types = make(map[string]trainingTypeDomain.TrainingType)
	}
	m.types[value.ID] = value
	return nil
}

func (m *mockTrainingTypeStore) Delete(_ context.Context, id string) error {
	if _, ok := m.types[id]; !ok {
		return notFound("training type")
	}
	delete(m.types, id)
	return nil
}

func (m *mockTrainingTypeStore) List(_ context.Context) ([]trainingTypeDomain.TrainingType, error) {
	var out []trainingTypeDomain.TrainingType
	for _, k := range sortedKeys(m.types) {
		out = append(out, m.types[k])
	}
	return out, nil
}

type mockTrainingPlanStore struct {
	plans map[string]trainingPlanDomain.TrainingPlan
}

func (m *mockTrainingPlanStore) GetByID(_ context.Context, id string) (trainingPlanDomain.TrainingPlan, error) {
	if p, ok := m.plans[id]; ok {
		return p, nil
	}
	return trainingPlanDomain.TrainingPlan{}, notFound("training plan")
}

func (m *mockTrainingPlanStore) Save(_ context.Context, value trainingPlanDomain.TrainingPlan) error {
	if m.plans == nil {
		m.plans = make(map[string]trainingPlanDomain.TrainingPlan)
	}
	m.plans[value.ID] = value
	return nil
}

func (m *mockTrainingPlanStore) Delete(_ context.Context, id string) error {
	if _, ok := m.plans[id]; !ok {
		return notFound("training plan")
	}
	delete(m.plans, id)
	return nil
}

func (m *mockTrainingPlanStore) List(_ context.Context) ([]trainingPlanDomain.TrainingPlan, error) {
	var out []trainingPlanDomain.TrainingPlan
	for _, k := range sortedKeys(m.plans) {
		out = append(out, m.plans[k])
	}
	return out, nil
}

type mockSessionStore struct {
	sessions map[string]sessionDomain.TrainingSession
}

func (m *mockSessionStore) GetByID(_ context.Context, id string) (sessionDomain.TrainingSession, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return sessionDomain.TrainingSession{}, notFound("training session")
}

func (m *mockSessionStore) Save(_ context.Context, value sessionDomain.TrainingSession) error {
	if m.sessions == nil {
		m.sessions = make(map[string]sessionDomain.TrainingSession)
	}
	m.sessions[value.ID] = value
	return nil
}

func (m *mockSessionStore) Delete(_ context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return notFound("training session")
	}
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionStore) List(_ context.Context, filter sessionStore.ListFilter) ([]sessionDomain.TrainingSession, error) {
	var out []sessionDomain.TrainingSession
	for _, k := range sortedKeys(m.sessions) {
		s := m.sessions[k]
		if filter.PlanID != "" && s.PlanID != filter.PlanID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSessionStore) ListByAthlete(_ context.Context, athleteID string) ([]sessionDomain.TrainingSession, error) {
	var out []sessionDomain.TrainingSession
	for _, k := range sortedKeys(m.sessions) {
		if m.sessions[k].AthleteID == athleteID {
			out = append(out, m.sessions[k])
		}
	}
	return out, nil
}

func (m *mockSessionStore) ListByCoach(_ context.Context, coachID string) ([]sessionDomain.TrainingSession, error) {
	var out []sessionDomain.TrainingSession
	for _, k := range sortedKeys(m.sessions) {
		if m.sessions[k].CoachID == coachID {
			out = append(out, m.sessions[k])
		}
	}
	return out, nil
}

type mockTeamStore struct {
	teams map[string]teamDomain.Team
}

func (m *mockTeamStore) GetByID(_ context.Context, id string) (teamDomain.Team, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return teamDomain.Team{}, notFound("team")
}

func (m *mockTeamStore) Save(_ context.Context, value teamDomain.Team) error {
	if m.teams == nil {
		m.teams = make(map[string]teamDomain.Team)
	}
	m.teams[value.ID] = value
	return nil
}

func (m *mockTeamStore) Delete(_ context.Context, id string) error {
	if _, ok := m.teams[id]; !ok {
		return notFound("team")
	}
	delete(m.teams, id)
	return nil
}

func (m *mockTeamStore) List(_ context.Context) ([]teamDomain.Team, error) {
	var out []teamDomain.Team
	for _, k := range sortedKeys(m.teams) {
		out = append(out, m.teams[k])
	}
	return out, nil
}

func (m *mockTeamStore) ListByCoach(_ context.Context, coachID string) ([]teamDomain.Team, error) {
	var out []teamDomain.Team
	for _, k := range sortedKeys(m.teams) {
		if m.teams[k].CoachID == coachID {
			out = append(out, m.teams[k])
		}
	}
	return out, nil
}

type mockMentalHealthStore struct {
	entries map[string]mentalHealthDomain.Entry
}

func (m *mockMentalHealthStore) GetByID(_ context.Context, id string) (mentalHealthDomain.Entry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return mentalHealthDomain.Entry{}, notFound("entry")
}

func (m *mockMentalHealthStore) Save(_ context.Context, value mentalHealthDomain.Entry) error {
	if m.entries == nil {
		m.entries = make(map[string]mentalHealthDomain.Entry)
	}
	m.entries[value.ID] = value
	return nil
}

func (m *mockMentalHealthStore) Delete(_ context.Context, id string) error {
	if _, ok := m.entries[id]; !ok {
		return notFound("entry")
	}
	delete(m.entries, id)
	return nil
}

func (m *mockMentalHealthStore) List(_ context.Context) ([]mentalHealthDomain.Entry, error) {
	var out []mentalHealthDomain.Entry
	for _, k := range sortedKeys(m.entries) {
		out = append(out, m.entries[k])
	}
	return out, nil
}

func (m *mockMentalHealthStore) ListByUser(_ context.Context, userID string) ([]mentalHealthDomain.Entry, error) {
	var out []mentalHealthDomain.Entry
	for _, k := range sortedKeys(m.entries) {
		if m.entries[k].UserID == userID {
			out = append(out, m.entries[k])
		}
	}
	return out, nil
}

type mockSender struct {
	sent []email.SendRequest
}

func (m *mockSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "msg-1", SentAt: time.Now()}, nil
}

// testStores bundles the mocks behind the global Stores wiring.
type testStores struct {
	roles        *mockRoleStore
	users        *mockUserStore
	clubs        *mockClubStore
	boats        *mockBoatStore
	disciplines  *mockDisciplineStore
	types        *mockTrainingTypeStore
	plans        *mockTrainingPlanStore
	sessions     *mockSessionStore
	teams        *mockTeamStore
	mentalHealth *mockMentalHealthStore
	sender       *mockSender
}

// setupWeb points the package globals at fresh mocks and returns them
// together with a routed mux. Roles come pre-seeded.
func setupWeb(t *testing.T) (*testStores, *http.ServeMux) {
	t.Helper()
	ts := &testStores{
		roles: &mockRoleStore{roles: map[string]roleDomain.Role{
			"role-admin":      {ID: "role-admin", Name: roleDomain.NameAdmin},
			"role-coach":      {ID: "role-coach", Name: roleDomain.NameCoach},
			"role-competitor": {ID: "role-competitor", Name: roleDomain.NameCompetitor},
		}},
		users:        &mockUserStore{},
		clubs:        &mockClubStore{},
		boats:        &mockBoatStore{},
		disciplines:  &mockDisciplineStore{},
		types:        &mockTrainingTypeStore{},
		plans:        &mockTrainingPlanStore{},
		sessions:     &mockSessionStore{},
		teams:        &mockTeamStore{},
		mentalHealth: &mockMentalHealthStore{},
		sender:       &mockSender{},
	}
	stores = &Stores{
		RoleStore:            ts.roles,
		UserStore:            ts.users,
		ClubStore:            ts.clubs,
		BoatStore:            ts.boats,
		DisciplineStore:      ts.disciplines,
		TrainingTypeStore:    ts.types,
		TrainingPlanStore:    ts.plans,
		TrainingSessionStore: ts.sessions,
		TeamStore:            ts.teams,
		MentalHealthStore:    ts.mentalHealth,
	}
	tokens = middleware.NewTokenManager([]byte("0123456789abcdef0123456789abcdef"))
	emailSender = ts.sender

	mux := http.NewServeMux()
	registerRoutes(mux)
	return ts, mux
}

// Test principals. Handlers read the freshly resolved role from the
// principal, so tests inject it directly.
var (
	adminPrincipal      = middleware.Principal{UserID: "admin-1", Role: roleDomain.NameAdmin}
	coachPrincipal      = middleware.Principal{UserID: "coach-1", Role: roleDomain.NameCoach}
	competitorPrincipal = middleware.Principal{UserID: "comp-1", Role: roleDomain.NameCompetitor}
)

// doRequest routes a request through the mux, optionally authenticated.
func doRequest(t *testing.T, mux *http.ServeMux, method, path string, body any, p *middleware.Principal) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if p != nil {
		req = req.WithContext(middleware.ContextWithPrincipal(req.Context(), *p))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

// decodeBody decodes a JSON response body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}
