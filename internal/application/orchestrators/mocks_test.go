package orchestrators

import (
	"context"
	"database/sql"
	"sync"

	"paddletrack/internal/adapters/email"
	"paddletrack/internal/domain/boat"
	"paddletrack/internal/domain/discipline"
	"paddletrack/internal/domain/role"
	"paddletrack/internal/domain/trainingplan"
	"paddletrack/internal/domain/trainingsession"
	"paddletrack/internal/domain/user"
)

// Mock stores backed by maps. Misses return sql.ErrNoRows so the
// orchestrators' not-found handling behaves like the SQLite stores.

type mockUserStore struct {
	users map[string]user.User
}

func (m *mockUserStore) GetByID(ctx context.Context, id string) (user.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return user.User{}, sql.ErrNoRows
}

func (m *mockUserStore) GetByEmail(ctx context.Context, emailAddr string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == emailAddr {
			return u, nil
		}
	}
	return user.User{}, sql.ErrNoRows
}

func (m *mockUserStore) Save(ctx context.Context, u user.User) error {
	if m.users == nil {
		m.users = make(map[string]user.User)
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockUserStore) Count(ctx context.Context) (int, error) {
	return len(m.users), nil
}

type mockRoleStore struct {
	roles map[string]role.Role
}

func (m *mockRoleStore) GetByID(ctx context.Context, id string) (role.Role, error) {
	if r, ok := m.roles[id]; ok {
		return r, nil
	}
	return role.Role{}, sql.ErrNoRows
}

func (m *mockRoleStore) GetByName(ctx context.Context, name string) (role.Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return role.Role{}, sql.ErrNoRows
}

func (m *mockRoleStore) Save(ctx context.Context, r role.Role) error {
	if m.roles == nil {
		m.roles = make(map[string]role.Role)
	}
	m.roles[r.ID] = r
	return nil
}

// seedRoles installs the three well-known roles with fixed ids.
func seedRoles() *mockRoleStore {
	return &mockRoleStore{roles: map[string]role.Role{
		"role-admin":      {ID: "role-admin", Name: role.NameAdmin},
		"role-coach":      {ID: "role-coach", Name: role.NameCoach},
		"role-competitor": {ID: "role-competitor", Name: role.NameCompetitor},
	}}
}

type mockPlanStore struct {
	plans map[string]trainingplan.TrainingPlan
}

func (m *mockPlanStore) GetByID(ctx context.Context, id string) (trainingplan.TrainingPlan, error) {
	if p, ok := m.plans[id]; ok {
		return p, nil
	}
	return trainingplan.TrainingPlan{}, sql.ErrNoRows
}

type mockSessionStore struct {
	sessions map[string]trainingsession.TrainingSession
	saveErr  error
}

func (m *mockSessionStore) GetByID(ctx context.Context, id string) (trainingsession.TrainingSession, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return trainingsession.TrainingSession{}, sql.ErrNoRows
}

func (m *mockSessionStore) Save(ctx context.Context, s trainingsession.TrainingSession) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.sessions == nil {
		m.sessions = make(map[string]trainingsession.TrainingSession)
	}
	m.sessions[s.ID] = s
	return nil
}

type mockBoatStore struct {
	boats map[string]boat.Boat
}

func (m *mockBoatStore) List(ctx context.Context) ([]boat.Boat, error) {
	var list []boat.Boat
	for _, b := range m.boats {
		list = append(list, b)
	}
	return list, nil
}

func (m *mockBoatStore) Save(ctx context.Context, b boat.Boat) error {
	if m.boats == nil {
		m.boats = make(map[string]boat.Boat)
	}
	m.boats[b.ID] = b
	return nil
}

type mockDisciplineStore struct {
	disciplines map[string]discipline.Discipline
}

func (m *mockDisciplineStore) List(ctx context.Context) ([]discipline.Discipline, error) {
	var list []discipline.Discipline
	for _, d := range m.disciplines {
		list = append(list, d)
	}
	return list, nil
}

func (m *mockDisciplineStore) Save(ctx context.Context, d discipline.Discipline) error {
	if m.disciplines == nil {
		m.disciplines = make(map[string]discipline.Discipline)
	}
	m.disciplines[d.ID] = d
	return nil
}

// mockSender records sends for assertions.
type mockSender struct {
	mu      sync.Mutex
	sent    []email.SendRequest
	sendErr error
}

func (m *mockSender) Send(ctx context.Context, req email.SendRequest) (email.SendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return email.SendResult{}, m.sendErr
	}
	m.sent = append(m.sent, req)
	return email.SendResult{MessageID: "mock-1"}, nil
}
