package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"paddletrack/internal/adapters/storage"
	"paddletrack/internal/domain/boat"
	"paddletrack/internal/domain/discipline"
	"paddletrack/internal/domain/role"
	"paddletrack/internal/domain/user"

	"github.com/google/uuid"
)

// RoleStoreForSeed defines the role store interface needed by Seed.
type RoleStoreForSeed interface {
	GetByName(ctx context.Context, name string) (role.Role, error)
	Save(ctx context.Context, value role.Role) error
}

// UserStoreForSeed defines the user store interface needed by Seed.
type UserStoreForSeed interface {
	Count(ctx context.Context) (int, error)
	Save(ctx context.Context, value user.User) error
}

// BoatStoreForSeed defines the boat store interface needed by Seed.
type BoatStoreForSeed interface {
	List(ctx context.Context) ([]boat.Boat, error)
	Save(ctx context.Context, value boat.Boat) error
}

// DisciplineStoreForSeed defines the discipline store interface needed by Seed.
type DisciplineStoreForSeed interface {
	List(ctx context.Context) ([]discipline.Discipline, error)
	Save(ctx context.Context, value discipline.Discipline) error
}

// SeedInput carries the bootstrap admin credentials. When AdminEmail is
// empty, no admin account is created.
type SeedInput struct {
	AdminEmail    string
	AdminPassword string
}

// SeedDeps holds dependencies for Seed.
type SeedDeps struct {
	RoleStore       RoleStoreForSeed
	UserStore       UserStoreForSeed
	BoatStore       BoatStoreForSeed
	DisciplineStore DisciplineStoreForSeed
}

// defaultBoats is the club's standard fleet vocabulary.
var defaultBoats = []string{"K1", "K2", "K4", "C1", "C2"}

// defaultDisciplines covers the common sprint and marathon distances.
var defaultDisciplines = []discipline.Discipline{
	{Distance: 200, Unit: discipline.UnitMetres},
	{Distance: 500, Unit: discipline.UnitMetres},
	{Distance: 1000, Unit: discipline.UnitMetres},
	{Distance: 5, Unit: discipline.UnitKilometres},
}

// rolePermissions maps each seeded role to its permission vocabulary.
var rolePermissions = map[string][]string{
	role.NameAdmin:      {"users:manage", "roles:manage", "training:manage", "perf:read"},
	role.NameCoach:      {"training:manage", "teams:manage"},
	role.NameCompetitor: {"training:read", "results:submit"},
}

// ExecuteSeed bootstraps reference data: the three well-known roles, the
// default fleet and disciplines, and (on an empty user table) the initial
// admin account. Safe to run on every startup.
// POST: Seeded roles exist; admin exists if credentials given and no users yet
// INVARIANT: Re-running never duplicates rows
func ExecuteSeed(ctx context.Context, input SeedInput, deps SeedDeps) error {
	now := time.Now().UTC()

	roleIDs := make(map[string]string, len(role.SeededNames))
	for _, name := range role.SeededNames {
		existing, err := deps.RoleStore.GetByName(ctx, name)
		if err == nil {
			roleIDs[name] = existing.ID
			continue
		}
		if !storage.IsNotFound(err) {
			return fmt.Errorf("failed to look up role %q: %w", name, err)
		}
		r := role.Role{
			ID:          uuid.New().String(),
			Name:        name,
			Permissions: rolePermissions[name],
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := deps.RoleStore.Save(ctx, r); err != nil {
			return fmt.Errorf("failed to seed role %q: %w", name, err)
		}
		roleIDs[name] = r.ID
		slog.Info("seeded_role", "name", name)
	}

	if err := seedBoats(ctx, deps.BoatStore, now); err != nil {
		return err
	}
	if err := seedDisciplines(ctx, deps.DisciplineStore, now); err != nil {
		return err
	}

	if input.AdminEmail == "" {
		return nil
	}
	count, err := deps.UserStore.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin := user.User{
		ID:        uuid.New().String(),
		FirstName: "Admin",
		LastName:  "Account",
		Email:     input.AdminEmail,
		RoleID:    roleIDs[role.NameAdmin],
		Approved:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := admin.SetPassword(input.AdminPassword); err != nil {
		return fmt.Errorf("invalid admin password: %w", err)
	}
	if err := deps.UserStore.Save(ctx, admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	slog.Info("seeded_admin", "email", input.AdminEmail)
	return nil
}

func seedBoats(ctx context.Context, store BoatStoreForSeed, now time.Time) error {
	existing, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list boats: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, b := range existing {
		have[b.Name] = true
	}
	for _, name := range defaultBoats {
		if have[name] {
			continue
		}
		b := boat.Boat{ID: uuid.New().String(), Name: name, CreatedAt: now}
		if err := store.Save(ctx, b); err != nil {
			return fmt.Errorf("failed to seed boat %q: %w", name, err)
		}
	}
	return nil
}

func seedDisciplines(ctx context.Context, store DisciplineStoreForSeed, now time.Time) error {
	existing, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list disciplines: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, d := range existing {
		have[fmt.Sprintf("%g%s", d.Distance, d.Unit)] = true
	}
	for _, d := range defaultDisciplines {
		if have[fmt.Sprintf("%g%s", d.Distance, d.Unit)] {
			continue
		}
		d.ID = uuid.New().String()
		d.CreatedAt = now
		d.UpdatedAt = now
		if err := store.Save(ctx, d); err != nil {
			return fmt.Errorf("failed to seed discipline %g%s: %w", d.Distance, d.Unit, err)
		}
	}
	return nil
}
