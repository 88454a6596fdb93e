package trainingplan

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"paddletrack/internal/adapters/storage"
	domain "paddletrack/internal/domain/trainingplan"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	return db
}

func mixedPlan() domain.TrainingPlan {
	return domain.TrainingPlan{
		ID:   "plan-1",
		Name: "Sprint block",
		Exercises: []domain.Exercise{
			{
				Name:    "Pyramids",
				Variant: domain.VariantStandard,
				Standard: &domain.StandardSegment{
					Unit:          "m",
					IntensityType: domain.IntensityZone,
					Durations:     []float64{250, 500, 250},
					Intensities:   []string{"zone3", "zone4", "zone3"},
					Series:        2,
					Repetitions:   3,
				},
			},
			{
				Name:    "Bench pull",
				Variant: domain.VariantGym,
				Gym: &domain.GymSegment{
					Reps:             12,
					Weight:           45,
					Sets:             4,
					PauseBetweenSets: 90,
				},
			},
		},
		CreatedAt: time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC),
	}
}

// TestPlanRoundTrip verifies both exercise variants survive the JSON column,
// discriminant included.
func TestPlanRoundTrip(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	saved := mixedPlan()
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetByID(ctx, "plan-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Sprint block" {
		t.Errorf("got name %q, want Sprint block", got.Name)
	}
	if len(got.Exercises) != 2 {
		t.Fatalf("got %d exercises, want 2", len(got.Exercises))
	}

	standard := got.Exercises[0]
	if standard.Variant != domain.VariantStandard || standard.Standard == nil || standard.Gym != nil {
		t.Fatalf("got exercise %+v, want a pure standard exercise", standard)
	}
	if len(standard.Standard.Durations) != 3 || standard.Standard.Durations[1] != 500 {
		t.Errorf("got durations %v, want [250 500 250]", standard.Standard.Durations)
	}
	if standard.Standard.Intensities[1] != "zone4" {
		t.Errorf("got intensities %v, want zone4 at index 1", standard.Standard.Intensities)
	}

	gym := got.Exercises[1]
	if gym.Variant != domain.VariantGym || gym.Gym == nil || gym.Standard != nil {
		t.Fatalf("got exercise %+v, want a pure gym exercise", gym)
	}
	if gym.Gym.Reps != 12 || gym.Gym.Weight != 45 {
		t.Errorf("got gym segment %+v, want reps=12 weight=45", gym.Gym)
	}

	if err := got.Validate(); err != nil {
		t.Errorf("round-tripped plan failed validation: %v", err)
	}
}

// TestPlanSaveUpdates verifies the exercise list is replaced on update.
func TestPlanSaveUpdates(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	entity := mixedPlan()
	if err := store.Save(ctx, entity); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entity.Name = "Sprint block v2"
	entity.Exercises = entity.Exercises[:1]
	entity.UpdatedAt = time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	if err := store.Save(ctx, entity); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := store.GetByID(ctx, "plan-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Sprint block v2" || len(got.Exercises) != 1 {
		t.Errorf("got %q with %d exercises, want v2 with 1", got.Name, len(got.Exercises))
	}
	if got.UpdatedAt.IsZero() {
		t.Error("updated at not persisted")
	}
}

// TestPlanDelete verifies deletion and the not-found classification on the
// second attempt.
func TestPlanDelete(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	if err := store.Save(ctx, mixedPlan()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(ctx, "plan-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Delete(ctx, "plan-1"); !storage.IsNotFound(err) {
		t.Errorf("got %v, want not-found on second delete", err)
	}
	if _, err := store.GetByID(ctx, "plan-1"); !storage.IsNotFound(err) {
		t.Errorf("got %v, want not-found after delete", err)
	}
}

// TestPlanList verifies name ordering.
func TestPlanList(t *testing.T) {
	store := NewSQLiteStore(openTestDB(t))
	ctx := context.Background()

	for _, p := range []struct{ id, name string }{
		{"p2", "Winter base"},
		{"p1", "Regatta taper"},
	} {
		entity := mixedPlan()
		entity.ID = p.id
		entity.Name = p.name
		if err := store.Save(ctx, entity); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	plans, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("got %d plans, want 2", len(plans))
	}
	if plans[0].Name != "Regatta taper" || plans[1].Name != "Winter base" {
		t.Errorf("got order %q, %q, want name order", plans[0].Name, plans[1].Name)
	}
}
