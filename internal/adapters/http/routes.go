package web

import "net/http"

// registerRoutes wires every API path. Exact patterns win over the trailing-
// slash prefix patterns, so /api/users/me never reaches handleUserByID.
func registerRoutes(mux *http.ServeMux) {
	// Auth
	mux.HandleFunc("/api/auth/register", handleRegister)
	mux.HandleFunc("/api/auth/login", handleLogin)

	// Users
	mux.HandleFunc("/api/users", handleUsers)
	mux.HandleFunc("/api/users/me", handleMe)
	mux.HandleFunc("/api/users/unapproved", handleUnapprovedUsers)
	mux.HandleFunc("/api/users/", handleUserByID)

	// Clubs
	mux.HandleFunc("/api/clubs", handleClubs)
	mux.HandleFunc("/api/clubs/", handleClubByID)

	// Boats
	mux.HandleFunc("/api/boats", handleBoats)
	mux.HandleFunc("/api/boats/", handleBoatByID)

	// Disciplines
	mux.HandleFunc("/api/disciplines", handleDisciplines)
	mux.HandleFunc("/api/disciplines/", handleDisciplineByID)

	// Training types
	mux.HandleFunc("/api/training-types", handleTrainingTypes)
	mux.HandleFunc("/api/training-types/", handleTrainingTypeByID)

	// Training plans
	mux.HandleFunc("/api/training-plans", handleTrainingPlans)
	mux.HandleFunc("/api/training-plans/", handleTrainingPlanByID)

	// Training sessions
	mux.HandleFunc("/api/training-sessions", handleTrainingSessions)
	mux.HandleFunc("/api/training-sessions/me", handleMySessions)
	mux.HandleFunc("/api/training-sessions/assign-plan", handleAssignPlan)
	mux.HandleFunc("/api/training-sessions/", handleTrainingSessionByID)

	// Teams
	mux.HandleFunc("/api/teams", handleTeams)
	mux.HandleFunc("/api/teams/", handleTeamByID)

	// Mental health
	mux.HandleFunc("/api/mental-health", handleMentalHealth)
	mux.HandleFunc("/api/mental-health/my", handleMyMentalHealth)
	mux.HandleFunc("/api/mental-health/", handleMentalHealthByID)

	// Roles
	mux.HandleFunc("/api/roles", handleRoles)
	mux.HandleFunc("/api/roles/", handleRoleByID)

	// Ops
	mux.HandleFunc("/api/perf", handlePerf)
}
