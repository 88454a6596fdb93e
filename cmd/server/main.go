package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "paddletrack/internal/adapters/email"
	web "paddletrack/internal/adapters/http"
	"paddletrack/internal/adapters/http/perf"
	"paddletrack/internal/adapters/storage"
	boatStore "paddletrack/internal/adapters/storage/boat"
	clubStore "paddletrack/internal/adapters/storage/club"
	disciplineStore "paddletrack/internal/adapters/storage/discipline"
	mentalHealthStore "paddletrack/internal/adapters/storage/mentalhealth"
	roleStore "paddletrack/internal/adapters/storage/role"
	teamStore "paddletrack/internal/adapters/storage/team"
	trainingPlanStore "paddletrack/internal/adapters/storage/trainingplan"
	trainingSessionStore "paddletrack/internal/adapters/storage/trainingsession"
	trainingTypeStore "paddletrack/internal/adapters/storage/trainingtype"
	userStore "paddletrack/internal/adapters/storage/user"
	"paddletrack/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configureLogging()

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("PADDLETRACK_DB", "paddletrack.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	// Create schema
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	// Create store instances (using timed DB for query instrumentation)
	roles := roleStore.NewSQLiteStore(timedDB)
	users := userStore.NewSQLiteStore(timedDB)
	boats := boatStore.NewSQLiteStore(timedDB)
	disciplines := disciplineStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		RoleStore:            roles,
		UserStore:            users,
		ClubStore:            clubStore.NewSQLiteStore(timedDB),
		BoatStore:            boats,
		DisciplineStore:      disciplines,
		TrainingTypeStore:    trainingTypeStore.NewSQLiteStore(timedDB),
		TrainingPlanStore:    trainingPlanStore.NewSQLiteStore(timedDB),
		TrainingSessionStore: trainingSessionStore.NewSQLiteStore(timedDB),
		TeamStore:            teamStore.NewSQLiteStore(timedDB),
		MentalHealthStore:    mentalHealthStore.NewSQLiteStore(timedDB),
	}

	// Seed roles, reference data, and the bootstrap admin account
	seedInput := orchestrators.SeedInput{
		AdminEmail:    os.Getenv("PADDLETRACK_ADMIN_EMAIL"),
		AdminPassword: os.Getenv("PADDLETRACK_ADMIN_PASSWORD"),
	}
	seedDeps := orchestrators.SeedDeps{
		RoleStore:       roles,
		UserStore:       users,
		BoatStore:       boats,
		DisciplineStore: disciplines,
	}
	if err := orchestrators.ExecuteSeed(context.Background(), seedInput, seedDeps); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("PADDLETRACK_RESEND_KEY")
	emailFrom := envOrDefault("PADDLETRACK_RESEND_FROM", "Paddletrack <noreply@paddletrack.app>")
	emailReply := os.Getenv("PADDLETRACK_REPLY_TO")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom, emailReply))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if os.Getenv("PADDLETRACK_ENV") == "production" {
			log.Println("WARNING: PADDLETRACK_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set PADDLETRACK_RESEND_KEY for real delivery)")
		}
	}

	// Create HTTP handler with middleware (pass collector for timing + perf endpoint)
	mux := web.NewMux(stores, collector)

	// Start server
	addr := envOrDefault("PADDLETRACK_ADDR", ":8080")
	log.Printf("Paddletrack %s starting on %s (env=%s)", version, addr, envOrDefault("PADDLETRACK_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// configureLogging sets the slog default level from PADDLETRACK_LOG_LEVEL.
func configureLogging() {
	level := slog.LevelInfo
	switch envOrDefault("PADDLETRACK_LOG_LEVEL", "info") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
