package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"paddletrack/internal/adapters/email"
	"paddletrack/internal/adapters/http/middleware"
	"paddletrack/internal/adapters/http/perf"
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
	roleDomain "paddletrack/internal/domain/role"
)

// Stores holds all storage dependencies.
type Stores struct {
	RoleStore            roleStore.Store
	UserStore            userStore.Store
	ClubStore            clubStore.Store
	BoatStore            boatStore.Store
	DisciplineStore      disciplineStore.Store
	TrainingTypeStore    trainingTypeStore.Store
	TrainingPlanStore    trainingPlanStore.Store
	TrainingSessionStore trainingSessionStore.Store
	TeamStore            teamStore.Store
	MentalHealthStore    mentalHealthStore.Store
}

// loadJWTKey reads the token-signing secret from PADDLETRACK_JWT_KEY
// (hex-encoded, 32 bytes). In production, the key MUST be set. In
// development, a random key is generated per startup.
func loadJWTKey() []byte {
	if keyHex := os.Getenv("PADDLETRACK_JWT_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("PADDLETRACK_JWT_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("PADDLETRACK_ENV") == "production" {
		log.Fatal("PADDLETRACK_JWT_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate JWT key: %v", err)
	}
	log.Println("WARNING: using random JWT key (tokens won't survive restart). Set PADDLETRACK_JWT_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global token manager instance (set by NewMux)
var tokens *middleware.TokenManager

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// userResolver resolves token user ids to live principals. Soft-deleted and
// unapproved accounts fail resolution, so a revoked user's outstanding token
// stops working immediately.
type userResolver struct {
	users userStore.Store
	roles roleStore.Store
}

func (ur *userResolver) Resolve(ctx context.Context, userID string) (middleware.Principal, error) {
	u, err := ur.users.GetByID(ctx, userID)
	if err != nil {
		return middleware.Principal{}, err
	}
	if u.IsDeleted() || !u.Approved {
		return middleware.Principal{}, fmt.Errorf("account is not active")
	}
	r, err := ur.roles.GetByID(ctx, u.RoleID)
	if err != nil {
		return middleware.Principal{}, err
	}
	return middleware.Principal{
		UserID:    u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      r.Name,
	}, nil
}

// adminRole is the role name gating admin-only endpoints.
const adminRole = roleDomain.NameAdmin

// NewMux wires HTTP handlers for the app.
func NewMux(s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	tokens = middleware.NewTokenManager(loadJWTKey())

	mux := http.NewServeMux()
	registerRoutes(mux)

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	resolver := &userResolver{users: s.UserStore, roles: s.RoleStore}

	// Apply middleware: Timing -> Auth -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.Auth(tokens, resolver),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
