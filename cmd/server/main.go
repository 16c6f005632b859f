package main // Entry point package

import (
	"log"  // Logging library
	"time" // Timezone loading

	"github.com/joho/godotenv"     // Optional .env loading for local development
	"github.com/jonboulle/clockwork" // Injectable clock used by the scheduling core
	"github.com/labstack/echo/v4"  // Echo web framework

	"github.com/iliyamo/tennis-academy/internal/config"     // Internal config loader
	"github.com/iliyamo/tennis-academy/internal/database"   // MySQL connector
	"github.com/iliyamo/tennis-academy/internal/handler"    // HTTP handlers
	"github.com/iliyamo/tennis-academy/internal/middleware" // Cache and rate limit middleware
	"github.com/iliyamo/tennis-academy/internal/queue"      // Session event consumer
	"github.com/iliyamo/tennis-academy/internal/repository" // Data access layer
	"github.com/iliyamo/tennis-academy/internal/router"     // Route registration
	"github.com/iliyamo/tennis-academy/internal/scheduling" // Booking rules core
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	// The academy's opening hours are interpreted in this zone.
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid ACADEMY_TZ %q: %v", cfg.Timezone, err)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter.  A nil client
	// disables both without stopping the server.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	playerRepo := repository.NewPlayerRepo(db)
	courtRepo := repository.NewCourtRepo(db)
	coachRepo := repository.NewCoachRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	participantRepo := repository.NewParticipantRepo(db)
	tournamentRepo := repository.NewTournamentRepo(db)

	// Scheduling core: real clock in production, fake clocks in tests.
	clock := clockwork.NewRealClock()
	scheduler := scheduling.NewScheduler(sessionRepo, clock, loc)
	roster := scheduling.NewRoster(sessionRepo, participantRepo, clock, loc)

	// Handlers
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo, playerRepo)
	courtHandler := handler.NewCourtHandler(courtRepo)
	coachHandler := handler.NewCoachHandler(coachRepo)
	playerHandler := handler.NewPlayerHandler(playerRepo)
	tournamentHandler := handler.NewTournamentHandler(tournamentRepo, playerRepo)
	sessionHandler := handler.NewSessionHandler(scheduler, roster, sessionRepo, participantRepo, courtRepo, playerRepo)

	e := echo.New() // Create Echo instance

	// Rate limit everything; cache only the public browse routes.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e) // Health check
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterPublic(e, courtHandler, coachHandler, sessionHandler, tournamentHandler, cacheMW)
	router.RegisterPlayer(e, sessionHandler, playerHandler, tournamentHandler, cfg.JWTSecret)
	router.RegisterStaff(e, courtHandler, coachHandler, sessionHandler, playerHandler, tournamentHandler, cfg.JWTSecret)

	// Consume session lifecycle events in the background.
	go func() {
		if err := queue.StartSessionConsumer(); err != nil {
			log.Printf("session consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
