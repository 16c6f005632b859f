package router

import (
	"github.com/iliyamo/tennis-academy/internal/handler"
	"github.com/iliyamo/tennis-academy/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterStaff registers STAFF-scoped endpoints under /v1/staff.
// All routes require a valid JWT and the STAFF role.
func RegisterStaff(e *echo.Echo, courts *handler.CourtHandler, coaches *handler.CoachHandler, sessions *handler.SessionHandler, players *handler.PlayerHandler, tournaments *handler.TournamentHandler, jwtSecret string) {
	// Attach middlewares at group construction time for clarity.
	g := e.Group(
		"/v1/staff",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("STAFF"),
	)

	// ---- Courts ----
	g.POST("/courts", courts.CreateCourt)
	g.PUT("/courts/:id", courts.UpdateCourt)
	g.PATCH("/courts/:id", courts.UpdateCourt)
	g.DELETE("/courts/:id", courts.DeleteCourt)

	// ---- Coaches ----
	g.POST("/coaches", coaches.CreateCoach)
	g.PUT("/coaches/:id", coaches.UpdateCoach)
	g.PATCH("/coaches/:id", coaches.UpdateCoach)
	g.DELETE("/coaches/:id", coaches.DeleteCoach)

	// ---- Sessions ----
	// Bulk cancellation: marks the session canceled and withdraws every
	// active participant, bypassing the 24 hour notice window.
	g.POST("/sessions/:id/cancel", sessions.CancelSession)

	// ---- Players ----
	g.GET("/players", players.ListPlayers)

	// ---- Tournaments ----
	g.POST("/tournaments", tournaments.CreateTournament)
	g.PUT("/tournaments/:id", tournaments.UpdateTournament)
	g.PATCH("/tournaments/:id", tournaments.UpdateTournament)
	g.DELETE("/tournaments/:id", tournaments.DeleteTournament)
}
