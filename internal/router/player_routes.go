package router

import (
	"github.com/iliyamo/tennis-academy/internal/handler"
	"github.com/iliyamo/tennis-academy/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterPlayer registers authenticated booking endpoints under /v1.
// Both PLAYER and STAFF roles are accepted: players book for
// themselves, staff book on behalf of the academy.  Ownership checks
// inside the handlers decide who may modify what.
func RegisterPlayer(e *echo.Echo, sessions *handler.SessionHandler, players *handler.PlayerHandler, tournaments *handler.TournamentHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("PLAYER", "STAFF"),
	)

	// ---- Sessions ----
	g.POST("/sessions", sessions.CreateSession)
	g.PUT("/sessions/:id", sessions.UpdateSession)
	g.PATCH("/sessions/:id", sessions.UpdateSession) // partial updates use the same handler
	g.DELETE("/sessions/:id", sessions.DeleteSession)

	// ---- Roster ----
	g.POST("/sessions/:id/players", sessions.AddPlayer)
	g.DELETE("/sessions/:id/players/:player_id", sessions.RemovePlayer)

	// ---- Tournament entries ----
	g.POST("/tournaments/:id/registrations", tournaments.Register)
	g.DELETE("/tournaments/:id/registrations", tournaments.Unregister)

	// ---- Own profile ----
	g.GET("/profile", players.GetProfile)
	g.PUT("/profile", players.UpdateProfile)
	g.PATCH("/profile", players.UpdateProfile)
}
