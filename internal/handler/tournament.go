package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tennis-academy/internal/model"
    "github.com/iliyamo/tennis-academy/internal/repository"
)

// TournamentHandler exposes tournaments: public browsing, player
// registration and staff-only CRUD.
type TournamentHandler struct {
	Tournaments *repository.TournamentRepo
	Players     *repository.PlayerRepo
}

// NewTournamentHandler constructs a TournamentHandler.  Both
// repositories must be non-nil.
func NewTournamentHandler(tournaments *repository.TournamentRepo, players *repository.PlayerRepo) *TournamentHandler {
	if tournaments == nil || players == nil {
		panic("nil repository passed to NewTournamentHandler")
	}
	return &TournamentHandler{Tournaments: tournaments, Players: players}
}

type tournamentReq struct {
	Name      string `json:"name"`
	Location  string `json:"location"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Surface   string `json:"surface"`
}

func (r *tournamentReq) parse() (start, end time.Time, msg string) {
	r.Name = strings.TrimSpace(r.Name)
	r.Surface = strings.ToLower(strings.TrimSpace(r.Surface))
	if r.Name == "" {
		return start, end, "name is required"
	}
	if !model.ValidSurface(r.Surface) {
		return start, end, "surface must be clay, grass, hard or carpet"
	}
	var err error
	start, err = time.Parse(model.DateLayout, strings.TrimSpace(r.StartDate))
	if err != nil {
		return start, end, "start_date must be YYYY-MM-DD"
	}
	end, err = time.Parse(model.DateLayout, strings.TrimSpace(r.EndDate))
	if err != nil {
		return start, end, "end_date must be YYYY-MM-DD"
	}
	if end.Before(start) {
		return start, end, "end_date precedes start_date"
	}
	return start, end, ""
}

type tournamentResp struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Surface   string `json:"surface"`
	CreatedBy uint64 `json:"created_by"`
}

func toTournamentResp(t *model.Tournament) tournamentResp {
	return tournamentResp{
		ID:        t.ID,
		Name:      t.Name,
		Location:  t.Location,
		StartDate: t.StartDate.Format(model.DateLayout),
		EndDate:   t.EndDate.Format(model.DateLayout),
		Surface:   t.Surface,
		CreatedBy: t.CreatedBy,
	}
}

// ListTournaments handles GET /v1/tournaments (public).
func (h *TournamentHandler) ListTournaments(c echo.Context) error {
	tournaments, err := h.Tournaments.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]tournamentResp, 0, len(tournaments))
	for i := range tournaments {
		items = append(items, toTournamentResp(&tournaments[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetTournament handles GET /v1/tournaments/:id (public).  The entry
// list rides along with the tournament itself.
func (h *TournamentHandler) GetTournament(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tournament id"})
	}
	ctx := c.Request().Context()
	t, err := h.Tournaments.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrTournamentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tournament not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	entries, err := h.Tournaments.ListRegistrations(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"item":    toTournamentResp(t),
		"entries": entries,
	})
}

// CreateTournament handles POST /v1/staff/tournaments.
func (h *TournamentHandler) CreateTournament(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req tournamentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	start, end, msg := req.parse()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	t := &model.Tournament{
		Name:      req.Name,
		Location:  strings.TrimSpace(req.Location),
		StartDate: start,
		EndDate:   end,
		Surface:   req.Surface,
		CreatedBy: userID,
	}
	if err := h.Tournaments.Create(c.Request().Context(), t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toTournamentResp(t)})
}

// UpdateTournament handles PUT/PATCH /v1/staff/tournaments/:id.
func (h *TournamentHandler) UpdateTournament(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tournament id"})
	}
	ctx := c.Request().Context()
	t, err := h.Tournaments.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrTournamentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tournament not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var req tournamentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	start, end, msg := req.parse()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	t.Name = req.Name
	t.Location = strings.TrimSpace(req.Location)
	t.StartDate = start
	t.EndDate = end
	t.Surface = req.Surface
	if err := h.Tournaments.Update(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toTournamentResp(t)})
}

// DeleteTournament handles DELETE /v1/staff/tournaments/:id.
func (h *TournamentHandler) DeleteTournament(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tournament id"})
	}
	if err := h.Tournaments.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrTournamentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tournament not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Register handles POST /v1/tournaments/:id/registrations.  A player
// enters a tournament with their own profile; a second registration
// for the same tournament is rejected with 409.
func (h *TournamentHandler) Register(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tournament id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Tournaments.GetByID(ctx, id); err != nil {
		if err == repository.ErrTournamentNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tournament not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	profile, err := h.Players.GetByUserID(ctx, userID)
	if err != nil {
		if err == repository.ErrPlayerNotFound {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "no player profile"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	reg := &model.TournamentRegistration{PlayerID: profile.ID, TournamentID: id}
	if err := h.Tournaments.Register(ctx, reg); err != nil {
		if err == repository.ErrAlreadyRegistered {
			return c.JSON(http.StatusConflict, echo.Map{"error": "already registered for this tournament"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"registration_id": reg.ID,
		"tournament_id":   reg.TournamentID,
		"player_id":       reg.PlayerID,
	})
}

// Unregister handles DELETE /v1/tournaments/:id/registrations.  The
// caller withdraws their own entry; withdrawing when not registered is
// a no-op.
func (h *TournamentHandler) Unregister(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tournament id"})
	}
	ctx := c.Request().Context()
	profile, err := h.Players.GetByUserID(ctx, userID)
	if err != nil {
		if err == repository.ErrPlayerNotFound {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "no player profile"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	removed, err := h.Tournaments.Unregister(ctx, id, profile.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"removed": removed})
}
