package handler

import (
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tennis-academy/internal/queue"
    "github.com/iliyamo/tennis-academy/internal/repository"
)

// AddPlayer handles POST /v1/sessions/:id/players.  A player joins a
// session with their own profile; staff may enroll any player by
// passing player_id in the body.  Capacity and duplicate rules are
// enforced by the roster core.
func (h *SessionHandler) AddPlayer(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sessionID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	var body struct {
		PlayerID uint64 `json:"player_id"`
	}
	// An empty body means "enroll myself"; binding errors are tolerated
	// for the same reason.
	_ = c.Bind(&body)

	ctx := c.Request().Context()
	playerID, errResp := h.resolvePlayerID(c, userID, body.PlayerID)
	if errResp != nil {
		return errResp
	}

	p, err := h.Roster.AddPlayer(ctx, sessionID, playerID)
	if err != nil {
		status, msg := schedulingStatus(err)
		return c.JSON(status, echo.Map{"error": msg})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"participant_id": p.ID,
		"session_id":     p.SessionID,
		"player_id":      p.PlayerID,
		"status":         p.Status,
	})
}

// RemovePlayer handles DELETE /v1/sessions/:id/players/:player_id.  A
// player withdraws their own enrollment subject to the 24 hour notice
// window; staff bypass the window and may remove anyone.  Removing a
// player who is not enrolled is a no-op.
func (h *SessionHandler) RemovePlayer(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sessionID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	playerID, ok := pathID(c, "player_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid player id"})
	}

	ctx := c.Request().Context()
	staff := isStaff(c)
	if !staff {
		profile, err := h.Players.GetByUserID(ctx, userID)
		if err != nil {
			if err == repository.ErrPlayerNotFound {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if profile.ID != playerID {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}

	res, err := h.Roster.RemovePlayer(ctx, sessionID, playerID, staff)
	if err != nil {
		status, msg := schedulingStatus(err)
		return c.JSON(status, echo.Map{"error": msg})
	}
	if res.SessionCanceled {
		if s, err := h.Sessions.GetByID(ctx, sessionID); err == nil && s != nil {
			h.publishEvent(queue.EventSessionCanceled, s, "too many withdrawals")
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"removed":          res.Removed,
		"session_canceled": res.SessionCanceled,
	})
}

// RosterSummary handles GET /v1/sessions/:id/roster.  Returns active
// and canceled counts plus fullness and cancellation flags.
func (h *SessionHandler) RosterSummary(c echo.Context) error {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	summary, err := h.Roster.Summary(c.Request().Context(), sessionID)
	if err != nil {
		status, msg := schedulingStatus(err)
		return c.JSON(status, echo.Map{"error": msg})
	}
	return c.JSON(http.StatusOK, summary)
}

// CancelSession handles POST /v1/staff/sessions/:id/cancel.  Staff
// cancel a whole session: the session is marked canceled and every
// active participant is withdrawn with it.
func (h *SessionHandler) CancelSession(c echo.Context) error {
	sessionID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	ctx := c.Request().Context()
	n, err := h.Roster.CancelSession(ctx, sessionID)
	if err != nil {
		status, msg := schedulingStatus(err)
		return c.JSON(status, echo.Map{"error": msg})
	}
	if s, err := h.Sessions.GetByID(ctx, sessionID); err == nil && s != nil {
		h.publishEvent(queue.EventSessionCanceled, s, "canceled by staff")
	}
	return c.JSON(http.StatusOK, echo.Map{"canceled_participants": n})
}

// resolvePlayerID decides which profile an enrollment targets.  A zero
// requested ID means the caller's own profile.  Players may only act on
// their own profile; staff may pass any ID.
func (h *SessionHandler) resolvePlayerID(c echo.Context, userID, requested uint64) (uint64, error) {
	ctx := c.Request().Context()
	if requested == 0 {
		profile, err := h.Players.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrPlayerNotFound) {
				return 0, c.JSON(http.StatusForbidden, echo.Map{"error": "no player profile"})
			}
			return 0, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return profile.ID, nil
	}
	if isStaff(c) {
		if _, err := h.Players.GetByID(ctx, requested); err != nil {
			if errors.Is(err, repository.ErrPlayerNotFound) {
				return 0, c.JSON(http.StatusNotFound, echo.Map{"error": "player not found"})
			}
			return 0, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		return requested, nil
	}
	profile, err := h.Players.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPlayerNotFound) {
			return 0, c.JSON(http.StatusForbidden, echo.Map{"error": "no player profile"})
		}
		return 0, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if profile.ID != requested {
		return 0, c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return profile.ID, nil
}
