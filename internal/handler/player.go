package handler

import (
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tennis-academy/internal/model"
    "github.com/iliyamo/tennis-academy/internal/repository"
)

// PlayerHandler exposes the caller's own player profile and a staff
// listing of all profiles.
type PlayerHandler struct {
	Players *repository.PlayerRepo
}

// NewPlayerHandler constructs a PlayerHandler and panics on a nil repository.
func NewPlayerHandler(players *repository.PlayerRepo) *PlayerHandler {
	if players == nil {
		panic("nil repository passed to NewPlayerHandler")
	}
	return &PlayerHandler{Players: players}
}

type profileResp struct {
	ID          uint64  `json:"id"`
	FullName    string  `json:"full_name"`
	DateOfBirth string  `json:"date_of_birth"`
	Age         int     `json:"age"`
	SkillLevel  string  `json:"skill_level"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}

func toProfileResp(p *model.PlayerProfile) profileResp {
	return profileResp{
		ID:          p.ID,
		FullName:    p.FullName,
		DateOfBirth: p.DateOfBirth.Format(model.DateLayout),
		Age:         p.Age(time.Now().UTC()),
		SkillLevel:  p.SkillLevel,
		PhotoURL:    p.PhotoURL,
	}
}

// GetProfile handles GET /v1/profile.  Returns the caller's own profile.
func (h *PlayerHandler) GetProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	p, err := h.Players.GetByUserID(c.Request().Context(), userID)
	if err != nil {
		if err == repository.ErrPlayerNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no player profile"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toProfileResp(p)})
}

// UpdateProfile handles PUT /v1/profile.  Players edit only their own
// profile; absent fields keep their current values.
func (h *PlayerHandler) UpdateProfile(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	p, err := h.Players.GetByUserID(ctx, userID)
	if err != nil {
		if err == repository.ErrPlayerNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no player profile"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	var req struct {
		FullName    *string `json:"full_name"`
		DateOfBirth *string `json:"date_of_birth"`
		SkillLevel  *string `json:"skill_level"`
		PhotoURL    *string `json:"photo_url"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name cannot be empty"})
		}
		p.FullName = name
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(model.DateLayout, strings.TrimSpace(*req.DateOfBirth))
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date_of_birth must be YYYY-MM-DD"})
		}
		p.DateOfBirth = dob
	}
	if req.SkillLevel != nil {
		lvl := strings.ToLower(strings.TrimSpace(*req.SkillLevel))
		if !model.ValidSkillLevel(lvl) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid skill_level"})
		}
		p.SkillLevel = lvl
	}
	if req.PhotoURL != nil {
		if *req.PhotoURL == "" {
			p.PhotoURL = nil
		} else {
			p.PhotoURL = req.PhotoURL
		}
	}

	if err := h.Players.Update(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toProfileResp(p)})
}

// ListPlayers handles GET /v1/staff/players.  Staff-only roster of all
// registered player profiles.
func (h *PlayerHandler) ListPlayers(c echo.Context) error {
	players, err := h.Players.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]profileResp, 0, len(players))
	for i := range players {
		items = append(items, toProfileResp(&players[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
