package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tennis-academy/internal/model"
    "github.com/iliyamo/tennis-academy/internal/repository"
)

// CoachHandler exposes the coaching roster: a public listing plus
// staff-only CRUD.
type CoachHandler struct {
	Coaches *repository.CoachRepo
}

// NewCoachHandler constructs a CoachHandler and panics on a nil repository.
func NewCoachHandler(coaches *repository.CoachRepo) *CoachHandler {
	if coaches == nil {
		panic("nil repository passed to NewCoachHandler")
	}
	return &CoachHandler{Coaches: coaches}
}

type coachReq struct {
	FullName  string `json:"full_name"`
	Specialty string `json:"specialty"`
	YearsExp  uint8  `json:"years_experience"`
	IsActive  *bool  `json:"is_active"`
}

type coachResp struct {
	ID        uint64 `json:"id"`
	FullName  string `json:"full_name"`
	Specialty string `json:"specialty"`
	YearsExp  uint8  `json:"years_experience"`
	IsActive  bool   `json:"is_active"`
}

func toCoachResp(coach *model.Coach) coachResp {
	return coachResp{
		ID:        coach.ID,
		FullName:  coach.FullName,
		Specialty: coach.Specialty,
		YearsExp:  coach.YearsExp,
		IsActive:  coach.IsActive,
	}
}

// ListCoaches handles GET /v1/coaches (public).  Retired coaches are
// hidden unless ?all=true is passed.
func (h *CoachHandler) ListCoaches(c echo.Context) error {
	all := strings.EqualFold(c.QueryParam("all"), "true")
	coaches, err := h.Coaches.List(c.Request().Context(), !all)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]coachResp, 0, len(coaches))
	for i := range coaches {
		items = append(items, toCoachResp(&coaches[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetCoach handles GET /v1/coaches/:id (public).
func (h *CoachHandler) GetCoach(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coach id"})
	}
	coach, err := h.Coaches.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrCoachNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coach not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toCoachResp(coach)})
}

// CreateCoach handles POST /v1/staff/coaches.
func (h *CoachHandler) CreateCoach(c echo.Context) error {
	var req coachReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name is required"})
	}
	coach := &model.Coach{
		FullName:  req.FullName,
		Specialty: strings.TrimSpace(req.Specialty),
		YearsExp:  req.YearsExp,
		IsActive:  true,
	}
	if req.IsActive != nil {
		coach.IsActive = *req.IsActive
	}
	if err := h.Coaches.Create(c.Request().Context(), coach); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toCoachResp(coach)})
}

// UpdateCoach handles PUT/PATCH /v1/staff/coaches/:id.
func (h *CoachHandler) UpdateCoach(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coach id"})
	}
	ctx := c.Request().Context()
	coach, err := h.Coaches.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrCoachNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coach not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	var req coachReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if name := strings.TrimSpace(req.FullName); name != "" {
		coach.FullName = name
	}
	if sp := strings.TrimSpace(req.Specialty); sp != "" {
		coach.Specialty = sp
	}
	if req.YearsExp != 0 {
		coach.YearsExp = req.YearsExp
	}
	if req.IsActive != nil {
		coach.IsActive = *req.IsActive
	}
	if err := h.Coaches.Update(ctx, coach); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toCoachResp(coach)})
}

// DeleteCoach handles DELETE /v1/staff/coaches/:id.
func (h *CoachHandler) DeleteCoach(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid coach id"})
	}
	if err := h.Coaches.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrCoachNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "coach not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
