package handler

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/tennis-academy/internal/model"
    "github.com/iliyamo/tennis-academy/internal/repository"
)

// CourtHandler exposes court reference data: public browse endpoints
// plus staff-only CRUD.
type CourtHandler struct {
	Courts *repository.CourtRepo
}

// NewCourtHandler constructs a CourtHandler and panics on a nil repository.
func NewCourtHandler(courts *repository.CourtRepo) *CourtHandler {
	if courts == nil {
		panic("nil repository passed to NewCourtHandler")
	}
	return &CourtHandler{Courts: courts}
}

type courtReq struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	SurfaceType string `json:"surface_type"`
	Indoor      bool   `json:"indoor"`
}

func (r *courtReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.SurfaceType = strings.ToLower(strings.TrimSpace(r.SurfaceType))
	if r.Name == "" {
		return "name is required"
	}
	if !model.ValidSurface(r.SurfaceType) {
		return "surface_type must be clay, grass, hard or carpet"
	}
	return ""
}

type courtResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	SurfaceType string `json:"surface_type"`
	Indoor      bool   `json:"indoor"`
}

func toCourtResp(court *model.Court) courtResp {
	return courtResp{
		ID:          court.ID,
		Name:        court.Name,
		Location:    court.Location,
		SurfaceType: court.SurfaceType,
		Indoor:      court.Indoor,
	}
}

// ListCourts handles GET /v1/courts (public).
func (h *CourtHandler) ListCourts(c echo.Context) error {
	courts, err := h.Courts.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]courtResp, 0, len(courts))
	for i := range courts {
		items = append(items, toCourtResp(&courts[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetCourt handles GET /v1/courts/:id (public).
func (h *CourtHandler) GetCourt(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
	}
	court, err := h.Courts.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrCourtNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toCourtResp(court)})
}

// CreateCourt handles POST /v1/staff/courts.
func (h *CourtHandler) CreateCourt(c echo.Context) error {
	var req courtReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	court := &model.Court{
		Name:        req.Name,
		Location:    strings.TrimSpace(req.Location),
		SurfaceType: req.SurfaceType,
		Indoor:      req.Indoor,
	}
	if err := h.Courts.Create(c.Request().Context(), court); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": toCourtResp(court)})
}

// UpdateCourt handles PUT/PATCH /v1/staff/courts/:id.
func (h *CourtHandler) UpdateCourt(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
	}
	var req courtReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	court := &model.Court{
		ID:          id,
		Name:        req.Name,
		Location:    strings.TrimSpace(req.Location),
		SurfaceType: req.SurfaceType,
		Indoor:      req.Indoor,
	}
	if err := h.Courts.Update(c.Request().Context(), court); err != nil {
		if err == repository.ErrCourtNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toCourtResp(court)})
}

// DeleteCourt handles DELETE /v1/staff/courts/:id.  Sessions booked on
// the court stay scheduled without a court assignment.
func (h *CourtHandler) DeleteCourt(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
	}
	if err := h.Courts.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrCourtNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
