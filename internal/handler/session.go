package handler

import (
    "context"  // background contexts for event publishing
    "errors"   // sentinel comparisons
    "net/http" // HTTP status codes
    "strings"  // input normalization
    "time"     // parsing dates and clock values

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/tennis-academy/internal/model"
    "github.com/iliyamo/tennis-academy/internal/queue"
    "github.com/iliyamo/tennis-academy/internal/repository"
    "github.com/iliyamo/tennis-academy/internal/scheduling"
    publisher "github.com/iliyamo/tennis-academy/internal/service"
)

// SessionHandler groups the scheduling core and repositories needed to
// create, modify and browse training sessions.  JWT authentication and
// role validation are assumed to have been performed by middleware on
// the protected routes; public listing endpoints use no identity.
type SessionHandler struct {
	Scheduler    *scheduling.Scheduler
	Roster       *scheduling.Roster
	Sessions     *repository.SessionRepo
	Participants *repository.ParticipantRepo
	Courts       *repository.CourtRepo
	Players      *repository.PlayerRepo
}

// NewSessionHandler constructs a SessionHandler.  All dependencies must
// be non-nil.
func NewSessionHandler(sched *scheduling.Scheduler, roster *scheduling.Roster, sessions *repository.SessionRepo, participants *repository.ParticipantRepo, courts *repository.CourtRepo, players *repository.PlayerRepo) *SessionHandler {
	if sched == nil || roster == nil || sessions == nil || participants == nil || courts == nil || players == nil {
		panic("nil dependency passed to NewSessionHandler")
	}
	return &SessionHandler{
		Scheduler:    sched,
		Roster:       roster,
		Sessions:     sessions,
		Participants: participants,
		Courts:       courts,
		Players:      players,
	}
}

// ----- DTOs -----

// sessionReq carries the client-settable fields of a session.  Pointers
// distinguish "absent" from "zero" so the same shape serves both create
// and partial update.  end_time is never accepted: it is always derived
// from start_time.
type sessionReq struct {
	CourtID       *uint64 `json:"court_id"`
	Date          *string `json:"date"`       // YYYY-MM-DD
	StartTime     *string `json:"start_time"` // HH:MM or HH:MM:SS
	FocusArea     *string `json:"focus_area"`
	Notes         *string `json:"notes"`
	Intensity     *uint8  `json:"intensity"`
	MaxPlayers    *uint8  `json:"max_players"`
	IntendedLevel *string `json:"intended_level"`
}

type sessionResp struct {
	ID            uint64  `json:"id"`
	CourtID       *uint64 `json:"court_id"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	FocusArea     string  `json:"focus_area"`
	Notes         string  `json:"notes,omitempty"`
	Intensity     uint8   `json:"intensity"`
	MaxPlayers    uint8   `json:"max_players"`
	IntendedLevel string  `json:"intended_level,omitempty"`
	Status        string  `json:"status"`
	CreatedBy     uint64  `json:"created_by"`
}

func toSessionResp(s *model.TrainingSession) sessionResp {
	return sessionResp{
		ID:            s.ID,
		CourtID:       s.CourtID,
		Date:          s.Date.Format(model.DateLayout),
		StartTime:     s.StartTime.Format(model.ClockLayout),
		EndTime:       s.EndTime.Format(model.ClockLayout),
		FocusArea:     s.FocusArea,
		Notes:         s.Notes,
		Intensity:     s.Intensity,
		MaxPlayers:    s.MaxPlayers,
		IntendedLevel: s.IntendedLevel,
		Status:        string(s.Status),
		CreatedBy:     s.CreatedBy,
	}
}

// parseClock accepts HH:MM or HH:MM:SS clock strings.
func parseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(model.ClockLayout, s); err == nil {
		return t, nil
	}
	return time.Parse("15:04", s)
}

// schedulingStatus maps scheduling core errors onto HTTP responses.
// Unknown errors fall through to 500.
func schedulingStatus(err error) (int, string) {
	switch {
	case errors.Is(err, scheduling.ErrPastBooking):
		return http.StatusBadRequest, "cannot book a session in the past"
	case errors.Is(err, scheduling.ErrOutOfHours):
		return http.StatusBadRequest, "sessions run between 08:00 and 22:00"
	case errors.Is(err, scheduling.ErrInvalidDuration):
		return http.StatusBadRequest, "sessions must last exactly one hour"
	case errors.Is(err, scheduling.ErrCancellationWindow):
		return http.StatusBadRequest, "cancellations close 24 hours before start"
	case errors.Is(err, scheduling.ErrCourtOverlap):
		return http.StatusConflict, "court is already booked for this slot"
	case errors.Is(err, scheduling.ErrSessionFull):
		return http.StatusConflict, "session is full"
	case errors.Is(err, scheduling.ErrDuplicateParticipant):
		return http.StatusConflict, "player already enrolled in this session"
	case errors.Is(err, scheduling.ErrSessionNotFound):
		return http.StatusNotFound, "session not found"
	}
	return http.StatusInternalServerError, "database error"
}

// applySessionReq copies the provided fields of req onto s, validating
// the parts the scheduling core does not cover.  Returns a client error
// message when a field is malformed.
func (h *SessionHandler) applySessionReq(ctx context.Context, req *sessionReq, s *model.TrainingSession) (string, error) {
	if req.Date != nil {
		d, err := time.Parse(model.DateLayout, strings.TrimSpace(*req.Date))
		if err != nil {
			return "date must be YYYY-MM-DD", nil
		}
		s.Date = d
	}
	if req.StartTime != nil {
		t, err := parseClock(*req.StartTime)
		if err != nil {
			return "start_time must be HH:MM", nil
		}
		s.StartTime = t
	}
	if req.CourtID != nil {
		if *req.CourtID == 0 {
			s.CourtID = nil
		} else {
			if _, err := h.Courts.GetByID(ctx, *req.CourtID); err != nil {
				if err == repository.ErrCourtNotFound {
					return "court not found", nil
				}
				return "", err
			}
			id := *req.CourtID
			s.CourtID = &id
		}
	}
	if req.FocusArea != nil {
		s.FocusArea = strings.TrimSpace(*req.FocusArea)
	}
	if req.Notes != nil {
		s.Notes = *req.Notes
	}
	if req.Intensity != nil {
		s.Intensity = *req.Intensity
	}
	if req.MaxPlayers != nil {
		s.MaxPlayers = *req.MaxPlayers
	}
	if req.IntendedLevel != nil {
		lvl := strings.ToLower(strings.TrimSpace(*req.IntendedLevel))
		if lvl != "" && !model.ValidSkillLevel(lvl) {
			return "invalid intended_level", nil
		}
		s.IntendedLevel = lvl
	}
	return "", nil
}

// CreateSession handles POST /v1/sessions.  Any authenticated user may
// book; the scheduling core derives the end time and enforces opening
// hours and court availability.  When the creator owns a player
// profile they are enrolled into the new session automatically.
func (h *SessionHandler) CreateSession(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req sessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.Date == nil || req.StartTime == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date and start_time are required"})
	}

	ctx := c.Request().Context()
	s := &model.TrainingSession{
		Status:     model.SessionScheduled,
		MaxPlayers: model.MaxPlayersCap,
		CreatedBy:  userID,
	}
	if msg, err := h.applySessionReq(ctx, &req, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	} else if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if err := h.Scheduler.Save(ctx, s, true); err != nil {
		status, msg := schedulingStatus(err)
		return c.JSON(status, echo.Map{"error": msg})
	}

	// Enroll the creator when they have a player profile.  Staff booking
	// on behalf of the academy have none and the session starts empty.
	if profile, err := h.Players.GetByUserID(ctx, userID); err == nil {
		if _, err := h.Roster.AddPlayer(ctx, s.ID, profile.ID); err != nil && !errors.Is(err, scheduling.ErrDuplicateParticipant) {
			status, msg := schedulingStatus(err)
			return c.JSON(status, echo.Map{"error": msg})
		}
	} else if err != repository.ErrPlayerNotFound {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	h.publishEvent(queue.EventSessionBooked, s, "")
	return c.JSON(http.StatusCreated, toSessionResp(s))
}

// UpdateSession handles PUT and PATCH /v1/sessions/:id.  Only the
// creator or staff may modify a session.  Every change goes back
// through the scheduling core so the end time and overlap rules hold.
func (h *SessionHandler) UpdateSession(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	var req sessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	s, err := h.Sessions.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if s == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	if !canManage(c, userID, s) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if msg, err := h.applySessionReq(ctx, &req, s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	} else if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	if err := h.Scheduler.Save(ctx, s, false); err != nil {
		status, msg := schedulingStatus(err)
		return c.JSON(status, echo.Map{"error": msg})
	}
	return c.JSON(http.StatusOK, toSessionResp(s))
}

// DeleteSession handles DELETE /v1/sessions/:id.  Only the creator or
// staff may delete; participant records go with the session via the
// foreign key cascade.
func (h *SessionHandler) DeleteSession(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	ctx := c.Request().Context()
	s, err := h.Sessions.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if s == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	if !canManage(c, userID, s) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if err := h.Sessions.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListSessions handles GET /v1/sessions.  The optional ?when= query
// selects upcoming (default), past or all sessions relative to today.
func (h *SessionHandler) ListSessions(c echo.Context) error {
	when := strings.ToLower(strings.TrimSpace(c.QueryParam("when")))
	sessions, err := h.Sessions.List(c.Request().Context(), when, h.Scheduler.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items := make([]sessionResp, 0, len(sessions))
	for i := range sessions {
		items = append(items, toSessionResp(&sessions[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetSession handles GET /v1/sessions/:id.
func (h *SessionHandler) GetSession(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	s, err := h.Sessions.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if s == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": toSessionResp(s)})
}

// ListParticipants handles GET /v1/sessions/:id/participants.  Returns
// the full roster with player names, canceled entries included.
func (h *SessionHandler) ListParticipants(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid session id"})
	}
	ctx := c.Request().Context()
	s, err := h.Sessions.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if s == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	}
	details, err := h.Participants.ListDetailBySession(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// canManage reports whether the request may modify the owned resource:
// the owner always can, staff can manage anything.
func canManage(c echo.Context, userID uint64, res model.Owned) bool {
	return res.OwnerUserID() == userID || isStaff(c)
}

// publishEvent emits a session lifecycle event to the broker.  Runs in
// the background so broker trouble never delays the HTTP response;
// failures are logged by the publisher.
func (h *SessionHandler) publishEvent(event string, s *model.TrainingSession, reason string) {
	ev := queue.SessionEvent{
		Event:        event,
		SessionID:    s.ID,
		Date:         s.Date.Format(model.DateLayout),
		StartTime:    s.StartTime.Format(model.ClockLayout),
		EndTime:      s.EndTime.Format(model.ClockLayout),
		FocusArea:    s.FocusArea,
		MaxPlayers:   s.MaxPlayers,
		CreatedBy:    s.CreatedBy,
		OccurredAt:   time.Now().UTC().Format(time.RFC3339),
		CancelReason: reason,
	}
	if s.CourtID != nil {
		ev.CourtID = *s.CourtID
		if court, err := h.Courts.GetByID(context.Background(), *s.CourtID); err == nil {
			ev.CourtName = court.Name
		}
	}
	if n, err := h.Participants.CountByStatus(context.Background(), s.ID, model.ParticipantActive); err == nil {
		ev.ActiveCount = n
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = publisher.PublishSessionEvent(ctx, ev)
	}()
}
