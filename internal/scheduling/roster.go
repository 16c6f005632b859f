package scheduling

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/iliyamo/tennis-academy/internal/model"
)

// AutoCancelThreshold is the number of canceled participants at which a
// session is canceled automatically.
const AutoCancelThreshold = 3

// CancelNotice is how far ahead of the session start a player (as opposed
// to staff) may still cancel.  Canceling at exactly the cutoff succeeds.
const CancelNotice = 24 * time.Hour

// SessionAccess is the slice of session persistence the Roster needs.
type SessionAccess interface {
	// GetByID returns the session or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id uint64) (*model.TrainingSession, error)
	// UpdateStatus rewrites only the status column of a session.
	UpdateStatus(ctx context.Context, id uint64, status model.SessionStatus) error
}

// ParticipantStore is the persistence surface for participant records.
// Insert must surface a storage-level unique violation on
// (session_id, player_id) as ErrDuplicateParticipant; the unique index is
// the backstop against two concurrent adds racing past the application
// check.
type ParticipantStore interface {
	// FindBySessionAndPlayer returns the participant record for the pair
	// or (nil, nil) when none exists.
	FindBySessionAndPlayer(ctx context.Context, sessionID, playerID uint64) (*model.SessionParticipant, error)
	Insert(ctx context.Context, p *model.SessionParticipant) error
	Update(ctx context.Context, p *model.SessionParticipant) error
	CountByStatus(ctx context.Context, sessionID uint64, status model.ParticipantStatus) (int, error)
	// ListBySession returns every participant record of a session.
	ListBySession(ctx context.Context, sessionID uint64) ([]model.SessionParticipant, error)
}

// Roster enrolls players into sessions and withdraws them under the
// capacity and timing rules, feeding accumulated cancellations back into
// the session status.
type Roster struct {
	sessions     SessionAccess
	participants ParticipantStore
	clock        clockwork.Clock
	loc          *time.Location
}

// NewRoster returns a Roster bound to the given stores, clock and local
// time zone.
func NewRoster(sessions SessionAccess, participants ParticipantStore, clock clockwork.Clock, loc *time.Location) *Roster {
	if loc == nil {
		loc = time.UTC
	}
	return &Roster{sessions: sessions, participants: participants, clock: clock, loc: loc}
}

// AddPlayer enrolls a player into a session.  It fails with
// ErrSessionNotFound when the session does not exist, with
// ErrDuplicateParticipant when the pair already has a record (active or
// canceled) and with ErrSessionFull when the active roster has reached
// max_players.
func (r *Roster) AddPlayer(ctx context.Context, sessionID, playerID uint64) (*model.SessionParticipant, error) {
	sess, err := r.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}

	existing, err := r.participants.FindBySessionAndPlayer(ctx, sessionID, playerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateParticipant
	}

	active, err := r.participants.CountByStatus(ctx, sessionID, model.ParticipantActive)
	if err != nil {
		return nil, err
	}
	if active >= int(sess.MaxPlayers) {
		return nil, ErrSessionFull
	}

	p := &model.SessionParticipant{
		SessionID: sessionID,
		PlayerID:  playerID,
		Status:    model.ParticipantActive,
	}
	if err := r.participants.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveResult reports what a RemovePlayer call actually did.
type RemoveResult struct {
	Removed         bool // a participant record was transitioned to canceled
	SessionCanceled bool // the cancellation tripped the auto-cancel threshold
}

// RemovePlayer cancels a player's participation in a session.  A missing
// participant record, or one that is already canceled, is a silent no-op
// so that callers can treat cancellation as idempotent.  Unless byAdmin
// is set the cancellation must happen at least CancelNotice before the
// session starts, otherwise ErrCancellationWindow is returned and the
// participant is left untouched.  A successful cancellation stamps
// canceled_at and runs the auto-cancel check against the session.
func (r *Roster) RemovePlayer(ctx context.Context, sessionID, playerID uint64, byAdmin bool) (RemoveResult, error) {
	sess, err := r.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return RemoveResult{}, err
	}
	if sess == nil {
		return RemoveResult{}, ErrSessionNotFound
	}

	p, err := r.participants.FindBySessionAndPlayer(ctx, sessionID, playerID)
	if err != nil {
		return RemoveResult{}, err
	}
	if p == nil || p.Status == model.ParticipantCanceled {
		return RemoveResult{}, nil
	}

	now := r.clock.Now().In(r.loc)
	if !byAdmin {
		cutoff := sess.StartAt(r.loc).Add(-CancelNotice)
		if now.After(cutoff) {
			return RemoveResult{}, ErrCancellationWindow
		}
	}

	p.Status = model.ParticipantCanceled
	p.CanceledAt = &now
	if err := r.participants.Update(ctx, p); err != nil {
		return RemoveResult{}, err
	}

	autoCanceled, err := r.CheckAutoCancel(ctx, sessionID)
	if err != nil {
		return RemoveResult{Removed: true}, err
	}
	return RemoveResult{Removed: true, SessionCanceled: autoCanceled}, nil
}

// CheckAutoCancel counts canceled participants and flips the session to
// canceled once the threshold is reached.  It reports whether the status
// changed; invoking it against an already-canceled session is a no-op.
// Remaining active participants are deliberately left untouched; the
// bulk cancel-all is a separate staff operation (CancelSession).
func (r *Roster) CheckAutoCancel(ctx context.Context, sessionID uint64) (bool, error) {
	sess, err := r.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if sess == nil {
		return false, ErrSessionNotFound
	}
	if sess.Status == model.SessionCanceled {
		return false, nil
	}

	canceled, err := r.participants.CountByStatus(ctx, sessionID, model.ParticipantCanceled)
	if err != nil {
		return false, err
	}
	if canceled < AutoCancelThreshold {
		return false, nil
	}
	if err := r.sessions.UpdateStatus(ctx, sessionID, model.SessionCanceled); err != nil {
		return false, err
	}
	return true, nil
}

// Summary is the read-only participant view of a session.
type Summary struct {
	ActiveCount   int  `json:"active_count"`
	CanceledCount int  `json:"canceled_count"`
	IsFull        bool `json:"is_full"`
	IsCanceled    bool `json:"is_canceled"`
}

// Summary returns participant counts and derived flags for a session.
// It has no side effects.
func (r *Roster) Summary(ctx context.Context, sessionID uint64) (Summary, error) {
	sess, err := r.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	if sess == nil {
		return Summary{}, ErrSessionNotFound
	}
	active, err := r.participants.CountByStatus(ctx, sessionID, model.ParticipantActive)
	if err != nil {
		return Summary{}, err
	}
	canceled, err := r.participants.CountByStatus(ctx, sessionID, model.ParticipantCanceled)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		ActiveCount:   active,
		CanceledCount: canceled,
		IsFull:        active >= int(sess.MaxPlayers),
		IsCanceled:    sess.Status == model.SessionCanceled,
	}, nil
}

// CancelSession is the explicit staff bulk operation: it cancels the
// session and every remaining active participant in one pass.  It returns
// how many participants were canceled.  Unlike auto-cancel this does
// cascade; it is never triggered by the core itself.
func (r *Roster) CancelSession(ctx context.Context, sessionID uint64) (int, error) {
	sess, err := r.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if sess == nil {
		return 0, ErrSessionNotFound
	}

	if sess.Status != model.SessionCanceled {
		if err := r.sessions.UpdateStatus(ctx, sessionID, model.SessionCanceled); err != nil {
			return 0, err
		}
	}

	parts, err := r.participants.ListBySession(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	now := r.clock.Now().In(r.loc)
	n := 0
	for i := range parts {
		p := &parts[i]
		if p.Status != model.ParticipantActive {
			continue
		}
		p.Status = model.ParticipantCanceled
		p.CanceledAt = &now
		if err := r.participants.Update(ctx, p); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
