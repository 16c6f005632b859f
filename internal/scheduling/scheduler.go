package scheduling

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/iliyamo/tennis-academy/internal/model"
)

// SessionStore is the slice of persistence the Scheduler needs.  The
// production implementation is repository.SessionRepo; tests substitute
// an in-memory fake.
type SessionStore interface {
	// Insert persists a new session and populates its generated ID.
	Insert(ctx context.Context, s *model.TrainingSession) error
	// Update rewrites an existing session row.
	Update(ctx context.Context, s *model.TrainingSession) error
	// CountOverlapping returns how many sessions other than excludeID sit
	// on the same court and date with an interval overlapping
	// [start, end).  Only the time-of-day components of start and end are
	// significant.
	CountOverlapping(ctx context.Context, courtID uint64, date, start, end time.Time, excludeID uint64) (int, error)
}

// Scheduler validates and persists the temporal and capacity attributes of
// training sessions.  It owns the derivation of end times, enforces the
// operating window and rejects double-bookings.  All time-dependent rules
// read the injected clock, never the ambient wall clock, so behaviour is
// deterministic under test.
type Scheduler struct {
	store SessionStore
	clock clockwork.Clock
	loc   *time.Location
}

// NewScheduler returns a Scheduler bound to the given store, clock and
// local time zone.
func NewScheduler(store SessionStore, clock clockwork.Clock, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{store: store, clock: clock, loc: loc}
}

// Save validates sess and persists it.  isNew selects insert versus
// update; on update the session's own row is excluded from the overlap
// check.  The checks run in a fixed order and all of them run before
// anything is written, so a rejected save leaves the store untouched:
//
//  1. end_time is recomputed as start_time + 1h, capped at 22:00.  The
//     value is never trusted from input.
//  2. max_players is clamped into [1, 4].
//  3. With both times set: new sessions may not start in the past; the
//     slot must sit inside the 08:00-22:00 window; the duration must be
//     exactly one hour (a 21:30 start caps to 22:00 and is therefore
//     rejected here); and the slot must not overlap another session on
//     the same court and date.
//  4. A scheduled session whose end has already passed is marked
//     completed, overriding any caller-supplied status.
func (s *Scheduler) Save(ctx context.Context, sess *model.TrainingSession, isNew bool) error {
	if !sess.StartTime.IsZero() {
		sess.EndTime = deriveEnd(sess.StartTime)
	}

	if sess.MaxPlayers > model.MaxPlayersCap {
		sess.MaxPlayers = model.MaxPlayersCap
	}
	if sess.MaxPlayers < 1 {
		sess.MaxPlayers = 1
	}

	if sess.Status == "" {
		sess.Status = model.SessionScheduled
	}

	now := s.clock.Now().In(s.loc)

	if !sess.StartTime.IsZero() && !sess.EndTime.IsZero() {
		if isNew && sess.StartAt(s.loc).Before(now) {
			return ErrPastBooking
		}
		startMin := minuteOfDay(sess.StartTime)
		endMin := minuteOfDay(sess.EndTime)
		if startMin < model.OpeningHour*60 || sess.StartTime.Hour() > model.LastStartHour {
			return ErrOutOfHours
		}
		if endMin < (model.OpeningHour+1)*60 || endMin > model.ClosingHour*60 {
			return ErrOutOfHours
		}
		if endMin-startMin != 60 {
			return ErrInvalidDuration
		}
		if sess.CourtID != nil {
			n, err := s.store.CountOverlapping(ctx, *sess.CourtID, sess.Date, sess.StartTime, sess.EndTime, sess.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return ErrCourtOverlap
			}
		}
	}

	if sess.Status == model.SessionScheduled && !sess.EndAt(s.loc).After(now) {
		sess.Status = model.SessionCompleted
	}

	if isNew {
		return s.store.Insert(ctx, sess)
	}
	return s.store.Update(ctx, sess)
}

// Now exposes the scheduler's clock reading in its configured zone.
// Handlers use it so that responses and core checks agree on "now".
func (s *Scheduler) Now() time.Time { return s.clock.Now().In(s.loc) }

// Location returns the time zone the scheduler treats as local.
func (s *Scheduler) Location() *time.Location { return s.loc }

// deriveEnd computes start + 1h capped at the closing hour.  The result
// carries only a time of day, on the same reference date the time-of-day
// values use throughout the model.
func deriveEnd(start time.Time) time.Time {
	endMin := minuteOfDay(start) + 60
	if endMin > model.ClosingHour*60 {
		endMin = model.ClosingHour * 60
	}
	return time.Date(start.Year(), start.Month(), start.Day(),
		endMin/60, endMin%60, 0, 0, start.Location())
}

func minuteOfDay(t time.Time) int { return t.Hour()*60 + t.Minute() }
