// Package scheduling contains the booking core of the academy: validating
// and persisting training sessions (the Scheduler) and managing each
// session's participant roster (the Roster).  Handlers call into this
// package and translate its sentinel errors into HTTP responses; nothing
// in here knows about Echo or JSON.
package scheduling

import "errors"

// Sentinel errors returned by the Scheduler and Roster.  All of them are
// rejections of an attempted state transition raised before anything is
// written; a failed call never leaves a partial write behind.
var (
	// ErrPastBooking is returned when a new session is booked with a
	// start time that has already elapsed.
	ErrPastBooking = errors.New("session start time is in the past")

	// ErrOutOfHours is returned when the start or end time falls outside
	// the 08:00-22:00 operating window.
	ErrOutOfHours = errors.New("session time is outside operating hours")

	// ErrInvalidDuration is returned when the derived duration is not
	// exactly one hour.  This also rejects starts after 21:00, where the
	// 22:00 cap would silently shorten the slot.
	ErrInvalidDuration = errors.New("session duration must be exactly one hour")

	// ErrCourtOverlap is returned when another session on the same court
	// and date overlaps the requested interval.
	ErrCourtOverlap = errors.New("court is already booked for an overlapping time")

	// ErrSessionFull is returned when a player is added to a session
	// whose active roster is already at max_players.
	ErrSessionFull = errors.New("session roster is at capacity")

	// ErrDuplicateParticipant is returned when the player already has a
	// participant record for the session, whether detected by the
	// application check or by the storage-level unique index.
	ErrDuplicateParticipant = errors.New("player is already on this session")

	// ErrCancellationWindow is returned when a non-admin cancellation is
	// attempted less than 24 hours before the session starts.
	ErrCancellationWindow = errors.New("cancellation window has closed")

	// ErrSessionNotFound is returned when the referenced session does
	// not exist.
	ErrSessionNotFound = errors.New("session not found")
)
