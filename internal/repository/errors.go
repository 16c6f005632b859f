// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by
// someone else, while ErrConflict signals that an operation
// cannot proceed due to existing dependent records.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// Not-found sentinels for the academy's reference entities.  Handlers map
// these to HTTP 404.  Session lookups return (nil, nil) instead, because
// the scheduling core owns that distinction.
var (
	ErrCourtNotFound      = errors.New("court not found")
	ErrCoachNotFound      = errors.New("coach not found")
	ErrPlayerNotFound     = errors.New("player profile not found")
	ErrTournamentNotFound = errors.New("tournament not found")
)

// ErrAlreadyRegistered is returned when a player registers twice for the
// same tournament; the unique index on (player_id, tournament_id) is the
// backstop.
var ErrAlreadyRegistered = errors.New("player already registered for this tournament")
