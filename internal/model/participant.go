package model

import "time"

// ParticipantStatus enumerates the states of a session participant.
// A participant is active from the moment a player is added to a session
// and moves to canceled exactly once; there is no way back.
type ParticipantStatus string

const (
	ParticipantActive   ParticipantStatus = "active"
	ParticipantCanceled ParticipantStatus = "canceled"
)

// SessionParticipant is the join record between a training session and a
// player.  At most one record exists per (session, player) pair; the
// database enforces this with a unique index as a backstop against
// concurrent double-inserts.  Participant rows are owned by their session
// and are cascade-deleted with it.  This struct corresponds to a row in
// the `session_participants` table.
//
// Fields:
//  ID         – primary key identifier.
//  SessionID  – session the player is enrolled in.
//  PlayerID   – player profile enrolled.
//  Status     – active or canceled.
//  CanceledAt – when the participant canceled (nil while active).
//  CreatedAt  – when the player was added.
type SessionParticipant struct {
	ID         uint64            // session_participants.id
	SessionID  uint64            // session_participants.session_id
	PlayerID   uint64            // session_participants.player_id
	Status     ParticipantStatus // session_participants.status
	CanceledAt *time.Time        // session_participants.canceled_at (nullable)
	CreatedAt  time.Time         // session_participants.created_at
}
