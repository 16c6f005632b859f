package model

import "time"

// SessionStatus enumerates the lifecycle states of a training session.
// A session starts out scheduled and moves one-way to either completed
// (time-triggered) or canceled (third participant cancellation or an
// explicit staff action).  There is no transition out of completed or
// canceled.
type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionCanceled  SessionStatus = "canceled"
	SessionCompleted SessionStatus = "completed"
)

// Operating window and booking rules for the academy.  Sessions are
// one-hour blocks; the first may start at 08:00 and the last must end by
// 22:00.  End times are always derived from the start, never trusted from
// input.
const (
	OpeningHour     = 8  // earliest start_time hour
	LastStartHour   = 21 // latest start_time hour
	ClosingHour     = 22 // latest end_time hour
	SessionDuration = time.Hour
	MaxPlayersCap   = 4 // hard upper bound on max_players
)

// ClockLayout is the canonical format for the time-of-day columns
// (`start_time`, `end_time`) as MySQL returns TIME values.
const ClockLayout = "15:04:05"

// DateLayout is the canonical format for the `date` column.
const DateLayout = "2006-01-02"

// TrainingSession represents one bookable one-hour block on a court.
// This struct corresponds to a row in the `training_sessions` table.
// Date carries only the calendar day; StartTime and EndTime carry only
// the time of day (their date components are meaningless).  Use StartAt
// and EndAt to obtain full timestamps in a given location.
//
// Fields:
//  ID            – primary key identifier.
//  CourtID       – court the session is booked on (nil once the court is
//                  deleted; the session survives).
//  Date          – calendar date of the session.
//  StartTime     – time of day the session starts.
//  EndTime       – derived time of day the session ends.
//  FocusArea     – what the session trains (e.g. "backhand slice").
//  Notes         – free-form notes.
//  Intensity     – training intensity from 1 (low) to 10 (high).
//  MaxPlayers    – roster capacity, 1 to 4.
//  IntendedLevel – skill level the session is aimed at.
//  Status        – scheduled, canceled or completed.
//  CreatedBy     – user ID of whoever booked the session.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type TrainingSession struct {
	ID            uint64        // training_sessions.id
	CourtID       *uint64       // training_sessions.court_id (nullable)
	Date          time.Time     // training_sessions.date
	StartTime     time.Time     // training_sessions.start_time (time of day only)
	EndTime       time.Time     // training_sessions.end_time (time of day only)
	FocusArea     string        // training_sessions.focus_area
	Notes         string        // training_sessions.notes
	Intensity     uint8         // training_sessions.intensity
	MaxPlayers    uint8         // training_sessions.max_players
	IntendedLevel string        // training_sessions.intended_level
	Status        SessionStatus // training_sessions.status
	CreatedBy     uint64        // training_sessions.created_by
	CreatedAt     time.Time     // training_sessions.created_at
	UpdatedAt     time.Time     // training_sessions.updated_at
}

// StartAt combines the session date and start time into a full timestamp
// in the given location.
func (s *TrainingSession) StartAt(loc *time.Location) time.Time {
	return combine(s.Date, s.StartTime, loc)
}

// EndAt combines the session date and end time into a full timestamp in
// the given location.
func (s *TrainingSession) EndAt(loc *time.Location) time.Time {
	return combine(s.Date, s.EndTime, loc)
}

// OwnerUserID identifies the user who booked the session.  It satisfies
// the Owned interface used by ownership checks at the handler boundary.
func (s *TrainingSession) OwnerUserID() uint64 { return s.CreatedBy }

func combine(date, clock time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, loc)
}
