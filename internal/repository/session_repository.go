package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/tennis-academy/internal/model"
)

// SessionRepo provides persistence for training sessions.  It is the
// production implementation of the scheduling core's SessionStore and
// SessionAccess interfaces.  The `date` column is a DATE and the
// start/end columns are TIME values; with parseTime=true the driver
// converts DATE to time.Time but TIME arrives as a string, so the
// repository parses it with model.ClockLayout.  All timestamps are
// stored in UTC.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo returns a new SessionRepo bound to the given database.
func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{db: db} }

// DB exposes the underlying handle for handlers that need transactions.
func (r *SessionRepo) DB() *sql.DB { return r.db }

const sessionCols = `id, court_id, date, start_time, end_time, focus_area, notes,
	intensity, max_players, intended_level, status, created_by, created_at, updated_at`

type sessionScanner interface {
	Scan(dest ...any) error
}

func scanSession(sc sessionScanner) (*model.TrainingSession, error) {
	var (
		s        model.TrainingSession
		courtID  sql.NullInt64
		startStr string
		endStr   string
		status   string
	)
	err := sc.Scan(&s.ID, &courtID, &s.Date, &startStr, &endStr, &s.FocusArea, &s.Notes,
		&s.Intensity, &s.MaxPlayers, &s.IntendedLevel, &status, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if courtID.Valid {
		id := uint64(courtID.Int64)
		s.CourtID = &id
	}
	if s.StartTime, err = time.Parse(model.ClockLayout, startStr); err != nil {
		return nil, err
	}
	if s.EndTime, err = time.Parse(model.ClockLayout, endStr); err != nil {
		return nil, err
	}
	s.Status = model.SessionStatus(status)
	return &s, nil
}

func nullableCourt(id *uint64) any {
	if id == nil {
		return nil
	}
	return *id
}

// Insert persists a new session and populates its generated ID and
// database-assigned timestamps.
func (r *SessionRepo) Insert(ctx context.Context, s *model.TrainingSession) error {
	const q = `INSERT INTO training_sessions
		(court_id, date, start_time, end_time, focus_area, notes, intensity, max_players, intended_level, status, created_by)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		nullableCourt(s.CourtID),
		s.Date.Format(model.DateLayout),
		s.StartTime.Format(model.ClockLayout),
		s.EndTime.Format(model.ClockLayout),
		s.FocusArea, s.Notes, s.Intensity, s.MaxPlayers, s.IntendedLevel, string(s.Status), s.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	// Query back the row to populate created_at/updated_at defaults.
	fresh, err := r.GetByID(ctx, s.ID)
	if err != nil || fresh == nil {
		return err
	}
	s.CreatedAt = fresh.CreatedAt
	s.UpdatedAt = fresh.UpdatedAt
	return nil
}

// Update rewrites an existing session row.
func (r *SessionRepo) Update(ctx context.Context, s *model.TrainingSession) error {
	const q = `UPDATE training_sessions SET
		court_id=?, date=?, start_time=?, end_time=?, focus_area=?, notes=?,
		intensity=?, max_players=?, intended_level=?, status=?, updated_at=NOW()
		WHERE id=?`
	_, err := r.db.ExecContext(ctx, q,
		nullableCourt(s.CourtID),
		s.Date.Format(model.DateLayout),
		s.StartTime.Format(model.ClockLayout),
		s.EndTime.Format(model.ClockLayout),
		s.FocusArea, s.Notes, s.Intensity, s.MaxPlayers, s.IntendedLevel, string(s.Status), s.ID)
	return err
}

// UpdateStatus rewrites only the status column.
func (r *SessionRepo) UpdateStatus(ctx context.Context, id uint64, status model.SessionStatus) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE training_sessions SET status=?, updated_at=NOW() WHERE id=?",
		string(status), id)
	return err
}

// GetByID returns the session or (nil, nil) when no row exists.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.TrainingSession, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionCols+` FROM training_sessions WHERE id=? LIMIT 1`, id)
	s, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return s, err
}

// CountOverlapping returns how many sessions other than excludeID share
// the court and date and overlap the half-open interval [start, end).
func (r *SessionRepo) CountOverlapping(ctx context.Context, courtID uint64, date, start, end time.Time, excludeID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM training_sessions
		WHERE court_id=? AND date=? AND id<>? AND start_time < ? AND end_time > ?`
	var n int
	err := r.db.QueryRowContext(ctx, q,
		courtID,
		date.Format(model.DateLayout),
		excludeID,
		end.Format(model.ClockLayout),
		start.Format(model.ClockLayout)).Scan(&n)
	return n, err
}

// List returns sessions filtered relative to today.  when is one of
// "upcoming" (default), "past" or "all".  Ordering is newest first by
// date then start time, matching how the academy browses its calendar.
func (r *SessionRepo) List(ctx context.Context, when string, today time.Time) ([]model.TrainingSession, error) {
	q := `SELECT ` + sessionCols + ` FROM training_sessions`
	args := []any{}
	switch when {
	case "past":
		q += ` WHERE date < ?`
		args = append(args, today.Format(model.DateLayout))
	case "all":
		// no filter
	default: // upcoming
		q += ` WHERE date >= ?`
		args = append(args, today.Format(model.DateLayout))
	}
	q += ` ORDER BY date DESC, start_time DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TrainingSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// Delete removes a session.  Participant rows are cascade-deleted by the
// foreign key on session_participants.
func (r *SessionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM training_sessions WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
