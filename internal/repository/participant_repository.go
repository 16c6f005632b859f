package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/tennis-academy/internal/model"
	"github.com/iliyamo/tennis-academy/internal/scheduling"
)

// ParticipantRepo provides persistence for session participant records.
// It is the production implementation of the scheduling core's
// ParticipantStore.  The table carries a unique index on
// (session_id, player_id); a violation is surfaced as
// scheduling.ErrDuplicateParticipant so the core sees one error whether
// the duplicate was caught by its own check or by the database racing
// a concurrent insert.
type ParticipantRepo struct {
	db *sql.DB
}

// NewParticipantRepo returns a new ParticipantRepo bound to the given database.
func NewParticipantRepo(db *sql.DB) *ParticipantRepo { return &ParticipantRepo{db: db} }

const participantCols = `id, session_id, player_id, status, canceled_at, created_at`

func scanParticipant(sc sessionScanner) (*model.SessionParticipant, error) {
	var (
		p          model.SessionParticipant
		status     string
		canceledAt sql.NullTime
	)
	err := sc.Scan(&p.ID, &p.SessionID, &p.PlayerID, &status, &canceledAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = model.ParticipantStatus(status)
	if canceledAt.Valid {
		t := canceledAt.Time
		p.CanceledAt = &t
	}
	return &p, nil
}

// FindBySessionAndPlayer returns the record for the pair or (nil, nil)
// when none exists.
func (r *ParticipantRepo) FindBySessionAndPlayer(ctx context.Context, sessionID, playerID uint64) (*model.SessionParticipant, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+participantCols+` FROM session_participants WHERE session_id=? AND player_id=? LIMIT 1`,
		sessionID, playerID)
	p, err := scanParticipant(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

// Insert persists a new participant record and populates its ID.
func (r *ParticipantRepo) Insert(ctx context.Context, p *model.SessionParticipant) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO session_participants (session_id, player_id, status) VALUES (?,?,?)",
		p.SessionID, p.PlayerID, string(p.Status))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return scheduling.ErrDuplicateParticipant
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Update rewrites the status and cancellation timestamp of a record.
func (r *ParticipantRepo) Update(ctx context.Context, p *model.SessionParticipant) error {
	var canceledAt any
	if p.CanceledAt != nil {
		canceledAt = p.CanceledAt.UTC()
	}
	_, err := r.db.ExecContext(ctx,
		"UPDATE session_participants SET status=?, canceled_at=? WHERE id=?",
		string(p.Status), canceledAt, p.ID)
	return err
}

// CountByStatus counts a session's participants in the given status.
func (r *ParticipantRepo) CountByStatus(ctx context.Context, sessionID uint64, status model.ParticipantStatus) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM session_participants WHERE session_id=? AND status=?",
		sessionID, string(status)).Scan(&n)
	return n, err
}

// ListBySession returns every participant record of a session.
func (r *ParticipantRepo) ListBySession(ctx context.Context, sessionID uint64) ([]model.SessionParticipant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+participantCols+` FROM session_participants WHERE session_id=? ORDER BY created_at, id`,
		sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.SessionParticipant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// ParticipantDetail is the roster view returned to clients: the join
// record enriched with the player's name and level.
type ParticipantDetail struct {
	PlayerID   uint64  `json:"player_id"`
	FullName   string  `json:"full_name"`
	SkillLevel string  `json:"skill_level"`
	Status     string  `json:"status"`
	CanceledAt *string `json:"canceled_at,omitempty"`
}

// ListDetailBySession returns the roster joined with player profiles,
// ordered by enrollment time.
func (r *ParticipantRepo) ListDetailBySession(ctx context.Context, sessionID uint64) ([]ParticipantDetail, error) {
	const q = `SELECT sp.player_id, pp.full_name, pp.skill_level, sp.status, sp.canceled_at
		FROM session_participants sp
		JOIN player_profiles pp ON pp.id = sp.player_id
		WHERE sp.session_id=?
		ORDER BY sp.created_at, sp.id`
	rows, err := r.db.QueryContext(ctx, q, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []ParticipantDetail{}
	for rows.Next() {
		var (
			d          ParticipantDetail
			canceledAt sql.NullTime
		)
		if err := rows.Scan(&d.PlayerID, &d.FullName, &d.SkillLevel, &d.Status, &canceledAt); err != nil {
			return nil, err
		}
		if canceledAt.Valid {
			iso := canceledAt.Time.UTC().Format(time.RFC3339)
			d.CanceledAt = &iso
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
