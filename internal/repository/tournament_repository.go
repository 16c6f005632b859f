package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/tennis-academy/internal/model"
)

// TournamentRepo provides CRUD operations for tournaments and their
// registrations.  A player may register at most once per tournament;
// the unique index on (player_id, tournament_id) backs the application
// check and its violation is surfaced as ErrAlreadyRegistered.
type TournamentRepo struct {
	db *sql.DB
}

// NewTournamentRepo returns a new TournamentRepo bound to the given database.
func NewTournamentRepo(db *sql.DB) *TournamentRepo { return &TournamentRepo{db: db} }

const tournamentCols = `id, name, location, start_date, end_date, surface, created_by, created_at, updated_at`

func scanTournament(sc sessionScanner) (*model.Tournament, error) {
	var t model.Tournament
	err := sc.Scan(&t.ID, &t.Name, &t.Location, &t.StartDate, &t.EndDate, &t.Surface, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a tournament and populates its ID.
func (r *TournamentRepo) Create(ctx context.Context, t *model.Tournament) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO tournaments (name, location, start_date, end_date, surface, created_by) VALUES (?,?,?,?,?,?)",
		t.Name, t.Location, t.StartDate.Format(model.DateLayout), t.EndDate.Format(model.DateLayout), t.Surface, t.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return nil
}

// GetByID fetches a tournament, returning ErrTournamentNotFound when absent.
func (r *TournamentRepo) GetByID(ctx context.Context, id uint64) (*model.Tournament, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+tournamentCols+` FROM tournaments WHERE id=? LIMIT 1`, id)
	t, err := scanTournament(row)
	if err == sql.ErrNoRows {
		return nil, ErrTournamentNotFound
	}
	return t, err
}

// List returns all tournaments, soonest first.
func (r *TournamentRepo) List(ctx context.Context) ([]model.Tournament, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tournamentCols+` FROM tournaments ORDER BY start_date, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Tournament{}
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Update rewrites a tournament's attributes.
func (r *TournamentRepo) Update(ctx context.Context, t *model.Tournament) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE tournaments SET name=?, location=?, start_date=?, end_date=?, surface=?, updated_at=NOW() WHERE id=?",
		t.Name, t.Location, t.StartDate.Format(model.DateLayout), t.EndDate.Format(model.DateLayout), t.Surface, t.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTournamentNotFound
	}
	return nil
}

// Delete removes a tournament; registrations cascade with it.
func (r *TournamentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tournaments WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTournamentNotFound
	}
	return nil
}

// Register enters a player into a tournament.  A duplicate registration
// is rejected with ErrAlreadyRegistered whether caught here or by the
// unique index.
func (r *TournamentRepo) Register(ctx context.Context, reg *model.TournamentRegistration) error {
	var seed any
	if reg.Seed != nil {
		seed = *reg.Seed
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO tournament_registrations (player_id, tournament_id, seed) VALUES (?,?,?)",
		reg.PlayerID, reg.TournamentID, seed)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrAlreadyRegistered
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	reg.ID = uint64(id)
	return nil
}

// Unregister removes a player's registration.  Reports whether a row
// was actually deleted.
func (r *TournamentRepo) Unregister(ctx context.Context, tournamentID, playerID uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM tournament_registrations WHERE tournament_id=? AND player_id=?",
		tournamentID, playerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RegistrationDetail is the entry-list view of a tournament.
type RegistrationDetail struct {
	PlayerID   uint64  `json:"player_id"`
	FullName   string  `json:"full_name"`
	SkillLevel string  `json:"skill_level"`
	Seed       *uint32 `json:"seed,omitempty"`
}

// ListRegistrations returns a tournament's entries joined with player
// profiles, seeded players first.
func (r *TournamentRepo) ListRegistrations(ctx context.Context, tournamentID uint64) ([]RegistrationDetail, error) {
	const q = `SELECT tr.player_id, pp.full_name, pp.skill_level, tr.seed
		FROM tournament_registrations tr
		JOIN player_profiles pp ON pp.id = tr.player_id
		WHERE tr.tournament_id=?
		ORDER BY tr.seed IS NULL, tr.seed, pp.full_name`
	rows, err := r.db.QueryContext(ctx, q, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RegistrationDetail{}
	for rows.Next() {
		var (
			d    RegistrationDetail
			seed sql.NullInt64
		)
		if err := rows.Scan(&d.PlayerID, &d.FullName, &d.SkillLevel, &seed); err != nil {
			return nil, err
		}
		if seed.Valid {
			s := uint32(seed.Int64)
			d.Seed = &s
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
