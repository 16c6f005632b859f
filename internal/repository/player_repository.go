package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/tennis-academy/internal/model"
)

// PlayerRepo provides persistence for player profiles.  Every PLAYER
// account owns exactly one profile, created right after registration;
// participant and tournament records reference the profile ID, not the
// user ID.
type PlayerRepo struct {
	db *sql.DB
}

// NewPlayerRepo returns a new PlayerRepo bound to the given database.
func NewPlayerRepo(db *sql.DB) *PlayerRepo { return &PlayerRepo{db: db} }

const playerCols = `id, user_id, full_name, date_of_birth, skill_level, photo_url, created_at, updated_at`

func scanPlayer(sc sessionScanner) (*model.PlayerProfile, error) {
	var (
		p        model.PlayerProfile
		photoURL sql.NullString
	)
	err := sc.Scan(&p.ID, &p.UserID, &p.FullName, &p.DateOfBirth, &p.SkillLevel, &photoURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if photoURL.Valid {
		u := photoURL.String
		p.PhotoURL = &u
	}
	return &p, nil
}

// Create inserts a profile and populates its ID.
func (r *PlayerRepo) Create(ctx context.Context, p *model.PlayerProfile) error {
	var photoURL any
	if p.PhotoURL != nil {
		photoURL = *p.PhotoURL
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO player_profiles (user_id, full_name, date_of_birth, skill_level, photo_url) VALUES (?,?,?,?,?)",
		p.UserID, p.FullName, p.DateOfBirth.Format(model.DateLayout), p.SkillLevel, photoURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// GetByID fetches a profile by its primary key.
func (r *PlayerRepo) GetByID(ctx context.Context, id uint64) (*model.PlayerProfile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+playerCols+` FROM player_profiles WHERE id=? LIMIT 1`, id)
	p, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return nil, ErrPlayerNotFound
	}
	return p, err
}

// GetByUserID fetches the profile owned by a user account.
func (r *PlayerRepo) GetByUserID(ctx context.Context, userID uint64) (*model.PlayerProfile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+playerCols+` FROM player_profiles WHERE user_id=? LIMIT 1`, userID)
	p, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return nil, ErrPlayerNotFound
	}
	return p, err
}

// Update rewrites the mutable attributes of a profile.
func (r *PlayerRepo) Update(ctx context.Context, p *model.PlayerProfile) error {
	var photoURL any
	if p.PhotoURL != nil {
		photoURL = *p.PhotoURL
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE player_profiles SET full_name=?, date_of_birth=?, skill_level=?, photo_url=?, updated_at=NOW() WHERE id=?",
		p.FullName, p.DateOfBirth.Format(model.DateLayout), p.SkillLevel, photoURL, p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// List returns all profiles ordered by name.
func (r *PlayerRepo) List(ctx context.Context) ([]model.PlayerProfile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+playerCols+` FROM player_profiles ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.PlayerProfile{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
