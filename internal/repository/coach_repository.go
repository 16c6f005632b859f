package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/tennis-academy/internal/model"
)

// CoachRepo provides CRUD operations for coaching staff records.
type CoachRepo struct {
	db *sql.DB
}

// NewCoachRepo returns a new CoachRepo bound to the given database.
func NewCoachRepo(db *sql.DB) *CoachRepo { return &CoachRepo{db: db} }

const coachCols = `id, full_name, specialty, years_experience, is_active, created_at, updated_at`

func scanCoach(sc sessionScanner) (*model.Coach, error) {
	var c model.Coach
	err := sc.Scan(&c.ID, &c.FullName, &c.Specialty, &c.YearsExp, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a coach and populates its ID.
func (r *CoachRepo) Create(ctx context.Context, c *model.Coach) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO coaches (full_name, specialty, years_experience, is_active) VALUES (?,?,?,?)",
		c.FullName, c.Specialty, c.YearsExp, c.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID fetches a coach, returning ErrCoachNotFound when absent.
func (r *CoachRepo) GetByID(ctx context.Context, id uint64) (*model.Coach, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+coachCols+` FROM coaches WHERE id=? LIMIT 1`, id)
	c, err := scanCoach(row)
	if err == sql.ErrNoRows {
		return nil, ErrCoachNotFound
	}
	return c, err
}

// List returns coaches ordered by name.  When activeOnly is set, retired
// coaches are filtered out.
func (r *CoachRepo) List(ctx context.Context, activeOnly bool) ([]model.Coach, error) {
	q := `SELECT ` + coachCols + ` FROM coaches`
	if activeOnly {
		q += ` WHERE is_active=1`
	}
	q += ` ORDER BY full_name`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Coach{}
	for rows.Next() {
		c, err := scanCoach(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Update rewrites a coach's attributes.
func (r *CoachRepo) Update(ctx context.Context, c *model.Coach) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE coaches SET full_name=?, specialty=?, years_experience=?, is_active=?, updated_at=NOW() WHERE id=?",
		c.FullName, c.Specialty, c.YearsExp, c.IsActive, c.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCoachNotFound
	}
	return nil
}

// Delete removes a coach record.
func (r *CoachRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM coaches WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCoachNotFound
	}
	return nil
}
