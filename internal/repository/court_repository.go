package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/tennis-academy/internal/model"
)

// CourtRepo provides CRUD operations for courts.  Courts are reference
// data: they are created and deleted by staff and otherwise immutable in
// practice.  Deleting a court leaves its sessions in place with a NULL
// court_id (the foreign key is ON DELETE SET NULL).
type CourtRepo struct {
	db *sql.DB
}

// NewCourtRepo returns a new CourtRepo bound to the given database.
func NewCourtRepo(db *sql.DB) *CourtRepo { return &CourtRepo{db: db} }

const courtCols = `id, name, location, surface_type, indoor, created_at, updated_at`

func scanCourt(sc sessionScanner) (*model.Court, error) {
	var c model.Court
	err := sc.Scan(&c.ID, &c.Name, &c.Location, &c.SurfaceType, &c.Indoor, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a court and populates its ID.
func (r *CourtRepo) Create(ctx context.Context, c *model.Court) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO courts (name, location, surface_type, indoor) VALUES (?,?,?,?)",
		c.Name, c.Location, c.SurfaceType, c.Indoor)
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

// GetByID fetches a court, returning ErrCourtNotFound when absent.
func (r *CourtRepo) GetByID(ctx context.Context, id uint64) (*model.Court, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+courtCols+` FROM courts WHERE id=? LIMIT 1`, id)
	c, err := scanCourt(row)
	if err == sql.ErrNoRows {
		return nil, ErrCourtNotFound
	}
	return c, err
}

// List returns all courts ordered by name.
func (r *CourtRepo) List(ctx context.Context) ([]model.Court, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+courtCols+` FROM courts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Court{}
	for rows.Next() {
		c, err := scanCourt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Update rewrites a court's attributes.
func (r *CourtRepo) Update(ctx context.Context, c *model.Court) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE courts SET name=?, location=?, surface_type=?, indoor=?, updated_at=NOW() WHERE id=?",
		c.Name, c.Location, c.SurfaceType, c.Indoor, c.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCourtNotFound
	}
	return nil
}

// Delete removes a court.  Sessions booked on it survive courtless.
func (r *CourtRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM courts WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCourtNotFound
	}
	return nil
}
