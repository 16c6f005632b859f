package model

import "time"

// Surface types recognised for courts and tournaments.  These mirror the
// values stored in the `surface_type` column.
const (
	SurfaceClay   = "clay"
	SurfaceGrass  = "grass"
	SurfaceHard   = "hard"
	SurfaceCarpet = "carpet"
)

// ValidSurface reports whether s is one of the recognised surface types.
func ValidSurface(s string) bool {
	switch s {
	case SurfaceClay, SurfaceGrass, SurfaceHard, SurfaceCarpet:
		return true
	}
	return false
}

// Court describes a bookable tennis court.  Courts are immutable reference
// data: beyond create and delete there is no lifecycle.  Training sessions
// reference a court through a nullable foreign key so that a session can
// outlive its court being removed.  This struct corresponds to a row in the
// `courts` table.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the court (unique).
//  Location    – free-form location description.
//  SurfaceType – playing surface (clay, grass, hard, carpet).
//  Indoor      – whether the court is covered.
//  CreatedAt   – timestamp when the court was created.
//  UpdatedAt   – timestamp of last update.
type Court struct {
	ID          uint64    // courts.id
	Name        string    // courts.name
	Location    string    // courts.location
	SurfaceType string    // courts.surface_type
	Indoor      bool      // courts.indoor
	CreatedAt   time.Time // courts.created_at
	UpdatedAt   time.Time // courts.updated_at
}
