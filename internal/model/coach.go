package model

import "time"

// Coach describes a member of the academy's coaching staff.  Coaches are
// plain reference data managed by staff accounts; they are not linked to
// login users.  This struct corresponds to a row in the `coaches` table.
//
// Fields:
//  ID         – primary key identifier.
//  FullName   – coach's display name.
//  Specialty  – what the coach focuses on (e.g. "serve mechanics").
//  YearsExp   – years of coaching experience.
//  IsActive   – whether the coach currently teaches.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Coach struct {
	ID        uint64    // coaches.id
	FullName  string    // coaches.full_name
	Specialty string    // coaches.specialty
	YearsExp  uint8     // coaches.years_experience
	IsActive  bool      // coaches.is_active
	CreatedAt time.Time // coaches.created_at
	UpdatedAt time.Time // coaches.updated_at
}
