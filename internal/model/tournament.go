package model

import "time"

// Tournament represents a competition hosted or tracked by the academy.
// This struct corresponds to a row in the `tournaments` table.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – tournament name.
//  Location  – where it takes place.
//  StartDate – first day of play.
//  EndDate   – last day of play.
//  Surface   – playing surface (clay, grass, hard, carpet).
//  CreatedBy – user ID of the staff member who created the record.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Tournament struct {
	ID        uint64    // tournaments.id
	Name      string    // tournaments.name
	Location  string    // tournaments.location
	StartDate time.Time // tournaments.start_date
	EndDate   time.Time // tournaments.end_date
	Surface   string    // tournaments.surface
	CreatedBy uint64    // tournaments.created_by
	CreatedAt time.Time // tournaments.created_at
	UpdatedAt time.Time // tournaments.updated_at
}

// OwnerUserID identifies the user who created the tournament.
func (t *Tournament) OwnerUserID() uint64 { return t.CreatedBy }

// TournamentRegistration records a player's entry into a tournament.
// At most one registration exists per (player, tournament) pair, enforced
// by a unique index.  This struct corresponds to a row in the
// `tournament_registrations` table.
//
// Fields:
//  ID           – primary key identifier.
//  PlayerID     – registered player profile.
//  TournamentID – tournament entered.
//  Seed         – optional seeding position.
//  CreatedAt    – registration timestamp.
type TournamentRegistration struct {
	ID           uint64    // tournament_registrations.id
	PlayerID     uint64    // tournament_registrations.player_id
	TournamentID uint64    // tournament_registrations.tournament_id
	Seed         *uint32   // tournament_registrations.seed (nullable)
	CreatedAt    time.Time // tournament_registrations.created_at
}
