package model

import "time"

// Skill levels recognised for player profiles and session intended levels.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
	SkillCompetition  = "competition"
)

// ValidSkillLevel reports whether s is one of the recognised skill levels.
func ValidSkillLevel(s string) bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillCompetition:
		return true
	}
	return false
}

// PlayerProfile holds the academy-facing profile of a registered user.
// Every user with the PLAYER role owns exactly one profile; the profile ID
// (not the user ID) is what participant and registration records reference.
// This struct corresponds to a row in the `player_profiles` table.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – owning user account.
//  FullName    – display name of the player.
//  DateOfBirth – used to derive the player's age.
//  SkillLevel  – beginner, intermediate, advanced or competition.
//  PhotoURL    – optional link to a profile image.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type PlayerProfile struct {
	ID          uint64    // player_profiles.id
	UserID      uint64    // player_profiles.user_id
	FullName    string    // player_profiles.full_name
	DateOfBirth time.Time // player_profiles.date_of_birth
	SkillLevel  string    // player_profiles.skill_level
	PhotoURL    *string   // player_profiles.photo_url (nullable)
	CreatedAt   time.Time // player_profiles.created_at
	UpdatedAt   time.Time // player_profiles.updated_at
}

// Age returns the player's age in whole years at the given moment.
func (p *PlayerProfile) Age(now time.Time) int {
	years := now.Year() - p.DateOfBirth.Year()
	anniversary := p.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// OwnerUserID identifies the account the profile belongs to.
func (p *PlayerProfile) OwnerUserID() uint64 { return p.UserID }
