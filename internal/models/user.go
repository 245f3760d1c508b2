// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a member of the Upskillrr platform. XP only ever grows,
// via relative increments applied at the store layer.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Bio       string         `json:"bio"`
	AvatarURL string         `json:"avatar_url"`
	XP        int            `gorm:"not null;default:0" json:"xp"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Skills               []UserSkill   `gorm:"foreignKey:UserID" json:"skills,omitempty"`
	TeachingSessions     []Session     `gorm:"foreignKey:TeacherID" json:"teaching_sessions,omitempty"`
	LearningSessions     []Session     `gorm:"foreignKey:LearnerID" json:"learning_sessions,omitempty"`
	ReceivedTestimonials []Testimonial `gorm:"foreignKey:ToUserID" json:"received_testimonials,omitempty"`
}

// UserSummary is the compact user view embedded in sessions, testimonials
// and feeds.
type UserSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// Summary returns the compact view of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
}

// Tier is a display-only XP bracket derived from the current XP value.
type Tier string

const (
	TierBeginner     Tier = "Beginner"
	TierIntermediate Tier = "Intermediate"
	TierAdvanced     Tier = "Advanced"
	TierExpert       Tier = "Expert"
)

// Tier thresholds. A user is in the highest tier whose floor they have
// reached.
const (
	tierIntermediateFloor = 100
	tierAdvancedFloor     = 500
	tierExpertFloor       = 1000
	// Experts keep a display ceiling so the progress bar stays meaningful.
	tierExpertCeiling = 2000
)

// TierForXP returns the progression tier for the given XP value.
func TierForXP(xp int) Tier {
	switch {
	case xp >= tierExpertFloor:
		return TierExpert
	case xp >= tierAdvancedFloor:
		return TierAdvanced
	case xp >= tierIntermediateFloor:
		return TierIntermediate
	default:
		return TierBeginner
	}
}

// TierCeiling returns the XP value at which the given XP rolls into the
// next tier (or the display ceiling for Expert).
func TierCeiling(xp int) int {
	switch {
	case xp >= tierExpertFloor:
		return tierExpertCeiling
	case xp >= tierAdvancedFloor:
		return tierExpertFloor
	case xp >= tierIntermediateFloor:
		return tierAdvancedFloor
	default:
		return tierIntermediateFloor
	}
}

// TierProgress returns progress toward the next tier in [0, 1].
func TierProgress(xp int) float64 {
	ceiling := TierCeiling(xp)
	if ceiling == 0 {
		return 0
	}
	p := float64(xp) / float64(ceiling)
	if p > 1 {
		p = 1
	}
	return p
}
