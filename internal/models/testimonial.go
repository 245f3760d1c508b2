package models

import "time"

// Rating bounds for testimonials.
const (
	RatingMin = 1
	RatingMax = 5

	// RatingBonusThreshold is the rating that earns the recipient bonus XP.
	RatingBonusThreshold = 5
)

// Testimonial is a rated review left by one session participant about the
// other, only after the session completed. It is immutable once created.
// The (session_id, from_user_id) unique index is the authoritative guard
// against duplicate submissions racing past the application-level check.
type Testimonial struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionID  uint      `gorm:"not null;uniqueIndex:idx_session_from_user" json:"session_id"`
	FromUserID uint      `gorm:"not null;uniqueIndex:idx_session_from_user" json:"from_user_id"`
	ToUserID   uint      `gorm:"not null;index" json:"to_user_id"`
	Message    string    `gorm:"not null" json:"message"`
	Rating     int       `gorm:"not null" json:"rating"`
	CreatedAt  time.Time `json:"created_at"`

	FromUser User    `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	ToUser   User    `gorm:"foreignKey:ToUserID" json:"to_user,omitempty"`
	Session  Session `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

// TableName specifies the table name for GORM
func (Testimonial) TableName() string {
	return "testimonials"
}

// ValidRating reports whether r falls inside the allowed [1,5] range.
func ValidRating(r int) bool {
	return r >= RatingMin && r <= RatingMax
}
