package models

import "time"

// WeeklyGoal is a per-user target number of completed learning sessions for
// one ISO week. The week is identified by its Monday start date; "current
// week" is always computed against wall-clock now at request time, never
// stored as an advancing cursor.
type WeeklyGoal struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_user_week" json:"user_id"`
	WeekStartDate time.Time `gorm:"not null;uniqueIndex:idx_user_week" json:"week_start_date"`
	Sessions      int       `gorm:"not null;default:1" json:"sessions"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for GORM
func (WeeklyGoal) TableName() string {
	return "weekly_goals"
}

// StartOfWeek normalizes t to midnight UTC on the Monday of its ISO week.
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started the previous Monday
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfWeek returns the last instant of the ISO week containing t.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 7).Add(-time.Nanosecond)
}
