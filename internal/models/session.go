package models

import "time"

// SessionStatus is the lifecycle state of a mentoring session.
type SessionStatus string

const (
	// SessionPending is the initial state of a freshly booked session.
	SessionPending SessionStatus = "PENDING"
	// SessionConfirmed means the teacher (or learner) accepted the booking.
	SessionConfirmed SessionStatus = "CONFIRMED"
	// SessionCompleted is terminal; reaching it awards XP to both parties.
	SessionCompleted SessionStatus = "COMPLETED"
	// SessionCancelled is terminal.
	SessionCancelled SessionStatus = "CANCELLED"
)

// Terminal reports whether no further transitions are allowed out of s.
func (s SessionStatus) Terminal() bool {
	return s == SessionCompleted || s == SessionCancelled
}

// ValidStatus reports whether s is one of the known lifecycle states.
func ValidStatus(s SessionStatus) bool {
	switch s {
	case SessionPending, SessionConfirmed, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the lifecycle permits moving from -> to.
// Re-applying the current state is allowed at the transport level; side
// effects are gated separately on the previous state.
func CanTransition(from, to SessionStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case SessionPending:
		return to == SessionConfirmed || to == SessionCancelled || to == SessionCompleted
	case SessionConfirmed:
		return to == SessionCompleted || to == SessionCancelled
	default:
		// COMPLETED and CANCELLED are terminal.
		return false
	}
}

// Session represents one booked mentoring engagement between a teacher and
// a learner. Rows are never deleted; status only moves through the
// lifecycle above.
type Session struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	TeacherID uint          `gorm:"not null;index" json:"teacher_id"`
	LearnerID uint          `gorm:"not null;index" json:"learner_id"`
	SkillID   uint          `gorm:"not null" json:"skill_id"`
	Date      time.Time     `gorm:"not null" json:"date"`
	Status    SessionStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Teacher      User          `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Learner      User          `gorm:"foreignKey:LearnerID" json:"learner,omitempty"`
	Skill        Skill         `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
	Testimonials []Testimonial `gorm:"foreignKey:SessionID" json:"testimonials,omitempty"`
}

// TableName specifies the table name for GORM
func (Session) TableName() string {
	return "sessions"
}

// Participant reports whether the given user is the teacher or learner of
// the session.
func (s *Session) Participant(userID uint) bool {
	return s.TeacherID == userID || s.LearnerID == userID
}

// OtherParty resolves the counterpart of the given participant. Roles are
// resolved once here rather than re-derived at each call site.
func (s *Session) OtherParty(userID uint) uint {
	if s.TeacherID == userID {
		return s.LearnerID
	}
	return s.TeacherID
}
