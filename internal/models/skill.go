package models

import "time"

// Skill is a canonical skill keyed by unique name. Rows are created lazily
// the first time any user declares the skill.
type Skill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`

	UserSkills []UserSkill `gorm:"foreignKey:SkillID" json:"-"`
}

// TableName specifies the table name for GORM
func (Skill) TableName() string {
	return "skills"
}

// TrendingSkill is the discovery-feed projection of a skill with the number
// of users currently offering to teach it.
type TrendingSkill struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	TeacherCount int    `json:"teacher_count"`
}

// SkillType says whether a user offers to teach a skill or wants to learn it.
type SkillType string

const (
	SkillTypeTeach SkillType = "TEACH"
	SkillTypeLearn SkillType = "LEARN"
)

// SkillLevel is the self-declared proficiency on a skill association.
type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "BEGINNER"
	SkillLevelIntermediate SkillLevel = "INTERMEDIATE"
	SkillLevelAdvanced     SkillLevel = "ADVANCED"
)

// UserSkill links a user to a skill with a direction (teach/learn) and a
// level. A user may hold both a TEACH and a LEARN row for the same skill,
// but never two rows of the same type; the composite unique index is the
// authoritative guard against concurrent duplicate declarations.
type UserSkill struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;uniqueIndex:idx_user_skill_type" json:"user_id"`
	SkillID   uint       `gorm:"not null;uniqueIndex:idx_user_skill_type" json:"skill_id"`
	Type      SkillType  `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_skill_type" json:"type"`
	Level     SkillLevel `gorm:"type:varchar(20);not null;default:'BEGINNER'" json:"level"`
	CreatedAt time.Time  `json:"created_at"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Skill Skill `gorm:"foreignKey:SkillID" json:"skill"`
}

// TableName specifies the table name for GORM
func (UserSkill) TableName() string {
	return "user_skills"
}
