package repository

import (
	"context"
	"testing"
	"time"

	"github.com/itsFiz/upskillrr/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestSession(t *testing.T, db *gorm.DB, teacherID, learnerID, skillID uint, status models.SessionStatus) *models.Session {
	t.Helper()
	session := &models.Session{
		TeacherID: teacherID,
		LearnerID: learnerID,
		SkillID:   skillID,
		Status:    status,
		Date:      time.Now().Add(24 * time.Hour),
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}
	return session
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	teacher := createTestUser(t, db, "Bob Smith", "bob@test.com", 2100)
	learner := createTestUser(t, db, "Alice Johnson", "alice@test.com", 1250)
	skill := createTestSkill(t, db, "React", "Frontend")

	session := &models.Session{
		TeacherID: teacher.ID,
		LearnerID: learner.ID,
		SkillID:   skill.ID,
		Status:    models.SessionPending,
		Date:      time.Now().Add(48 * time.Hour),
	}
	require.NoError(t, repo.Create(ctx, session))

	// Create reloads the row with participants and skill resolved.
	assert.Equal(t, "Bob Smith", session.Teacher.Name)
	assert.Equal(t, "React", session.Skill.Name)

	got, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionPending, got.Status)
	assert.Equal(t, "Alice Johnson", got.Learner.Name)
}

func TestSessionRepository_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewSessionRepository(db)

	_, err := repo.GetByID(context.Background(), 42)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestSessionRepository_UpdateStatus(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	teacher := createTestUser(t, db, "Bob Smith", "bob@test.com", 0)
	learner := createTestUser(t, db, "Alice Johnson", "alice@test.com", 0)
	skill := createTestSkill(t, db, "React", "Frontend")
	session := createTestSession(t, db, teacher.ID, learner.ID, skill.ID, models.SessionPending)

	require.NoError(t, repo.UpdateStatus(ctx, session.ID, models.SessionConfirmed))

	got, err := repo.GetByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SessionConfirmed, got.Status)

	err = repo.UpdateStatus(ctx, 999, models.SessionConfirmed)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestSessionRepository_ListByParty(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	bob := createTestUser(t, db, "Bob Smith", "bob@test.com", 0)
	alice := createTestUser(t, db, "Alice Johnson", "alice@test.com", 0)
	carol := createTestUser(t, db, "Carol Davis", "carol@test.com", 0)
	react := createTestSkill(t, db, "React", "Frontend")

	createTestSession(t, db, bob.ID, alice.ID, react.ID, models.SessionPending)
	createTestSession(t, db, bob.ID, carol.ID, react.ID, models.SessionConfirmed)
	createTestSession(t, db, carol.ID, bob.ID, react.ID, models.SessionPending)

	teaching, err := repo.ListByTeacher(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, teaching, 2)

	learning, err := repo.ListByLearner(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, learning, 1)
	assert.Equal(t, "Carol Davis", learning[0].Teacher.Name)
}

func TestSessionRepository_RecentCompleted(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	bob := createTestUser(t, db, "Bob Smith", "bob@test.com", 0)
	alice := createTestUser(t, db, "Alice Johnson", "alice@test.com", 0)
	react := createTestSkill(t, db, "React", "Frontend")

	createTestSession(t, db, bob.ID, alice.ID, react.ID, models.SessionPending)
	done := createTestSession(t, db, bob.ID, alice.ID, react.ID, models.SessionCompleted)

	recent, err := repo.RecentCompleted(ctx, 5)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, done.ID, recent[0].ID)
	assert.Equal(t, "Bob Smith", recent[0].Teacher.Name)
	assert.Equal(t, "React", recent[0].Skill.Name)
}

func TestSessionRepository_CountCompletedByLearnerSince(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	bob := createTestUser(t, db, "Bob Smith", "bob@test.com", 0)
	alice := createTestUser(t, db, "Alice Johnson", "alice@test.com", 0)
	react := createTestSkill(t, db, "React", "Frontend")

	createTestSession(t, db, bob.ID, alice.ID, react.ID, models.SessionCompleted)
	createTestSession(t, db, bob.ID, alice.ID, react.ID, models.SessionCompleted)
	createTestSession(t, db, bob.ID, alice.ID, react.ID, models.SessionCancelled)
	// Completed by someone else never counts for alice.
	createTestSession(t, db, alice.ID, bob.ID, react.ID, models.SessionCompleted)

	now := time.Now()
	count, err := repo.CountCompletedByLearnerSince(ctx, alice.ID, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	past, err := repo.CountCompletedByLearnerSince(ctx, alice.ID, now.Add(-2*time.Hour), now.Add(-time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 0, past)
}
