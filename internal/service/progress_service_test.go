package service

import (
	"codequest_backend/internal/model"
	"codequest_backend/internal/repository"
	"codequest_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressService(env *testEnv) (*ProgressService, *repository.CourseRepository) {
	courses := repository.NewCourseRepository(env.db)
	progress := repository.NewProgressRepository(env.db)
	return NewProgressService(progress, courses, env.users, env.achievement), courses
}

func TestUpdateProgress_AwardsXPOnFirstCompletion(t *testing.T) {
	env := newTestEnv(t)
	svc, courses := newProgressService(env)
	user := env.createUser(t, "dan")

	course := &model.Course{LanguageID: 1, Title: "Loops", XPReward: 150, IsPublished: true}
	require.NoError(t, courses.Create(course))

	// 半程：无奖励
	result, err := svc.UpdateProgress(user.ID, course.ID, ProgressUpdateRequest{Completion: 50, TimeSpent: 120})
	require.NoError(t, err)
	assert.Equal(t, 0, result.XPAwarded)
	assert.Nil(t, result.Progress.CompletedAt)

	// 完成：一次性发放课程XP
	result, err = svc.UpdateProgress(user.ID, course.ID, ProgressUpdateRequest{Completion: 100, TimeSpent: 180})
	require.NoError(t, err)
	assert.Equal(t, 150, result.XPAwarded)
	assert.NotNil(t, result.Progress.CompletedAt)
	assert.Equal(t, 300, result.Progress.TimeSpent)

	fresh, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, fresh.XPPoints)

	// 复习不再奖励
	result, err = svc.UpdateProgress(user.ID, course.ID, ProgressUpdateRequest{Completion: 100})
	require.NoError(t, err)
	assert.Equal(t, 0, result.XPAwarded)

	fresh, err = env.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, fresh.XPPoints)
}

func TestUpdateProgress_NeverRegresses(t *testing.T) {
	env := newTestEnv(t)
	svc, courses := newProgressService(env)
	user := env.createUser(t, "eva")

	course := &model.Course{LanguageID: 1, Title: "Strings", IsPublished: true}
	require.NoError(t, courses.Create(course))

	_, err := svc.UpdateProgress(user.ID, course.ID, ProgressUpdateRequest{Completion: 80})
	require.NoError(t, err)

	result, err := svc.UpdateProgress(user.ID, course.ID, ProgressUpdateRequest{Completion: 30})
	require.NoError(t, err)
	assert.Equal(t, 80, result.Progress.Completion)
}

func TestUpdateProgress_UnknownCourse(t *testing.T) {
	env := newTestEnv(t)
	svc, _ := newProgressService(env)
	user := env.createUser(t, "ned")

	_, err := svc.UpdateProgress(user.ID, 4242, ProgressUpdateRequest{Completion: 10})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestGetDashboard_AggregatesEverything(t *testing.T) {
	env := newTestEnv(t)
	pets := newPetService(env)
	progressRepo := repository.NewProgressRepository(env.db)
	svc := NewDashboardService(env.users, env.quizzes, progressRepo, env.progress, pets, env.achievement)
	user := env.createUser(t, "vik")

	require.NoError(t, env.users.UpdateXP(user.ID, 450))

	view, err := svc.GetDashboard(user.ID)
	require.NoError(t, err)

	assert.Equal(t, user.ID, view.User.ID)
	assert.Equal(t, 2, view.Level)
	require.NotNil(t, view.Pet)
	assert.Equal(t, "baby", view.Pet.EvolutionStage)
	assert.Empty(t, view.RecentAttempts)
	require.NotNil(t, view.Achievements)
	assert.Equal(t, 450, view.Achievements.TotalXP)
}
