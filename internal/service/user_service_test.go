package service

import (
	"codequest_backend/internal/gamify"
	"codequest_backend/internal/model"
	"codequest_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckin_FirstTime(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.checkins, 10)
	user := env.createUser(t, "nora")

	result, err := svc.Checkin(user.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.StreakDays)
	assert.Equal(t, 10, result.XPEarned)

	fresh, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, fresh.XPPoints)
	assert.Equal(t, 1, fresh.StreakDays)
}

func TestCheckin_SameDayRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.checkins, 10)
	user := env.createUser(t, "finn")

	_, err := svc.Checkin(user.ID)
	require.NoError(t, err)

	_, err = svc.Checkin(user.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyCheckedIn)

	// XP没有重复发放
	fresh, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, fresh.XPPoints)
}

func TestCheckin_ConsecutiveDaysExtendStreak(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.checkins, 10)
	user := env.createUser(t, "ruby")

	yesterday := time.Now().AddDate(0, 0, -1)
	seed := &model.Checkin{
		UserID:     user.ID,
		CheckinAt:  time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, yesterday.Location()),
		StreakDays: 4,
	}
	require.NoError(t, env.checkins.Create(seed))

	result, err := svc.Checkin(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, result.StreakDays)
}

func TestCheckin_BrokenStreakResets(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.checkins, 10)
	user := env.createUser(t, "ivan")

	threeDaysAgo := time.Now().AddDate(0, 0, -3)
	seed := &model.Checkin{
		UserID:     user.ID,
		CheckinAt:  time.Date(threeDaysAgo.Year(), threeDaysAgo.Month(), threeDaysAgo.Day(), 0, 0, 0, 0, threeDaysAgo.Location()),
		StreakDays: 9,
	}
	require.NoError(t, env.checkins.Create(seed))

	result, err := svc.Checkin(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.StreakDays)
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users, env.checkins, 10)
	user := env.createUser(t, "olga")

	updated, err := svc.UpdateProfile(user.ID, ProfileUpdateRequest{Name: "Olga V"})
	require.NoError(t, err)

	assert.Equal(t, "Olga V", updated.Name)
	assert.Equal(t, user.Email, updated.Email)
}

func TestUpdateXP_RejectsNegativeDelta(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "ned")

	err := env.users.UpdateXP(user.ID, -5)
	assert.ErrorIs(t, err, gamify.ErrNegativeXPDelta)

	// 负增量在入库前被拒，XP保持不变
	fresh, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.XPPoints)
}
