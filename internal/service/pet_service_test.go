package service

import (
	"codequest_backend/internal/gamify"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPetService(env *testEnv) *PetService {
	return NewPetService(env.pets, env.achievement, NewDeduper(nil), &env.gamify)
}

func TestGetOrCreatePet_AdoptsOnFirstAccess(t *testing.T) {
	env := newTestEnv(t)
	svc := newPetService(env)
	user := env.createUser(t, "amy")

	pet, err := svc.GetOrCreatePet(user.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, pet.Level)
	assert.Equal(t, "baby", pet.EvolutionStage)
	assert.Equal(t, 80, pet.Happiness)
	assert.Equal(t, 60, pet.Hunger)
	assert.Equal(t, 70, pet.Energy)

	// 再次访问返回同一只宠物
	again, err := svc.GetOrCreatePet(user.ID)
	require.NoError(t, err)
	assert.Equal(t, pet.ID, again.ID)
}

func TestFeed_RaisesHungerAndGrantsXP(t *testing.T) {
	env := newTestEnv(t)
	svc := newPetService(env)
	user := env.createUser(t, "max")

	result, err := svc.Feed(context.Background(), user.ID, "req-1")
	require.NoError(t, err)

	assert.Equal(t, 80, result.Pet.Hunger)    // 60+20
	assert.Equal(t, 90, result.Pet.Happiness) // 80+10
	assert.Equal(t, 25, result.Pet.XP)
	assert.False(t, result.Pet.LastFed.IsZero())
}

func TestFeed_RejectedWhenTooFull(t *testing.T) {
	env := newTestEnv(t)
	svc := newPetService(env)
	user := env.createUser(t, "lin")

	pet, err := svc.GetOrCreatePet(user.ID)
	require.NoError(t, err)
	pet.Hunger = 95
	require.NoError(t, env.pets.UpdateCAS(pet))

	_, err = svc.Feed(context.Background(), user.ID, "req-1")
	assert.ErrorIs(t, err, gamify.ErrPetTooFull)

	// 状态保持不变
	fresh, err := env.pets.FindByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 95, fresh.Hunger)
	assert.Equal(t, 0, fresh.XP)
}

func TestPlay_RejectedWhenTooTired(t *testing.T) {
	env := newTestEnv(t)
	svc := newPetService(env)
	user := env.createUser(t, "joy")

	pet, err := svc.GetOrCreatePet(user.ID)
	require.NoError(t, err)
	pet.Energy = 10
	require.NoError(t, env.pets.UpdateCAS(pet))

	_, err = svc.Play(context.Background(), user.ID, "req-1")
	assert.ErrorIs(t, err, gamify.ErrPetTooTired)
}

func TestPetActions_LevelUpAndEvolve(t *testing.T) {
	env := newTestEnv(t)
	svc := newPetService(env)
	user := env.createUser(t, "kai")

	pet, err := svc.GetOrCreatePet(user.ID)
	require.NoError(t, err)
	pet.XP = 90
	require.NoError(t, env.pets.UpdateCAS(pet))

	// feed +25XP：越过100后升级并保留余量
	result, err := svc.Feed(context.Background(), user.ID, "req-1")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Pet.Level)
	assert.Equal(t, 15, result.Pet.XP)
	assert.Equal(t, "baby", result.Pet.EvolutionStage)
}

func TestPetActions_DuplicateRequestRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := newPetService(env)
	user := env.createUser(t, "tao")

	// Redis 不可用时去重放行，重复请求照常处理
	_, err := svc.Feed(context.Background(), user.ID, "same-req")
	require.NoError(t, err)
	_, err = svc.Rest(context.Background(), user.ID, "same-req")
	require.NoError(t, err)
}

func TestRename(t *testing.T) {
	env := newTestEnv(t)
	svc := newPetService(env)
	user := env.createUser(t, "ada")

	pet, err := svc.Rename(user.ID, "Sparky")
	require.NoError(t, err)
	assert.Equal(t, "Sparky", pet.Name)

	fresh, err := env.pets.FindByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sparky", fresh.Name)
}
