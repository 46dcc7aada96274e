package service

import (
	"codequest_backend/internal/gamify"
	"codequest_backend/internal/model"
	"codequest_backend/internal/util"
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryDedupStore 内存版去重存储，行为与 Redis SETNX/DEL 一致
type memoryDedupStore struct {
	keys map[string]struct{}
}

func newMemoryDedupStore() *memoryDedupStore {
	return &memoryDedupStore{keys: make(map[string]struct{})}
}

func (m *memoryDedupStore) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	if _, taken := m.keys[key]; taken {
		return redis.NewBoolResult(false, nil)
	}
	m.keys[key] = struct{}{}
	return redis.NewBoolResult(true, nil)
}

func (m *memoryDedupStore) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, k := range keys {
		if _, ok := m.keys[k]; ok {
			delete(m.keys, k)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func newMemoryDeduper() *Deduper {
	return &Deduper{store: newMemoryDedupStore()}
}

func TestDeduper_ScopesKeysPerUser(t *testing.T) {
	d := newMemoryDeduper()
	ctx := context.Background()

	assert.True(t, d.Reserve(ctx, "pet_feed", 1, "req-1"))
	// 另一个用户带同样的 requestId 不受影响
	assert.True(t, d.Reserve(ctx, "pet_feed", 2, "req-1"))
	// 同一用户重放被拒
	assert.False(t, d.Reserve(ctx, "pet_feed", 1, "req-1"))
	// 不同 scope 互不干扰
	assert.True(t, d.Reserve(ctx, "pet_play", 1, "req-1"))
}

func TestDeduper_ReleaseAllowsRetry(t *testing.T) {
	d := newMemoryDeduper()
	ctx := context.Background()

	require.True(t, d.Reserve(ctx, "quiz_submit", 1, "req-1"))
	d.Release(ctx, "quiz_submit", 1, "req-1")
	assert.True(t, d.Reserve(ctx, "quiz_submit", 1, "req-1"))
}

func TestFeed_ReplayedRequestRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPetService(env.pets, env.achievement, newMemoryDeduper(), &env.gamify)
	user := env.createUser(t, "ivy")

	result, err := svc.Feed(context.Background(), user.ID, "req-1")
	require.NoError(t, err)
	assert.Equal(t, 80, result.Pet.Hunger)

	// 同一请求重放：拒绝且不重复计分
	_, err = svc.Feed(context.Background(), user.ID, "req-1")
	assert.ErrorIs(t, err, util.ErrDuplicateRequest)

	fresh, err := env.pets.FindByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 80, fresh.Hunger)
	assert.Equal(t, 25, fresh.XP)
}

func TestFeed_RetryAfterRejectionAllowed(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPetService(env.pets, env.achievement, newMemoryDeduper(), &env.gamify)
	user := env.createUser(t, "ben")

	pet, err := svc.GetOrCreatePet(user.ID)
	require.NoError(t, err)
	pet.Hunger = 95
	require.NoError(t, env.pets.UpdateCAS(pet))

	// 前置条件不满足：动作没有生效，占用被释放
	_, err = svc.Feed(context.Background(), user.ID, "req-2")
	assert.ErrorIs(t, err, gamify.ErrPetTooFull)

	// 同一 requestId 重试仍然得到业务错误，而不是被误判为重放
	_, err = svc.Feed(context.Background(), user.ID, "req-2")
	assert.ErrorIs(t, err, gamify.ErrPetTooFull)
}

func TestSubmit_ReplayedRequestRejected(t *testing.T) {
	env := newTestEnv(t)
	svc := NewQuizService(env.quizzes, env.sessions, env.users, env.achievement, newMemoryDeduper(), &env.gamify)
	user := env.createUser(t, "leo")
	quiz := env.createQuiz(t, 0)

	req := SubmitRequest{
		Answers:   map[uint]int{quiz.Questions[0].ID: 1},
		RequestID: "req-1",
	}
	_, err := svc.Submit(context.Background(), user.ID, quiz.ID, req)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), user.ID, quiz.ID, req)
	assert.ErrorIs(t, err, util.ErrDuplicateRequest)

	attempts, err := svc.GetAttempts(user.ID, 10)
	require.NoError(t, err)
	assert.Len(t, attempts, 1)
}

func TestSubmit_RetryAfterFailureAllowed(t *testing.T) {
	env := newTestEnv(t)
	svc := NewQuizService(env.quizzes, env.sessions, env.users, env.achievement, newMemoryDeduper(), &env.gamify)
	user := env.createUser(t, "zoe")

	quiz := &model.Quiz{LanguageID: 1, Title: "draft", IsPublished: false}
	require.NoError(t, env.quizzes.Create(quiz))

	req := SubmitRequest{RequestID: "req-1"}
	_, err := svc.Submit(context.Background(), user.ID, quiz.ID, req)
	assert.ErrorIs(t, err, util.ErrQuizNotPublished)

	// 交卷失败后用同一 requestId 重试不会被当成重放
	_, err = svc.Submit(context.Background(), user.ID, quiz.ID, req)
	assert.ErrorIs(t, err, util.ErrQuizNotPublished)
}
