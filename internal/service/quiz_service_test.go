package service

import (
	"codequest_backend/internal/model"
	"codequest_backend/internal/util"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizService(env *testEnv) *QuizService {
	return NewQuizService(env.quizzes, env.sessions, env.users, env.achievement, NewDeduper(nil), &env.gamify)
}

func (e *testEnv) createQuiz(t *testing.T, timeLimit int) *model.Quiz {
	t.Helper()

	quiz := &model.Quiz{
		LanguageID:   1,
		Title:        "Python basics",
		TimeLimit:    timeLimit,
		PassingScore: 70,
		IsPublished:  true,
		Questions: []model.QuizQuestion{
			{Question: "1+1?", Options: []string{"1", "2", "3"}, CorrectOption: 1, Points: 1, OrderIndex: 0},
			{Question: "2*2?", Options: []string{"2", "4", "6"}, CorrectOption: 1, Points: 1, OrderIndex: 1},
			{Question: "3-1?", Options: []string{"2", "3", "4"}, CorrectOption: 0, Points: 1, OrderIndex: 2},
			{Question: "6/2?", Options: []string{"2", "3", "6"}, CorrectOption: 1, Points: 1, OrderIndex: 3},
			{Question: "2^3?", Options: []string{"6", "8", "9"}, CorrectOption: 1, Points: 1, OrderIndex: 4},
		},
	}
	if err := e.quizzes.Create(quiz); err != nil {
		t.Fatalf("failed to create quiz: %v", err)
	}
	return quiz
}

func TestSubmit_GradesAndGrantsXP(t *testing.T) {
	env := newTestEnv(t)
	svc := newQuizService(env)
	user := env.createUser(t, "eli")
	quiz := env.createQuiz(t, 0)

	q := quiz.Questions
	answers := map[uint]int{
		q[0].ID: 1, // 对
		q[1].ID: 1, // 对
		q[2].ID: 0, // 对
		q[3].ID: 1, // 对
		q[4].ID: 0, // 错
	}

	result, err := svc.Submit(context.Background(), user.ID, quiz.ID, SubmitRequest{Answers: answers, TimeTaken: 42})
	require.NoError(t, err)

	assert.Equal(t, 80, result.Attempt.Score) // 4/5
	assert.True(t, result.Attempt.Passed)
	assert.Equal(t, 100, result.Attempt.XPEarned) // 4 * 25
	assert.Equal(t, 5, result.Attempt.TotalQuestions)
	assert.Equal(t, 42, result.Attempt.TimeTaken)
	assert.False(t, result.Correctness[q[4].ID])

	fresh, err := env.users.FindByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, fresh.XPPoints)
}

func TestSubmit_FailBelowPassingScore(t *testing.T) {
	env := newTestEnv(t)
	svc := newQuizService(env)
	user := env.createUser(t, "gus")
	quiz := env.createQuiz(t, 0)

	// 只答对2题：40分，不及格，但答对的题照常计XP
	answers := map[uint]int{
		quiz.Questions[0].ID: 1,
		quiz.Questions[1].ID: 1,
	}

	result, err := svc.Submit(context.Background(), user.ID, quiz.ID, SubmitRequest{Answers: answers})
	require.NoError(t, err)

	assert.Equal(t, 40, result.Attempt.Score)
	assert.False(t, result.Attempt.Passed)
	assert.Equal(t, 50, result.Attempt.XPEarned)
}

func TestSubmit_TimedQuizRequiresSession(t *testing.T) {
	env := newTestEnv(t)
	svc := newQuizService(env)
	user := env.createUser(t, "ian")
	quiz := env.createQuiz(t, 300)

	_, err := svc.Submit(context.Background(), user.ID, quiz.ID, SubmitRequest{})
	assert.ErrorIs(t, err, util.ErrSessionClosed)
}

func TestSubmit_ClosesOpenSession(t *testing.T) {
	env := newTestEnv(t)
	svc := newQuizService(env)
	user := env.createUser(t, "ken")
	quiz := env.createQuiz(t, 300)

	session, err := svc.StartSession(user.ID, quiz.ID)
	require.NoError(t, err)
	require.NotNil(t, session.Deadline)

	_, err = svc.Submit(context.Background(), user.ID, quiz.ID, SubmitRequest{
		Answers: map[uint]int{quiz.Questions[0].ID: 1},
	})
	require.NoError(t, err)

	// 会话已关闭，二次提交被拒绝
	_, err = svc.Submit(context.Background(), user.ID, quiz.ID, SubmitRequest{})
	assert.ErrorIs(t, err, util.ErrSessionClosed)
}

func TestStartSession_ReusesOpenSession(t *testing.T) {
	env := newTestEnv(t)
	svc := newQuizService(env)
	user := env.createUser(t, "lia")
	quiz := env.createQuiz(t, 300)

	first, err := svc.StartSession(user.ID, quiz.ID)
	require.NoError(t, err)

	second, err := svc.StartSession(user.ID, quiz.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Deadline.Unix(), second.Deadline.Unix())
}

func TestAutoSubmitExpired_SubmitsSavedAnswers(t *testing.T) {
	env := newTestEnv(t)
	svc := newQuizService(env)
	user := env.createUser(t, "moe")
	quiz := env.createQuiz(t, 300)

	session, err := svc.StartSession(user.ID, quiz.ID)
	require.NoError(t, err)

	answers := map[uint]int{
		quiz.Questions[0].ID: 1,
		quiz.Questions[1].ID: 1,
		quiz.Questions[2].ID: 0,
		quiz.Questions[3].ID: 1,
	}
	require.NoError(t, svc.SaveAnswers(user.ID, quiz.ID, answers))

	// 把截止时间拨到过去
	past := time.Now().Add(-time.Minute)
	require.NoError(t, env.db.Model(&model.QuizSession{}).Where("id = ?", session.ID).Update("deadline", past).Error)

	require.NoError(t, svc.AutoSubmitExpired())

	attempts, err := svc.GetAttempts(user.ID, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, 80, attempts[0].Score)
	assert.True(t, attempts[0].Passed)

	// 会话不会被重复收割
	require.NoError(t, svc.AutoSubmitExpired())
	attempts, err = svc.GetAttempts(user.ID, 10)
	require.NoError(t, err)
	assert.Len(t, attempts, 1)
}

func TestGetQuizForStudent_HidesUnpublished(t *testing.T) {
	env := newTestEnv(t)
	svc := newQuizService(env)

	quiz := &model.Quiz{LanguageID: 1, Title: "draft", IsPublished: false}
	require.NoError(t, env.quizzes.Create(quiz))

	_, err := svc.GetQuizForStudent(quiz.ID)
	assert.ErrorIs(t, err, util.ErrQuizNotPublished)

	_, err = svc.GetQuizForStudent(9999)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestSubmit_QuizOverridesGlobalXP(t *testing.T) {
	env := newTestEnv(t)
	svc := newQuizService(env)
	user := env.createUser(t, "uma")

	quiz := env.createQuiz(t, 0)
	require.NoError(t, env.db.Model(&model.Quiz{}).Where("id = ?", quiz.ID).Update("xp_per_correct", 10).Error)

	result, err := svc.Submit(context.Background(), user.ID, quiz.ID, SubmitRequest{
		Answers: map[uint]int{quiz.Questions[0].ID: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, result.Attempt.XPEarned)
}

func TestAutoSubmitExpired_ContinuesPastFailures(t *testing.T) {
	env := newTestEnv(t)
	svc := newQuizService(env)
	userA := env.createUser(t, "gus")
	userB := env.createUser(t, "hal")
	quizA := env.createQuiz(t, 300)
	quizB := env.createQuiz(t, 300)

	_, err := svc.StartSession(userA.ID, quizA.ID)
	require.NoError(t, err)
	_, err = svc.StartSession(userB.ID, quizB.ID)
	require.NoError(t, err)
	require.NoError(t, svc.SaveAnswers(userB.ID, quizB.ID, map[uint]int{quizB.Questions[0].ID: 1}))

	past := time.Now().Add(-time.Minute)
	require.NoError(t, env.db.Model(&model.QuizSession{}).Where("deadline IS NOT NULL").Update("deadline", past).Error)

	// 第一个会话的测验已被删除：收割失败，但不能拖垮整批扫描
	require.NoError(t, env.quizzes.Delete(quizA.ID))

	require.NoError(t, svc.AutoSubmitExpired())

	attempts, err := svc.GetAttempts(userB.ID, 10)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
}
