package gamify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fiveQuestions() []ScoredQuestion {
	return []ScoredQuestion{
		{ID: 1, CorrectOption: 0, Points: 1},
		{ID: 2, CorrectOption: 1, Points: 1},
		{ID: 3, CorrectOption: 2, Points: 1},
		{ID: 4, CorrectOption: 3, Points: 1},
		{ID: 5, CorrectOption: 0, Points: 1},
	}
}

func TestGrade_FourOfFive(t *testing.T) {
	answers := map[uint]int{1: 0, 2: 1, 3: 2, 4: 3, 5: 1}

	result := Grade(fiveQuestions(), answers, 70, 25, 120)

	assert.Equal(t, 80, result.Score)
	assert.Equal(t, 5, result.TotalQuestions)
	assert.Equal(t, 4, result.CorrectCount)
	assert.True(t, result.Passed)
	assert.Equal(t, 100, result.XPEarned)
	assert.False(t, result.Correctness[5])
}

func TestGrade_EmptyQuiz(t *testing.T) {
	result := Grade(nil, map[uint]int{}, 70, 25, 0)

	assert.Equal(t, 0, result.Score)
	assert.False(t, result.Passed)
	assert.Equal(t, 0, result.XPEarned)
}

func TestGrade_UnansweredCountsIncorrect(t *testing.T) {
	// 只答对2题，其余未作答
	answers := map[uint]int{1: 0, 2: 1}

	result := Grade(fiveQuestions(), answers, 70, 25, 60)

	assert.Equal(t, 2, result.CorrectCount)
	assert.Equal(t, 40, result.Score)
	assert.False(t, result.Passed)
	assert.Equal(t, 50, result.XPEarned)
	for _, id := range []uint{3, 4, 5} {
		assert.False(t, result.Correctness[id], "question %d should be incorrect", id)
	}
}

func TestGrade_Deterministic(t *testing.T) {
	answers := map[uint]int{5: 0, 3: 2, 1: 0, 4: 1, 2: 1}

	first := Grade(fiveQuestions(), answers, 70, 25, 30)
	second := Grade(fiveQuestions(), answers, 70, 25, 30)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Correctness, second.Correctness)
}

func TestGrade_ExactThresholdPasses(t *testing.T) {
	questions := []ScoredQuestion{
		{ID: 1, CorrectOption: 0},
		{ID: 2, CorrectOption: 0},
		{ID: 3, CorrectOption: 0},
		{ID: 4, CorrectOption: 0},
		{ID: 5, CorrectOption: 0},
		{ID: 6, CorrectOption: 0},
		{ID: 7, CorrectOption: 0},
		{ID: 8, CorrectOption: 0},
		{ID: 9, CorrectOption: 0},
		{ID: 10, CorrectOption: 0},
	}
	answers := map[uint]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0, 6: 0, 7: 0, 8: 1, 9: 1, 10: 1}

	result := Grade(questions, answers, 70, 10, 0)

	assert.Equal(t, 70, result.Score)
	assert.True(t, result.Passed)
}
