package gamify

import (
	"math/rand"
	"testing"
	"time"
)

func TestUpdateMastery_FirstReview(t *testing.T) {
	now := time.Now()

	got := UpdateMastery(nil, true, now)

	if got.CorrectCount != 1 || got.IncorrectCount != 0 {
		t.Fatalf("expected counts 1/0, got %d/%d", got.CorrectCount, got.IncorrectCount)
	}
	if got.MasteryLevel != 1 {
		t.Errorf("expected mastery level 1, got %d", got.MasteryLevel)
	}
	if !got.LastReviewed.Equal(now) {
		t.Errorf("last reviewed not set")
	}
}

func TestUpdateMastery_Transitions(t *testing.T) {
	tests := []struct {
		name        string
		current     *MasteryState
		wasCorrect  bool
		wantLevel   int
		wantCorrect int
		wantWrong   int
	}{
		{
			name:        "incorrect first review stays at zero",
			current:     nil,
			wasCorrect:  false,
			wantLevel:   0,
			wantCorrect: 0,
			wantWrong:   1,
		},
		{
			name:        "correct review increments",
			current:     &MasteryState{CorrectCount: 3, IncorrectCount: 1, MasteryLevel: 2},
			wasCorrect:  true,
			wantLevel:   3,
			wantCorrect: 4,
			wantWrong:   1,
		},
		{
			name:        "correct review capped at max",
			current:     &MasteryState{CorrectCount: 10, MasteryLevel: MaxMasteryLevel},
			wasCorrect:  true,
			wantLevel:   MaxMasteryLevel,
			wantCorrect: 11,
			wantWrong:   0,
		},
		{
			name:        "incorrect review decrements",
			current:     &MasteryState{CorrectCount: 4, IncorrectCount: 2, MasteryLevel: 4},
			wasCorrect:  false,
			wantLevel:   3,
			wantCorrect: 4,
			wantWrong:   3,
		},
		{
			name:        "incorrect review floored at zero",
			current:     &MasteryState{IncorrectCount: 5, MasteryLevel: 0},
			wasCorrect:  false,
			wantLevel:   0,
			wantCorrect: 0,
			wantWrong:   6,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := UpdateMastery(tc.current, tc.wasCorrect, time.Now())
			if got.MasteryLevel != tc.wantLevel {
				t.Errorf("mastery level = %d, want %d", got.MasteryLevel, tc.wantLevel)
			}
			if got.CorrectCount != tc.wantCorrect || got.IncorrectCount != tc.wantWrong {
				t.Errorf("counts = %d/%d, want %d/%d", got.CorrectCount, got.IncorrectCount, tc.wantCorrect, tc.wantWrong)
			}
		})
	}
}

// 任意长度的随机复习序列都不应使掌握度离开 [0,5]，计数不应回退
func TestUpdateMastery_RandomSequencesStayBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		length := rng.Intn(101)
		var state *MasteryState

		prevCorrect, prevWrong := 0, 0
		for j := 0; j < length; j++ {
			next := UpdateMastery(state, rng.Intn(2) == 0, time.Now())

			if next.MasteryLevel < 0 || next.MasteryLevel > MaxMasteryLevel {
				t.Fatalf("mastery level %d out of [0,%d] after %d reviews", next.MasteryLevel, MaxMasteryLevel, j+1)
			}
			if next.CorrectCount < prevCorrect || next.IncorrectCount < prevWrong {
				t.Fatalf("counts decreased: %d/%d -> %d/%d", prevCorrect, prevWrong, next.CorrectCount, next.IncorrectCount)
			}

			prevCorrect, prevWrong = next.CorrectCount, next.IncorrectCount
			state = &next
		}
	}
}
