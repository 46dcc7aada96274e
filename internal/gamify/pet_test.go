package gamify

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

func testTuning() PetTuning {
	return PetTuning{FeedXP: 25, PlayXP: 50, RestXP: 15, XPPerLevel: 100}
}

func TestFeedPet(t *testing.T) {
	now := time.Now()
	s := PetState{Happiness: 50, Hunger: 40, Energy: 60, Level: 1}

	next, err := FeedPet(s, testTuning(), now)
	if err != nil {
		t.Fatalf("feed failed: %v", err)
	}

	if next.Hunger != 60 || next.Happiness != 60 {
		t.Errorf("stats = hunger %d happiness %d, want 60/60", next.Hunger, next.Happiness)
	}
	if !next.LastFed.Equal(now) {
		t.Errorf("last fed not updated")
	}
}

func TestFeedPet_RejectedWhenFull(t *testing.T) {
	s := PetState{Happiness: 50, Hunger: 95, Energy: 60, Level: 1, XP: 10}

	next, err := FeedPet(s, testTuning(), time.Now())

	if !errors.Is(err, ErrPetTooFull) {
		t.Fatalf("expected ErrPetTooFull, got %v", err)
	}
	if next != s {
		t.Errorf("state changed on rejected action: %+v", next)
	}
}

func TestPlayWithPet_RejectedWhenTired(t *testing.T) {
	s := PetState{Happiness: 50, Hunger: 50, Energy: 15, Level: 1}

	next, err := PlayWithPet(s, testTuning(), time.Now())

	if !errors.Is(err, ErrPetTooTired) {
		t.Fatalf("expected ErrPetTooTired, got %v", err)
	}
	if next != s {
		t.Errorf("state changed on rejected action")
	}
}

func TestRestPet_RejectedWhenRested(t *testing.T) {
	s := PetState{Happiness: 50, Hunger: 50, Energy: 95, Level: 1}

	_, err := RestPet(s, testTuning(), time.Now())

	if !errors.Is(err, ErrPetTooRested) {
		t.Fatalf("expected ErrPetTooRested, got %v", err)
	}
}

func TestPetLevelUp_CarriesRemainder(t *testing.T) {
	// level 1, 阈值100：喂食后 90+25=115 → 升级，余15
	s := PetState{Happiness: 50, Hunger: 40, Energy: 60, Level: 1, XP: 90}

	next, err := FeedPet(s, testTuning(), time.Now())
	if err != nil {
		t.Fatalf("feed failed: %v", err)
	}

	if next.Level != 2 {
		t.Errorf("level = %d, want 2", next.Level)
	}
	if next.XP != 15 {
		t.Errorf("xp = %d, want 15 (remainder carried)", next.XP)
	}
}

func TestStageForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  EvolutionStage
	}{
		{1, StageBaby},
		{4, StageBaby},
		{5, StageTeen},
		{9, StageTeen},
		{10, StageAdult},
		{14, StageAdult},
		{15, StageMaster},
		{40, StageMaster},
	}

	for _, tc := range tests {
		if got := StageForLevel(tc.level); got != tc.want {
			t.Errorf("StageForLevel(%d) = %s, want %s", tc.level, got, tc.want)
		}
	}
}

// 任意动作序列（包括只重复单一动作的极端序列）都不应使属性离开 [0,100]
func TestPetStats_StayBoundedUnderAnySequence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tuning := testTuning()
	actions := []func(PetState, PetTuning, time.Time) (PetState, error){FeedPet, PlayWithPet, RestPet}

	check := func(s PetState, step int) {
		for name, v := range map[string]int{"happiness": s.Happiness, "hunger": s.Hunger, "energy": s.Energy} {
			if v < 0 || v > 100 {
				t.Fatalf("%s = %d out of [0,100] at step %d", name, v, step)
			}
		}
	}

	// 随机序列
	s := PetState{Happiness: 80, Hunger: 60, Energy: 70, Level: 1}
	for i := 0; i < 1000; i++ {
		next, err := actions[rng.Intn(3)](s, tuning, time.Now())
		if err == nil {
			s = next
		}
		check(s, i)
	}

	// 单一动作反复执行
	for _, action := range actions {
		s := PetState{Happiness: 80, Hunger: 60, Energy: 70, Level: 1}
		for i := 0; i < 200; i++ {
			next, err := action(s, tuning, time.Now())
			if err == nil {
				s = next
			}
			check(s, i)
		}
	}
}
