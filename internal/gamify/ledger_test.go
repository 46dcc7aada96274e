package gamify

import (
	"errors"
	"testing"
)

func TestApplyXP(t *testing.T) {
	got, err := ApplyXP(100, 50)
	if err != nil {
		t.Fatalf("ApplyXP failed: %v", err)
	}
	if got != 150 {
		t.Errorf("xp = %d, want 150", got)
	}

	got, err = ApplyXP(100, 0)
	if err != nil || got != 100 {
		t.Errorf("zero delta should be a no-op, got %d, %v", got, err)
	}
}

func TestApplyXP_RejectsNegativeDelta(t *testing.T) {
	got, err := ApplyXP(100, -10)
	if !errors.Is(err, ErrNegativeXPDelta) {
		t.Fatalf("expected ErrNegativeXPDelta, got %v", err)
	}
	if got != 100 {
		t.Errorf("xp changed on rejected delta: %d", got)
	}
}

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp        int
		wantLevel int
		wantNext  int
	}{
		{0, 0, 200},
		{199, 0, 200},
		{200, 1, 400},
		{1250, 6, 1400},
	}

	for _, tc := range tests {
		level, next := LevelForXP(tc.xp)
		if level != tc.wantLevel || next != tc.wantNext {
			t.Errorf("LevelForXP(%d) = (%d,%d), want (%d,%d)", tc.xp, level, next, tc.wantLevel, tc.wantNext)
		}
	}
}
