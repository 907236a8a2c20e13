package config

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		name     string
		v, lo, hi int
		want     int
	}{
		{"within range", 50, 0, 100, 50},
		{"below lo", -10, 0, 100, 0},
		{"above hi", 150, 0, 100, 100},
		{"equal to lo", 0, 0, 100, 0},
		{"equal to hi", 100, 0, 100, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
				t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tc.v, tc.lo, tc.hi, got, tc.want)
			}
		})
	}
}

func TestLevelForMonthAndLiteracy_ThresholdsEscalate(t *testing.T) {
	cfg := Default()

	cases := []struct {
		name     string
		month    int
		literacy int
		want     int
	}{
		{"month 1, no literacy", 1, 0, 1},
		{"month 6 unlocks level 2", 6, 0, 2},
		{"literacy 45 unlocks level 3 early", 1, 45, 3},
		{"month 36 unlocks level 5", 36, 0, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cfg.LevelForMonthAndLiteracy(tc.month, tc.literacy); got != tc.want {
				t.Errorf("LevelForMonthAndLiteracy(%d, %d) = %d, want %d", tc.month, tc.literacy, got, tc.want)
			}
		})
	}
}

func TestFilterForLevel_UnknownLevelFallsBackToLevelOne(t *testing.T) {
	cfg := Default()

	got := cfg.FilterForLevel(99)
	want := cfg.LevelFilters[1]
	if got.MaxDifficulty != want.MaxDifficulty {
		t.Errorf("FilterForLevel(99).MaxDifficulty = %d, want %d", got.MaxDifficulty, want.MaxDifficulty)
	}
}

func TestDefault_LevelUnlocksMatchLevelThresholds(t *testing.T) {
	cfg := Default()
	if cfg.LevelUnlocks.Loans != 2 {
		t.Errorf("LevelUnlocks.Loans = %d, want 2", cfg.LevelUnlocks.Loans)
	}
	if cfg.LevelUnlocks.Investing != 3 {
		t.Errorf("LevelUnlocks.Investing = %d, want 3", cfg.LevelUnlocks.Investing)
	}
	if cfg.LevelUnlocks.Diversification != 4 {
		t.Errorf("LevelUnlocks.Diversification = %d, want 4", cfg.LevelUnlocks.Diversification)
	}
	if cfg.LevelUnlocks.Mastery != 5 {
		t.Errorf("LevelUnlocks.Mastery = %d, want 5", cfg.LevelUnlocks.Mastery)
	}
}
