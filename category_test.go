package yum

import "testing"

func mustEncode(t *testing.T, v [5]int) int {
	t.Helper()
	i, err := EncodeDice(v)
	if err != nil {
		t.Fatalf("EncodeDice(%v): %v", v, err)
	}
	return i
}

func TestScoreUpperCategories(t *testing.T) {
	h, _ := DecodeDice(mustEncode(t, [5]int{3, 3, 3, 5, 6}))
	tests := []struct {
		c    Category
		want int
	}{
		{Ones, 0},
		{Threes, 9},
		{Fives, 5},
		{Sixes, 6},
	}
	for _, test := range tests {
		if got := Score(h, test.c); got != test.want {
			t.Errorf("Score(%v, %s) = %d, want %d", h, test.c, got, test.want)
		}
	}
}

func TestScoreStraightsAndSets(t *testing.T) {
	tests := []struct {
		name string
		hand [5]int
		c    Category
		want int
	}{
		{"low straight", [5]int{1, 2, 3, 4, 5}, LowStraight, 15},
		{"low straight absent", [5]int{1, 2, 3, 4, 4}, LowStraight, 0},
		{"high straight", [5]int{2, 3, 4, 5, 6}, HighStraight, 20},
		{"high straight absent", [5]int{1, 3, 4, 5, 6}, HighStraight, 0},
		{"full house", [5]int{2, 2, 2, 5, 5}, FullHouse, 25},
		{"five of a kind is not full house", [5]int{2, 2, 2, 2, 2}, FullHouse, 0},
		{"yum", [5]int{4, 4, 4, 4, 4}, Yum, 30},
		{"yum absent", [5]int{4, 4, 4, 4, 3}, Yum, 0},
		{"low score is the sum", [5]int{1, 1, 1, 1, 1}, LowScore, 5},
		{"high score is the sum", [5]int{6, 6, 6, 6, 6}, HighScore, 30},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h, _ := DecodeDice(mustEncode(t, test.hand))
			if got := Score(h, test.c); got != test.want {
				t.Errorf("Score(%v, %s) = %d, want %d", h, test.c, got, test.want)
			}
		})
	}
}

func TestIsValidOrdinaryCategory(t *testing.T) {
	s := NewState()
	h, _ := DecodeDice(0)
	if !IsValid(s, Ones, h) {
		t.Error("unfilled ordinary category should be valid")
	}
	s = s.withFilled(Ones)
	if IsValid(s, Ones, h) {
		t.Error("filled ordinary category should be invalid")
	}
}

func TestIsValidScoreAnchorConstraint(t *testing.T) {
	s := NewState().withFilled(HighScore).withScoreAnchor(20)
	low, _ := DecodeDice(mustEncode(t, [5]int{1, 1, 1, 1, 1})) // sum 5
	high, _ := DecodeDice(mustEncode(t, [5]int{6, 6, 6, 6, 5})) // sum 29

	if !IsValid(s, LowScore, low) {
		t.Error("low score 5 should be valid against anchor 20")
	}
	if IsValid(s, LowScore, high) {
		t.Error("low score 29 should be invalid against anchor 20 (not less)")
	}
}

func TestIsValidDegenerateHighScoreAnchor(t *testing.T) {
	// Anchor 5 is the minimum possible dice sum, so no hand can beat it
	// as a LowScore (every hand sums to >= 5, and LowScore additionally
	// requires strictly less than the anchor when HighScore is filled).
	s := NewState().withFilled(HighScore).withScoreAnchor(5)
	for i := 0; i < NumDiceHands; i++ {
		h, _ := DecodeDice(i)
		if IsValid(s, LowScore, h) {
			t.Fatalf("LowScore should never validate against anchor 5, but did for %v", h)
		}
	}
}

func TestApplyUpperCategoryTracksBonus(t *testing.T) {
	s := NewState()
	h, _ := DecodeDice(mustEncode(t, [5]int{6, 6, 6, 6, 6}))
	s = Apply(s, Sixes, h)
	if !s.Filled(Sixes) {
		t.Error("Sixes should be filled after Apply")
	}
	if want := 63 - 30; s.BonusRemaining() != want {
		t.Errorf("BonusRemaining() = %d, want %d", s.BonusRemaining(), want)
	}
}

func TestApplyScoreSetsAnchor(t *testing.T) {
	s := NewState()
	h, _ := DecodeDice(mustEncode(t, [5]int{1, 1, 1, 1, 1}))
	s = Apply(s, LowScore, h)
	if !s.Filled(LowScore) {
		t.Error("LowScore should be filled after Apply")
	}
	if s.ScoreAnchor() != 5 {
		t.Errorf("ScoreAnchor() = %d, want 5", s.ScoreAnchor())
	}
}

func TestApplyBonusBecomesUnreachable(t *testing.T) {
	s := NewState()
	low, _ := DecodeDice(mustEncode(t, [5]int{1, 1, 1, 1, 1}))
	// Scoring every upper category with the minimum possible value makes
	// the 63 bonus unreachable well before all six are filled.
	for _, c := range []Category{Ones, Twos, Threes, Fours, Fives} {
		s = Apply(s, c, low)
	}
	if s.BonusRemaining() != 0 {
		t.Fatalf("BonusRemaining() = %d, want 0 once unreachable", s.BonusRemaining())
	}
	s = Apply(s, Sixes, low)
	if s.BonusRemaining() != 0 {
		t.Errorf("BonusRemaining() = %d, want 0 after bonus permanently missed", s.BonusRemaining())
	}
}
