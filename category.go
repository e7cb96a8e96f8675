package yum

// Score computes the point value of the given category for dice hand h.
//
//   - [Ones]..[Sixes]: count of that face times the face value.
//   - [LowScore], [HighScore]: sum of all five dice.
//   - [LowStraight] (1,2,3,4,5): 15 if present, else 0.
//   - [HighStraight] (2,3,4,5,6): 20 if present, else 0.
//   - [FullHouse] (three of a kind and a distinct pair): 25, else 0. Five
//     of a kind alone does not qualify.
//   - [Yum] (five of a kind): 30, else 0.
func Score(h Hand, c Category) int {
	counts := h.counts()
	switch {
	case c.IsUpper():
		face := int(c) + 1
		return counts[face] * face
	case c == LowScore, c == HighScore:
		return h.sum()
	case c == LowStraight:
		if counts[1] >= 1 && counts[2] >= 1 && counts[3] >= 1 && counts[4] >= 1 && counts[5] >= 1 {
			return 15
		}
		return 0
	case c == HighStraight:
		if counts[2] >= 1 && counts[3] >= 1 && counts[4] >= 1 && counts[5] >= 1 && counts[6] >= 1 {
			return 20
		}
		return 0
	case c == FullHouse:
		var hasThree, hasTwo bool
		for face := 1; face <= numFaces; face++ {
			switch counts[face] {
			case 3:
				hasThree = true
			case 2:
				hasTwo = true
			}
		}
		if hasThree && hasTwo {
			return 25
		}
		return 0
	case c == Yum:
		for face := 1; face <= numFaces; face++ {
			if counts[face] == 5 {
				return 30
			}
		}
		return 0
	}
	return 0
}

// IsValid reports whether category c may be chosen for state s given dice
// hand h: the category must be unfilled, and [LowScore]/[HighScore] are
// additionally constrained by the score-anchor (see [State.ScoreAnchor]).
func IsValid(s State, c Category, h Hand) bool {
	switch c {
	case LowScore:
		return !s.Filled(LowScore) && (!s.Filled(HighScore) || Score(h, LowScore) < s.ScoreAnchor())
	case HighScore:
		return !s.Filled(HighScore) && (!s.Filled(LowScore) || Score(h, HighScore) > s.ScoreAnchor())
	default:
		return !s.Filled(c)
	}
}

// Apply scores category c for dice hand h against state s, returning the
// successor state with exactly that category's bit set and the
// bonus-remaining/score-anchor fields updated per [State]'s invariants.
// Apply does not check validity; call [IsValid] first.
func Apply(s State, c Category, h Hand) State {
	next := s.withFilled(c)
	switch {
	case c.IsUpper():
		subtotal := s.upperSubtotal() + Score(h, c)
		next = next.withBonusRemaining(bonusRemainingFor(next, subtotal))
	case c == LowScore, c == HighScore:
		if next.Filled(LowScore) && next.Filled(HighScore) {
			next = next.withScoreAnchor(0)
		} else {
			next = next.withScoreAnchor(Score(h, c))
		}
	}
	return next
}
