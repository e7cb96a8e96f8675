package yum

import "math/bits"

// State is a packed 32-bit game-state key.
//
// Bit layout:
//
//	bits 0-11:  category-filled bits, one per category in [Category] order
//	            (bit 0 = [Ones] ... bit 11 = [Yum])
//	bits 12-17: bonus-remaining, points still needed in the upper six to
//	            reach the 63-point bonus; 0 means either already reached
//	            or no longer reachable
//	bits 18-22: score-anchor, the [LowScore] or [HighScore] value already
//	            recorded when exactly one of those two categories is
//	            filled; 0 when both or neither are filled
//	bits 23-31: unused
//
// Callers should use the accessor methods rather than depend on this
// layout directly; it exists to double as a compact hash key and
// serialization unit (see [StateIndex]).
type State uint32

const (
	bonusRemainingShift = 12
	bonusRemainingMask  = 0x3f
	scoreAnchorShift    = 18
	scoreAnchorMask     = 0x1f
)

// NewState returns the zero state: no categories filled, bonus-remaining
// 63, score-anchor 0.
func NewState() State {
	return State(63 << bonusRemainingShift)
}

// Filled reports whether category c has been scored in s.
func (s State) Filled(c Category) bool {
	return s&(1<<uint(c)) != 0
}

// FilledCount returns the number of categories filled in s.
func (s State) FilledCount() int {
	return bits.OnesCount32(uint32(s) & (1<<NumCategories - 1))
}

// BonusRemaining returns the points still needed in the upper six
// categories to reach the 63-point bonus, or 0 if the bonus has already
// been reached or is no longer reachable.
func (s State) BonusRemaining() int {
	return int(s >> bonusRemainingShift & bonusRemainingMask)
}

// ScoreAnchor returns the recorded [LowScore]/[HighScore] value when
// exactly one of those two categories is filled, or 0 otherwise.
func (s State) ScoreAnchor() int {
	return int(s >> scoreAnchorShift & scoreAnchorMask)
}

// withFilled returns s with category c's bit set.
func (s State) withFilled(c Category) State {
	return s | 1<<uint(c)
}

// withBonusRemaining returns s with the bonus-remaining field replaced.
func (s State) withBonusRemaining(v int) State {
	return s&^(bonusRemainingMask<<bonusRemainingShift) | State(v&bonusRemainingMask)<<bonusRemainingShift
}

// withScoreAnchor returns s with the score-anchor field replaced.
func (s State) withScoreAnchor(v int) State {
	return s&^(scoreAnchorMask<<scoreAnchorShift) | State(v&scoreAnchorMask)<<scoreAnchorShift
}

// upperSubtotal returns the exact current upper-category subtotal. Only
// valid when BonusRemaining is nonzero (live tracking); once the bonus is
// reached or becomes unreachable it returns 63, so [Apply] keeps
// bonus-remaining at 0 from then on and the exact subtotal is not needed.
func (s State) upperSubtotal() int {
	return 63 - s.BonusRemaining()
}

// maxFromUnfilledUpper returns the maximum additional points obtainable
// from the upper categories that are unfilled in s, excluding category
// skip (pass -1 to exclude none).
func maxFromUnfilledUpper(s State, skip Category) int {
	total := 0
	for c := Ones; c <= Sixes; c++ {
		if c == skip || s.Filled(c) {
			continue
		}
		total += 5 * (int(c) + 1)
	}
	return total
}

// bonusRemainingFor computes the bonus-remaining field for a state whose
// upper categories are all accounted for in s (the category just applied
// already marked filled) given the new exact subtotal.
func bonusRemainingFor(s State, subtotal int) int {
	switch {
	case subtotal >= 63:
		return 0
	case subtotal+maxFromUnfilledUpper(s, -1) < 63:
		return 0
	default:
		return 63 - subtotal
	}
}

// Action is a one-byte encoded action: either a reroll keep-mask or a
// category selection, disambiguated by an explicit tag bit (the high
// bit), rather than relying on the caller to know the turn index.
type Action uint8

const actionScoreTag = 0x80

// KeepAction returns the action encoding "reroll, keeping the dice named
// by mask" (bits 0-4 of mask, one bit per sorted die position).
func KeepAction(mask int) Action {
	return Action(mask & 0x1f)
}

// ScoreAction returns the action encoding "score category c".
func ScoreAction(c Category) Action {
	return Action(actionScoreTag | int(c)&0x0f)
}

// IsScore reports whether a is a category-selection action.
func (a Action) IsScore() bool {
	return a&actionScoreTag != 0
}

// KeepMask returns the keep-mask encoded by a. Only meaningful when
// !a.IsScore().
func (a Action) KeepMask() int {
	return int(a & 0x1f)
}

// Category returns the category encoded by a. Only meaningful when
// a.IsScore().
func (a Action) Category() Category {
	return Category(a & 0x0f)
}
