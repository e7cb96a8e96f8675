package yum

import "sort"

// NumDiceHands is the number of distinguishable sorted 5-die hands
// (faces 1-6), C(6+5-1, 5) = 252.
const NumDiceHands = 252

// numFaces is the number of die faces.
const numFaces = 6

// Hand is a sorted 5-die hand, faces 1-6, non-decreasing.
type Hand [5]int

// indexToHand and handToIndex are the dice codec lookup tables, built once
// by init at package initialization.
var (
	indexToHand [NumDiceHands]Hand
	handToIndex [numFaces + 1][numFaces + 1][numFaces + 1][numFaces + 1][numFaces + 1]int
)

func init() {
	idx := 0
	for d1 := 1; d1 <= numFaces; d1++ {
		for d2 := d1; d2 <= numFaces; d2++ {
			for d3 := d2; d3 <= numFaces; d3++ {
				for d4 := d3; d4 <= numFaces; d4++ {
					for d5 := d4; d5 <= numFaces; d5++ {
						indexToHand[idx] = Hand{d1, d2, d3, d4, d5}
						handToIndex[d1][d2][d3][d4][d5] = idx
						idx++
					}
				}
			}
		}
	}
	if idx != NumDiceHands {
		panic("yum: dice codec generated wrong number of hands")
	}
}

// EncodeDice returns the dense index (0..251) of the sorted 5-die hand
// represented by v, sorting a copy of v first. Returns [ErrInvalidDice] if
// any face is outside 1..6.
func EncodeDice(v [5]int) (int, error) {
	h := v
	for _, d := range h {
		if d < 1 || d > numFaces {
			return 0, ErrInvalidDice
		}
	}
	s := h[:]
	sort.Ints(s)
	return handToIndex[h[0]][h[1]][h[2]][h[3]][h[4]], nil
}

// DecodeDice returns the sorted 5-die hand for dice index i (0..251).
// Returns [ErrInvalidDice] if i is out of range.
func DecodeDice(i int) (Hand, error) {
	if i < 0 || NumDiceHands <= i {
		return Hand{}, ErrInvalidDice
	}
	return indexToHand[i], nil
}

// counts returns the per-face occurrence counts (1-indexed by face value,
// counts[0] unused) for hand h.
func (h Hand) counts() [numFaces + 1]int {
	var c [numFaces + 1]int
	for _, d := range h {
		c[d]++
	}
	return c
}

// sum returns the sum of the five dice.
func (h Hand) sum() int {
	s := 0
	for _, d := range h {
		s += d
	}
	return s
}
