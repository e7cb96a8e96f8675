package yum

// NumKeepMasks is the number of distinct keep-masks for a 5-die hand.
const NumKeepMasks = 32

// zeroTolerance is the numeric tolerance for "zero" probability in
// downstream loops (spec: 1e-10).
const zeroTolerance = 1e-10

// RerollTable holds the precomputed reroll transition probabilities
// P(end | start, mask) for every (start, mask, end) triple. Built once
// and immutable thereafter.
type RerollTable struct {
	// probs is a flat NumDiceHands*NumKeepMasks*NumDiceHands array, in
	// start -> mask -> end order.
	probs []float64
}

func rerollIndex(start, mask, end int) int {
	return (start*NumKeepMasks+mask)*NumDiceHands + end
}

// Prob returns P(end | start, mask). Returns 0 if any index is out of
// range.
func (t *RerollTable) Prob(start, mask, end int) float64 {
	if start < 0 || NumDiceHands <= start || mask < 0 || NumKeepMasks <= mask || end < 0 || NumDiceHands <= end {
		return 0
	}
	return t.probs[rerollIndex(start, mask, end)]
}

// BuildRerollTable computes the full reroll probability table.
//
// For each (start, mask), the dice at the sorted positions of start named
// by mask keep their values (their position in the sorted result may
// shift); each rerolled die is independent uniform on 1..6. Every outcome of the
// rerolled dice is enumerated, combined with the retained dice,
// canonicalized by sorting, and accumulated into the resulting end
// bucket; counts are then divided by 6^k, where k is the number of
// rerolled dice. This full multinomial construction is required to
// satisfy the row-sum invariant — a flat 1/6-per-rerolled-die product
// without canonicalizing onto sorted outcomes does not.
func BuildRerollTable() *RerollTable {
	t := &RerollTable{probs: make([]float64, NumDiceHands*NumKeepMasks*NumDiceHands)}
	for start := 0; start < NumDiceHands; start++ {
		hand, _ := DecodeDice(start)
		for mask := 0; mask < NumKeepMasks; mask++ {
			var kept, rerolled []int
			for i := 0; i < 5; i++ {
				if mask&(1<<uint(i)) != 0 {
					kept = append(kept, hand[i])
				} else {
					rerolled = append(rerolled, i)
				}
			}
			k := len(rerolled)
			if k == 0 {
				t.probs[rerollIndex(start, mask, start)] = 1.0
				continue
			}
			total := 1
			for i := 0; i < k; i++ {
				total *= numFaces
			}
			counts := make(map[int]int)
			outcome := make([]int, k)
			var enumerate func(pos int)
			enumerate = func(pos int) {
				if pos == k {
					combined := append([]int(nil), kept...)
					combined = append(combined, outcome...)
					var h [5]int
					copy(h[:], combined)
					end, err := EncodeDice(h)
					if err != nil {
						panic(err)
					}
					counts[end]++
					return
				}
				for face := 1; face <= numFaces; face++ {
					outcome[pos] = face
					enumerate(pos + 1)
				}
			}
			enumerate(0)
			for end, n := range counts {
				t.probs[rerollIndex(start, mask, end)] = float64(n) / float64(total)
			}
		}
	}
	return t
}
