package yum

import "testing"

func TestRerollTableRowsSumToOne(t *testing.T) {
	table := BuildRerollTable()
	for start := 0; start < NumDiceHands; start += 37 { // sample, full table is 252*32 rows
		for mask := 0; mask < NumKeepMasks; mask++ {
			var total float64
			for end := 0; end < NumDiceHands; end++ {
				total += table.Prob(start, mask, end)
			}
			if diff := total - 1.0; diff < -1e-9 || diff > 1e-9 {
				t.Fatalf("start=%d mask=%d: row sums to %v, want 1", start, mask, total)
			}
		}
	}
}

func TestRerollTableKeepAllIsIdentity(t *testing.T) {
	table := BuildRerollTable()
	for start := 0; start < NumDiceHands; start++ {
		for end := 0; end < NumDiceHands; end++ {
			want := 0.0
			if end == start {
				want = 1.0
			}
			if got := table.Prob(start, 0x1f, end); got != want {
				t.Fatalf("Prob(%d, keep-all, %d) = %v, want %v", start, end, got, want)
			}
		}
	}
}

func TestRerollTableRerollAllIsUniformOverOutcomes(t *testing.T) {
	table := BuildRerollTable()
	// Rerolling all five dice from any starting hand should produce the
	// same distribution: it does not depend on start.
	ref := make([]float64, NumDiceHands)
	for end := 0; end < NumDiceHands; end++ {
		ref[end] = table.Prob(0, 0, end)
	}
	for start := 1; start < NumDiceHands; start++ {
		for end := 0; end < NumDiceHands; end++ {
			if got := table.Prob(start, 0, end); got != ref[end] {
				t.Fatalf("Prob(%d, 0, %d) = %v, want %v (independent of start)", start, end, got, ref[end])
			}
		}
	}
}

func TestRerollTableOutOfRangeIsZero(t *testing.T) {
	table := BuildRerollTable()
	for _, args := range [][3]int{
		{-1, 0, 0},
		{0, -1, 0},
		{0, 0, -1},
		{NumDiceHands, 0, 0},
		{0, NumKeepMasks, 0},
		{0, 0, NumDiceHands},
	} {
		if got := table.Prob(args[0], args[1], args[2]); got != 0 {
			t.Errorf("Prob%v = %v, want 0", args, got)
		}
	}
}
