package yum

import "testing"

func TestStateIndexRoundTrip(t *testing.T) {
	states := GenerateAllStates()
	idx := NewStateIndex(states)
	if idx.NumStates() != len(states) {
		t.Fatalf("NumStates() = %d, want %d", idx.NumStates(), len(states))
	}
	for i, s := range states {
		if got := idx.Index(s); got != i {
			t.Fatalf("Index(%d) = %d, want %d", s, got, i)
		}
		got, err := idx.State(i)
		if err != nil {
			t.Fatalf("State(%d): %v", i, err)
		}
		if got != s {
			t.Fatalf("State(%d) = %d, want %d", i, got, s)
		}
	}
}

func TestStateIndexNotFound(t *testing.T) {
	idx := NewStateIndex(GenerateAllStates())
	bogus := State(0xFFFFFFFF)
	if got := idx.Index(bogus); got != NotFound {
		t.Errorf("Index(bogus) = %d, want NotFound", got)
	}
}

func TestStateIndexOutOfRange(t *testing.T) {
	idx := NewStateIndex(GenerateAllStates())
	for _, i := range []int{-1, idx.NumStates(), idx.NumStates() + 10} {
		if _, err := idx.State(i); err != ErrInvalidIndex {
			t.Errorf("State(%d) = %v, want ErrInvalidIndex", i, err)
		}
	}
}

func TestStatesFilledCountPartitionsAllStates(t *testing.T) {
	states := GenerateAllStates()
	idx := NewStateIndex(states)
	total := 0
	for count := 0; count <= NumCategories; count++ {
		total += len(idx.StatesFilledCount(count))
	}
	if total != len(states) {
		t.Errorf("sum over filled-counts = %d, want %d", total, len(states))
	}
}

func TestStatesFilledCountZeroIsInitialOnly(t *testing.T) {
	idx := NewStateIndex(GenerateAllStates())
	zero := idx.StatesFilledCount(0)
	if len(zero) != 1 {
		t.Fatalf("len(StatesFilledCount(0)) = %d, want 1", len(zero))
	}
	s, err := idx.State(zero[0])
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if s != NewState() {
		t.Errorf("the sole zero-filled state is not the initial state")
	}
}
