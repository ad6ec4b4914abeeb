package users

import "testing"

func TestSelectedPairLastWriteWins(t *testing.T) {
	s := NewStore()

	if _, ok := s.Selected(1); ok {
		t.Fatalf("unknown user must have no selection")
	}

	s.Touch(1, "alice")
	if _, ok := s.Selected(1); ok {
		t.Fatalf("registered user without pair must have no selection")
	}

	s.SetPair(1, "EURUSD_otc")
	s.SetPair(1, "BTCUSD_otc")
	pair, ok := s.Selected(1)
	if !ok || pair != "BTCUSD_otc" {
		t.Fatalf("expected last written pair, got %q ok=%v", pair, ok)
	}
}

func TestBlockRemovesUser(t *testing.T) {
	s := NewStore()
	s.Touch(7, "bob")
	s.Block(7)

	if !s.IsBlocked(7) {
		t.Fatalf("user must be blocked")
	}
	if len(s.All()) != 0 {
		t.Fatalf("blocked user must leave the registry")
	}

	s.Unblock(7)
	if s.IsBlocked(7) {
		t.Fatalf("user must be unblocked")
	}
}

func TestAllSorted(t *testing.T) {
	s := NewStore()
	for _, id := range []int64{5, 1, 3} {
		s.Touch(id, "")
	}
	got := s.All()
	want := []int64{1, 3, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("All() = %v, want %v", got, want)
		}
	}
}

func TestStepFlow(t *testing.T) {
	s := NewStore()
	s.Touch(2, "")
	s.SetStep(2, "admin_block")
	if s.Step(2) != "admin_block" {
		t.Fatalf("step not stored")
	}
	s.SetStep(2, "")
	if s.Step(2) != "" {
		t.Fatalf("step not cleared")
	}
}
