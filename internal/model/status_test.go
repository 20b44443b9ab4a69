package model

import "testing"

func TestUnitStatusAdvance_FullChain(t *testing.T) {
	s := UnitStatusPending
	want := []UnitStatus{
		UnitStatusOnTheWay,
		UnitStatusInProgress,
		UnitStatusChecked,
		UnitStatusInstalled,
		UnitStatusFree,
		UnitStatusEmpty,
	}

	for i, expected := range want {
		s = s.Advance()
		if s != expected {
			t.Fatalf("advance %d: expected %d, got %d", i+1, expected, s)
		}
	}

	// A 7th advance stays at Empty.
	if s = s.Advance(); s != UnitStatusEmpty {
		t.Errorf("expected Empty to be terminal for advance, got %d", s)
	}
}

func TestUnitStatusAdvance_SingleStep(t *testing.T) {
	if got := UnitStatusInProgress.Advance(); got != UnitStatusChecked {
		t.Errorf("expected InProgress -> Checked, got %d", got)
	}
}

func TestUnitStatusCancel_Terminal(t *testing.T) {
	s := UnitStatusInstalled.Cancel()
	if s != UnitStatusCanceled {
		t.Fatalf("expected Canceled, got %d", s)
	}
	for i := 0; i < 5; i++ {
		if s = s.Advance(); s != UnitStatusCanceled {
			t.Fatalf("advance %d after cancel: expected Canceled, got %d", i+1, s)
		}
	}
}

func TestUnitStatusLabel(t *testing.T) {
	tests := []struct {
		status UnitStatus
		want   string
	}{
		{UnitStatusPending, "Pending"},
		{UnitStatusOnTheWay, "On the way"},
		{UnitStatusEmpty, "Empty"},
		{UnitStatusCanceled, "Canceled"},
		{UnitStatus(42), "Free"}, // unknown aliases to Free
		{UnitStatus(-1), "Free"},
	}
	for _, tt := range tests {
		if got := tt.status.Label(); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestParseUnitStatus(t *testing.T) {
	if s, ok := ParseUnitStatus(5); !ok || s != UnitStatusFree {
		t.Errorf("expected (Free, true), got (%d, %v)", s, ok)
	}
	if _, ok := ParseUnitStatus(42); ok {
		t.Error("expected out-of-range code to be invalid")
	}
	// The label contract still holds for invalid codes.
	if s, _ := ParseUnitStatus(42); s.Label() != "Free" {
		t.Errorf("expected unknown code to keep Free label, got %q", s.Label())
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusInProgress, OrderStatusEnRoute,
		OrderStatusCompleted, OrderStatusCancelled,
	} {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if OrderStatus("shipped").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}
