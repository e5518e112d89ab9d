package model

import "testing"

func TestAuctionStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to AuctionStatus
		allowed  bool
	}{
		{AuctionStatusPending, AuctionStatusActive, true},
		{AuctionStatusPending, AuctionStatusCancelled, true},
		{AuctionStatusPending, AuctionStatusCompleted, false},
		{AuctionStatusActive, AuctionStatusCompleted, true},
		{AuctionStatusActive, AuctionStatusCancelled, true},
		{AuctionStatusActive, AuctionStatusPending, false},
		{AuctionStatusCompleted, AuctionStatusActive, false},
		{AuctionStatusCompleted, AuctionStatusCancelled, false},
		{AuctionStatusCancelled, AuctionStatusActive, false},
		{AuctionStatusCancelled, AuctionStatusCompleted, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.allowed {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.allowed)
		}
	}
}

func TestAuctionStatusTerminal(t *testing.T) {
	if AuctionStatusPending.Terminal() || AuctionStatusActive.Terminal() {
		t.Error("PENDING and ACTIVE are not terminal")
	}
	if !AuctionStatusCompleted.Terminal() || !AuctionStatusCancelled.Terminal() {
		t.Error("COMPLETED and CANCELLED are terminal")
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []AuctionStatus{AuctionStatusPending, AuctionStatusActive, AuctionStatusCompleted, AuctionStatusCancelled} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if AuctionStatus("OPEN").Valid() {
		t.Error("free-form status strings must not validate")
	}
	if PaymentStatus("SETTLED").Valid() {
		t.Error("unknown payment status must not validate")
	}
}
