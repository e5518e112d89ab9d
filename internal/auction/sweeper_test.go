package auction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ArtEcommercePlatform/auction-service/internal/model"
)

func TestSweep_FullLifecycleScenario(t *testing.T) {
	clock := newFakeClock(testEpoch)
	store := newMockStore()
	svc := NewService(store, clock)

	// create auction (start=now, end=now+7d, startingPrice=100)
	a, err := svc.CreateAuction(context.Background(), validInput(clock))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// bid 150 by user A succeeds
	if _, err := svc.PlaceBid(context.Background(), a.ID, "user-a", dec("150")); err != nil {
		t.Fatalf("bid 150 failed: %v", err)
	}
	// bid 120 by user B fails
	if _, err := svc.PlaceBid(context.Background(), a.ID, "user-b", dec("120")); !errors.Is(err, ErrInsufficientBid) {
		t.Fatalf("expected ErrInsufficientBid, got %v", err)
	}

	// advance past the end time and sweep
	clock.Advance(8 * 24 * time.Hour)
	closed, err := svc.CloseExpired(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(closed) != 1 {
		t.Fatalf("expected 1 closed auction, got %d", len(closed))
	}

	got, _ := svc.GetAuction(context.Background(), a.ID)
	if got.Status != model.AuctionStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", got.Status)
	}
	if got.WinnerID == nil || *got.WinnerID != "user-a" {
		t.Errorf("expected winner user-a, got %v", got.WinnerID)
	}
	if !got.CurrentPrice.Equal(dec("150")) {
		t.Errorf("expected final price 150, got %s", got.CurrentPrice)
	}
	// The winning bid is the last-appended one and holds the final price.
	hb := got.HighestBid()
	if hb == nil || hb.UserID != "user-a" || !hb.Amount.Equal(got.CurrentPrice) {
		t.Errorf("highest bid inconsistent with winner: %+v", hb)
	}
}

func TestSweep_NoBidsMeansNoWinner(t *testing.T) {
	clock := newFakeClock(testEpoch)
	svc := NewService(newMockStore(), clock)

	a, _ := svc.CreateAuction(context.Background(), validInput(clock))
	clock.Advance(8 * 24 * time.Hour)
	if _, err := svc.CloseExpired(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	got, _ := svc.GetAuction(context.Background(), a.ID)
	if got.Status != model.AuctionStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", got.Status)
	}
	if got.WinnerID != nil {
		t.Errorf("expected no winner, got %s", *got.WinnerID)
	}
}

func TestSweep_Idempotent(t *testing.T) {
	clock := newFakeClock(testEpoch)
	svc := NewService(newMockStore(), clock)

	svc.CreateAuction(context.Background(), validInput(clock))
	clock.Advance(8 * 24 * time.Hour)

	first, err := svc.CloseExpired(context.Background())
	if err != nil {
		t.Fatalf("first sweep failed: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 closure on first sweep, got %d", len(first))
	}
	// Completed auctions drop out of the expired query.
	second, err := svc.CloseExpired(context.Background())
	if err != nil {
		t.Fatalf("second sweep failed: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("expected no closures on second sweep, got %d", len(second))
	}
}

func TestSweep_SkipsUnexpiredAndCancelled(t *testing.T) {
	clock := newFakeClock(testEpoch)
	svc := NewService(newMockStore(), clock)

	open, _ := svc.CreateAuction(context.Background(), validInput(clock))
	cancelled, _ := svc.CreateAuction(context.Background(), validInput(clock))
	svc.CancelAuction(context.Background(), cancelled.ID)

	clock.Advance(time.Hour)
	closed, err := svc.CloseExpired(context.Background())
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(closed) != 0 {
		t.Errorf("expected no closures, got %d", len(closed))
	}
	got, _ := svc.GetAuction(context.Background(), open.ID)
	if got.Status != model.AuctionStatusActive {
		t.Errorf("open auction should stay ACTIVE, got %s", got.Status)
	}
	got, _ = svc.GetAuction(context.Background(), cancelled.ID)
	if got.Status != model.AuctionStatusCancelled {
		t.Errorf("cancelled auction must not close, got %s", got.Status)
	}
}

func TestActivateDue_PromotesPending(t *testing.T) {
	clock := newFakeClock(testEpoch)
	svc := NewService(newMockStore(), clock)

	in := validInput(clock)
	in.StartTime = clock.Now().Add(time.Hour)
	in.EndTime = in.StartTime.Add(24 * time.Hour)
	a, _ := svc.CreateAuction(context.Background(), in)

	// Before the start time nothing happens.
	n, err := svc.ActivateDue(context.Background())
	if err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 activations, got %d", n)
	}

	clock.Advance(2 * time.Hour)
	n, err = svc.ActivateDue(context.Background())
	if err != nil {
		t.Fatalf("activate failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 activation, got %d", n)
	}
	got, _ := svc.GetAuction(context.Background(), a.ID)
	if got.Status != model.AuctionStatusActive {
		t.Errorf("expected ACTIVE, got %s", got.Status)
	}
}

func TestSweeperTick_PublishesClosedAuctions(t *testing.T) {
	clock := newFakeClock(testEpoch)
	svc := NewService(newMockStore(), clock)

	a, _ := svc.CreateAuction(context.Background(), validInput(clock))
	svc.PlaceBid(context.Background(), a.ID, "user-a", dec("150"))

	var published []model.Auction
	w := NewSweeper(svc, time.Second)
	w.OnClosed = func(_ context.Context, closed model.Auction) {
		published = append(published, closed)
	}

	clock.Advance(8 * 24 * time.Hour)
	if err := w.Tick(context.Background()); err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if len(published) != 1 {
		t.Fatalf("expected 1 published closure, got %d", len(published))
	}
	if published[0].ID != a.ID || published[0].WinnerID == nil || *published[0].WinnerID != "user-a" {
		t.Errorf("unexpected published auction: %+v", published[0])
	}

	// A second tick closes nothing, so nothing more is published.
	if err := w.Tick(context.Background()); err != nil {
		t.Fatalf("second tick failed: %v", err)
	}
	if len(published) != 1 {
		t.Errorf("expected still 1 published closure, got %d", len(published))
	}
}
