package auction

import (
	"context"
	"log"
	"time"

	"github.com/ArtEcommercePlatform/auction-service/internal/model"
)

// ActivateDue promotes PENDING auctions whose start time has been reached
// to ACTIVE.  Version conflicts are skipped; the auction is picked up
// again on the next tick.  It returns how many auctions were activated.
func (s *Service) ActivateDue(ctx context.Context) (int, error) {
	now := s.clock.Now()
	due, err := s.store.FindPendingDue(ctx, now)
	if err != nil {
		return 0, err
	}
	activated := 0
	for i := range due {
		a := &due[i]
		a.Status = model.AuctionStatusActive
		a.UpdatedAt = now
		if err := s.store.Update(ctx, a); err != nil {
			log.Printf("sweep: activate %s failed, retrying next tick: %v", a.ID, err)
			continue
		}
		activated++
	}
	return activated, nil
}

// CloseExpired closes every ACTIVE auction whose end time has passed.
// Each auction is closed atomically: status, winner and version move
// together or not at all.  When the bid history is non-empty the winner
// is the user of the last-appended bid, which holds the highest price
// since the price only ever increases.  A failed update is not retried
// here; the auction stays ACTIVE and falls into the next tick's query,
// while already-COMPLETED auctions drop out of it, making the sweep
// idempotent.  The closed auctions are returned for event publication.
func (s *Service) CloseExpired(ctx context.Context) ([]model.Auction, error) {
	now := s.clock.Now()
	expired, err := s.store.FindExpiredActive(ctx, now)
	if err != nil {
		return nil, err
	}
	closed := make([]model.Auction, 0, len(expired))
	for i := range expired {
		a := &expired[i]
		a.Status = model.AuctionStatusCompleted
		if hb := a.HighestBid(); hb != nil {
			winner := hb.UserID
			a.WinnerID = &winner
		}
		a.UpdatedAt = now
		if err := s.store.Update(ctx, a); err != nil {
			log.Printf("sweep: close %s failed, retrying next tick: %v", a.ID, err)
			continue
		}
		log.Printf("auction closed: %s (winner=%v, final=%s)", a.ID, winnerOrNone(a), a.CurrentPrice.String())
		closed = append(closed, *a)
	}
	return closed, nil
}

func winnerOrNone(a *model.Auction) string {
	if a.WinnerID == nil {
		return "none"
	}
	return *a.WinnerID
}

// Sweeper drives the periodic sweep.  The actual trigger is injected:
// production runs the ticker loop in Run, tests call Tick directly.
type Sweeper struct {
	svc      *Service
	interval time.Duration

	// OnClosed, when set, is invoked once per closed auction after a
	// tick.  Publication failures must not affect the sweep result.
	OnClosed func(ctx context.Context, a model.Auction)
}

// NewSweeper returns a Sweeper ticking at the given interval.  Intervals
// above a minute widen the window in which an expired auction still
// accepts the out-of-window check to reject bids, so anything larger is
// clamped to a minute.
func NewSweeper(svc *Service, interval time.Duration) *Sweeper {
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	return &Sweeper{svc: svc, interval: interval}
}

// Tick performs one sweep pass: activate due auctions, then close
// expired ones and hand them to OnClosed.
func (w *Sweeper) Tick(ctx context.Context) error {
	if _, err := w.svc.ActivateDue(ctx); err != nil {
		return err
	}
	closed, err := w.svc.CloseExpired(ctx)
	if err != nil {
		return err
	}
	if w.OnClosed != nil {
		for i := range closed {
			w.OnClosed(ctx, closed[i])
		}
	}
	return nil
}

// Run ticks until the context is cancelled.  Errors are logged and the
// loop keeps going; a failed pass is simply retried on the next tick.
func (w *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Tick(ctx); err != nil {
				log.Printf("sweep: tick failed: %v", err)
			}
		}
	}
}
