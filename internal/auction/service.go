package auction

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ArtEcommercePlatform/auction-service/internal/model"
)

// MaxAuctionDuration caps how far an auction's end time may lie beyond
// its start time.  Requested end times past the cap are silently clamped
// at creation and update, not rejected.
const MaxAuctionDuration = 30 * 24 * time.Hour

// placeBidAttempts bounds how often PlaceBid re-reads and re-validates
// after a version conflict before surfacing it.
const placeBidAttempts = 3

// AuctionInput carries the caller-supplied fields for creating or
// updating an auction.
type AuctionInput struct {
	Title         string
	Description   string
	ArtworkID     string
	ArtistID      string
	StartingPrice decimal.Decimal
	StartTime     time.Time
	EndTime       time.Time
}

// Service owns auction lifecycle transitions and the bid ledger.  All
// mutations go through the Store's version-conditioned writes, so two
// concurrent operations on the same auction can never both commit
// against a stale read.
type Service struct {
	store Store
	clock Clock
}

// NewService returns a Service over the given store.  A nil clock
// defaults to the real wall clock.
func NewService(store Store, clock Clock) *Service {
	if clock == nil {
		clock = RealClock()
	}
	return &Service{store: store, clock: clock}
}

// CreateAuction validates the input and persists a new auction.  The
// effective end time is min(requested, start + MaxAuctionDuration).  The
// auction starts PENDING when its start time is in the future and ACTIVE
// otherwise; the current price starts at the starting price with an
// empty bid history and payment status PENDING.
func (s *Service) CreateAuction(ctx context.Context, in AuctionInput) (*model.Auction, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	status := model.AuctionStatusActive
	if in.StartTime.After(now) {
		status = model.AuctionStatusPending
	}
	a := &model.Auction{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(in.Title),
		Description:   in.Description,
		ArtworkID:     in.ArtworkID,
		ArtistID:      in.ArtistID,
		StartingPrice: in.StartingPrice,
		CurrentPrice:  in.StartingPrice,
		StartTime:     in.StartTime,
		EndTime:       capEndTime(in.StartTime, in.EndTime),
		Status:        status,
		PaymentStatus: model.PaymentStatusPending,
		Bids:          []model.Bid{},
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create auction: %w", err)
	}
	log.Printf("auction created: %s (artwork %s, ends %s)", a.ID, a.ArtworkID, a.EndTime.Format(time.RFC3339))
	return a, nil
}

// UpdateAuctionDetails replaces the auction's details while it is still
// PENDING.  The same validation and end-time capping as creation apply
// and the current price is re-derived from the new starting price; the
// (necessarily empty) bid history is untouched.
func (s *Service) UpdateAuctionDetails(ctx context.Context, id string, in AuctionInput) (*model.Auction, error) {
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != model.AuctionStatusPending {
		return nil, ErrInvalidStateTransition
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	a.Title = strings.TrimSpace(in.Title)
	a.Description = in.Description
	a.ArtworkID = in.ArtworkID
	a.StartingPrice = in.StartingPrice
	a.CurrentPrice = in.StartingPrice
	a.StartTime = in.StartTime
	a.EndTime = capEndTime(in.StartTime, in.EndTime)
	a.UpdatedAt = s.clock.Now()
	if err := s.store.Update(ctx, a); err != nil {
		return nil, err
	}
	log.Printf("auction updated: %s", a.ID)
	return a, nil
}

// ExtendAuctionTime pushes an ACTIVE auction's end time back by the given
// number of minutes.  The 30-day cap is intentionally not re-applied on
// extension.
func (s *Service) ExtendAuctionTime(ctx context.Context, id string, minutes int64) (*model.Auction, error) {
	if minutes <= 0 {
		return nil, fmt.Errorf("%w: extension minutes must be positive", ErrInvalidArgument)
	}
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != model.AuctionStatusActive {
		return nil, ErrInvalidStateTransition
	}
	a.EndTime = a.EndTime.Add(time.Duration(minutes) * time.Minute)
	a.UpdatedAt = s.clock.Now()
	if err := s.store.Update(ctx, a); err != nil {
		return nil, err
	}
	log.Printf("auction %s extended by %d minutes, new end %s", a.ID, minutes, a.EndTime.Format(time.RFC3339))
	return a, nil
}

// CancelAuction moves a PENDING or ACTIVE auction to CANCELLED.  Once
// terminal, a second cancel fails.
func (s *Service) CancelAuction(ctx context.Context, id string) error {
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !a.Status.CanTransitionTo(model.AuctionStatusCancelled) {
		return ErrInvalidStateTransition
	}
	a.Status = model.AuctionStatusCancelled
	a.UpdatedAt = s.clock.Now()
	if err := s.store.Update(ctx, a); err != nil {
		return err
	}
	log.Printf("auction cancelled: %s", a.ID)
	return nil
}

// PlaceBid validates and applies a bid.  Preconditions are checked in
// order, each with its own failure: the auction must exist, be ACTIVE,
// the wall clock must lie within the bidding window, the amount must
// strictly exceed the current price, and the bidder must not be the
// owning artist.  On success a fresh bid is appended and the current
// price raised to the bid amount in one atomic write.  A version
// conflict triggers a bounded re-read and re-validation, so a bid can
// never commit against a price or status it has not seen.
func (s *Service) PlaceBid(ctx context.Context, auctionID, userID string, amount decimal.Decimal) (*model.Auction, error) {
	for attempt := 0; attempt < placeBidAttempts; attempt++ {
		a, err := s.store.FindByID(ctx, auctionID)
		if err != nil {
			return nil, err
		}
		if err := s.validateBid(a, userID, amount); err != nil {
			return nil, err
		}
		now := s.clock.Now()
		bid := model.Bid{
			ID:        uuid.NewString(),
			AuctionID: a.ID,
			UserID:    userID,
			Amount:    amount,
			BidTime:   now,
		}
		a.Bids = append(a.Bids, bid)
		a.CurrentPrice = amount
		a.UpdatedAt = now
		if err := s.store.AppendBid(ctx, a, &bid); err != nil {
			if errors.Is(err, ErrVersionConflict) {
				continue
			}
			return nil, err
		}
		log.Printf("bid placed on auction %s by user %s for %s", a.ID, userID, amount.String())
		return a, nil
	}
	return nil, fmt.Errorf("place bid: gave up after %d attempts: %w", placeBidAttempts, ErrVersionConflict)
}

func (s *Service) validateBid(a *model.Auction, userID string, amount decimal.Decimal) error {
	if a.Status != model.AuctionStatusActive {
		return ErrAuctionNotActive
	}
	if !a.WithinWindow(s.clock.Now()) {
		return ErrOutOfWindow
	}
	if amount.Cmp(a.CurrentPrice) <= 0 {
		return fmt.Errorf("%w: current price is %s", ErrInsufficientBid, a.CurrentPrice.String())
	}
	if userID == a.ArtistID {
		return ErrSelfBid
	}
	return nil
}

// GetAuction loads a single auction with its bid history.
func (s *Service) GetAuction(ctx context.Context, id string) (*model.Auction, error) {
	return s.store.FindByID(ctx, id)
}

// GetBidHistory returns the auction's bids ordered most-recent-first.
func (s *Service) GetBidHistory(ctx context.Context, auctionID string) ([]model.Bid, error) {
	a, err := s.store.FindByID(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	// History is stored oldest first; reverse into a fresh slice.
	out := make([]model.Bid, 0, len(a.Bids))
	for i := len(a.Bids) - 1; i >= 0; i-- {
		out = append(out, a.Bids[i])
	}
	return out, nil
}

// GetActiveAuctions returns auctions currently open for bidding.
func (s *Service) GetActiveAuctions(ctx context.Context) ([]model.Auction, error) {
	return s.store.FindActive(ctx, s.clock.Now())
}

// GetAuctionsByArtist returns the artist's non-cancelled auctions.
func (s *Service) GetAuctionsByArtist(ctx context.Context, artistID string) ([]model.Auction, error) {
	return s.store.FindByArtist(ctx, artistID, []model.AuctionStatus{
		model.AuctionStatusPending,
		model.AuctionStatusActive,
		model.AuctionStatusCompleted,
	})
}

// GetCompletedAuctions returns the completed view of all closed auctions.
func (s *Service) GetCompletedAuctions(ctx context.Context) ([]model.CompletedAuction, error) {
	auctions, err := s.store.FindByStatus(ctx, model.AuctionStatusCompleted)
	if err != nil {
		return nil, err
	}
	return completedViews(auctions), nil
}

// GetCompletedAuctionsByWinner returns closed auctions won by the given user.
func (s *Service) GetCompletedAuctionsByWinner(ctx context.Context, winnerID string) ([]model.CompletedAuction, error) {
	auctions, err := s.store.FindByStatusAndWinner(ctx, model.AuctionStatusCompleted, winnerID)
	if err != nil {
		return nil, err
	}
	return completedViews(auctions), nil
}

func completedViews(auctions []model.Auction) []model.CompletedAuction {
	out := make([]model.CompletedAuction, 0, len(auctions))
	for i := range auctions {
		out = append(out, auctions[i].CompletedView())
	}
	return out
}

func validateInput(in AuctionInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	if in.ArtworkID == "" {
		return fmt.Errorf("%w: artwork_id is required", ErrInvalidArgument)
	}
	if in.ArtistID == "" {
		return fmt.Errorf("%w: artist_id is required", ErrInvalidArgument)
	}
	if in.StartingPrice.Sign() <= 0 {
		return fmt.Errorf("%w: starting price must be positive", ErrInvalidArgument)
	}
	if !in.StartTime.Before(in.EndTime) {
		return ErrInvalidSchedule
	}
	return nil
}

// capEndTime clamps the requested end time at start + MaxAuctionDuration.
func capEndTime(start, requested time.Time) time.Time {
	max := start.Add(MaxAuctionDuration)
	if requested.After(max) {
		return max
	}
	return requested
}
