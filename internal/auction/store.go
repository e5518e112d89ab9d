package auction

import (
	"context"
	"errors"
	"time"

	"github.com/ArtEcommercePlatform/auction-service/internal/model"
)

// ErrVersionConflict is returned by a Store when a version-conditioned
// write affects no rows because the auction changed since it was read.
// PlaceBid retries on it; the sweep leaves the auction for the next tick.
var ErrVersionConflict = errors.New("auction was modified concurrently")

// Store is the persistence port consumed by the service.  Each auction
// record is the unit of consistency: Update and AppendBid must be
// conditioned on the auction's Version as read, failing with
// ErrVersionConflict when it has moved on.  Lookups that find nothing
// return ErrAuctionNotFound.
type Store interface {
	// Create persists a new auction with its initial version.
	Create(ctx context.Context, a *model.Auction) error

	// FindByID loads an auction with its full bid history.
	FindByID(ctx context.Context, id string) (*model.Auction, error)

	// Update persists the auction's mutable fields conditioned on
	// a.Version and increments it on success.
	Update(ctx context.Context, a *model.Auction) error

	// AppendBid atomically inserts the bid and persists the auction's
	// new current price, conditioned on a.Version.  The bid must never
	// be visible without the price change, or vice versa.
	AppendBid(ctx context.Context, a *model.Auction, b *model.Bid) error

	// FindActive returns ACTIVE auctions whose window contains now.
	FindActive(ctx context.Context, now time.Time) ([]model.Auction, error)

	// FindExpiredActive returns ACTIVE auctions whose end time has passed.
	FindExpiredActive(ctx context.Context, now time.Time) ([]model.Auction, error)

	// FindPendingDue returns PENDING auctions whose start time has been
	// reached but whose end time has not passed.
	FindPendingDue(ctx context.Context, now time.Time) ([]model.Auction, error)

	// FindByArtist returns the artist's auctions in any of the given statuses.
	FindByArtist(ctx context.Context, artistID string, statuses []model.AuctionStatus) ([]model.Auction, error)

	// FindByStatus returns all auctions in the given status.
	FindByStatus(ctx context.Context, status model.AuctionStatus) ([]model.Auction, error)

	// FindByStatusAndWinner returns auctions in the given status won by winnerID.
	FindByStatusAndWinner(ctx context.Context, status model.AuctionStatus, winnerID string) ([]model.Auction, error)
}
