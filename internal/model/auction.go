package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Auction represents a timed sale of a single artwork.  It owns its bid
// history: bids only exist embedded in an auction and are appended in
// chronological order, never reordered or removed.
//
// Fields:
//
//	ID            – opaque uuid assigned at creation.
//	Title         – listing title shown to bidders.
//	Description   – free-text description of the artwork.
//	ArtworkID     – reference to the artwork being sold.
//	ArtistID      – user who owns the artwork and created the auction.
//	StartingPrice – minimum price set by the artist (> 0).
//	CurrentPrice  – price of the latest accepted bid; starts at
//	                StartingPrice and never decreases.
//	StartTime     – when bidding opens.
//	EndTime       – when bidding closes (after StartTime, capped at
//	                StartTime + 30 days on creation and update).
//	Status        – lifecycle state, see AuctionStatus.
//	PaymentStatus – settlement state tracked for the payment service.
//	WinnerID      – set only when Status is COMPLETED and at least one
//	                bid was accepted.
//	Bids          – append-only bid history, oldest first.
//	Version       – optimistic concurrency counter; every persisted
//	                mutation must be conditioned on it.
//	CreatedAt     – creation timestamp.
//	UpdatedAt     – last update timestamp.
type Auction struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ArtworkID     string          `json:"artwork_id"`
	ArtistID      string          `json:"artist_id"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	Status        AuctionStatus   `json:"status"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	WinnerID      *string         `json:"winner_id,omitempty"`
	Bids          []Bid           `json:"bids"`
	Version       uint64          `json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// HasBids reports whether at least one bid has been accepted.
func (a *Auction) HasBids() bool {
	return len(a.Bids) > 0
}

// HighestBid returns the bid holding the current price, or nil when no
// bids have been accepted.  Because every accepted bid must exceed the
// current price, the last-appended bid is always the highest one.
func (a *Auction) HighestBid() *Bid {
	if !a.HasBids() {
		return nil
	}
	return &a.Bids[len(a.Bids)-1]
}

// WithinWindow reports whether now falls inside the bidding window
// [StartTime, EndTime].  The window is authoritative: status may lag
// reality between sweep ticks, the window never does.
func (a *Auction) WithinWindow(now time.Time) bool {
	return !now.Before(a.StartTime) && !now.After(a.EndTime)
}

// CompletedAuction is the read view returned for closed auctions.  It
// carries the final price and winner instead of the full bid history.
type CompletedAuction struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ArtworkID     string          `json:"artwork_id"`
	FinalPrice    decimal.Decimal `json:"final_price"`
	WinnerID      *string         `json:"winner_id,omitempty"`
	EndTime       time.Time       `json:"end_time"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
}

// CompletedView projects the auction into its completed read view.
func (a *Auction) CompletedView() CompletedAuction {
	return CompletedAuction{
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		ArtworkID:     a.ArtworkID,
		FinalPrice:    a.CurrentPrice,
		WinnerID:      a.WinnerID,
		EndTime:       a.EndTime,
		PaymentStatus: a.PaymentStatus,
	}
}
