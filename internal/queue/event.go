// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records settled auctions.
package queue

import (
	"time"

	"github.com/ArtEcommercePlatform/auction-service/internal/model"
)

// AuctionClosedQueue is the durable queue carrying closure events from
// the sweep to the payment side of the platform.
const AuctionClosedQueue = "auction.closed"

// AuctionClosedEvent is published once per auction closed by the sweep.
// It carries enough for downstream settlement and analytics to proceed
// without querying the primary database.  WinnerID is empty when the
// auction closed without bids.
type AuctionClosedEvent struct {
	AuctionID     string `json:"auction_id"`
	Title         string `json:"title"`
	ArtworkID     string `json:"artwork_id"`
	ArtistID      string `json:"artist_id"`
	WinnerID      string `json:"winner_id,omitempty"`
	FinalPrice    string `json:"final_price"`
	BidCount      int    `json:"bid_count"`
	PaymentStatus string `json:"payment_status"`
	EndTime       string `json:"end_time"`
	ClosedAt      string `json:"closed_at"`
}

// NewAuctionClosedEvent projects a freshly closed auction into its event
// payload.
func NewAuctionClosedEvent(a model.Auction) AuctionClosedEvent {
	ev := AuctionClosedEvent{
		AuctionID:     a.ID,
		Title:         a.Title,
		ArtworkID:     a.ArtworkID,
		ArtistID:      a.ArtistID,
		FinalPrice:    a.CurrentPrice.String(),
		BidCount:      len(a.Bids),
		PaymentStatus: string(a.PaymentStatus),
		EndTime:       a.EndTime.UTC().Format(time.RFC3339),
		ClosedAt:      a.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if a.WinnerID != nil {
		ev.WinnerID = *a.WinnerID
	}
	return ev
}
