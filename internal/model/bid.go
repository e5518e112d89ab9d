package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is an accepted monetary offer on an auction.  A bid is created only
// as a side effect of a successful bid placement and is immutable once
// appended to its auction's history.
//
// Fields:
//
//	ID        – opaque uuid assigned at acceptance.
//	AuctionID – auction this bid belongs to.
//	UserID    – bidder.
//	Amount    – offered price; strictly greater than the auction's
//	            current price at acceptance time.
//	BidTime   – wall-clock time of acceptance.
type Bid struct {
	ID        string          `json:"id"`
	AuctionID string          `json:"auction_id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	BidTime   time.Time       `json:"bid_time"`
}
