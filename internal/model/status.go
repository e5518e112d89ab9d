package model

// AuctionStatus is the closed set of lifecycle states an auction can be in.
// Status values are stored as upper-case strings but must never be compared
// as free-form text; use the transition helpers below.
type AuctionStatus string

const (
	AuctionStatusPending   AuctionStatus = "PENDING"   // scheduled, start time not reached
	AuctionStatusActive    AuctionStatus = "ACTIVE"    // accepting bids
	AuctionStatusCompleted AuctionStatus = "COMPLETED" // closed by the sweep, terminal
	AuctionStatusCancelled AuctionStatus = "CANCELLED" // cancelled by the artist, terminal
)

// Valid reports whether s is one of the known auction statuses.
func (s AuctionStatus) Valid() bool {
	switch s {
	case AuctionStatusPending, AuctionStatusActive, AuctionStatusCompleted, AuctionStatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transitions are allowed out of s.
func (s AuctionStatus) Terminal() bool {
	return s == AuctionStatusCompleted || s == AuctionStatusCancelled
}

// CanTransitionTo enumerates the legal edges of the auction state machine:
//
//	PENDING -> ACTIVE     (start time reached)
//	PENDING -> CANCELLED  (cancelled before start)
//	ACTIVE  -> CANCELLED  (cancelled mid-auction)
//	ACTIVE  -> COMPLETED  (closed by the sweep)
//
// Everything else is rejected.
func (s AuctionStatus) CanTransitionTo(next AuctionStatus) bool {
	switch s {
	case AuctionStatusPending:
		return next == AuctionStatusActive || next == AuctionStatusCancelled
	case AuctionStatusActive:
		return next == AuctionStatusCompleted || next == AuctionStatusCancelled
	default:
		return false
	}
}

// PaymentStatus tracks the settlement state of a completed auction.  The
// auction service only records the status; settlement itself is handled by
// the payment service.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// Valid reports whether p is one of the known payment statuses.
func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}
