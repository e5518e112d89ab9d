// Package auction implements the auction lifecycle state machine and the
// bid ledger.  It validates and applies bids, drives status transitions
// and determines winners at closure.  Persistence is reached through the
// Store port and wall-clock time through the Clock port so that the whole
// package can be exercised without a database or real delays.
package auction

import "errors"

// Request-rejection errors.  Each validation failure aborts the operation
// with no partial mutation; handlers translate these into HTTP status
// codes.  Anything else coming out of the Store is an infrastructure
// error and should be retried by the caller or the next sweep tick.
var (
	// ErrInvalidSchedule is returned when an auction's start time is not
	// strictly before its end time.
	ErrInvalidSchedule = errors.New("start time must be before end time")

	// ErrInvalidStateTransition is returned when an operation is not legal
	// in the auction's current status, e.g. cancelling a completed auction.
	ErrInvalidStateTransition = errors.New("operation not allowed in current auction status")

	// ErrInvalidArgument is returned for malformed inputs such as an empty
	// title, a non-positive starting price or a non-positive extension.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAuctionNotFound is returned when no auction exists for the given id.
	ErrAuctionNotFound = errors.New("auction not found")

	// ErrAuctionNotActive is returned when a bid targets an auction whose
	// status is not ACTIVE.
	ErrAuctionNotActive = errors.New("auction is not active")

	// ErrOutOfWindow is returned when a bid arrives outside the auction's
	// [start, end] window, regardless of status.
	ErrOutOfWindow = errors.New("auction is not within its bidding window")

	// ErrInsufficientBid is returned when a bid does not strictly exceed
	// the auction's current price.
	ErrInsufficientBid = errors.New("bid must exceed the current price")

	// ErrSelfBid is returned when the owning artist tries to bid on their
	// own auction.
	ErrSelfBid = errors.New("artist cannot bid on their own auction")
)
