// Package repository implements the auction Store port on MySQL.  Two
// tables back the aggregate:
//
//	auctions(id CHAR(36) PK, title, description, artwork_id, artist_id,
//	         starting_price DECIMAL(12,2), current_price DECIMAL(12,2),
//	         start_time DATETIME, end_time DATETIME, status VARCHAR(16),
//	         payment_status VARCHAR(16), winner_id CHAR(36) NULL,
//	         version BIGINT, created_at DATETIME, updated_at DATETIME)
//	bids(id CHAR(36) PK, auction_id CHAR(36) REFERENCES auctions,
//	     user_id CHAR(36), amount DECIMAL(12,2), bid_time DATETIME)
//
// Every mutating statement is conditioned on the auction's version so a
// write against a stale read affects zero rows and surfaces as
// auction.ErrVersionConflict.  All timestamps are stored in UTC.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ArtEcommercePlatform/auction-service/internal/auction"
	"github.com/ArtEcommercePlatform/auction-service/internal/model"
)

// auctionColumns is the select list shared by every auction query.
const auctionColumns = `id, title, description, artwork_id, artist_id,
       starting_price, current_price, start_time, end_time,
       status, payment_status, winner_id, version, created_at, updated_at`

// AuctionRepo provides persistence for auctions and their embedded bids.
type AuctionRepo struct {
	db *sql.DB
}

// NewAuctionRepo returns an AuctionRepo bound to the given database.
func NewAuctionRepo(db *sql.DB) *AuctionRepo { return &AuctionRepo{db: db} }

// Create inserts a new auction row.  The auction carries no bids yet.
func (r *AuctionRepo) Create(ctx context.Context, a *model.Auction) error {
	const q = `INSERT INTO auctions
        (id, title, description, artwork_id, artist_id,
         starting_price, current_price, start_time, end_time,
         status, payment_status, winner_id, version, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.Title, a.Description, a.ArtworkID, a.ArtistID,
		a.StartingPrice, a.CurrentPrice, a.StartTime.UTC(), a.EndTime.UTC(),
		string(a.Status), string(a.PaymentStatus), a.WinnerID, a.Version,
		a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert auction: %w", err)
	}
	return nil
}

// FindByID loads a single auction together with its bid history in
// chronological order.  Returns auction.ErrAuctionNotFound when no row
// exists.
func (r *AuctionRepo) FindByID(ctx context.Context, id string) (*model.Auction, error) {
	const q = `SELECT ` + auctionColumns + ` FROM auctions WHERE id = ?`
	a, err := scanAuction(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auction.ErrAuctionNotFound
		}
		return nil, fmt.Errorf("query auction: %w", err)
	}
	if err := r.loadBids(ctx, []*model.Auction{a}); err != nil {
		return nil, err
	}
	return a, nil
}

// Update persists the auction's mutable fields conditioned on its
// version.  Zero affected rows means the row moved on since it was read
// and the call fails with auction.ErrVersionConflict.  On success the
// in-memory version is incremented to match the row.
func (r *AuctionRepo) Update(ctx context.Context, a *model.Auction) error {
	const q = `UPDATE auctions
        SET title = ?, description = ?, artwork_id = ?,
            starting_price = ?, current_price = ?,
            start_time = ?, end_time = ?,
            status = ?, payment_status = ?, winner_id = ?,
            version = version + 1, updated_at = ?
        WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, q,
		a.Title, a.Description, a.ArtworkID,
		a.StartingPrice, a.CurrentPrice,
		a.StartTime.UTC(), a.EndTime.UTC(),
		string(a.Status), string(a.PaymentStatus), a.WinnerID,
		a.UpdatedAt.UTC(),
		a.ID, a.Version,
	)
	if err != nil {
		return fmt.Errorf("update auction: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return auction.ErrVersionConflict
	}
	a.Version++
	return nil
}

// AppendBid inserts the bid and raises the auction's current price in a
// single transaction conditioned on the auction's version.  Either both
// land or neither does.
func (r *AuctionRepo) AppendBid(ctx context.Context, a *model.Auction, b *model.Bid) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	const upd = `UPDATE auctions
        SET current_price = ?, version = version + 1, updated_at = ?
        WHERE id = ? AND version = ? AND status = 'ACTIVE'`
	res, err := tx.ExecContext(ctx, upd, a.CurrentPrice, a.UpdatedAt.UTC(), a.ID, a.Version)
	if err != nil {
		return fmt.Errorf("update auction price: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return auction.ErrVersionConflict
	}

	const ins = `INSERT INTO bids (id, auction_id, user_id, amount, bid_time)
        VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, ins, b.ID, b.AuctionID, b.UserID, b.Amount, b.BidTime.UTC()); err != nil {
		return fmt.Errorf("insert bid: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bid: %w", err)
	}
	a.Version++
	return nil
}

// FindActive returns ACTIVE auctions whose window contains now.
func (r *AuctionRepo) FindActive(ctx context.Context, now time.Time) ([]model.Auction, error) {
	const q = `SELECT ` + auctionColumns + ` FROM auctions
        WHERE status = 'ACTIVE' AND start_time <= ? AND end_time >= ?
        ORDER BY end_time ASC`
	return r.queryAuctions(ctx, q, now.UTC(), now.UTC())
}

// FindExpiredActive returns ACTIVE auctions whose end time has passed.
// COMPLETED auctions never match, which keeps the closure sweep idempotent.
func (r *AuctionRepo) FindExpiredActive(ctx context.Context, now time.Time) ([]model.Auction, error) {
	const q = `SELECT ` + auctionColumns + ` FROM auctions
        WHERE status = 'ACTIVE' AND end_time < ?
        ORDER BY end_time ASC`
	return r.queryAuctions(ctx, q, now.UTC())
}

// FindPendingDue returns PENDING auctions whose start time has been
// reached and whose end time has not yet passed.
func (r *AuctionRepo) FindPendingDue(ctx context.Context, now time.Time) ([]model.Auction, error) {
	const q = `SELECT ` + auctionColumns + ` FROM auctions
        WHERE status = 'PENDING' AND start_time <= ? AND end_time > ?
        ORDER BY start_time ASC`
	return r.queryAuctions(ctx, q, now.UTC(), now.UTC())
}

// FindByArtist returns the artist's auctions in any of the given statuses,
// newest first.
func (r *AuctionRepo) FindByArtist(ctx context.Context, artistID string, statuses []model.AuctionStatus) ([]model.Auction, error) {
	if len(statuses) == 0 {
		return []model.Auction{}, nil
	}
	placeholders := make([]string, 0, len(statuses))
	args := make([]interface{}, 0, len(statuses)+1)
	args = append(args, artistID)
	for _, st := range statuses {
		placeholders = append(placeholders, "?")
		args = append(args, string(st))
	}
	q := `SELECT ` + auctionColumns + ` FROM auctions
        WHERE artist_id = ? AND status IN (` + strings.Join(placeholders, ",") + `)
        ORDER BY created_at DESC`
	return r.queryAuctions(ctx, q, args...)
}

// FindByStatus returns all auctions in the given status, newest first.
func (r *AuctionRepo) FindByStatus(ctx context.Context, status model.AuctionStatus) ([]model.Auction, error) {
	const q = `SELECT ` + auctionColumns + ` FROM auctions
        WHERE status = ? ORDER BY end_time DESC`
	return r.queryAuctions(ctx, q, string(status))
}

// FindByStatusAndWinner returns auctions in the given status won by winnerID.
func (r *AuctionRepo) FindByStatusAndWinner(ctx context.Context, status model.AuctionStatus, winnerID string) ([]model.Auction, error) {
	const q = `SELECT ` + auctionColumns + ` FROM auctions
        WHERE status = ? AND winner_id = ? ORDER BY end_time DESC`
	return r.queryAuctions(ctx, q, string(status), winnerID)
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAuction(row rowScanner) (*model.Auction, error) {
	var a model.Auction
	var status, payment string
	var winner sql.NullString
	if err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.ArtworkID, &a.ArtistID,
		&a.StartingPrice, &a.CurrentPrice, &a.StartTime, &a.EndTime,
		&status, &payment, &winner, &a.Version, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.Status = model.AuctionStatus(status)
	a.PaymentStatus = model.PaymentStatus(payment)
	if winner.Valid {
		w := winner.String
		a.WinnerID = &w
	}
	a.Bids = []model.Bid{}
	return &a, nil
}

// queryAuctions runs a multi-row auction query and populates each
// auction's bid history with a single follow-up query.
func (r *AuctionRepo) queryAuctions(ctx context.Context, q string, args ...interface{}) ([]model.Auction, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query auctions: %w", err)
	}
	defer rows.Close()

	auctions := make([]model.Auction, 0)
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan auction: %w", err)
		}
		auctions = append(auctions, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(auctions) == 0 {
		return auctions, nil
	}
	refs := make([]*model.Auction, len(auctions))
	for i := range auctions {
		refs[i] = &auctions[i]
	}
	if err := r.loadBids(ctx, refs); err != nil {
		return nil, err
	}
	return auctions, nil
}

// loadBids fetches the bid history for all given auctions in one query
// and appends each bid to its auction in chronological order.
func (r *AuctionRepo) loadBids(ctx context.Context, auctions []*model.Auction) error {
	if len(auctions) == 0 {
		return nil
	}
	index := make(map[string]*model.Auction, len(auctions))
	ids := make([]interface{}, 0, len(auctions))
	placeholders := make([]string, 0, len(auctions))
	for _, a := range auctions {
		index[a.ID] = a
		ids = append(ids, a.ID)
		placeholders = append(placeholders, "?")
	}
	q := `SELECT id, auction_id, user_id, amount, bid_time FROM bids
        WHERE auction_id IN (` + strings.Join(placeholders, ",") + `)
        ORDER BY bid_time ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return fmt.Errorf("query bids: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var b model.Bid
		if err := rows.Scan(&b.ID, &b.AuctionID, &b.UserID, &b.Amount, &b.BidTime); err != nil {
			return fmt.Errorf("scan bid: %w", err)
		}
		if a, ok := index[b.AuctionID]; ok {
			a.Bids = append(a.Bids, b)
		}
	}
	return rows.Err()
}
