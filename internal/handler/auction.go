package handler // handler package maps HTTP requests onto the auction service

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ArtEcommercePlatform/auction-service/internal/auction"
)

// AuctionHandler exposes the auction service over HTTP.  Handlers only
// parse and bind; every rule lives in the service, and typed service
// errors are translated into status codes by writeError.
type AuctionHandler struct {
	Service *auction.Service
}

// NewAuctionHandler constructs an AuctionHandler.  The service must be non-nil.
func NewAuctionHandler(svc *auction.Service) *AuctionHandler {
	if svc == nil {
		panic("nil service passed to NewAuctionHandler")
	}
	return &AuctionHandler{Service: svc}
}

// auctionBody is the JSON payload for creating or updating an auction.
// Times are RFC3339; the starting price accepts a JSON number or string.
type auctionBody struct {
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	ArtworkID     string          `json:"artwork_id"`
	ArtistID      string          `json:"artist_id"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	StartTime     string          `json:"start_time"`
	EndTime       string          `json:"end_time"`
}

func (b *auctionBody) toInput() (auction.AuctionInput, error) {
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(b.StartTime))
	if err != nil {
		return auction.AuctionInput{}, errors.New("invalid start_time format, expected RFC3339")
	}
	end, err := time.Parse(time.RFC3339, strings.TrimSpace(b.EndTime))
	if err != nil {
		return auction.AuctionInput{}, errors.New("invalid end_time format, expected RFC3339")
	}
	return auction.AuctionInput{
		Title:         b.Title,
		Description:   b.Description,
		ArtworkID:     b.ArtworkID,
		ArtistID:      b.ArtistID,
		StartingPrice: b.StartingPrice,
		StartTime:     start.UTC(),
		EndTime:       end.UTC(),
	}, nil
}

// CreateAuction handles POST /v1/auctions.
func (h *AuctionHandler) CreateAuction(c echo.Context) error {
	var body auctionBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	in, err := body.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	a, err := h.Service.CreateAuction(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, a)
}

// UpdateAuctionDetails handles PUT /v1/auctions/:id.  Only pending
// auctions may be edited.
func (h *AuctionHandler) UpdateAuctionDetails(c echo.Context) error {
	var body auctionBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	in, err := body.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	a, err := h.Service.UpdateAuctionDetails(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// PlaceBid handles POST /v1/auctions/:id/bids.
func (h *AuctionHandler) PlaceBid(c echo.Context) error {
	var body struct {
		UserID string          `json:"user_id"`
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.UserID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id is required"})
	}
	a, err := h.Service.PlaceBid(c.Request().Context(), c.Param("id"), body.UserID, body.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// GetAuction handles GET /v1/auctions/:id.
func (h *AuctionHandler) GetAuction(c echo.Context) error {
	a, err := h.Service.GetAuction(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// GetBidHistory handles GET /v1/auctions/:id/bids, most recent bid first.
func (h *AuctionHandler) GetBidHistory(c echo.Context) error {
	bids, err := h.Service.GetBidHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": bids})
}

// GetActiveAuctions handles GET /v1/auctions/active.
func (h *AuctionHandler) GetActiveAuctions(c echo.Context) error {
	auctions, err := h.Service.GetActiveAuctions(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": auctions})
}

// GetAuctionsByArtist handles GET /v1/auctions/artist/:artist_id.
func (h *AuctionHandler) GetAuctionsByArtist(c echo.Context) error {
	artistID := c.Param("artist_id")
	if artistID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist_id is required"})
	}
	auctions, err := h.Service.GetAuctionsByArtist(c.Request().Context(), artistID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": auctions})
}

// GetCompletedAuctions handles GET /v1/auctions/completed.
func (h *AuctionHandler) GetCompletedAuctions(c echo.Context) error {
	views, err := h.Service.GetCompletedAuctions(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": views})
}

// GetCompletedAuctionsByWinner handles GET /v1/auctions/completed/winner/:winner_id.
func (h *AuctionHandler) GetCompletedAuctionsByWinner(c echo.Context) error {
	winnerID := c.Param("winner_id")
	if winnerID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "winner_id is required"})
	}
	views, err := h.Service.GetCompletedAuctionsByWinner(c.Request().Context(), winnerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": views})
}

// ExtendAuctionTime handles POST /v1/auctions/:id/extend.
func (h *AuctionHandler) ExtendAuctionTime(c echo.Context) error {
	var body struct {
		Minutes int64 `json:"minutes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	a, err := h.Service.ExtendAuctionTime(c.Request().Context(), c.Param("id"), body.Minutes)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, a)
}

// CancelAuction handles POST /v1/auctions/:id/cancel.
func (h *AuctionHandler) CancelAuction(c echo.Context) error {
	if err := h.Service.CancelAuction(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// writeError maps typed service errors onto HTTP status codes.  Every
// unrecognised error is an infrastructure failure and hides behind a 500.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auction.ErrAuctionNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, auction.ErrInvalidSchedule),
		errors.Is(err, auction.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, auction.ErrInvalidStateTransition),
		errors.Is(err, auction.ErrVersionConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, auction.ErrAuctionNotActive),
		errors.Is(err, auction.ErrOutOfWindow),
		errors.Is(err, auction.ErrInsufficientBid),
		errors.Is(err, auction.ErrSelfBid):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
