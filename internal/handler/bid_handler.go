package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gavel/internal/errors"
	"gavel/internal/service"
)

// BidHandler handles bid listing and placement.
type BidHandler struct {
	bidService service.BidService
}

// NewBidHandler creates a new bid handler.
func NewBidHandler(bidService service.BidService) *BidHandler {
	return &BidHandler{bidService: bidService}
}

// PlaceBidRequest represents a bid placement request.
type PlaceBidRequest struct {
	Amount *int `json:"amount" validate:"required"`
}

// List godoc
// @Summary List an auction's bids, highest first
// @Tags bids
// @Produce json
// @Param id path string true "Auction ID"
// @Success 200 {array} model.BidView
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions/{id}/bids [get]
func (h *BidHandler) List(c echo.Context) error {
	id, err := pathID(c, errors.ErrAuctionNotFound)
	if err != nil {
		return err
	}

	bids, err := h.bidService.List(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, bids)
}

// Place godoc
// @Summary Place a bid on an auction
// @Description The first bid must meet the reserve; later bids must strictly exceed the current highest. Sellers cannot bid on their own auction.
// @Tags bids
// @Accept json
// @Produce json
// @Param id path string true "Auction ID"
// @Param X-Authorization header string true "Session token"
// @Param request body PlaceBidRequest true "Bid amount"
// @Success 201 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions/{id}/bids [post]
func (h *BidHandler) Place(c echo.Context) error {
	id, err := pathID(c, errors.ErrAuctionNotFound)
	if err != nil {
		return err
	}
	sessionToken, err := requireToken(c)
	if err != nil {
		return err
	}

	var req PlaceBidRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "MISSING_FIELDS")
	}

	if err := h.bidService.Place(c.Request().Context(), id, sessionToken, *req.Amount); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "bid placed"})
}
