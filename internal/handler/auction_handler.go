package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"gavel/internal/errors"
	"gavel/internal/repository"
	"gavel/internal/service"
)

// AuctionHandler handles auction lifecycle, search and category endpoints.
type AuctionHandler struct {
	auctionService  service.AuctionService
	categoryService service.CategoryService
}

// NewAuctionHandler creates a new auction handler.
func NewAuctionHandler(auctionService service.AuctionService, categoryService service.CategoryService) *AuctionHandler {
	return &AuctionHandler{auctionService: auctionService, categoryService: categoryService}
}

// CreateAuctionRequest represents an auction creation request.
type CreateAuctionRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description" validate:"required"`
	CategoryID  uuid.UUID `json:"category_id" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	Reserve     *int      `json:"reserve"`
}

// UpdateAuctionRequest represents a partial auction update. Absent fields are
// left unchanged.
type UpdateAuctionRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id"`
	EndDate     *time.Time `json:"end_date"`
	Reserve     *int       `json:"reserve"`
}

// Search godoc
// @Summary Search auctions
// @Description Filters combine conjunctively. Count in the response ignores pagination.
// @Tags auctions
// @Produce json
// @Param seller_id query string false "Filter by seller"
// @Param category_ids query string false "Comma-separated category ids"
// @Param bidder_id query string false "Auctions the user has bid on"
// @Param q query string false "Substring match on title or description"
// @Param sort_by query string false "ALPHABETICAL_ASC|ALPHABETICAL_DESC|BIDS_ASC|BIDS_DESC|RESERVE_ASC|RESERVE_DESC|CLOSING_SOON|CLOSING_LAST"
// @Param count query int false "Page size"
// @Param start_index query int false "Page offset"
// @Success 200 {object} model.AuctionPage
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions [get]
func (h *AuctionHandler) Search(c echo.Context) error {
	query, err := parseAuctionQuery(c)
	if err != nil {
		return err
	}

	page, err := h.auctionService.Search(c.Request().Context(), *query)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, page)
}

func parseAuctionQuery(c echo.Context) (*repository.AuctionQuery, error) {
	query := &repository.AuctionQuery{Search: c.QueryParam("q")}

	if v := c.QueryParam("seller_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, badRequest("invalid seller_id", "INVALID_UUID")
		}
		query.SellerID = &id
	}
	if v := c.QueryParam("bidder_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, badRequest("invalid bidder_id", "INVALID_UUID")
		}
		query.BidderID = &id
	}
	if v := c.QueryParam("category_ids"); v != "" {
		for _, raw := range strings.Split(v, ",") {
			id, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				return nil, badRequest("invalid category_ids", "INVALID_UUID")
			}
			query.CategoryIDs = append(query.CategoryIDs, id)
		}
	}

	sort, ok := repository.ParseSortOrder(c.QueryParam("sort_by"))
	if !ok {
		return nil, badRequest("invalid sort_by", "INVALID_SORT")
	}
	query.Sort = sort

	if v := c.QueryParam("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, badRequest("invalid count", "INVALID_PAGINATION")
		}
		query.Count = &n
	}
	if v := c.QueryParam("start_index"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, badRequest("invalid start_index", "INVALID_PAGINATION")
		}
		query.StartIndex = &n
	}

	return query, nil
}

// Create godoc
// @Summary Create an auction
// @Tags auctions
// @Accept json
// @Produce json
// @Param X-Authorization header string true "Session token"
// @Param request body CreateAuctionRequest true "Auction data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions [post]
func (h *AuctionHandler) Create(c echo.Context) error {
	sessionToken, err := requireToken(c)
	if err != nil {
		return err
	}

	var req CreateAuctionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error(), "MISSING_FIELDS")
	}

	input := service.CreateAuctionInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		EndDate:     req.EndDate,
		Reserve:     req.Reserve,
	}
	id, err := h.auctionService.Create(c.Request().Context(), sessionToken, input)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"auction_id": id,
	})
}

// Get godoc
// @Summary Get one auction with derived bid aggregates
// @Tags auctions
// @Produce json
// @Param id path string true "Auction ID"
// @Success 200 {object} model.AuctionDetail
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions/{id} [get]
func (h *AuctionHandler) Get(c echo.Context) error {
	id, err := pathID(c, errors.ErrAuctionNotFound)
	if err != nil {
		return err
	}

	detail, err := h.auctionService.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Update godoc
// @Summary Update an auction
// @Tags auctions
// @Accept json
// @Produce json
// @Param id path string true "Auction ID"
// @Param X-Authorization header string true "Session token"
// @Param request body UpdateAuctionRequest true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions/{id} [patch]
func (h *AuctionHandler) Update(c echo.Context) error {
	id, err := pathID(c, errors.ErrAuctionNotFound)
	if err != nil {
		return err
	}
	sessionToken, err := requireToken(c)
	if err != nil {
		return err
	}

	var req UpdateAuctionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_BODY")
	}

	input := service.UpdateAuctionInput{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		EndDate:     req.EndDate,
		Reserve:     req.Reserve,
	}
	if err := h.auctionService.Update(c.Request().Context(), id, sessionToken, input); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "auction updated"})
}

// Delete godoc
// @Summary Delete an auction with no bids
// @Tags auctions
// @Produce json
// @Param id path string true "Auction ID"
// @Param X-Authorization header string true "Session token"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions/{id} [delete]
func (h *AuctionHandler) Delete(c echo.Context) error {
	id, err := pathID(c, errors.ErrAuctionNotFound)
	if err != nil {
		return err
	}
	sessionToken, err := requireToken(c)
	if err != nil {
		return err
	}

	if err := h.auctionService.Delete(c.Request().Context(), id, sessionToken); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "auction deleted"})
}

// ListCategories godoc
// @Summary List all categories
// @Tags auctions
// @Produce json
// @Success 200 {array} model.Category
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions/categories [get]
func (h *AuctionHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, categories)
}
