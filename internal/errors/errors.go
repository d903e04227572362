package errors

import (
	"errors"
	"net/http"
)

// Validation failures: detected locally before any write, never partially applied.
var (
	// ErrInvalidEmail is returned when an email does not have a valid shape.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrUnknownCategory is returned when the referenced category does not exist.
	ErrUnknownCategory = errors.New("category does not exist")
	// ErrEndDateNotFuture is returned when an auction end date is not strictly in the future.
	ErrEndDateNotFuture = errors.New("end date must be in the future")
	// ErrReserveTooLow is returned when an updated reserve is below 1.
	ErrReserveTooLow = errors.New("reserve must be at least 1")
	// ErrBidBelowReserve is returned when the first bid does not meet the reserve.
	ErrBidBelowReserve = errors.New("bid must meet the reserve price")
	// ErrBidTooLow is returned when a bid does not exceed the current highest bid.
	ErrBidTooLow = errors.New("bid must exceed the current highest bid")
	// ErrMissingCurrentPassword is returned when a password change omits the current password.
	ErrMissingCurrentPassword = errors.New("current password is required")
	// ErrWrongPassword is returned when the supplied current password does not match.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrUnsupportedImageType is returned for content types outside png/jpeg/gif.
	ErrUnsupportedImageType = errors.New("unsupported image content type")
)

// Not-found failures.
var (
	// ErrUserNotFound is returned when a referenced user is absent.
	ErrUserNotFound = errors.New("user not found")
	// ErrAuctionNotFound is returned when a referenced auction is absent.
	ErrAuctionNotFound = errors.New("auction not found")
	// ErrImageNotFound is returned when an entity has no stored image.
	ErrImageNotFound = errors.New("image not found")
)

// Authentication failures: missing or unresolvable token.
var (
	// ErrMissingToken is returned when no auth token accompanies the request.
	ErrMissingToken = errors.New("auth token required")
	// ErrInvalidToken is returned when a token resolves to no single user.
	ErrInvalidToken = errors.New("no user with that token")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Authorization failures: the caller is authenticated but not permitted.
var (
	// ErrNotResourceOwner is returned when a token does not match the resource owner's stored token.
	ErrNotResourceOwner = errors.New("token does not belong to the resource owner")
	// ErrSelfBid is returned when a seller bids on their own auction.
	ErrSelfBid = errors.New("sellers cannot bid on their own auction")
	// ErrAuctionHasBids is returned when deleting an auction that already has bids.
	ErrAuctionHasBids = errors.New("auction already has bids")
)

// Conflict failures.
var (
	// ErrEmailTaken is returned when registering an email that is already in use.
	ErrEmailTaken = errors.New("email already registered")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Storage and other
// unrecognized failures surface as an opaque internal error; the core never
// retries them.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_EMAIL")
	case errors.Is(err, ErrUnknownCategory):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNKNOWN_CATEGORY")
	case errors.Is(err, ErrEndDateNotFuture):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "END_DATE_NOT_FUTURE")
	case errors.Is(err, ErrReserveTooLow):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "RESERVE_TOO_LOW")
	case errors.Is(err, ErrBidBelowReserve):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BID_BELOW_RESERVE")
	case errors.Is(err, ErrBidTooLow):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "BID_TOO_LOW")
	case errors.Is(err, ErrMissingCurrentPassword):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CURRENT_PASSWORD_REQUIRED")
	case errors.Is(err, ErrWrongPassword):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "WRONG_PASSWORD")
	case errors.Is(err, ErrUnsupportedImageType):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNSUPPORTED_IMAGE_TYPE")
	case errors.Is(err, ErrMissingToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "TOKEN_REQUIRED")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNotResourceOwner):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_RESOURCE_OWNER")
	case errors.Is(err, ErrSelfBid):
		return NewHTTPError(http.StatusForbidden, err.Error(), "SELF_BID")
	case errors.Is(err, ErrAuctionHasBids):
		return NewHTTPError(http.StatusForbidden, err.Error(), "AUCTION_HAS_BIDS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrAuctionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "AUCTION_NOT_FOUND")
	case errors.Is(err, ErrImageNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "IMAGE_NOT_FOUND")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
