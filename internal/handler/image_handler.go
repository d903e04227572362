package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"gavel/internal/errors"
	"gavel/internal/service"
)

// ImageHandler handles the single image slot on users and auctions.
type ImageHandler struct {
	imageService service.ImageService
}

// NewImageHandler creates a new image handler.
func NewImageHandler(imageService service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// GetUserImage godoc
// @Summary Fetch a user's profile image
// @Tags images
// @Produce png,jpeg,gif
// @Param id path string true "User ID"
// @Success 200 {file} binary
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id}/image [get]
func (h *ImageHandler) GetUserImage(c echo.Context) error {
	id, err := pathID(c, errors.ErrUserNotFound)
	if err != nil {
		return err
	}
	data, contentType, err := h.imageService.FetchUserImage(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.Blob(http.StatusOK, contentType, data)
}

// SetUserImage godoc
// @Summary Set or replace a user's profile image
// @Tags images
// @Accept png,jpeg,gif
// @Produce json
// @Param id path string true "User ID"
// @Param X-Authorization header string true "Session token"
// @Success 200 {object} map[string]string "replaced"
// @Success 201 {object} map[string]string "created"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id}/image [put]
func (h *ImageHandler) SetUserImage(c echo.Context) error {
	id, err := pathID(c, errors.ErrUserNotFound)
	if err != nil {
		return err
	}
	sessionToken, err := requireToken(c)
	if err != nil {
		return err
	}
	contentType, data, err := imageBody(c)
	if err != nil {
		return err
	}

	created, err := h.imageService.AssignUserImage(c.Request().Context(), id, sessionToken, contentType, data)
	if err != nil {
		return httpError(err)
	}
	return imageAssigned(c, created)
}

// DeleteUserImage godoc
// @Summary Remove a user's profile image
// @Tags images
// @Produce json
// @Param id path string true "User ID"
// @Param X-Authorization header string true "Session token"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id}/image [delete]
func (h *ImageHandler) DeleteUserImage(c echo.Context) error {
	id, err := pathID(c, errors.ErrUserNotFound)
	if err != nil {
		return err
	}
	sessionToken, err := requireToken(c)
	if err != nil {
		return err
	}

	if err := h.imageService.RemoveUserImage(c.Request().Context(), id, sessionToken); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "image deleted"})
}

// GetAuctionImage godoc
// @Summary Fetch an auction's image
// @Tags images
// @Produce png,jpeg,gif
// @Param id path string true "Auction ID"
// @Success 200 {file} binary
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions/{id}/image [get]
func (h *ImageHandler) GetAuctionImage(c echo.Context) error {
	id, err := pathID(c, errors.ErrAuctionNotFound)
	if err != nil {
		return err
	}
	data, contentType, err := h.imageService.FetchAuctionImage(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.Blob(http.StatusOK, contentType, data)
}

// SetAuctionImage godoc
// @Summary Set or replace an auction's image
// @Tags images
// @Accept png,jpeg,gif
// @Produce json
// @Param id path string true "Auction ID"
// @Param X-Authorization header string true "Session token"
// @Success 200 {object} map[string]string "replaced"
// @Success 201 {object} map[string]string "created"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions/{id}/image [put]
func (h *ImageHandler) SetAuctionImage(c echo.Context) error {
	id, err := pathID(c, errors.ErrAuctionNotFound)
	if err != nil {
		return err
	}
	sessionToken, err := requireToken(c)
	if err != nil {
		return err
	}
	contentType, data, err := imageBody(c)
	if err != nil {
		return err
	}

	created, err := h.imageService.AssignAuctionImage(c.Request().Context(), id, sessionToken, contentType, data)
	if err != nil {
		return httpError(err)
	}
	return imageAssigned(c, created)
}

// DeleteAuctionImage godoc
// @Summary Remove an auction's image
// @Tags images
// @Produce json
// @Param id path string true "Auction ID"
// @Param X-Authorization header string true "Session token"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auctions/{id}/image [delete]
func (h *ImageHandler) DeleteAuctionImage(c echo.Context) error {
	id, err := pathID(c, errors.ErrAuctionNotFound)
	if err != nil {
		return err
	}
	sessionToken, err := requireToken(c)
	if err != nil {
		return err
	}

	if err := h.imageService.RemoveAuctionImage(c.Request().Context(), id, sessionToken); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "image deleted"})
}

// imageBody reads the raw request body and its declared content type.
func imageBody(c echo.Context) (string, []byte, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if contentType == "" {
		return "", nil, badRequest("no content type specified", "MISSING_CONTENT_TYPE")
	}
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return "", nil, badRequest("could not read request body", "INVALID_BODY")
	}
	return contentType, data, nil
}

// imageAssigned distinguishes first upload from replacement.
func imageAssigned(c echo.Context, created bool) error {
	if created {
		return c.JSON(http.StatusCreated, map[string]string{"message": "image created"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "image updated"})
}
