package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"gavel/internal/handler"
)

// Register wires routes and middleware. Authentication is the opaque
// X-Authorization token checked per handler, so there is no route-level auth
// middleware; public and owner-gated operations share paths.
func Register(
	e *echo.Echo,
	userHandler *handler.UserHandler,
	auctionHandler *handler.AuctionHandler,
	bidHandler *handler.BidHandler,
	imageHandler *handler.ImageHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Users and sessions
	api.POST("/users/register", userHandler.Register)
	api.POST("/users/login", userHandler.Login)
	api.POST("/users/logout", userHandler.Logout)
	api.GET("/users/:id", userHandler.Get)
	api.PATCH("/users/:id", userHandler.Update)
	api.GET("/users/:id/image", imageHandler.GetUserImage)
	api.PUT("/users/:id/image", imageHandler.SetUserImage)
	api.DELETE("/users/:id/image", imageHandler.DeleteUserImage)

	// Auctions
	api.GET("/auctions", auctionHandler.Search)
	api.POST("/auctions", auctionHandler.Create)
	api.GET("/auctions/categories", auctionHandler.ListCategories)
	api.GET("/auctions/:id", auctionHandler.Get)
	api.PATCH("/auctions/:id", auctionHandler.Update)
	api.DELETE("/auctions/:id", auctionHandler.Delete)
	api.GET("/auctions/:id/image", imageHandler.GetAuctionImage)
	api.PUT("/auctions/:id/image", imageHandler.SetAuctionImage)
	api.DELETE("/auctions/:id/image", imageHandler.DeleteAuctionImage)

	// Bids
	api.GET("/auctions/:id/bids", bidHandler.List)
	api.POST("/auctions/:id/bids", bidHandler.Place)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
