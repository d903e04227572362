package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	_ "gavel/docs" // swagger docs

	"gavel/internal/auth"
	"gavel/internal/blob"
	"gavel/internal/cache"
	"gavel/internal/config"
	"gavel/internal/db"
	"gavel/internal/handler"
	"gavel/internal/logger"
	"gavel/internal/model"
	"gavel/internal/repository"
	"gavel/internal/router"
	"gavel/internal/service"
)

// @title Gavel Auction API
// @version 1.0
// @description Auction marketplace backend: users, auctions, bids and images.
// @BasePath /api/v1
// @securityDefinitions.apikey TokenAuth
// @in header
// @name X-Authorization
func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Auction{},
		&model.Bid{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	blobStore, err := blob.NewFileStore(cfg.ImageDir)
	if err != nil {
		log.Fatal().Err(err).Msg("blob store init")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	auctionRepo := repository.NewAuctionRepository(gormDB)
	bidRepo := repository.NewBidRepository(gormDB)

	guard := auth.NewGuard(userRepo)

	// Services
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, guard)
	categoryService := service.NewCategoryService(categoryRepo, cacheClient)
	auctionService := service.NewAuctionService(auctionRepo, bidRepo, userRepo, categoryService, guard, blobStore)
	bidService := service.NewBidService(auctionRepo, bidRepo, guard)
	imageService := service.NewImageService(userRepo, auctionRepo, guard, blobStore)

	// Handlers
	userHandler := handler.NewUserHandler(authService, userService)
	auctionHandler := handler.NewAuctionHandler(auctionService, categoryService)
	bidHandler := handler.NewBidHandler(bidService)
	imageHandler := handler.NewImageHandler(imageService)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, userHandler, auctionHandler, bidHandler, imageHandler)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
