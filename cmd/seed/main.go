package main

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"gavel/internal/config"
	"gavel/internal/db"
	"gavel/internal/logger"
	"gavel/internal/model"
)

var categoryNames = []string{
	"Antiques",
	"Books",
	"Computers",
	"Furniture",
	"Musical Instruments",
	"Sporting Equipment",
	"Vehicles",
}

// Seeds the immutable category set and a couple of demo accounts with one
// open auction, so a fresh install has something to bid on.
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

	for _, name := range categoryNames {
		var existing model.Category
		err := gormDB.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Fatal().Err(err).Msg("check category")
		}
		if err := gormDB.Create(&model.Category{Name: name}).Error; err != nil {
			log.Fatal().Err(err).Str("name", name).Msg("seed category")
		}
		log.Info().Str("name", name).Msg("category seeded")
	}

	seller := seedUser(gormDB, "Ada", "Seller", "seller@example.com", "password123")
	seedUser(gormDB, "Ben", "Bidder", "bidder@example.com", "password123")

	var books model.Category
	if err := gormDB.Where("name = ?", "Books").First(&books).Error; err != nil {
		log.Fatal().Err(err).Msg("find seeded category")
	}

	var count int64
	if err := gormDB.Model(&model.Auction{}).Where("seller_id = ?", seller.ID).Count(&count).Error; err != nil {
		log.Fatal().Err(err).Msg("count demo auctions")
	}
	if count == 0 {
		auction := &model.Auction{
			Title:       "First edition boxed set",
			Description: "Seeded demo auction.",
			CategoryID:  books.ID,
			SellerID:    seller.ID,
			Reserve:     50,
			EndDate:     time.Now().AddDate(0, 1, 0),
		}
		if err := gormDB.Create(auction).Error; err != nil {
			log.Fatal().Err(err).Msg("seed auction")
		}
		log.Info().Str("auction_id", auction.ID.String()).Msg("demo auction seeded")
	}

	log.Info().Msg("seed complete")
}

func seedUser(gormDB *gorm.DB, first, last, email, password string) *model.User {
	var existing model.User
	err := gormDB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatal().Err(err).Msg("check user")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password")
	}
	user := &model.User{
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := gormDB.Create(user).Error; err != nil {
		log.Fatal().Err(err).Str("email", email).Msg("seed user")
	}
	log.Info().Str("email", email).Msg("user seeded")
	return user
}
