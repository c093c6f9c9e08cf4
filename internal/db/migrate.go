package db

import (
	"log"
	"memoras-backend/internal/domain"
)

// Migrate runs database migrations
func Migrate() {
	err := AppDb.AutoMigrate(
		&domain.User{},
		&domain.Memorial{},
		&domain.Obituary{},
		&domain.Acknowledgements{},
		&domain.BodyViewing{},
		&domain.RepassLocation{},
		&domain.BurialLocation{},
		&domain.Speech{},
		&domain.Photo{},
	)

	if err != nil {
		log.Fatal(err)
	}

	log.Println("Database schema migrated successfully")
}
