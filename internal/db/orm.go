package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

var PgDB *gorm.DB

// InitPostgresORM opens the GORM handle used by the repositories.
func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	PgDB = db
	return db, nil
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.User{},
		&entities.VolunteerProfile{},
		&entities.BeneficiaryProfile{},
		&entities.OrganizationProfile{},
		&entities.Campaign{},
		&entities.CampaignRegistration{},
		&entities.HelpRequest{},
		&entities.Conversation{},
		&entities.Message{},
		&entities.VolunteerComment{},
		&entities.Certificate{},
	)
}
