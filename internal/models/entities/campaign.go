package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CtIaMbaCK/betterus-server/internal/constants"
)

type Campaign struct {
	ID                string                   `gorm:"column:id;primaryKey;type:uuid"`
	OrganizationID    string                   `gorm:"column:organization_id;type:uuid;index"`
	Title             string                   `gorm:"column:title"`
	Description       string                   `gorm:"column:description"`
	Goal              string                   `gorm:"column:goal"`
	District          string                   `gorm:"column:district;index"`
	AddressDetail     string                   `gorm:"column:address_detail"`
	StartDate         time.Time                `gorm:"column:start_date"`
	EndDate           time.Time                `gorm:"column:end_date"`
	TargetVolunteers  int                      `gorm:"column:target_volunteers"`
	MaxVolunteers     int                      `gorm:"column:max_volunteers"`
	CurrentVolunteers int                      `gorm:"column:current_volunteers;default:0"`
	Status            constants.CampaignStatus `gorm:"column:status;index;default:DRAFT"`
	CoverImageURL     string                   `gorm:"column:cover_image_url"`
	Images            StringList               `gorm:"column:images;type:text"`
	CreatedAt         time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time                `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Registrations []CampaignRegistration `gorm:"foreignKey:CampaignID"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type CampaignRegistration struct {
	ID           string                       `gorm:"column:id;primaryKey;type:uuid"`
	CampaignID   string                       `gorm:"column:campaign_id;type:uuid;index:idx_campaign_volunteer,unique"`
	VolunteerID  string                       `gorm:"column:volunteer_id;type:uuid;index:idx_campaign_volunteer,unique"`
	Status       constants.RegistrationStatus `gorm:"column:status;default:REGISTERED"`
	RegisteredAt time.Time                    `gorm:"column:registered_at;autoCreateTime"`
	UpdatedAt    time.Time                    `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Campaign  Campaign `gorm:"foreignKey:CampaignID"`
	Volunteer User     `gorm:"foreignKey:VolunteerID"`
}

func (CampaignRegistration) TableName() string {
	return "campaign_registrations"
}

func (r *CampaignRegistration) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
