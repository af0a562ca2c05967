package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CtIaMbaCK/betterus-server/internal/constants"
)

type HelpRequest struct {
	ID            string                      `gorm:"column:id;primaryKey;type:uuid"`
	RequesterID   string                      `gorm:"column:requester_id;type:uuid;index"`
	VolunteerID   *string                     `gorm:"column:volunteer_id;type:uuid;index"`
	Title         string                      `gorm:"column:title"`
	Description   string                      `gorm:"column:description"`
	ActivityType  string                      `gorm:"column:activity_type"`
	UrgencyLevel  string                      `gorm:"column:urgency_level"`
	District      string                      `gorm:"column:district;index"`
	AddressDetail string                      `gorm:"column:address_detail"`
	StartAt       time.Time                   `gorm:"column:start_at"`
	EndAt         time.Time                   `gorm:"column:end_at"`
	Status        constants.HelpRequestStatus `gorm:"column:status;index;default:PENDING"`
	ActivityImage string                      `gorm:"column:activity_image"`
	ProofImages   StringList                  `gorm:"column:proof_images;type:text"`
	CreatedAt     time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                   `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	Requester User  `gorm:"foreignKey:RequesterID"`
	Volunteer *User `gorm:"foreignKey:VolunteerID"`
}

func (HelpRequest) TableName() string {
	return "help_requests"
}

func (h *HelpRequest) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
