package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VolunteerComment is an admin/organization-authored note on a volunteer.
type VolunteerComment struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid"`
	VolunteerID string    `gorm:"column:volunteer_id;type:uuid;index"`
	AuthorID    string    `gorm:"column:author_id;type:uuid"`
	Body        string    `gorm:"column:body"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`

	// Relationships
	Author User `gorm:"foreignKey:AuthorID"`
}

func (VolunteerComment) TableName() string {
	return "volunteer_comments"
}

func (c *VolunteerComment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Certificate recognizes a volunteer's participation, issued by an admin or
// the volunteer's organization.
type Certificate struct {
	ID          string    `gorm:"column:id;primaryKey;type:uuid"`
	VolunteerID string    `gorm:"column:volunteer_id;type:uuid;index"`
	IssuerID    string    `gorm:"column:issuer_id;type:uuid"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	IssuedAt    time.Time `gorm:"column:issued_at;autoCreateTime"`

	// Relationships
	Issuer User `gorm:"foreignKey:IssuerID"`
}

func (Certificate) TableName() string {
	return "certificates"
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
