package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/CtIaMbaCK/betterus-server/internal/constants"
)

type User struct {
	ID           string               `gorm:"column:id;primaryKey;type:uuid"`
	Email        string               `gorm:"column:email;uniqueIndex"`
	PhoneNumber  string               `gorm:"column:phone_number"`
	PasswordHash string               `gorm:"column:password_hash"`
	Role         constants.UserRole   `gorm:"column:role;index"`
	Status       constants.UserStatus `gorm:"column:status;index;default:PENDING"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`

	// Relationships
	VolunteerProfile    *VolunteerProfile    `gorm:"foreignKey:UserID"`
	BeneficiaryProfile  *BeneficiaryProfile  `gorm:"foreignKey:UserID"`
	OrganizationProfile *OrganizationProfile `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// DisplayName resolves the human-facing name from whichever profile exists.
func (u *User) DisplayName() string {
	switch {
	case u.VolunteerProfile != nil:
		return u.VolunteerProfile.FullName
	case u.BeneficiaryProfile != nil:
		return u.BeneficiaryProfile.FullName
	case u.OrganizationProfile != nil:
		return u.OrganizationProfile.OrganizationName
	default:
		return u.Email
	}
}
