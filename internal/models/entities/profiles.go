package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VolunteerProfile struct {
	ID                 string     `gorm:"column:id;primaryKey;type:uuid"`
	UserID             string     `gorm:"column:user_id;type:uuid;uniqueIndex"`
	FullName           string     `gorm:"column:full_name"`
	AvatarURL          string     `gorm:"column:avatar_url"`
	Skills             StringList `gorm:"column:skills;type:text"`
	ExperienceYears    int        `gorm:"column:experience_years"`
	Bio                string     `gorm:"column:bio"`
	PreferredDistricts StringList `gorm:"column:preferred_districts;type:text"`
	Points             int        `gorm:"column:points;default:0"`
	CccdFrontURL       string     `gorm:"column:cccd_front_url"`
	CccdBackURL        string     `gorm:"column:cccd_back_url"`
	OrganizationID     *string    `gorm:"column:organization_id;type:uuid;index"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (VolunteerProfile) TableName() string {
	return "volunteer_profiles"
}

func (p *VolunteerProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type BeneficiaryProfile struct {
	ID                   string    `gorm:"column:id;primaryKey;type:uuid"`
	UserID               string    `gorm:"column:user_id;type:uuid;uniqueIndex"`
	FullName             string    `gorm:"column:full_name"`
	VulnerabilityType    string    `gorm:"column:vulnerability_type"`
	SituationDescription string    `gorm:"column:situation_description"`
	HealthCondition      string    `gorm:"column:health_condition"`
	GuardianName         string    `gorm:"column:guardian_name"`
	GuardianPhone        string    `gorm:"column:guardian_phone"`
	GuardianRelation     string    `gorm:"column:guardian_relation"`
	CccdFrontURL         string    `gorm:"column:cccd_front_url"`
	CccdBackURL          string    `gorm:"column:cccd_back_url"`
	OrganizationID       *string   `gorm:"column:organization_id;type:uuid;index"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (BeneficiaryProfile) TableName() string {
	return "beneficiary_profiles"
}

func (p *BeneficiaryProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type OrganizationProfile struct {
	ID                 string     `gorm:"column:id;primaryKey;type:uuid"`
	UserID             string     `gorm:"column:user_id;type:uuid;uniqueIndex"`
	OrganizationName   string     `gorm:"column:organization_name"`
	RepresentativeName string     `gorm:"column:representative_name"`
	Description        string     `gorm:"column:description"`
	Website            string     `gorm:"column:website"`
	District           string     `gorm:"column:district;index"`
	AddressDetail      string     `gorm:"column:address_detail"`
	BusinessLicenseURL string     `gorm:"column:business_license_url"`
	VerificationDocs   StringList `gorm:"column:verification_docs;type:text"`
	CreatedAt          time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (OrganizationProfile) TableName() string {
	return "organization_profiles"
}

func (p *OrganizationProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
