package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/db"
	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

// setupTestDB opens an in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, email string, role constants.UserRole, status constants.UserStatus) *entities.User {
	t.Helper()

	u := &entities.User{
		Email:        email,
		PhoneNumber:  "0901234567",
		PasswordHash: "not-a-real-hash",
		Role:         role,
		Status:       status,
	}
	if err := gdb.Create(u).Error; err != nil {
		t.Fatalf("Failed to seed user %s: %v", email, err)
	}
	return u
}

func seedVolunteerUser(t *testing.T, gdb *gorm.DB, email, fullName string, status constants.UserStatus, orgID *string) *entities.User {
	t.Helper()

	u := seedUser(t, gdb, email, constants.RoleVolunteer, status)
	p := &entities.VolunteerProfile{
		UserID:         u.ID,
		FullName:       fullName,
		Skills:         []string{"first aid"},
		OrganizationID: orgID,
	}
	if err := gdb.Create(p).Error; err != nil {
		t.Fatalf("Failed to seed volunteer profile for %s: %v", email, err)
	}
	u.VolunteerProfile = p
	return u
}

func seedBeneficiaryUser(t *testing.T, gdb *gorm.DB, email, fullName string, status constants.UserStatus, orgID *string) *entities.User {
	t.Helper()

	u := seedUser(t, gdb, email, constants.RoleBeneficiary, status)
	p := &entities.BeneficiaryProfile{
		UserID:            u.ID,
		FullName:          fullName,
		VulnerabilityType: "ELDERLY",
		OrganizationID:    orgID,
	}
	if err := gdb.Create(p).Error; err != nil {
		t.Fatalf("Failed to seed beneficiary profile for %s: %v", email, err)
	}
	u.BeneficiaryProfile = p
	return u
}

func seedOrganizationUser(t *testing.T, gdb *gorm.DB, email, orgName string) *entities.User {
	t.Helper()

	u := seedUser(t, gdb, email, constants.RoleOrganization, constants.UserActive)
	p := &entities.OrganizationProfile{
		UserID:           u.ID,
		OrganizationName: orgName,
		District:         "District 1",
	}
	if err := gdb.Create(p).Error; err != nil {
		t.Fatalf("Failed to seed organization profile for %s: %v", email, err)
	}
	u.OrganizationProfile = p
	return u
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
