package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/db/repositories"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
)

func TestUserAdminService_UpdateStatus_ApprovesPendingAccount(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserAdminService(repositories.NewUserRepository(gdb))
	ctx := context.Background()

	user := seedVolunteerUser(t, gdb, "pending@example.com", "Pham Thi Dao", constants.UserPending, nil)

	view, err := svc.UpdateStatus(ctx, user.ID, &dtos.UpdateUserStatusRequest{Status: "ACTIVE"})
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if view.Status != "ACTIVE" {
		t.Errorf("Expected status ACTIVE, got %s", view.Status)
	}
}

func TestUserAdminService_UpdateStatus_RejectsBanningPendingAccount(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserAdminService(repositories.NewUserRepository(gdb))
	ctx := context.Background()

	user := seedVolunteerUser(t, gdb, "pending@example.com", "Pham Thi Dao", constants.UserPending, nil)

	_, err := svc.UpdateStatus(ctx, user.ID, &dtos.UpdateUserStatusRequest{Status: "BANNED"})
	var terr *TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("Expected a transition error, got %v", err)
	}
	if terr.From != "PENDING" || terr.To != "BANNED" {
		t.Errorf("Unexpected transition error: %v", terr)
	}
}

func TestUserAdminService_UpdateStatus_UnknownUser(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserAdminService(repositories.NewUserRepository(gdb))

	_, err := svc.UpdateStatus(context.Background(), uuid.NewString(),
		&dtos.UpdateUserStatusRequest{Status: "ACTIVE"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestUserAdminService_GetVolunteer_WrongRole(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserAdminService(repositories.NewUserRepository(gdb))
	ctx := context.Background()

	ben := seedBeneficiaryUser(t, gdb, "ben@example.com", "Nguyen Thi Em", constants.UserActive, nil)

	// A beneficiary id on the volunteer endpoint reads as missing, not as a
	// cross-role leak.
	if _, err := svc.GetVolunteer(ctx, ben.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestUserAdminService_GetVolunteer_ResolvesOrganizationName(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserAdminService(repositories.NewUserRepository(gdb))
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	vol := seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, &org.ID)

	detail, err := svc.GetVolunteer(ctx, vol.ID)
	if err != nil {
		t.Fatalf("GetVolunteer failed: %v", err)
	}
	if detail.OrganizationName != "Helping Hands" {
		t.Errorf("Expected organization name resolved, got %q", detail.OrganizationName)
	}
}

func TestUserAdminService_GetOrganization_CountsMembers(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserAdminService(repositories.NewUserRepository(gdb))
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, &org.ID)
	seedBeneficiaryUser(t, gdb, "ben@example.com", "Nguyen Thi Em", constants.UserActive, &org.ID)
	seedVolunteerUser(t, gdb, "other@example.com", "Le Van Cuong", constants.UserActive, nil)

	detail, err := svc.GetOrganization(ctx, org.ID)
	if err != nil {
		t.Fatalf("GetOrganization failed: %v", err)
	}
	if detail.MemberCount != 2 {
		t.Errorf("Expected 2 members, got %d", detail.MemberCount)
	}
}

func TestUserAdminService_UpdateVolunteer_EmptyPatch(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserAdminService(repositories.NewUserRepository(gdb))
	ctx := context.Background()

	vol := seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, nil)

	_, err := svc.UpdateVolunteer(ctx, vol.ID, &dtos.UpdateVolunteerRequest{})
	if !errors.Is(err, ErrNoChanges) {
		t.Fatalf("Expected ErrNoChanges, got %v", err)
	}
}

func TestUserAdminService_UpdateVolunteer_PatchesFields(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserAdminService(repositories.NewUserRepository(gdb))
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	vol := seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, &org.ID)

	detail, err := svc.UpdateVolunteer(ctx, vol.ID, &dtos.UpdateVolunteerRequest{
		Bio:             strPtr("Weekend responder"),
		ExperienceYears: intPtr(3),
		PhoneNumber:     strPtr("0912345678"),
	})
	if err != nil {
		t.Fatalf("UpdateVolunteer failed: %v", err)
	}
	if detail.Bio != "Weekend responder" || detail.ExperienceYears != 3 {
		t.Errorf("Profile fields not applied: %+v", detail)
	}
	if detail.PhoneNumber != "0912345678" {
		t.Errorf("Expected phone number patched, got %s", detail.PhoneNumber)
	}
	// Untouched fields survive the patch.
	if detail.FullName != "Tran Van An" {
		t.Errorf("FullName changed unexpectedly: %s", detail.FullName)
	}
}

func TestUserAdminService_UpdateVolunteer_ClearsOrganization(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserAdminService(repositories.NewUserRepository(gdb))
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	vol := seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, &org.ID)

	detail, err := svc.UpdateVolunteer(ctx, vol.ID, &dtos.UpdateVolunteerRequest{
		OrganizationID: strPtr(""),
	})
	if err != nil {
		t.Fatalf("UpdateVolunteer failed: %v", err)
	}
	if detail.OrganizationID != nil {
		t.Errorf("Expected organization cleared, got %v", *detail.OrganizationID)
	}
}

func TestUserAdminService_UpdateVolunteer_RejectsUnknownOrganization(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserAdminService(repositories.NewUserRepository(gdb))
	ctx := context.Background()

	vol := seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, nil)

	_, err := svc.UpdateVolunteer(ctx, vol.ID, &dtos.UpdateVolunteerRequest{
		OrganizationID: strPtr(uuid.NewString()),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown organization, got %v", err)
	}
}

func TestUserAdminService_ListVolunteers_FiltersStatusAndSearch(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserAdminService(repositories.NewUserRepository(gdb))
	ctx := context.Background()

	seedVolunteerUser(t, gdb, "active@example.com", "Tran Van An", constants.UserActive, nil)
	seedVolunteerUser(t, gdb, "pending@example.com", "Pham Thi Dao", constants.UserPending, nil)
	seedBeneficiaryUser(t, gdb, "ben@example.com", "Nguyen Thi Em", constants.UserActive, nil)

	page, err := svc.ListVolunteers(ctx, dtos.ListQuery{Status: "ACTIVE"})
	if err != nil {
		t.Fatalf("ListVolunteers failed: %v", err)
	}
	if page.Total != 1 || len(page.Items) != 1 {
		t.Fatalf("Expected exactly one active volunteer, got total=%d items=%d", page.Total, len(page.Items))
	}
	if page.Items[0].Email != "active@example.com" {
		t.Errorf("Wrong volunteer listed: %s", page.Items[0].Email)
	}

	page, err = svc.ListVolunteers(ctx, dtos.ListQuery{Search: "Dao"})
	if err != nil {
		t.Fatalf("ListVolunteers search failed: %v", err)
	}
	if page.Total != 1 || page.Items[0].FullName != "Pham Thi Dao" {
		t.Errorf("Name search missed: total=%d", page.Total)
	}
}

func TestUserAdminService_ListMembers_OnlyAttached(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserAdminService(repositories.NewUserRepository(gdb))
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	seedVolunteerUser(t, gdb, "member@example.com", "Tran Van An", constants.UserActive, &org.ID)
	seedVolunteerUser(t, gdb, "loner@example.com", "Le Van Cuong", constants.UserActive, nil)

	page, err := svc.ListMembers(ctx, org.ID, constants.RoleVolunteer, dtos.ListQuery{})
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if page.Total != 1 || page.Items[0].Email != "member@example.com" {
		t.Errorf("Expected only the attached volunteer, got total=%d", page.Total)
	}
}

func TestUserAdminService_UpdateOrganization_EmptyPatch(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserAdminService(repositories.NewUserRepository(gdb))

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")

	_, err := svc.UpdateOrganization(context.Background(), org.ID, &dtos.UpdateOrganizationRequest{})
	if !errors.Is(err, ErrNoChanges) {
		t.Fatalf("Expected ErrNoChanges, got %v", err)
	}
}

func TestUserAdminService_UpdateOrganization_PatchesFields(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserAdminService(repositories.NewUserRepository(gdb))
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")

	detail, err := svc.UpdateOrganization(ctx, org.ID, &dtos.UpdateOrganizationRequest{
		Description: strPtr("Neighborhood relief network"),
		Website:     strPtr("https://helpinghands.example.com"),
		District:    strPtr("District 7"),
	})
	if err != nil {
		t.Fatalf("UpdateOrganization failed: %v", err)
	}
	if detail.Description != "Neighborhood relief network" {
		t.Errorf("Expected patched description, got %q", detail.Description)
	}
	if detail.District != "District 7" {
		t.Errorf("Expected patched district, got %q", detail.District)
	}
	if detail.OrganizationName != "Helping Hands" {
		t.Errorf("Expected untouched name, got %q", detail.OrganizationName)
	}
}

func TestUserAdminService_UpdateOrganization_WrongRole(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserAdminService(repositories.NewUserRepository(gdb))

	vol := seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, nil)

	_, err := svc.UpdateOrganization(context.Background(), vol.ID,
		&dtos.UpdateOrganizationRequest{Description: strPtr("nope")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}
