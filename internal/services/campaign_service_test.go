package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/db/repositories"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

func newCampaignService(t *testing.T, gdb *gorm.DB) *CampaignService {
	t.Helper()
	return NewCampaignService(
		repositories.NewCampaignRepository(gdb),
		repositories.NewUserRepository(gdb),
		nil,
	)
}

func seedCampaign(t *testing.T, gdb *gorm.DB, orgID string, status constants.CampaignStatus, maxVolunteers int) *entities.Campaign {
	t.Helper()

	c := &entities.Campaign{
		OrganizationID:   orgID,
		Title:            "River cleanup day",
		Description:      "Collecting trash along the canal banks with local residents",
		Goal:             "Clear two kilometers of canal bank",
		District:         "District 7",
		StartDate:        time.Now().Add(24 * time.Hour),
		EndDate:          time.Now().Add(72 * time.Hour),
		TargetVolunteers: maxVolunteers,
		MaxVolunteers:    maxVolunteers,
		Status:           status,
	}
	if err := gdb.Create(c).Error; err != nil {
		t.Fatalf("Failed to seed campaign: %v", err)
	}
	return c
}

func TestCampaignService_Create_DefaultsMaxVolunteers(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newCampaignService(t, gdb)
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")

	view, err := svc.Create(ctx, org.ID, &dtos.CreateCampaignRequest{
		Title:            "River cleanup day",
		Description:      "Collecting trash along the canal banks with local residents",
		Goal:             "Clear two kilometers of canal bank",
		District:         "District 7",
		StartDate:        time.Now().Add(24 * time.Hour),
		EndDate:          time.Now().Add(72 * time.Hour),
		TargetVolunteers: 15,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if view.Status != "DRAFT" {
		t.Errorf("Expected new campaigns to start DRAFT, got %s", view.Status)
	}
	if view.MaxVolunteers != 15 {
		t.Errorf("Expected max to default to the target, got %d", view.MaxVolunteers)
	}
}

func TestCampaignService_Create_RejectsInvertedWindow(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newCampaignService(t, gdb)

	_, err := svc.Create(context.Background(), "org-id", &dtos.CreateCampaignRequest{
		Title:            "River cleanup day",
		Description:      "Collecting trash along the canal banks with local residents",
		Goal:             "Clear two kilometers of canal bank",
		District:         "District 7",
		StartDate:        time.Now().Add(72 * time.Hour),
		EndDate:          time.Now().Add(24 * time.Hour),
		TargetVolunteers: 15,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected a validation error, got %v", err)
	}
}

func TestCampaignService_Update_OwnerOnly(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newCampaignService(t, gdb)
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	c := seedCampaign(t, gdb, org.ID, constants.CampaignDraft, 10)

	_, err := svc.Update(ctx, "someone-else", c.ID, &dtos.UpdateCampaignRequest{Title: strPtr("New title")})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("Expected ErrForbidden, got %v", err)
	}
}

func TestCampaignService_Update_StatusMachine(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newCampaignService(t, gdb)
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	c := seedCampaign(t, gdb, org.ID, constants.CampaignDraft, 10)

	view, err := svc.Update(ctx, org.ID, c.ID, &dtos.UpdateCampaignRequest{Status: strPtr("PUBLISHED")})
	if err != nil {
		t.Fatalf("Publishing failed: %v", err)
	}
	if view.Status != "PUBLISHED" {
		t.Errorf("Expected status PUBLISHED, got %s", view.Status)
	}

	// Skipping straight to COMPLETED is illegal.
	_, err = svc.Update(ctx, org.ID, c.ID, &dtos.UpdateCampaignRequest{Status: strPtr("COMPLETED")})
	var terr *TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("Expected a transition error, got %v", err)
	}
}

func TestCampaignService_Update_MaxBelowCurrentRegistrations(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newCampaignService(t, gdb)
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	c := seedCampaign(t, gdb, org.ID, constants.CampaignPublished, 10)
	if err := gdb.Model(c).Update("current_volunteers", 3).Error; err != nil {
		t.Fatalf("Failed to set seat count: %v", err)
	}

	_, err := svc.Update(ctx, org.ID, c.ID, &dtos.UpdateCampaignRequest{MaxVolunteers: intPtr(2)})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected a validation error, got %v", err)
	}
}

func TestCampaignService_Delete_DraftOnly(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newCampaignService(t, gdb)
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	published := seedCampaign(t, gdb, org.ID, constants.CampaignPublished, 10)
	draft := seedCampaign(t, gdb, org.ID, constants.CampaignDraft, 10)

	var terr *TransitionError
	if err := svc.Delete(ctx, org.ID, published.ID); !errors.As(err, &terr) {
		t.Fatalf("Expected a transition error deleting a published campaign, got %v", err)
	}

	if err := svc.Delete(ctx, org.ID, draft.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, draft.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected campaign gone, got %v", err)
	}
}

func TestCampaignService_Register_DraftRejected(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newCampaignService(t, gdb)
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	vol := seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, nil)
	c := seedCampaign(t, gdb, org.ID, constants.CampaignDraft, 10)

	_, err := svc.Register(ctx, c.ID, vol.ID)
	var terr *TransitionError
	if !errors.As(err, &terr) {
		t.Fatalf("Expected a transition error registering on a draft, got %v", err)
	}
}

func TestCampaignService_Register_SeatCap(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newCampaignService(t, gdb)
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	vol1 := seedVolunteerUser(t, gdb, "vol1@example.com", "Tran Van An", constants.UserActive, nil)
	vol2 := seedVolunteerUser(t, gdb, "vol2@example.com", "Le Van Cuong", constants.UserActive, nil)
	c := seedCampaign(t, gdb, org.ID, constants.CampaignPublished, 1)

	if _, err := svc.Register(ctx, c.ID, vol1.ID); err != nil {
		t.Fatalf("First registration failed: %v", err)
	}
	if _, err := svc.Register(ctx, c.ID, vol2.ID); !errors.Is(err, repositories.ErrCampaignFull) {
		t.Fatalf("Expected ErrCampaignFull, got %v", err)
	}

	view, err := svc.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if view.CurrentVolunteers != 1 {
		t.Errorf("Expected seat count 1, got %d", view.CurrentVolunteers)
	}
}

func TestCampaignService_Register_Duplicate(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newCampaignService(t, gdb)
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	vol := seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, nil)
	c := seedCampaign(t, gdb, org.ID, constants.CampaignPublished, 10)

	if _, err := svc.Register(ctx, c.ID, vol.ID); err != nil {
		t.Fatalf("Registration failed: %v", err)
	}
	if _, err := svc.Register(ctx, c.ID, vol.ID); !errors.Is(err, repositories.ErrAlreadyRegistered) {
		t.Fatalf("Expected ErrAlreadyRegistered, got %v", err)
	}
}

func TestCampaignService_Register_AfterCancellationReusesRow(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newCampaignService(t, gdb)
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	vol := seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, nil)
	c := seedCampaign(t, gdb, org.ID, constants.CampaignPublished, 10)

	first, err := svc.Register(ctx, c.ID, vol.ID)
	if err != nil {
		t.Fatalf("Registration failed: %v", err)
	}
	if err := svc.CancelRegistration(ctx, c.ID, vol.ID); err != nil {
		t.Fatalf("CancelRegistration failed: %v", err)
	}

	view, err := svc.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if view.CurrentVolunteers != 0 {
		t.Fatalf("Expected seat released, got %d", view.CurrentVolunteers)
	}

	second, err := svc.Register(ctx, c.ID, vol.ID)
	if err != nil {
		t.Fatalf("Re-registration failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("Expected the cancelled row reused, got %s and %s", first.ID, second.ID)
	}
	if second.Status != "REGISTERED" {
		t.Errorf("Expected status REGISTERED, got %s", second.Status)
	}
}

func TestCampaignService_MarkAttended_OwnerOnly(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newCampaignService(t, gdb)
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	vol := seedVolunteerUser(t, gdb, "vol@example.com", "Tran Van An", constants.UserActive, nil)
	c := seedCampaign(t, gdb, org.ID, constants.CampaignOngoing, 10)

	if _, err := svc.Register(ctx, c.ID, vol.ID); err != nil {
		t.Fatalf("Registration failed: %v", err)
	}

	if err := svc.MarkAttended(ctx, "someone-else", c.ID, vol.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Expected ErrForbidden, got %v", err)
	}
	if err := svc.MarkAttended(ctx, org.ID, c.ID, vol.ID); err != nil {
		t.Fatalf("MarkAttended failed: %v", err)
	}

	regs, err := svc.ListRegistrations(ctx, org.ID, c.ID)
	if err != nil {
		t.Fatalf("ListRegistrations failed: %v", err)
	}
	if len(regs) != 1 || regs[0].Status != "ATTENDED" {
		t.Errorf("Expected one ATTENDED registration, got %+v", regs)
	}
	if regs[0].Volunteer != "Tran Van An" {
		t.Errorf("Expected volunteer name resolved, got %q", regs[0].Volunteer)
	}
}

func TestCampaignService_RollStatuses_AdvancesByClock(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newCampaignService(t, gdb)
	ctx := context.Background()
	now := time.Now()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")

	opened := seedCampaign(t, gdb, org.ID, constants.CampaignPublished, 10)
	if err := gdb.Model(opened).Update("start_date", now.Add(-time.Hour)).Error; err != nil {
		t.Fatalf("Failed to backdate start: %v", err)
	}

	closed := seedCampaign(t, gdb, org.ID, constants.CampaignOngoing, 10)
	if err := gdb.Model(closed).Update("end_date", now.Add(-time.Hour)).Error; err != nil {
		t.Fatalf("Failed to backdate end: %v", err)
	}

	untouched := seedCampaign(t, gdb, org.ID, constants.CampaignPublished, 10)

	changed, err := svc.RollStatuses(ctx, now)
	if err != nil {
		t.Fatalf("RollStatuses failed: %v", err)
	}
	if changed != 2 {
		t.Errorf("Expected 2 rows changed, got %d", changed)
	}

	for id, want := range map[string]string{
		opened.ID:    "ONGOING",
		closed.ID:    "COMPLETED",
		untouched.ID: "PUBLISHED",
	} {
		view, err := svc.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get %s failed: %v", id, err)
		}
		if view.Status != want {
			t.Errorf("Campaign %s: expected %s, got %s", id, want, view.Status)
		}
	}
}
