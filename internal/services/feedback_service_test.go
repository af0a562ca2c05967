package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/db/repositories"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
)

func newFeedbackService(gdb *gorm.DB) *FeedbackService {
	return NewFeedbackService(
		repositories.NewFeedbackRepository(gdb),
		repositories.NewUserRepository(gdb),
	)
}

func TestFeedbackService_AddComment_OrgScopedToOwnMembers(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newFeedbackService(gdb)
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	member := seedVolunteerUser(t, gdb, "member@example.com", "Tran Van An", constants.UserActive, &org.ID)
	outsider := seedVolunteerUser(t, gdb, "outsider@example.com", "Le Van Binh", constants.UserActive, nil)

	view, err := svc.AddComment(ctx, member.ID, org.ID, &dtos.CreateCommentRequest{Body: "Reliable at every event"})
	if err != nil {
		t.Fatalf("AddComment on own member failed: %v", err)
	}
	if view.Body != "Reliable at every event" {
		t.Errorf("Unexpected comment body: %q", view.Body)
	}

	_, err = svc.AddComment(ctx, outsider.ID, org.ID, &dtos.CreateCommentRequest{Body: "nope"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("Expected ErrForbidden for a volunteer attached elsewhere, got %v", err)
	}
}

func TestFeedbackService_ListComments_OrgForbiddenForNonMembers(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newFeedbackService(gdb)
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	admin := seedUser(t, gdb, "admin@example.com", constants.RoleAdmin, constants.UserActive)
	outsider := seedVolunteerUser(t, gdb, "outsider@example.com", "Le Van Binh", constants.UserActive, nil)

	if _, err := svc.ListComments(ctx, outsider.ID, org.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("Expected ErrForbidden for the org, got %v", err)
	}
	if _, err := svc.ListComments(ctx, outsider.ID, admin.ID); err != nil {
		t.Fatalf("Admin list failed: %v", err)
	}
}

func TestFeedbackService_DeleteComment_OrgOnlyOwn(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newFeedbackService(gdb)
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	admin := seedUser(t, gdb, "admin@example.com", constants.RoleAdmin, constants.UserActive)
	member := seedVolunteerUser(t, gdb, "member@example.com", "Tran Van An", constants.UserActive, &org.ID)

	adminComment, err := svc.AddComment(ctx, member.ID, admin.ID, &dtos.CreateCommentRequest{Body: "from staff"})
	if err != nil {
		t.Fatalf("Admin AddComment failed: %v", err)
	}
	orgComment, err := svc.AddComment(ctx, member.ID, org.ID, &dtos.CreateCommentRequest{Body: "from org"})
	if err != nil {
		t.Fatalf("Org AddComment failed: %v", err)
	}

	// Another author's comment reads as missing for the org.
	if err := svc.DeleteComment(ctx, adminComment.ID, org.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound deleting another author's comment, got %v", err)
	}
	if err := svc.DeleteComment(ctx, orgComment.ID, org.ID); err != nil {
		t.Fatalf("Org failed to delete its own comment: %v", err)
	}
	if err := svc.DeleteComment(ctx, adminComment.ID, admin.ID); err != nil {
		t.Fatalf("Admin failed to delete a comment: %v", err)
	}

	comments, err := svc.ListComments(ctx, member.ID, admin.ID)
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("Expected no comments left, got %d", len(comments))
	}
}

func TestFeedbackService_DeleteCertificate_OrgOnlyOwn(t *testing.T) {
	gdb := setupTestDB(t)
	svc := newFeedbackService(gdb)
	ctx := context.Background()

	org := seedOrganizationUser(t, gdb, "org@example.com", "Helping Hands")
	admin := seedUser(t, gdb, "admin@example.com", constants.RoleAdmin, constants.UserActive)
	member := seedVolunteerUser(t, gdb, "member@example.com", "Tran Van An", constants.UserActive, &org.ID)

	issued, err := svc.IssueCertificate(ctx, member.ID, admin.ID, &dtos.CreateCertificateRequest{
		Title: "Flood relief 2026",
	})
	if err != nil {
		t.Fatalf("IssueCertificate failed: %v", err)
	}

	if err := svc.DeleteCertificate(ctx, issued.ID, org.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound revoking another issuer's certificate, got %v", err)
	}
	if err := svc.DeleteCertificate(ctx, issued.ID, admin.ID); err != nil {
		t.Fatalf("Admin failed to revoke the certificate: %v", err)
	}

	certs, err := svc.ListCertificates(ctx, member.ID, admin.ID)
	if err != nil {
		t.Fatalf("ListCertificates failed: %v", err)
	}
	if len(certs) != 0 {
		t.Errorf("Expected no certificates left, got %d", len(certs))
	}
}
