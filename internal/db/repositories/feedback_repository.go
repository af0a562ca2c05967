package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

// FeedbackRepository stores volunteer comments and certificates.
type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) CreateComment(ctx context.Context, c *entities.VolunteerComment) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) ListComments(ctx context.Context, volunteerID string) ([]entities.VolunteerComment, error) {
	var comments []entities.VolunteerComment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Author.OrganizationProfile").
		Where("volunteer_id = ?", volunteerID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (r *FeedbackRepository) DeleteComment(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.VolunteerComment{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCommentByAuthor deletes the comment only if authorID wrote it.
func (r *FeedbackRepository) DeleteCommentByAuthor(ctx context.Context, id, authorID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Delete(&entities.VolunteerComment{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FeedbackRepository) CreateCertificate(ctx context.Context, c *entities.Certificate) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create certificate: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) ListCertificates(ctx context.Context, volunteerID string) ([]entities.Certificate, error) {
	var certs []entities.Certificate
	err := r.db.WithContext(ctx).
		Preload("Issuer").
		Preload("Issuer.OrganizationProfile").
		Where("volunteer_id = ?", volunteerID).
		Order("issued_at DESC").
		Find(&certs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	return certs, nil
}

func (r *FeedbackRepository) DeleteCertificate(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Certificate{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete certificate: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCertificateByIssuer deletes the certificate only if issuerID issued
// it.
func (r *FeedbackRepository) DeleteCertificateByIssuer(ctx context.Context, id, issuerID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND issuer_id = ?", id, issuerID).
		Delete(&entities.Certificate{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete certificate: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
