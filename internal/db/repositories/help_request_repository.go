package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

type HelpRequestRepository struct {
	db *gorm.DB
}

func NewHelpRequestRepository(db *gorm.DB) *HelpRequestRepository {
	return &HelpRequestRepository{db: db}
}

func (r *HelpRequestRepository) Create(ctx context.Context, h *entities.HelpRequest) error {
	if err := r.db.WithContext(ctx).Create(h).Error; err != nil {
		return fmt.Errorf("failed to create help request: %w", err)
	}
	return nil
}

func (r *HelpRequestRepository) GetByID(ctx context.Context, id string) (*entities.HelpRequest, error) {
	var h entities.HelpRequest
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Requester.BeneficiaryProfile").
		Preload("Volunteer").
		Preload("Volunteer.VolunteerProfile").
		Where("id = ?", id).
		First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch help request: %w", err)
	}
	return &h, nil
}

// List returns one page ordered PENDING-first, then newest. requesterID and
// volunteerID narrow to a single user's requests/assignments when set.
func (r *HelpRequestRepository) List(ctx context.Context, requesterID, volunteerID string, q dtos.ListQuery) ([]entities.HelpRequest, int64, error) {
	q.Normalize()

	tx := r.db.WithContext(ctx).Model(&entities.HelpRequest{})
	if requesterID != "" {
		tx = tx.Where("requester_id = ?", requesterID)
	}
	if volunteerID != "" {
		tx = tx.Where("volunteer_id = ?", volunteerID)
	}
	if q.Search != "" {
		tx = tx.Where("title LIKE ?", "%"+q.Search+"%")
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.District != "" {
		tx = tx.Where("district = ?", q.District)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count help requests: %w", err)
	}

	var requests []entities.HelpRequest
	err := tx.
		Preload("Requester").
		Preload("Requester.BeneficiaryProfile").
		Preload("Volunteer").
		Preload("Volunteer.VolunteerProfile").
		Order("CASE WHEN status = 'PENDING' THEN 0 ELSE 1 END, created_at DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&requests).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list help requests: %w", err)
	}
	return requests, total, nil
}

func (r *HelpRequestRepository) Save(ctx context.Context, h *entities.HelpRequest) error {
	if err := r.db.WithContext(ctx).Save(h).Error; err != nil {
		return fmt.Errorf("failed to save help request: %w", err)
	}
	return nil
}
