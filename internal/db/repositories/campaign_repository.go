package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

// ErrCampaignFull is returned when registration would exceed max volunteers.
var ErrCampaignFull = errors.New("campaign is full")

// ErrAlreadyRegistered is returned on a duplicate registration.
var ErrAlreadyRegistered = errors.New("volunteer already registered")

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) Create(ctx context.Context, c *entities.Campaign) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*entities.Campaign, error) {
	var c entities.Campaign
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch campaign: %w", err)
	}
	return &c, nil
}

// List returns one page of campaigns. orgID narrows to a single
// organization's campaigns when non-empty.
func (r *CampaignRepository) List(ctx context.Context, orgID string, q dtos.ListQuery) ([]entities.Campaign, int64, error) {
	q.Normalize()

	tx := r.db.WithContext(ctx).Model(&entities.Campaign{})
	if orgID != "" {
		tx = tx.Where("organization_id = ?", orgID)
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
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	var campaigns []entities.Campaign
	err := tx.Order("created_at DESC").Offset(q.Offset()).Limit(q.Limit).Find(&campaigns).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, total, nil
}

func (r *CampaignRepository) Save(ctx context.Context, c *entities.Campaign) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("failed to save campaign: %w", err)
	}
	return nil
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Campaign{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete campaign: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Register adds a volunteer to a campaign. The seat count is incremented in
// the same transaction and guarded against max_volunteers, so concurrent
// registrations cannot oversell the campaign.
func (r *CampaignRepository) Register(ctx context.Context, campaignID, volunteerID string) (*entities.CampaignRegistration, error) {
	var reg *entities.CampaignRegistration

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.CampaignRegistration
		err := tx.Where("campaign_id = ? AND volunteer_id = ?", campaignID, volunteerID).
			First(&existing).Error
		if err == nil && existing.Status != constants.RegistrationCancelled {
			return ErrAlreadyRegistered
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check registration: %w", err)
		}

		res := tx.Model(&entities.Campaign{}).
			Where("id = ? AND current_volunteers < max_volunteers", campaignID).
			Update("current_volunteers", gorm.Expr("current_volunteers + 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to claim seat: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrCampaignFull
		}

		if existing.ID != "" {
			// Re-registering after a cancellation reuses the row.
			existing.Status = constants.RegistrationRegistered
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("failed to reactivate registration: %w", err)
			}
			reg = &existing
			return nil
		}

		reg = &entities.CampaignRegistration{
			CampaignID:  campaignID,
			VolunteerID: volunteerID,
			Status:      constants.RegistrationRegistered,
		}
		if err := tx.Create(reg).Error; err != nil {
			return fmt.Errorf("failed to create registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// CancelRegistration releases the seat alongside the status flip.
func (r *CampaignRepository) CancelRegistration(ctx context.Context, campaignID, volunteerID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.CampaignRegistration{}).
			Where("campaign_id = ? AND volunteer_id = ? AND status = ?",
				campaignID, volunteerID, constants.RegistrationRegistered).
			Update("status", constants.RegistrationCancelled)
		if res.Error != nil {
			return fmt.Errorf("failed to cancel registration: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		return tx.Model(&entities.Campaign{}).
			Where("id = ? AND current_volunteers > 0", campaignID).
			Update("current_volunteers", gorm.Expr("current_volunteers - 1")).Error
	})
}

func (r *CampaignRepository) MarkAttended(ctx context.Context, campaignID, volunteerID string) error {
	res := r.db.WithContext(ctx).Model(&entities.CampaignRegistration{}).
		Where("campaign_id = ? AND volunteer_id = ? AND status = ?",
			campaignID, volunteerID, constants.RegistrationRegistered).
		Update("status", constants.RegistrationAttended)
	if res.Error != nil {
		return fmt.Errorf("failed to mark attendance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CampaignRepository) ListRegistrations(ctx context.Context, campaignID string) ([]entities.CampaignRegistration, error) {
	var regs []entities.CampaignRegistration
	err := r.db.WithContext(ctx).
		Preload("Volunteer").
		Preload("Volunteer.VolunteerProfile").
		Where("campaign_id = ?", campaignID).
		Order("registered_at ASC").
		Find(&regs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

// RollStatuses advances published campaigns whose window has opened and
// closes ongoing ones whose window has passed. Returns rows changed.
func (r *CampaignRepository) RollStatuses(ctx context.Context, now time.Time) (int64, error) {
	var changed int64

	res := r.db.WithContext(ctx).Model(&entities.Campaign{}).
		Where("status = ? AND start_date <= ?", constants.CampaignPublished, now).
		Update("status", constants.CampaignOngoing)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to open campaigns: %w", res.Error)
	}
	changed += res.RowsAffected

	res = r.db.WithContext(ctx).Model(&entities.Campaign{}).
		Where("status = ? AND end_date < ?", constants.CampaignOngoing, now).
		Update("status", constants.CampaignCompleted)
	if res.Error != nil {
		return changed, fmt.Errorf("failed to close campaigns: %w", res.Error)
	}
	changed += res.RowsAffected

	return changed, nil
}
