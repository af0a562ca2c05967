package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user and any non-nil profile in one transaction.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).
		Preload("VolunteerProfile").
		Preload("BeneficiaryProfile").
		Preload("OrganizationProfile").
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).
		Preload("VolunteerProfile").
		Preload("BeneficiaryProfile").
		Preload("OrganizationProfile").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return &user, nil
}

// List returns one page of users of the given role, with profile preloads.
// Search matches email and profile name; district narrows volunteers by
// preferred districts and organizations by their district column.
func (r *UserRepository) List(ctx context.Context, role constants.UserRole, q dtos.ListQuery) ([]entities.User, int64, error) {
	q.Normalize()

	tx := r.db.WithContext(ctx).Model(&entities.User{}).Where("users.role = ?", role)

	switch role {
	case constants.RoleVolunteer:
		tx = tx.Joins("LEFT JOIN volunteer_profiles vp ON vp.user_id = users.id")
		if q.Search != "" {
			like := "%" + q.Search + "%"
			tx = tx.Where("vp.full_name LIKE ? OR users.email LIKE ?", like, like)
		}
		if q.District != "" {
			tx = tx.Where("vp.preferred_districts LIKE ?", "%"+q.District+"%")
		}
	case constants.RoleBeneficiary:
		tx = tx.Joins("LEFT JOIN beneficiary_profiles bp ON bp.user_id = users.id")
		if q.Search != "" {
			like := "%" + q.Search + "%"
			tx = tx.Where("bp.full_name LIKE ? OR users.email LIKE ?", like, like)
		}
	case constants.RoleOrganization:
		tx = tx.Joins("LEFT JOIN organization_profiles op ON op.user_id = users.id")
		if q.Search != "" {
			like := "%" + q.Search + "%"
			tx = tx.Where("op.organization_name LIKE ? OR users.email LIKE ?", like, like)
		}
		if q.District != "" {
			tx = tx.Where("op.district = ?", q.District)
		}
	default:
		if q.Search != "" {
			tx = tx.Where("users.email LIKE ?", "%"+q.Search+"%")
		}
	}

	if q.Status != "" {
		tx = tx.Where("users.status = ?", q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var users []entities.User
	err := tx.
		Preload("VolunteerProfile").
		Preload("BeneficiaryProfile").
		Preload("OrganizationProfile").
		Order("users.created_at DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

// ListOrganizationMembers returns volunteers and beneficiaries attached to
// the organization.
func (r *UserRepository) ListOrganizationMembers(ctx context.Context, orgUserID string, role constants.UserRole, q dtos.ListQuery) ([]entities.User, int64, error) {
	q.Normalize()

	tx := r.db.WithContext(ctx).Model(&entities.User{}).Where("users.role = ?", role)

	switch role {
	case constants.RoleVolunteer:
		tx = tx.Joins("JOIN volunteer_profiles vp ON vp.user_id = users.id").
			Where("vp.organization_id = ?", orgUserID)
		if q.Search != "" {
			like := "%" + q.Search + "%"
			tx = tx.Where("vp.full_name LIKE ? OR users.email LIKE ?", like, like)
		}
	case constants.RoleBeneficiary:
		tx = tx.Joins("JOIN beneficiary_profiles bp ON bp.user_id = users.id").
			Where("bp.organization_id = ?", orgUserID)
		if q.Search != "" {
			like := "%" + q.Search + "%"
			tx = tx.Where("bp.full_name LIKE ? OR users.email LIKE ?", like, like)
		}
	default:
		return nil, 0, fmt.Errorf("organization members must be volunteers or beneficiaries")
	}

	if q.Status != "" {
		tx = tx.Where("users.status = ?", q.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	var users []entities.User
	err := tx.
		Preload("VolunteerProfile").
		Preload("BeneficiaryProfile").
		Order("users.created_at DESC").
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}

	return users, total, nil
}

func (r *UserRepository) UpdateStatus(ctx context.Context, id string, status constants.UserStatus) error {
	res := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update user status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *UserRepository) SaveVolunteerProfile(ctx context.Context, p *entities.VolunteerProfile) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("failed to save volunteer profile: %w", err)
	}
	return nil
}

func (r *UserRepository) SaveBeneficiaryProfile(ctx context.Context, p *entities.BeneficiaryProfile) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("failed to save beneficiary profile: %w", err)
	}
	return nil
}

func (r *UserRepository) SaveOrganizationProfile(ctx context.Context, p *entities.OrganizationProfile) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("failed to save organization profile: %w", err)
	}
	return nil
}

// SearchForChat returns active users whose name or email matches, for the
// chat operator's user search box.
func (r *UserRepository) SearchForChat(ctx context.Context, search string, limit int) ([]entities.User, error) {
	if limit <= 0 {
		limit = 20
	}
	like := "%" + search + "%"

	var users []entities.User
	err := r.db.WithContext(ctx).
		Preload("VolunteerProfile").
		Preload("BeneficiaryProfile").
		Preload("OrganizationProfile").
		Joins("LEFT JOIN volunteer_profiles vp ON vp.user_id = users.id").
		Joins("LEFT JOIN beneficiary_profiles bp ON bp.user_id = users.id").
		Joins("LEFT JOIN organization_profiles op ON op.user_id = users.id").
		Where("users.status = ?", constants.UserActive).
		Where("users.email LIKE ? OR vp.full_name LIKE ? OR bp.full_name LIKE ? OR op.organization_name LIKE ?",
			like, like, like, like).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) CountMembers(ctx context.Context, orgUserID string) (int64, error) {
	var volunteers, beneficiaries int64
	if err := r.db.WithContext(ctx).Model(&entities.VolunteerProfile{}).
		Where("organization_id = ?", orgUserID).Count(&volunteers).Error; err != nil {
		return 0, fmt.Errorf("failed to count volunteer members: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&entities.BeneficiaryProfile{}).
		Where("organization_id = ?", orgUserID).Count(&beneficiaries).Error; err != nil {
		return 0, fmt.Errorf("failed to count beneficiary members: %w", err)
	}
	return volunteers + beneficiaries, nil
}
