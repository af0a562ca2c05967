package services

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/db/repositories"
	"github.com/CtIaMbaCK/betterus-server/internal/logging"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

// UserAdminService backs the admin and organization user-management pages.
type UserAdminService struct {
	users    *repositories.UserRepository
	validate *validator.Validate
}

func NewUserAdminService(users *repositories.UserRepository) *UserAdminService {
	return &UserAdminService{users: users, validate: validator.New()}
}

func (s *UserAdminService) ListVolunteers(ctx context.Context, q dtos.ListQuery) (*dtos.PagedResponse[dtos.UserView], error) {
	return s.listByRole(ctx, constants.RoleVolunteer, q)
}

func (s *UserAdminService) ListBeneficiaries(ctx context.Context, q dtos.ListQuery) (*dtos.PagedResponse[dtos.UserView], error) {
	return s.listByRole(ctx, constants.RoleBeneficiary, q)
}

func (s *UserAdminService) ListOrganizations(ctx context.Context, q dtos.ListQuery) (*dtos.PagedResponse[dtos.UserView], error) {
	return s.listByRole(ctx, constants.RoleOrganization, q)
}

func (s *UserAdminService) listByRole(ctx context.Context, role constants.UserRole, q dtos.ListQuery) (*dtos.PagedResponse[dtos.UserView], error) {
	q.Normalize()
	users, total, err := s.users.List(ctx, role, q)
	if err != nil {
		return nil, err
	}
	views := make([]dtos.UserView, 0, len(users))
	for i := range users {
		views = append(views, toUserView(&users[i]))
	}
	return dtos.NewPagedResponse(views, total, q.Page, q.Limit), nil
}

// ListMembers returns the volunteers or beneficiaries attached to an
// organization, for the org's member pages.
func (s *UserAdminService) ListMembers(ctx context.Context, orgUserID string, role constants.UserRole, q dtos.ListQuery) (*dtos.PagedResponse[dtos.UserView], error) {
	q.Normalize()
	users, total, err := s.users.ListOrganizationMembers(ctx, orgUserID, role, q)
	if err != nil {
		return nil, err
	}
	views := make([]dtos.UserView, 0, len(users))
	for i := range users {
		views = append(views, toUserView(&users[i]))
	}
	return dtos.NewPagedResponse(views, total, q.Page, q.Limit), nil
}

func (s *UserAdminService) GetVolunteer(ctx context.Context, id string) (*dtos.VolunteerDetail, error) {
	user, err := s.getByRole(ctx, id, constants.RoleVolunteer)
	if err != nil {
		return nil, err
	}

	orgName := ""
	if p := user.VolunteerProfile; p != nil && p.OrganizationID != nil {
		org, err := s.users.GetByID(ctx, *p.OrganizationID)
		if err == nil && org.OrganizationProfile != nil {
			orgName = org.OrganizationProfile.OrganizationName
		}
	}
	return toVolunteerDetail(user, orgName), nil
}

func (s *UserAdminService) GetBeneficiary(ctx context.Context, id string) (*dtos.BeneficiaryDetail, error) {
	user, err := s.getByRole(ctx, id, constants.RoleBeneficiary)
	if err != nil {
		return nil, err
	}
	return toBeneficiaryDetail(user), nil
}

func (s *UserAdminService) GetOrganization(ctx context.Context, id string) (*dtos.OrganizationDetail, error) {
	user, err := s.getByRole(ctx, id, constants.RoleOrganization)
	if err != nil {
		return nil, err
	}
	members, err := s.users.CountMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrganizationDetail(user, members), nil
}

func (s *UserAdminService) getByRole(ctx context.Context, id string, role constants.UserRole) (*entities.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if user.Role != role {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateStatus applies one transition of the account status machine.
// Approving a PENDING account and banning an ACTIVE one go through here.
func (s *UserAdminService) UpdateStatus(ctx context.Context, id string, req *dtos.UpdateUserStatusRequest) (*dtos.UserView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	next := constants.UserStatus(req.Status)
	if !user.Status.CanTransitionTo(next) {
		return nil, &TransitionError{From: user.Status.String(), To: next.String()}
	}

	if err := s.users.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	logging.Info("User status changed", "user_id", id, "from", user.Status.String(), "to", next.String())

	user.Status = next
	view := toUserView(user)
	return &view, nil
}

// UpdateVolunteer applies a partial profile update. An empty patch is
// rejected rather than silently succeeding.
func (s *UserAdminService) UpdateVolunteer(ctx context.Context, id string, req *dtos.UpdateVolunteerRequest) (*dtos.VolunteerDetail, error) {
	if req.IsEmpty() {
		return nil, ErrNoChanges
	}

	user, err := s.getByRole(ctx, id, constants.RoleVolunteer)
	if err != nil {
		return nil, err
	}
	if user.VolunteerProfile == nil {
		return nil, ErrNotFound
	}

	p := user.VolunteerProfile
	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.AvatarURL != nil {
		p.AvatarURL = *req.AvatarURL
	}
	if req.Skills != nil {
		p.Skills = *req.Skills
	}
	if req.ExperienceYears != nil {
		p.ExperienceYears = *req.ExperienceYears
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.PreferredDistricts != nil {
		p.PreferredDistricts = *req.PreferredDistricts
	}
	if req.OrganizationID != nil {
		if *req.OrganizationID == "" {
			p.OrganizationID = nil
		} else {
			if _, err := s.getByRole(ctx, *req.OrganizationID, constants.RoleOrganization); err != nil {
				return nil, err
			}
			p.OrganizationID = req.OrganizationID
		}
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
	}

	if err := s.users.SaveVolunteerProfile(ctx, p); err != nil {
		return nil, err
	}
	return s.GetVolunteer(ctx, id)
}

func (s *UserAdminService) UpdateBeneficiary(ctx context.Context, id string, req *dtos.UpdateBeneficiaryRequest) (*dtos.BeneficiaryDetail, error) {
	if req.IsEmpty() {
		return nil, ErrNoChanges
	}

	user, err := s.getByRole(ctx, id, constants.RoleBeneficiary)
	if err != nil {
		return nil, err
	}
	if user.BeneficiaryProfile == nil {
		return nil, ErrNotFound
	}

	p := user.BeneficiaryProfile
	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.VulnerabilityType != nil {
		p.VulnerabilityType = *req.VulnerabilityType
	}
	if req.SituationDescription != nil {
		p.SituationDescription = *req.SituationDescription
	}
	if req.HealthCondition != nil {
		p.HealthCondition = *req.HealthCondition
	}
	if req.GuardianName != nil {
		p.GuardianName = *req.GuardianName
	}
	if req.GuardianPhone != nil {
		p.GuardianPhone = *req.GuardianPhone
	}
	if req.GuardianRelation != nil {
		p.GuardianRelation = *req.GuardianRelation
	}
	if req.OrganizationID != nil {
		if *req.OrganizationID == "" {
			p.OrganizationID = nil
		} else {
			if _, err := s.getByRole(ctx, *req.OrganizationID, constants.RoleOrganization); err != nil {
				return nil, err
			}
			p.OrganizationID = req.OrganizationID
		}
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
	}

	if err := s.users.SaveBeneficiaryProfile(ctx, p); err != nil {
		return nil, err
	}
	return s.GetBeneficiary(ctx, id)
}

func (s *UserAdminService) UpdateOrganization(ctx context.Context, id string, req *dtos.UpdateOrganizationRequest) (*dtos.OrganizationDetail, error) {
	if req.IsEmpty() {
		return nil, ErrNoChanges
	}

	user, err := s.getByRole(ctx, id, constants.RoleOrganization)
	if err != nil {
		return nil, err
	}
	if user.OrganizationProfile == nil {
		return nil, ErrNotFound
	}

	p := user.OrganizationProfile
	if req.OrganizationName != nil {
		p.OrganizationName = *req.OrganizationName
	}
	if req.RepresentativeName != nil {
		p.RepresentativeName = *req.RepresentativeName
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Website != nil {
		p.Website = *req.Website
	}
	if req.District != nil {
		p.District = *req.District
	}
	if req.AddressDetail != nil {
		p.AddressDetail = *req.AddressDetail
	}
	if req.BusinessLicenseURL != nil {
		p.BusinessLicenseURL = *req.BusinessLicenseURL
	}
	if req.VerificationDocs != nil {
		p.VerificationDocs = *req.VerificationDocs
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
	}

	if err := s.users.SaveOrganizationProfile(ctx, p); err != nil {
		return nil, err
	}
	return s.GetOrganization(ctx, id)
}
