package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/CtIaMbaCK/betterus-server/internal/auth"
	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/db/repositories"
	"github.com/CtIaMbaCK/betterus-server/internal/logging"
	"github.com/CtIaMbaCK/betterus-server/internal/metrics"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

// AccountService owns registration, login, and profile completion.
type AccountService struct {
	users    *repositories.UserRepository
	tokens   *auth.TokenManager
	validate *validator.Validate
	metrics  *metrics.MetricsRegistry
}

func NewAccountService(users *repositories.UserRepository, tokens *auth.TokenManager, metricsReg *metrics.MetricsRegistry) *AccountService {
	return &AccountService{
		users:    users,
		tokens:   tokens,
		validate: validator.New(),
		metrics:  metricsReg,
	}
}

// Register is step 1: creates a PENDING account from role + credentials and
// returns a token for the profile-completion step.
func (s *AccountService) Register(ctx context.Context, req *dtos.RegisterRequest) (*dtos.AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hash,
		Role:         constants.UserRole(req.Role),
		Status:       constants.UserPending,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RegistrationsTotal.WithLabelValues(user.Role.String()).Inc()
	}
	logging.Info("Account registered", "user_id", user.ID, "role", user.Role.String())

	view := toUserView(user)
	return &dtos.AuthResponse{AccessToken: token, User: &view}, nil
}

// CompleteProfile is step 2: attaches the role-specific profile. The branch
// must match the role recorded at step 1.
func (s *AccountService) CompleteProfile(ctx context.Context, userID string, req *dtos.CompleteProfileRequest) (*dtos.UserView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	switch user.Role {
	case constants.RoleVolunteer:
		if req.Volunteer == nil {
			return nil, &ValidationError{Field: "volunteer", Message: "volunteer profile is required"}
		}
		if err := s.validate.Struct(req.Volunteer); err != nil {
			return nil, validationError(err)
		}
		if user.VolunteerProfile != nil {
			return nil, ErrProfileStage
		}
		in := req.Volunteer
		profile := &entities.VolunteerProfile{
			UserID:             user.ID,
			FullName:           in.FullName,
			AvatarURL:          in.AvatarURL,
			Skills:             in.Skills,
			ExperienceYears:    in.ExperienceYears,
			Bio:                in.Bio,
			PreferredDistricts: in.PreferredDistricts,
			CccdFrontURL:       in.CccdFrontURL,
			CccdBackURL:        in.CccdBackURL,
		}
		if err := s.users.SaveVolunteerProfile(ctx, profile); err != nil {
			return nil, err
		}
		user.VolunteerProfile = profile

	case constants.RoleBeneficiary:
		if req.Beneficiary == nil {
			return nil, &ValidationError{Field: "beneficiary", Message: "beneficiary profile is required"}
		}
		if err := s.validate.Struct(req.Beneficiary); err != nil {
			return nil, validationError(err)
		}
		if user.BeneficiaryProfile != nil {
			return nil, ErrProfileStage
		}
		in := req.Beneficiary
		profile := &entities.BeneficiaryProfile{
			UserID:               user.ID,
			FullName:             in.FullName,
			VulnerabilityType:    in.VulnerabilityType,
			SituationDescription: in.SituationDescription,
			HealthCondition:      in.HealthCondition,
			GuardianName:         in.GuardianName,
			GuardianPhone:        in.GuardianPhone,
			GuardianRelation:     in.GuardianRelation,
			CccdFrontURL:         in.CccdFrontURL,
			CccdBackURL:          in.CccdBackURL,
		}
		if err := s.users.SaveBeneficiaryProfile(ctx, profile); err != nil {
			return nil, err
		}
		user.BeneficiaryProfile = profile

	case constants.RoleOrganization:
		if req.Organization == nil {
			return nil, &ValidationError{Field: "organization", Message: "organization profile is required"}
		}
		if err := s.validate.Struct(req.Organization); err != nil {
			return nil, validationError(err)
		}
		if user.OrganizationProfile != nil {
			return nil, ErrProfileStage
		}
		in := req.Organization
		profile := &entities.OrganizationProfile{
			UserID:             user.ID,
			OrganizationName:   in.OrganizationName,
			RepresentativeName: in.RepresentativeName,
			Description:        in.Description,
			Website:            in.Website,
			District:           in.District,
			AddressDetail:      in.AddressDetail,
			BusinessLicenseURL: in.BusinessLicenseURL,
			VerificationDocs:   in.VerificationDocs,
		}
		if err := s.users.SaveOrganizationProfile(ctx, profile); err != nil {
			return nil, err
		}
		user.OrganizationProfile = profile

	default:
		return nil, ErrForbidden
	}

	view := toUserView(user)
	return &view, nil
}

// Login checks credentials and issues a token. Banned and denied accounts
// cannot sign in.
func (s *AccountService) Login(ctx context.Context, req *dtos.LoginRequest) (*dtos.AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrBadPassword
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrBadPassword
	}
	if user.Status == constants.UserBanned || user.Status == constants.UserDenied {
		return nil, ErrForbidden
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	view := toUserView(user)
	return &dtos.AuthResponse{AccessToken: token, User: &view}, nil
}

// GetMe returns the caller's own account view.
func (s *AccountService) GetMe(ctx context.Context, userID string) (*dtos.UserView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	view := toUserView(user)
	return &view, nil
}

// CreateMemberAccount is the admin/org create page: the account starts
// ACTIVE with a minimal profile. creatorOrgID attaches the member to the
// creating organization; empty for admin-created accounts.
func (s *AccountService) CreateMemberAccount(ctx context.Context, creatorOrgID string, req *dtos.CreateMemberAccountRequest) (*dtos.UserView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var orgRef *string
	if creatorOrgID != "" {
		orgRef = &creatorOrgID
	}

	user := &entities.User{
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hash,
		Role:         constants.UserRole(req.Role),
		Status:       constants.UserActive,
	}
	switch user.Role {
	case constants.RoleVolunteer:
		user.VolunteerProfile = &entities.VolunteerProfile{
			FullName:       req.FullName,
			OrganizationID: orgRef,
		}
	case constants.RoleBeneficiary:
		user.BeneficiaryProfile = &entities.BeneficiaryProfile{
			FullName:       req.FullName,
			OrganizationID: orgRef,
		}
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if user.VolunteerProfile != nil {
		user.VolunteerProfile.UserID = user.ID
		if err := s.users.SaveVolunteerProfile(ctx, user.VolunteerProfile); err != nil {
			return nil, err
		}
	}
	if user.BeneficiaryProfile != nil {
		user.BeneficiaryProfile.UserID = user.ID
		if err := s.users.SaveBeneficiaryProfile(ctx, user.BeneficiaryProfile); err != nil {
			return nil, err
		}
	}

	logging.Info("Member account created", "user_id", user.ID, "role", user.Role.String(), "by_org", creatorOrgID)

	view := toUserView(user)
	return &view, nil
}

// validationError converts validator output to a field-level error.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return &ValidationError{
			Field:   first.Field(),
			Message: fmt.Sprintf("failed on the '%s' rule", first.Tag()),
		}
	}
	return &ValidationError{Message: err.Error()}
}
