package dtos

import "time"

// RegisterRequest is step 1 of registration: role and credentials.
type RegisterRequest struct {
	Role            string `json:"role" validate:"required,oneof=VOLUNTEER BENEFICIARY ORGANIZATION"`
	Email           string `json:"email" validate:"required,email"`
	PhoneNumber     string `json:"phoneNumber" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CompleteProfileRequest is step 2 of registration. The role recorded at
// step 1 decides which branch must be present.
type CompleteProfileRequest struct {
	Volunteer    *VolunteerProfileInput    `json:"volunteer,omitempty"`
	Beneficiary  *BeneficiaryProfileInput  `json:"beneficiary,omitempty"`
	Organization *OrganizationProfileInput `json:"organization,omitempty"`
}

type VolunteerProfileInput struct {
	FullName           string   `json:"fullName" validate:"required,min=2"`
	AvatarURL          string   `json:"avatarUrl"`
	Skills             []string `json:"skills" validate:"required,min=1"`
	ExperienceYears    int      `json:"experienceYears" validate:"gte=0"`
	Bio                string   `json:"bio"`
	PreferredDistricts []string `json:"preferredDistricts"`
	CccdFrontURL       string   `json:"cccdFrontUrl" validate:"required"`
	CccdBackURL        string   `json:"cccdBackUrl" validate:"required"`
}

type BeneficiaryProfileInput struct {
	FullName             string `json:"fullName" validate:"required,min=2"`
	VulnerabilityType    string `json:"vulnerabilityType" validate:"required"`
	SituationDescription string `json:"situationDescription" validate:"required,min=10"`
	HealthCondition      string `json:"healthCondition"`
	GuardianName         string `json:"guardianName"`
	GuardianPhone        string `json:"guardianPhone"`
	GuardianRelation     string `json:"guardianRelation"`
	CccdFrontURL         string `json:"cccdFrontUrl" validate:"required"`
	CccdBackURL          string `json:"cccdBackUrl" validate:"required"`
}

type OrganizationProfileInput struct {
	OrganizationName   string   `json:"organizationName" validate:"required,min=2"`
	RepresentativeName string   `json:"representativeName" validate:"required"`
	Description        string   `json:"description"`
	Website            string   `json:"website"`
	District           string   `json:"district" validate:"required"`
	AddressDetail      string   `json:"addressDetail"`
	BusinessLicenseURL string   `json:"businessLicenseUrl" validate:"required"`
	VerificationDocs   []string `json:"verificationDocs"`
}

// CreateMemberAccountRequest is the admin/organization create-account form
// for volunteers and beneficiaries; accounts created this way start ACTIVE.
type CreateMemberAccountRequest struct {
	Role        string `json:"role" validate:"required,oneof=VOLUNTEER BENEFICIARY"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"fullName" validate:"required,min=2"`
}

// UpdateUserStatusRequest carries a single status transition.
type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=ACTIVE BANNED DENIED"`
}

// UpdateVolunteerRequest is a partial update; nil fields are left untouched.
type UpdateVolunteerRequest struct {
	FullName           *string   `json:"fullName,omitempty"`
	PhoneNumber        *string   `json:"phoneNumber,omitempty"`
	AvatarURL          *string   `json:"avatarUrl,omitempty"`
	Skills             *[]string `json:"skills,omitempty"`
	ExperienceYears    *int      `json:"experienceYears,omitempty"`
	Bio                *string   `json:"bio,omitempty"`
	PreferredDistricts *[]string `json:"preferredDistricts,omitempty"`
	OrganizationID     *string   `json:"organizationId,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (r *UpdateVolunteerRequest) IsEmpty() bool {
	return r.FullName == nil && r.PhoneNumber == nil && r.AvatarURL == nil &&
		r.Skills == nil && r.ExperienceYears == nil && r.Bio == nil &&
		r.PreferredDistricts == nil && r.OrganizationID == nil
}

type UpdateBeneficiaryRequest struct {
	FullName             *string `json:"fullName,omitempty"`
	PhoneNumber          *string `json:"phoneNumber,omitempty"`
	VulnerabilityType    *string `json:"vulnerabilityType,omitempty"`
	SituationDescription *string `json:"situationDescription,omitempty"`
	HealthCondition      *string `json:"healthCondition,omitempty"`
	GuardianName         *string `json:"guardianName,omitempty"`
	GuardianPhone        *string `json:"guardianPhone,omitempty"`
	GuardianRelation     *string `json:"guardianRelation,omitempty"`
	OrganizationID       *string `json:"organizationId,omitempty"`
}

func (r *UpdateBeneficiaryRequest) IsEmpty() bool {
	return r.FullName == nil && r.PhoneNumber == nil && r.VulnerabilityType == nil &&
		r.SituationDescription == nil && r.HealthCondition == nil &&
		r.GuardianName == nil && r.GuardianPhone == nil &&
		r.GuardianRelation == nil && r.OrganizationID == nil
}

type UpdateOrganizationRequest struct {
	OrganizationName   *string   `json:"organizationName,omitempty"`
	RepresentativeName *string   `json:"representativeName,omitempty"`
	PhoneNumber        *string   `json:"phoneNumber,omitempty"`
	Description        *string   `json:"description,omitempty"`
	Website            *string   `json:"website,omitempty"`
	District           *string   `json:"district,omitempty"`
	AddressDetail      *string   `json:"addressDetail,omitempty"`
	BusinessLicenseURL *string   `json:"businessLicenseUrl,omitempty"`
	VerificationDocs   *[]string `json:"verificationDocs,omitempty"`
}

func (r *UpdateOrganizationRequest) IsEmpty() bool {
	return r.OrganizationName == nil && r.RepresentativeName == nil &&
		r.PhoneNumber == nil && r.Description == nil && r.Website == nil &&
		r.District == nil && r.AddressDetail == nil &&
		r.BusinessLicenseURL == nil && r.VerificationDocs == nil
}

type CreateCampaignRequest struct {
	Title            string    `json:"title" validate:"required,min=5"`
	Description      string    `json:"description" validate:"required,min=20"`
	Goal             string    `json:"goal" validate:"required"`
	District         string    `json:"district" validate:"required"`
	AddressDetail    string    `json:"addressDetail"`
	StartDate        time.Time `json:"startDate" validate:"required"`
	EndDate          time.Time `json:"endDate" validate:"required,gtfield=StartDate"`
	TargetVolunteers int       `json:"targetVolunteers" validate:"gt=0"`
	MaxVolunteers    int       `json:"maxVolunteers" validate:"omitempty,gtefield=TargetVolunteers"`
	CoverImageURL    string    `json:"coverImage"`
	Images           []string  `json:"images"`
}

type UpdateCampaignRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Goal          *string    `json:"goal,omitempty"`
	District      *string    `json:"district,omitempty"`
	AddressDetail *string    `json:"addressDetail,omitempty"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
	MaxVolunteers *int       `json:"maxVolunteers,omitempty"`
	Status        *string    `json:"status,omitempty"`
	CoverImageURL *string    `json:"coverImage,omitempty"`
	Images        *[]string  `json:"images,omitempty"`
}

type CreateHelpRequestRequest struct {
	Title         string    `json:"title" validate:"required,min=5"`
	Description   string    `json:"description" validate:"required,min=10"`
	ActivityType  string    `json:"activityType" validate:"required"`
	UrgencyLevel  string    `json:"urgencyLevel" validate:"required,oneof=LOW MEDIUM HIGH URGENT"`
	District      string    `json:"district" validate:"required"`
	AddressDetail string    `json:"addressDetail"`
	StartAt       time.Time `json:"startAt" validate:"required"`
	EndAt         time.Time `json:"endAt" validate:"required,gtfield=StartAt"`
	ActivityImage string    `json:"activityImage"`
}

// ModerateHelpRequestRequest approves or rejects a PENDING request.
type ModerateHelpRequestRequest struct {
	Status string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
}

type AssignVolunteerRequest struct {
	VolunteerID string `json:"volunteerId" validate:"required,uuid4"`
}

type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1"`
}

type CreateCertificateRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// ListQuery is the common list-page filter set. Page starts at 1.
type ListQuery struct {
	Search   string
	Status   string
	District string
	Page     int
	Limit    int
}

// Normalize clamps paging values to sane defaults.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 10
	}
}

// Offset returns the SQL offset for the current page.
func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
