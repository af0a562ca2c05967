package dtos

import "time"

// PagedResponse wraps list results with the paging totals every list page
// renders from.
type PagedResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPagedResponse computes TotalPages from the total row count.
func NewPagedResponse[T any](items []T, total int64, page, limit int) *PagedResponse[T] {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return &PagedResponse[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

type AuthResponse struct {
	AccessToken string    `json:"accessToken"`
	User        *UserView `json:"user"`
}

type UserView struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	FullName    string    `json:"fullName"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type VolunteerDetail struct {
	UserView
	Skills             []string `json:"skills"`
	ExperienceYears    int      `json:"experienceYears"`
	Bio                string   `json:"bio"`
	PreferredDistricts []string `json:"preferredDistricts"`
	Points             int      `json:"points"`
	CccdFrontURL       string   `json:"cccdFrontUrl,omitempty"`
	CccdBackURL        string   `json:"cccdBackUrl,omitempty"`
	OrganizationID     *string  `json:"organizationId,omitempty"`
	OrganizationName   string   `json:"organizationName,omitempty"`
}

type BeneficiaryDetail struct {
	UserView
	VulnerabilityType    string  `json:"vulnerabilityType"`
	SituationDescription string  `json:"situationDescription"`
	HealthCondition      string  `json:"healthCondition"`
	GuardianName         string  `json:"guardianName"`
	GuardianPhone        string  `json:"guardianPhone"`
	GuardianRelation     string  `json:"guardianRelation"`
	CccdFrontURL         string  `json:"cccdFrontUrl,omitempty"`
	CccdBackURL          string  `json:"cccdBackUrl,omitempty"`
	OrganizationID       *string `json:"organizationId,omitempty"`
}

type OrganizationDetail struct {
	UserView
	OrganizationName   string   `json:"organizationName"`
	RepresentativeName string   `json:"representativeName"`
	Description        string   `json:"description"`
	Website            string   `json:"website"`
	District           string   `json:"district"`
	AddressDetail      string   `json:"addressDetail"`
	BusinessLicenseURL string   `json:"businessLicenseUrl,omitempty"`
	VerificationDocs   []string `json:"verificationDocs,omitempty"`
	MemberCount        int64    `json:"memberCount"`
}

type CampaignView struct {
	ID                string    `json:"id"`
	OrganizationID    string    `json:"organizationId"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Goal              string    `json:"goal"`
	District          string    `json:"district"`
	AddressDetail     string    `json:"addressDetail"`
	StartDate         time.Time `json:"startDate"`
	EndDate           time.Time `json:"endDate"`
	TargetVolunteers  int       `json:"targetVolunteers"`
	MaxVolunteers     int       `json:"maxVolunteers"`
	CurrentVolunteers int       `json:"currentVolunteers"`
	Status            string    `json:"status"`
	CoverImageURL     string    `json:"coverImage,omitempty"`
	Images            []string  `json:"images,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

type RegistrationView struct {
	ID           string    `json:"id"`
	CampaignID   string    `json:"campaignId"`
	VolunteerID  string    `json:"volunteerId"`
	Volunteer    string    `json:"volunteerName"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type HelpRequestView struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ActivityType  string    `json:"activityType"`
	UrgencyLevel  string    `json:"urgencyLevel"`
	District      string    `json:"district"`
	AddressDetail string    `json:"addressDetail"`
	StartAt       time.Time `json:"startAt"`
	EndAt         time.Time `json:"endAt"`
	Status        string    `json:"status"`
	RequesterID   string    `json:"requesterId"`
	Requester     string    `json:"requesterName"`
	VolunteerID   *string   `json:"volunteerId,omitempty"`
	Volunteer     string    `json:"volunteerName,omitempty"`
	ActivityImage string    `json:"activityImage,omitempty"`
	ProofImages   []string  `json:"proofImages,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type ConversationView struct {
	ID          string    `json:"id"`
	OtherUserID string    `json:"otherUserId"`
	OtherUser   string    `json:"otherUserName"`
	OtherRole   string    `json:"otherUserRole"`
	LastContent string    `json:"lastMessage"`
	LastSender  string    `json:"lastSenderId"`
	LastSentAt  time.Time `json:"lastSentAt"`
	IsRead      bool      `json:"isRead"`
}

type MessageView struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	ClientID       string    `json:"clientId,omitempty"`
	Content        string    `json:"content"`
	IsRead         bool      `json:"isRead"`
	CreatedAt      time.Time `json:"createdAt"`
}

type CommentView struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Author    string    `json:"authorName"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

type CertificateView struct {
	ID          string    `json:"id"`
	IssuerID    string    `json:"issuerId"`
	Issuer      string    `json:"issuerName"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IssuedAt    time.Time `json:"issuedAt"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
}
