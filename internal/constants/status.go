package constants

// UserStatus is the account lifecycle state.
type UserStatus string

const (
	UserPending UserStatus = "PENDING"
	UserActive  UserStatus = "ACTIVE"
	UserBanned  UserStatus = "BANNED"
	UserDenied  UserStatus = "DENIED"
)

func (s UserStatus) String() string { return string(s) }

// userTransitions enumerates the legal account status transitions. PENDING
// accounts are approved or denied; only ACTIVE accounts can be banned.
var userTransitions = map[UserStatus][]UserStatus{
	UserPending: {UserActive, UserDenied},
	UserActive:  {UserBanned},
	UserBanned:  {UserActive},
}

// CanTransitionTo reports whether the account may move to the target state.
func (s UserStatus) CanTransitionTo(target UserStatus) bool {
	for _, t := range userTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// HelpRequestStatus is the moderation/fulfilment state of a help request.
type HelpRequestStatus string

const (
	HelpPending   HelpRequestStatus = "PENDING"
	HelpApproved  HelpRequestStatus = "APPROVED"
	HelpRejected  HelpRequestStatus = "REJECTED"
	HelpOngoing   HelpRequestStatus = "ONGOING"
	HelpCompleted HelpRequestStatus = "COMPLETED"
	HelpCancelled HelpRequestStatus = "CANCELLED"
)

func (s HelpRequestStatus) String() string { return string(s) }

var helpTransitions = map[HelpRequestStatus][]HelpRequestStatus{
	HelpPending:  {HelpApproved, HelpRejected, HelpCancelled},
	HelpApproved: {HelpOngoing, HelpCancelled},
	HelpOngoing:  {HelpCompleted, HelpCancelled},
}

// CanTransitionTo reports whether the help request may move to the target
// state. REJECTED, COMPLETED, and CANCELLED are terminal.
func (s HelpRequestStatus) CanTransitionTo(target HelpRequestStatus) bool {
	for _, t := range helpTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// CampaignStatus is the campaign lifecycle state.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "DRAFT"
	CampaignPublished CampaignStatus = "PUBLISHED"
	CampaignOngoing   CampaignStatus = "ONGOING"
	CampaignCompleted CampaignStatus = "COMPLETED"
	CampaignCancelled CampaignStatus = "CANCELLED"
)

func (s CampaignStatus) String() string { return string(s) }

var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignDraft:     {CampaignPublished, CampaignCancelled},
	CampaignPublished: {CampaignOngoing, CampaignCancelled},
	CampaignOngoing:   {CampaignCompleted, CampaignCancelled},
}

// CanTransitionTo reports whether the campaign may move to the target state.
// COMPLETED and CANCELLED are terminal.
func (s CampaignStatus) CanTransitionTo(target CampaignStatus) bool {
	for _, t := range campaignTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// RegistrationStatus is the state of a volunteer's campaign registration.
type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "REGISTERED"
	RegistrationAttended   RegistrationStatus = "ATTENDED"
	RegistrationCancelled  RegistrationStatus = "CANCELLED"
)

func (s RegistrationStatus) String() string { return string(s) }
