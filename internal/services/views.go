package services

import (
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

// View mapping between entities and response DTOs, shared by the services.

func toUserView(u *entities.User) dtos.UserView {
	view := dtos.UserView{
		ID:          u.ID,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role.String(),
		Status:      u.Status.String(),
		FullName:    u.DisplayName(),
		CreatedAt:   u.CreatedAt,
	}
	if u.VolunteerProfile != nil {
		view.AvatarURL = u.VolunteerProfile.AvatarURL
	}
	return view
}

func toVolunteerDetail(u *entities.User, orgName string) *dtos.VolunteerDetail {
	detail := &dtos.VolunteerDetail{UserView: toUserView(u)}
	if p := u.VolunteerProfile; p != nil {
		detail.Skills = p.Skills
		detail.ExperienceYears = p.ExperienceYears
		detail.Bio = p.Bio
		detail.PreferredDistricts = p.PreferredDistricts
		detail.Points = p.Points
		detail.CccdFrontURL = p.CccdFrontURL
		detail.CccdBackURL = p.CccdBackURL
		detail.OrganizationID = p.OrganizationID
	}
	detail.OrganizationName = orgName
	return detail
}

func toBeneficiaryDetail(u *entities.User) *dtos.BeneficiaryDetail {
	detail := &dtos.BeneficiaryDetail{UserView: toUserView(u)}
	if p := u.BeneficiaryProfile; p != nil {
		detail.VulnerabilityType = p.VulnerabilityType
		detail.SituationDescription = p.SituationDescription
		detail.HealthCondition = p.HealthCondition
		detail.GuardianName = p.GuardianName
		detail.GuardianPhone = p.GuardianPhone
		detail.GuardianRelation = p.GuardianRelation
		detail.CccdFrontURL = p.CccdFrontURL
		detail.CccdBackURL = p.CccdBackURL
		detail.OrganizationID = p.OrganizationID
	}
	return detail
}

func toOrganizationDetail(u *entities.User, memberCount int64) *dtos.OrganizationDetail {
	detail := &dtos.OrganizationDetail{UserView: toUserView(u), MemberCount: memberCount}
	if p := u.OrganizationProfile; p != nil {
		detail.OrganizationName = p.OrganizationName
		detail.RepresentativeName = p.RepresentativeName
		detail.Description = p.Description
		detail.Website = p.Website
		detail.District = p.District
		detail.AddressDetail = p.AddressDetail
		detail.BusinessLicenseURL = p.BusinessLicenseURL
		detail.VerificationDocs = p.VerificationDocs
	}
	return detail
}

func toCampaignView(c *entities.Campaign) dtos.CampaignView {
	return dtos.CampaignView{
		ID:                c.ID,
		OrganizationID:    c.OrganizationID,
		Title:             c.Title,
		Description:       c.Description,
		Goal:              c.Goal,
		District:          c.District,
		AddressDetail:     c.AddressDetail,
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		TargetVolunteers:  c.TargetVolunteers,
		MaxVolunteers:     c.MaxVolunteers,
		CurrentVolunteers: c.CurrentVolunteers,
		Status:            c.Status.String(),
		CoverImageURL:     c.CoverImageURL,
		Images:            c.Images,
		CreatedAt:         c.CreatedAt,
	}
}

func toHelpRequestView(h *entities.HelpRequest) dtos.HelpRequestView {
	view := dtos.HelpRequestView{
		ID:            h.ID,
		Title:         h.Title,
		Description:   h.Description,
		ActivityType:  h.ActivityType,
		UrgencyLevel:  h.UrgencyLevel,
		District:      h.District,
		AddressDetail: h.AddressDetail,
		StartAt:       h.StartAt,
		EndAt:         h.EndAt,
		Status:        h.Status.String(),
		RequesterID:   h.RequesterID,
		VolunteerID:   h.VolunteerID,
		ActivityImage: h.ActivityImage,
		ProofImages:   h.ProofImages,
		CreatedAt:     h.CreatedAt,
	}
	view.Requester = h.Requester.DisplayName()
	if h.Volunteer != nil {
		view.Volunteer = h.Volunteer.DisplayName()
	}
	return view
}

func toMessageView(m *entities.Message) dtos.MessageView {
	return dtos.MessageView{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		ClientID:       m.ClientID,
		Content:        m.Content,
		IsRead:         m.IsRead,
		CreatedAt:      m.CreatedAt,
	}
}
