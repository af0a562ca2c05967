package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/CtIaMbaCK/betterus-server/internal/common"
	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/db/repositories"
	"github.com/CtIaMbaCK/betterus-server/internal/logging"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

// CampaignService covers the organization's campaign pages and the
// volunteer-facing registration actions.
type CampaignService struct {
	campaigns     *repositories.CampaignRepository
	users         *repositories.UserRepository
	notifications *common.NotificationQueueService
	validate      *validator.Validate
}

func NewCampaignService(campaigns *repositories.CampaignRepository, users *repositories.UserRepository, notifications *common.NotificationQueueService) *CampaignService {
	return &CampaignService{
		campaigns:     campaigns,
		users:         users,
		notifications: notifications,
		validate:      validator.New(),
	}
}

// Create makes a DRAFT campaign owned by the organization.
func (s *CampaignService) Create(ctx context.Context, orgUserID string, req *dtos.CreateCampaignRequest) (*dtos.CampaignView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	maxVolunteers := req.MaxVolunteers
	if maxVolunteers == 0 {
		maxVolunteers = req.TargetVolunteers
	}

	c := &entities.Campaign{
		OrganizationID:   orgUserID,
		Title:            req.Title,
		Description:      req.Description,
		Goal:             req.Goal,
		District:         req.District,
		AddressDetail:    req.AddressDetail,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		TargetVolunteers: req.TargetVolunteers,
		MaxVolunteers:    maxVolunteers,
		Status:           constants.CampaignDraft,
		CoverImageURL:    req.CoverImageURL,
		Images:           req.Images,
	}
	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, err
	}

	logging.Info("Campaign created", "campaign_id", c.ID, "org_id", orgUserID)
	view := toCampaignView(c)
	return &view, nil
}

// List is the shared campaign listing. orgUserID narrows to one owner; the
// admin and public pages pass it empty.
func (s *CampaignService) List(ctx context.Context, orgUserID string, q dtos.ListQuery) (*dtos.PagedResponse[dtos.CampaignView], error) {
	q.Normalize()
	campaigns, total, err := s.campaigns.List(ctx, orgUserID, q)
	if err != nil {
		return nil, err
	}
	views := make([]dtos.CampaignView, 0, len(campaigns))
	for i := range campaigns {
		views = append(views, toCampaignView(&campaigns[i]))
	}
	return dtos.NewPagedResponse(views, total, q.Page, q.Limit), nil
}

func (s *CampaignService) Get(ctx context.Context, id string) (*dtos.CampaignView, error) {
	c, err := s.getCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toCampaignView(c)
	return &view, nil
}

// Update patches a campaign. Only the owning organization may edit it, and a
// status change must follow the campaign status machine.
func (s *CampaignService) Update(ctx context.Context, orgUserID, id string, req *dtos.UpdateCampaignRequest) (*dtos.CampaignView, error) {
	c, err := s.getCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.OrganizationID != orgUserID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		c.Title = *req.Title
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Goal != nil {
		c.Goal = *req.Goal
	}
	if req.District != nil {
		c.District = *req.District
	}
	if req.AddressDetail != nil {
		c.AddressDetail = *req.AddressDetail
	}
	if req.StartDate != nil {
		c.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		c.EndDate = *req.EndDate
	}
	if req.MaxVolunteers != nil {
		if *req.MaxVolunteers < c.CurrentVolunteers {
			return nil, &ValidationError{Field: "maxVolunteers", Message: "cannot drop below current registrations"}
		}
		c.MaxVolunteers = *req.MaxVolunteers
	}
	if req.CoverImageURL != nil {
		c.CoverImageURL = *req.CoverImageURL
	}
	if req.Images != nil {
		c.Images = *req.Images
	}
	if req.Status != nil {
		next := constants.CampaignStatus(*req.Status)
		if !c.Status.CanTransitionTo(next) {
			return nil, &TransitionError{From: c.Status.String(), To: next.String()}
		}
		c.Status = next
	}

	if err := s.campaigns.Save(ctx, c); err != nil {
		return nil, err
	}
	view := toCampaignView(c)
	return &view, nil
}

// Delete removes a campaign that has not been published yet.
func (s *CampaignService) Delete(ctx context.Context, orgUserID, id string) error {
	c, err := s.getCampaign(ctx, id)
	if err != nil {
		return err
	}
	if c.OrganizationID != orgUserID {
		return ErrForbidden
	}
	if c.Status != constants.CampaignDraft {
		return &TransitionError{From: c.Status.String(), To: "deleted"}
	}
	return s.campaigns.Delete(ctx, id)
}

// Register signs a volunteer up for a published or ongoing campaign.
func (s *CampaignService) Register(ctx context.Context, campaignID, volunteerID string) (*dtos.RegistrationView, error) {
	c, err := s.getCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c.Status != constants.CampaignPublished && c.Status != constants.CampaignOngoing {
		return nil, &TransitionError{From: c.Status.String(), To: "registered"}
	}

	reg, err := s.campaigns.Register(ctx, campaignID, volunteerID)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, c.OrganizationID, "campaign_update",
		"New campaign registration",
		fmt.Sprintf("A volunteer registered for %q", c.Title))

	view := toRegistrationView(reg)
	return &view, nil
}

func (s *CampaignService) CancelRegistration(ctx context.Context, campaignID, volunteerID string) error {
	err := s.campaigns.CancelRegistration(ctx, campaignID, volunteerID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// MarkAttended records attendance; only the owning organization may do it.
func (s *CampaignService) MarkAttended(ctx context.Context, orgUserID, campaignID, volunteerID string) error {
	c, err := s.getCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if c.OrganizationID != orgUserID {
		return ErrForbidden
	}
	err = s.campaigns.MarkAttended(ctx, campaignID, volunteerID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *CampaignService) ListRegistrations(ctx context.Context, orgUserID, campaignID string) ([]dtos.RegistrationView, error) {
	c, err := s.getCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if orgUserID != "" && c.OrganizationID != orgUserID {
		return nil, ErrForbidden
	}

	regs, err := s.campaigns.ListRegistrations(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	views := make([]dtos.RegistrationView, 0, len(regs))
	for i := range regs {
		views = append(views, toRegistrationView(&regs[i]))
	}
	return views, nil
}

// RollStatuses advances campaign statuses by the clock; called by the
// background job.
func (s *CampaignService) RollStatuses(ctx context.Context, now time.Time) (int64, error) {
	return s.campaigns.RollStatuses(ctx, now)
}

func (s *CampaignService) getCampaign(ctx context.Context, id string) (*entities.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CampaignService) notify(ctx context.Context, recipientID, kind, title, body string) {
	if s.notifications == nil {
		return
	}
	item := &common.NotificationItem{
		RecipientID: recipientID,
		Kind:        kind,
		Title:       title,
		Body:        body,
		CreatedAt:   time.Now(),
	}
	if err := s.notifications.Enqueue(ctx, constants.NotificationStream, item); err != nil {
		logging.Warn("Failed to queue notification", "error", err.Error())
	}
}

func toRegistrationView(reg *entities.CampaignRegistration) dtos.RegistrationView {
	view := dtos.RegistrationView{
		ID:           reg.ID,
		CampaignID:   reg.CampaignID,
		VolunteerID:  reg.VolunteerID,
		Status:       reg.Status.String(),
		RegisteredAt: reg.RegisteredAt,
	}
	if reg.Volunteer.ID != "" {
		view.Volunteer = reg.Volunteer.DisplayName()
	}
	return view
}
