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
	"github.com/CtIaMbaCK/betterus-server/internal/metrics"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

// HelpRequestService drives the help request lifecycle: beneficiaries file
// requests, admins moderate them, volunteers carry them out.
type HelpRequestService struct {
	requests      *repositories.HelpRequestRepository
	users         *repositories.UserRepository
	notifications *common.NotificationQueueService
	metrics       *metrics.MetricsRegistry
	validate      *validator.Validate
}

func NewHelpRequestService(requests *repositories.HelpRequestRepository, users *repositories.UserRepository, notifications *common.NotificationQueueService, metricsReg *metrics.MetricsRegistry) *HelpRequestService {
	return &HelpRequestService{
		requests:      requests,
		users:         users,
		notifications: notifications,
		metrics:       metricsReg,
		validate:      validator.New(),
	}
}

// Create files a new PENDING request for the beneficiary.
func (s *HelpRequestService) Create(ctx context.Context, requesterID string, req *dtos.CreateHelpRequestRequest) (*dtos.HelpRequestView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	h := &entities.HelpRequest{
		RequesterID:   requesterID,
		Title:         req.Title,
		Description:   req.Description,
		ActivityType:  req.ActivityType,
		UrgencyLevel:  req.UrgencyLevel,
		District:      req.District,
		AddressDetail: req.AddressDetail,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		Status:        constants.HelpPending,
		ActivityImage: req.ActivityImage,
	}
	if err := s.requests.Create(ctx, h); err != nil {
		return nil, err
	}

	logging.Info("Help request created", "request_id", h.ID, "requester_id", requesterID)
	return s.Get(ctx, h.ID)
}

// List returns one moderation-ordered page. requesterID and volunteerID
// narrow to a single user's view of the queue.
func (s *HelpRequestService) List(ctx context.Context, requesterID, volunteerID string, q dtos.ListQuery) (*dtos.PagedResponse[dtos.HelpRequestView], error) {
	q.Normalize()
	requests, total, err := s.requests.List(ctx, requesterID, volunteerID, q)
	if err != nil {
		return nil, err
	}
	views := make([]dtos.HelpRequestView, 0, len(requests))
	for i := range requests {
		views = append(views, toHelpRequestView(&requests[i]))
	}
	return dtos.NewPagedResponse(views, total, q.Page, q.Limit), nil
}

func (s *HelpRequestService) Get(ctx context.Context, id string) (*dtos.HelpRequestView, error) {
	h, err := s.getRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toHelpRequestView(h)
	return &view, nil
}

// Moderate approves or rejects a PENDING request.
func (s *HelpRequestService) Moderate(ctx context.Context, id string, req *dtos.ModerateHelpRequestRequest) (*dtos.HelpRequestView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	next := constants.HelpRequestStatus(req.Status)
	return s.transition(ctx, id, next, func(h *entities.HelpRequest) error { return nil })
}

// AssignVolunteer attaches a volunteer to an APPROVED request and moves it
// to ONGOING. The volunteer must be an active volunteer account.
func (s *HelpRequestService) AssignVolunteer(ctx context.Context, id string, req *dtos.AssignVolunteerRequest) (*dtos.HelpRequestView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	volunteer, err := s.users.GetByID(ctx, req.VolunteerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, &ValidationError{Field: "volunteerId", Message: "volunteer not found"}
		}
		return nil, err
	}
	if volunteer.Role != constants.RoleVolunteer || volunteer.Status != constants.UserActive {
		return nil, &ValidationError{Field: "volunteerId", Message: "user is not an active volunteer"}
	}

	view, err := s.transition(ctx, id, constants.HelpOngoing, func(h *entities.HelpRequest) error {
		h.VolunteerID = &volunteer.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, volunteer.ID, "status_change",
		"You have been assigned a help request",
		fmt.Sprintf("You are now handling %q", view.Title))
	return view, nil
}

// Complete closes an ONGOING request. The assigned volunteer attaches proof
// images of the completed activity.
func (s *HelpRequestService) Complete(ctx context.Context, id, actorID string, proofImages []string) (*dtos.HelpRequestView, error) {
	return s.transition(ctx, id, constants.HelpCompleted, func(h *entities.HelpRequest) error {
		if h.VolunteerID == nil || *h.VolunteerID != actorID {
			return ErrForbidden
		}
		if len(proofImages) > 0 {
			h.ProofImages = proofImages
		}
		return nil
	})
}

// Cancel withdraws a request. Only the requester may cancel, and only while
// the request is not yet completed.
func (s *HelpRequestService) Cancel(ctx context.Context, id, actorID string) (*dtos.HelpRequestView, error) {
	return s.transition(ctx, id, constants.HelpCancelled, func(h *entities.HelpRequest) error {
		if h.RequesterID != actorID {
			return ErrForbidden
		}
		return nil
	})
}

// transition loads the request, verifies the status machine allows the move,
// applies the mutation, and saves.
func (s *HelpRequestService) transition(ctx context.Context, id string, next constants.HelpRequestStatus, mutate func(*entities.HelpRequest) error) (*dtos.HelpRequestView, error) {
	h, err := s.getRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	if !h.Status.CanTransitionTo(next) {
		return nil, &TransitionError{From: h.Status.String(), To: next.String()}
	}
	if err := mutate(h); err != nil {
		return nil, err
	}

	from := h.Status
	h.Status = next
	if err := s.requests.Save(ctx, h); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.HelpRequestTransitions.WithLabelValues(next.String()).Inc()
	}
	logging.Info("Help request transitioned",
		"request_id", h.ID, "from", from.String(), "to", next.String())

	if next == constants.HelpApproved || next == constants.HelpRejected {
		s.notify(ctx, h.RequesterID, "status_change",
			"Your help request was reviewed",
			fmt.Sprintf("%q is now %s", h.Title, next.String()))
	}

	view := toHelpRequestView(h)
	return &view, nil
}

func (s *HelpRequestService) getRequest(ctx context.Context, id string) (*entities.HelpRequest, error) {
	h, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return h, nil
}

func (s *HelpRequestService) notify(ctx context.Context, recipientID, kind, title, body string) {
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
		return
	}
	if s.metrics != nil {
		s.metrics.NotificationsQueued.Inc()
	}
}
