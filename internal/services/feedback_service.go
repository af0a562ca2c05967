package services

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/CtIaMbaCK/betterus-server/internal/constants"
	"github.com/CtIaMbaCK/betterus-server/internal/db/repositories"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
	"github.com/CtIaMbaCK/betterus-server/internal/models/entities"
)

// FeedbackService handles the volunteer detail page extras: staff comments
// and certificates.
type FeedbackService struct {
	feedback *repositories.FeedbackRepository
	users    *repositories.UserRepository
	validate *validator.Validate
}

func NewFeedbackService(feedback *repositories.FeedbackRepository, users *repositories.UserRepository) *FeedbackService {
	return &FeedbackService{feedback: feedback, users: users, validate: validator.New()}
}

func (s *FeedbackService) AddComment(ctx context.Context, volunteerID, authorID string, req *dtos.CreateCommentRequest) (*dtos.CommentView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if err := s.ensureVolunteer(ctx, volunteerID, authorID); err != nil {
		return nil, err
	}

	c := &entities.VolunteerComment{
		VolunteerID: volunteerID,
		AuthorID:    authorID,
		Body:        req.Body,
	}
	if err := s.feedback.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	view := toCommentView(c)
	return &view, nil
}

func (s *FeedbackService) ListComments(ctx context.Context, volunteerID, actorID string) ([]dtos.CommentView, error) {
	if err := s.ensureVolunteer(ctx, volunteerID, actorID); err != nil {
		return nil, err
	}
	comments, err := s.feedback.ListComments(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	views := make([]dtos.CommentView, 0, len(comments))
	for i := range comments {
		views = append(views, toCommentView(&comments[i]))
	}
	return views, nil
}

// DeleteComment removes a comment. Admins may remove any comment; an
// organization may only remove comments it authored.
func (s *FeedbackService) DeleteComment(ctx context.Context, id, actorID string) error {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return err
	}

	if actor.Role == constants.RoleOrganization {
		err = s.feedback.DeleteCommentByAuthor(ctx, id, actorID)
	} else {
		err = s.feedback.DeleteComment(ctx, id)
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *FeedbackService) IssueCertificate(ctx context.Context, volunteerID, issuerID string, req *dtos.CreateCertificateRequest) (*dtos.CertificateView, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if err := s.ensureVolunteer(ctx, volunteerID, issuerID); err != nil {
		return nil, err
	}

	c := &entities.Certificate{
		VolunteerID: volunteerID,
		IssuerID:    issuerID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.feedback.CreateCertificate(ctx, c); err != nil {
		return nil, err
	}
	view := toCertificateView(c)
	return &view, nil
}

func (s *FeedbackService) ListCertificates(ctx context.Context, volunteerID, actorID string) ([]dtos.CertificateView, error) {
	if err := s.ensureVolunteer(ctx, volunteerID, actorID); err != nil {
		return nil, err
	}
	certs, err := s.feedback.ListCertificates(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	views := make([]dtos.CertificateView, 0, len(certs))
	for i := range certs {
		views = append(views, toCertificateView(&certs[i]))
	}
	return views, nil
}

// DeleteCertificate revokes a certificate. Admins may revoke any; an
// organization may only revoke certificates it issued.
func (s *FeedbackService) DeleteCertificate(ctx context.Context, id, actorID string) error {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return err
	}

	if actor.Role == constants.RoleOrganization {
		err = s.feedback.DeleteCertificateByIssuer(ctx, id, actorID)
	} else {
		err = s.feedback.DeleteCertificate(ctx, id)
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// ensureVolunteer checks the target is a volunteer and that the actor may
// touch it: admins reach every volunteer, organizations only their own
// members.
func (s *FeedbackService) ensureVolunteer(ctx context.Context, volunteerID, actorID string) error {
	user, err := s.users.GetByID(ctx, volunteerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if user.Role != constants.RoleVolunteer {
		return ErrNotFound
	}

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Role == constants.RoleOrganization {
		p := user.VolunteerProfile
		if p == nil || p.OrganizationID == nil || *p.OrganizationID != actorID {
			return ErrForbidden
		}
	}
	return nil
}

func (s *FeedbackService) actor(ctx context.Context, actorID string) (*entities.User, error) {
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}
	return actor, nil
}

func toCommentView(c *entities.VolunteerComment) dtos.CommentView {
	view := dtos.CommentView{
		ID:        c.ID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
	if c.Author.ID != "" {
		view.Author = c.Author.DisplayName()
	}
	return view
}

func toCertificateView(c *entities.Certificate) dtos.CertificateView {
	view := dtos.CertificateView{
		ID:          c.ID,
		IssuerID:    c.IssuerID,
		Title:       c.Title,
		Description: c.Description,
		IssuedAt:    c.IssuedAt,
	}
	if c.Issuer.ID != "" {
		view.Issuer = c.Issuer.DisplayName()
	}
	return view
}
