package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"foodexpress/internal/clock"
	"foodexpress/internal/model"
	"foodexpress/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// emailPattern is a basic shape check, the same one the storefront applies.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// contactService implements ContactService.
type contactService struct {
	contactRepo repository.ContactRepository
	clock       clock.Clock
	logger      zerolog.Logger
}

// NewContactService creates a new contact service.
func NewContactService(contactRepo repository.ContactRepository, clk clock.Clock, logger zerolog.Logger) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		clock:       clk,
		logger:      logger.With().Str("service", "contact").Logger(),
	}
}

// SubmitContact validates and persists a contact-form submission.
func (s *contactService) SubmitContact(ctx context.Context, req *model.ContactRequest) (*model.Contact, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	message := strings.TrimSpace(req.Message)

	if len(name) < 2 || len(name) > 100 {
		return nil, model.ErrContactName
	}
	if !emailPattern.MatchString(email) {
		return nil, model.ErrContactEmail
	}
	if len(message) < 5 || len(message) > 2000 {
		return nil, model.ErrContactMessage
	}

	contact := &model.Contact{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: s.clock.Now(),
	}

	if err := s.contactRepo.CreateContact(ctx, contact); err != nil {
		s.logger.Error().Err(err).Msg("failed to store contact submission")
		return nil, fmt.Errorf("failed to submit contact: %w", err)
	}

	s.logger.Info().
		Str("contact_id", contact.ID.String()).
		Msg("contact submission stored")

	return contact, nil
}
