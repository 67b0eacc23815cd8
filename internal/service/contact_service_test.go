package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"foodexpress/internal/clock"
	"foodexpress/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockContactRepository is a mock implementation of ContactRepository.
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) CreateContact(ctx context.Context, contact *model.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func validContactRequest() *model.ContactRequest {
	return &model.ContactRequest{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Message: "The delivery arrived cold, please look into it.",
	}
}

func TestContactService_SubmitContact_Success(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	mockRepo := new(MockContactRepository)
	service := NewContactService(mockRepo, clock.NewManual(now), logger)

	mockRepo.On("CreateContact", ctx, mock.AnythingOfType("*model.Contact")).Return(nil)

	contact, err := service.SubmitContact(ctx, validContactRequest())

	require.NoError(t, err)
	require.NotNil(t, contact)
	assert.Equal(t, "Asha Rao", contact.Name)
	assert.Equal(t, "asha@example.com", contact.Email)
	assert.Equal(t, now, contact.CreatedAt)
	mockRepo.AssertExpectations(t)
}

func TestContactService_SubmitContact_NormalisesInput(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockContactRepository)
	service := NewContactService(mockRepo, clock.NewManual(time.Now()), logger)

	mockRepo.On("CreateContact", ctx, mock.AnythingOfType("*model.Contact")).Return(nil)

	contact, err := service.SubmitContact(ctx, &model.ContactRequest{
		Name:    "  Asha Rao  ",
		Email:   " ASHA@Example.COM ",
		Message: "  Where is my order?  ",
	})

	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", contact.Name)
	assert.Equal(t, "asha@example.com", contact.Email)
	assert.Equal(t, "Where is my order?", contact.Message)
}

func TestContactService_SubmitContact_ValidationErrors(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(req *model.ContactRequest)
		wantErr *model.DomainError
	}{
		{
			name:    "name too short",
			mutate:  func(req *model.ContactRequest) { req.Name = "A" },
			wantErr: model.ErrContactName,
		},
		{
			name:    "name too long",
			mutate:  func(req *model.ContactRequest) { req.Name = strings.Repeat("a", 101) },
			wantErr: model.ErrContactName,
		},
		{
			name:    "whitespace-only name",
			mutate:  func(req *model.ContactRequest) { req.Name = "   " },
			wantErr: model.ErrContactName,
		},
		{
			name:    "email missing at sign",
			mutate:  func(req *model.ContactRequest) { req.Email = "asha.example.com" },
			wantErr: model.ErrContactEmail,
		},
		{
			name:    "email missing domain dot",
			mutate:  func(req *model.ContactRequest) { req.Email = "asha@example" },
			wantErr: model.ErrContactEmail,
		},
		{
			name:    "message too short",
			mutate:  func(req *model.ContactRequest) { req.Message = "hey" },
			wantErr: model.ErrContactMessage,
		},
		{
			name:    "message too long",
			mutate:  func(req *model.ContactRequest) { req.Message = strings.Repeat("a", 2001) },
			wantErr: model.ErrContactMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockContactRepository)
			service := NewContactService(mockRepo, clock.NewManual(time.Now()), logger)

			req := validContactRequest()
			tt.mutate(req)

			_, err := service.SubmitContact(ctx, req)

			require.ErrorIs(t, err, tt.wantErr)
			mockRepo.AssertNotCalled(t, "CreateContact")
		})
	}
}

func TestContactService_SubmitContact_RepositoryError(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	mockRepo := new(MockContactRepository)
	service := NewContactService(mockRepo, clock.NewManual(time.Now()), logger)

	mockRepo.On("CreateContact", ctx, mock.AnythingOfType("*model.Contact")).
		Return(errors.New("connection lost"))

	_, err := service.SubmitContact(ctx, validContactRequest())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to submit contact")
}
