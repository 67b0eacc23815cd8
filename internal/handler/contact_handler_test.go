package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodexpress/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockContactService is a mock implementation of ContactService.
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) SubmitContact(ctx context.Context, req *model.ContactRequest) (*model.Contact, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contact), args.Error(1)
}

func TestContactHandler_Submit_Success(t *testing.T) {
	logger := zerolog.Nop()

	body, err := json.Marshal(model.ContactRequest{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Message: "The delivery arrived cold, please look into it.",
	})
	require.NoError(t, err)

	stored := &model.Contact{
		ID:      uuid.New(),
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Message: "The delivery arrived cold, please look into it.",
	}

	mockService := new(MockContactService)
	mockService.On("SubmitContact", mock.Anything, mock.AnythingOfType("*model.ContactRequest")).
		Return(stored, nil)

	h := NewContactHandler(mockService, logger)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	h.Submit(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var got model.Contact
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, stored.ID, got.ID)
	mockService.AssertExpectations(t)
}

func TestContactHandler_Submit_InvalidJSON(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockContactService)
	h := NewContactHandler(mockService, logger)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader([]byte(`{not json`)))
	h.Submit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockService.AssertNotCalled(t, "SubmitContact")
}

func TestContactHandler_Submit_ValidationError(t *testing.T) {
	logger := zerolog.Nop()

	body, err := json.Marshal(model.ContactRequest{Name: "A", Email: "bad", Message: "hey"})
	require.NoError(t, err)

	mockService := new(MockContactService)
	mockService.On("SubmitContact", mock.Anything, mock.AnythingOfType("*model.ContactRequest")).
		Return(nil, model.ErrContactEmail)

	h := NewContactHandler(mockService, logger)
	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp model.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, model.ErrCodeInvalidContact, errResp.Error)
}

func TestContactHandler_Submit_ServiceError(t *testing.T) {
	logger := zerolog.Nop()

	body, err := json.Marshal(model.ContactRequest{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Message: "The delivery arrived cold, please look into it.",
	})
	require.NoError(t, err)

	mockService := new(MockContactService)
	mockService.On("SubmitContact", mock.Anything, mock.AnythingOfType("*model.ContactRequest")).
		Return(nil, errors.New("connection lost"))

	h := NewContactHandler(mockService, logger)
	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestContactHandler_Submit_MethodNotAllowed(t *testing.T) {
	logger := zerolog.Nop()

	h := NewContactHandler(new(MockContactService), logger)
	rec := httptest.NewRecorder()
	h.Submit(rec, httptest.NewRequest(http.MethodGet, "/api/contact", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
