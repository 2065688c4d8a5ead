package registercompany

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/dsar-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

type CompanyServiceMock struct {
	mock.Mock
}

func (m *CompanyServiceMock) Register(ctx context.Context, ownerUID string, req models.DummyCompany) (*models.Company, error) {
	args := m.Called(ctx, ownerUID, req)
	company, _ := args.Get(0).(*models.Company)
	return company, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterCompanyHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(CompanyServiceMock)
	logger := newNoopLogger()

	handler := New(logger, serviceMock)

	const ownerUID = "0b7ffec7-bbbb-4f4e-9c90-00000000000b"

	validBody := models.DummyCompany{
		Name:           "Acme Corp",
		Email:          "contact@acme.example",
		Representation: "EU",
		EmployeesCount: 120,
	}

	tests := []struct {
		name           string
		withIdentity   bool
		requestBody    interface{}
		mockResp       *models.Company
		mockErr        error
		mockCalled     bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:         "valid application",
			withIdentity: true,
			requestBody:  validBody,
			mockResp: &models.Company{
				UID:                "0b7ffec7-cccc-4f4e-9c90-00000000000c",
				Name:               "Acme Corp",
				Status:             models.CompanyStatusPending,
				SubscriptionStatus: models.SubscriptionNone,
			},
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:         "name too short",
			withIdentity: true,
			requestBody: models.DummyCompany{
				Name:           "A",
				Representation: "EU",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Name must be at least 2 characters long",
			wantStatus:     "Error",
		},
		{
			name:         "unknown representation",
			withIdentity: true,
			requestBody: models.DummyCompany{
				Name:           "Acme Corp",
				Representation: "US",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Representation must be one of: EU UK EU_UK",
			wantStatus:     "Error",
		},
		{
			name:           "missing identity",
			withIdentity:   false,
			requestBody:    validBody,
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
			wantStatus:     "Error",
		},
		{
			name:           "owner already has a company",
			withIdentity:   true,
			requestBody:    validBody,
			mockErr:        models.ErrDuplicate,
			mockCalled:     true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "company already registered for this account",
			wantStatus:     "Error",
		},
		{
			name:           "internal error",
			withIdentity:   true,
			requestBody:    validBody,
			mockErr:        errors.New("storage is down"),
			mockCalled:     true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not register company",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.mockCalled {
				serviceMock.On("Register", mock.Anything, ownerUID, tt.requestBody.(models.DummyCompany)).
					Return(tt.mockResp, tt.mockErr).Once()
			}

			bodyBytes, err := json.Marshal(tt.requestBody)
			if err != nil {
				t.Fatal(err)
			}

			req := httptest.NewRequest(http.MethodPost, "/companies", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.withIdentity {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, ownerUID)
				ctx = context.WithValue(ctx, middlewarectx.Role, string(models.RoleOwner))
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			}

			if tt.mockResp != nil {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, string(models.CompanyStatusPending), data["status"])
				assert.Equal(t, string(models.SubscriptionNone), data["subscription_status"])
			}

			if tt.mockCalled {
				serviceMock.AssertExpectations(t)
			}
		})
	}
}
