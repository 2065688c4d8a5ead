package submit

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

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

type RequestServiceMock struct {
	mock.Mock
}

func (m *RequestServiceMock) Submit(ctx context.Context, slug string, req models.DummyRequest) (*models.Request, error) {
	args := m.Called(ctx, slug, req)
	created, _ := args.Get(0).(*models.Request)
	return created, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSubmitHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(RequestServiceMock)
	logger := newNoopLogger()

	handler := New(logger, serviceMock)

	validBody := models.DummyRequest{
		RequesterName:  "Jane Doe",
		RequesterEmail: "jane@example.com",
		RequesterPhone: "0123456789",
		RequestText:    "Please delete all my personal data.",
	}

	tests := []struct {
		name           string
		slug           string
		requestBody    interface{}
		mockResp       *models.Request
		mockErr        error
		mockCalled     bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:        "valid request",
			slug:        "acme-corp-ab12",
			requestBody: validBody,
			mockResp: &models.Request{
				UID:    "0b7ffec7-2222-4f4e-9c90-000000000002",
				Status: models.RequestStatusOpen,
			},
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name: "phone too short",
			slug: "acme-corp-ab12",
			requestBody: models.DummyRequest{
				RequesterName:  "Jane Doe",
				RequesterEmail: "jane@example.com",
				RequesterPhone: "012345678",
				RequestText:    "Please delete all my personal data.",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field RequesterPhone must be at least 10 characters long",
			wantStatus:     "Error",
		},
		{
			name: "request text too short",
			slug: "acme-corp-ab12",
			requestBody: models.DummyRequest{
				RequesterName:  "Jane Doe",
				RequesterEmail: "jane@example.com",
				RequesterPhone: "0123456789",
				RequestText:    "short",
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field RequestText must be at least 10 characters long",
			wantStatus:     "Error",
		},
		{
			name:           "unknown slug",
			slug:           "ghost-ffff",
			requestBody:    validBody,
			mockErr:        models.ErrNotFound,
			mockCalled:     true,
			wantStatusCode: http.StatusNotFound,
			wantError:      "portal not found",
			wantStatus:     "Error",
		},
		{
			name:           "inactive portal refuses submission",
			slug:           "acme-corp-ab12",
			requestBody:    validBody,
			mockErr:        models.ErrInactivePortal,
			mockCalled:     true,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "portal is not active",
			wantStatus:     "Error",
		},
		{
			name:           "internal error",
			slug:           "acme-corp-ab12",
			requestBody:    validBody,
			mockErr:        errors.New("storage is down"),
			mockCalled:     true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not submit request",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			if tt.mockCalled {
				serviceMock.On("Submit", mock.Anything, tt.slug, tt.requestBody.(models.DummyRequest)).
					Return(tt.mockResp, tt.mockErr).Once()
			}

			bodyBytes, err := json.Marshal(tt.requestBody)
			if err != nil {
				t.Fatal(err)
			}

			req := httptest.NewRequest(http.MethodPost, "/c/"+tt.slug+"/requests", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("slug", tt.slug)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

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
				assert.Equal(t, tt.mockResp.UID, data["uid"])
				assert.Equal(t, string(models.RequestStatusOpen), data["status"])
			}

			if tt.mockCalled {
				serviceMock.AssertExpectations(t)
			}
		})
	}
}
