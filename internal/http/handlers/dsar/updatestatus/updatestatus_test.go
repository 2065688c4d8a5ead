package updatestatus

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

	"github.com/magabrotheeeer/dsar-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dsar-portal/internal/models"
	dsar "github.com/magabrotheeeer/dsar-portal/internal/services/dsar"
)

type RequestServiceMock struct {
	mock.Mock
}

func (m *RequestServiceMock) UpdateStatus(ctx context.Context, actor dsar.Actor, requestUID string,
	status models.RequestStatus, notes *string) (*models.Request, error) {
	args := m.Called(ctx, actor, requestUID, status, notes)
	updated, _ := args.Get(0).(*models.Request)
	return updated, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestUpdateStatusHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(RequestServiceMock)
	logger := newNoopLogger()

	handler := New(logger, serviceMock)

	const requestUID = "0b7ffec7-3333-4f4e-9c90-000000000003"
	notes := "identity verified"

	tests := []struct {
		name           string
		role           models.Role
		withIdentity   bool
		requestBody    interface{}
		mockResp       *models.Request
		mockErr        error
		mockCalled     bool
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:         "owner updates status with notes",
			role:         models.RoleOwner,
			withIdentity: true,
			requestBody:  Request{Status: models.RequestStatusInProgress, Notes: &notes},
			mockResp: &models.Request{
				UID:    requestUID,
				Status: models.RequestStatusInProgress,
				Notes:  &notes,
			},
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:         "reopen closed request",
			role:         models.RoleAdmin,
			withIdentity: true,
			requestBody:  Request{Status: models.RequestStatusOpen},
			mockResp: &models.Request{
				UID:    requestUID,
				Status: models.RequestStatusOpen,
			},
			mockCalled:     true,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "unknown status value",
			role:           models.RoleOwner,
			withIdentity:   true,
			requestBody:    Request{Status: "archived"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Status must be one of: open in_progress in_review closed",
			wantStatus:     "Error",
		},
		{
			name:           "missing identity",
			role:           models.RoleOwner,
			withIdentity:   false,
			requestBody:    Request{Status: models.RequestStatusOpen},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
			wantStatus:     "Error",
		},
		{
			name:           "foreign company request",
			role:           models.RoleOwner,
			withIdentity:   true,
			requestBody:    Request{Status: models.RequestStatusClosed},
			mockErr:        models.ErrForbidden,
			mockCalled:     true,
			wantStatusCode: http.StatusForbidden,
			wantError:      "forbidden",
			wantStatus:     "Error",
		},
		{
			name:           "request not found",
			role:           models.RoleAdmin,
			withIdentity:   true,
			requestBody:    Request{Status: models.RequestStatusClosed},
			mockErr:        models.ErrNotFound,
			mockCalled:     true,
			wantStatusCode: http.StatusNotFound,
			wantError:      "request not found",
			wantStatus:     "Error",
		},
		{
			name:           "internal error",
			role:           models.RoleAdmin,
			withIdentity:   true,
			requestBody:    Request{Status: models.RequestStatusClosed},
			mockErr:        errors.New("storage is down"),
			mockCalled:     true,
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not update request",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock.ExpectedCalls = nil
			serviceMock.Calls = nil

			const userUID = "0b7ffec7-4444-4f4e-9c90-000000000004"

			if tt.mockCalled {
				body := tt.requestBody.(Request)
				actor := dsar.Actor{UserUID: userUID, Role: tt.role}
				serviceMock.On("UpdateStatus", mock.Anything, actor, requestUID, body.Status, body.Notes).
					Return(tt.mockResp, tt.mockErr).Once()
			}

			bodyBytes, err := json.Marshal(tt.requestBody)
			if err != nil {
				t.Fatal(err)
			}

			req := httptest.NewRequest(http.MethodPut, "/requests/"+requestUID+"/status", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.withIdentity {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, userUID)
				ctx = context.WithValue(ctx, middlewarectx.Role, string(tt.role))
			}

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("uid", requestUID)
			ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
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
				assert.Equal(t, tt.mockResp.UID, data["uid"])
				assert.Equal(t, string(tt.mockResp.Status), data["status"])
			}

			if tt.mockCalled {
				serviceMock.AssertExpectations(t)
			}
		})
	}
}
