package update_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/update"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	subservice "github.com/magabrotheeeer/subscription-tracker/internal/services/subscription"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Update(ctx context.Context, id, userID string, req models.UpdateSubscriptionRequest) (*models.Subscription, error) {
	args := m.Called(ctx, id, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const subID = "6f1f64a4-7cbb-4bd0-9c0b-5c7a7f3d9a11"

func newRequest(t *testing.T, id, body string, userID any) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/subscriptions/"+id, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	if userID != nil {
		ctx = context.WithValue(ctx, middlewarectx.UserID, userID)
	}
	return req.WithContext(ctx)
}

func TestUpdateHandler(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		body       string
		userID     any
		setupMock  func(service *ServiceMock)
		wantStatus int
		wantInBody string
	}{
		{
			name:   "successful update",
			id:     subID,
			body:   `{"price":"19.99","status":"cancelled"}`,
			userID: "user-1",
			setupMock: func(service *ServiceMock) {
				service.On("Update", mock.Anything, subID, "user-1", mock.MatchedBy(func(req models.UpdateSubscriptionRequest) bool {
					return req.Price != nil && *req.Price == "19.99" &&
						req.Status != nil && *req.Status == "cancelled" && req.Name == nil
				})).Return(&models.Subscription{ID: subID, Price: "19.99", Status: "cancelled"}, nil)
			},
			wantStatus: http.StatusOK,
			wantInBody: "Subscription updated successfully",
		},
		{
			name:       "invalid id format",
			id:         "42",
			body:       `{"price":"19.99"}`,
			userID:     "user-1",
			setupMock:  func(service *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantInBody: "invalid id",
		},
		{
			name:       "malformed json",
			id:         subID,
			body:       `{"price":`,
			userID:     "user-1",
			setupMock:  func(service *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantInBody: "invalid request body",
		},
		{
			name:       "unknown status value",
			id:         subID,
			body:       `{"status":"paused"}`,
			userID:     "user-1",
			setupMock:  func(service *ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantInBody: "field Status must be one of: active cancelled expired",
		},
		{
			name:   "subscription not found",
			id:     subID,
			body:   `{"price":"19.99"}`,
			userID: "user-2",
			setupMock: func(service *ServiceMock) {
				service.On("Update", mock.Anything, subID, "user-2", mock.Anything).
					Return(nil, storage.ErrSubscriptionNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantInBody: "Subscription not found",
		},
		{
			name:   "price rejected by service",
			id:     subID,
			body:   `{"price":"19.999"}`,
			userID: "user-1",
			setupMock: func(service *ServiceMock) {
				service.On("Update", mock.Anything, subID, "user-1", mock.Anything).
					Return(nil, subservice.ErrValidation)
			},
			wantStatus: http.StatusBadRequest,
			wantInBody: "invalid subscription data",
		},
		{
			name:   "service failure",
			id:     subID,
			body:   `{"price":"19.99"}`,
			userID: "user-1",
			setupMock: func(service *ServiceMock) {
				service.On("Update", mock.Anything, subID, "user-1", mock.Anything).
					Return(nil, errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			wantInBody: "could not update subscription",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMock(service)

			handler := update.New(discardLogger(), service)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, newRequest(t, tt.id, tt.body, tt.userID))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantInBody)
			service.AssertExpectations(t)
		})
	}
}
