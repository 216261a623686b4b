package create_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/create"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	subservice "github.com/magabrotheeeer/subscription-tracker/internal/services/subscription"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, userID string, req models.CreateSubscriptionRequest) (*models.Subscription, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const validBody = `{
	"name": "Netflix",
	"price": "15.99",
	"currency": "USD",
	"frequency": "monthly",
	"category": "entertainment",
	"paymentMethod": "Visa **** 4242",
	"startDate": "2026-01-15"
}`

func TestCreateHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		userID     any
		setupMock  func(service *ServiceMock)
		wantStatus int
		wantInBody string
	}{
		{
			name:   "successful creation",
			body:   validBody,
			userID: "user-1",
			setupMock: func(service *ServiceMock) {
				service.On("Create", mock.Anything, "user-1", mock.Anything).
					Return(&models.Subscription{ID: "sub-1", Name: "Netflix", UserID: "user-1"}, nil)
			},
			wantStatus: http.StatusCreated,
			wantInBody: "Subscription created successfully",
		},
		{
			name:       "malformed json",
			body:       `{`,
			userID:     "user-1",
			setupMock:  func(service *ServiceMock) {},
			wantStatus: http.StatusBadRequest,
			wantInBody: "invalid request body",
		},
		{
			name:       "unknown frequency",
			body:       strings.Replace(validBody, "monthly", "hourly", 1),
			userID:     "user-1",
			setupMock:  func(service *ServiceMock) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantInBody: "field Frequency must be one of: daily weekly monthly yearly",
		},
		{
			name:       "no user id in context",
			body:       validBody,
			userID:     nil,
			setupMock:  func(service *ServiceMock) {},
			wantStatus: http.StatusUnauthorized,
			wantInBody: "unauthorized",
		},
		{
			name:   "price rejected by service",
			body:   validBody,
			userID: "user-1",
			setupMock: func(service *ServiceMock) {
				service.On("Create", mock.Anything, "user-1", mock.Anything).
					Return(nil, fmt.Errorf("%w: price must be a decimal with at most 2 fraction digits", subservice.ErrValidation))
			},
			wantStatus: http.StatusBadRequest,
			wantInBody: "price must be a decimal",
		},
		{
			name:   "service failure",
			body:   validBody,
			userID: "user-1",
			setupMock: func(service *ServiceMock) {
				service.On("Create", mock.Anything, "user-1", mock.Anything).
					Return(nil, errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			wantInBody: "could not create subscription",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(ServiceMock)
			tt.setupMock(service)

			handler := create.New(discardLogger(), service)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/subscriptions", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			if tt.userID != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, tt.userID))
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantInBody)
			service.AssertExpectations(t)
		})
	}
}
