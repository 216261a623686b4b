package list_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/list"
	"github.com/magabrotheeeer/subscription-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ListAll(ctx context.Context) ([]*models.Subscription, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRequest(role any) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions", nil)
	if role != nil {
		req = req.WithContext(context.WithValue(req.Context(), middlewarectx.Role, role))
	}
	return req
}

func TestListHandler_AdminSeesAllOwners(t *testing.T) {
	service := new(ServiceMock)
	service.On("ListAll", mock.Anything).
		Return([]*models.Subscription{
			{ID: "sub-1", UserID: "user-1"},
			{ID: "sub-2", UserID: "user-2"},
		}, nil)

	handler := list.New(discardLogger(), service)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, newRequest("admin"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "sub-1")
	assert.Contains(t, rr.Body.String(), "sub-2")
	service.AssertExpectations(t)
}

func TestListHandler_RegularUserForbidden(t *testing.T) {
	service := new(ServiceMock)

	handler := list.New(discardLogger(), service)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, newRequest("user"))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, rr.Body.String(), "admin access required")
	service.AssertNotCalled(t, "ListAll", mock.Anything)
}

func TestListHandler_NoRoleInContext(t *testing.T) {
	service := new(ServiceMock)

	handler := list.New(discardLogger(), service)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, newRequest(nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "unauthorized")
}

func TestListHandler_ServiceFailure(t *testing.T) {
	service := new(ServiceMock)
	service.On("ListAll", mock.Anything).
		Return(nil, errors.New("connection refused"))

	handler := list.New(discardLogger(), service)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, newRequest("admin"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "could not list subscriptions")
}
