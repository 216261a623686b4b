package health_test

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

	"github.com/magabrotheeeer/subscription-tracker/internal/http/handlers/subscription/health"
)

type PingerMock struct {
	mock.Mock
}

func (m *PingerMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHealthHandler_OK(t *testing.T) {
	db := new(PingerMock)
	db.On("Ping", mock.Anything).Return(nil)

	handler := health.New(discardLogger(), db)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok"}}`, rr.Body.String())
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	db := new(PingerMock)
	db.On("Ping", mock.Anything).Return(errors.New("connection refused"))

	handler := health.New(discardLogger(), db)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "database unavailable")
}
