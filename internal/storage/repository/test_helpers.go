package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// testSchema повторяет миграцию 000001_init: тесты репозитория работают
// с той же структурой таблиц, что и боевой сервис.
const testSchema = `
	CREATE EXTENSION IF NOT EXISTS "pgcrypto";

	CREATE TYPE currency_type AS ENUM ('USD', 'EUR', 'GBP');
	CREATE TYPE frequency_type AS ENUM ('daily', 'weekly', 'monthly', 'yearly');
	CREATE TYPE category_type AS ENUM ('sports', 'news', 'entertainment', 'lifestyle',
		'technology', 'finance', 'politics', 'other');
	CREATE TYPE status_type AS ENUM ('active', 'cancelled', 'expired');

	CREATE TABLE users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE subscriptions (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		price NUMERIC(10,2) NOT NULL,
		currency currency_type NOT NULL DEFAULT 'USD',
		frequency frequency_type NOT NULL,
		category category_type NOT NULL,
		payment_method TEXT NOT NULL,
		status status_type NOT NULL DEFAULT 'active',
		start_date TIMESTAMPTZ NOT NULL,
		renewal_date TIMESTAMPTZ,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX idx_subscriptions_user_id ON subscriptions(user_id);
`

// setupTestDatabase поднимает контейнер PostgreSQL и применяет схему.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")
	t.Cleanup(func() {
		_ = testcontainers.TerminateContainer(postgresContainer)
	})

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")
	t.Cleanup(func() {
		_ = storage.Close()
	})

	_, err = storage.DB.Exec(testSchema)
	require.NoError(t, err, "failed to create schema")

	return storage
}

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его идентификатор.
func (f *TestDataFactory) CreateUser(t *testing.T, name, email string) string {
	t.Helper()
	var id string
	err := f.storage.DB.QueryRow(`INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, 'hashedpassword', 'user') RETURNING id`,
		name, email).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateSubscription создает тестовую подписку и возвращает её идентификатор.
func (f *TestDataFactory) CreateSubscription(t *testing.T, userID, name string) string {
	t.Helper()
	var id string
	err := f.storage.DB.QueryRow(`INSERT INTO subscriptions
		(name, price, currency, frequency, category, payment_method, status, start_date, user_id)
		VALUES ($1, '15.99', 'USD', 'monthly', 'entertainment', 'Visa **** 4242', 'active', $2, $3)
		RETURNING id`,
		name, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), userID).Scan(&id)
	require.NoError(t, err)
	return id
}

// GetTestSubscription возвращает стандартные данные подписки для вставки через репозиторий.
func GetTestSubscription(userID string) models.Subscription {
	return models.Subscription{
		Name:          "Netflix",
		Price:         "15.99",
		Currency:      models.CurrencyUSD,
		Frequency:     models.FrequencyMonthly,
		Category:      "entertainment",
		PaymentMethod: "Visa **** 4242",
		Status:        models.StatusActive,
		StartDate:     time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		UserID:        userID,
	}
}
