package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

const subscriptionColumns = `id, name, price, currency, frequency, category,
			      payment_method, status, start_date, renewal_date, user_id,
			      created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(row rowScanner) (*models.Subscription, error) {
	sub := &models.Subscription{}
	var renewalDate sql.NullTime
	if err := row.Scan(&sub.ID, &sub.Name, &sub.Price, &sub.Currency, &sub.Frequency,
		&sub.Category, &sub.PaymentMethod, &sub.Status, &sub.StartDate, &renewalDate,
		&sub.UserID, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
		return nil, err
	}
	if renewalDate.Valid {
		sub.RenewalDate = &renewalDate.Time
	}
	return sub, nil
}

// CreateSubscription вставляет новую подписку и возвращает сохранённую
// запись с проставленными базой идентификатором и временными метками.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (name, price, currency, frequency, category,
			      payment_method, status, start_date, renewal_date, user_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + subscriptionColumns
	created, err := scanSubscription(s.DB.QueryRowContext(ctx, query,
		sub.Name, sub.Price, sub.Currency, sub.Frequency, sub.Category,
		sub.PaymentMethod, sub.Status, sub.StartDate, sub.RenewalDate, sub.UserID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// GetSubscription возвращает подписку по её ID, ограничивая выборку владельцем.
//
// Чужая и несуществующая подписки неразличимы: обе дают ErrSubscriptionNotFound.
func (s *Storage) GetSubscription(ctx context.Context, id, userID string) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE id = $1 AND user_id = $2`
	sub, err := scanSubscription(s.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// ListSubscriptions возвращает подписки пользователя.
func (s *Storage) ListSubscriptions(ctx context.Context, userID string) ([]*models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  WHERE user_id = $1
			  ORDER BY created_at`
	return s.querySubscriptions(ctx, op, query, userID)
}

// ListAllSubscriptions возвращает все подписки без фильтра по владельцу.
// Используется только административным списком.
func (s *Storage) ListAllSubscriptions(ctx context.Context) ([]*models.Subscription, error) {
	const op = "storage.ListAllSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + subscriptionColumns + `
			  FROM subscriptions
			  ORDER BY created_at`
	return s.querySubscriptions(ctx, op, query)
}

func (s *Storage) querySubscriptions(ctx context.Context, op, query string, args ...any) ([]*models.Subscription, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, sub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateSubscription перезаписывает изменяемые поля подписки, найденной
// по паре id + владелец, и возвращает обновлённую запись.
// updated_at проставляется базой при каждой успешной мутации.
func (s *Storage) UpdateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET name = $1, price = $2, currency = $3, frequency = $4, category = $5,
			      payment_method = $6, status = $7, start_date = $8, renewal_date = $9,
			      updated_at = now()
			  WHERE id = $10 AND user_id = $11
			  RETURNING ` + subscriptionColumns
	updated, err := scanSubscription(s.DB.QueryRowContext(ctx, query,
		sub.Name, sub.Price, sub.Currency, sub.Frequency, sub.Category,
		sub.PaymentMethod, sub.Status, sub.StartDate, sub.RenewalDate,
		sub.ID, sub.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// DeleteSubscription удаляет подписку по паре id + владелец.
// Отсутствие совпавшей строки возвращается как ErrSubscriptionNotFound.
func (s *Storage) DeleteSubscription(ctx context.Context, id, userID string) error {
	const op = "storage.DeleteSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE id = $1 AND user_id = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrSubscriptionNotFound)
	}
	return nil
}
