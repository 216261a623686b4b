// Package services содержит бизнес-логику для управления подписками и кешированием.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
)

// ErrValidation возвращается, когда поля запроса не проходят проверку
// формата до обращения к хранилищу.
var ErrValidation = errors.New("invalid subscription data")

// priceRe принимает десятичную строку, максимум два знака после точки,
// в пределах колонки NUMERIC(10,2).
var priceRe = regexp.MustCompile(`^\d{1,8}(\.\d{1,2})?$`)

// cacheTTL — время жизни закешированной подписки.
const cacheTTL = time.Hour

// SubscriptionRepository определяет методы для работы с подписками в хранилище.
type SubscriptionRepository interface {
	// CreateSubscription добавляет новую подписку и возвращает сохранённую запись.
	CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
	// GetSubscription возвращает подписку по ID в пределах владельца.
	GetSubscription(ctx context.Context, id, userID string) (*models.Subscription, error)
	// ListSubscriptions возвращает подписки пользователя.
	ListSubscriptions(ctx context.Context, userID string) ([]*models.Subscription, error)
	// ListAllSubscriptions возвращает все подписки, без фильтра по владельцу.
	ListAllSubscriptions(ctx context.Context) ([]*models.Subscription, error)
	// UpdateSubscription перезаписывает поля подписки по паре id + владелец.
	UpdateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error)
	// DeleteSubscription удаляет подписку по паре id + владелец.
	DeleteSubscription(ctx context.Context, id, userID string) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(ctx context.Context, key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(ctx context.Context, key string) error
}

// SubscriptionService реализует бизнес-логику работы с подписками, включая кеширование.
// Все операции, кроме ListAll, ограничены владельцем записи.
type SubscriptionService struct {
	repo  SubscriptionRepository
	cache Cache
	log   *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, cache Cache, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новую подписку для пользователя, кеширует её и возвращает запись.
// Пустые currency и status получают значения по умолчанию.
func (s *SubscriptionService) Create(ctx context.Context, userID string, req models.CreateSubscriptionRequest) (*models.Subscription, error) {
	if !priceRe.MatchString(req.Price) {
		return nil, fmt.Errorf("%w: price must be a decimal with at most 2 fraction digits", ErrValidation)
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date", ErrValidation)
	}
	var renewalDate *time.Time
	if req.RenewalDate != "" {
		parsed, err := parseDate(req.RenewalDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid renewal date", ErrValidation)
		}
		renewalDate = &parsed
	}

	sub := models.Subscription{
		Name:          req.Name,
		Price:         req.Price,
		Currency:      req.Currency,
		Frequency:     req.Frequency,
		Category:      req.Category,
		PaymentMethod: req.PaymentMethod,
		Status:        req.Status,
		StartDate:     startDate,
		RenewalDate:   renewalDate,
		UserID:        userID,
	}
	if sub.Currency == "" {
		sub.Currency = models.CurrencyUSD
	}
	if sub.Status == "" {
		sub.Status = models.StatusActive
	}

	created, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return nil, err
	}

	s.log.Info("created new subscription", slog.String("id", created.ID))

	s.cacheSet(ctx, created)
	return created, nil
}

// GetByID возвращает подписку по ID, используя кеш или репозиторий.
// Запись из кеша отдаётся только её владельцу.
func (s *SubscriptionService) GetByID(ctx context.Context, id, userID string) (*models.Subscription, error) {
	var cached models.Subscription
	cacheKey := cacheKey(id)
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && cached.UserID == userID {
		return &cached, nil
	}

	result, err := s.repo.GetSubscription(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, result)
	return result, nil
}

// List возвращает подписки пользователя.
func (s *SubscriptionService) List(ctx context.Context, userID string) ([]*models.Subscription, error) {
	return s.repo.ListSubscriptions(ctx, userID)
}

// ListAll возвращает все подписки без фильтра по владельцу.
// Доступ к этому пути ограничен ролью admin на уровне обработчика.
func (s *SubscriptionService) ListAll(ctx context.Context) ([]*models.Subscription, error) {
	return s.repo.ListAllSubscriptions(ctx)
}

// Update перезаписывает переданные поля подписки и обновляет кеш.
// nil-поля запроса сохраняют текущие значения, слияние плоское.
func (s *SubscriptionService) Update(ctx context.Context, id, userID string, req models.UpdateSubscriptionRequest) (*models.Subscription, error) {
	current, err := s.repo.GetSubscription(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	merged := *current
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Price != nil {
		if !priceRe.MatchString(*req.Price) {
			return nil, fmt.Errorf("%w: price must be a decimal with at most 2 fraction digits", ErrValidation)
		}
		merged.Price = *req.Price
	}
	if req.Currency != nil {
		merged.Currency = *req.Currency
	}
	if req.Frequency != nil {
		merged.Frequency = *req.Frequency
	}
	if req.Category != nil {
		merged.Category = *req.Category
	}
	if req.PaymentMethod != nil {
		merged.PaymentMethod = *req.PaymentMethod
	}
	if req.Status != nil {
		merged.Status = *req.Status
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid start date", ErrValidation)
		}
		merged.StartDate = startDate
	}
	if req.RenewalDate != nil {
		renewalDate, err := parseDate(*req.RenewalDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid renewal date", ErrValidation)
		}
		merged.RenewalDate = &renewalDate
	}

	updated, err := s.repo.UpdateSubscription(ctx, merged)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated subscription", slog.String("id", updated.ID))

	s.cacheSet(ctx, updated)
	return updated, nil
}

// Remove удаляет подписку по ID в пределах владельца и инвалидирует кеш.
func (s *SubscriptionService) Remove(ctx context.Context, id, userID string) error {
	cacheKey := cacheKey(id)
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return s.repo.DeleteSubscription(ctx, id, userID)
}

func (s *SubscriptionService) cacheSet(ctx context.Context, sub *models.Subscription) {
	key := cacheKey(sub.ID)
	if err := s.cache.Set(ctx, key, sub, cacheTTL); err != nil {
		s.log.Warn("failed to cache subscription", slog.String("key", key), slog.Any("err", err))
	}
}

func cacheKey(id string) string {
	return fmt.Sprintf("subscription:%s", id)
}

// parseDate принимает дату в RFC3339 или сокращённой форме YYYY-MM-DD.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
