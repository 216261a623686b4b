// Package models содержит доменные структуры, описывающие подписку,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Допустимые значения закрытых перечислений подписки.
// Любое другое значение отклоняется до обращения к хранилищу.
const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"

	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyYearly  = "yearly"

	StatusActive    = "active"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

// Categories перечисляет закрытый набор категорий подписки.
var Categories = []string{
	"sports", "news", "entertainment", "lifestyle",
	"technology", "finance", "politics", "other",
}

// Subscription представляет собой основную модель подписки,
// используемую в бизнес-логике и хранилище.
// Цена хранится строкой с двумя знаками после запятой и соответствует
// колонке NUMERIC(10,2), поле RenewalDate может быть nil —
// это означает отсутствие даты следующего продления.
type Subscription struct {
	ID            string     `json:"id"`                    // Уникальный идентификатор
	Name          string     `json:"name"`                  // Название сервиса подписки
	Price         string     `json:"price"`                 // Цена, десятичная строка с 2 знаками
	Currency      string     `json:"currency"`              // Валюта: USD, EUR или GBP
	Frequency     string     `json:"frequency"`             // Периодичность списаний
	Category      string     `json:"category"`              // Категория подписки
	PaymentMethod string     `json:"paymentMethod"`         // Способ оплаты, свободный текст
	Status        string     `json:"status"`                // Статус жизненного цикла
	StartDate     time.Time  `json:"startDate"`             // Дата начала подписки
	RenewalDate   *time.Time `json:"renewalDate,omitempty"` // Дата продления (опциональна)
	UserID        string     `json:"userId"`                // Идентификатор владельца
	CreatedAt     time.Time  `json:"createdAt"`             // Дата создания записи
	UpdatedAt     time.Time  `json:"updatedAt"`             // Дата последнего изменения
}

// CreateSubscriptionRequest используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Subscription.
// Даты приходят строками в формате RFC3339, чтобы их можно было
// валидировать и парсить вручную.
type CreateSubscriptionRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Price         string `json:"price" validate:"required"`
	Currency      string `json:"currency" validate:"omitempty,oneof=USD EUR GBP"`
	Frequency     string `json:"frequency" validate:"required,oneof=daily weekly monthly yearly"`
	Category      string `json:"category" validate:"required,oneof=sports news entertainment lifestyle technology finance politics other"`
	PaymentMethod string `json:"paymentMethod" validate:"required,max=100"`
	Status        string `json:"status" validate:"omitempty,oneof=active cancelled expired"`
	StartDate     string `json:"startDate" validate:"required"`
	RenewalDate   string `json:"renewalDate" validate:"omitempty"`
}

// UpdateSubscriptionRequest принимает частичное обновление подписки:
// nil-поле означает «оставить как есть», заполненное — перезаписать.
// Идентификатор и владелец через обновление не меняются.
type UpdateSubscriptionRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=100"`
	Price         *string `json:"price" validate:"omitempty"`
	Currency      *string `json:"currency" validate:"omitempty,oneof=USD EUR GBP"`
	Frequency     *string `json:"frequency" validate:"omitempty,oneof=daily weekly monthly yearly"`
	Category      *string `json:"category" validate:"omitempty,oneof=sports news entertainment lifestyle technology finance politics other"`
	PaymentMethod *string `json:"paymentMethod" validate:"omitempty,max=100"`
	Status        *string `json:"status" validate:"omitempty,oneof=active cancelled expired"`
	StartDate     *string `json:"startDate" validate:"omitempty"`
	RenewalDate   *string `json:"renewalDate" validate:"omitempty"`
}
