// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и служебные даты.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           string    `json:"id"`        // Уникальный идентификатор пользователя
	Name         string    `json:"name"`      // Отображаемое имя
	Email        string    `json:"email"`     // Электронная почта (уникальная)
	PasswordHash string    `json:"-"`         // Хэш пароля, никогда не сериализуется
	Role         string    `json:"role"`      // Роль пользователя, admin или user
	CreatedAt    time.Time `json:"createdAt"` // Дата создания записи
	UpdatedAt    time.Time `json:"updatedAt"` // Дата последнего изменения
}

// PublicUser содержит только те поля пользователя, которые можно
// возвращать клиенту в конверте ответа аутентификации.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Public возвращает представление пользователя без служебных полей.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// AuthResult — конверт успешной аутентификации: токен и публичные данные пользователя.
type AuthResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}
