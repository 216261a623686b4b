// Package storage определяет ошибки уровня хранилища, общие для всех
// реализаций репозиториев. Сервисы сопоставляют их через errors.Is,
// чтобы транслировать в коды ответов HTTP.
package storage

import "errors"

var (
	// ErrUserExists возвращается при попытке зарегистрировать занятый email.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound возвращается, если пользователь с таким email или id отсутствует.
	ErrUserNotFound = errors.New("user not found")
	// ErrSubscriptionNotFound возвращается, если подписка не найдена
	// или принадлежит другому пользователю.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)
