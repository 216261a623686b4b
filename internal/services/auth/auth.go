// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-tracker/internal/lib/password"
	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
// Несуществующий email и неверный пароль дают одну и ту же ошибку,
// чтобы по ответу нельзя было перечислять зарегистрированные адреса.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает созданную запись.
	// Занятый email транслируется хранилищем в storage.ErrUserExists.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)

	// GetUserByEmail возвращает пользователя по email или storage.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, вход и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// SignUp создает нового пользователя с хэшированием пароля и дефолтной ролью "user",
// затем сразу выпускает токен сессии.
//
// Предварительная проверка email не атомарна: гонка двух одинаковых
// регистраций разрешается уникальным индексом в базе, нарушение которого
// тоже приходит сюда как storage.ErrUserExists.
func (s *AuthService) SignUp(ctx context.Context, name, email, rawPassword string) (*models.AuthResult, error) {
	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, storage.ErrUserExists
	}
	if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         "user", // дефолтная роль при регистрации
	}
	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.jwtMaker.GenerateToken(created.ID, created.Email, created.Role)
	if err != nil {
		return nil, err
	}
	return &models.AuthResult{
		Token: token,
		User:  created.Public(),
	}, nil
}

// SignIn проверяет пароль пользователя и выпускает JWT.
func (s *AuthService) SignIn(ctx context.Context, email, rawPassword string) (*models.AuthResult, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &models.AuthResult{
		Token: token,
		User:  user.Public(),
	}, nil
}

// ValidateToken проверяет JWT и возвращает claims с данными пользователя.
// Проверка чисто вычислительная, обращений к базе нет.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}
