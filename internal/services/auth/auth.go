// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/dsar-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/dsar-portal/internal/lib/password"
	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по почте или models.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и выпуск сессионных токенов.
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

// Register создает нового пользователя с хэшированием пароля и ролью owner.
//
// Занятая почта возвращается как models.ErrDuplicate из хранилища.
func (s *AuthService) Register(ctx context.Context, email, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleOwner, // роль при самостоятельной регистрации
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и выпускает сессионный токен.
//
// Неизвестная почта и неверный пароль дают одну и ту же ошибку,
// чтобы не раскрывать существование учётной записи.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (token string, role models.Role, err error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", "", models.ErrInvalidCredentials
		}
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", models.ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.UID, user.Email, string(user.Role))
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// SeedAdmin создаёт администратора из конфигурации, если его ещё нет.
// Повторные запуски ничего не меняют.
func (s *AuthService) SeedAdmin(ctx context.Context, email, rawPassword string) error {
	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return err
	}
	_, err = s.users.RegisterUser(ctx, models.User{
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
	})
	if errors.Is(err, models.ErrDuplicate) {
		// параллельный запуск уже создал администратора
		return nil
	}
	return err
}
