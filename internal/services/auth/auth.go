// Package auth содержит логику регистрации и входа пользователей.
//
// Регистрация добавляет пользователя в снимок под критической секцией,
// предварительно проверив уникальность имени и почты. Вход сверяет bcrypt-хэш
// и выдаёт подписанный JWT с username и ролью. Несуществующий пользователь и
// неверный пароль снаружи неразличимы.
package auth

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/commerce-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/commerce-backend/internal/lib/password"
	"github.com/magabrotheeeer/commerce-backend/internal/models"
)

// ErrUserExists возвращается, если имя пользователя или почта уже заняты.
var ErrUserExists = errors.New("username or email already exists")

// ErrInvalidCredentials возвращается при неверном имени или пароле.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Store описывает доступ к хранилищу снимков.
type Store interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Update(ctx context.Context, fn func(snap *models.Snapshot) error) error
}

// Service отвечает за регистрацию и авторизацию.
type Service struct {
	store    Store
	jwtMaker jwt.Maker
}

// New создает новый экземпляр Service.
func New(store Store, jwtMaker jwt.Maker) *Service {
	return &Service{
		store:    store,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Роль по умолчанию — customer. Возвращает токен и публичное
// представление пользователя.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (string, *models.PublicUser, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", nil, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleCustomer
	}
	user := models.User{
		Username:      req.Username,
		Email:         req.Email,
		PasswordHash:  hashed,
		First:         req.First,
		Last:          req.Last,
		StreetAddress: req.StreetAddress,
		Role:          role,
	}

	// Токен подписывается до коммита: отказ подписи не должен оставлять
	// пользователя в хранилище, иначе повтор регистрации упрётся в ErrUserExists.
	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}

	err = s.store.Update(ctx, func(snap *models.Snapshot) error {
		for i := range snap.Users {
			if snap.Users[i].Username == user.Username || snap.Users[i].Email == user.Email {
				return ErrUserExists
			}
		}
		snap.Users = append(snap.Users, user)
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	pub := user.Public()
	return token, &pub, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, *models.PublicUser, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return "", nil, err
	}
	idx := snap.UserIndex(username)
	if idx < 0 {
		return "", nil, ErrInvalidCredentials
	}
	user := snap.Users[idx]
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}
	pub := user.Public()
	return token, &pub, nil
}
