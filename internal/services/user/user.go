// Package user реализует чтение и обновление профилей пользователей.
//
// Наружу уходит только публичное представление без хэша пароля. Новый пароль
// при обновлении хэшируется заново, смена роли доступна только администратору
// и проверяется на уровне HTTP-слоя.
package user

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/commerce-backend/internal/lib/password"
	"github.com/magabrotheeeer/commerce-backend/internal/models"
)

// ErrUserNotFound возвращается, если пользователь отсутствует.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken возвращается, если новая почта уже занята другим пользователем.
var ErrEmailTaken = errors.New("email already exists")

// Store описывает доступ к хранилищу снимков.
type Store interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Update(ctx context.Context, fn func(snap *models.Snapshot) error) error
}

// Service реализует операции над пользователями.
type Service struct {
	store Store
}

// New создает новый Service.
func New(store Store) *Service {
	return &Service{store: store}
}

// List возвращает публичные представления всех пользователей.
func (s *Service) List(ctx context.Context) ([]models.PublicUser, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]models.PublicUser, 0, len(snap.Users))
	for _, u := range snap.Users {
		users = append(users, u.Public())
	}
	return users, nil
}

// Get возвращает публичное представление пользователя по имени.
func (s *Service) Get(ctx context.Context, username string) (*models.PublicUser, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := snap.UserIndex(username)
	if idx < 0 {
		return nil, ErrUserNotFound
	}
	pub := snap.Users[idx].Public()
	return &pub, nil
}

// Update применяет частичное обновление профиля под критической секцией.
// Пароль, если передан, хэшируется до входа в секцию.
func (s *Service) Update(ctx context.Context, username string, req models.UpdateUserRequest) (*models.PublicUser, error) {
	var newHash string
	if req.Password != nil {
		var err error
		newHash, err = password.GetHash(*req.Password)
		if err != nil {
			return nil, err
		}
	}

	var updated models.PublicUser
	err := s.store.Update(ctx, func(snap *models.Snapshot) error {
		idx := snap.UserIndex(username)
		if idx < 0 {
			return ErrUserNotFound
		}
		if req.Email != nil {
			for i := range snap.Users {
				if i != idx && snap.Users[i].Email == *req.Email {
					return ErrEmailTaken
				}
			}
		}
		u := &snap.Users[idx]
		if req.Email != nil {
			u.Email = *req.Email
		}
		if newHash != "" {
			u.PasswordHash = newHash
		}
		if req.First != nil {
			u.First = *req.First
		}
		if req.Last != nil {
			u.Last = *req.Last
		}
		if req.StreetAddress != nil {
			u.StreetAddress = *req.StreetAddress
		}
		if req.Role != nil {
			u.Role = *req.Role
		}
		updated = u.Public()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
