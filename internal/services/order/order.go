// Package order реализует чтение и административное управление заказами.
//
// Администратор видит и правит все заказы, покупатель — только собственные.
// Правки и удаление выполняются под той же критической секцией, что и любая
// другая мутация хранилища, чтобы не терять параллельные обновления.
package order

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/commerce-backend/internal/models"
)

// ErrOrderNotFound возвращается, если заказ с указанным id отсутствует.
var ErrOrderNotFound = errors.New("order not found")

// ErrAccessDenied возвращается, если вызывающий не админ и не владелец заказа.
var ErrAccessDenied = errors.New("access denied")

// Store описывает доступ к хранилищу снимков.
type Store interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Update(ctx context.Context, fn func(snap *models.Snapshot) error) error
}

// Service реализует операции над заказами.
type Service struct {
	store Store
}

// New создает новый Service.
func New(store Store) *Service {
	return &Service{store: store}
}

// List возвращает заказы, видимые вызывающему: админу — все,
// покупателю — только собственные.
func (s *Service) List(ctx context.Context, username, role string) ([]models.Order, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if role == models.RoleAdmin {
		if snap.Orders == nil {
			return []models.Order{}, nil
		}
		return snap.Orders, nil
	}
	orders := []models.Order{}
	for _, o := range snap.Orders {
		if o.Username == username {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// Get возвращает заказ по id с проверкой доступа: не-админ получает
// ErrAccessDenied для чужого заказа.
func (s *Service) Get(ctx context.Context, id, username, role string) (*models.Order, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := snap.OrderIndex(id)
	if idx < 0 {
		return nil, ErrOrderNotFound
	}
	o := snap.Orders[idx]
	if role != models.RoleAdmin && o.Username != username {
		return nil, ErrAccessDenied
	}
	return &o, nil
}

// Update применяет административную правку полей заказа.
// Переходы статуса намеренно не ограничены.
func (s *Service) Update(ctx context.Context, id string, req models.UpdateOrderRequest) (*models.Order, error) {
	var updated models.Order
	err := s.store.Update(ctx, func(snap *models.Snapshot) error {
		idx := snap.OrderIndex(id)
		if idx < 0 {
			return ErrOrderNotFound
		}
		o := &snap.Orders[idx]
		if req.ShipAddress != nil {
			o.ShipAddress = *req.ShipAddress
		}
		if req.Status != nil {
			o.Status = *req.Status
		}
		updated = *o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete удаляет заказ по id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Update(ctx, func(snap *models.Snapshot) error {
		idx := snap.OrderIndex(id)
		if idx < 0 {
			return ErrOrderNotFound
		}
		snap.Orders = append(snap.Orders[:idx], snap.Orders[idx+1:]...)
		return nil
	})
}
