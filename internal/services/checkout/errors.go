// Package checkout содержит бизнес-отказы оформления заказа.
// Каждый отказ несёт идентификатор товара и количества, чтобы причина
// была видна вызывающему без обращения к логам.
package checkout

import (
	"errors"
	"fmt"
)

// ErrEmptyCart возвращается, если корзина пуста.
var ErrEmptyCart = errors.New("cart is empty")

// ErrMissingShipAddress возвращается, если адрес доставки не указан.
var ErrMissingShipAddress = errors.New("ship address is required")

// ProductNotFoundError — в корзине указан несуществующий товар.
// Отказ относится ко всей корзине: частичного резервирования нет.
type ProductNotFoundError struct {
	ID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ID)
}

// InsufficientStockError — запрошенное количество превышает остаток.
// Available — остаток на момент проверки с учётом более ранних строк
// той же корзины для того же товара.
type InsufficientStockError struct {
	ID        string
	Name      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d",
		e.Name, e.Available, e.Requested)
}
