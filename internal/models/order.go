// Package models содержит доменную модель заказа.
// Заказ неизменяем после создания, кроме административных правок статуса и полей.
// Цена в позиции фиксируется на момент оформления и никогда не пересчитывается
// по текущему каталогу: исторический заказ отражает цену, которую заплатили.
package models

import "time"

// OrderItem — позиция заказа с зафиксированной ценой за единицу.
type OrderItem struct {
	ProductID string  `json:"product_id"` // Ссылка на товар
	Quantity  int     `json:"quantity"`   // Количество, >= 1
	UnitPrice float64 `json:"price"`      // Цена за единицу на момент покупки
}

// Order представляет оформленный заказ пользователя.
type Order struct {
	ID          string      `json:"id"`         // Уникальный идентификатор, генерируется при оформлении
	Username    string      `json:"username"`   // Владелец, всегда из проверенного токена
	OrderDate   time.Time   `json:"order_date"` // Время оформления
	ShipAddress string      `json:"ship_address"`
	Items       []OrderItem `json:"items"` // Позиции в порядке корзины
	Total       float64     `json:"total"` // Сумма qty*price, округлена до 2 знаков
	Status      string      `json:"status"`
}

// OrderStatusConfirmed — начальный статус нового заказа.
const OrderStatusConfirmed = "confirmed"

// CartItem — запрошенная позиция корзины из JSON-запроса.
type CartItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// CreditCard — данные карты из запроса оформления заказа.
// Проверяется только формат, реальной авторизации платежа нет.
type CreditCard struct {
	Number string `json:"number" validate:"required"`
	CVV    string `json:"cvv" validate:"required"`
	Expiry string `json:"expiry" validate:"required"`
}

// CheckoutRequest — тело запроса оформления заказа.
type CheckoutRequest struct {
	Items       []CartItem `json:"items" validate:"required,min=1,dive"`
	ShipAddress string     `json:"ship_address" validate:"required"`
	CreditCard  CreditCard `json:"credit_card" validate:"required"`
}

// UpdateOrderRequest описывает административную правку заказа.
// Переходы статуса намеренно не ограничены.
type UpdateOrderRequest struct {
	ShipAddress *string `json:"ship_address,omitempty"`
	Status      *string `json:"status,omitempty"`
}
