// Package models содержит доменные структуры каталога, пользователей и заказов,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

// Product представляет товар каталога. OnHand — свободный остаток на складе,
// уменьшается при оформлении заказа и никогда не опускается ниже нуля.
type Product struct {
	ID          string  `json:"id"`          // Уникальный идентификатор, генерируется хранилищем
	Name        string  `json:"name"`        // Название товара
	Price       float64 `json:"price"`       // Цена за единицу, >= 0
	Category    string  `json:"category"`    // Категория каталога
	OnHand      int     `json:"on_hand"`     // Остаток на складе, >= 0
	Description string  `json:"description"` // Описание товара
}

// CreateProductRequest используется для приёма данных нового товара из JSON-запроса.
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"required,gte=0"`
	Category    string  `json:"category" validate:"required"`
	OnHand      *int    `json:"on_hand" validate:"required,gte=0"` // Указатель, чтобы отличать 0 от отсутствия поля
	Description string  `json:"description" validate:"required"`
}

// UpdateProductRequest описывает частичное обновление товара.
// Нулевые указатели означают, что поле не меняется.
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty"`
	OnHand      *int     `json:"on_hand,omitempty" validate:"omitempty,gte=0"`
	Description *string  `json:"description,omitempty"`
}
