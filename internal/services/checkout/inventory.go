// Инвентарная книга: проверка и резервирование остатков для корзины.
//
// Резервирование двухфазное. Сначала каждая строка корзины проверяется против
// проектируемого остатка — с учётом более ранних строк той же корзины, поэтому
// дубликаты product_id суммируются. Декременты применяются только после того,
// как прошла вся корзина: корзина, падающая на поздней строке, не оставляет
// частично списанных остатков.
package checkout

import "github.com/magabrotheeeer/commerce-backend/internal/models"

// reserve валидирует корзину против переданных товаров и, если валидна вся
// корзина, применяет декременты on_hand на месте. Возвращает позиции заказа
// с ценой, зафиксированной на момент резервирования.
func reserve(products []models.Product, cart []models.CartItem) ([]models.OrderItem, error) {
	reserved := make(map[string]int, len(cart))
	items := make([]models.OrderItem, 0, len(cart))

	for _, line := range cart {
		idx := -1
		for i := range products {
			if products[i].ID == line.ProductID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, &ProductNotFoundError{ID: line.ProductID}
		}
		p := products[idx]

		available := p.OnHand - reserved[p.ID]
		if line.Quantity < 1 || available < line.Quantity {
			return nil, &InsufficientStockError{
				ID:        p.ID,
				Name:      p.Name,
				Available: available,
				Requested: line.Quantity,
			}
		}
		reserved[p.ID] += line.Quantity
		items = append(items, models.OrderItem{
			ProductID: p.ID,
			Quantity:  line.Quantity,
			UnitPrice: p.Price,
		})
	}

	// Вся корзина прошла проверку — применяем декременты.
	for i := range products {
		if qty, ok := reserved[products[i].ID]; ok {
			products[i].OnHand -= qty
		}
	}
	return items, nil
}
