// Package checkout реализует оркестратор оформления заказа.
//
// Оформление целиком выполняется в критической секции хранилища: загрузка
// снимка, резервирование остатков, расчёт суммы, добавление заказа и один
// атомарный commit. Либо валидный заказ сохраняется вместе со списанными
// остатками, либо состояние не меняется и возвращается точная причина отказа.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/commerce-backend/internal/lib/card"
	"github.com/magabrotheeeer/commerce-backend/internal/lib/sl"
	"github.com/magabrotheeeer/commerce-backend/internal/metrics"
	"github.com/magabrotheeeer/commerce-backend/internal/models"
)

// Store описывает критическую секцию мутаций хранилища.
type Store interface {
	// Update выполняет fn над свежим снимком под глобальным мьютексом
	// и коммитит результат одной записью.
	Update(ctx context.Context, fn func(snap *models.Snapshot) error) error
}

// EventPublisher публикует событие о подтверждённом заказе.
type EventPublisher interface {
	PublishOrderConfirmed(ctx context.Context, order models.Order) error
}

// CatalogInvalidator сбрасывает кеш списка товаров после изменения остатков.
type CatalogInvalidator interface {
	InvalidateProducts()
}

// Service оркестрирует оформление заказов.
type Service struct {
	store   Store
	events  EventPublisher     // может быть nil, если брокер не настроен
	catalog CatalogInvalidator // может быть nil, если кеш не настроен
	log     *slog.Logger
}

// New создает новый Service. events и catalog могут быть nil.
func New(store Store, events EventPublisher, catalog CatalogInvalidator, log *slog.Logger) *Service {
	return &Service{
		store:   store,
		events:  events,
		catalog: catalog,
		log:     log,
	}
}

// Checkout проверяет корзину, резервирует остатки и сохраняет заказ.
//
// Имя владельца заказа всегда берётся из проверенной идентичности вызывающего,
// а не из тела запроса. Payment симулируется: карта проверяется только на формат.
func (s *Service) Checkout(ctx context.Context, username string, req models.CheckoutRequest) (*models.Order, error) {
	const op = "services.checkout.Checkout"

	if len(req.Items) == 0 {
		metrics.CheckoutRejected.WithLabelValues("empty_cart").Inc()
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(req.ShipAddress) == "" {
		metrics.CheckoutRejected.WithLabelValues("missing_ship_address").Inc()
		return nil, ErrMissingShipAddress
	}
	if err := card.Validate(req.CreditCard.Number, req.CreditCard.CVV, req.CreditCard.Expiry); err != nil {
		metrics.CheckoutRejected.WithLabelValues("invalid_card").Inc()
		return nil, err
	}

	var order models.Order
	err := s.store.Update(ctx, func(snap *models.Snapshot) error {
		items, err := reserve(snap.Products, req.Items)
		if err != nil {
			return err
		}

		var total float64
		for _, it := range items {
			total += it.UnitPrice * float64(it.Quantity)
		}
		total = math.Round(total*100) / 100

		order = models.Order{
			ID:          uuid.NewString(),
			Username:    username,
			OrderDate:   time.Now().UTC(),
			ShipAddress: req.ShipAddress,
			Items:       items,
			Total:       total,
			Status:      models.OrderStatusConfirmed,
		}
		snap.Orders = append(snap.Orders, order)
		return nil
	})
	if err != nil {
		var notFound *ProductNotFoundError
		var noStock *InsufficientStockError
		switch {
		case errors.As(err, &notFound):
			metrics.CheckoutRejected.WithLabelValues("product_not_found").Inc()
		case errors.As(err, &noStock):
			metrics.CheckoutRejected.WithLabelValues("insufficient_stock").Inc()
		default:
			metrics.CheckoutRejected.WithLabelValues("persistence").Inc()
		}
		return nil, err
	}

	metrics.CheckoutOrders.Inc()
	// Остатки изменились, кешированный список товаров больше не актуален.
	if s.catalog != nil {
		s.catalog.InvalidateProducts()
	}
	s.log.Info("payment processed",
		slog.String("op", op),
		slog.String("card", card.Mask(req.CreditCard.Number)),
		slog.Float64("total", order.Total),
	)

	if s.events != nil {
		if err := s.events.PublishOrderConfirmed(ctx, order); err != nil {
			// Заказ уже сохранён, поэтому неудачная публикация только логируется.
			s.log.Error("failed to publish order confirmed event", sl.Err(err))
		}
	}

	return &order, nil
}
