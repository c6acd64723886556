// Package rabbitmq содержит публикацию событий заказов.
//
// Publisher отправляет событие order.confirmed после успешного коммита заказа.
// Публикация — побочный эффект: её ошибка логируется вызывающим кодом,
// но не отменяет уже сохранённый заказ.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/commerce-backend/internal/models"
)

// Имена exchange, очереди и ключа маршрутизации событий заказов.
const (
	OrdersExchange      = "orders"
	OrderConfirmedQueue = "order_confirmed"
	OrderConfirmedKey   = "order.confirmed"
)

// OrderConfirmedEvent — полезная нагрузка события подтверждённого заказа.
type OrderConfirmedEvent struct {
	OrderID   string    `json:"order_id"`
	Username  string    `json:"username"`
	Total     float64   `json:"total"`
	OrderDate time.Time `json:"order_date"`
}

// Publisher публикует события заказов в RabbitMQ.
type Publisher struct {
	ch *amqp.Channel
}

// NewPublisher создаёт издателя поверх открытого канала.
func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// PublishOrderConfirmed отправляет событие о подтверждённом заказе.
func (p *Publisher) PublishOrderConfirmed(_ context.Context, order models.Order) error {
	const op = "rabbitmq.PublishOrderConfirmed"

	event := OrderConfirmedEvent{
		OrderID:   order.ID,
		Username:  order.Username,
		Total:     order.Total,
		OrderDate: order.OrderDate,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		OrdersExchange,
		OrderConfirmedKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
