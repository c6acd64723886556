// Package list реализует HTTP-обработчик списка заказов.
// Админ получает все заказы, покупатель — только собственные.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/commerce-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/commerce-backend/internal/http/response"
	"github.com/magabrotheeeer/commerce-backend/internal/lib/sl"
	"github.com/magabrotheeeer/commerce-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики заказов.
type Service interface {
	List(ctx context.Context, username, role string) ([]models.Order, error)
}

// Handler обрабатывает запросы списка заказов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список заказов
// @Tags Orders
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Заказы, видимые вызывающему"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка чтения хранилища"
// @Router /orders [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	orders, err := h.service.List(r.Context(), username, role)
	if err != nil {
		log.Error("failed to list orders", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list orders"))
		return
	}

	render.JSON(w, r, response.OKWithData(orders))
}
