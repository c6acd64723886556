// Package checkout реализует HTTP-обработчик оформления заказа.
//
// Handler принимает корзину, адрес доставки и данные карты, валидирует их,
// извлекает имя пользователя из контекста и вызывает оркестратор оформления.
// Бизнес-отказы (нет товара, не хватает остатка, плохая карта) возвращаются
// как 400 с точной причиной; состояние хранилища при этом не меняется.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/commerce-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/commerce-backend/internal/http/response"
	"github.com/magabrotheeeer/commerce-backend/internal/lib/card"
	"github.com/magabrotheeeer/commerce-backend/internal/lib/sl"
	"github.com/magabrotheeeer/commerce-backend/internal/models"
	checkoutservice "github.com/magabrotheeeer/commerce-backend/internal/services/checkout"
)

// Service описывает интерфейс оркестратора оформления заказа.
type Service interface {
	Checkout(ctx context.Context, username string, req models.CheckoutRequest) (*models.Order, error)
}

// Handler обрабатывает запросы оформления заказа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Оформить заказ
// @Description Проверяет корзину против остатков, фиксирует цены и сохраняет заказ одной записью.
// @Tags Orders
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.CheckoutRequest true "Корзина, адрес доставки и карта"
// @Success 201 {object} response.Response "Заказ оформлен"
// @Failure 400 {object} response.ErrorResponse "Бизнес-отказ с указанием товара и количеств"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка записи в хранилище"
// @Router /checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.order.checkout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	username, ok := r.Context().Value(middlewarectx.User).(string)
	if !ok || username == "" {
		log.Error("username not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	order, err := h.service.Checkout(r.Context(), username, req)
	if err != nil {
		var notFound *checkoutservice.ProductNotFoundError
		var noStock *checkoutservice.InsufficientStockError
		switch {
		case errors.As(err, &notFound), errors.As(err, &noStock),
			errors.Is(err, checkoutservice.ErrEmptyCart),
			errors.Is(err, checkoutservice.ErrMissingShipAddress),
			errors.Is(err, card.ErrInvalid):
			log.Error("checkout rejected", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to process checkout", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not process checkout"))
		}
		return
	}

	log.Info("order placed",
		slog.String("order_id", order.ID),
		slog.String("username", username),
		slog.Float64("total", order.Total),
	)
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"order":          order,
		"payment_status": "processed",
	}))
}
