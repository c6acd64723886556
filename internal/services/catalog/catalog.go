// Package catalog реализует бизнес-логику каталога товаров, включая кеширование.
//
// Чтения идут без критической секции по последнему снимку; список товаров
// кешируется в Redis и инвалидируется любой мутацией каталога. Все мутации
// выполняются под глобальной критической секцией хранилища.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/commerce-backend/internal/lib/sl"
	"github.com/magabrotheeeer/commerce-backend/internal/models"
)

// ErrProductNotFound возвращается, если товар с указанным id отсутствует.
var ErrProductNotFound = errors.New("product not found")

const (
	productsCacheKey = "catalog:products"
	productsCacheTTL = time.Minute
)

// Store описывает доступ к хранилищу снимков.
type Store interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Update(ctx context.Context, fn func(snap *models.Snapshot) error) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует операции каталога.
type Service struct {
	store Store
	cache Cache // может быть nil, если Redis не настроен
	log   *slog.Logger
}

// New создает новый Service. cache может быть nil.
func New(store Store, cache Cache, log *slog.Logger) *Service {
	return &Service{
		store: store,
		cache: cache,
		log:   log,
	}
}

// List возвращает все товары каталога, по возможности из кеша.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		var cached []models.Product
		ok, err := s.cache.Get(productsCacheKey, &cached)
		if err != nil {
			s.log.Error("failed to read products cache", sl.Err(err))
		}
		if ok {
			return cached, nil
		}
	}

	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	products := snap.Products
	if products == nil {
		products = []models.Product{}
	}

	if s.cache != nil {
		if err := s.cache.Set(productsCacheKey, products, productsCacheTTL); err != nil {
			s.log.Error("failed to fill products cache", sl.Err(err))
		}
	}
	return products, nil
}

// Get возвращает товар по id.
func (s *Service) Get(ctx context.Context, id string) (*models.Product, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := snap.ProductIndex(id)
	if idx < 0 {
		return nil, ErrProductNotFound
	}
	p := snap.Products[idx]
	return &p, nil
}

// Create добавляет новый товар с идентификатором, сгенерированным хранилищем.
func (s *Service) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	product := models.Product{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		OnHand:      *req.OnHand,
		Description: req.Description,
	}
	err := s.store.Update(ctx, func(snap *models.Snapshot) error {
		snap.Products = append(snap.Products, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return &product, nil
}

// Update применяет частичное обновление товара.
func (s *Service) Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	var updated models.Product
	err := s.store.Update(ctx, func(snap *models.Snapshot) error {
		idx := snap.ProductIndex(id)
		if idx < 0 {
			return ErrProductNotFound
		}
		p := &snap.Products[idx]
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.OnHand != nil {
			p.OnHand = *req.OnHand
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		updated = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return &updated, nil
}

// Delete удаляет товар по id.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.store.Update(ctx, func(snap *models.Snapshot) error {
		idx := snap.ProductIndex(id)
		if idx < 0 {
			return ErrProductNotFound
		}
		snap.Products = append(snap.Products[:idx], snap.Products[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// InvalidateProducts сбрасывает кеш списка товаров. Вызывается оформлением
// заказа после списания остатков: декремент on_hand — такая же мутация
// каталога, как и правка товара, и не должен переживать кеш.
func (s *Service) InvalidateProducts() {
	s.invalidate()
}

func (s *Service) invalidate() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(productsCacheKey); err != nil {
		s.log.Error("failed to invalidate products cache", sl.Err(err))
	}
}
