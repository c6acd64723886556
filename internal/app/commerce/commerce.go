// Package commerce собирает приложение: хранилище, сервисы, маршруты и HTTP-сервер.
package commerce

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/commerce-backend/internal/cache"
	"github.com/magabrotheeeer/commerce-backend/internal/config"
	jwtlib "github.com/magabrotheeeer/commerce-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/commerce-backend/internal/lib/sl"
	"github.com/magabrotheeeer/commerce-backend/internal/migrations"
	"github.com/magabrotheeeer/commerce-backend/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/commerce-backend/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/commerce-backend/internal/services/catalog"
	checkoutservice "github.com/magabrotheeeer/commerce-backend/internal/services/checkout"
	orderservice "github.com/magabrotheeeer/commerce-backend/internal/services/order"
	userservice "github.com/magabrotheeeer/commerce-backend/internal/services/user"
	"github.com/magabrotheeeer/commerce-backend/internal/storage"
	"github.com/magabrotheeeer/commerce-backend/internal/storage/filestore"
	"github.com/magabrotheeeer/commerce-backend/internal/storage/pgstore"
)

// App держит HTTP-сервер и ресурсы, которые нужно закрыть при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	pg     *pgstore.Store   // nil для файлового хранилища
	amqp   *amqp.Connection // nil, если брокер не настроен
}

// New инициализирует хранилище по драйверу из конфига, подключает
// опциональные Redis и RabbitMQ, собирает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	var store storage.Store
	var pg *pgstore.Store

	switch cfg.StorageDriver {
	case "postgres":
		var err error
		pg, err = pgstore.New(cfg.StorageConnectionString)
		if err != nil {
			return nil, err
		}
		if err = migrations.Run(pg.DB, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		store = pg
	default:
		store = filestore.New(cfg.StoragePath)
	}
	guard := storage.NewGuard(store)

	jwtMaker := jwtlib.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	var catalogCache catalogservice.Cache
	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			return nil, err
		}
		catalogCache = redisCache
	}

	var events checkoutservice.EventPublisher
	var amqpConn *amqp.Connection
	if cfg.RabbitConnectionString != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitConnectionString, 5, 2*time.Second)
		if err != nil {
			return nil, err
		}
		ch, err := rabbitmq.SetupChannel(conn)
		if err != nil {
			return nil, err
		}
		events = rabbitmq.NewPublisher(ch)
		amqpConn = conn
	}

	authService := authservice.New(guard, jwtMaker)
	catalogService := catalogservice.New(guard, catalogCache, logger)
	checkoutService := checkoutservice.New(guard, events, catalogService, logger)
	orderService := orderservice.New(guard)
	userService := userservice.New(guard)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker,
		authService, catalogService, checkoutService, orderService, userService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		pg:     pg,
		amqp:   amqpConn,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.pg != nil {
		if err := a.pg.Close(); err != nil {
			a.logger.Error("failed to close postgres pool", sl.Err(err))
		}
	}
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Error("failed to close rabbitmq connection", sl.Err(err))
		}
	}
}
