// Package storage определяет контракт персистентного хранилища и Guard —
// глобальную критическую секцию для всех мутаций.
//
// Хранилище держит одно JSON-представление трёх коллекций (товары, пользователи,
// заказы) и умеет только читать его целиком и целиком заменять. Commit — это
// полная замена, не слияние, поэтому две независимые последовательности
// load-modify-save молча теряют одно из двух обновлений. Guard решает это,
// сериализуя все мутации одним мьютексом на процесс.
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/magabrotheeeer/commerce-backend/internal/models"
)

// Store описывает контракт хранилища снимков.
//
// Load возвращает свежую копию всего состояния, Commit атомарно заменяет
// состояние переданным снимком. Реализации: filestore (JSON-файл) и
// pgstore (однострочная JSONB-таблица).
type Store interface {
	// Load читает полный снимок состояния.
	Load(ctx context.Context) (*models.Snapshot, error)
	// Commit полностью заменяет состояние переданным снимком.
	Commit(ctx context.Context, snap *models.Snapshot) error
}

// Guard сериализует мутации хранилища. Каждая последовательность
// load -> validate -> mutate -> commit выполняется под одним мьютексом,
// чтения идут без блокировки и могут видеть состояние давностью в один commit.
type Guard struct {
	mu    sync.Mutex
	store Store
}

// NewGuard оборачивает хранилище в критическую секцию мутаций.
func NewGuard(store Store) *Guard {
	return &Guard{store: store}
}

// Load возвращает снимок без захвата критической секции.
func (g *Guard) Load(ctx context.Context) (*models.Snapshot, error) {
	return g.store.Load(ctx)
}

// Update выполняет fn над свежим снимком под мьютексом и коммитит результат.
// Если fn возвращает ошибку, commit не выполняется и состояние не меняется.
// Ошибка commit возвращается как есть: попытка записи ровно одна, без ретраев,
// и операция не считается применённой.
func (g *Guard) Update(ctx context.Context, fn func(snap *models.Snapshot) error) error {
	const op = "storage.Update"

	g.mu.Lock()
	defer g.mu.Unlock()

	snap, err := g.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := fn(snap); err != nil {
		return err
	}
	if err := g.store.Commit(ctx, snap); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
