// Package pgstore реализует хранилище снимков поверх PostgreSQL.
//
// Контракт тот же, что у файлового хранилища: один JSONB-документ с тремя
// коллекциями, который читается и заменяется целиком. Документ живёт в
// единственной строке таблицы commerce_state; отсутствие строки — пустое
// состояние. Построчных блокировок нет намеренно: сериализацию мутаций
// обеспечивает storage.Guard.
package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/commerce-backend/internal/models"
)

// Store инкапсулирует соединение с PostgreSQL и реализует контракт storage.Store.
type Store struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его ping-ом.
func New(storageConnectionString string) (*Store, error) {
	const op = "pgstore.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{DB: db}, nil
}

// Load читает JSONB-документ из единственной строки таблицы.
func (s *Store) Load(ctx context.Context) (*models.Snapshot, error) {
	const op = "pgstore.Load"

	var raw []byte
	err := s.DB.QueryRowContext(ctx,
		`SELECT document FROM commerce_state WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &snap, nil
}

// Commit заменяет документ переданным снимком одним upsert-ом.
func (s *Store) Commit(ctx context.Context, snap *models.Snapshot) error {
	const op = "pgstore.Commit"

	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO commerce_state (id, document) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = now()`, raw)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает пул соединений.
func (s *Store) Close() error {
	return s.DB.Close()
}
