// Package filestore реализует хранилище снимков в одном JSON-файле.
//
// Файл содержит три коллекции: products, users и orders. Отсутствующий файл
// читается как пустое состояние. Замена файла атомарна: новый документ
// пишется во временный файл рядом с целевым и переименовывается поверх него,
// поэтому читатель никогда не видит наполовину записанный документ.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/magabrotheeeer/commerce-backend/internal/models"
)

// Store — файловое хранилище снимков.
type Store struct {
	path string
}

// New создаёт хранилище поверх файла по указанному пути.
func New(path string) *Store {
	return &Store{path: path}
}

// Load читает и разбирает документ целиком. Отсутствующий файл — это
// валидное пустое состояние, а не ошибка.
func (s *Store) Load(_ context.Context) (*models.Snapshot, error) {
	const op = "filestore.Load"

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &models.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &snap, nil
}

// Commit полностью заменяет документ переданным снимком.
// Запись идёт во временный файл в том же каталоге с последующим rename,
// чтобы замена была атомарной на уровне файловой системы.
func (s *Store) Commit(_ context.Context, snap *models.Snapshot) error {
	const op = "filestore.Commit"

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
