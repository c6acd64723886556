package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/commerce-backend/internal/models"
)

// memStore — хранилище в памяти для тестов Guard. Load отдаёт глубокую
// копию через JSON, как это делают реальные реализации.
type memStore struct {
	mu        sync.Mutex
	data      []byte
	commitErr error
	loads     int
	commits   int
}

func newMemStore(t *testing.T, snap *models.Snapshot) *memStore {
	t.Helper()
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	return &memStore{data: data}
}

func (m *memStore) Load(_ context.Context) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	var snap models.Snapshot
	if err := json.Unmarshal(m.data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (m *memStore) Commit(_ context.Context, snap *models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commits++
	if m.commitErr != nil {
		return m.commitErr
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

func TestGuardUpdateSerializesMutations(t *testing.T) {
	store := newMemStore(t, &models.Snapshot{
		Products: []models.Product{{ID: "p1", Name: "Widget", OnHand: 0}},
	})
	guard := NewGuard(store)

	const writers = 50
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			err := guard.Update(context.Background(), func(snap *models.Snapshot) error {
				snap.Products[0].OnHand++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap, err := guard.Load(context.Background())
	require.NoError(t, err)
	// Без сериализации параллельные load-modify-save теряли бы инкременты.
	assert.Equal(t, writers, snap.Products[0].OnHand)
	assert.Equal(t, writers, store.commits)
}

func TestGuardUpdateNoCommitOnError(t *testing.T) {
	store := newMemStore(t, &models.Snapshot{
		Products: []models.Product{{ID: "p1", Name: "Widget", OnHand: 5}},
	})
	guard := NewGuard(store)

	errRejected := errors.New("rejected")
	err := guard.Update(context.Background(), func(snap *models.Snapshot) error {
		snap.Products[0].OnHand = 0
		return errRejected
	})
	require.ErrorIs(t, err, errRejected)
	assert.Zero(t, store.commits)

	snap, err := guard.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Products[0].OnHand)
}

func TestGuardUpdateCommitError(t *testing.T) {
	store := newMemStore(t, &models.Snapshot{})
	store.commitErr = errors.New("disk full")
	guard := NewGuard(store)

	err := guard.Update(context.Background(), func(snap *models.Snapshot) error {
		snap.Products = append(snap.Products, models.Product{ID: "p1"})
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	// Одна попытка записи, без ретраев.
	assert.Equal(t, 1, store.commits)

	snap, err := guard.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Products)
}

func TestGuardLoadDoesNotBlock(t *testing.T) {
	store := newMemStore(t, &models.Snapshot{})
	guard := NewGuard(store)

	entered := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = guard.Update(context.Background(), func(snap *models.Snapshot) error {
			close(entered)
			<-release
			return nil
		})
	}()

	<-entered
	// Чтение проходит, пока мутация держит критическую секцию.
	_, err := guard.Load(context.Background())
	assert.NoError(t, err)
	close(release)
}
