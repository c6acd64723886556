package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/commerce-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/commerce-backend/internal/models"
	"github.com/magabrotheeeer/commerce-backend/internal/storage"
	"github.com/magabrotheeeer/commerce-backend/internal/storage/filestore"
)

func testService(t *testing.T) (*Service, *storage.Guard, jwt.Maker) {
	t.Helper()
	guard := storage.NewGuard(filestore.New(filepath.Join(t.TempDir(), "state.json")))
	maker := jwt.NewJWTMaker("test-secret-key", time.Hour)
	return New(guard, maker), guard, maker
}

func registerRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Username:      "alice",
		Email:         "alice@example.com",
		Password:      "secret123",
		First:         "Alice",
		Last:          "Liddell",
		StreetAddress: "1 Main St",
	}
}

func TestRegister(t *testing.T) {
	service, guard, maker := testService(t)

	token, pub, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	assert.Equal(t, "alice", pub.Username)
	assert.Equal(t, models.RoleCustomer, pub.Role)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleCustomer, claims.Role)

	snap, err := guard.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Users, 1)
	assert.NotEmpty(t, snap.Users[0].PasswordHash)
	assert.NotEqual(t, "secret123", snap.Users[0].PasswordHash)
}

func TestRegisterExplicitRole(t *testing.T) {
	service, _, _ := testService(t)

	req := registerRequest()
	req.Role = models.RoleAdmin
	_, pub, err := service.Register(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, pub.Role)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	service, _, _ := testService(t)

	_, _, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	req.Email = "other@example.com"
	_, _, err = service.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _, _ := testService(t)

	_, _, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	req.Username = "bob"
	_, _, err = service.Register(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserExists)
}

// failingMaker имитирует отказ подписи токена.
type failingMaker struct{}

func (failingMaker) GenerateToken(string, string) (string, error) {
	return "", errors.New("sign error")
}

func (failingMaker) ParseToken(string) (*jwt.CustomClaims, error) {
	return nil, errors.New("sign error")
}

func TestRegisterTokenFailureLeavesNoUser(t *testing.T) {
	guard := storage.NewGuard(filestore.New(filepath.Join(t.TempDir(), "state.json")))
	broken := New(guard, failingMaker{})

	_, _, err := broken.Register(context.Background(), registerRequest())
	require.Error(t, err)

	// Отказ подписи не оставляет пользователя в хранилище.
	snap, err := guard.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Users)

	// Повторная регистрация с рабочим maker проходит без ErrUserExists.
	working := New(guard, jwt.NewJWTMaker("test-secret-key", time.Hour))
	_, pub, err := working.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "alice", pub.Username)
}

func TestLogin(t *testing.T) {
	service, _, maker := testService(t)

	_, _, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	token, pub, err := service.Login(context.Background(), "alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice", pub.Username)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginInvalidCredentials(t *testing.T) {
	service, _, _ := testService(t)

	_, _, err := service.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "alice", password: "wrongpass"},
		{name: "unknown user", username: "nobody", password: "secret123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.Login(context.Background(), tt.username, tt.password)
			// Несуществующий пользователь и неверный пароль неразличимы.
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}
