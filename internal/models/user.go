// Package models содержит доменную модель пользователя системы.
// Хэш пароля хранится отдельным полем и никогда не сериализуется наружу:
// во внешние ответы уходит только PublicUser.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	Username      string `json:"username"`      // Имя пользователя (уникальное, ключ идентичности)
	Email         string `json:"email"`         // Электронная почта (уникальная)
	PasswordHash  string `json:"password_hash"` // bcrypt-хэш пароля, присутствует только в хранилище
	First         string `json:"first"`         // Имя
	Last          string `json:"last"`          // Фамилия
	StreetAddress string `json:"street_address"`
	Role          string `json:"role"` // admin или customer
}

// Роли пользователей.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// PublicUser — представление пользователя без учётных данных.
// Единственная форма, в которой пользователь покидает сервисный слой.
type PublicUser struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	First         string `json:"first"`
	Last          string `json:"last"`
	StreetAddress string `json:"street_address"`
	Role          string `json:"role"`
}

// Public возвращает представление пользователя без хэша пароля.
func (u User) Public() PublicUser {
	return PublicUser{
		Username:      u.Username,
		Email:         u.Email,
		First:         u.First,
		Last:          u.Last,
		StreetAddress: u.StreetAddress,
		Role:          u.Role,
	}
}

// RegisterRequest используется для приёма данных регистрации из JSON-запроса.
type RegisterRequest struct {
	Username      string `json:"username" validate:"required,alphanum"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	First         string `json:"first" validate:"required"`
	Last          string `json:"last" validate:"required"`
	StreetAddress string `json:"street_address"`
	Role          string `json:"role" validate:"omitempty,oneof=admin customer"`
}

// LoginRequest используется для приёма учётных данных при входе.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest описывает частичное обновление профиля.
// Новый пароль перед сохранением хэшируется заново.
type UpdateUserRequest struct {
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	Password      *string `json:"password,omitempty" validate:"omitempty,min=6"`
	First         *string `json:"first,omitempty"`
	Last          *string `json:"last,omitempty"`
	StreetAddress *string `json:"street_address,omitempty"`
	Role          *string `json:"role,omitempty" validate:"omitempty,oneof=admin customer"`
}
