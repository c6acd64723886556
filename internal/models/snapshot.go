// Package models содержит снимок персистентного состояния: три коллекции,
// которые читаются и записываются в хранилище целиком.
package models

// Snapshot — полная копия персистентных коллекций на момент чтения.
type Snapshot struct {
	Products []Product `json:"products"`
	Users    []User    `json:"users"`
	Orders   []Order   `json:"orders"`
}

// ProductIndex возвращает индекс товара по id или -1, если товар отсутствует.
func (s *Snapshot) ProductIndex(id string) int {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return i
		}
	}
	return -1
}

// UserIndex возвращает индекс пользователя по имени или -1.
func (s *Snapshot) UserIndex(username string) int {
	for i := range s.Users {
		if s.Users[i].Username == username {
			return i
		}
	}
	return -1
}

// OrderIndex возвращает индекс заказа по id или -1.
func (s *Snapshot) OrderIndex(id string) int {
	for i := range s.Orders {
		if s.Orders[i].ID == id {
			return i
		}
	}
	return -1
}
