// Package health реализует обработчик проверки живости сервиса.
package health

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// New возвращает обработчик, который отвечает статусом OK и текущим временем.
func New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
