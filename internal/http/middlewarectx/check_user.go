package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/commerce-backend/internal/http/response"
	"github.com/magabrotheeeer/commerce-backend/internal/models"
)

// RequireSelfOrAdmin пропускает запрос, если вызывающий — админ либо
// владелец профиля из URL-параметра username. Должен стоять после JWTMiddleware.
func RequireSelfOrAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			target := chi.URLParam(r, "username")
			username, _ := r.Context().Value(User).(string)
			role, _ := r.Context().Value(Role).(string)

			if role != models.RoleAdmin && username != target {
				log.Error("access denied",
					slog.String("username", username),
					slog.String("target", target),
				)
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
