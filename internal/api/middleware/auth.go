// Package middleware HTTP middleware сервиса записей
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/HMS-AppointmentService/internal/api/handlers"
	"github.com/m04kA/HMS-AppointmentService/internal/domain"
)

const (
	// HeaderUserID идентификатор пользователя, проставляется шлюзом
	HeaderUserID = "X-User-ID"
	// HeaderUserRole роль пользователя, проставляется шлюзом
	HeaderUserRole = "X-User-Role"

	msgMissingUserID = "отсутствует заголовок X-User-ID"
	msgInvalidUserID = "некорректный заголовок X-User-ID"
	msgInvalidRole   = "некорректный заголовок X-User-Role"
)

type contextKey string

const (
	userIDKey   contextKey = "user_id"
	userRoleKey contextKey = "user_role"
)

var knownRoles = map[string]struct{}{
	domain.RoleAdmin:        {},
	domain.RoleReceptionist: {},
	domain.RoleDoctor:       {},
	domain.RolePatient:      {},
}

// Auth достает пользователя из заголовков шлюза и кладет его в контекст
// Без X-User-ID запрос отклоняется с 401. Роль по умолчанию patient
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if rawID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		role := strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole)))
		if role == "" {
			role = domain.RolePatient
		}
		if _, ok := knownRoles[role]; !ok {
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetUserRole возвращает роль пользователя из контекста
func GetUserRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(userRoleKey).(string)
	return role, ok
}

// GetActor возвращает пользователя, выполняющего запрос
func GetActor(ctx context.Context) (domain.Actor, bool) {
	id, ok := GetUserID(ctx)
	if !ok {
		return domain.Actor{}, false
	}
	role, _ := GetUserRole(ctx)
	return domain.Actor{UserID: id, Role: role}, true
}

// WithActor кладет пользователя в контекст. Используется в тестах обработчиков
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	ctx = context.WithValue(ctx, userIDKey, actor.UserID)
	return context.WithValue(ctx, userRoleKey, actor.Role)
}
