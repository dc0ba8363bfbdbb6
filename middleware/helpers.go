package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Dosada05/swiss-tournament/models"
)

type contextKey string

const roleContextKey contextKey = "role"

func GetUserRoleFromContext(ctx context.Context) (models.UserRole, error) {
	role, ok := ctx.Value(roleContextKey).(models.UserRole)
	if !ok || role == "" {
		return "", errors.New("user role not found in context")
	}
	return role, nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
