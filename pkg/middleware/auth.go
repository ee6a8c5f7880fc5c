package middleware

import (
	"net/http"
	"strings"

	"queue-booking/pkg/token"
	"queue-booking/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates the Bearer access token and puts user identity on
// the request context
func Auth(tokens *token.JWTService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := tokens.Validate(parts[1], token.PurposeAccess)
			if err != nil {
				logger.Warn("Invalid or expired token", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
