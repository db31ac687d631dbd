package middleware

import (
	"net/http"
	"strings"
	"time"

	"infinite-experiment/consortium/internal/auth"
	"infinite-experiment/consortium/internal/common"
	"infinite-experiment/consortium/internal/constants"
	"infinite-experiment/consortium/internal/logging"
)

// AuthMiddleware resolves the caller from a Bearer token or an X-API-Key
// header. Requests with neither, or with an invalid credential, get a 401.
func AuthMiddleware(keys auth.ApiKeyLookup, jwtSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			authHeader := r.Header.Get("Authorization")
			apiKey := r.Header.Get("X-API-Key")

			var claims auth.CallerClaims

			switch {
			case strings.HasPrefix(authHeader, "Bearer "):
				jwtClaims, err := auth.ParseToken(jwtSecret, strings.TrimPrefix(authHeader, "Bearer "))
				if err != nil {
					logging.Debug("Rejected bearer token", "error", err.Error())
					common.RespondError(w, start, constants.CodeUnauthorized, "Unauthorized. Invalid token", http.StatusUnauthorized)
					return
				}
				claims = jwtClaims

			case apiKey != "":
				keyClaims, err := auth.MakeClaimsFromApiKey(r.Context(), keys, apiKey)
				if err != nil {
					logging.Debug("Rejected API key", "error", err.Error())
					common.RespondError(w, start, constants.CodeUnauthorized, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
					return
				}
				claims = keyClaims

			default:
				common.RespondError(w, start, constants.CodeUnauthorized, constants.MsgMissingCaller, http.StatusUnauthorized)
				return
			}

			noteCaller(r, claims)
			ctx := auth.SetCallerClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
