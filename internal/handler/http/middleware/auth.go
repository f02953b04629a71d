package middleware

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/factory-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/factory-attendance-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired rejects requests without a verified access token. It must
// run after jwtauth.Verifier. A missing bearer yields 401; a malformed,
// expired or non-access token yields 403.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if errors.Is(err, jwtauth.ErrNoTokenFound) {
			response.HandleError(w, auth.ErrMissingToken)
			return
		}
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if tokenType != "access" || !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
