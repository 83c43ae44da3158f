package router

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"outfit-studio/app/controller"
	"outfit-studio/service"
)

// RequireAuth rejects requests without a valid bearer token and
// stores the resolved user in the request context
func RequireAuth(authService service.AuthServiceInterface, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			log.Printf("❌ RequireAuth: Missing bearer token for %s %s", r.Method, r.URL.Path)
			unauthorized(w)
			return
		}

		user, err := authService.Verify(r.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthorized) {
				log.Printf("❌ RequireAuth: Rejected token for %s %s", r.Method, r.URL.Path)
				unauthorized(w)
				return
			}
			log.Printf("❌ RequireAuth: Error verifying token: %v", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"error":"auth service unavailable","retryable":true}`))
			return
		}

		next(w, r.WithContext(controller.ContextWithUser(r.Context(), user)))
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"Unauthorized"}`))
}
