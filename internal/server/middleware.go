package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/mockmate/interviewprep/internal/interview"
)

type ctxKey int

const ctxKeyUser ctxKey = iota

// authMiddleware validates the bearer token and loads the user into the
// request context.
func authMiddleware(secret string, store Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			tokenStr, found := strings.CutPrefix(auth, "Bearer ")
			if !found || tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "invalid or missing bearer token")
				return
			}

			userID, err := userIDFromToken(secret, tokenStr)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or missing bearer token")
				return
			}

			user, err := store.UserByID(r.Context(), userID)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unknown user")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userFrom(r *http.Request) interview.User {
	return r.Context().Value(ctxKeyUser).(interview.User)
}
