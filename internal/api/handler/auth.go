// internal/api/handler/auth.go
package handler

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey string

const userIDKey contextKey = "userID"

// UserIDHeader carries the authenticated user's id. Authentication itself
// happens upstream (session gateway); this service trusts the header and
// only checks that it is present and well formed.
const UserIDHeader = "X-User-ID"

// RequireUserID rejects requests without a valid user id header and stores
// the id in the request context for handlers behind it.
func RequireUserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
		if err != nil || userID <= 0 {
			http.Error(w, "missing or invalid "+UserIDHeader+" header", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFrom returns the authenticated user id stored by RequireUserID.
func UserIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
