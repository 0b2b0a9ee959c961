package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CartCookie names the cookie carrying the anonymous cart session.
const CartCookie = "cart_session"

const (
	sessionKey    contextKey = "cart_session"
	sessionMaxAge = 7 * 24 * time.Hour
)

// CartSession makes sure every request has a cart session id, issuing a new
// cookie when the client sent none or an unparseable one.
func CartSession(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sid string
			if c, err := r.Cookie(CartCookie); err == nil {
				if _, perr := uuid.Parse(c.Value); perr == nil {
					sid = c.Value
				}
			}
			if sid == "" {
				sid = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     CartCookie,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(sessionMaxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionKey, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the cart session id, or "" outside CartSession.
func SessionFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey).(string)
	return sid
}
