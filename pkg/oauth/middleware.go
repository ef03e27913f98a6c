package oauth

import "net/http"

// SessionResolver extracts the session attached to an inbound request.
// The boolean is false when the request carries no session.
type SessionResolver func(*http.Request) (Session, bool)

// Middleware returns net/http middleware that applies the authorization
// gate before protected routes: requests whose session carries no access
// token are rejected with 401.
func (c *Client) Middleware(resolve SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := resolve(r)
			if !ok || c.RequireAuthorized(sess) != nil {
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
