// Package middleware contains the HTTP middleware used by the site:
// request logging, security headers, rate limiting, CSRF enforcement, and
// metrics endpoint authentication.
package middleware

import "net/http"

// Stack composes middlewares so they execute in the order given:
//
//	stack := middleware.Stack(logging.Handler, security.Handler)
//	mux.Handle("POST /quote/submit", stack(handler))
func Stack(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}
