package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// Recover turns a panic into a logged error and the generic error page.
func Recover(logger *zap.Logger, errorPage http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.Error("PANIC recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
						zap.Stack("stack"),
					)

					errorPage(w, r)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
