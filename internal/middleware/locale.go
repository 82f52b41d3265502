package middleware

import (
	"net/http"

	"github.com/Dan9191/cashflow-service/internal/forecast"
	"github.com/Dan9191/cashflow-service/internal/service"
	"github.com/gorilla/mux"
	"golang.org/x/text/language"
)

// LocaleMiddleware negotiates the output locale from the locale query
// parameter, then Accept-Language, then the fallback
func LocaleMiddleware(fallback language.Tag) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := forecast.MatchLocale(fallback, r.URL.Query().Get("locale"), r.Header.Get("Accept-Language"))
			w.Header().Set("Content-Language", tag.String())
			next.ServeHTTP(w, r.WithContext(service.WithLocale(r.Context(), tag)))
		})
	}
}
