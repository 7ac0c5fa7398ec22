package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/vivmac33/marketprism/internal/api/handlers"
	"github.com/vivmac33/marketprism/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(
	compositeHandler *handlers.CompositeHandler,
	cardsHandler *handlers.CardsHandler,
	refdataHandler *handlers.RefdataHandler,
	stream *Hub,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Synthesis
	api.HandleFunc("/synthesize/{symbol}", compositeHandler.Synthesize).Methods("POST")
	api.HandleFunc("/evaluate", compositeHandler.Evaluate).Methods("POST")
	api.HandleFunc("/composite/{symbol}", compositeHandler.GetLatest).Methods("GET")

	// Card catalog
	api.HandleFunc("/cards", cardsHandler.List).Methods("GET")

	// Reference datasets
	if refdataHandler != nil {
		api.HandleFunc("/reference/funds", refdataHandler.ListFunds).Methods("GET")
		api.HandleFunc("/reference/concepts", refdataHandler.ListConcepts).Methods("GET")
		api.HandleFunc("/reference/curriculum", refdataHandler.ListLessons).Methods("GET")
	}

	// Live composite stream
	if stream != nil {
		r.HandleFunc("/api/v1/stream", stream.ServeWS)
	}

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))
	r.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(50), 100)))

	return r
}

// healthCheckHandler returns server health status.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "marketprism-api",
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from handler panics.
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// rateLimitMiddleware sheds load when the request rate exceeds the
// token bucket.
func rateLimitMiddleware(limiter *rate.Limiter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]string{
					"error": "Too many requests",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
