package router

import (
	"net/http"

	"catalog/internal/handler"
	"catalog/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	healthHandler *handler.HealthHandler,
	logger zerolog.Logger,
) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthHandler.Check).Methods(http.MethodGet)

	r.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/products", productHandler.Create).Methods(http.MethodPost)

	r.NotFoundHandler = jsonStatus(http.StatusNotFound, "not found")
	r.MethodNotAllowedHandler = jsonStatus(http.StatusMethodNotAllowed, "method not allowed")

	// Apply middleware in order: RequestID -> Recovery -> Logging -> CORS
	var h http.Handler = r
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestID(h)

	return h
}

func jsonStatus(status int, message string) http.Handler {
	body := []byte(`{"error":"` + message + `"}`)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(body)
	})
}
