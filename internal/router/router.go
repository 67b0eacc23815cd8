package router

import (
	"net/http"

	"foodexpress/internal/handler"
	"foodexpress/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	orderHandler *handler.OrderHandler,
	contactHandler *handler.ContactHandler,
	jwtSecret string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Order handler function
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			orderHandler.Create(w, r)
		case http.MethodGet:
			orderHandler.List(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	// Register order routes (both with and without trailing slash)
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Contact form (no authentication required)
	mux.HandleFunc("/api/contact", contactHandler.Submit)
	mux.HandleFunc("/api/contact/", contactHandler.Submit)

	// Apply middleware in order: Recovery -> Logging -> CORS -> JWTAuth
	publicPaths := []string{"/health", "/api/contact", "/api/contact/"}

	var h http.Handler = mux
	h = middleware.JWTAuth(jwtSecret, publicPaths, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
