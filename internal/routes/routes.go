package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"DAILYDIET_BACK-END/internal/config"
	"DAILYDIET_BACK-END/internal/handlers"
	"DAILYDIET_BACK-END/internal/middleware"
	"DAILYDIET_BACK-END/internal/store"
)

// SetupRoutes configures all application routes
func SetupRoutes(
	authHandler *handlers.AuthHandler,
	mealsHandler *handlers.MealsHandler,
	healthHandler *handlers.HealthHandler,
	sessions store.SessionStore,
	cfg *config.SessionConfig,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check routes
	mux.HandleFunc("/healthz", healthHandler.HealthCheck)
	mux.HandleFunc("/livez", healthHandler.LivenessCheck)
	mux.HandleFunc("/readyz", healthHandler.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("/users", authHandler.Register)
	mux.HandleFunc("/login", authHandler.Login)
	mux.HandleFunc("/logout", middleware.SessionMiddleware(authHandler.Logout, sessions, cfg))

	// Meal routes (owner-scoped, session required)
	mux.HandleFunc("/meals", middleware.SessionMiddleware(mealsHandler.Meals, sessions, cfg))
	mux.HandleFunc("/meal/", middleware.SessionMiddleware(mealsHandler.MealByID, sessions, cfg))

	// API documentation
	mux.Handle("/docs/", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	// Root route
	mux.HandleFunc("/", rootHandler)

	return mux
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Daily diet backend is running."))
}
