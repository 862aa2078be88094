// Package routes wires controllers, services and middleware into the
// application router.
package routes

import (
	"net/http"

	"realestate/app/auth"
	"realestate/app/controllers"
	"realestate/app/metrics"
	"realestate/app/middleware"
	"realestate/app/repositories"
	"realestate/app/services"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Dependencies are the collaborators of the router.
type Dependencies struct {
	Store  *repositories.Store
	Auth   auth.Authenticator
	Logger zerolog.Logger
	// Registry receives the HTTP metrics and backs /metrics. nil means a
	// fresh registry.
	Registry *prometheus.Registry
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Dependencies) *mux.Router {
	reg := deps.Registry
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	httpMetrics := metrics.NewHTTPMetrics(reg)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Recoverer(deps.Logger))
	router.Use(middleware.Metrics(httpMetrics))

	notFound := middleware.RequestID(middleware.Logger(deps.Logger)(http.HandlerFunc(notFoundHandler)))
	methodNotAllowed := middleware.RequestID(middleware.Logger(deps.Logger)(http.HandlerFunc(methodNotAllowedHandler)))
	router.NotFoundHandler = notFound
	router.MethodNotAllowedHandler = methodNotAllowed

	listingController := controllers.NewListingController(services.NewListingService(deps.Store.Listings, deps.Store.Contacts))
	blogController := controllers.NewBlogController(services.NewBlogService(deps.Store.Blogs, deps.Store.Contacts))
	contactController := controllers.NewContactController(services.NewContactService(deps.Store.Contacts))
	healthController := controllers.NewHealthController(deps.Store, httpMetrics)

	// Unauthenticated endpoints
	router.HandleFunc("/healthz", healthController.Show).Methods("GET")
	router.Handle("/metrics", metrics.Handler(reg)).Methods("GET")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.Use(middleware.RequireUser(deps.Auth))

	// Listings API endpoints
	api.HandleFunc("/listings", listingController.Index).Methods("GET")
	api.HandleFunc("/listings", listingController.Create).Methods("POST")
	api.HandleFunc("/listings", listingController.Update).Methods("PUT")
	api.HandleFunc("/listings", listingController.Delete).Methods("DELETE")

	// Blogs API endpoints
	api.HandleFunc("/blogs", blogController.Index).Methods("GET")
	api.HandleFunc("/blogs", blogController.Create).Methods("POST")
	api.HandleFunc("/blogs", blogController.Update).Methods("PUT")
	api.HandleFunc("/blogs", blogController.Delete).Methods("DELETE")

	// Contact API endpoints
	api.HandleFunc("/contact", contactController.Index).Methods("GET")
	api.HandleFunc("/contact", contactController.Create).Methods("POST")
	api.HandleFunc("/contact", contactController.Update).Methods("PUT")
	api.HandleFunc("/contact", contactController.Delete).Methods("DELETE")

	return router
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not found"}` + "\n"))
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte(`{"error":"Method not allowed"}` + "\n"))
}
