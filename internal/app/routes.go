package app

import (
	"net/http"

	"github.com/budgetgarden/budgetgarden/internal/config"
	"github.com/gorilla/mux"
)

const notFoundBody = "404 Not Found - The requested endpoint does not exist."

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {
	r.HandleFunc("/add", deps.BudgetHandler.Add).Methods("GET")
	r.HandleFunc("/delete", deps.BudgetHandler.Delete).Methods("GET")
	r.HandleFunc("/get-user-data", deps.BudgetHandler.GetUserData).Methods("GET")
	r.HandleFunc("/update-spent", deps.BudgetHandler.UpdateSpent).Methods("GET")
	r.HandleFunc("/summary", deps.BudgetHandler.Summary).Methods("GET")
	r.HandleFunc("/advice", deps.BudgetHandler.Advice).Methods("GET")

	// router middlewares only run for matched routes
	notFoundHandler := corsMiddleware(cfg.Cors)(requestLogging(http.HandlerFunc(notFound)))
	r.NotFoundHandler = notFoundHandler
	r.MethodNotAllowedHandler = notFoundHandler
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(notFoundBody))
}

// NewRouter builds the router with middlewares and routes.
func NewRouter(deps *Dependencies, cfg config.Application) *mux.Router {
	r := mux.NewRouter()
	SetupMiddleware(r, cfg)
	RegisterRoutes(r, deps, cfg)
	return r
}
