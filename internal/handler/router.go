package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Dan9191/emi-service/internal/config"
	"github.com/Dan9191/emi-service/internal/middleware"
)

// NewRouter wires every route of the API
func NewRouter(h *Handler, cfg *config.Config) *mux.Router {
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/lenders", h.Lenders).Methods("GET")
	r.HandleFunc("/key-rate", h.KeyRate).Methods("GET")

	emi := r.PathPrefix("/emi").Subrouter()
	emi.HandleFunc("/calculate", h.Calculate).Methods("POST")
	emi.HandleFunc("/calculations/{id}", h.GetCalculation).Methods("GET")
	emi.HandleFunc("/calculations/{id}", h.ResetCalculation).Methods("DELETE")
	emi.HandleFunc("/calculations/{id}/summary", h.Summary).Methods("GET")
	// Protected routes
	auth := middleware.AuthMiddleware(cfg)
	emi.Handle("/calculations/{id}/email", auth(http.HandlerFunc(h.EmailSummary))).Methods("POST")

	return r
}
