// Package server exposes the dashboard over a JSON HTTP API. It owns no
// state of its own: tasks live in the store, the notification feed in the
// notify engine, and KPIs are computed per request.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/athenahq/athena/internal/advisory"
	"github.com/athenahq/athena/internal/notify"
	"github.com/athenahq/athena/models"
	"github.com/athenahq/athena/store"
)

type Server struct {
	store    store.TaskStore
	notify   *notify.Engine
	advisory *advisory.Service
	team     []models.TeamMember
	port     int
	server   *http.Server
}

// New builds the API server over the given collaborators.
func New(port int, taskStore store.TaskStore, engine *notify.Engine, adv *advisory.Service, team []models.TeamMember) *Server {
	s := &Server{
		store:    taskStore,
		notify:   engine,
		advisory: adv,
		team:     team,
		port:     port,
	}

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.registerRoutes(),
	}
	return s
}

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	mux.HandleFunc("GET /api/tasks/{id}", s.handleGetTask)
	mux.HandleFunc("PATCH /api/tasks/{id}", s.handleUpdateTask)
	mux.HandleFunc("POST /api/tasks/{id}/status", s.handleUpdateStatus)
	mux.HandleFunc("POST /api/tasks/{id}/sharing/request", s.handleRequestSharing)
	mux.HandleFunc("POST /api/tasks/{id}/sharing/approve", s.handleApproveSharing)
	mux.HandleFunc("POST /api/tasks/{id}/sharing/reject", s.handleRejectSharing)
	mux.HandleFunc("POST /api/tasks/{id}/links", s.handleAddLink)
	mux.HandleFunc("POST /api/tasks/{id}/signature", s.handleAddSignature)

	mux.HandleFunc("GET /api/notifications", s.handleListNotifications)
	mux.HandleFunc("POST /api/notifications/read-all", s.handleReadAllNotifications)
	mux.HandleFunc("POST /api/notifications/{id}/read", s.handleReadNotification)

	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/team", s.handleTeam)

	mux.HandleFunc("GET /api/testimonials", s.handleListTestimonials)
	mux.HandleFunc("POST /api/testimonials", s.handleAddTestimonial)

	mux.HandleFunc("POST /api/advisory/training", s.handleTraining)
	mux.HandleFunc("POST /api/advisory/task-details", s.handleTaskDetails)
	mux.HandleFunc("POST /api/advisory/risks", s.handleRiskAnalysis)

	return corsMiddleware(mux)
}

// Start runs the server on its own goroutine.
func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeAPIJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}
