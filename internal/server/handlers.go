package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/athenahq/athena/internal/advisory"
	"github.com/athenahq/athena/internal/stats"
	"github.com/athenahq/athena/models"
	"github.com/athenahq/athena/store"
	"github.com/athenahq/athena/types"
)

// writeStoreError maps store failures to HTTP statuses: unknown IDs are 404,
// rejected input is 400, everything else is 500.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrTaskNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case types.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleListTasks supports ?status= and ?area= filters and newest-first order.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")
	areaFilter := r.URL.Query().Get("area")

	var filterFn func(models.Task) bool
	if statusFilter != "" || areaFilter != "" {
		filterFn = func(t models.Task) bool {
			if statusFilter != "" && string(t.Status) != statusFilter {
				return false
			}
			if areaFilter != "" && string(t.Area) != areaFilter {
				return false
			}
			return true
		}
	}

	sortFn := func(tasks []models.Task) []models.Task {
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		})
		return tasks
	}

	tasks, err := s.store.ListTasks(filterFn, sortFn)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeAPIJSON(w, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	due, err := time.ParseInLocation("2006-01-02", req.DueDate, time.Local)
	if err != nil {
		http.Error(w, "dueDate must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	task, err := s.store.AddTask(store.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Area:        models.Area(req.Area),
		Assigner:    req.Assigner,
		Executor:    req.Executor,
		DueDate:     due,
		Comments:    req.Comments,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeAPIJSON(w, task)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.store.GetTask(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeAPIJSON(w, task)
}

// handleUpdateTask applies a partial field update. Status and history are
// owned by the lifecycle endpoint and rejected here by the store.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(updates) == 0 {
		http.Error(w, "no fields to update", http.StatusBadRequest)
		return
	}

	task, err := s.store.UpdateTask(r.PathValue("id"), updates)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeAPIJSON(w, task)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		http.Error(w, "status is required", http.StatusBadRequest)
		return
	}

	task, err := s.store.UpdateTaskStatus(r.PathValue("id"), models.TaskStatus(req.Status), req.EvidenceLink, req.TangibleResult)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeAPIJSON(w, task)
}

func (s *Server) handleRequestSharing(w http.ResponseWriter, r *http.Request) {
	task, err := s.store.RequestClientSharing(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeAPIJSON(w, task)
}

func (s *Server) handleApproveSharing(w http.ResponseWriter, r *http.Request) {
	task, err := s.store.ApproveClientSharing(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeAPIJSON(w, task)
}

func (s *Server) handleRejectSharing(w http.ResponseWriter, r *http.Request) {
	task, err := s.store.RejectClientSharing(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeAPIJSON(w, task)
}

func (s *Server) handleAddLink(w http.ResponseWriter, r *http.Request) {
	var req AddLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	task, err := s.store.AddExternalLink(r.PathValue("id"), models.ExternalPlatformLink{
		Platform: req.Platform,
		URL:      req.URL,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeAPIJSON(w, task)
}

func (s *Server) handleAddSignature(w http.ResponseWriter, r *http.Request) {
	var req AddSignatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	task, err := s.store.AddClientSignature(r.PathValue("id"), req.SignatureDataURL)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeAPIJSON(w, task)
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	feed := s.notify.Notifications()
	if feed == nil {
		feed = []models.Notification{}
	}
	writeAPIJSON(w, NotificationsResponse{
		Notifications: feed,
		UnreadCount:   s.notify.UnreadCount(),
	})
}

func (s *Server) handleReadNotification(w http.ResponseWriter, r *http.Request) {
	if !s.notify.MarkAsRead(r.PathValue("id")) {
		http.Error(w, types.ErrNotificationNotFound.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReadAllNotifications(w http.ResponseWriter, r *http.Request) {
	s.notify.MarkAllAsRead()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.ListTasks(nil, nil)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeAPIJSON(w, stats.Compute(tasks))
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, s.team)
}

func (s *Server) handleListTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials := s.store.ListTestimonials()
	if testimonials == nil {
		testimonials = []models.Testimonial{}
	}
	writeAPIJSON(w, testimonials)
}

func (s *Server) handleAddTestimonial(w http.ResponseWriter, r *http.Request) {
	var req AddTestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	testimonial, err := s.store.AddTestimonial(req.ClientName, req.Company, req.Quote)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	writeAPIJSON(w, testimonial)
}

func (s *Server) handleTraining(w http.ResponseWriter, r *http.Request) {
	var req TrainingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	task, err := s.store.GetTask(req.TaskID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	text := s.advisory.TrainingSuggestions(r.Context(), task)
	writeAPIJSON(w, AdvisoryTextResponse{Text: text})
}

func (s *Server) handleTaskDetails(w http.ResponseWriter, r *http.Request) {
	var req TaskDetailsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Idea) == "" {
		http.Error(w, "idea is required", http.StatusBadRequest)
		return
	}

	details := s.advisory.TaskDetails(r.Context(), req.Idea)
	writeAPIJSON(w, details)
}

func (s *Server) handleRiskAnalysis(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.store.ListTasks(nil, nil)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	highRisk := advisory.HighRiskTasks(tasks, time.Now())
	analysis := s.advisory.RiskAnalysis(r.Context(), highRisk)
	if highRisk == nil {
		highRisk = []models.Task{}
	}
	writeAPIJSON(w, RiskAnalysisResponse{Analysis: analysis, Tasks: highRisk})
}
