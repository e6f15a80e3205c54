package http

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"spendlog/internal/core"
	applog "spendlog/internal/log"
	"spendlog/internal/store"
	"spendlog/internal/view"
)

type pageData struct {
	Selected   string
	Categories []string
	Overview   view.DayOverview
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	day := parseDateParam(r)

	data := pageData{
		Selected:   day.String(),
		Categories: defaultCategories,
		Overview:   view.OverviewFor(s.store.List(), day),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Failed rendering index", applog.FieldError, err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// handleDayList renders the list partial for the selected date.
func (s *Server) handleDayList(w http.ResponseWriter, r *http.Request) {
	s.renderDayList(w, r, parseDateParam(r))
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", applog.FieldError, err, applog.FieldPath, r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Malformed request</div>`))
		return
	}

	category := sanitizeInput(r.Form.Get("category_custom"))
	if category == "" {
		category = sanitizeInput(r.Form.Get("category"))
	}

	candidate := store.Candidate{
		Date:     sanitizeInput(r.Form.Get("date")),
		Amount:   sanitizeInput(r.Form.Get("amount")),
		Category: category,
		Note:     sanitizeInput(r.Form.Get("note")),
	}

	rec, err := s.store.Add(r.Context(), candidate)
	if err != nil {
		slog.WarnContext(r.Context(), "Rejected expense candidate",
			applog.FieldError, err,
			applog.FieldDate, candidate.Date,
			"amount", candidate.Amount)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Invalid entry: ` +
			template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	triggers, _ := json.Marshal(map[string]any{
		"form:reset": map[string]any{},
		"show-notification": map[string]any{
			"type":     "success",
			"message":  fmt.Sprintf("Recorded %s for %s", rec.Amount, rec.Category),
			"duration": 3000,
		},
	})
	w.Header().Set("HX-Trigger", string(triggers))

	s.renderDayList(w, r, rec.Date)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.store.Delete(r.Context(), id) {
		slog.WarnContext(r.Context(), "Delete for unknown record", applog.FieldRecordID, id)
	}
	s.renderDayList(w, r, parseDateParam(r))
}

func (s *Server) renderDayList(w http.ResponseWriter, r *http.Request, day core.Day) {
	data := pageData{
		Selected:   day.String(),
		Overview:   view.OverviewFor(s.store.List(), day),
		Categories: defaultCategories,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "day_list.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Failed rendering day list", applog.FieldError, err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// handleHealth performs a basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

// handleReady reports whether the page can actually render.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "ready"
	httpStatus := http.StatusOK
	checks := map[string]any{
		"templates": "ok",
		"store":     "ok",
	}
	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}
	if s.store == nil {
		checks["store"] = "failed: store not configured"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	}

	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}
