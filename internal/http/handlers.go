package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"finance/internal/core"
	applog "finance/internal/log"
	"finance/internal/ports"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	p := ParseReportParams(r.URL.Query())
	rep, err := s.reports.Report(r.Context(), p)
	if err != nil {
		s.serverError(w, r, "Failed building report", applog.OpReport, err)
		return
	}
	s.render(w, r, "index.html", newIndexView(rep, s.now()))
}

func (s *Server) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	p := ParseReportParams(r.URL.Query())
	rep, err := s.reports.Report(r.Context(), p)
	if err != nil {
		applog.NewStructuredLogger(applog.FromContext(r.Context())).
			LogError(r.Context(), "Failed building report", err, applog.OpReport,
				applog.NewFields().WithReportParams(p.DateFrom, p.DateTo, p.Category, p.YearMonth))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "report unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, NewReportPayload(rep))
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	t, err := ParseTransactionForm(r.PostForm)
	if err != nil {
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Rejected transaction form",
			applog.FieldOperation, applog.OpCreate, applog.FieldError, err.Error())
		redirectHome(w, r)
		return
	}

	id, err := s.transactions.Create(r.Context(), t)
	if err != nil {
		s.serverError(w, r, "Failed creating transaction", applog.OpCreate, err)
		return
	}
	s.logWrite(r.Context(), applog.OpCreate, id, t)
	redirectHome(w, r)
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	t, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.render(w, r, "edit.html", newFormView(t))
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	current, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := parseForm(w, r); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	t, err := ParseTransactionForm(r.PostForm)
	if err != nil {
		applog.FromContext(r.Context()).WarnContext(r.Context(), "Rejected transaction form",
			applog.FieldOperation, applog.OpUpdate,
			applog.FieldTransactionID, current.ID,
			applog.FieldError, err.Error())
		redirectHome(w, r)
		return
	}
	t.ID = current.ID

	if err := s.transactions.Update(r.Context(), t); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		s.serverError(w, r, "Failed updating transaction", applog.OpUpdate, err)
		return
	}
	s.logWrite(r.Context(), applog.OpUpdate, t.ID, t)
	redirectHome(w, r)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := transactionID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.transactions.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
			return
		}
		s.serverError(w, r, "Failed deleting transaction", applog.OpDelete, err)
		return
	}
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Transaction deleted",
		applog.FieldTransactionID, id)
	redirectHome(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.now().Format(time.RFC3339),
	})
}

// handleReady checks the templates and the backend.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{"templates": "ok", "backend": "ok"}
	status := http.StatusOK
	if s.templates == nil {
		checks["templates"] = "not loaded"
		status = http.StatusServiceUnavailable
	}
	if s.ready != nil {
		if err := s.ready(ctx); err != nil {
			applog.FromContext(ctx).WarnContext(ctx, "Readiness check failed", applog.FieldError, err.Error())
			checks["backend"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	body := map[string]any{"status": "ready", "checks": checks}
	if status != http.StatusOK {
		body["status"] = "not_ready"
	}
	writeJSON(w, status, body)
}

// lookup loads the {id} transaction, answering 404 itself when missing.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (core.Transaction, bool) {
	id, ok := transactionID(r)
	if !ok {
		http.NotFound(w, r)
		return core.Transaction{}, false
	}
	t, err := s.transactions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			http.Error(w, "Transaction not found", http.StatusNotFound)
		} else {
			s.serverError(w, r, "Failed loading transaction", applog.OpUpdate, err)
		}
		return core.Transaction{}, false
	}
	return t, true
}

// render executes into a buffer so a template error still yields a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		http.Error(w, "Templates not loaded", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.serverError(w, r, "Failed rendering template", applog.OpRender, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg, op string, err error) {
	applog.NewStructuredLogger(applog.FromContext(r.Context())).LogError(r.Context(), msg, err, op, nil)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func (s *Server) logWrite(ctx context.Context, op string, id int64, t core.Transaction) {
	applog.NewStructuredLogger(applog.FromContext(ctx)).
		LogTransactionWritten(ctx, op, id, string(t.Kind), t.Category, t.Amount.String(), t.Date.String())
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
