package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/suppliers/internal/core"
	"github.com/JonMunkholm/suppliers/internal/export"
	"github.com/JonMunkholm/suppliers/internal/logging"
	"github.com/JonMunkholm/suppliers/internal/web/middleware"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// handleLogin checks the configured admin credential and starts a session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	ok := middleware.CredentialsMatch(req.Username, req.Password, s.cfg.Admin.Username, s.cfg.Admin.Password)
	s.service.RecordLogin(ctx, req.Username, ok)
	if !ok {
		s.respondError(w, r, errInvalidCredentials)
		return
	}

	token, expires := s.sessions.Create(req.Username)
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   s.cfg.Admin.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, loginResponse{Username: req.Username, ExpiresAt: expires})
}

// handleLogout ends the caller's session, if any, and clears the cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.SessionCookie); err == nil {
		s.sessions.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.cfg.Admin.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// handleStats returns the dashboard numbers.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.Stats(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleCreateSupplier adds one supplier from the admin form.
func (s *Server) handleCreateSupplier(w http.ResponseWriter, r *http.Request) {
	var in core.SupplierInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.respondError(w, r, err)
		return
	}

	sup, err := s.service.CreateSupplier(WithRequestMetadata(r.Context(), r), in)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sup)
}

// handleUpdateSupplier applies a partial update.
func (s *Server) handleUpdateSupplier(w http.ResponseWriter, r *http.Request) {
	var u core.SupplierUpdate
	if err := decodeJSON(w, r, &u); err != nil {
		s.respondError(w, r, err)
		return
	}

	sup, err := s.service.UpdateSupplier(WithRequestMetadata(r.Context(), r), chi.URLParam(r, "id"), u)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sup)
}

func (s *Server) handleDeleteSupplier(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteSupplier(WithRequestMetadata(r.Context(), r), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExport downloads the directory, optionally filtered, as CSV or XLSX.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.respondErrorStatus(w, r, err, http.StatusBadRequest)
		return
	}

	filter, sortOpt, _ := parseListing(r)
	suppliers, err := s.service.Store().List(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	core.SortSuppliers(suppliers, sortOpt)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.FileName()+`"`)
	if err := export.Write(w, format, suppliers); err != nil {
		// Headers are already sent.
		logging.FromContext(r.Context()).Error("export failed", "format", format, "error", err)
		return
	}
	logging.FromContext(r.Context()).Info("export written", "format", format, "suppliers", len(suppliers))
}

// handleAuditLog lists recent audit entries, newest first.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries := s.service.Audit().List(core.AuditLogFilter{
		Action:     core.AuditAction(q.Get("action")),
		SupplierID: q.Get("supplier_id"),
		Limit:      parseIntParam(r, "limit", 100),
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"count":   len(entries),
	})
}
