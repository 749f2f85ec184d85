package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/suppliers/internal/core"
	"github.com/JonMunkholm/suppliers/internal/web/templates"
)

// handleHealth reports store reachability and import slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":  "ok",
		"imports": s.service.Limiter().Status(),
	}
	if err := s.service.Store().Ping(r.Context()); err != nil {
		status["status"] = "unavailable"
		status["error"] = core.MapError(err).Message
		writeJSON(w, http.StatusServiceUnavailable, status)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// handleListSuppliers returns one filtered, sorted page of suppliers.
func (s *Server) handleListSuppliers(w http.ResponseWriter, r *http.Request) {
	filter, sortOpt, page := parseListing(r)

	result, err := s.service.ListSuppliers(r.Context(), filter, sortOpt, page)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleSupplierCards renders the same listing as an HTML fragment for HTMX.
func (s *Server) handleSupplierCards(w http.ResponseWriter, r *http.Request) {
	filter, sortOpt, page := parseListing(r)

	result, err := s.service.ListSuppliers(r.Context(), filter, sortOpt, page)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.SupplierCards(result, listingQuery(r)).Render(r.Context(), w); err != nil {
		s.respondError(w, r, err)
	}
}

// handleSupplierDetail renders one supplier's profile as an HTML fragment.
func (s *Server) handleSupplierDetail(w http.ResponseWriter, r *http.Request) {
	sup, err := s.service.SupplierBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.SupplierDetail(sup).Render(r.Context(), w); err != nil {
		s.respondError(w, r, err)
	}
}

// handleFeatured returns the first suppliers for the home page.
func (s *Server) handleFeatured(w http.ResponseWriter, r *http.Request) {
	n := parseIntParam(r, "limit", core.DefaultFeaturedCount)

	featured, err := s.service.Featured(r.Context(), n)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, featured)
}

// handleSupplier returns one supplier by slug.
func (s *Server) handleSupplier(w http.ResponseWriter, r *http.Request) {
	sup, err := s.service.SupplierBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sup)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.service.Categories(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	cities, err := s.service.Cities(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cities)
}

// handleContact stores a contact form enquiry.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req core.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	lead, err := s.service.SubmitContact(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": lead.ID, "status": "received"})
}

// handleCatalogueRequest stores a catalogue download request for a supplier.
func (s *Server) handleCatalogueRequest(w http.ResponseWriter, r *http.Request) {
	var req core.CatalogueRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	lead, err := s.service.SubmitCatalogueRequest(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": lead.ID, "status": "received"})
}
