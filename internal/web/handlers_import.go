package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/JonMunkholm/suppliers/internal/core"
	"github.com/JonMunkholm/suppliers/internal/logging"
)

// multipartOverhead is allowed on top of the file size limit for form
// boundaries and part headers.
const multipartOverhead = 64 << 10

// handleImportPreview parses an uploaded CSV and returns the records it would
// import, with row counts. Nothing is stored.
func (s *Server) handleImportPreview(w http.ResponseWriter, r *http.Request) {
	maxSize := s.service.MaxUploadSize()
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, uploadFormError(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, core.ErrNoFile)
		return
	}
	defer file.Close()

	// One byte over the limit is enough for CheckUpload to reject it.
	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		s.respondError(w, r, fmt.Errorf("read upload: %w", err))
		return
	}

	logger := logging.WithFields(r.Context(), "file", header.Filename)
	logger.Debug("import upload received", "bytes", len(data))

	preview, err := s.service.PreviewImport(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	logger.Info("import preview served", "accepted", preview.Stats.Accepted)
	writeJSON(w, http.StatusOK, preview)
}

type confirmRequest struct {
	Records []core.SupplierRecord `json:"records"`
}

type confirmResponse struct {
	Inserted  int             `json:"inserted"`
	Suppliers []core.Supplier `json:"suppliers"`
}

// handleImportConfirm stores records returned by a preview.
func (s *Server) handleImportConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	r.Body = http.MaxBytesReader(w, r.Body, s.service.MaxUploadSize()*2)
	if err := decodeBody(r.Body, &req); err != nil {
		s.respondError(w, r, err)
		return
	}

	inserted, err := s.service.ConfirmImport(WithRequestMetadata(r.Context(), r), req.Records)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, confirmResponse{Inserted: len(inserted), Suppliers: inserted})
}

// uploadFormError classifies a multipart parse failure.
func uploadFormError(err error) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) || strings.Contains(err.Error(), "request body too large") {
		return fmt.Errorf("%w: %v", core.ErrFileTooLarge, err)
	}
	if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
		return core.ErrNoFile
	}
	return fmt.Errorf("%w: %v", errInvalidBody, err)
}
