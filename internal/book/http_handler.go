package book

import (
	"errors"
	"io"
	"net/http"

	"bookstore/internal/httpx"

	"github.com/google/uuid"
)

const maxMultipartMemory = 10 << 20

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.List(r.Context())
	if err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}
	if books == nil {
		books = []Book{}
	}
	httpx.JSONSuccessWithRequest(r, w, books, nil)
}

// Get handles GET /books/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, b, nil)
}

// Create handles POST /books (multipart, optional single image part)
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := parseMultipartInput(w, r)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSONSuccessCreatedWithRequest(r, w, created)
}

// Update handles PUT /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}

	in, ok := parseMultipartInput(w, r)
	if !ok {
		return
	}

	updated, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, updated, nil)
}

// Delete handles DELETE /books/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.JSONSuccessWithRequest(r, w, map[string]string{"message": "Book and associated image deleted"}, nil)
}

// pathID extracts and sanity-checks the {id} path value. Malformed ids
// can never match a record, so they map to not-found without touching
// the database.
func pathID(r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func parseMultipartInput(w http.ResponseWriter, r *http.Request) (Input, bool) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid multipart form", nil)
		return Input{}, false
	}

	in := Input{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Categories:  r.FormValue("categories"),
		Languages:   r.FormValue("languages"),
		Type:        r.FormValue("type"),
		Quantity:    r.FormValue("quantity"),
		IsMonthly:   r.FormValue("isMonthly"),
	}

	file, _, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "BAD_REQUEST", "Could not read image", nil)
			return Input{}, false
		}
		in.Image = data
	case errors.Is(err, http.ErrMissingFile):
		// no image part is fine
	default:
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid image part", nil)
		return Input{}, false
	}

	return in, true
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := AsValidationError(err); ok {
		details := make([]httpx.ErrorDetail, len(ve.Fields))
		for i, f := range ve.Fields {
			details[i] = httpx.ErrorDetail{Field: f.Field, Message: f.Message}
		}
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), details)
		return
	}
	if errors.Is(err, ErrNotFound) {
		httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", "Book not found", nil)
		return
	}
	if errors.Is(err, ErrUploadFailed) {
		httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to upload image", nil)
		return
	}
	httpx.JSONErrorWithRequest(r, w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
}
