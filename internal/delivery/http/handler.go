package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"shortlink/internal/biz"
	"shortlink/internal/domain"
	"shortlink/pkg/problemdetails"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// deniedHosts are hosts that must not be shortened. Loopback targets would
// turn the service into an open redirector onto itself.
var deniedHosts = []string{"localhost", "127.0.0.1", "::1"}

// Handler handles HTTP requests for link operations
type Handler struct {
	uc     *biz.LinkUsecase
	logger *zap.Logger
}

// NewHandler creates a new Handler
func NewHandler(uc *biz.LinkUsecase, logger *zap.Logger) *Handler {
	return &Handler{
		uc:     uc,
		logger: logger,
	}
}

// CreateLinkRequest represents the request body for creating a short link
type CreateLinkRequest struct {
	OriginalURL string `json:"original_url"`
	CustomCode  string `json:"custom_code,omitempty"`
}

// LinkResponse represents the response for link creation
type LinkResponse struct {
	ShortCode   string `json:"short_code"`
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
	Created     bool   `json:"created"`
}

// StatsResponse represents the response for link statistics
type StatsResponse struct {
	ShortCode   string `json:"short_code"`
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
	Clicks      int64  `json:"clicks"`
}

// CreateLink handles POST /api/v1/links
func (h *Handler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req CreateLinkRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeInvalidRequest,
			"Invalid Request",
			"Request body must be valid JSON with 'original_url' field",
		))
		return
	}

	if req.OriginalURL == "" {
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeInvalidURL,
			"Invalid URL",
			"original_url is required",
		))
		return
	}

	originalURL, err := domain.NewOriginalURL(req.OriginalURL)
	if err != nil {
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeInvalidURL,
			"Invalid URL",
			"original_url is not a valid http(s) URL",
		))
		return
	}

	if lo.Contains(deniedHosts, originalURL.Hostname()) {
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeInvalidURL,
			"Invalid URL",
			"URLs from "+originalURL.Hostname()+" are not allowed",
		))
		return
	}

	link, created, err := h.uc.Shorten(r.Context(), req.OriginalURL, req.CustomCode)
	if err != nil {
		h.writeShortenError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	writeJSON(w, status, LinkResponse{
		ShortCode:   link.Code().String(),
		ShortURL:    h.uc.ShortURL(link.Code().String()),
		OriginalURL: link.OriginalURL().String(),
		Created:     created,
	})
}

// Redirect handles GET /{code}
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	originalURL, err := h.uc.Redirect(r.Context(), code, r.UserAgent(), r.RemoteAddr, r.Referer())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, problemdetails.New(
				http.StatusNotFound,
				problemdetails.TypeNotFound,
				"Not Found",
				"Short link not found: "+code,
			))
			return
		}
		h.writeInternalError(w, err)
		return
	}

	http.Redirect(w, r, originalURL, http.StatusFound)
}

// GetLinkStats handles GET /api/v1/links/{code}
func (h *Handler) GetLinkStats(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	link, err := h.uc.Stats(r.Context(), code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, problemdetails.New(
				http.StatusNotFound,
				problemdetails.TypeNotFound,
				"Not Found",
				"Short link not found: "+code,
			))
			return
		}
		h.writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, StatsResponse{
		ShortCode:   link.Code().String(),
		ShortURL:    h.uc.ShortURL(link.Code().String()),
		OriginalURL: link.OriginalURL().String(),
		Clicks:      link.ClickCount(),
	})
}

// DeleteLink handles DELETE /api/v1/links/{code}
func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.uc.Delete(r.Context(), code); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, problemdetails.New(
				http.StatusNotFound,
				problemdetails.TypeNotFound,
				"Not Found",
				"Short link not found: "+code,
			))
			return
		}
		h.writeInternalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Index handles GET /, returning a welcome message with the API surface.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	base := h.uc.BaseURL()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Welcome to the short link API",
		"endpoints": map[string]string{
			"health":   base + "/healthz",
			"shorten":  base + "/api/v1/links",
			"stats":    base + "/api/v1/links/{code}",
			"delete":   base + "/api/v1/links/{code}",
			"redirect": base + "/{code}",
		},
	})
}

func (h *Handler) writeShortenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeInvalidURL,
			"Invalid URL",
			err.Error(),
		))
	case errors.Is(err, domain.ErrInvalidCode):
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeInvalidCode,
			"Invalid Custom Code",
			"custom_code must be 3-20 alphanumeric characters",
		))
	case errors.Is(err, domain.ErrCodeConflict):
		writeProblem(w, problemdetails.New(
			http.StatusBadRequest,
			problemdetails.TypeCodeConflict,
			"Code Conflict",
			"The requested custom code is already in use",
		))
	default:
		h.writeInternalError(w, err)
	}
}

func (h *Handler) writeInternalError(w http.ResponseWriter, err error) {
	h.logger.Error("request failed", zap.Error(err))
	writeProblem(w, problemdetails.New(
		http.StatusInternalServerError,
		problemdetails.TypeInternalError,
		"Internal Server Error",
		"Internal server error",
	))
}
