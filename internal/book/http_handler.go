package book

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"bookshelf/internal/httpx"
)

type HTTPHandler struct {
	service *Service
	logger  *slog.Logger
}

func NewHTTPHandler(service *Service, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, logger: logger}
}

// Routes serves every path. Only GET does any work; HEAD and POST are
// accepted and ignored.
func (h *HTTPHandler) Routes() http.Handler {
	ignore := http.HandlerFunc(h.Ignore)
	return httpx.MethodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(h.Get),
		http.MethodHead: ignore,
		http.MethodPost: ignore,
	})
}

// Ignore logs the request and leaves the default empty response.
func (h *HTTPHandler) Ignore(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), fmt.Sprintf("Ignoring %s request", r.Method), "request_id", httpx.RequestIDFrom(r))
}

// Get handles GET /?title=...&author=... (add) and GET / (listing).
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	h.logger.InfoContext(r.Context(), "request received", "query", query.Encode(), "request_id", httpx.RequestIDFrom(r))

	title := query.Get("title")
	if title == "" {
		h.list(w, r)
		return
	}
	h.add(w, r, title, query.Get("author"))
}

func (h *HTTPHandler) add(w http.ResponseWriter, r *http.Request, title, author string) {
	res, err := h.service.Add(r.Context(), title, author)
	if err != nil {
		h.writeError(w, r, "add", err)
		return
	}

	if !res.Added {
		httpx.HTML(w, http.StatusOK, []byte("Book already present."))
		return
	}
	msg := fmt.Sprintf("Book '%s - %s' added to the library.",
		template.HTMLEscapeString(res.Book.Title), template.HTMLEscapeString(res.Book.Author))
	httpx.HTML(w, http.StatusOK, []byte(msg))
}

func (h *HTTPHandler) list(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "No title found, returning list of books.")

	books, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, "list", err)
		return
	}

	page, err := RenderListing(books)
	if err != nil {
		h.writeError(w, r, "render", err)
		return
	}
	httpx.HTML(w, http.StatusOK, page)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	requestID := httpx.RequestIDFrom(r)

	var storageErr *StorageError
	switch {
	case errors.Is(err, ErrBadRequest):
		h.logger.WarnContext(r.Context(), "bad request", "op", op, "error", err, "request_id", requestID)
		httpx.TextError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &storageErr):
		h.logger.ErrorContext(r.Context(), "storage failure",
			"op", storageErr.Op, "path", storageErr.Path, "error", storageErr.Err, "request_id", requestID)
		httpx.TextError(w, http.StatusInternalServerError, "storage error")
	default:
		h.logger.ErrorContext(r.Context(), "request failed", "op", op, "error", err, "request_id", requestID)
		httpx.TextError(w, http.StatusInternalServerError, "internal server error")
	}
}
