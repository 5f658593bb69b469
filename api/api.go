package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	yamlcodec "github.com/0xalexb/hjarta-kv/codec/yaml"
	"github.com/0xalexb/hjarta-kv/document"
	"github.com/0xalexb/hjarta-kv/dotpath"
	"github.com/0xalexb/hjarta-kv/registry"

	"go.uber.org/fx"
)

// ErrNotFound is reported when a path holds no value.
var ErrNotFound = errors.New("value not found")

// Handler serves the document routes.
type Handler struct {
	mu       sync.Mutex
	registry *registry.Registry
	mux      *http.ServeMux
}

// NewHandler creates a Handler for reg.
func NewHandler(reg *registry.Registry) *Handler {
	handler := &Handler{
		registry: reg,
		mux:      http.NewServeMux(),
	}

	handler.mux.HandleFunc("GET /documents/{name}", handler.getDocument)
	handler.mux.HandleFunc("GET /documents/{name}/{path}", handler.getValue)
	handler.mux.HandleFunc("PUT /documents/{name}/{path}", handler.putValue)
	handler.mux.HandleFunc("DELETE /documents/{name}/{path}", handler.deleteValue)
	handler.mux.HandleFunc("POST /documents/{name}/save", handler.saveDocument)
	handler.mux.HandleFunc("POST /save", handler.saveAll)

	return handler
}

// NewModule creates an Fx module providing the Handler as the http.Handler named name,
// ready to be served by listener.NewModule(name).
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string) fx.Option {
	return fx.Module("api",
		fx.Provide(
			fx.Annotate(
				func(reg *registry.Registry) http.Handler {
					return NewHandler(reg)
				},
				fx.ResultTags(fmt.Sprintf(`name:"%s"`, name)),
			),
		),
	)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.mux.ServeHTTP(w, r)
}

type documentResponse struct {
	Name     string         `json:"name"`
	Keys     []string       `json:"keys"`
	Document map[string]any `json:"document"`
}

type valueResponse struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
}

type previousResponse struct {
	Path     string `json:"path"`
	Previous any    `json:"previous"`
}

type savedResponse struct {
	Saved []string `json:"saved"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) getDocument(w http.ResponseWriter, r *http.Request) {
	adapter, ok := h.resolve(w, r)
	if !ok {
		return
	}

	keys, err := adapter.Keys()
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, documentResponse{
		Name:     r.PathValue("name"),
		Keys:     keys,
		Document: adapter.Internal(),
	})
}

func (h *Handler) getValue(w http.ResponseWriter, r *http.Request) {
	adapter, ok := h.resolve(w, r)
	if !ok {
		return
	}

	path := r.PathValue("path")

	value, found, err := adapter.Lookup(path)
	if err != nil {
		writeError(w, err)

		return
	}

	if !found {
		writeError(w, fmt.Errorf("%w: %s", ErrNotFound, path))

		return
	}

	writeJSON(w, http.StatusOK, valueResponse{Path: path, Value: value})
}

func (h *Handler) putValue(w http.ResponseWriter, r *http.Request) {
	adapter, ok := h.resolve(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})

			return
		}

		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

		return
	}

	value, err := yamlcodec.ParseValue(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})

		return
	}

	path := r.PathValue("path")

	previous, err := adapter.Set(path, value)
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, previousResponse{Path: path, Previous: previous})
}

func (h *Handler) deleteValue(w http.ResponseWriter, r *http.Request) {
	adapter, ok := h.resolve(w, r)
	if !ok {
		return
	}

	path := r.PathValue("path")

	previous, err := adapter.Delete(path)
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, previousResponse{Path: path, Previous: previous})
}

func (h *Handler) saveDocument(w http.ResponseWriter, r *http.Request) {
	adapter, ok := h.resolve(w, r)
	if !ok {
		return
	}

	err := adapter.Save()
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, savedResponse{Saved: []string{r.PathValue("name")}})
}

func (h *Handler) saveAll(w http.ResponseWriter, _ *http.Request) {
	err := h.registry.SaveAll()
	if err != nil {
		writeError(w, err)

		return
	}

	writeJSON(w, http.StatusOK, savedResponse{Saved: h.registry.Names()})
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (*document.Adapter, bool) {
	adapter, err := h.registry.Resolve(r.PathValue("name"))
	if err != nil {
		writeError(w, err)

		return nil, false
	}

	return adapter, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, document.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, dotpath.ErrNotMapping):
		return http.StatusConflict
	case errors.Is(err, dotpath.ErrEmptyPath),
		errors.Is(err, registry.ErrEmptyName),
		errors.Is(err, registry.ErrInvalidName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Error("failed to encode response", "status", status, "error", err)
	}
}
