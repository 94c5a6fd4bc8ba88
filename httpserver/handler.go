package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/inventor-registry/api"
	"github.com/ruteri/inventor-registry/interfaces"
	"github.com/ruteri/inventor-registry/metrics"
	"github.com/ruteri/inventor-registry/registry"
)

// maxBodySize is the maximum allowed request body size (64KB).
const maxBodySize = 64 * 1024

// PersistFunc is called after every successful state mutation, while the
// registry lock is still held.
type PersistFunc func(ctx context.Context) error

// Handler serves the registry API. All registry calls go through one mutex,
// as the registry itself is not safe for concurrent use.
type Handler struct {
	mu       sync.Mutex
	registry interfaces.InventorRegistry
	persist  PersistFunc
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewHandler creates a handler serving reg. persist may be nil.
func NewHandler(reg interfaces.InventorRegistry, persist PersistFunc, log *slog.Logger) *Handler {
	return &Handler{
		registry: reg,
		persist:  persist,
		log:      log,
	}
}

// RegisterRoutes registers the registry API routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/inventors", h.HandleRegisterInventor)
	r.Get("/api/inventors/{identity}", h.HandleGetInventor)
	r.Post("/api/inventors/{identity}/verify", h.HandleVerifyInventor)
	r.Get("/api/inventors/{identity}/registered", h.HandleIsInventor)
	r.Get("/api/inventors/{identity}/verified", h.HandleIsVerifiedInventor)
	r.Get("/api/admin", h.HandleGetAdmin)
	r.Post("/api/admin/transfer", h.HandleTransferAdmin)
}

// setMetrics attaches m and publishes the current inventor count.
func (h *Handler) setMetrics(m *metrics.Metrics) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.metrics = m
	if m != nil {
		m.SetInventors(h.registry.Len())
	}
}

// HandleRegisterInventor registers the caller.
//
// URL format: POST /api/inventors
// Required headers: X-Caller-Identity
// Request body: {"name": "...", "credentials": "..."}
func (h *Handler) HandleRegisterInventor(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.callerIdentity(w, r)
	if !ok {
		return
	}

	var req api.RegisterRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	h.mutate(w, r, metrics.OpRegisterInventor, func() error {
		return h.registry.RegisterInventor(caller, req.Name, req.Credentials)
	}, slog.String("caller", caller.String()))
}

// HandleVerifyInventor marks the inventor in the path as verified.
//
// URL format: POST /api/inventors/{identity}/verify
// Required headers: X-Caller-Identity (must be the admin)
func (h *Handler) HandleVerifyInventor(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.callerIdentity(w, r)
	if !ok {
		return
	}
	target, ok := h.pathIdentity(w, r)
	if !ok {
		return
	}

	h.mutate(w, r, metrics.OpVerifyInventor, func() error {
		return h.registry.VerifyInventor(caller, target)
	}, slog.String("caller", caller.String()), slog.String("target", target.String()))
}

// HandleTransferAdmin hands the admin role over.
//
// URL format: POST /api/admin/transfer
// Required headers: X-Caller-Identity (must be the admin)
// Request body: {"new_admin": "..."}
func (h *Handler) HandleTransferAdmin(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.callerIdentity(w, r)
	if !ok {
		return
	}

	var req api.TransferAdminRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	newAdmin, err := interfaces.ParseIdentity(req.NewAdmin)
	if err != nil {
		http.Error(w, "Invalid new_admin: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.mutate(w, r, metrics.OpTransferAdmin, func() error {
		return h.registry.TransferAdmin(caller, newAdmin)
	}, slog.String("caller", caller.String()), slog.String("newAdmin", newAdmin.String()))
}

// HandleIsInventor reports whether the identity in the path is registered.
func (h *Handler) HandleIsInventor(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.pathIdentity(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	value := h.registry.IsInventor(identity)
	h.mu.Unlock()

	h.writeJSON(w, http.StatusOK, api.BoolResponse{Value: value})
}

// HandleIsVerifiedInventor reports whether the identity in the path is verified.
func (h *Handler) HandleIsVerifiedInventor(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.pathIdentity(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	value := h.registry.IsVerifiedInventor(identity)
	h.mu.Unlock()

	h.writeJSON(w, http.StatusOK, api.BoolResponse{Value: value})
}

// HandleGetInventor returns the record of the identity in the path, or a 404 result.
func (h *Handler) HandleGetInventor(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.pathIdentity(w, r)
	if !ok {
		return
	}

	h.mu.Lock()
	record, found := h.registry.Inventor(identity)
	h.mu.Unlock()

	if !found {
		res := registry.Err(registry.CodeNotFound)
		h.writeJSON(w, api.StatusForResult(res), res)
		return
	}

	h.writeJSON(w, http.StatusOK, api.InventorResponse{Identity: identity, InventorRecord: record})
}

// HandleGetAdmin returns the current admin.
func (h *Handler) HandleGetAdmin(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	admin := h.registry.Admin()
	h.mu.Unlock()

	h.writeJSON(w, http.StatusOK, api.AdminResponse{Admin: admin})
}

// observe records the outcome of a mutation. Callers must hold h.mu, so the
// inventor gauge follows the order in which mutations were applied.
func (h *Handler) observe(operation string, res registry.Result) {
	if h.metrics == nil {
		return
	}
	outcome := metrics.OutcomeOK
	if !res.IsOk() {
		outcome = res.Code().String()
	}
	h.metrics.ObserveOperation(operation, outcome)
	h.metrics.SetInventors(h.registry.Len())
}

// mutate runs op under the registry lock, persists on success and writes the
// result. Errors that are not registry errors end in a 500.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, operation string, op func() error, attrs ...any) {
	log := h.log.With(slog.String("operation", operation)).With(attrs...)

	h.mu.Lock()
	opErr := op()
	var persistErr error
	if opErr == nil && h.persist != nil {
		persistErr = h.persist(r.Context())
	}
	res, ok := registry.ResultOf(opErr)
	if ok {
		h.observe(operation, res)
	}
	h.mu.Unlock()

	if !ok {
		log.Error("Registry operation failed", "err", opErr)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if persistErr != nil {
		log.Error("Failed to persist registry snapshot", "err", persistErr)
		http.Error(w, "Failed to persist registry state", http.StatusInternalServerError)
		return
	}

	if res.IsOk() {
		log.Info("Registry operation succeeded")
	} else {
		log.Info("Registry operation rejected", "code", uint32(res.Code()))
	}
	h.writeJSON(w, api.StatusForResult(res), res)
}

func (h *Handler) callerIdentity(w http.ResponseWriter, r *http.Request) (interfaces.Identity, bool) {
	caller, err := interfaces.ParseIdentity(r.Header.Get(api.CallerIdentityHeader))
	if err != nil {
		http.Error(w, "Missing or invalid "+api.CallerIdentityHeader+" header", http.StatusBadRequest)
		return "", false
	}
	return caller, true
}

func (h *Handler) pathIdentity(w http.ResponseWriter, r *http.Request) (interfaces.Identity, bool) {
	identity, err := interfaces.ParseIdentity(r.PathValue("identity"))
	if err != nil {
		http.Error(w, "Missing identity in URL", http.StatusBadRequest)
		return "", false
	}
	return identity, true
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		h.log.Error("Failed to encode response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
