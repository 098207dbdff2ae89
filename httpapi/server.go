// Package httpapi serves rendered checkout views over HTTP for previews and
// for hosts that do not embed the controller directly.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	cartcheckout "github.com/vitwit/cartcheckout"
	"github.com/vitwit/cartcheckout/logger"
	"github.com/vitwit/cartcheckout/types"
	"github.com/vitwit/cartcheckout/utils"
)

// Renderer is the controller surface the server needs. Requests from many
// clients share one controller, so the server renders previews that leave the
// dialog state alone.
type Renderer interface {
	Preview(ctx context.Context, in cartcheckout.Input) *cartcheckout.View
}

// SnapshotSource returns the latest engine snapshot for a checkout key.
type SnapshotSource interface {
	Get(key string) (*types.Transaction, bool)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Server wires the routes.
type Server struct {
	renderer  Renderer
	snapshots SnapshotSource
	log       logger.Logger
	metrics   http.Handler
}

// NewServer builds a server. snapshots may be nil when no feed runs.
func NewServer(renderer Renderer, snapshots SnapshotSource, log logger.Logger) *Server {
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &Server{
		renderer:  renderer,
		snapshots: snapshots,
		log:       log,
		metrics:   promhttp.Handler(),
	}
}

// Handler returns the routed handler with recovery and content-type checks.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics).Methods(http.MethodGet)
	r.HandleFunc("/v1/render", s.render).Methods(http.MethodPost)
	r.HandleFunc("/v1/checkouts/{key}", s.checkout).Methods(http.MethodGet)

	h := handlers.ContentTypeHandler(r, "application/json")
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(false))(h)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	var in cartcheckout.Input
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&in); err != nil {
		s.log.Debug("render input rejected", map[string]any{"err": err.Error()})
		writeError(w, http.StatusBadRequest, &types.CheckoutError{Code: types.ErrInvalidInput, Message: "invalid render input: " + err.Error()})
		return
	}

	if in.Transaction != nil {
		if err := utils.ValidateTransaction(in.Transaction); err != nil {
			s.log.Debug("render snapshot rejected", map[string]any{"err": err.Error()})
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, s.renderer.Preview(r.Context(), in))
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if s.snapshots == nil {
		writeError(w, http.StatusNotFound, &types.CheckoutError{Code: types.ErrFeedError, Message: "snapshot feed is not enabled"})
		return
	}

	tx, ok := s.snapshots.Get(key)
	if !ok {
		writeError(w, http.StatusNotFound, &types.CheckoutError{Code: types.ErrInvalidInput, Message: "no snapshot for checkout " + key})
		return
	}

	writeJSON(w, http.StatusOK, s.renderer.Preview(r.Context(), cartcheckout.Input{Key: key, Transaction: tx}))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	body := errorBody{Code: types.ErrInvalidInput, Message: err.Error()}
	var cerr *types.CheckoutError
	if errors.As(err, &cerr) {
		body.Code = cerr.Code
	}
	writeJSON(w, status, body)
}
