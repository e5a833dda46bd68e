package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matt-g-everett/valuetx/logging"
	"github.com/matt-g-everett/valuetx/stream"
	"github.com/matt-g-everett/valuetx/value"
)

const shutdownTimeout = 5 * time.Second

// Controller accepts transition requests for the frame loop.
type Controller interface {
	Submit(ctx context.Context, req stream.Request) error
	Transitions() []stream.Status
}

// Targets exposes the current property values.
type Targets interface {
	Owners() []string
	Snapshot(owner string) (map[string]value.Value, bool)
}

// Api serves the HTTP control surface.
type Api struct {
	controller Controller
	targets    Targets
	gatherer   prometheus.Gatherer
	logger     *slog.Logger
	static     string
}

// Option configures an Api.
type Option func(*Api)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Api) {
		a.logger = logger
	}
}

// WithGatherer serves metrics from g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(a *Api) {
		a.gatherer = g
	}
}

// WithStatic serves the files in dir under /.
func WithStatic(dir string) Option {
	return func(a *Api) {
		a.static = dir
	}
}

// NewApi creates the HTTP surface over a controller and a target store.
func NewApi(controller Controller, targets Targets, opts ...Option) *Api {
	a := &Api{
		controller: controller,
		targets:    targets,
		gatherer:   prometheus.DefaultGatherer,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handler builds the router.
func (a *Api) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/transitions", a.listTransitions)
	r.Post("/transitions/{name}/start", a.request(stream.ActionStart))
	r.Post("/transitions/{name}/stop", a.request(stream.ActionStop))
	r.Get("/targets", a.listTargets)
	r.Get("/targets/{owner}", a.getTarget)
	r.Handle("/metrics", promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{}))
	if a.static != "" {
		r.Handle("/*", http.FileServer(http.Dir(a.static)))
	}
	return r
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
func (a *Api) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("graceful shutdown did not complete", "error", err)
			return srv.Close()
		}
		return nil
	}
}

func (a *Api) request(action stream.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := stream.Request{Transition: chi.URLParam(r, "name"), Action: action}
		err := a.controller.Submit(r.Context(), req)
		switch {
		case errors.Is(err, stream.ErrUnknownTransition):
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		case err != nil:
			a.logger.Warn("request failed", "transition", req.Transition, "action", action, "error", err)
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		a.logger.Debug("request accepted", "transition", req.Transition, "action", action)
		writeJSON(w, http.StatusAccepted, req, a.logger)
	}
}

func (a *Api) listTransitions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.controller.Transitions(), a.logger)
}

func (a *Api) listTargets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, a.targets.Owners(), a.logger)
}

type property struct {
	Name  string      `json:"name"`
	Kind  string      `json:"kind"`
	Value interface{} `json:"value"`
}

func (a *Api) getTarget(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	snap, ok := a.targets.Snapshot(owner)
	if !ok {
		http.Error(w, "unknown target", http.StatusNotFound)
		return
	}
	props := make([]property, 0, len(snap))
	for name, v := range snap {
		kind, raw := stream.EncodeValue(v)
		props = append(props, property{Name: name, Kind: kind, Value: raw})
	}
	sort.Slice(props, func(i, j int) bool { return props[i].Name < props[j].Name })
	writeJSON(w, http.StatusOK, props, a.logger)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("encode response", "error", err)
	}
}
