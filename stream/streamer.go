package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/matt-g-everett/valuetx/config"
	"github.com/matt-g-everett/valuetx/logging"
	"github.com/matt-g-everett/valuetx/tween"
)

// ErrUnknownTransition is returned for a transition name that is not configured.
var ErrUnknownTransition = errors.New("unknown transition")

// Action is what a request does to a transition.
type Action string

const (
	ActionStart Action = "start"
	ActionStop  Action = "stop"
)

// Request asks the frame loop to start or stop a transition.
type Request struct {
	Transition string `json:"transition"`
	Action     Action `json:"action"`
}

// Publisher delivers encoded frames.
type Publisher interface {
	Publish(payload []byte) error
}

// Status describes a transition for observers outside the frame loop.
type Status struct {
	Name     string `json:"name"`
	Owner    string `json:"owner"`
	Property string `json:"property,omitempty"`
	Mode     string `json:"mode"`
	Active   bool   `json:"active"`
}

// Streamer owns every animation and advances them once per frame. All engine
// access happens on the goroutine running Run.
type Streamer struct {
	recorder   *Recorder
	publisher  Publisher
	logger     *slog.Logger
	metrics    *Metrics
	rng        *rand.Rand
	interval   time.Duration
	requests   chan Request
	animations map[string]*Animation
	names      []string
	seq        uint64

	mu     sync.RWMutex
	status map[string]Status
}

// Option configures a Streamer.
type Option func(*Streamer)

// WithLogger sets the streamer logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Streamer) {
		s.logger = logger
	}
}

// WithMetrics sets the collectors updated by the frame loop.
func WithMetrics(m *Metrics) Option {
	return func(s *Streamer) {
		s.metrics = m
	}
}

// WithPublisher sets where frames are published. Without one frames are
// only applied to the store.
func WithPublisher(p Publisher) Option {
	return func(s *Streamer) {
		s.publisher = p
	}
}

// WithRand sets the generator shared by the animations.
func WithRand(rng *rand.Rand) Option {
	return func(s *Streamer) {
		s.rng = rng
	}
}

// NewStreamer creates an instance of a Streamer for the configured transitions.
func NewStreamer(cfg *config.Config, store tween.Store, opts ...Option) (*Streamer, error) {
	rate := cfg.FrameRate
	if rate <= 0 {
		rate = config.DefaultFrameRate
	}
	s := &Streamer{
		recorder:   NewRecorder(store),
		logger:     logging.NewNop(),
		interval:   time.Duration(float64(time.Second) / rate),
		requests:   make(chan Request, 16),
		animations: make(map[string]*Animation),
		status:     make(map[string]Status),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for _, t := range cfg.Transitions {
		a, err := NewAnimation(t, s.recorder, s.rng, s.logger)
		if err != nil {
			return nil, fmt.Errorf("transition %q: %w", t.Name, err)
		}
		s.animations[t.Name] = a
		s.names = append(s.names, t.Name)
		s.status[t.Name] = Status{Name: t.Name, Owner: t.Owner, Property: t.Property, Mode: t.Mode}
	}
	sort.Strings(s.names)
	return s, nil
}

// Interval returns the frame interval.
func (s *Streamer) Interval() time.Duration { return s.interval }

// Transitions lists the status of every transition, by name.
func (s *Streamer) Transitions() []Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Status, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, s.status[name])
	}
	return out
}

// Submit queues a request for the frame loop.
func (s *Streamer) Submit(ctx context.Context, req Request) error {
	if _, ok := s.animations[req.Transition]; !ok {
		return fmt.Errorf("%q: %w", req.Transition, ErrUnknownTransition)
	}
	if req.Action == "" {
		req.Action = ActionStart
	}
	if req.Action != ActionStart && req.Action != ActionStop {
		return fmt.Errorf("unknown action %q", req.Action)
	}
	select {
	case s.requests <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HandleTrigger decodes a JSON request and submits it.
func (s *Streamer) HandleTrigger(ctx context.Context, payload []byte) error {
	var req Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("decode trigger: %w", err)
	}
	return s.Submit(ctx, req)
}

// Run causes the Streamer to advance and publish frames until ctx is done.
func (s *Streamer) Run(ctx context.Context) error {
	publishTimer := time.NewTicker(s.interval)
	defer publishTimer.Stop()
	s.logger.Info("streamer running", "interval", s.interval, "transitions", len(s.names))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-s.requests:
			s.handle(req)
		case now := <-publishTimer.C:
			s.step(now, s.interval)
		}
	}
}

func (s *Streamer) handle(req Request) {
	a := s.animations[req.Transition]
	switch req.Action {
	case ActionStop:
		a.Stop()
		s.logger.Info("transition stopped", "transition", req.Transition)
	default:
		if !a.Start() {
			s.logger.Info("transition has no target", "transition", req.Transition)
			break
		}
		s.metrics.Started.WithLabelValues(req.Transition).Inc()
		s.logger.Info("transition started", "transition", req.Transition)
	}
	s.updateStatus()
}

// step advances every active animation by dt and publishes the writes.
func (s *Streamer) step(now time.Time, dt time.Duration) *Frame {
	for _, name := range s.names {
		s.animations[name].Step(dt)
	}
	s.updateStatus()

	writes := s.recorder.Flush()
	if len(writes) == 0 {
		return nil
	}
	s.seq++
	f := NewFrame(s.seq, now, writes)
	s.metrics.Writes.Add(float64(len(writes)))
	s.metrics.Frames.Inc()
	s.sendFrame(f)
	return f
}

// sendFrame publishes a frame as JSON.
func (s *Streamer) sendFrame(f *Frame) {
	if s.publisher == nil {
		return
	}
	b, err := json.Marshal(f)
	if err != nil {
		s.logger.Error("encode frame", "error", err)
		return
	}
	if err := s.publisher.Publish(b); err != nil {
		s.logger.Warn("publish frame", "seq", f.Seq, "error", err)
	}
}

func (s *Streamer) updateStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := 0
	for name, a := range s.animations {
		st := s.status[name]
		st.Active = a.Active()
		if st.Active {
			active++
		}
		s.status[name] = st
	}
	s.metrics.Active.Set(float64(active))
}
