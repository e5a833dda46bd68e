package stream

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/matt-g-everett/valuetx/config"
	"github.com/matt-g-everett/valuetx/progress"
	"github.com/matt-g-everett/valuetx/tween"
)

// An Animation pairs a configured transition engine with its progress
// controller.
type Animation struct {
	name     string
	config   config.Transition
	engine   *tween.Engine
	progress *progress.Controller
}

// NewAnimation builds the engine for one configured transition.
func NewAnimation(t config.Transition, store tween.Store, rng *rand.Rand, logger *slog.Logger) (*Animation, error) {
	mode, err := t.BuildMode()
	if err != nil {
		return nil, err
	}
	easing, err := t.EasingFunc()
	if err != nil {
		return nil, err
	}

	opts := []tween.Option{
		tween.WithLogger(logger.With("transition", t.Name)),
		tween.WithFormat(t.Format),
	}
	if rng != nil {
		opts = append(opts, tween.WithRand(rng))
	}
	if t.Sibling != "" {
		opts = append(opts, tween.WithSibling(t.Sibling))
	}
	if t.Self != "" {
		opts = append(opts, tween.WithSelf(t.Self))
	}

	return &Animation{
		name:     t.Name,
		config:   t,
		engine:   tween.NewEngine(store, t.Owner, t.Property, mode, opts...),
		progress: progress.NewController(t.Duration, easing),
	}, nil
}

// Name returns the transition name.
func (a *Animation) Name() string { return a.name }

// Config returns the transition configuration.
func (a *Animation) Config() config.Transition { return a.config }

// Engine exposes the underlying engine.
func (a *Animation) Engine() *tween.Engine { return a.engine }

// Active reports whether the transition is running.
func (a *Animation) Active() bool { return a.engine.Active() }

// Start restarts the transition from the current value.
func (a *Animation) Start() bool {
	if !a.engine.Start() {
		return false
	}
	a.progress.Start()
	return true
}

// Step advances by dt and returns the number of writes.
func (a *Animation) Step(dt time.Duration) int {
	if !a.engine.Active() {
		return 0
	}
	t, moving := a.progress.Advance(dt)
	return a.engine.Tick(t, moving)
}

// Stop abandons the transition where it is.
func (a *Animation) Stop() {
	a.engine.Stop()
	a.progress.Stop()
}
