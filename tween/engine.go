package tween

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/matt-g-everett/valuetx/logging"
	"github.com/matt-g-everett/valuetx/textcodec"
	"github.com/matt-g-everett/valuetx/value"
)

// Engine drives transitions of one property, or one batch of properties, on
// a target owner. It is not safe for concurrent use; start, tick and stop
// are expected on the caller's frame thread.
type Engine struct {
	store    Store
	resolver *Resolver
	logger   *slog.Logger

	parent   string
	sibling  string
	self     string
	property string
	mode     Mode

	active bool
	state  *State
	batch  []*State
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRand sets the generator used by Random mode.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.resolver.rng = rng
	}
}

// WithFormat sets the text format used for numeric text properties.
func WithFormat(f textcodec.Format) Option {
	return func(e *Engine) {
		e.resolver.Format = f.Normalize()
	}
}

// WithSibling targets the named sibling owner instead of the parent.
func WithSibling(name string) Option {
	return func(e *Engine) {
		e.sibling = name
	}
}

// WithSelf names the owner holding the engine's own settings. Batch entries
// added to the engine mirror the target's defaults onto it.
func WithSelf(owner string) Option {
	return func(e *Engine) {
		e.self = owner
	}
}

// NewEngine creates an engine attached to parent.
func NewEngine(store Store, parent, property string, mode Mode, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		parent:   parent,
		property: property,
		mode:     mode,
		logger:   logging.NewNop(),
	}
	e.resolver = NewResolver(store, rand.New(rand.NewSource(time.Now().UnixNano())), nil)
	for _, opt := range opts {
		opt(e)
	}
	e.resolver.logger = e.logger
	return e
}

// Mode returns the current mode.
func (e *Engine) Mode() Mode { return e.mode }

// SetMode replaces the mode used by the next Start.
func (e *Engine) SetMode(m Mode) { e.mode = m }

// Property returns the target property name.
func (e *Engine) Property() string { return e.property }

// SetProperty changes the property used by the next Start.
func (e *Engine) SetProperty(name string) { e.property = name }

// Active reports whether a transition is in flight.
func (e *Engine) Active() bool { return e.active }

// State returns the in-flight single property state, if any.
func (e *Engine) State() *State { return e.state }

// Batch returns the in-flight batch states, if any.
func (e *Engine) Batch() []*State { return e.batch }

// Owner resolves the current target owner. A named sibling that does not
// exist leaves the engine without a target.
func (e *Engine) Owner() (string, bool) {
	owner := e.parent
	if e.sibling != "" {
		owner = e.sibling
	}
	if owner == "" {
		return "", false
	}
	if _, ok := e.store.Describe(owner); !ok {
		return "", false
	}
	return owner, true
}

// Retarget switches to a named sibling, or back to the parent when name is
// empty, and resyncs the batch list against the new owner.
func (e *Engine) Retarget(name string) {
	if name == e.sibling {
		return
	}
	e.logger.Debug("retarget", "from", e.sibling, "to", name)
	e.sibling = name
	e.SyncBatch()
}

// OwnerRemoved discards an in-flight transition on owner.
func (e *Engine) OwnerRemoved(owner string) {
	if e.targets(owner) {
		e.logger.Debug("target owner removed", "owner", owner)
		e.Stop()
	}
}

// OwnerRenamed follows a rename of the sibling or parent owner.
func (e *Engine) OwnerRenamed(from, to string) {
	switch from {
	case e.sibling:
		e.sibling = to
	case e.parent:
		e.parent = to
	default:
		return
	}
	if e.state != nil && e.state.Target.Owner == from {
		e.state.Target.Owner = to
	}
	for _, s := range e.batch {
		if s.Target.Owner == from {
			s.Target.Owner = to
		}
	}
	e.SyncBatch()
}

func (e *Engine) targets(owner string) bool {
	if e.state != nil && e.state.Target.Owner == owner {
		return true
	}
	for _, s := range e.batch {
		if s.Target.Owner == owner {
			return true
		}
	}
	return false
}

// SyncBatch prunes batch entries that no longer resolve on the owner.
func (e *Engine) SyncBatch() {
	m, ok := e.mode.(BatchSettings)
	if !ok || m.List == nil {
		return
	}
	owner, ok := e.Owner()
	if !ok {
		return
	}
	descs, _ := e.store.Describe(owner)
	if pruned := m.List.Sync(descs); len(pruned) > 0 {
		e.logger.Debug("pruned batch entries", "owner", owner, "names", pruned)
	}
}

// Start begins a new transition, replacing any in flight. It reports false
// when the target owner is absent, in which case no state is kept.
func (e *Engine) Start() bool {
	e.Stop()
	owner, ok := e.Owner()
	if !ok {
		e.logger.Debug("start skipped, no target", "parent", e.parent, "sibling", e.sibling)
		return false
	}
	if m, ok := e.mode.(BatchSettings); ok {
		e.batch = e.resolver.ResolveBatch(owner, m.List)
		e.logger.Debug("batch transition started", "owner", owner, "entries", len(e.batch))
	} else {
		e.state = e.resolver.Resolve(TargetRef{Owner: owner, Name: e.property}, e.mode)
		if e.state == nil {
			return false
		}
		e.logger.Debug("transition started", "owner", owner, "name", e.property,
			"kind", e.state.Kind, "from", e.state.From, "to", e.state.To)
	}
	e.active = true
	return true
}

// Tick writes the values at progress t and returns the number of writes.
// Once moving is false the transition is finished and its state discarded.
func (e *Engine) Tick(t float64, moving bool) int {
	if !e.active {
		return 0
	}
	n := 0
	for _, s := range e.batch {
		if s.apply(e.store, t, moving) {
			n++
		}
	}
	if e.state.apply(e.store, t, moving) {
		n++
	}
	if !moving {
		e.logger.Debug("transition finished", "writes", n)
		e.Stop()
	}
	return n
}

// Stop abandons the transition. The last written value stays in place.
func (e *Engine) Stop() {
	e.active = false
	e.state = nil
	e.batch = nil
}

// CaptureValue copies the target's current value into the mode, the way a
// "get value" action does: the literal of SingleSetting, both bounds of
// Random and the text of Typing.
func (e *Engine) CaptureValue() bool {
	owner, ok := e.Owner()
	if !ok {
		return false
	}
	var current value.Value
	if e.property == VolumeSetting {
		gs, ok := e.store.(GainStore)
		if !ok {
			return false
		}
		gain, ok := gs.Gain(owner)
		if !ok {
			return false
		}
		current = value.Float(gain * VolumeMax)
	} else {
		descs, _ := e.store.Describe(owner)
		d, ok := Lookup(descs, e.property)
		if !ok {
			return false
		}
		raw, ok := e.store.Get(owner, e.property)
		if !ok {
			return false
		}
		_, typingMode := e.mode.(Typing)
		kind := KindOf(d, e.resolver.Format, typingMode)
		if kind == nil {
			return false
		}
		current = e.resolver.from(kind, raw)
	}
	switch e.mode.(type) {
	case SingleSetting:
		e.mode = SingleSetting{Value: current}
	case Random:
		e.mode = Random{Min: current, Max: current}
	case Typing:
		if _, ok := current.(value.Text); !ok {
			return false
		}
		e.mode = Typing{Text: value.AsText(current)}
	default:
		return false
	}
	return true
}

// AddBatchSetting lists a property of the target in the batch. The target's
// default for it is mirrored onto the engine's own settings.
func (e *Engine) AddBatchSetting(name string) bool {
	m, ok := e.mode.(BatchSettings)
	if !ok || m.List == nil {
		return false
	}
	owner, ok := e.Owner()
	if !ok || !m.List.Add(e.store, owner, name) {
		return false
	}
	if e.self != "" {
		if def, ok := e.store.Default(owner, name); ok {
			e.store.SetDefault(e.self, name, def)
		}
	}
	return true
}

// CaptureBatch sets every batch entry's target to the current value.
func (e *Engine) CaptureBatch() int {
	m, ok := e.mode.(BatchSettings)
	if !ok || m.List == nil {
		return 0
	}
	owner, ok := e.Owner()
	if !ok {
		return 0
	}
	e.SyncBatch()
	return m.List.Capture(e.store, owner)
}
