package tween

import (
	"log/slog"
	"math/rand"

	"github.com/matt-g-everett/valuetx/logging"
	"github.com/matt-g-everett/valuetx/textcodec"
	"github.com/matt-g-everett/valuetx/typing"
	"github.com/matt-g-everett/valuetx/util"
	"github.com/matt-g-everett/valuetx/value"
)

// TargetRef names a property on an owner known to a Store.
type TargetRef struct {
	Owner string
	Name  string
}

// State is one in-flight transition of a single property. A State with a nil
// Kind is a no-op and never writes.
type State struct {
	Target TargetRef
	Kind   value.Kind
	From   value.Value
	To     value.Value

	linFrom, linTo value.Channels
	typing         typing.Animator
	volume         bool
}

// Noop reports whether the state never writes.
func (s *State) Noop() bool {
	return s == nil || s.Kind == nil
}

// Typing exposes the typing counters of a TextTyping state.
func (s *State) Typing() *typing.Animator {
	return &s.typing
}

// ValueAt computes the value at progress t without advancing typing counters.
func (s *State) ValueAt(t float64) value.Value {
	switch k := s.Kind.(type) {
	case value.Integer:
		return value.Int(value.LerpInt(value.AsInt(s.From), value.AsInt(s.To), t))
	case value.Real:
		return value.Float(value.LerpFloat(value.AsFloat(s.From), value.AsFloat(s.To), t))
	case value.Color:
		return value.LerpColor(s.linFrom, s.linTo, t)
	case value.TextNumeric:
		v := value.LerpFloat(value.AsFloat(s.From), value.AsFloat(s.To), t)
		return value.Text(k.Format.Render(v))
	case value.TextTyping:
		return value.Text(s.typing.DisplayAt(s.typing.StepAt(t)))
	}
	return nil
}

// apply writes the value at t through store and reports whether it wrote.
func (s *State) apply(store Store, t float64, moving bool) bool {
	if s.Noop() {
		return false
	}
	var v value.Value
	if _, ok := s.Kind.(value.TextTyping); ok {
		text, write := s.typing.Advance(t, moving)
		if !write {
			return false
		}
		v = value.Text(text)
	} else {
		v = s.ValueAt(t)
	}
	if s.volume {
		if gs, ok := store.(GainStore); ok {
			gs.SetGain(s.Target.Owner, value.AsFloat(v)/VolumeMax)
			return true
		}
		return false
	}
	store.Set(s.Target.Owner, s.Target.Name, v)
	return true
}

// Resolver computes the endpoints of transitions. Each engine owns one.
type Resolver struct {
	store  Store
	rng    *rand.Rand
	logger *slog.Logger

	// Format governs text properties in numeric modes.
	Format textcodec.Format
}

// NewResolver creates a Resolver drawing random targets from rng.
func NewResolver(store Store, rng *rand.Rand, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Resolver{store: store, rng: rng, logger: logger, Format: textcodec.Decimals(0)}
}

// Resolve reads the current value of target and derives the transition
// endpoints for mode. It returns nil when the owner does not exist.
func (r *Resolver) Resolve(target TargetRef, mode Mode) *State {
	if _, ok := mode.(BatchSettings); ok {
		r.logger.Debug("batch mode resolved through ResolveBatch", "owner", target.Owner)
		return &State{Target: target}
	}
	descs, ok := r.store.Describe(target.Owner)
	if !ok {
		r.logger.Debug("target owner missing", "owner", target.Owner)
		return nil
	}
	_, typingMode := mode.(Typing)
	s := &State{Target: target}

	if target.Name == VolumeSetting {
		gs, ok := r.store.(GainStore)
		if !ok || typingMode {
			return s
		}
		gain, ok := gs.Gain(target.Owner)
		if !ok {
			return s
		}
		s.Kind = value.Real{Min: VolumeMin, Max: VolumeMax}
		s.volume = true
		s.From = value.Float(gain * VolumeMax)
		s.To = r.target(s, mode)
		return s
	}

	d, ok := Lookup(descs, target.Name)
	if !ok {
		r.logger.Debug("target property missing", "owner", target.Owner, "name", target.Name)
		return s
	}
	kind := KindOf(d, r.Format, typingMode)
	if kind == nil || (typingMode && d.Type != PropText) {
		r.logger.Debug("unsupported property kind", "name", target.Name, "type", d.Type)
		return s
	}
	current, ok := r.store.Get(target.Owner, target.Name)
	if !ok {
		return s
	}
	s.Kind = kind
	s.From = r.from(kind, current)
	s.To = r.target(s, mode)
	if s.To == nil {
		s.Kind = nil
		return s
	}
	switch s.Kind.(type) {
	case value.Color:
		s.linFrom = value.Linearize(value.AsRGBA(s.From))
	case value.TextTyping:
		s.typing.Setup(value.AsText(s.From), value.AsText(s.To))
	}
	return s
}

func (r *Resolver) from(kind value.Kind, current value.Value) value.Value {
	if k, ok := kind.(value.TextNumeric); ok {
		return value.Float(k.Format.Parse(value.AsText(current)))
	}
	return value.Coerce(kind, current)
}

// operand converts a mode literal for kind. Text aimed at a numeric text
// property is read with the property's format.
func (r *Resolver) operand(kind value.Kind, v value.Value) value.Value {
	k, ok := kind.(value.TextNumeric)
	if !ok {
		return v
	}
	if t, ok := v.(value.Text); ok {
		return value.Float(k.Format.Parse(string(t)))
	}
	return v
}

// target derives the end value of s under mode. Colors also fill linTo.
func (r *Resolver) target(s *State, mode Mode) value.Value {
	switch m := mode.(type) {
	case SingleSetting:
		to := value.Coerce(s.Kind, r.operand(s.Kind, m.Value))
		if _, ok := s.Kind.(value.Color); ok {
			s.linTo = value.Linearize(value.AsRGBA(to))
		}
		return to
	case SettingAdd:
		return r.add(s, r.operand(s.Kind, m.Delta))
	case Random:
		return r.random(s, r.operand(s.Kind, m.Min), r.operand(s.Kind, m.Max))
	case Typing:
		if _, ok := s.Kind.(value.TextTyping); !ok {
			return nil
		}
		return value.Text(m.Text)
	}
	return nil
}

func (r *Resolver) add(s *State, delta value.Value) value.Value {
	switch s.Kind.(type) {
	case value.Integer:
		return value.Int(value.AsInt(s.From) + value.AsInt(delta))
	case value.Real, value.TextNumeric:
		return value.Float(value.AsFloat(s.From) + value.AsFloat(delta))
	case value.Color:
		ch := value.Unpack(value.AsRGBA(s.From)).Add(value.Unpack(value.AsRGBA(delta)))
		s.linTo = ch.ToLinear()
		return ch.Pack()
	}
	return nil
}

func (r *Resolver) random(s *State, lo, hi value.Value) value.Value {
	switch s.Kind.(type) {
	case value.Integer:
		return value.Int(util.RandInt(r.rng, value.AsInt(lo), value.AsInt(hi)))
	case value.Real, value.TextNumeric:
		return value.Float(util.RandFloat(r.rng, value.AsFloat(lo), value.AsFloat(hi)))
	case value.Color:
		a, b := value.Unpack(value.AsRGBA(lo)), value.Unpack(value.AsRGBA(hi))
		ch := value.Channels{
			A: util.RandFloat(r.rng, a.A, b.A),
			R: util.RandFloat(r.rng, a.R, b.R),
			G: util.RandFloat(r.rng, a.G, b.G),
			B: util.RandFloat(r.rng, a.B, b.B),
		}
		s.linTo = ch.ToLinear()
		return ch.Pack()
	}
	return nil
}
