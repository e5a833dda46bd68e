package stream

import (
	"github.com/matt-g-everett/valuetx/tween"
	"github.com/matt-g-everett/valuetx/value"
)

// Recorder passes every call through to a store and remembers the writes so
// they can be published with the frame.
type Recorder struct {
	store   tween.Store
	pending []Write
}

// NewRecorder wraps store.
func NewRecorder(store tween.Store) *Recorder {
	return &Recorder{store: store}
}

// Flush returns the writes since the last flush.
func (r *Recorder) Flush() []Write {
	w := r.pending
	r.pending = nil
	return w
}

// Describe implements tween.Store.
func (r *Recorder) Describe(owner string) ([]tween.Descriptor, bool) {
	return r.store.Describe(owner)
}

// Get implements tween.Store.
func (r *Recorder) Get(owner, name string) (value.Value, bool) {
	return r.store.Get(owner, name)
}

// Set implements tween.Store.
func (r *Recorder) Set(owner, name string, v value.Value) {
	r.store.Set(owner, name, v)
	r.pending = append(r.pending, Write{Owner: owner, Name: name, Value: v})
}

// Default implements tween.Store.
func (r *Recorder) Default(owner, name string) (value.Value, bool) {
	return r.store.Default(owner, name)
}

// SetDefault implements tween.Store.
func (r *Recorder) SetDefault(owner, name string, v value.Value) {
	r.store.SetDefault(owner, name, v)
}

// Gain implements tween.GainStore. A wrapped store without gain support
// reports false for every owner.
func (r *Recorder) Gain(owner string) (float64, bool) {
	gs, ok := r.store.(tween.GainStore)
	if !ok {
		return 0, false
	}
	return gs.Gain(owner)
}

// SetGain implements tween.GainStore. The write is recorded as the volume
// pseudo-property in percent.
func (r *Recorder) SetGain(owner string, gain float64) {
	gs, ok := r.store.(tween.GainStore)
	if !ok {
		return
	}
	gs.SetGain(owner, gain)
	r.pending = append(r.pending, Write{
		Owner: owner,
		Name:  tween.VolumeSetting,
		Value: value.Float(gain * tween.VolumeMax),
	})
}
