// Package store provides an in-memory property store.
package store

import (
	"sort"
	"sync"

	"github.com/matt-g-everett/valuetx/tween"
	"github.com/matt-g-everett/valuetx/value"
)

type owner struct {
	descs    []tween.Descriptor
	values   map[string]value.Value
	defaults map[string]value.Value
	gain     float64
	hasGain  bool
}

// Memory implements tween.Store and tween.GainStore in memory.
// Safe for concurrent use.
type Memory struct {
	owners map[string]*owner
	mu     sync.RWMutex
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{
		owners: make(map[string]*owner),
	}
}

// AddOwner registers an owner with its property descriptors. Each property
// starts at its descriptor default.
func (m *Memory) AddOwner(name string, descs []tween.Descriptor) {
	o := &owner{
		descs:    descs,
		values:   make(map[string]value.Value),
		defaults: make(map[string]value.Value),
	}
	var seed func([]tween.Descriptor)
	seed = func(ds []tween.Descriptor) {
		for _, d := range ds {
			if d.Type == tween.PropGroup {
				seed(d.Children)
				continue
			}
			if d.Default != nil {
				o.values[d.Name] = d.Default
				o.defaults[d.Name] = d.Default
			}
		}
	}
	seed(descs)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[name] = o
}

// SetDescriptors replaces the descriptor set of an owner, keeping values.
func (m *Memory) SetDescriptors(name string, descs []tween.Descriptor) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.owners[name]
	if !ok {
		return false
	}
	o.descs = descs
	return true
}

// RemoveOwner deletes an owner and its values.
func (m *Memory) RemoveOwner(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.owners, name)
}

// RenameOwner moves an owner to a new name.
func (m *Memory) RenameOwner(from, to string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.owners[from]
	if !ok {
		return false
	}
	delete(m.owners, from)
	m.owners[to] = o
	return true
}

// Owners lists the owner names in order.
func (m *Memory) Owners() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.owners))
	for name := range m.owners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies the current values of an owner.
func (m *Memory) Snapshot(name string) (map[string]value.Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.owners[name]
	if !ok {
		return nil, false
	}
	out := make(map[string]value.Value, len(o.values))
	for k, v := range o.values {
		out[k] = v
	}
	return out, true
}

// Describe implements tween.Store.
func (m *Memory) Describe(name string) ([]tween.Descriptor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.owners[name]
	if !ok {
		return nil, false
	}
	return o.descs, true
}

// Get implements tween.Store.
func (m *Memory) Get(name, prop string) (value.Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.owners[name]
	if !ok {
		return nil, false
	}
	v, ok := o.values[prop]
	return v, ok
}

// Set implements tween.Store. Writes to unknown owners are dropped.
func (m *Memory) Set(name, prop string, v value.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.owners[name]; ok {
		o.values[prop] = v
	}
}

// Default implements tween.Store.
func (m *Memory) Default(name, prop string) (value.Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.owners[name]
	if !ok {
		return nil, false
	}
	v, ok := o.defaults[prop]
	return v, ok
}

// SetDefault implements tween.Store.
func (m *Memory) SetDefault(name, prop string, v value.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.owners[name]; ok {
		o.defaults[prop] = v
	}
}

// Gain implements tween.GainStore. Owners without audio report false.
func (m *Memory) Gain(name string) (float64, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.owners[name]
	if !ok || !o.hasGain {
		return 0, false
	}
	return o.gain, true
}

// SetGain implements tween.GainStore. Setting a gain gives the owner audio.
func (m *Memory) SetGain(name string, gain float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.owners[name]; ok {
		o.gain = gain
		o.hasGain = true
	}
}
