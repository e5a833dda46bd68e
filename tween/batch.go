package tween

import (
	"fmt"

	"github.com/matt-g-everett/valuetx/textcodec"
	"github.com/matt-g-everett/valuetx/value"
)

// BatchEntry is one property driven by a batch transition.
type BatchEntry struct {
	Name string
	Kind value.Kind
	From value.Value
	To   value.Value
}

// BatchList is an ordered set of entries, unique by name.
type BatchList struct {
	entries []BatchEntry
}

// NewBatchList builds a list from entries. Later duplicates win.
func NewBatchList(entries ...BatchEntry) *BatchList {
	l := &BatchList{}
	for _, e := range entries {
		l.Put(e)
	}
	return l
}

// Len returns the number of entries.
func (l *BatchList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// Entries returns a copy of the entries in order.
func (l *BatchList) Entries() []BatchEntry {
	if l == nil {
		return nil
	}
	out := make([]BatchEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Names returns the entry names in order.
func (l *BatchList) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, len(l.entries))
	for i, e := range l.entries {
		names[i] = e.Name
	}
	return names
}

// Get returns the entry called name.
func (l *BatchList) Get(name string) (BatchEntry, bool) {
	if i := l.index(name); i >= 0 {
		return l.entries[i], true
	}
	return BatchEntry{}, false
}

// Put replaces the entry with the same name in place, or appends e.
func (l *BatchList) Put(e BatchEntry) {
	if i := l.index(e.Name); i >= 0 {
		l.entries[i] = e
		return
	}
	l.entries = append(l.entries, e)
}

// Remove deletes the entry called name.
func (l *BatchList) Remove(name string) bool {
	i := l.index(name)
	if i < 0 {
		return false
	}
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	return true
}

func (l *BatchList) index(name string) int {
	if l == nil {
		return -1
	}
	for i, e := range l.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Sync prunes entries whose name no longer resolves in descs. Properties
// not already listed are never added. It returns the pruned names.
func (l *BatchList) Sync(descs []Descriptor) []string {
	var pruned []string
	kept := l.entries[:0]
	for _, e := range l.entries {
		if _, ok := Lookup(descs, e.Name); ok {
			kept = append(kept, e)
		} else {
			pruned = append(pruned, e.Name)
		}
	}
	l.entries = kept
	return pruned
}

// batchKind returns the kind of a batch eligible descriptor, or nil.
func batchKind(d Descriptor) value.Kind {
	if d.Hidden {
		return nil
	}
	switch k := KindOf(d, textcodec.Format{}, false).(type) {
	case value.Integer, value.Real, value.Color:
		return k
	}
	return nil
}

// Add lists the property name of owner. Its target value is seeded from the
// owner's default, or from the current value when there is none. It reports
// false when the property does not exist or cannot be batched.
func (l *BatchList) Add(store Store, owner, name string) bool {
	descs, ok := store.Describe(owner)
	if !ok {
		return false
	}
	d, ok := Lookup(descs, name)
	if !ok {
		return false
	}
	kind := batchKind(d)
	if kind == nil {
		return false
	}
	current, _ := store.Get(owner, name)
	to, ok := store.Default(owner, name)
	if !ok {
		to = current
	}
	l.Put(BatchEntry{
		Name: name,
		Kind: kind,
		From: value.Coerce(kind, current),
		To:   value.Coerce(kind, to),
	})
	return true
}

// Capture sets every entry's target value to the owner's current value.
func (l *BatchList) Capture(store Store, owner string) int {
	n := 0
	for i := range l.entries {
		e := &l.entries[i]
		v, ok := store.Get(owner, e.Name)
		if !ok {
			continue
		}
		if e.Kind != nil {
			v = value.Coerce(e.Kind, v)
		}
		e.To = v
		n++
	}
	return n
}

// ResolveBatch syncs list against owner and resolves one state per
// remaining integer, real or color entry. It returns nil when the owner does
// not exist.
func (r *Resolver) ResolveBatch(owner string, list *BatchList) []*State {
	descs, ok := r.store.Describe(owner)
	if !ok || list == nil {
		return nil
	}
	if pruned := list.Sync(descs); len(pruned) > 0 {
		r.logger.Debug("pruned batch entries", "owner", owner, "names", pruned)
	}
	var states []*State
	for i := range list.entries {
		e := &list.entries[i]
		d, _ := Lookup(descs, e.Name)
		kind := batchKind(d)
		if kind == nil {
			continue
		}
		current, ok := r.store.Get(owner, e.Name)
		if !ok {
			continue
		}
		e.Kind = kind
		e.From = value.Coerce(kind, current)
		e.To = value.Coerce(kind, e.To)
		s := &State{
			Target: TargetRef{Owner: owner, Name: e.Name},
			Kind:   kind,
			From:   e.From,
			To:     e.To,
		}
		if _, ok := kind.(value.Color); ok {
			s.linFrom = value.Linearize(value.AsRGBA(s.From))
			s.linTo = value.Linearize(value.AsRGBA(s.To))
		}
		states = append(states, s)
	}
	return states
}

func (e BatchEntry) String() string {
	return fmt.Sprintf("%s(%v): %v -> %v", e.Name, e.Kind, e.From, e.To)
}
