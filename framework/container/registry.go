package container

import "reflect"

// Registry maps a capability (a reflect.Type, usually an interface type) to
// the set of instances registered under it.
//
// Keys compare by type identity. Each set keeps insertion order and never holds
// the same instance twice. The registry does not own its instances and has no
// way to remove them.
//
// Pointers to zero-size values have no identity in Go (two of them may share
// an address), so Add rejects them. Register such types by value or give them
// a field.
//
// Registry does no locking; callers serialize Add against every other call.
type Registry struct {
	entries map[reflect.Type][]any

	// order of first registration, for stable introspection
	order []reflect.Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[reflect.Type][]any)}
}

// Add inserts instance into the set for capability. Adding the same pair twice
// is a no-op.
func (r *Registry) Add(capability reflect.Type, instance any) error {
	if capability == nil {
		return &ConfigurationError{Reason: "nil capability"}
	}
	if instance == nil {
		return &ConfigurationError{Type: capability, Reason: "nil instance"}
	}
	if it := reflect.TypeOf(instance); !it.AssignableTo(capability) {
		return &ConfigurationError{Type: capability, Reason: "instance of type " + it.String() + " is not assignable"}
	} else if it.Kind() == reflect.Pointer && it.Elem().Size() == 0 {
		return &ConfigurationError{Type: capability, Reason: "instance of type " + it.String() + " points to a zero-size value and has no identity"}
	}

	set, seen := r.entries[capability]
	for _, existing := range set {
		if sameInstance(existing, instance) {
			return nil
		}
	}
	if !seen {
		r.order = append(r.order, capability)
	}
	r.entries[capability] = append(set, instance)
	return nil
}

// Contains reports whether capability has at least one registered instance.
func (r *Registry) Contains(capability reflect.Type) bool {
	return len(r.entries[capability]) > 0
}

// Len returns the number of instances registered under capability.
func (r *Registry) Len(capability reflect.Type) int {
	return len(r.entries[capability])
}

// Single returns the instance registered under capability when there is
// exactly one. Zero and several registrations both report false.
func (r *Registry) Single(capability reflect.Type) (any, bool) {
	set := r.entries[capability]
	if len(set) != 1 {
		return nil, false
	}
	return set[0], true
}

// Get is the strict form of Single.
func (r *Registry) Get(capability reflect.Type) (any, error) {
	inst, ok := r.Single(capability)
	if !ok {
		return nil, &NotFoundError{Capability: capability, Candidates: r.Len(capability)}
	}
	return inst, nil
}

// All returns a copy of every instance registered under capability, in
// insertion order. The result is never nil.
func (r *Registry) All(capability reflect.Type) []any {
	set := r.entries[capability]
	out := make([]any, len(set))
	copy(out, set)
	return out
}

// Capabilities returns every capability with at least one registration, in
// the order they were first registered.
func (r *Registry) Capabilities() []reflect.Type {
	out := make([]reflect.Type, len(r.order))
	copy(out, r.order)
	return out
}

// sameInstance compares by reference for reference kinds and by value for
// everything else that is comparable. Funcs and other uncomparable values are
// never equal.
func sameInstance(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if !va.Type().Comparable() {
		return false
	}
	// Structs and arrays can still hold uncomparable interface values.
	defer func() { _ = recover() }()
	return a == b
}
