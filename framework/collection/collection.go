// Package collection provides the small ordered containers the container can
// build when a constructor asks for every instance of a capability.
//
// Both containers are named slice types, so the container can construct them
// for any element type at runtime:
//
//	func NewMux(handlers collection.ReadOnly[Handler]) *Mux
//	func NewBus(plugins collection.List[Plugin]) *Bus
package collection

import "iter"

// Sequence is the read contract shared by List and ReadOnly.
type Sequence[T any] interface {
	Len() int
	At(i int) T
	All() iter.Seq[T]
	Slice() []T
}

// ── List ──────────────────────────────────────────────────────────────────────

// List is an ordered, growable list.
type List[T any] []T

// NewList copies items into a new List.
func NewList[T any](items ...T) List[T] {
	return append(List[T](nil), items...)
}

// Len returns the number of items.
func (l List[T]) Len() int { return len(l) }

// At returns the i-th item. It panics if i is out of range.
func (l List[T]) At(i int) T { return l[i] }

// All iterates items in order.
func (l List[T]) All() iter.Seq[T] { return all([]T(l)) }

// Backward iterates items in reverse order.
func (l List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := len(l) - 1; i >= 0; i-- {
			if !yield(l[i]) {
				return
			}
		}
	}
}

// Slice returns a copy of the items.
func (l List[T]) Slice() []T { return append([]T(nil), l...) }

// Add appends items.
func (l *List[T]) Add(items ...T) { *l = append(*l, items...) }

// ReadOnly returns a read-only view sharing the list's current items.
func (l List[T]) ReadOnly() ReadOnly[T] { return ReadOnly[T](l[:len(l):len(l)]) }

// ── ReadOnly ──────────────────────────────────────────────────────────────────

// ReadOnly is an ordered list without mutating methods.
type ReadOnly[T any] []T

// Len returns the number of items.
func (r ReadOnly[T]) Len() int { return len(r) }

// At returns the i-th item. It panics if i is out of range.
func (r ReadOnly[T]) At(i int) T { return r[i] }

// All iterates items in order.
func (r ReadOnly[T]) All() iter.Seq[T] { return all([]T(r)) }

// Slice returns a copy of the items.
func (r ReadOnly[T]) Slice() []T { return append([]T(nil), r...) }

func all[T any](items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}
}
