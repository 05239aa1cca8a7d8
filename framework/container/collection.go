package container

import "reflect"

// collectionShape classifies a parameter type that asks for every instance of
// a capability instead of the single one.
type collectionShape int

const (
	notCollection collectionShape = iota
	seqShape                      // iter.Seq[X]
	indexedSeqShape               // iter.Seq2[int, X]
	containerShape                // named slice of X, e.g. collection.List[X]
	containerPtrShape             // pointer to a named slice of X
	sliceShape                    // []X
)

var (
	boolType = reflect.TypeFor[bool]()
	intType  = reflect.TypeFor[int]()
)

// collectionOf reports whether t requests all instances of some capability,
// and which one. Shapes are checked in priority order: sequence functions,
// concrete containers, then bare slices.
func collectionOf(t reflect.Type) (collectionShape, reflect.Type) {
	if t == nil {
		return notCollection, nil
	}
	if elem, ok := seqElem(t); ok {
		return seqShape, elem
	}
	if elem, ok := seq2Elem(t); ok {
		return indexedSeqShape, elem
	}
	if t.Kind() == reflect.Slice && t.Name() != "" {
		return containerShape, t.Elem()
	}
	if t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Slice && t.Elem().Name() != "" {
		return containerPtrShape, t.Elem().Elem()
	}
	if t.Kind() == reflect.Slice {
		return sliceShape, t.Elem()
	}
	return notCollection, nil
}

// seqElem matches func(yield func(X) bool).
func seqElem(t reflect.Type) (reflect.Type, bool) {
	yield, ok := yieldFunc(t)
	if !ok || yield.NumIn() != 1 {
		return nil, false
	}
	return yield.In(0), true
}

// seq2Elem matches func(yield func(int, X) bool).
func seq2Elem(t reflect.Type) (reflect.Type, bool) {
	yield, ok := yieldFunc(t)
	if !ok || yield.NumIn() != 2 || yield.In(0) != intType {
		return nil, false
	}
	return yield.In(1), true
}

func yieldFunc(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 || t.IsVariadic() {
		return nil, false
	}
	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.NumOut() != 1 || yield.Out(0) != boolType || yield.IsVariadic() {
		return nil, false
	}
	return yield, true
}

// collect builds the value for a collection-shaped parameter of type t. It
// never fails: a capability with no registrations yields an empty collection.
func collect(reg *Registry, shape collectionShape, t, elem reflect.Type) reflect.Value {
	items := instancesOf(reg, elem)

	switch shape {
	case seqShape:
		return reflect.MakeFunc(t, func(args []reflect.Value) []reflect.Value {
			yield := args[0]
			for i := 0; i < items.Len(); i++ {
				if !yield.Call([]reflect.Value{items.Index(i)})[0].Bool() {
					break
				}
			}
			return nil
		})
	case indexedSeqShape:
		return reflect.MakeFunc(t, func(args []reflect.Value) []reflect.Value {
			yield := args[0]
			for i := 0; i < items.Len(); i++ {
				if !yield.Call([]reflect.Value{reflect.ValueOf(i), items.Index(i)})[0].Bool() {
					break
				}
			}
			return nil
		})
	case containerShape:
		return items.Convert(t)
	case containerPtrShape:
		ptr := reflect.New(t.Elem())
		ptr.Elem().Set(items.Convert(t.Elem()))
		return ptr
	default:
		return items
	}
}

// instancesOf returns a []elem holding every instance registered under elem,
// typed exactly as elem.
func instancesOf(reg *Registry, elem reflect.Type) reflect.Value {
	all := reg.All(elem)
	items := reflect.MakeSlice(reflect.SliceOf(elem), len(all), len(all))
	for i, inst := range all {
		items.Index(i).Set(reflect.ValueOf(inst))
	}
	return items
}
