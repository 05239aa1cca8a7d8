package collection_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-ioc/framework/collection"
)

func TestList(t *testing.T) {
	t.Parallel()

	l := collection.NewList(1, 2, 3)
	l.Add(4)

	assert.Equal(t, 4, l.Len())
	assert.Equal(t, 2, l.At(1))
	assert.Equal(t, []int{1, 2, 3, 4}, slices.Collect(l.All()))
	assert.Equal(t, []int{4, 3, 2, 1}, slices.Collect(l.Backward()))
}

func TestList_SliceIsCopy(t *testing.T) {
	t.Parallel()

	l := collection.NewList("a", "b")
	s := l.Slice()
	s[0] = "z"

	assert.Equal(t, "a", l.At(0))
}

func TestList_ReadOnlyDoesNotSeeLaterAdds(t *testing.T) {
	t.Parallel()

	l := collection.NewList(1, 2)
	ro := l.ReadOnly()
	l.Add(3)

	assert.Equal(t, 2, ro.Len())
	assert.Equal(t, []int{1, 2}, ro.Slice())
}

func TestReadOnly(t *testing.T) {
	t.Parallel()

	ro := collection.ReadOnly[string]{"x", "y"}

	var seq collection.Sequence[string] = ro
	assert.Equal(t, 2, seq.Len())
	assert.Equal(t, "y", seq.At(1))
	assert.Equal(t, []string{"x", "y"}, slices.Collect(seq.All()))
}

func TestAll_StopsEarly(t *testing.T) {
	t.Parallel()

	var got []int
	for v := range collection.NewList(1, 2, 3).All() {
		got = append(got, v)
		if v == 2 {
			break
		}
	}
	require.Equal(t, []int{1, 2}, got)
}

func TestSequence_Satisfied(t *testing.T) {
	t.Parallel()

	var _ collection.Sequence[int] = collection.List[int]{}
	var _ collection.Sequence[int] = collection.ReadOnly[int]{}
}
