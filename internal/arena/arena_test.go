package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	value int
	next  *node
}

func TestSlabAllocPointerStability(t *testing.T) {
	s := NewSlab[node](4)
	ptrs := make([]*node, 0, 16)
	for i := 0; i < 16; i++ {
		n := s.Alloc()
		n.value = i
		ptrs = append(ptrs, n)
	}
	for i, p := range ptrs {
		assert.Equal(t, i, p.value, "pointer into slab must stay valid and unaliased across growth")
	}
}

func TestSlabMarkRewind(t *testing.T) {
	s := NewSlab[node](4)
	for i := 0; i < 4; i++ {
		s.Alloc().value = i
	}
	mark := s.Mark()
	for i := 0; i < 10; i++ {
		s.Alloc().value = 100 + i
	}
	require.Equal(t, 14, s.Len())

	s.Rewind(mark)
	require.Equal(t, 4, s.Len())

	// Allocating again after a rewind continues counting from the mark.
	n := s.Alloc()
	n.value = 999
	assert.Equal(t, 5, s.Len())
}

func TestSlabAllocSliceIsContiguous(t *testing.T) {
	s := NewSlab[int](4)
	s.Alloc()
	sl := s.AllocSlice(3)
	require.Len(t, sl, 3)
	sl[0], sl[1], sl[2] = 1, 2, 3
	assert.Equal(t, []int{1, 2, 3}, sl)
}

func TestArenaOfLazilyCreatesSlabs(t *testing.T) {
	a := New()
	s1 := Of[node](a, "node", 8)
	s2 := Of[node](a, "node", 8)
	assert.Same(t, s1, s2, "Of must return the same slab for the same key")

	other := Of[int](a, "int", 8)
	other.Alloc()
	assert.Equal(t, 1, other.Len())
}

func TestArenaCheckpointRewindCoversAllSlabs(t *testing.T) {
	a := New()
	nodes := Of[node](a, "node", 4)
	ints := Of[int](a, "int", 4)

	nodes.Alloc()
	ints.Alloc()

	cp := a.Checkpoint()

	for i := 0; i < 5; i++ {
		nodes.Alloc()
		ints.Alloc()
	}
	require.Equal(t, 6, nodes.Len())
	require.Equal(t, 6, ints.Len())

	a.Rewind(cp)
	assert.Equal(t, 1, nodes.Len())
	assert.Equal(t, 1, ints.Len())
}

func TestArenaRewindHandlesSlabsCreatedAfterCheckpoint(t *testing.T) {
	a := New()
	Of[node](a, "node", 4).Alloc()
	cp := a.Checkpoint()

	// A slab created after the checkpoint was taken has no snapshot;
	// rewinding must clear it rather than leave it with stale entries.
	later := Of[int](a, "int", 4)
	later.Alloc()
	later.Alloc()

	a.Rewind(cp)
	assert.Equal(t, 0, later.Len())
}
