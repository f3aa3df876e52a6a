package bimap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaAllocRelease(t *testing.T) {
	a := newArena[string, *int](2)
	v := 1
	h1 := a.alloc("a", &v)
	h2 := a.alloc("b", nil)
	require.NotEqual(t, nilHandle, h1)
	require.NotEqual(t, h1, h2)
	require.Equal(t, 2, a.live())
	require.Equal(t, "a", a.get(h1).left)

	a.link(h1, rightSide).parent = h2
	a.release(h1)
	require.Equal(t, 1, a.live())
	// released slots are cleared to allow GC
	require.Equal(t, pairNode[string, *int]{}, *a.get(h1))

	// freelist is LIFO
	h3 := a.alloc("c", nil)
	require.Equal(t, h1, h3)
	require.Equal(t, link{}, *a.link(h3, rightSide))

	a.reset()
	require.Equal(t, 0, a.live())
	require.Equal(t, handle(1), a.alloc("d", nil))
}

func TestArenaSideLinks(t *testing.T) {
	a := newArena[int, int](-1)
	h := a.alloc(1, 2)
	left := sideLinks[int, int]{a: a, s: leftSide}
	right := sideLinks[int, int]{a: a, s: rightSide}
	left.link(h).left = 7
	require.Equal(t, handle(7), a.get(h).links[leftSide].left)
	require.Equal(t, link{}, *right.link(h))
}
