package bimap

// LeftIterator is a position in the left view of a Bimap: either a pair or
// EndLeft. Iterators are comparable with ==.
//
// An iterator stays valid until its pair is erased. Dereferencing,
// stepping past or erasing EndLeft is undefined.
type LeftIterator[L, R any] struct {
	m *Bimap[L, R]
	h handle
}

// RightIterator is a position in the right view of a Bimap. See
// LeftIterator.
type RightIterator[L, R any] struct {
	m *Bimap[L, R]
	h handle
}

// IsEnd reports whether it is EndLeft.
func (it LeftIterator[L, R]) IsEnd() bool { return it.h == nilHandle }

// Left returns the left value of the pair.
func (it LeftIterator[L, R]) Left() L { return it.m.nodes.get(it.h).left }

// Right returns the right value of the pair, the same as it.Flip().Right().
func (it LeftIterator[L, R]) Right() R { return it.m.nodes.get(it.h).right }

// Next moves to the next larger left value.
func (it LeftIterator[L, R]) Next() LeftIterator[L, R] {
	return LeftIterator[L, R]{m: it.m, h: it.m.left.next(it.h)}
}

// Prev moves to the next smaller left value. Prev of EndLeft is the
// largest left value.
func (it LeftIterator[L, R]) Prev() LeftIterator[L, R] {
	return LeftIterator[L, R]{m: it.m, h: it.m.left.prev(it.h)}
}

// Flip returns the position of the same pair in the right view. EndLeft
// flips to EndRight.
func (it LeftIterator[L, R]) Flip() RightIterator[L, R] {
	return RightIterator[L, R]{m: it.m, h: it.h}
}

// IsEnd reports whether it is EndRight.
func (it RightIterator[L, R]) IsEnd() bool { return it.h == nilHandle }

// Left returns the left value of the pair, the same as it.Flip().Left().
func (it RightIterator[L, R]) Left() L { return it.m.nodes.get(it.h).left }

// Right returns the right value of the pair.
func (it RightIterator[L, R]) Right() R { return it.m.nodes.get(it.h).right }

// Next moves to the next larger right value.
func (it RightIterator[L, R]) Next() RightIterator[L, R] {
	return RightIterator[L, R]{m: it.m, h: it.m.right.next(it.h)}
}

// Prev moves to the next smaller right value. Prev of EndRight is the
// largest right value.
func (it RightIterator[L, R]) Prev() RightIterator[L, R] {
	return RightIterator[L, R]{m: it.m, h: it.m.right.prev(it.h)}
}

// Flip returns the position of the same pair in the left view. EndRight
// flips to EndLeft.
func (it RightIterator[L, R]) Flip() LeftIterator[L, R] {
	return LeftIterator[L, R]{m: it.m, h: it.h}
}
