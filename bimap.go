// Copyright 2014 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bimap implements an in-memory ordered bidirectional map.
//
// A Bimap holds (Left, Right) pairs in which every Left is unique under the
// left ordering and every Right is unique under the right ordering. Both
// sides can be searched and traversed in order, and a position in one view
// can be flipped to the position of the same pair in the other view in
// O(1).
//
// Each pair lives in exactly one arena slot which carries two sets of tree
// links, one per ordering, so the left and right views are two binary
// search trees threaded through the same nodes. The trees are not
// balanced: lookups, inserts and erases are O(log n) for random insertion
// order and degrade to O(n) for sorted or adversarial input.
//
// Iterators stay valid, and keep referring to their pair, across every
// mutation except the erase of that pair.
//
// A Bimap is not safe for concurrent use. Read operations may run
// concurrently with each other but not with writes.
package bimap

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// ErrKeyNotFound is returned by AtLeft and AtRight when no pair holds the
// requested key.
var ErrKeyNotFound = errors.New("bimap: key not found")

// LessFunc determines how to order a type. It must provide a strict weak
// ordering: if !less(a, b) && !less(b, a), a and b are treated as equal and
// only one of them can be held on that side.
type LessFunc[T any] func(a, b T) bool

// Less returns a LessFunc using the natural order of T.
func Less[T constraints.Ordered]() LessFunc[T] {
	return func(a, b T) bool { return a < b }
}

// PairIterator allows callers of Ascend* and Descend* to iterate over the
// pairs of a Bimap. When it returns false, iteration stops.
type PairIterator[L, R any] func(left L, right R) bool

// Bimap is an ordered bidirectional map. The zero value is not usable;
// create one with New or NewFunc.
type Bimap[L, R any] struct {
	lessL  LessFunc[L]
	lessR  LessFunc[R]
	nodes  *arena[L, R]
	left   linkTree
	right  linkTree
	length int
	log    logrus.FieldLogger
}

// New creates an empty Bimap ordered by the natural order of both sides.
func New[L, R constraints.Ordered](opts ...Option) *Bimap[L, R] {
	return NewFunc(Less[L](), Less[R](), opts...)
}

// NewFunc creates an empty Bimap ordered by the given functions.
func NewFunc[L, R any](lessL LessFunc[L], lessR LessFunc[R], opts ...Option) *Bimap[L, R] {
	if lessL == nil || lessR == nil {
		panic("bimap: nil less function")
	}
	o := newOptions(opts)
	m := &Bimap[L, R]{
		lessL: lessL,
		lessR: lessR,
		log:   o.logger,
	}
	m.init(newArena[L, R](o.capacity))
	return m
}

func (m *Bimap[L, R]) init(a *arena[L, R]) {
	m.nodes = a
	m.left = linkTree{links: sideLinks[L, R]{a: a, s: leftSide}}
	m.right = linkTree{links: sideLinks[L, R]{a: a, s: rightSide}}
	m.length = 0
}

// probeLeft builds a probe comparing key against the left value of a node.
func (m *Bimap[L, R]) probeLeft(key L) probe {
	return func(h handle) int {
		other := m.nodes.get(h).left
		switch {
		case m.lessL(key, other):
			return -1
		case m.lessL(other, key):
			return 1
		}
		return 0
	}
}

// probeRight builds a probe comparing key against the right value of a node.
func (m *Bimap[L, R]) probeRight(key R) probe {
	return func(h handle) int {
		other := m.nodes.get(h).right
		switch {
		case m.lessR(key, other):
			return -1
		case m.lessR(other, key):
			return 1
		}
		return 0
	}
}

// Insert adds the pair (left, right) and returns an iterator to its left
// view. If left or right is already present, nothing changes and
// EndLeft is returned.
func (m *Bimap[L, R]) Insert(left L, right R) LeftIterator[L, R] {
	return LeftIterator[L, R]{m: m, h: m.insertNode(m.nodes.alloc(left, right))}
}

// insertNode links an allocated node into both trees. On a collision on
// either side the node is removed from whatever tree it already joined and
// released, and nilHandle is returned.
func (m *Bimap[L, R]) insertNode(h handle) handle {
	n := m.nodes.get(h)
	if m.left.insert(h, m.probeLeft(n.left)) != h {
		m.nodes.release(h)
		return nilHandle
	}
	if m.right.insert(h, m.probeRight(n.right)) != h {
		// 右边冲突，回滚左边的插入
		m.left.unlink(h)
		m.log.WithFields(logrus.Fields{
			"left":  n.left,
			"right": n.right,
		}).Debug("bimap: right value already present, insert rolled back")
		m.nodes.release(h)
		return nilHandle
	}
	m.length++
	return h
}

// eraseNode unlinks h from both trees and frees it.
func (m *Bimap[L, R]) eraseNode(h handle) {
	m.left.unlink(h)
	m.right.unlink(h)
	m.nodes.release(h)
	m.length--
}

// EraseLeft removes the pair it refers to and returns an iterator to the
// next left value. Erasing EndLeft is undefined.
func (m *Bimap[L, R]) EraseLeft(it LeftIterator[L, R]) LeftIterator[L, R] {
	next := m.left.next(it.h)
	m.eraseNode(it.h)
	return LeftIterator[L, R]{m: m, h: next}
}

// EraseRight removes the pair it refers to and returns an iterator to the
// next right value. Erasing EndRight is undefined.
func (m *Bimap[L, R]) EraseRight(it RightIterator[L, R]) RightIterator[L, R] {
	next := m.right.next(it.h)
	m.eraseNode(it.h)
	return RightIterator[L, R]{m: m, h: next}
}

// EraseLeftKey removes the pair whose left value equals key and reports
// whether one was found.
func (m *Bimap[L, R]) EraseLeftKey(key L) bool {
	h := m.left.find(m.probeLeft(key))
	if h == nilHandle {
		return false
	}
	m.eraseNode(h)
	return true
}

// EraseRightKey removes the pair whose right value equals key and reports
// whether one was found.
func (m *Bimap[L, R]) EraseRightKey(key R) bool {
	h := m.right.find(m.probeRight(key))
	if h == nilHandle {
		return false
	}
	m.eraseNode(h)
	return true
}

// EraseLeftRange removes the pairs in [first, last) of the left view and
// returns last.
func (m *Bimap[L, R]) EraseLeftRange(first, last LeftIterator[L, R]) LeftIterator[L, R] {
	for first != last {
		first = m.EraseLeft(first)
	}
	return last
}

// EraseRightRange removes the pairs in [first, last) of the right view and
// returns last.
func (m *Bimap[L, R]) EraseRightRange(first, last RightIterator[L, R]) RightIterator[L, R] {
	for first != last {
		first = m.EraseRight(first)
	}
	return last
}

// FindLeft returns an iterator to the pair whose left value equals key, or
// EndLeft.
func (m *Bimap[L, R]) FindLeft(key L) LeftIterator[L, R] {
	return LeftIterator[L, R]{m: m, h: m.left.find(m.probeLeft(key))}
}

// FindRight returns an iterator to the pair whose right value equals key,
// or EndRight.
func (m *Bimap[L, R]) FindRight(key R) RightIterator[L, R] {
	return RightIterator[L, R]{m: m, h: m.right.find(m.probeRight(key))}
}

// LowerBoundLeft returns the first left value not less than key.
func (m *Bimap[L, R]) LowerBoundLeft(key L) LeftIterator[L, R] {
	return LeftIterator[L, R]{m: m, h: m.left.lowerBound(m.probeLeft(key))}
}

// UpperBoundLeft returns the first left value greater than key.
func (m *Bimap[L, R]) UpperBoundLeft(key L) LeftIterator[L, R] {
	return LeftIterator[L, R]{m: m, h: m.left.upperBound(m.probeLeft(key))}
}

// LowerBoundRight returns the first right value not less than key.
func (m *Bimap[L, R]) LowerBoundRight(key R) RightIterator[L, R] {
	return RightIterator[L, R]{m: m, h: m.right.lowerBound(m.probeRight(key))}
}

// UpperBoundRight returns the first right value greater than key.
func (m *Bimap[L, R]) UpperBoundRight(key R) RightIterator[L, R] {
	return RightIterator[L, R]{m: m, h: m.right.upperBound(m.probeRight(key))}
}

// AtLeft returns the right value paired with key. It returns an error
// wrapping ErrKeyNotFound if key is absent.
func (m *Bimap[L, R]) AtLeft(key L) (R, error) {
	it := m.FindLeft(key)
	if it.IsEnd() {
		var zero R
		return zero, errors.Wrapf(ErrKeyNotFound, "at left %v", key)
	}
	return it.Right(), nil
}

// AtRight returns the left value paired with key. It returns an error
// wrapping ErrKeyNotFound if key is absent.
func (m *Bimap[L, R]) AtRight(key R) (L, error) {
	it := m.FindRight(key)
	if it.IsEnd() {
		var zero L
		return zero, errors.Wrapf(ErrKeyNotFound, "at right %v", key)
	}
	return it.Left(), nil
}

// AtLeftOrDefault returns the right value paired with key. If key is
// absent the pair (key, zero R) is inserted first; a pair already holding
// the zero R is erased to make room for it.
func (m *Bimap[L, R]) AtLeftOrDefault(key L) R {
	if it := m.FindLeft(key); !it.IsEnd() {
		return it.Right()
	}
	var zero R
	if evicted := m.FindRight(zero); !evicted.IsEnd() {
		m.log.WithFields(logrus.Fields{
			"left":    key,
			"evicted": evicted.Left(),
		}).Debug("bimap: default right value reassigned")
		m.EraseRight(evicted)
	}
	m.insertNode(m.nodes.alloc(key, zero))
	return zero
}

// AtRightOrDefault returns the left value paired with key. If key is
// absent the pair (zero L, key) is inserted first; a pair already holding
// the zero L is erased to make room for it.
func (m *Bimap[L, R]) AtRightOrDefault(key R) L {
	if it := m.FindRight(key); !it.IsEnd() {
		return it.Left()
	}
	var zero L
	if evicted := m.FindLeft(zero); !evicted.IsEnd() {
		m.log.WithFields(logrus.Fields{
			"right":   key,
			"evicted": evicted.Right(),
		}).Debug("bimap: default left value reassigned")
		m.EraseLeft(evicted)
	}
	m.insertNode(m.nodes.alloc(zero, key))
	return zero
}

// BeginLeft returns an iterator to the smallest left value.
func (m *Bimap[L, R]) BeginLeft() LeftIterator[L, R] {
	return LeftIterator[L, R]{m: m, h: m.left.first()}
}

// EndLeft returns the position one past the largest left value.
func (m *Bimap[L, R]) EndLeft() LeftIterator[L, R] {
	return LeftIterator[L, R]{m: m, h: nilHandle}
}

// BeginRight returns an iterator to the smallest right value.
func (m *Bimap[L, R]) BeginRight() RightIterator[L, R] {
	return RightIterator[L, R]{m: m, h: m.right.first()}
}

// EndRight returns the position one past the largest right value.
func (m *Bimap[L, R]) EndRight() RightIterator[L, R] {
	return RightIterator[L, R]{m: m, h: nilHandle}
}

// Len returns the number of pairs.
func (m *Bimap[L, R]) Len() int {
	return m.length
}

// Empty reports whether the Bimap holds no pairs.
func (m *Bimap[L, R]) Empty() bool {
	return m.length == 0
}

// Equal reports whether m and other hold the same pairs. Values are
// compared with m's ordering functions on both sides.
func (m *Bimap[L, R]) Equal(other *Bimap[L, R]) bool {
	if m.length != other.length {
		return false
	}
	a, b := m.left.first(), other.left.first()
	for a != nilHandle && b != nilHandle {
		na, nb := m.nodes.get(a), other.nodes.get(b)
		if m.lessL(na.left, nb.left) || m.lessL(nb.left, na.left) ||
			m.lessR(na.right, nb.right) || m.lessR(nb.right, na.right) {
			return false
		}
		a, b = m.left.next(a), other.left.next(b)
	}
	return a == nilHandle && b == nilHandle
}

// Clone returns an independent copy of m. Pairs are re-inserted into a
// fresh arena, midpoint first, so the clone's left tree comes out
// balanced whatever the shape of m.
func (m *Bimap[L, R]) Clone() *Bimap[L, R] {
	out := &Bimap[L, R]{lessL: m.lessL, lessR: m.lessR, log: m.log}
	out.init(newArena[L, R](m.length))
	pairs := make([]handle, 0, m.length)
	for h := m.left.first(); h != nilHandle; h = m.left.next(h) {
		pairs = append(pairs, h)
	}
	var fill func(lo, hi int)
	fill = func(lo, hi int) {
		if lo >= hi {
			return
		}
		mid := lo + (hi-lo)/2
		n := m.nodes.get(pairs[mid])
		out.insertNode(out.nodes.alloc(n.left, n.right))
		fill(lo, mid)
		fill(mid+1, hi)
	}
	fill(0, len(pairs))
	return out
}

// Swap exchanges the contents of m and other in O(1). Iterators into
// either Bimap are invalidated.
func (m *Bimap[L, R]) Swap(other *Bimap[L, R]) {
	*m, *other = *other, *m
}

// Clear removes all pairs. Every iterator is invalidated.
func (m *Bimap[L, R]) Clear() {
	m.nodes.reset()
	m.init(m.nodes)
}

// Height returns the depth of the left and right trees. Both are
// between log2(Len()+1) and Len().
func (m *Bimap[L, R]) Height() (left, right int) {
	return m.left.height(), m.right.height()
}

func (m *Bimap[L, R]) ascend(t *linkTree, iterator PairIterator[L, R]) {
	for h := t.first(); h != nilHandle; h = t.next(h) {
		n := m.nodes.get(h)
		if !iterator(n.left, n.right) {
			return
		}
	}
}

func (m *Bimap[L, R]) descend(t *linkTree, iterator PairIterator[L, R]) {
	for h := t.last(); h != nilHandle; h = t.prev(h) {
		n := m.nodes.get(h)
		if !iterator(n.left, n.right) {
			return
		}
	}
}

// AscendLeft calls the iterator for every pair in increasing left order,
// until iterator returns false. The Bimap must not be modified during the
// walk.
func (m *Bimap[L, R]) AscendLeft(iterator PairIterator[L, R]) {
	m.ascend(&m.left, iterator)
}

// DescendLeft calls the iterator for every pair in decreasing left order,
// until iterator returns false.
func (m *Bimap[L, R]) DescendLeft(iterator PairIterator[L, R]) {
	m.descend(&m.left, iterator)
}

// AscendRight calls the iterator for every pair in increasing right order,
// until iterator returns false.
func (m *Bimap[L, R]) AscendRight(iterator PairIterator[L, R]) {
	m.ascend(&m.right, iterator)
}

// DescendRight calls the iterator for every pair in decreasing right order,
// until iterator returns false.
func (m *Bimap[L, R]) DescendRight(iterator PairIterator[L, R]) {
	m.descend(&m.right, iterator)
}

// Print writes both trees to w, one node per line, indented by depth.
// Used for testing/debugging purposes.
func (m *Bimap[L, R]) Print(w io.Writer) {
	label := func(h handle) string {
		n := m.nodes.get(h)
		return fmt.Sprintf("%v <-> %v", n.left, n.right)
	}
	fmt.Fprintln(w, "LEFT:")
	m.left.print(w, label)
	fmt.Fprintln(w, "RIGHT:")
	m.right.print(w, label)
}
