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

package bimap

import (
	"fmt"
	"io"
	"strings"
)

// linkStore resolves a handle to the link triple a tree threads through.
type linkStore interface {
	link(h handle) *link
}

// probe compares a search key against the key of node h. It returns a
// negative number if the key orders before h, positive if after, and 0 if
// neither is less than the other.
type probe func(h handle) int

// linkTree is an unbalanced binary search tree over link triples. It owns
// no storage and knows nothing about payloads: ordering is supplied per
// call as a probe.
//
// The End position is nilHandle. The root has a nilHandle parent, so
// stepping forward from the maximum reaches End and stepping back from End
// reaches the maximum.
type linkTree struct {
	root  handle
	links linkStore
}

func (t *linkTree) link(h handle) *link {
	return t.links.link(h)
}

func (t *linkTree) empty() bool {
	return t.root == nilHandle
}

// insert links n into the tree at the position chosen by p, which must
// compare against n's own key. If a node with an equal key is already
// resident it is returned and the tree is left unchanged; otherwise n is
// returned.
func (t *linkTree) insert(n handle, p probe) handle {
	parent := nilHandle
	cur := &t.root
	for *cur != nilHandle {
		parent = *cur
		c := p(*cur)
		switch {
		case c < 0:
			cur = &t.link(*cur).left
		case c > 0:
			cur = &t.link(*cur).right
		default:
			return *cur
		}
	}
	*cur = n
	l := t.link(n)
	l.left, l.right, l.parent = nilHandle, nilHandle, parent
	return n
}

// lowerBound returns the first node not ordered before the key, or End.
func (t *linkTree) lowerBound(p probe) handle {
	cur, bound := t.root, nilHandle
	for cur != nilHandle {
		c := p(cur)
		switch {
		case c < 0:
			bound = cur
			cur = t.link(cur).left
		case c > 0:
			cur = t.link(cur).right
		default:
			return cur
		}
	}
	return bound
}

// find returns the node whose key is equal to the key, or End.
func (t *linkTree) find(p probe) handle {
	h := t.lowerBound(p)
	if h != nilHandle && p(h) != 0 {
		return nilHandle
	}
	return h
}

// upperBound returns the first node ordered after the key, or End.
func (t *linkTree) upperBound(p probe) handle {
	h := t.lowerBound(p)
	if h != nilHandle && p(h) == 0 {
		h = t.next(h)
	}
	return h
}

// minimum returns the leftmost node of the subtree rooted at h.
func (t *linkTree) minimum(h handle) handle {
	for l := t.link(h).left; l != nilHandle; l = t.link(h).left {
		h = l
	}
	return h
}

// maximum returns the rightmost node of the subtree rooted at h.
func (t *linkTree) maximum(h handle) handle {
	for r := t.link(h).right; r != nilHandle; r = t.link(h).right {
		h = r
	}
	return h
}

func (t *linkTree) first() handle {
	if t.empty() {
		return nilHandle
	}
	return t.minimum(t.root)
}

func (t *linkTree) last() handle {
	if t.empty() {
		return nilHandle
	}
	return t.maximum(t.root)
}

// next returns the in-order successor of h. next of the maximum is End.
// next of End is undefined.
func (t *linkTree) next(h handle) handle {
	l := t.link(h)
	if l.right != nilHandle {
		return t.minimum(l.right)
	}
	for l.parent != nilHandle && t.link(l.parent).right == h {
		h = l.parent
		l = t.link(h)
	}
	return l.parent
}

// prev returns the in-order predecessor of h. prev of End is the maximum;
// prev of the minimum is undefined.
func (t *linkTree) prev(h handle) handle {
	if h == nilHandle {
		return t.last()
	}
	l := t.link(h)
	if l.left != nilHandle {
		return t.maximum(l.left)
	}
	for l.parent != nilHandle && t.link(l.parent).left == h {
		h = l.parent
		l = t.link(h)
	}
	return l.parent
}

// erase unlinks h and returns its in-order successor.
func (t *linkTree) erase(h handle) handle {
	next := t.next(h)
	t.unlink(h)
	return next
}

// unlink removes v from the tree, repairing the links of its neighbours.
// A node with two children first trades tree positions with its in-order
// successor, so no other node changes identity and every other position
// stays valid.
func (t *linkTree) unlink(v handle) {
	for {
		l := t.link(v)
		switch {
		case l.left == nilHandle && l.right == nilHandle:
			t.replaceChild(l.parent, v, nilHandle)
		case l.left == nilHandle:
			t.replaceChild(l.parent, v, l.right)
			t.link(l.right).parent = l.parent
		case l.right == nilHandle:
			t.replaceChild(l.parent, v, l.left)
			t.link(l.left).parent = l.parent
		default:
			// v 有两个孩子：和后继交换位置(不是交换值)，之后 v 至多一个孩子
			t.swap(v, t.minimum(l.right))
			continue
		}
		*l = link{}
		return
	}
}

// replaceChild points whichever child link of parent referenced old at n.
// A nilHandle parent means old is the root.
func (t *linkTree) replaceChild(parent, old, n handle) {
	if parent == nilHandle {
		t.root = n
		return
	}
	p := t.link(parent)
	if p.left == old {
		p.left = n
	} else {
		p.right = n
	}
}

// fixChildren makes the children of h point back at it.
func (t *linkTree) fixChildren(h handle) {
	l := t.link(h)
	if l.left != nilHandle {
		t.link(l.left).parent = h
	}
	if l.right != nilHandle {
		t.link(l.right).parent = h
	}
}

// swap exchanges the tree positions of a and b. b must lie in a's subtree
// or be a's parent; siblings are not supported.
func (t *linkTree) swap(a, b handle) {
	la, lb := t.link(a), t.link(b)
	switch {
	case la.parent == b:
		t.swapWithParent(a)
	case lb.parent == a:
		t.swapWithParent(b)
	default:
		t.replaceChild(la.parent, a, b)
		t.replaceChild(lb.parent, b, a)
		*la, *lb = *lb, *la
		t.fixChildren(a)
		t.fixChildren(b)
	}
}

// swapWithParent moves c into its parent's position and the parent into
// c's. The four links between them need separate handling from the
// general swap.
func (t *linkTree) swapWithParent(c handle) {
	lc := t.link(c)
	p := lc.parent
	lp := t.link(p)
	oldLeft, oldRight := lc.left, lc.right
	if lp.left == c {
		lc.left, lc.right = p, lp.right
	} else {
		lc.left, lc.right = lp.left, p
	}
	t.replaceChild(lp.parent, p, c)
	lc.parent = lp.parent
	lp.left, lp.right = oldLeft, oldRight
	t.fixChildren(p)
	t.fixChildren(c)
}

// height returns the number of nodes on the longest root-to-leaf path.
func (t *linkTree) height() int {
	var walk func(h handle) int
	walk = func(h handle) int {
		if h == nilHandle {
			return 0
		}
		l := t.link(h)
		return 1 + max(walk(l.left), walk(l.right))
	}
	return walk(t.root)
}

// Used for testing/debugging purposes.
// print 层次遍历, right subtree first so the output reads as a sideways tree
func (t *linkTree) print(w io.Writer, label func(h handle) string) {
	var walk func(h handle, level int)
	walk = func(h handle, level int) {
		if h == nilHandle {
			return
		}
		l := t.link(h)
		walk(l.right, level+1)
		fmt.Fprintf(w, "%sNODE:%s\n", strings.Repeat("  ", level), label(h))
		walk(l.left, level+1)
	}
	walk(t.root, 0)
}
