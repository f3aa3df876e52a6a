package bimap

/*
* @CreateTime: 2021/2/25 15:01
* @Author: hujiaming
* @Description: node arena shared by the left and right trees
 */

// handle addresses a node slot in the arena. Slot 0 is never handed out,
// so the zero handle serves both as an empty link and as the End position.
type handle uint32

const nilHandle handle = 0

// side selects which of a node's two link triples a tree threads through.
type side uint8

const (
	leftSide side = iota
	rightSide
)

// link is one set of structural pointers of a node inside one tree.
type link struct {
	left, right, parent handle
}

// pairNode is one logical pair. A single slot backs both orderings.
type pairNode[L, R any] struct {
	left  L
	right R
	links [2]link
}

// arena owns every pairNode of a Bimap. Freed slots go onto a freelist and
// are reused LIFO by later inserts.
// arena 当成 node 的 pool 使用，与 btree 的 FreeList 类似，但不加锁
type arena[L, R any] struct {
	nodes    []pairNode[L, R]
	freelist []handle
}

func newArena[L, R any](capacity int) *arena[L, R] {
	if capacity < 0 {
		capacity = 0
	}
	return &arena[L, R]{nodes: make([]pairNode[L, R], 1, capacity+1)}
}

// alloc stores a new unlinked pair and returns its handle.
func (a *arena[L, R]) alloc(left L, right R) (h handle) {
	index := len(a.freelist) - 1 // 取最后一个
	if index < 0 {
		a.nodes = append(a.nodes, pairNode[L, R]{left: left, right: right})
		return handle(len(a.nodes) - 1)
	}
	h = a.freelist[index]
	a.freelist = a.freelist[:index]
	n := &a.nodes[h]
	n.left, n.right = left, right
	return h
}

// release returns a slot to the freelist. The slot must already be
// unlinked from both trees.
func (a *arena[L, R]) release(h handle) {
	// clear to allow GC
	a.nodes[h] = pairNode[L, R]{}
	a.freelist = append(a.freelist, h)
}

// reset drops every node at once, keeping the backing storage.
func (a *arena[L, R]) reset() {
	var zero pairNode[L, R]
	for i := range a.nodes {
		a.nodes[i] = zero
	}
	a.nodes = a.nodes[:1]
	a.freelist = a.freelist[:0]
}

func (a *arena[L, R]) get(h handle) *pairNode[L, R] {
	return &a.nodes[h]
}

func (a *arena[L, R]) link(h handle, s side) *link {
	return &a.nodes[h].links[s]
}

// live is the number of slots currently holding a pair.
func (a *arena[L, R]) live() int {
	return len(a.nodes) - 1 - len(a.freelist)
}

// sideLinks exposes one side of the arena to a linkTree.
type sideLinks[L, R any] struct {
	a *arena[L, R]
	s side
}

func (v sideLinks[L, R]) link(h handle) *link {
	return v.a.link(h, v.s)
}
