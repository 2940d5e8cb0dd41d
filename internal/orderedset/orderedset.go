// Package orderedset implements a mutable ordered multiset backed by a
// red-black tree, keyed by a caller-supplied three-way comparator.
//
// It exists because the simulator needs erase-by-identity (aging pulls a
// specific entry out of the ready set) in addition to extract-min; a
// binary heap can't do the former in O(log n). A balanced BST gives
// insert, erase-by-cursor, find, peek-min, pop-min, and ascending
// iteration all in O(log n) (iteration is O(n) total), and preserves
// insertion order among comparator-equivalent elements.
package orderedset

// Comparator orders two elements of T. It returns a positive value if a
// pops before b, a negative value if b pops before a, and zero if they
// are equivalent. Comparators must define a total order; ties should be
// broken deterministically by the caller (e.g. by a unique id) so that
// iteration order is fully determined.
type Comparator[T any] func(a, b T) int

type color bool

const (
	red   color = true
	black color = false
)

// Cursor is a stable handle to an element stored in a Set. It remains
// valid across insertions and erasures of other elements; erasing the
// element a Cursor refers to invalidates only that Cursor.
type Cursor[T any] struct {
	n *node[T]
}

// Valid reports whether the cursor refers to a live element.
func (c *Cursor[T]) Valid() bool {
	return c != nil && c.n != nil
}

// Value dereferences the cursor. Calling Value on an invalid cursor
// panics: dereferencing past the end is a programming error, not a
// recoverable condition.
func (c *Cursor[T]) Value() T {
	return c.n.data
}

type node[T any] struct {
	data                T
	color               color
	left, right, parent *node[T]
}

// Set is an ordered multiset of T under cmp. The zero value is not
// usable; construct with New.
type Set[T any] struct {
	root *node[T]
	cmp  Comparator[T]
	size int
}

// New creates an empty Set ordered by cmp.
func New[T any](cmp Comparator[T]) *Set[T] {
	return &Set[T]{cmp: cmp}
}

// Size returns the number of elements in the set.
func (s *Set[T]) Size() int { return s.size }

// Empty reports whether the set has no elements.
func (s *Set[T]) Empty() bool { return s.size == 0 }

// less reports whether a pops strictly before b under cmp.
func (s *Set[T]) less(a, b T) bool { return s.cmp(a, b) > 0 }

// PeekMin returns the minimum element (the one that pops first).
// Calling PeekMin on an empty set is a programming error and panics.
func (s *Set[T]) PeekMin() T {
	if s.root == nil {
		panic("orderedset: PeekMin on empty set")
	}
	return treeMinimum(s.root).data
}

// PeekMinCursor returns a cursor to the minimum element, or a nil
// cursor if the set is empty.
func (s *Set[T]) PeekMinCursor() *Cursor[T] {
	if s.root == nil {
		return nil
	}
	return &Cursor[T]{n: treeMinimum(s.root)}
}

// PopMin removes the minimum element. Calling PopMin on an empty set is
// a programming error and panics.
func (s *Set[T]) PopMin() {
	if s.root == nil {
		panic("orderedset: PopMin on empty set")
	}
	s.deleteNode(treeMinimum(s.root))
}

// Insert adds x to the set and returns a cursor to the new element.
func (s *Set[T]) Insert(x T) *Cursor[T] {
	n := &node[T]{data: x, color: red}
	s.insertNode(n)
	s.size++
	return &Cursor[T]{n: n}
}

// Find returns a cursor to any element equivalent to x under cmp, or
// nil if none exists.
func (s *Set[T]) Find(x T) *Cursor[T] {
	n := s.root
	for n != nil {
		c := s.cmp(x, n.data)
		switch {
		case c == 0:
			return &Cursor[T]{n: n}
		case c > 0:
			n = n.left
		default:
			n = n.right
		}
	}
	return nil
}

// Erase removes the element referenced by cur. Erasing a nil cursor is
// a no-op.
func (s *Set[T]) Erase(cur *Cursor[T]) {
	if cur == nil || cur.n == nil {
		return
	}
	s.deleteNode(cur.n)
	cur.n = nil
}

// Iterate returns the elements of the set in ascending (pops-first)
// order. The slice is a snapshot; it is not invalidated by later
// mutation of the set, but it also won't reflect that mutation.
func (s *Set[T]) Iterate() []T {
	out := make([]T, 0, s.size)
	var walk func(n *node[T])
	walk = func(n *node[T]) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n.data)
		walk(n.right)
	}
	walk(s.root)
	return out
}

func treeMinimum[T any](n *node[T]) *node[T] {
	for n.left != nil {
		n = n.left
	}
	return n
}

func nodeColor[T any](n *node[T]) color {
	if n == nil {
		return black
	}
	return n.color
}

// --- rotations ---

func (s *Set[T]) rotateLeft(x *node[T]) {
	y := x.right
	x.right = y.left
	if y.left != nil {
		y.left.parent = x
	}
	y.parent = x.parent
	if x.parent == nil {
		s.root = y
	} else if x == x.parent.left {
		x.parent.left = y
	} else {
		x.parent.right = y
	}
	y.left = x
	x.parent = y
}

func (s *Set[T]) rotateRight(x *node[T]) {
	y := x.left
	x.left = y.right
	if y.right != nil {
		y.right.parent = x
	}
	y.parent = x.parent
	if x.parent == nil {
		s.root = y
	} else if x == x.parent.right {
		x.parent.right = y
	} else {
		x.parent.left = y
	}
	y.right = x
	x.parent = y
}

// --- insertion ---

func (s *Set[T]) insertNode(z *node[T]) {
	var y *node[T]
	x := s.root
	for x != nil {
		y = x
		if s.less(z.data, x.data) {
			x = x.left
		} else {
			x = x.right
		}
	}
	z.parent = y
	switch {
	case y == nil:
		s.root = z
	case s.less(z.data, y.data):
		y.left = z
	default:
		y.right = z
	}
	s.insertFixup(z)
}

func (s *Set[T]) insertFixup(z *node[T]) {
	for z.parent != nil && z.parent.color == red {
		if z.parent == z.parent.parent.left {
			y := z.parent.parent.right
			if nodeColor(y) == red {
				z.parent.color = black
				y.color = black
				z.parent.parent.color = red
				z = z.parent.parent
			} else {
				if z == z.parent.right {
					z = z.parent
					s.rotateLeft(z)
				}
				z.parent.color = black
				z.parent.parent.color = red
				s.rotateRight(z.parent.parent)
			}
		} else {
			y := z.parent.parent.left
			if nodeColor(y) == red {
				z.parent.color = black
				y.color = black
				z.parent.parent.color = red
				z = z.parent.parent
			} else {
				if z == z.parent.left {
					z = z.parent
					s.rotateRight(z)
				}
				z.parent.color = black
				z.parent.parent.color = red
				s.rotateLeft(z.parent.parent)
			}
		}
		if z.parent == nil {
			break
		}
	}
	s.root.color = black
}

// --- deletion ---

func (s *Set[T]) transplant(u, v *node[T]) {
	switch {
	case u.parent == nil:
		s.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	if v != nil {
		v.parent = u.parent
	}
}

func (s *Set[T]) deleteNode(z *node[T]) {
	y := z
	yOrigColor := y.color
	var x, xParent *node[T]

	switch {
	case z.left == nil:
		x = z.right
		xParent = z.parent
		s.transplant(z, z.right)
	case z.right == nil:
		x = z.left
		xParent = z.parent
		s.transplant(z, z.left)
	default:
		y = treeMinimum(z.right)
		yOrigColor = y.color
		x = y.right
		if y.parent == z {
			xParent = y
		} else {
			xParent = y.parent
			s.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		s.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}

	s.size--
	if yOrigColor == black {
		s.deleteFixup(x, xParent)
	}
}

// deleteFixup restores red-black invariants after a deletion. x may be
// nil (a black leaf was removed); xParent tracks its logical parent
// since a nil node carries no parent pointer of its own.
func (s *Set[T]) deleteFixup(x, xParent *node[T]) {
	for x != s.root && nodeColor(x) == black {
		if xParent == nil {
			break
		}
		if x == xParent.left {
			w := xParent.right
			if nodeColor(w) == red {
				w.color = black
				xParent.color = red
				s.rotateLeft(xParent)
				w = xParent.right
			}
			if nodeColor(w.left) == black && nodeColor(w.right) == black {
				w.color = red
				x = xParent
				xParent = x.parent
			} else {
				if nodeColor(w.right) == black {
					if w.left != nil {
						w.left.color = black
					}
					w.color = red
					s.rotateRight(w)
					w = xParent.right
				}
				w.color = xParent.color
				xParent.color = black
				if w.right != nil {
					w.right.color = black
				}
				s.rotateLeft(xParent)
				x = s.root
				xParent = nil
			}
		} else {
			w := xParent.left
			if nodeColor(w) == red {
				w.color = black
				xParent.color = red
				s.rotateRight(xParent)
				w = xParent.left
			}
			if nodeColor(w.right) == black && nodeColor(w.left) == black {
				w.color = red
				x = xParent
				xParent = x.parent
			} else {
				if nodeColor(w.left) == black {
					if w.right != nil {
						w.right.color = black
					}
					w.color = red
					s.rotateLeft(w)
					w = xParent.left
				}
				w.color = xParent.color
				xParent.color = black
				if w.left != nil {
					w.left.color = black
				}
				s.rotateRight(xParent)
				x = s.root
				xParent = nil
			}
		}
	}
	if x != nil {
		x.color = black
	}
}
