package rope

import (
	"fmt"
	"unsafe"
)

// Rope is an immutable, indexable sequence of items of type T.  The zero
// Rope is not usable; start with New.  A Rope is a small value wrapping a
// shared tree, and is cheap to copy; edits return a new Rope and leave the
// receiver's contents untouched.
type Rope[T any] struct {
	length        int
	root          *node[T]
	autoRebalance bool
	debug         bool
}

// New returns an empty sequence.
func New[T any]() Rope[T] {
	return Rope[T]{root: newBlock[T](nil), autoRebalance: true}
}

// SetAutoRebalance toggles whether inserts consult the rebalance heuristic.
// Disabling it skips rebalancing entirely until Rebalance is called
// explicitly, which callers sensitive to worst-case insert latency may
// prefer.  On by default.
func (r *Rope[T]) SetAutoRebalance(enabled bool) *Rope[T] {
	r.autoRebalance = enabled
	return r
}

// Len returns the number of items in the sequence.
func (r Rope[T]) Len() int {
	return r.length
}

// Footprint estimates the byte cost of the sequence's in-memory
// representation.  It is an estimate, not an exact allocator query.
func (r Rope[T]) Footprint() int {
	return int(unsafe.Sizeof(r)) + r.root.footprint()
}

// Height returns the maximum root-to-block depth of the current tree,
// O(log n) when balanced.
func (r Rope[T]) Height() int {
	type frame struct {
		n     *node[T]
		depth int
	}
	stack := []frame{{r.root, 1}}
	max := 0
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.n.isBlock() {
			if f.depth > max {
				max = f.depth
			}
			continue
		}
		stack = append(stack,
			frame{f.n.left, f.depth + 1},
			frame{f.n.right, f.depth + 1})
	}
	return max
}

// Get returns the item at the given index.
func (r Rope[T]) Get(index int) (T, error) {
	if index < 0 || index >= r.length {
		var zero T
		return zero, fmt.Errorf("get %d, length %d: %w", index, r.length, ErrIndexOutOfBounds)
	}
	return r.root.get(index), nil
}

// Insert returns a new sequence with value inserted before the given
// offset.  Inserting at Len() appends.  If the insert descended deep
// enough to trip the rebalance heuristic, the new sequence's tree is
// rebuilt before returning.
func (r Rope[T]) Insert(off int, value T) (Rope[T], error) {
	if off < 0 || off > r.length {
		return Rope[T]{}, fmt.Errorf("insert at %d, length %d: %w", off, r.length, ErrIndexOutOfBounds)
	}
	root, maxDepth := r.root.insert(off, value, 0)
	root, err := r.rebalanced(root, maxDepth, false, r.length+1)
	if err != nil {
		return Rope[T]{}, err
	}
	return r.with(root, r.length+1), nil
}

// Set returns a new sequence with the item at the given offset replaced.
func (r Rope[T]) Set(off int, value T) (Rope[T], error) {
	if off < 0 || off >= r.length {
		return Rope[T]{}, fmt.Errorf("set %d, length %d: %w", off, r.length, ErrIndexOutOfBounds)
	}
	return r.with(r.root.set(off, value), r.length), nil
}

// Delete returns a new sequence with the item at the given offset removed.
func (r Rope[T]) Delete(off int) (Rope[T], error) {
	if off < 0 || off >= r.length {
		return Rope[T]{}, fmt.Errorf("delete %d, length %d: %w", off, r.length, ErrIndexOutOfBounds)
	}
	return r.with(r.root.delete(off), r.length-1), nil
}

// Rebalance returns a new sequence with identical contents but a freshly
// rebuilt, balanced tree, regardless of the heuristic or the
// auto-rebalance flag.
func (r Rope[T]) Rebalance() (Rope[T], error) {
	root, err := r.rebalanced(r.root, 0, true, r.length)
	if err != nil {
		return Rope[T]{}, err
	}
	return r.with(root, r.length), nil
}

func (r Rope[T]) with(root *node[T], length int) Rope[T] {
	return Rope[T]{
		length:        length,
		root:          root,
		autoRebalance: r.autoRebalance,
		debug:         r.debug,
	}
}
