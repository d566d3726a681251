package rope

import "unsafe"

// leafCapBytes bounds the byte size of a block's items, and is the only
// trigger for splitting a block in two.
const leafCapBytes = 1024

// node is either a block of contiguous items (left==nil) or a branch.
// Nodes are never modified after construction; edits rebuild the path from
// the root to the edited position and share every untouched sibling.
type node[T any] struct {
	weight int // branch: number of items under left
	left   *node[T]
	right  *node[T]
	items  []T // block only
}

func newBlock[T any](items []T) *node[T] {
	return &node[T]{items: items}
}

func newBranch[T any](left, right *node[T], weight int) *node[T] {
	return &node[T]{weight: weight, left: left, right: right}
}

func (n *node[T]) isBlock() bool { return n.left == nil }

func elemSize[T any]() int {
	s := int(unsafe.Sizeof(*new(T)))
	if s == 0 {
		// struct{} and friends; avoids a zero divisor in blockCap.
		s = 1
	}
	return s
}

// blockCap is the item capacity C of a block for the element type.
func blockCap[T any]() int {
	return leafCapBytes/elemSize[T]() + 1
}

func (n *node[T]) count() int {
	if n.isBlock() {
		return len(n.items)
	}
	return n.weight + n.right.count()
}

// footprint estimates the byte cost of the subtree, counting allocated
// block capacity rather than asking the allocator.
func (n *node[T]) footprint() int {
	fp := int(unsafe.Sizeof(*n))
	if n.isBlock() {
		return fp + cap(n.items)*elemSize[T]()
	}
	return fp + n.left.footprint() + n.right.footprint()
}

// get resolves an offset to its item.  Iterative, so even a badly skewed
// tree can't blow the goroutine stack on a read.
func (n *node[T]) get(off int) T {
	for !n.isBlock() {
		if off < n.weight {
			n = n.left
		} else {
			off -= n.weight
			n = n.right
		}
	}
	return n.items[off]
}

// insert rewrites the path from n to the block containing off, splicing
// value in, and returns the new subtree along with the maximum depth
// reached (consumed by the rebalance heuristic).
func (n *node[T]) insert(off int, value T, depth int) (*node[T], int) {
	depth++
	if !n.isBlock() {
		if off < n.weight {
			left, maxDepth := n.left.insert(off, value, depth)
			return newBranch(left, n.right, n.weight+1), maxDepth
		}
		right, maxDepth := n.right.insert(off-n.weight, value, depth)
		return newBranch(n.left, right, n.weight), maxDepth
	}
	if len(n.items) < blockCap[T]() {
		items := make([]T, 0, len(n.items)+1)
		items = append(items, n.items[:off]...)
		items = append(items, value)
		items = append(items, n.items[off:]...)
		return newBlock(items), depth
	}
	return splitInsert(n.items, off, value), depth
}

// splitInsert splits a full block into two halves and splices the new value
// into whichever half its offset lands in.  The resulting branch's weight is
// the left block's final size.
func splitInsert[T any](items []T, off int, value T) *node[T] {
	var ld, rd []T
	switch m := len(items) / 2; len(items) {
	case 0:
	case 1:
		ld = append(ld, items...)
	default:
		ld = append(ld, items[:m]...)
		rd = append(rd, items[m:]...)
	}
	if off < len(ld) {
		ld = append(ld, value)
		copy(ld[off+1:], ld[off:])
		ld[off] = value
	} else {
		off -= len(ld)
		rd = append(rd, value)
		copy(rd[off+1:], rd[off:])
		rd[off] = value
	}
	return newBranch(newBlock(ld), newBlock(rd), len(ld))
}

func (n *node[T]) set(off int, value T) *node[T] {
	if !n.isBlock() {
		if off < n.weight {
			return newBranch(n.left.set(off, value), n.right, n.weight)
		}
		return newBranch(n.left, n.right.set(off-n.weight, value), n.weight)
	}
	items := append([]T(nil), n.items...)
	items[off] = value
	return newBlock(items)
}

// delete mirrors insert's weight bookkeeping in reverse: the branch weight
// is decremented exactly when the deleted offset fell in the left subtree.
func (n *node[T]) delete(off int) *node[T] {
	if !n.isBlock() {
		if off < n.weight {
			return newBranch(n.left.delete(off), n.right, n.weight-1)
		}
		return newBranch(n.left, n.right.delete(off-n.weight), n.weight)
	}
	items := make([]T, 0, len(n.items)-1)
	items = append(items, n.items[:off]...)
	items = append(items, n.items[off+1:]...)
	return newBlock(items)
}
