package rope

import (
	"fmt"
	"math"
)

// Rebalance heuristic guards.  Empirically chosen; tunable, not a
// correctness requirement.  Below rebalanceMinDepth an insert never
// triggers a rebuild, since shallow trees aren't worth the copying.
// Past that, a rebuild fires only when the insert descended more than
// rebalanceDepthFactor times the depth a near-balanced tree over the
// same blocks would have.
const (
	rebalanceMinDepth    = 30
	rebalanceDepthFactor = 3
)

func canRebalance[T any](maxDepth, length int) bool {
	if maxDepth < rebalanceMinDepth {
		return false
	}
	blocks := length / blockCap[T]()
	return float64(maxDepth) > math.Log2(float64(blocks))*rebalanceDepthFactor
}

// collectBlocks gathers every block in left-to-right order.  Iterative on
// an explicit stack: the whole point of rebalancing is that the tree may
// currently be pathologically deep.
func collectBlocks[T any](root *node[T]) []*node[T] {
	var stack, acc []*node[T]
	n := root
	for {
		if !n.isBlock() {
			stack = append(stack, n.right)
			n = n.left
			continue
		}
		acc = append(acc, n)
		if len(stack) == 0 {
			return acc
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
	}
}

// buildBottomUp pairs blocks into branches, bottom up, consuming them by
// popping from the end of the (reversed) slice.  Returns the subtree and
// its item count.  A lone remaining block at depth 1 pairs with an empty
// block.
func buildBottomUp[T any](depth int, blocks *[]*node[T]) (*node[T], int) {
	if depth == 1 {
		l := popBlock(blocks)
		if l == nil {
			return newBlock[T](nil), 0
		}
		weight := len(l.items)
		r := popBlock(blocks)
		if r == nil {
			return newBranch(l, newBlock[T](nil), weight), weight
		}
		return newBranch(l, r, weight), weight + len(r.items)
	}
	if len(*blocks) == 0 {
		return newBlock[T](nil), 0
	}
	left, weight := buildBottomUp(depth-1, blocks)
	right, m := buildBottomUp(depth-1, blocks)
	return newBranch(left, right, weight), weight + m
}

func popBlock[T any](blocks *[]*node[T]) *node[T] {
	if len(*blocks) == 0 {
		return nil
	}
	n := (*blocks)[len(*blocks)-1]
	*blocks = (*blocks)[:len(*blocks)-1]
	return n
}

func targetDepth(length int) int {
	if length < 2 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(length)))) + 1
}

// rebalanced rebuilds root into a near-complete tree over its blocks if
// forced, or if the heuristic says the insert that produced it went too
// deep.  wantLen is the item count the result must have.
func (r Rope[T]) rebalanced(root *node[T], maxDepth int, force bool, wantLen int) (*node[T], error) {
	if !force {
		if !r.autoRebalance || !canRebalance[T](maxDepth, r.length) {
			return root, nil
		}
	}
	blocks := collectBlocks(root)
	// reverse, so buildBottomUp pops them in original left-to-right order
	for i, j := 0, len(blocks)-1; i < j; i, j = i+1, j-1 {
		blocks[i], blocks[j] = blocks[j], blocks[i]
	}
	if r.debug {
		fmt.Printf("rebalancing %d blocks, maxDepth:%d\n", len(blocks), maxDepth)
	}
	depth := targetDepth(wantLen)
	// deleted-out blocks can outnumber what wantLen implies; deepen until
	// they all fit rather than dropping any
	for 1<<depth < len(blocks) {
		depth++
	}
	newRoot, n := buildBottomUp(depth, &blocks)
	if n != wantLen {
		return nil, fmt.Errorf("rebalance rebuilt %d items, want %d: %w", n, wantLen, ErrCorrupt)
	}
	return newRoot, nil
}
