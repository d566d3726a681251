/*
Package rope provides an immutable, versioned, indexable sequence,
intended as the backing representation of list/array values in a
content-addressed data model.  A Rope is a binary tree of small
contiguous blocks of items.  Every edit (Insert, Set, Delete) returns
a new Rope that shares all untouched subtrees with the old one, so
keeping many versions of a large sequence around is cheap, and old
versions are never disturbed by new edits.

Calling this a rope is a stretch: there is neither a concat operation
nor a split operation.  But the structure is largely inspired by
ropes: internal nodes are organized the same way, as (weight, left,
right) tuples where weight is the number of items in the blocks under
the left branch.

Access time stays near-logarithmic through a best-effort heuristic:
after an insert that descends suspiciously deep, the tree is rebuilt
into a shape close to a complete binary tree over its blocks.  The
heuristic can be disabled with SetAutoRebalance for callers that
prefer to Rebalance at controlled points.

Ropes can be stored in anything, like a filesystem, KV store, or
blob store.  Nodes are persisted under their content address, so
versions that share subtrees share storage too, and equal nodes are
stored once.  Persistence is optional; a Rope is also useful as a
plain in-memory persistent (in the functional sense) alternative to
a slice.

Concurrency

Edits never mutate an existing node, so any number of goroutines can
read from the same or different versions without locks, and never
observe a partially-built tree.  Two goroutines editing the same base
version each get their own independent result; arbitrating between
the two is the caller's problem, not this package's.

Inspiration

The immutable data types in Clojure, Haskell, ML and other functional
languages really do make it easier to "reason about" systems; easier
to test, provide a foundation to build more quickly on.
*/
package rope
