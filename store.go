package rope

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/minio/blake2b-simd"
)

// Persist is the interface for loading and storing serialized tree nodes.
// The given string identity corresponds to the content, which is immutable
// (never modified).
type Persist interface {
	// Store makes the given bytes accessible by the given name.
	Store(ctx context.Context, name string, data []byte) error
	// Load retrieves the previously-stored bytes by the given name.
	Load(ctx context.Context, name string) ([]byte, error)
}

// RemoteConfig controls how nodes are persisted and loaded.
type RemoteConfig struct {
	// StoreImmutablePartsWith is used to store and load serialized nodes.
	StoreImmutablePartsWith Persist

	// Marshal function for a single item, defaults to JSON.
	Marshal func(interface{}) ([]byte, error)

	// Unmarshal function for a single item, defaults to JSON.
	Unmarshal func([]byte, interface{}) error

	// NodeCache caches deserialized nodes and may be shared across
	// multiple ropes.
	NodeCache NodeCache
}

var (
	defaultMarshal   = json.Marshal
	defaultUnmarshal = json.Unmarshal
)

// Root identifies a version of a sequence whose nodes are accessible in the
// persistent store.
type Root struct {
	Link   *string
	Length int
}

// wireNode is the serialized form of a node.  A node with child links is a
// branch; anything else is a block.  Items are opaque blobs produced by
// RemoteConfig.Marshal.
type wireNode struct {
	Weight int      `json:",omitempty"`
	Left   string   `json:",omitempty"`
	Right  string   `json:",omitempty"`
	Items  [][]byte `json:",omitempty"`
}

// Save writes every node of the sequence to the persistent store under its
// content address and returns a Root naming this version.  Subtrees shared
// with previously-saved versions hash to the same address, and the
// NodeCache (if any) suppresses re-storing them.
func (r Rope[T]) Save(ctx context.Context, config *RemoteConfig) (*Root, error) {
	if config == nil || config.StoreImmutablePartsWith == nil {
		return nil, fmt.Errorf("no persistence mechanism set; set RemoteConfig.StoreImmutablePartsWith")
	}
	s := saver[T]{
		persist: config.StoreImmutablePartsWith,
		cache:   config.NodeCache,
		marshal: config.Marshal,
		seen:    map[*node[T]]string{},
	}
	if s.marshal == nil {
		s.marshal = defaultMarshal
	}
	link, err := s.store(ctx, r.root)
	if err != nil {
		return nil, fmt.Errorf("store root: %w", err)
	}
	return &Root{&link, r.length}, nil
}

type saver[T any] struct {
	persist Persist
	cache   NodeCache
	marshal func(interface{}) ([]byte, error)
	seen    map[*node[T]]string
}

func (s *saver[T]) store(ctx context.Context, n *node[T]) (string, error) {
	if link, ok := s.seen[n]; ok {
		return link, nil
	}
	var w wireNode
	var err error
	if n.isBlock() {
		w.Items = make([][]byte, len(n.items))
		for i := range n.items {
			w.Items[i], err = s.marshal(n.items[i])
			if err != nil {
				return "", fmt.Errorf("marshal item %d: %w", i, err)
			}
		}
	} else {
		w.Weight = n.weight
		if w.Left, err = s.store(ctx, n.left); err != nil {
			return "", err
		}
		if w.Right, err = s.store(ctx, n.right); err != nil {
			return "", err
		}
	}
	encoded, err := json.Marshal(w)
	if err != nil {
		return "", fmt.Errorf("marshal node: %w", err)
	}
	hashBytes := blake2b.Sum256(encoded)
	link := base64.RawURLEncoding.EncodeToString(hashBytes[:])
	s.seen[n] = link
	if s.cache != nil && s.cache.Contains(link) {
		return link, nil
	}
	if err = s.persist.Store(ctx, link, encoded); err != nil {
		return "", fmt.Errorf("persist store: %w", err)
	}
	if s.cache != nil {
		s.cache.Add(link, n)
	}
	return link, nil
}

// Load reconstructs a previously-saved version of a sequence.  The whole
// tree is loaded; a Length that disagrees with the loaded contents fails
// with ErrCorrupt.
func Load[T any](ctx context.Context, root *Root, config *RemoteConfig) (Rope[T], error) {
	if config == nil || config.StoreImmutablePartsWith == nil {
		return Rope[T]{}, fmt.Errorf("no persistence mechanism set; set RemoteConfig.StoreImmutablePartsWith")
	}
	if root == nil || root.Link == nil {
		if root != nil && root.Length != 0 {
			return Rope[T]{}, fmt.Errorf("empty root claims %d items: %w", root.Length, ErrCorrupt)
		}
		return New[T](), nil
	}
	l := loader[T]{
		persist:   config.StoreImmutablePartsWith,
		cache:     config.NodeCache,
		unmarshal: config.Unmarshal,
	}
	if l.unmarshal == nil {
		l.unmarshal = defaultUnmarshal
	}
	n, err := l.load(ctx, *root.Link)
	if err != nil {
		return Rope[T]{}, fmt.Errorf("load root: %w", err)
	}
	if got := n.count(); got != root.Length {
		return Rope[T]{}, fmt.Errorf("loaded %d items, root says %d: %w", got, root.Length, ErrCorrupt)
	}
	r := New[T]()
	r.root = n
	r.length = root.Length
	return r, nil
}

type loader[T any] struct {
	persist   Persist
	cache     NodeCache
	unmarshal func([]byte, interface{}) error
}

func (l *loader[T]) load(ctx context.Context, link string) (*node[T], error) {
	if l.cache != nil {
		if cached, ok := l.cache.Get(link); ok {
			if n, ok := cached.(*node[T]); ok {
				return n, nil
			}
		}
	}
	encoded, err := l.persist.Load(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("persist load %s: %w", link, err)
	}
	var w wireNode
	if err = json.Unmarshal(encoded, &w); err != nil {
		return nil, fmt.Errorf("unmarshal node %s: %w", link, err)
	}
	var n *node[T]
	switch {
	case w.Left == "" && w.Right == "":
		items := make([]T, len(w.Items))
		for i := range w.Items {
			if err = l.unmarshal(w.Items[i], &items[i]); err != nil {
				return nil, fmt.Errorf("unmarshal item %d in %s: %w", i, link, err)
			}
		}
		n = newBlock(items)
	case w.Left == "" || w.Right == "":
		return nil, fmt.Errorf("node %s has only one child: %w", link, ErrCorrupt)
	default:
		left, err := l.load(ctx, w.Left)
		if err != nil {
			return nil, err
		}
		right, err := l.load(ctx, w.Right)
		if err != nil {
			return nil, err
		}
		if left.count() != w.Weight {
			return nil, fmt.Errorf("node %s weight %d, left subtree has %d items: %w",
				link, w.Weight, left.count(), ErrCorrupt)
		}
		n = newBranch(left, right, w.Weight)
	}
	if l.cache != nil {
		l.cache.Add(link, n)
	}
	return n, nil
}
