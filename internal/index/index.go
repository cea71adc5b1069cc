// Package index provides an R-tree mapping caller-defined keys to extents.
//
// The tree is height balanced. Leaves hold up to Options.Capacity entries, overflowing nodes are
// split into the two groups of least total area, and nodes that fall below the minimum fill on
// removal are dissolved with their entries inserted again from the root.
//
// An Index is not safe for concurrent mutation. Concurrent searches without a writer are safe.
package index

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"geomap/internal/geom"
)

var (
	ErrInvalidCapacity = errors.New("index: capacity must be at least one")
	ErrInvalidMinFill  = errors.New("index: minimum fill must be between 0 and 0.5")
	ErrDuplicateKey    = errors.New("index: key already present")
	ErrInvalidExtent   = errors.New("index: extent is undefined or inverted")
)

// Options are fixed for the lifetime of an index.
type Options struct {
	Capacity int     // maximum number of entries in a node
	MinFill  float64 // fraction of Capacity that every node except the root must hold
}

var DefaultOptions = Options{
	Capacity: 32,
	MinFill:  0.3,
}

type entry[K cmp.Ordered] struct {
	extent geom.Extent
	key    K
	child  *node[K] // nil in leaves
}

type node[K cmp.Ordered] struct {
	leaf    bool
	entries []entry[K]
}

func (n *node[K]) bounds() geom.Extent {
	e := geom.NewExtent()
	for _, ent := range n.entries {
		e = e.Union(ent.extent)
	}
	return e
}

// Index is an R-tree over keys of type K.
type Index[K cmp.Ordered] struct {
	opts    Options
	maxLeaf int
	maxNode int
	minLeaf int
	minNode int

	root *node[K]
	keys map[K]geom.Extent
}

// New returns an empty index. A nil opts uses DefaultOptions.
func New[K cmp.Ordered](opts *Options) (*Index[K], error) {
	if opts == nil {
		defaultOptions := DefaultOptions
		opts = &defaultOptions
	}
	if opts.Capacity < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, opts.Capacity)
	} else if math.IsNaN(opts.MinFill) || opts.MinFill < 0.0 || 0.5 < opts.MinFill {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMinFill, opts.MinFill)
	}

	// internal nodes need room for two children to split into
	maxNode := max(opts.Capacity, 2)
	return &Index[K]{
		opts:    *opts,
		maxLeaf: opts.Capacity,
		maxNode: maxNode,
		minLeaf: minFillEntries(opts.Capacity, opts.MinFill),
		minNode: minFillEntries(maxNode, opts.MinFill),
		root:    &node[K]{leaf: true},
		keys:    map[K]geom.Extent{},
	}, nil
}

func minFillEntries(capacity int, minFill float64) int {
	return max(1, int(math.Ceil(float64(capacity)*minFill)))
}

func (t *Index[K]) Options() Options {
	return t.opts
}

func (t *Index[K]) Len() int {
	return len(t.keys)
}

// Extent returns the extent stored for key.
func (t *Index[K]) Extent(key K) (geom.Extent, bool) {
	e, ok := t.keys[key]
	return e, ok
}

// Bounds returns the union of all stored extents, undefined when the index is empty.
func (t *Index[K]) Bounds() geom.Extent {
	return t.root.bounds()
}

// All iterates over every key and its extent in key order.
func (t *Index[K]) All() iter.Seq2[K, geom.Extent] {
	return func(yield func(K, geom.Extent) bool) {
		keys := make([]K, 0, len(t.keys))
		for key := range t.keys {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			if !yield(key, t.keys[key]) {
				return
			}
		}
	}
}

// Search returns the keys of all extents intersecting q, sorted. Touching extents intersect.
func (t *Index[K]) Search(q geom.Extent) []K {
	var keys []K
	t.SearchFunc(q, func(key K, _ geom.Extent) bool {
		keys = append(keys, key)
		return true
	})
	slices.Sort(keys)
	return keys
}

// SearchPoint returns the keys of all extents containing p.
func (t *Index[K]) SearchPoint(p geom.Point) []K {
	return t.Search(geom.PointExtent(p))
}

// SearchFunc calls fn for every entry intersecting q, in tree order, until fn returns false.
func (t *Index[K]) SearchFunc(q geom.Extent, fn func(K, geom.Extent) bool) {
	search(t.root, q, fn)
}

func search[K cmp.Ordered](n *node[K], q geom.Extent, fn func(K, geom.Extent) bool) bool {
	for _, ent := range n.entries {
		if !ent.extent.Intersects(q) {
			continue
		}
		if n.leaf {
			if !fn(ent.key, ent.extent) {
				return false
			}
		} else if !search(ent.child, q, fn) {
			return false
		}
	}
	return true
}

// Insert adds key with extent e. Degenerate extents are accepted, undefined, inverted or unbounded
// ones are not. A key that is already present is rejected and the index is left untouched.
func (t *Index[K]) Insert(key K, e geom.Extent) error {
	if _, ok := t.keys[key]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
	} else if !e.IsValid() || !isFinite(e) {
		return fmt.Errorf("%w: %v", ErrInvalidExtent, e)
	}
	t.keys[key] = e
	t.insert(entry[K]{extent: e, key: key})
	return nil
}

func isFinite(e geom.Extent) bool {
	return !math.IsInf(e.Min.X, 0) && !math.IsInf(e.Min.Y, 0) && !math.IsInf(e.Max.X, 0) && !math.IsInf(e.Max.Y, 0)
}

// InsertPoint adds key with the degenerate extent of p.
func (t *Index[K]) InsertPoint(key K, p geom.Point) error {
	return t.Insert(key, geom.PointExtent(p))
}

func (t *Index[K]) insert(ent entry[K]) {
	if sibling := t.insertEntry(t.root, ent); sibling != nil {
		// the tree only grows at the root
		t.root = &node[K]{
			entries: []entry[K]{
				{extent: t.root.bounds(), child: t.root},
				{extent: sibling.bounds(), child: sibling},
			},
		}
	}
}

// insertEntry places a leaf entry below n and returns the new sibling of n if n was split.
func (t *Index[K]) insertEntry(n *node[K], ent entry[K]) *node[K] {
	if n.leaf {
		n.entries = append(n.entries, ent)
	} else {
		i := chooseSubtree(n, ent.extent)
		child := n.entries[i].child
		sibling := t.insertEntry(child, ent)
		n.entries[i].extent = child.bounds()
		if sibling != nil {
			n.entries = append(n.entries, entry[K]{extent: sibling.bounds(), child: sibling})
		}
	}
	if t.maxEntries(n) < len(n.entries) {
		return t.split(n)
	}
	return nil
}

func (t *Index[K]) maxEntries(n *node[K]) int {
	if n.leaf {
		return t.maxLeaf
	}
	return t.maxNode
}

func (t *Index[K]) minEntries(n *node[K]) int {
	if n.leaf {
		return t.minLeaf
	}
	return t.minNode
}

// chooseSubtree returns the child needing the least area enlargement to hold e. Ties go to the
// smaller resulting area and then to the first child.
func chooseSubtree[K cmp.Ordered](n *node[K], e geom.Extent) int {
	best := 0
	bestEnlargement, bestArea := math.Inf(1), math.Inf(1)
	for i, ent := range n.entries {
		area := ent.extent.Union(e).Area()
		enlargement := area - ent.extent.Area()
		if enlargement < bestEnlargement || enlargement == bestEnlargement && area < bestArea {
			best = i
			bestEnlargement = enlargement
			bestArea = area
		}
	}
	return best
}

// Remove deletes key and reports whether it was present. Removing an absent key does nothing.
func (t *Index[K]) Remove(key K) bool {
	e, ok := t.keys[key]
	if !ok {
		return false
	}
	path, idx := findLeaf(t.root, key, e, nil)
	if path == nil {
		// unreachable while the key map and the tree agree
		panic(fmt.Sprintf("index: key %v missing from tree", key))
	}
	delete(t.keys, key)

	leaf := path[len(path)-1]
	leaf.entries = slices.Delete(leaf.entries, idx, idx+1)

	var orphans []entry[K]
	for i := len(path) - 1; 0 < i; i-- {
		n, parent := path[i], path[i-1]
		j := slices.IndexFunc(parent.entries, func(ent entry[K]) bool { return ent.child == n })
		if len(n.entries) < t.minEntries(n) {
			parent.entries = slices.Delete(parent.entries, j, j+1)
			orphans = collectLeafEntries(n, orphans)
		} else {
			parent.entries[j].extent = n.bounds()
		}
	}

	for !t.root.leaf && len(t.root.entries) == 1 {
		t.root = t.root.entries[0].child
	}
	if !t.root.leaf && len(t.root.entries) == 0 {
		t.root = &node[K]{leaf: true}
	}
	for _, ent := range orphans {
		t.insert(ent)
	}
	return true
}

// RemoveAll removes every given key and returns how many were present.
func (t *Index[K]) RemoveAll(keys ...K) int {
	n := 0
	for _, key := range keys {
		if t.Remove(key) {
			n++
		}
	}
	return n
}

func findLeaf[K cmp.Ordered](n *node[K], key K, e geom.Extent, path []*node[K]) ([]*node[K], int) {
	path = append(path, n)
	for i, ent := range n.entries {
		if !ent.extent.Intersects(e) {
			continue
		}
		if n.leaf {
			if ent.key == key {
				return path, i
			}
		} else if found, idx := findLeaf(ent.child, key, e, path); found != nil {
			return found, idx
		}
	}
	return nil, -1
}

func collectLeafEntries[K cmp.Ordered](n *node[K], dst []entry[K]) []entry[K] {
	if n.leaf {
		return append(dst, n.entries...)
	}
	for _, ent := range n.entries {
		dst = collectLeafEntries(ent.child, dst)
	}
	return dst
}
