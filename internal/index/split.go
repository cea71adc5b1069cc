package index

import (
	"cmp"
	"math/bits"
	"slices"

	"geomap/internal/geom"
)

// exhaustiveSplitMax is the largest node that is split by trying every partition.
const exhaustiveSplitMax = 12

type partition struct {
	area, margin float64
}

func (p partition) less(q partition) bool {
	return p.area < q.area || p.area == q.area && p.margin < q.margin
}

// split divides the overflowing node n into two groups, each holding at least the minimum number
// of entries, so that the summed area of both bounding boxes is minimal. n keeps the first group
// and the second group is returned as a new node.
func (t *Index[K]) split(n *node[K]) *node[K] {
	minSize := t.minEntries(n)
	var a, b []entry[K]
	if len(n.entries) <= exhaustiveSplitMax {
		a, b = splitExhaustive(n.entries, minSize)
	} else {
		a, b = splitSorted(n.entries, minSize)
	}
	n.entries = a
	return &node[K]{leaf: n.leaf, entries: b}
}

// splitExhaustive tries all 2^(n-1) partitions. The first entry always goes to the first group,
// which skips the mirrored half.
func splitExhaustive[K cmp.Ordered](entries []entry[K], minSize int) ([]entry[K], []entry[K]) {
	n := len(entries)
	var best partition
	var bestMask uint
	found := false
	for mask := uint(0); mask < 1<<(n-1); mask++ {
		// bit i set puts entry i+1 in the second group
		size := bits.OnesCount(mask)
		if size < minSize || n-size < minSize {
			continue
		}
		ea, eb := geom.NewExtent(), geom.NewExtent()
		for i, ent := range entries {
			if 0 < i && mask&(1<<(i-1)) != 0 {
				eb = eb.Union(ent.extent)
			} else {
				ea = ea.Union(ent.extent)
			}
		}
		p := partition{ea.Area() + eb.Area(), ea.Margin() + eb.Margin()}
		if !found || p.less(best) {
			best = p
			bestMask = mask
			found = true
		}
	}

	a := make([]entry[K], 0, n)
	b := make([]entry[K], 0, n)
	for i, ent := range entries {
		if 0 < i && bestMask&(1<<(i-1)) != 0 {
			b = append(b, ent)
		} else {
			a = append(a, ent)
		}
	}
	return a, b
}

// splitSorted sorts the entries along each axis by their lower and by their upper bound, and tries
// every split point of each ordering that satisfies minSize.
func splitSorted[K cmp.Ordered](entries []entry[K], minSize int) ([]entry[K], []entry[K]) {
	orders := []func(a, b entry[K]) int{
		func(a, b entry[K]) int {
			return cmp.Or(cmp.Compare(a.extent.Min.X, b.extent.Min.X), cmp.Compare(a.extent.Max.X, b.extent.Max.X))
		},
		func(a, b entry[K]) int {
			return cmp.Or(cmp.Compare(a.extent.Max.X, b.extent.Max.X), cmp.Compare(a.extent.Min.X, b.extent.Min.X))
		},
		func(a, b entry[K]) int {
			return cmp.Or(cmp.Compare(a.extent.Min.Y, b.extent.Min.Y), cmp.Compare(a.extent.Max.Y, b.extent.Max.Y))
		},
		func(a, b entry[K]) int {
			return cmp.Or(cmp.Compare(a.extent.Max.Y, b.extent.Max.Y), cmp.Compare(a.extent.Min.Y, b.extent.Min.Y))
		},
	}

	n := len(entries)
	var best partition
	var bestOrder []entry[K]
	bestK := 0
	prefix := make([]geom.Extent, n)
	for _, order := range orders {
		sorted := slices.Clone(entries)
		slices.SortStableFunc(sorted, order)

		prefix[0] = sorted[0].extent
		for i := 1; i < n; i++ {
			prefix[i] = prefix[i-1].Union(sorted[i].extent)
		}
		suffix := geom.NewExtent()
		for k := n - 1; minSize <= k; k-- {
			// first group is sorted[:k]
			suffix = suffix.Union(sorted[k].extent)
			if n-k < minSize {
				continue
			}
			ea := prefix[k-1]
			p := partition{ea.Area() + suffix.Area(), ea.Margin() + suffix.Margin()}
			if bestOrder == nil || p.less(best) {
				best = p
				bestOrder = sorted
				bestK = k
			}
		}
	}
	return slices.Clip(bestOrder[:bestK]), slices.Clone(bestOrder[bestK:])
}
