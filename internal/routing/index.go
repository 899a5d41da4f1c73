package routing

import "sort"

// PathIndex maps static prefixes to the path expressions that share them.
// Within a bucket, expressions are ordered by descending parameter count,
// so a reverse lookup walking a bucket front to back picks the most
// specific template that its available parameters can fully satisfy.
//
// The index is populated during Table.Publish and read-only afterwards.
type PathIndex struct {
	buckets map[string][]*PathExpression
}

// NewPathIndex creates an empty index
func NewPathIndex() *PathIndex {
	return &PathIndex{buckets: make(map[string][]*PathExpression)}
}

// Insert adds an expression under its static prefix. Ordering is restored
// by sortBuckets, not per insert.
func (idx *PathIndex) Insert(expr *PathExpression) {
	idx.buckets[expr.StaticPrefix] = append(idx.buckets[expr.StaticPrefix], expr)
}

// Lookup returns the bucket for a static prefix, nil when the prefix was
// never registered
func (idx *PathIndex) Lookup(prefix string) []*PathExpression {
	return idx.buckets[prefix]
}

// sortBuckets orders every bucket by descending parameter count. The sort
// is stable: between two expressions needing the same number of
// parameters, the first registered wins.
func (idx *PathIndex) sortBuckets() {
	for _, bucket := range idx.buckets {
		sort.SliceStable(bucket, func(i, j int) bool {
			return len(bucket[i].ParamNames) > len(bucket[j].ParamNames)
		})
	}
}
