package world

// DisjointSet is an array-backed union-find over the indices 0..n-1.
type DisjointSet struct {
	parent []int
	rank   []int
}

// NewDisjointSet creates n singleton sets.
func NewDisjointSet(n int) *DisjointSet {
	ds := &DisjointSet{
		parent: make([]int, n),
		rank:   make([]int, n),
	}
	for i := range ds.parent {
		ds.parent[i] = i
	}
	return ds
}

// Len returns the number of elements tracked.
func (ds *DisjointSet) Len() int {
	return len(ds.parent)
}

// Find returns the representative of i's set, compressing the path it walked.
func (ds *DisjointSet) Find(i int) int {
	root := i
	for ds.parent[root] != root {
		root = ds.parent[root]
	}
	for ds.parent[i] != root {
		next := ds.parent[i]
		ds.parent[i] = root
		i = next
	}
	return root
}

// Union merges the sets containing i and j. The lower-rank root is attached
// under the higher-rank one; on equal rank j's root goes under i's.
// It returns false if i and j were already in the same set.
func (ds *DisjointSet) Union(i, j int) bool {
	rootI := ds.Find(i)
	rootJ := ds.Find(j)
	if rootI == rootJ {
		return false
	}

	switch {
	case ds.rank[rootI] > ds.rank[rootJ]:
		ds.parent[rootJ] = rootI
	case ds.rank[rootI] < ds.rank[rootJ]:
		ds.parent[rootI] = rootJ
	default:
		ds.parent[rootJ] = rootI
		ds.rank[rootI]++
	}
	return true
}

// Connected returns true if i and j are in the same set.
func (ds *DisjointSet) Connected(i, j int) bool {
	return ds.Find(i) == ds.Find(j)
}
