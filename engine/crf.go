package engine

import "github.com/kaelindev/cnp/grammar"

// clusterKey identifies a cluster node: (non-terminal, input position).
type clusterKey struct {
	nt  grammar.Symbol
	pos int
}

// labelKey identifies a label node: (slot, input position).
type labelKey struct {
	l   grammar.Slot
	pos int
}

// crf is the bipartite Call Return Forest: edges run only from cluster
// nodes to label nodes. Both node kinds are interned per context —
// re-adding a node returns its existing index — and the whole structure
// is freed with its owning context. Nodes reference each other only by
// index into the two flat tables below, so the graph (which can contain
// cycles, for left/right-recursive grammars) needs no native cyclic
// ownership.
type crf struct {
	clusterIndex map[clusterKey]int
	clusters     []clusterNode

	labelIndex map[labelKey]int
	labels     []labelNode
}

type clusterNode struct {
	key      clusterKey
	children []int // label-node ids this cluster has an edge to
	childSet map[int]struct{}
}

type labelNode struct {
	key labelKey
}

func newCRF() *crf {
	return &crf{
		clusterIndex: map[clusterKey]int{},
		labelIndex:   map[labelKey]int{},
	}
}

// internCluster returns cluster (nt, pos)'s index, creating it if this
// is the first reference, and reports whether it was newly created.
func (c *crf) internCluster(nt grammar.Symbol, pos int) (idx int, created bool) {
	k := clusterKey{nt: nt, pos: pos}
	if idx, ok := c.clusterIndex[k]; ok {
		return idx, false
	}
	idx = len(c.clusters)
	c.clusters = append(c.clusters, clusterNode{key: k, childSet: map[int]struct{}{}})
	c.clusterIndex[k] = idx
	return idx, true
}

// internLabel returns label node (l, pos)'s index, creating it if this
// is the first reference.
func (c *crf) internLabel(l grammar.Slot, pos int) int {
	k := labelKey{l: l, pos: pos}
	if idx, ok := c.labelIndex[k]; ok {
		return idx
	}
	idx := len(c.labels)
	c.labels = append(c.labels, labelNode{key: k})
	c.labelIndex[k] = idx
	return idx
}

// addEdge adds a CRF edge from cluster clusterIdx to label labelIdx,
// reporting whether the edge is new.
func (c *crf) addEdge(clusterIdx, labelIdx int) bool {
	cn := &c.clusters[clusterIdx]
	if _, ok := cn.childSet[labelIdx]; ok {
		return false
	}
	cn.childSet[labelIdx] = struct{}{}
	cn.children = append(cn.children, labelIdx)
	return true
}

// childLabels returns the label nodes cluster clusterIdx has an edge to.
func (c *crf) childLabels(clusterIdx int) []labelNode {
	cn := &c.clusters[clusterIdx]
	out := make([]labelNode, len(cn.children))
	for i, id := range cn.children {
		out[i] = c.labels[id]
	}
	return out
}

func (c *crf) lookupCluster(nt grammar.Symbol, pos int) (int, bool) {
	idx, ok := c.clusterIndex[clusterKey{nt: nt, pos: pos}]
	return idx, ok
}
