package dag

import (
	"errors"
	"fmt"

	"github.com/structmc/structmc/pkg/varset"
)

var (
	// ErrNodeOutOfRange is returned when an edge endpoint is not a valid
	// node index for the state.
	ErrNodeOutOfRange = errors.New("node index out of range")

	// ErrSelfLoop is returned by [State.AddEdge] when both endpoints are
	// the same node.
	ErrSelfLoop = errors.New("self-loops are not allowed")

	// ErrDuplicateEdge is returned by [State.AddEdge] when the edge
	// already exists.
	ErrDuplicateEdge = errors.New("edge already exists")

	// ErrWouldCycle is returned by [State.AddEdge] when adding the edge
	// would create a directed cycle. Acyclicity is an invariant of State:
	// an edge that closes a cycle is never applied.
	ErrWouldCycle = errors.New("edge would create a cycle")

	// ErrFanInExceeded is returned by [State.AddEdge] when the target
	// node already has the maximum permitted number of parents.
	ErrFanInExceeded = errors.New("fan-in limit exceeded")

	// ErrMissingEdge is returned by [State.RemoveEdge] when the edge
	// does not exist.
	ErrMissingEdge = errors.New("edge does not exist")

	// ErrGraphHasCycle is returned by [State.Validate] when the stored
	// adjacency contains a cycle. This indicates state corruption - the
	// mutation methods never produce one.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Edge is a directed edge between two node indices.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// State is a directed acyclic graph over nodes 0..n-1 with a fan-in bound
// and a maintained ancestor relation. Acyclicity and the fan-in bound are
// invariants: AddEdge rejects any mutation that would violate them, so a
// State obtained through the exported API is always a valid DAG.
//
// The ancestor relation makes IsAncestor O(1) and Descendants O(n); it is
// updated incrementally on edge addition and rebuilt after removal.
//
// State is not safe for concurrent mutation. Use Clone to give each
// goroutine its own copy.
type State struct {
	n     int
	fanIn int

	parents  []map[int]struct{}
	children []map[int]struct{}
	anc      []map[int]struct{} // anc[v] = strict ancestors of v

	edgeCount int
}

// New creates an empty state over n nodes with the given fan-in bound.
func New(n, fanIn int) *State {
	s := &State{
		n:        n,
		fanIn:    fanIn,
		parents:  make([]map[int]struct{}, n),
		children: make([]map[int]struct{}, n),
		anc:      make([]map[int]struct{}, n),
	}
	for v := 0; v < n; v++ {
		s.parents[v] = make(map[int]struct{})
		s.children[v] = make(map[int]struct{})
		s.anc[v] = make(map[int]struct{})
	}
	return s
}

// NodeCount returns the number of nodes.
func (s *State) NodeCount() int { return s.n }

// FanIn returns the maximum permitted number of parents per node.
func (s *State) FanIn() int { return s.fanIn }

// SetFanIn replaces the fan-in bound. It does not retroactively check
// existing parent sets; callers that tighten the bound must verify them.
func (s *State) SetFanIn(fanIn int) { s.fanIn = fanIn }

// EdgeCount returns the number of edges.
func (s *State) EdgeCount() int { return s.edgeCount }

// InDegree returns the number of parents of v.
func (s *State) InDegree(v int) int { return len(s.parents[v]) }

// HasEdge reports whether the edge u→v exists.
func (s *State) HasEdge(u, v int) bool {
	if u < 0 || u >= s.n || v < 0 || v >= s.n {
		return false
	}
	_, ok := s.children[u][v]
	return ok
}

// Parents returns the current parent set of v.
func (s *State) Parents(v int) varset.Set {
	members := make([]int, 0, len(s.parents[v]))
	for p := range s.parents[v] {
		members = append(members, p)
	}
	return varset.New(members...)
}

// Edges returns all edges ordered by source then target.
// The order is deterministic for a given adjacency.
func (s *State) Edges() []Edge {
	edges := make([]Edge, 0, s.edgeCount)
	for u := 0; u < s.n; u++ {
		targets := make([]int, 0, len(s.children[u]))
		for v := range s.children[u] {
			targets = append(targets, v)
		}
		// children sets are small; insertion sort keeps this allocation-free
		for i := 1; i < len(targets); i++ {
			for j := i; j > 0 && targets[j] < targets[j-1]; j-- {
				targets[j], targets[j-1] = targets[j-1], targets[j]
			}
		}
		for _, v := range targets {
			edges = append(edges, Edge{From: u, To: v})
		}
	}
	return edges
}

// IsAncestor reports whether a is a strict ancestor of d, i.e. there is
// a directed path of length ≥ 1 from a to d.
func (s *State) IsAncestor(a, d int) bool {
	if a < 0 || a >= s.n || d < 0 || d >= s.n {
		return false
	}
	_, ok := s.anc[d][a]
	return ok
}

// Descendants returns the set of nodes reachable from v by a directed
// path of length ≥ 1.
func (s *State) Descendants(v int) varset.Set {
	members := make([]int, 0, s.n)
	for d := 0; d < s.n; d++ {
		if _, ok := s.anc[d][v]; ok {
			members = append(members, d)
		}
	}
	return varset.New(members...)
}

// AddEdge inserts the edge u→v, maintaining the ancestor relation.
// Returns ErrNodeOutOfRange, ErrSelfLoop, ErrDuplicateEdge, ErrWouldCycle
// or ErrFanInExceeded when the edge cannot be applied; the state is
// unchanged on error.
func (s *State) AddEdge(u, v int) error {
	if u < 0 || u >= s.n || v < 0 || v >= s.n {
		return fmt.Errorf("%w: (%d, %d) with %d nodes", ErrNodeOutOfRange, u, v, s.n)
	}
	if u == v {
		return fmt.Errorf("%w: node %d", ErrSelfLoop, u)
	}
	if s.HasEdge(u, v) {
		return fmt.Errorf("%w: %d→%d", ErrDuplicateEdge, u, v)
	}
	if s.IsAncestor(v, u) {
		return fmt.Errorf("%w: %d→%d", ErrWouldCycle, u, v)
	}
	if len(s.parents[v]) >= s.fanIn {
		return fmt.Errorf("%w: node %d already has %d parents", ErrFanInExceeded, v, len(s.parents[v]))
	}

	s.children[u][v] = struct{}{}
	s.parents[v][u] = struct{}{}
	s.edgeCount++

	// v and every descendant of v gain u and all of u's ancestors.
	gained := make([]int, 0, len(s.anc[u])+1)
	gained = append(gained, u)
	for a := range s.anc[u] {
		gained = append(gained, a)
	}
	for d := 0; d < s.n; d++ {
		if d == v {
			continue
		}
		if _, ok := s.anc[d][v]; ok {
			for _, a := range gained {
				s.anc[d][a] = struct{}{}
			}
		}
	}
	for _, a := range gained {
		s.anc[v][a] = struct{}{}
	}
	return nil
}

// RemoveEdge deletes the edge u→v.
// Returns ErrMissingEdge if it does not exist.
func (s *State) RemoveEdge(u, v int) error {
	if !s.HasEdge(u, v) {
		return fmt.Errorf("%w: %d→%d", ErrMissingEdge, u, v)
	}
	delete(s.children[u], v)
	delete(s.parents[v], u)
	s.edgeCount--
	s.rebuildAncestors()
	return nil
}

// Orphan removes all incoming edges of each given node, leaving it
// parentless. Unknown indices are ignored.
func (s *State) Orphan(nodes ...int) {
	changed := false
	for _, v := range nodes {
		if v < 0 || v >= s.n {
			continue
		}
		for p := range s.parents[v] {
			delete(s.children[p], v)
			s.edgeCount--
			changed = true
		}
		s.parents[v] = make(map[int]struct{})
	}
	if changed {
		s.rebuildAncestors()
	}
}

// Clone returns a deep copy. Mutating the copy never affects the
// original, and vice versa.
func (s *State) Clone() *State {
	c := &State{
		n:         s.n,
		fanIn:     s.fanIn,
		parents:   make([]map[int]struct{}, s.n),
		children:  make([]map[int]struct{}, s.n),
		anc:       make([]map[int]struct{}, s.n),
		edgeCount: s.edgeCount,
	}
	for v := 0; v < s.n; v++ {
		c.parents[v] = cloneIntSet(s.parents[v])
		c.children[v] = cloneIntSet(s.children[v])
		c.anc[v] = cloneIntSet(s.anc[v])
	}
	return c
}

func cloneIntSet(m map[int]struct{}) map[int]struct{} {
	c := make(map[int]struct{}, len(m))
	for k := range m {
		c[k] = struct{}{}
	}
	return c
}

// rebuildAncestors recomputes anc from the adjacency in topological order.
// Edge removal can shrink ancestor sets in ways that are awkward to patch
// incrementally, so removal pays the full rebuild.
func (s *State) rebuildAncestors() {
	indeg := make([]int, s.n)
	for v := 0; v < s.n; v++ {
		s.anc[v] = make(map[int]struct{})
		indeg[v] = len(s.parents[v])
	}

	queue := make([]int, 0, s.n)
	for v := 0; v < s.n; v++ {
		if indeg[v] == 0 {
			queue = append(queue, v)
		}
	}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for p := range s.parents[u] {
			s.anc[u][p] = struct{}{}
			for a := range s.anc[p] {
				s.anc[u][a] = struct{}{}
			}
		}
		for c := range s.children[u] {
			indeg[c]--
			if indeg[c] == 0 {
				queue = append(queue, c)
			}
		}
	}
}

// Validate checks that the stored adjacency is acyclic and returns nil
// if so. The mutation methods preserve acyclicity, so a non-nil result
// indicates corruption. Cycle detection runs in O(N+E) time using
// depth-first search with white/gray/black coloring.
func (s *State) Validate() error {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, s.n)
	var hasCycle bool

	var dfs func(v int)
	dfs = func(v int) {
		color[v] = gray
		for c := range s.children[v] {
			switch color[c] {
			case white:
				dfs(c)
			case gray:
				hasCycle = true
				return
			}
		}
		color[v] = black
	}

	for v := 0; v < s.n; v++ {
		if color[v] == white {
			dfs(v)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
