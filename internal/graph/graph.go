// Package graph holds the time-expanded node arena: append-only storage for
// Departure/Arrival nodes plus the per-stop departure chain that lets a
// waiting passenger be modeled as one edge hop (spec.md §3.2). The teacher's
// InMemoryGraph singleton held the same idea — a node table queried by
// index instead of by round-trip to Postgres — reshaped here around an
// arena of value types rather than a global loaded-from-DB cache.
package graph

import (
	"sort"

	"github.com/fkmjec/prahadlo/internal/models"
	"github.com/fkmjec/prahadlo/internal/txerr"
)

// stopState is the two-phase lifecycle object of spec.md §3.2/§9: open
// while the builder is still appending Dep indices, finalized once its
// chain is sorted and wait edges are installed.
type stopState struct {
	depIndices []int
	finalized  bool
}

// Graph is the append-only node arena plus the per-stop departure chains.
// Node indices are stable for the lifetime of the Graph; edges reference
// nodes by index, never by pointer (spec.md §9 "cyclic topology without
// cyclic ownership").
type Graph struct {
	Nodes []models.Node
	stops map[string]*stopState
}

// New returns an empty Graph with no nodes and no known stops.
func New() *Graph {
	return &Graph{stops: make(map[string]*stopState)}
}

// addNode appends n to the arena and returns its stable index.
func (g *Graph) addNode(n models.Node) int {
	g.Nodes = append(g.Nodes, n)
	return len(g.Nodes) - 1
}

// openStop returns the stopState for stopID, creating an open one if this
// is the first time the stop has been seen.
func (g *Graph) openStop(stopID string) *stopState {
	s, ok := g.stops[stopID]
	if !ok {
		s = &stopState{}
		g.stops[stopID] = s
	}
	return s
}

// registerDeparture appends idx to stopID's open departure list. It panics
// if the stop has already been finalized — a builder bug, not a caller
// error, since Pass A must complete entirely before Pass B runs.
func (g *Graph) registerDeparture(stopID string, idx int) {
	s := g.openStop(stopID)
	if s.finalized {
		panic("graph: registerDeparture on finalized stop " + stopID)
	}
	s.depIndices = append(s.depIndices, idx)
}

// addEdge appends e to the adjacency list of the node at "from".
func (g *Graph) addEdge(from int, e models.Edge) {
	g.Nodes[from].Edges = append(g.Nodes[from].Edges, e)
}

// FinalizeStop sorts stopID's departure list ascending by node time (ties
// broken by node index, for reproducibility per spec.md §4.4 Pass B),
// installs the wait-chain edges between adjacent departures, and marks the
// stop queryable. Finalizing a stop with no registered departures is legal
// and leaves it queryable with an empty chain.
func (g *Graph) FinalizeStop(stopID string) {
	s := g.openStop(stopID)
	if s.finalized {
		return
	}

	sort.SliceStable(s.depIndices, func(i, j int) bool {
		ti, tj := g.Nodes[s.depIndices[i]].Time, g.Nodes[s.depIndices[j]].Time
		if ti != tj {
			return ti < tj
		}
		return s.depIndices[i] < s.depIndices[j]
	})

	for i := 0; i+1 < len(s.depIndices); i++ {
		from, to := s.depIndices[i], s.depIndices[i+1]
		g.addEdge(from, models.Edge{
			To:        to,
			DepartsAt: g.Nodes[from].Time,
			ArrivesAt: g.Nodes[to].Time,
		})
	}

	s.finalized = true
}

// EarliestDeparture binary-searches stopID's sorted departure list for the
// smallest node time ≥ q and returns its node index. ok is false when the
// stop has no such departure. Fails with txerr.ErrNotFinalized if the stop
// is still open (spec.md §4.4 "earliest-departure lookup").
func (g *Graph) EarliestDeparture(stopID string, q int) (idx int, ok bool, err error) {
	s, known := g.stops[stopID]
	if !known {
		return 0, false, nil
	}
	if !s.finalized {
		return 0, false, txerr.ErrNotFinalized
	}

	deps := s.depIndices
	i := sort.Search(len(deps), func(i int) bool {
		return g.Nodes[deps[i]].Time >= q
	})
	if i == len(deps) {
		return 0, false, nil
	}
	return deps[i], true, nil
}

// HasStop reports whether stopID has been seen by the builder (Pass A
// registered it, or it was finalized with an empty chain).
func (g *Graph) HasStop(stopID string) bool {
	_, ok := g.stops[stopID]
	return ok
}
