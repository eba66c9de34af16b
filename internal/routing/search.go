// Package routing implements the earliest-arrival query engine of spec.md
// §4.5: a clock-time-keyed shortest-path search over a graph.Graph. The
// open set is a container/heap priority queue shaped exactly like the
// teacher's PriorityQueue/searchPath in its A* router — a slice of pointers
// carrying their own heap index — but the key is absolute arrival clock
// time instead of an A*-style fScore, and there is no geographic heuristic.
package routing

import (
	"container/heap"

	"github.com/fkmjec/prahadlo/internal/graph"
	"github.com/fkmjec/prahadlo/internal/txerr"
)

// Router answers earliest-arrival queries over a built graph.Graph.
type Router struct {
	g *graph.Graph
}

// NewRouter returns a Router bound to g.
func NewRouter(g *graph.Graph) *Router {
	return &Router{g: g}
}

// Result is the outcome of a successful FindConnection: the minimum travel
// time and the node path that achieves it.
type Result struct {
	Seconds int
	Path    []int // node indices, origin departure to destination arrival
}

// FindConnection implements spec.md §4.5's find_connection: the minimum
// number of seconds from t0 (seconds since midnight) to reach destStop from
// originStop. A nil Result with a nil error means the destination is
// unreachable (spec.md §7 "Unreachable — not an error").
func (r *Router) FindConnection(originStop, destStop string, t0 int) (*Result, error) {
	if !r.g.HasStop(originStop) || !r.g.HasStop(destStop) {
		return nil, txerr.ErrUnknownStop
	}

	seedIdx, ok, err := r.g.EarliestDeparture(originStop, t0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, txerr.ErrNoDeparture
	}

	// spec.md §7 boundary (iii): origin == destination with a Dep ≥ t0 is
	// already "there" — no travel needed, independent of the seed's own
	// departure clock time.
	if originStop == destStop {
		return &Result{Seconds: 0, Path: []int{seedIdx}}, nil
	}

	bestArrival := map[int]int{seedIdx: r.g.Nodes[seedIdx].Time}
	predecessor := map[int]int{}

	open := &priorityQueue{}
	heap.Init(open)
	heap.Push(open, &searchItem{node: seedIdx, arrival: r.g.Nodes[seedIdx].Time})

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchItem)

		// Stale entry: a better label reached this node after it was
		// pushed. Skip instead of re-exploring.
		if current.arrival > bestArrival[current.node] {
			continue
		}

		n := r.g.Nodes[current.node]
		if n.StopID == destStop {
			return &Result{
				Seconds: current.arrival - t0,
				Path:    reconstructPath(predecessor, seedIdx, current.node),
			}, nil
		}

		for _, e := range n.Edges {
			candidate := current.arrival + e.Cost()
			if best, seen := bestArrival[e.To]; seen && candidate >= best {
				continue
			}
			bestArrival[e.To] = candidate
			predecessor[e.To] = current.node
			heap.Push(open, &searchItem{node: e.To, arrival: candidate})
		}
	}

	return nil, nil
}

func reconstructPath(predecessor map[int]int, seed, dest int) []int {
	path := []int{dest}
	for path[len(path)-1] != seed {
		prev, ok := predecessor[path[len(path)-1]]
		if !ok {
			break
		}
		path = append(path, prev)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// searchItem is one label in the open set: a node reached with a candidate
// arrival clock time. index supports container/heap's in-place swaps, the
// same field the teacher's searchPath carried.
type searchItem struct {
	node    int
	arrival int
	index   int
}

// priorityQueue orders searchItems ascending by arrival clock time.
type priorityQueue []*searchItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].arrival < pq[j].arrival
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*searchItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}
