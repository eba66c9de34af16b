package routing

import (
	"github.com/fkmjec/prahadlo/internal/graph"
	"github.com/fkmjec/prahadlo/internal/models"
)

// StepKind classifies one leg of a reconstructed itinerary.
type StepKind int

const (
	StepRide StepKind = iota
	StepWait
	StepAlight
	StepWalk
)

// Step is one consolidated leg of an itinerary: either a ride (possibly
// spanning several consecutive stops of the same trip) or a single
// wait/alight/pedestrian hop.
type Step struct {
	Kind      StepKind
	FromStop  string
	ToStop    string
	TripID    string
	DepartsAt int
	ArrivesAt int
}

// BuildItinerary consolidates a raw node-index path from FindConnection
// into Steps, merging consecutive ride edges of the same trip into a
// single step the way the teacher's buildSteps merged consecutive RIDE
// edges on the same route; the same-stop hop from a trip's arrival to that
// trip's own next departure is folded into the ride. A path of fewer than
// two nodes yields no steps.
func BuildItinerary(g *graph.Graph, path []int) []Step {
	var steps []Step

	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]
		fromNode, toNode := g.Nodes[from], g.Nodes[to]

		edge, ok := findEdge(fromNode, to)
		if !ok {
			continue
		}

		kind := classify(fromNode, toNode, edge)

		if kind == StepAlight && fromNode.TripID == toNode.TripID && len(steps) > 0 {
			last := steps[len(steps)-1]
			if last.Kind == StepRide && last.TripID == fromNode.TripID {
				continue
			}
		}

		if kind == StepRide && len(steps) > 0 {
			last := &steps[len(steps)-1]
			if last.Kind == StepRide && last.TripID == edge.TripID {
				last.ToStop = toNode.StopID
				last.ArrivesAt = edge.ArrivesAt
				continue
			}
		}

		steps = append(steps, Step{
			Kind:      kind,
			FromStop:  fromNode.StopID,
			ToStop:    toNode.StopID,
			TripID:    edge.TripID,
			DepartsAt: edge.DepartsAt,
			ArrivesAt: edge.ArrivesAt,
		})
	}

	return steps
}

// findEdge returns the edge on fromNode that targets node index to.
func findEdge(fromNode models.Node, to int) (models.Edge, bool) {
	for _, e := range fromNode.Edges {
		if e.To == to {
			return e, true
		}
	}
	return models.Edge{}, false
}

// classify distinguishes the four edge families of spec.md §3.2. A ride
// edge owns a trip id. A non-ride edge leaving a Dep node is a wait-chain
// hop. A non-ride edge leaving an Arr node is an alight if it stays at the
// same stop, otherwise a pedestrian transfer to a nearby stop.
func classify(fromNode, toNode models.Node, e models.Edge) StepKind {
	if e.IsRide() {
		return StepRide
	}
	if fromNode.Role == models.RoleDeparture {
		return StepWait
	}
	if fromNode.StopID == toNode.StopID {
		return StepAlight
	}
	return StepWalk
}
