// Package network is the top-level façade of spec.md §4.6: it owns the
// record tables, builds the spatial index and time-expanded graph, and
// exposes FindConnection plus read-only accessors. It is the module a CLI
// or any other caller constructs once per process and then shares freely
// across concurrent queries, since nothing in it mutates after Load
// returns (spec.md §5 "the Network is read-only after construction").
package network

import (
	"github.com/fkmjec/prahadlo/internal/config"
	"github.com/fkmjec/prahadlo/internal/graph"
	"github.com/fkmjec/prahadlo/internal/gtfs"
	"github.com/fkmjec/prahadlo/internal/models"
	"github.com/fkmjec/prahadlo/internal/routing"
	"github.com/fkmjec/prahadlo/internal/spatial"
)

// Network owns the schedule tables and the built graph, answering queries
// through an internal Router the same way the teacher's API handlers held
// a *routing.Router behind their HTTP surface.
type Network struct {
	sched  *gtfs.Schedule
	g      *graph.Graph
	router *routing.Router
}

// Load reads a GTFS-family directory, builds the spatial index and the
// time-expanded graph, and returns a ready-to-query Network. Fatal load or
// build errors (spec.md §7) abort construction.
func Load(dir string, cfg config.Config) (*Network, error) {
	sched, err := gtfs.Load(dir)
	if err != nil {
		return nil, err
	}

	sched.Stops = gtfs.ValidateAndCleanStops(sched.Stops)

	idx := spatial.NewIndex(sched.Stops, cfg.MaxPedestrianDist)
	neighbors := idx.Neighbors()

	g := graph.Build(sched, neighbors, cfg)

	return &Network{
		sched:  sched,
		g:      g,
		router: routing.NewRouter(g),
	}, nil
}

// FindConnection answers spec.md §4.5's earliest-arrival query: the
// minimum seconds from t0 to travel from originStop to destStop, or a nil
// Result with a nil error if the destination is unreachable.
func (n *Network) FindConnection(originStop, destStop string, t0 int) (*routing.Result, error) {
	return n.router.FindConnection(originStop, destStop, t0)
}

// Itinerary reconstructs the step-by-step path of a Result, in the same
// call as FindConnection would otherwise discard (spec.md §1 "and
// optionally the reconstructed path").
func (n *Network) Itinerary(result *routing.Result) []routing.Step {
	if result == nil {
		return nil
	}
	return routing.BuildItinerary(n.g, result.Path)
}

// Stop returns the Stop record for id, for read-only pass-through display.
func (n *Network) Stop(id string) (models.Stop, bool) {
	s, ok := n.sched.Stops[id]
	return s, ok
}

// Route returns the Route record for id.
func (n *Network) Route(id string) (models.Route, bool) {
	r, ok := n.sched.Routes[id]
	return r, ok
}

// Trip returns the Trip record for id.
func (n *Network) Trip(id string) (models.Trip, bool) {
	t, ok := n.sched.Trips[id]
	return t, ok
}

// NodeCount returns the number of nodes in the built graph, for debugging
// and load-time reporting.
func (n *Network) NodeCount() int {
	return len(n.g.Nodes)
}
