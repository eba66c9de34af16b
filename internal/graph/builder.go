package graph

import (
	"log"

	"github.com/fkmjec/prahadlo/internal/config"
	"github.com/fkmjec/prahadlo/internal/gtfs"
	"github.com/fkmjec/prahadlo/internal/models"
	"github.com/fkmjec/prahadlo/internal/spatial"
)

// Build constructs the time-expanded graph from sched in the deterministic
// three-pass order of spec.md §4.4, the same "nodes first, then edges,
// then report counts" shape the teacher's BuildGraph used for its SQL
// tables. neighbors is the output of a spatial.Index built over sched's
// stops (spec.md §4.3); cfg supplies τ_transfer and the walk-time formula's
// constants.
func Build(sched *gtfs.Schedule, neighbors map[string][]spatial.Neighbor, cfg config.Config) *Graph {
	g := New()

	log.Println("building time-expanded graph...")

	for stopID := range sched.Stops {
		g.openStop(stopID)
	}

	var arrivals []int
	rideEdges := 0
	for _, trip := range sched.Trips {
		for i := 0; i+1 < len(trip.StopTimes); i++ {
			from, to := trip.StopTimes[i], trip.StopTimes[i+1]

			depIdx := g.addNode(models.Node{
				Role:   models.RoleDeparture,
				StopID: from.StopID,
				TripID: trip.TripID,
				Time:   from.DepartureTime,
			})
			arrIdx := g.addNode(models.Node{
				Role:   models.RoleArrival,
				StopID: to.StopID,
				TripID: trip.TripID,
				Time:   to.ArrivalTime,
			})

			g.addEdge(depIdx, models.Edge{
				To:        arrIdx,
				DepartsAt: from.DepartureTime,
				ArrivesAt: to.ArrivalTime,
				TripID:    trip.TripID,
			})

			g.registerDeparture(from.StopID, depIdx)
			arrivals = append(arrivals, arrIdx)
			rideEdges++
		}
	}
	log.Printf("pass A: %d nodes, %d ride edges", len(g.Nodes), rideEdges)

	for stopID := range sched.Stops {
		g.FinalizeStop(stopID)
	}
	log.Printf("pass B: finalized %d stops", len(sched.Stops))

	alightEdges, walkEdges := buildTransferEdges(g, arrivals, neighbors, cfg)
	log.Printf("pass C: %d alight edges, %d pedestrian edges", alightEdges, walkEdges)

	return g
}

// buildTransferEdges implements Pass C (spec.md §4.4): for each arrival
// node, an alight edge to the stop's own next departure and a pedestrian
// edge to each nearby stop's next departure; the alight edge is gated by
// cfg.MinTransferTime and each pedestrian edge by its walk time.
func buildTransferEdges(g *Graph, arrivals []int, neighbors map[string][]spatial.Neighbor, cfg config.Config) (alightEdges, walkEdges int) {
	for _, a := range arrivals {
		arr := g.Nodes[a]
		t := arr.Time

		if depIdx, ok, _ := g.EarliestDeparture(arr.StopID, t+cfg.MinTransferTime); ok {
			g.addEdge(a, models.Edge{
				To:        depIdx,
				DepartsAt: t,
				ArrivesAt: g.Nodes[depIdx].Time,
			})
			alightEdges++
		}

		for _, n := range neighbors[arr.StopID] {
			walkTime := cfg.WalkTime(n.Distance)
			depIdx, ok, _ := g.EarliestDeparture(n.StopID, t+walkTime)
			if !ok {
				continue
			}
			g.addEdge(a, models.Edge{
				To:        depIdx,
				DepartsAt: t,
				ArrivesAt: g.Nodes[depIdx].Time,
			})
			walkEdges++
		}
	}
	return alightEdges, walkEdges
}
