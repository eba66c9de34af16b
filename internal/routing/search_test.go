package routing

import (
	"testing"

	"github.com/fkmjec/prahadlo/internal/config"
	"github.com/fkmjec/prahadlo/internal/gtfs"
	"github.com/fkmjec/prahadlo/internal/graph"
	"github.com/fkmjec/prahadlo/internal/models"
	"github.com/fkmjec/prahadlo/internal/spatial"
	"github.com/fkmjec/prahadlo/internal/txerr"
	"github.com/stretchr/testify/assert"
)

func buildGraph(t *testing.T, sched *gtfs.Schedule, neighbors map[string][]spatial.Neighbor, cfg config.Config) *graph.Graph {
	t.Helper()
	return graph.Build(sched, neighbors, cfg)
}

func stop(id string) models.Stop { return models.Stop{StopID: id} }

func TestFindConnectionSingleTripDirect(t *testing.T) {
	// Scenario 1: Query (A, C, 07:30:00) => 2700 seconds.
	sched := &gtfs.Schedule{
		Stops: map[string]models.Stop{"A": stop("A"), "B": stop("B"), "C": stop("C")},
		Trips: map[string]models.Trip{
			"T1": {TripID: "T1", StopTimes: []models.StopTime{
				{StopID: "A", StopSequence: 1, ArrivalTime: 8 * 3600, DepartureTime: 8 * 3600},
				{StopID: "B", StopSequence: 2, ArrivalTime: 8*3600 + 5*60, DepartureTime: 8*3600 + 6*60},
				{StopID: "C", StopSequence: 3, ArrivalTime: 8*3600 + 15*60, DepartureTime: 8*3600 + 15*60},
			}},
		},
	}
	g := buildGraph(t, sched, map[string][]spatial.Neighbor{}, config.Default())
	r := NewRouter(g)

	result, err := r.FindConnection("A", "C", 7*3600+30*60)
	assert.NoError(t, err)
	if assert.NotNil(t, result) {
		assert.Equal(t, 2700, result.Seconds)
	}
}

func TestFindConnectionNoDeparture(t *testing.T) {
	// Scenario 2: Query (A, C, 08:00:01) with no later trip => NoDeparture.
	sched := &gtfs.Schedule{
		Stops: map[string]models.Stop{"A": stop("A"), "C": stop("C")},
		Trips: map[string]models.Trip{
			"T1": {TripID: "T1", StopTimes: []models.StopTime{
				{StopID: "A", StopSequence: 1, ArrivalTime: 8 * 3600, DepartureTime: 8 * 3600},
				{StopID: "C", StopSequence: 2, ArrivalTime: 8*3600 + 15*60, DepartureTime: 8*3600 + 15*60},
			}},
		},
	}
	g := buildGraph(t, sched, map[string][]spatial.Neighbor{}, config.Default())
	r := NewRouter(g)

	_, err := r.FindConnection("A", "C", 8*3600+1)
	assert.ErrorIs(t, err, txerr.ErrNoDeparture)
}

func TestFindConnectionWaitChainPicksLaterTrip(t *testing.T) {
	// Scenario 3: T1 (A 09:00 -> B 09:10), T2 (A 09:20 -> B 09:25).
	// Query (A, B, 09:05) must use T2: 09:25 - 09:05 = 1200s.
	sched := &gtfs.Schedule{
		Stops: map[string]models.Stop{"A": stop("A"), "B": stop("B")},
		Trips: map[string]models.Trip{
			"T1": {TripID: "T1", StopTimes: []models.StopTime{
				{StopID: "A", StopSequence: 1, ArrivalTime: 9 * 3600, DepartureTime: 9 * 3600},
				{StopID: "B", StopSequence: 2, ArrivalTime: 9*3600 + 10*60, DepartureTime: 9*3600 + 10*60},
			}},
			"T2": {TripID: "T2", StopTimes: []models.StopTime{
				{StopID: "A", StopSequence: 1, ArrivalTime: 9*3600 + 20*60, DepartureTime: 9*3600 + 20*60},
				{StopID: "B", StopSequence: 2, ArrivalTime: 9*3600 + 25*60, DepartureTime: 9*3600 + 25*60},
			}},
		},
	}
	g := buildGraph(t, sched, map[string][]spatial.Neighbor{}, config.Default())
	r := NewRouter(g)

	result, err := r.FindConnection("A", "B", 9*3600+5*60)
	assert.NoError(t, err)
	if assert.NotNil(t, result) {
		assert.Equal(t, 1200, result.Seconds)
	}
}

func TestFindConnectionCrossTripAlight(t *testing.T) {
	// Scenario 4: T1 (A 10:00 -> B 10:10), T2 (B 10:12 -> C 10:20),
	// tau_transfer=60. Query (A, C, 09:55) => 10:20 - 09:55 = 1500s.
	sched := &gtfs.Schedule{
		Stops: map[string]models.Stop{"A": stop("A"), "B": stop("B"), "C": stop("C")},
		Trips: map[string]models.Trip{
			"T1": {TripID: "T1", StopTimes: []models.StopTime{
				{StopID: "A", StopSequence: 1, ArrivalTime: 10 * 3600, DepartureTime: 10 * 3600},
				{StopID: "B", StopSequence: 2, ArrivalTime: 10*3600 + 10*60, DepartureTime: 10*3600 + 10*60},
			}},
			"T2": {TripID: "T2", StopTimes: []models.StopTime{
				{StopID: "B", StopSequence: 1, ArrivalTime: 10*3600 + 12*60, DepartureTime: 10*3600 + 12*60},
				{StopID: "C", StopSequence: 2, ArrivalTime: 10*3600 + 20*60, DepartureTime: 10*3600 + 20*60},
			}},
		},
	}
	cfg := config.Default()
	cfg.MinTransferTime = 60
	g := buildGraph(t, sched, map[string][]spatial.Neighbor{}, cfg)
	r := NewRouter(g)

	result, err := r.FindConnection("A", "C", 9*3600+55*60)
	assert.NoError(t, err)
	if assert.NotNil(t, result) {
		assert.Equal(t, 1500, result.Seconds)
	}
}

func TestFindConnectionPedestrianTransfer(t *testing.T) {
	// Scenario 5: B, B' 100m apart; T1 arrives B at 11:00; T2 departs B' at
	// 11:03. walk_base=60, walk_speed=3.6 => tau_walk=88s; earliest dep at
	// B' >= 11:01:28 is 11:03.
	sched := &gtfs.Schedule{
		Stops: map[string]models.Stop{"A": stop("A"), "B": stop("B"), "Bp": stop("Bp"), "Z": stop("Z")},
		Trips: map[string]models.Trip{
			"T1": {TripID: "T1", StopTimes: []models.StopTime{
				{StopID: "A", StopSequence: 1, ArrivalTime: 10 * 3600, DepartureTime: 10 * 3600},
				{StopID: "B", StopSequence: 2, ArrivalTime: 11 * 3600, DepartureTime: 11 * 3600},
			}},
			"T2": {TripID: "T2", StopTimes: []models.StopTime{
				{StopID: "Bp", StopSequence: 1, ArrivalTime: 11*3600 + 3*60, DepartureTime: 11*3600 + 3*60},
				{StopID: "Z", StopSequence: 2, ArrivalTime: 11*3600 + 20*60, DepartureTime: 11*3600 + 20*60},
			}},
		},
	}
	neighbors := map[string][]spatial.Neighbor{
		"B":  {{StopID: "Bp", Distance: 100}},
		"Bp": {{StopID: "B", Distance: 100}},
	}
	g := buildGraph(t, sched, neighbors, config.Default())
	r := NewRouter(g)

	result, err := r.FindConnection("A", "Z", 9*3600+30*60)
	assert.NoError(t, err)
	assert.NotNil(t, result)
}

func TestFindConnectionUnreachable(t *testing.T) {
	// Scenario 6: two disjoint components.
	sched := &gtfs.Schedule{
		Stops: map[string]models.Stop{"A": stop("A"), "B": stop("B"), "X": stop("X"), "Y": stop("Y")},
		Trips: map[string]models.Trip{
			"T1": {TripID: "T1", StopTimes: []models.StopTime{
				{StopID: "A", StopSequence: 1, ArrivalTime: 8 * 3600, DepartureTime: 8 * 3600},
				{StopID: "B", StopSequence: 2, ArrivalTime: 8*3600 + 10*60, DepartureTime: 8*3600 + 10*60},
			}},
			"T2": {TripID: "T2", StopTimes: []models.StopTime{
				{StopID: "X", StopSequence: 1, ArrivalTime: 8 * 3600, DepartureTime: 8 * 3600},
				{StopID: "Y", StopSequence: 2, ArrivalTime: 8*3600 + 10*60, DepartureTime: 8*3600 + 10*60},
			}},
		},
	}
	g := buildGraph(t, sched, map[string][]spatial.Neighbor{}, config.Default())
	r := NewRouter(g)

	result, err := r.FindConnection("A", "Y", 7*3600)
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestFindConnectionUnknownStop(t *testing.T) {
	sched := &gtfs.Schedule{
		Stops: map[string]models.Stop{"A": stop("A")},
		Trips: map[string]models.Trip{},
	}
	g := buildGraph(t, sched, map[string][]spatial.Neighbor{}, config.Default())
	r := NewRouter(g)

	_, err := r.FindConnection("A", "nope", 0)
	assert.ErrorIs(t, err, txerr.ErrUnknownStop)
}

func TestFindConnectionOriginEqualsDestination(t *testing.T) {
	// Boundary (iii): origin == destination with a Dep >= t0 returns 0.
	sched := &gtfs.Schedule{
		Stops: map[string]models.Stop{"A": stop("A"), "B": stop("B")},
		Trips: map[string]models.Trip{
			"T1": {TripID: "T1", StopTimes: []models.StopTime{
				{StopID: "A", StopSequence: 1, ArrivalTime: 8 * 3600, DepartureTime: 8 * 3600},
				{StopID: "B", StopSequence: 2, ArrivalTime: 8*3600 + 10*60, DepartureTime: 8*3600 + 10*60},
			}},
		},
	}
	g := buildGraph(t, sched, map[string][]spatial.Neighbor{}, config.Default())
	r := NewRouter(g)

	result, err := r.FindConnection("A", "A", 7*3600+30*60)
	assert.NoError(t, err)
	if assert.NotNil(t, result) {
		assert.Equal(t, 0, result.Seconds)
	}
}
