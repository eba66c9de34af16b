// Package models holds the passive GTFS record types (spec.md §3.1) and the
// time-expanded graph's node/edge types (spec.md §3.2). None of these types
// carry behavior beyond simple accessors; the teacher's models.go separated
// "inert data" from "logic that acts on it" the same way, and this keeps
// that split.
package models

// ExceptionType is the calendar_dates.txt exception_type column.
type ExceptionType int

const (
	ExceptionAdded   ExceptionType = 1
	ExceptionRemoved ExceptionType = 2
)

// Date is a GTFS calendar date (YYYYMMDD), comparable and orderable as a
// plain integer so start_date <= date <= end_date reads naturally.
type Date int

// Stop is a boarding point with geographic coordinates (spec.md §3.1).
// Fields beyond stop_id/name/lat/lon never influence the search and are
// retained only for pass-through (spec.md §4.4 "foreign schedule fields").
type Stop struct {
	StopID             string
	Name               string
	Lat                float64
	Lon                float64
	LocationType       int
	ParentStation      string
	ZoneID             string
	URL                string
	WheelchairBoarding string
	LevelID            string
	PlatformCode       string
}

// Route is a named line operated by an agency.
type Route struct {
	RouteID   string
	AgencyID  string
	ShortName string
	LongName  string
	RouteType int
	IsNight   bool
	URL       string
	Color     string
	TextColor string
}

// Trip is one scheduled run along a route, owning an ordered StopTime list.
type Trip struct {
	TripID    string
	RouteID   string
	ServiceID string
	Headsign  string
	Direction int
	ShapeID   string

	// StopTimes is populated and sorted by stop_sequence ascending during
	// loading (spec.md §4.2 step 3).
	StopTimes []StopTime
}

// StopTime is one scheduled event of a Trip at a Stop.
type StopTime struct {
	TripID        string
	StopSequence  int
	ArrivalTime   int // seconds since midnight, may exceed 86400
	DepartureTime int // seconds since midnight, may exceed 86400
	StopID        string
	PickupType    int
	DropOffType   int
	StopHeadsign  string
}

// Service is a set of calendar days on which its trips operate.
type Service struct {
	ServiceID string
	// Weekday[i] is indexed by time.Weekday: Sunday=0 ... Saturday=6.
	Weekday    [7]bool
	StartDate  Date
	EndDate    Date
	Exceptions []ServiceException
}

// ServiceException is a calendar_dates.txt row attached to a Service.
type ServiceException struct {
	ServiceID     string
	Date          Date
	ExceptionType ExceptionType
}

// NodeRole distinguishes the two kinds of timetabled events in the
// time-expanded graph (spec.md §3.2). Transfer/wait nodes are not a
// separate role; Dep nodes chained together serve that purpose.
type NodeRole int

const (
	RoleDeparture NodeRole = iota
	RoleArrival
)

// Node is one timetabled event: a scheduled departure or arrival of a
// specific trip at a specific stop. Nodes live in an append-only arena
// (graph.Graph.Nodes); a Node's position in that arena is its stable index.
type Node struct {
	Role   NodeRole
	StopID string
	TripID string
	Time   int // seconds since midnight
	Edges  []Edge
}

// Edge is a directed connection from the node that owns it to the node at
// index To. Cost = ArrivesAt - DepartsAt. TripID is empty for wait-chain,
// alight, and pedestrian edges (spec.md §3.2).
type Edge struct {
	To        int
	DepartsAt int
	ArrivesAt int
	TripID    string
}

// Cost returns the edge's time cost in seconds.
func (e Edge) Cost() int { return e.ArrivesAt - e.DepartsAt }

// IsRide reports whether the edge owns a trip (a scheduled ride), as
// opposed to a wait-chain, alight, or pedestrian edge.
func (e Edge) IsRide() bool { return e.TripID != "" }
