// Package gtfs loads a GTFS-family schedule directory into the typed
// Schedule tables of spec.md §3.1, following the three-step loader
// contract of spec.md §4.2: materialize stops/routes/trips/services,
// stream calendar_dates into their Service, then stream stop_times into
// their Trip and sort each Trip's vector by stop_sequence.
//
// The heavy lifting — turning a CSV file into a slice of structs — is
// delegated to github.com/gocarina/gocsv, the "schema-driven row reader"
// spec.md §4.2 treats as an external collaborator; the "core" is what
// happens before and after that call: required-column checks, typed-field
// conversion, and foreign-key wiring.
package gtfs

import (
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"

	"github.com/fkmjec/prahadlo/internal/models"
	"github.com/fkmjec/prahadlo/internal/txerr"
)

// Schedule is the fully wired, keyed set of GTFS tables (spec.md §3.1).
type Schedule struct {
	Stops    map[string]models.Stop
	Routes   map[string]models.Route
	Trips    map[string]models.Trip
	Services map[string]models.Service
}

// Load reads stops.txt, routes.txt, trips.txt, stop_times.txt,
// calendar.txt, and calendar_dates.txt from dir and returns the wired
// Schedule, or the first fatal error encountered (spec.md §7: IoFailure,
// SchemaMismatch, Malformed*, DanglingReference, ScheduleConflict all
// abort loading).
func Load(dir string) (*Schedule, error) {
	stops, err := loadStops(filepath.Join(dir, "stops.txt"))
	if err != nil {
		return nil, err
	}

	routes, err := loadRoutes(filepath.Join(dir, "routes.txt"))
	if err != nil {
		return nil, err
	}

	trips, err := loadTrips(filepath.Join(dir, "trips.txt"))
	if err != nil {
		return nil, err
	}

	services, err := loadCalendar(filepath.Join(dir, "calendar.txt"))
	if err != nil {
		return nil, err
	}

	if err := loadCalendarDates(filepath.Join(dir, "calendar_dates.txt"), services); err != nil {
		return nil, err
	}

	if err := loadStopTimes(filepath.Join(dir, "stop_times.txt"), trips, stops); err != nil {
		return nil, err
	}

	for tripID, trip := range trips {
		if _, ok := routes[trip.RouteID]; !ok {
			return nil, txerr.Newf(txerr.DanglingReference, "trip %s references unknown route %s", tripID, trip.RouteID)
		}
		if _, ok := services[trip.ServiceID]; !ok {
			return nil, txerr.Newf(txerr.DanglingReference, "trip %s references unknown service %s", tripID, trip.ServiceID)
		}
	}

	return &Schedule{Stops: stops, Routes: routes, Trips: trips, Services: services}, nil
}

func loadStops(path string) (map[string]models.Stop, error) {
	f, err := openRequired(path, []string{"stop_id", "stop_name", "stop_lat", "stop_lon"})
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []stopRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, txerr.Wrapf(txerr.SchemaMismatch, err, "unmarshaling %s", path)
	}

	stops := make(map[string]models.Stop, len(rows))
	for _, r := range rows {
		stop, err := stopFromRow(r)
		if err != nil {
			return nil, err
		}
		stops[stop.StopID] = stop
	}
	return stops, nil
}

func loadRoutes(path string) (map[string]models.Route, error) {
	f, err := openRequired(path, []string{"route_id", "route_short_name", "route_long_name", "route_type"})
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []routeRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, txerr.Wrapf(txerr.SchemaMismatch, err, "unmarshaling %s", path)
	}

	routes := make(map[string]models.Route, len(rows))
	for _, r := range rows {
		route, err := routeFromRow(r)
		if err != nil {
			return nil, err
		}
		routes[route.RouteID] = route
	}
	return routes, nil
}

func loadTrips(path string) (map[string]models.Trip, error) {
	f, err := openRequired(path, []string{"route_id", "service_id", "trip_id"})
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []tripRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, txerr.Wrapf(txerr.SchemaMismatch, err, "unmarshaling %s", path)
	}

	trips := make(map[string]models.Trip, len(rows))
	for _, r := range rows {
		trip, err := tripFromRow(r)
		if err != nil {
			return nil, err
		}
		trips[trip.TripID] = trip
	}
	return trips, nil
}

func loadCalendar(path string) (map[string]models.Service, error) {
	f, err := openRequired(path, []string{
		"service_id", "monday", "tuesday", "wednesday", "thursday",
		"friday", "saturday", "sunday", "start_date", "end_date",
	})
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []calendarRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, txerr.Wrapf(txerr.SchemaMismatch, err, "unmarshaling %s", path)
	}

	services := make(map[string]models.Service, len(rows))
	for _, r := range rows {
		svc, err := serviceFromRow(r)
		if err != nil {
			return nil, err
		}
		services[svc.ServiceID] = svc
	}
	return services, nil
}

// loadCalendarDates streams calendar_dates.txt and appends each exception
// to the matching Service, failing with DanglingReference if service_id is
// unknown (spec.md §4.2 step 2). calendar_dates.txt is one of the six
// required record streams (spec.md §6); a missing file is fatal with
// IoFailure, the same as every other table.
func loadCalendarDates(path string, services map[string]models.Service) error {
	f, err := openRequired(path, []string{"service_id", "date", "exception_type"})
	if err != nil {
		return err
	}
	defer f.Close()

	var rows []calendarDateRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return txerr.Wrapf(txerr.SchemaMismatch, err, "unmarshaling %s", path)
	}

	for _, r := range rows {
		svc, ok := services[r.ServiceID]
		if !ok {
			return txerr.Newf(txerr.DanglingReference, "calendar_dates references unknown service %s", r.ServiceID)
		}
		exc, err := exceptionFromRow(r)
		if err != nil {
			return err
		}
		svc.Exceptions = append(svc.Exceptions, exc)
		services[r.ServiceID] = svc
	}
	return nil
}

// loadStopTimes streams stop_times.txt, appends each row to its Trip's
// vector, then sorts every Trip's vector by stop_sequence ascending and
// rejects duplicate (trip_id, stop_sequence) pairs (spec.md §4.2 step 3).
func loadStopTimes(path string, trips map[string]models.Trip, stops map[string]models.Stop) error {
	f, err := openRequired(path, []string{"trip_id", "arrival_time", "departure_time", "stop_id", "stop_sequence"})
	if err != nil {
		return err
	}
	defer f.Close()

	var rows []stopTimeRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return txerr.Wrapf(txerr.SchemaMismatch, err, "unmarshaling %s", path)
	}

	for _, r := range rows {
		trip, ok := trips[r.TripID]
		if !ok {
			return txerr.Newf(txerr.DanglingReference, "stop_times references unknown trip %s", r.TripID)
		}
		if _, ok := stops[r.StopID]; !ok {
			return txerr.Newf(txerr.DanglingReference, "stop_times references unknown stop %s", r.StopID)
		}

		st, err := stopTimeFromRow(r)
		if err != nil {
			return err
		}
		trip.StopTimes = append(trip.StopTimes, st)
		trips[r.TripID] = trip
	}

	for tripID, trip := range trips {
		sort.Slice(trip.StopTimes, func(i, j int) bool {
			return trip.StopTimes[i].StopSequence < trip.StopTimes[j].StopSequence
		})

		for i := 1; i < len(trip.StopTimes); i++ {
			if trip.StopTimes[i].StopSequence == trip.StopTimes[i-1].StopSequence {
				return txerr.Newf(txerr.ScheduleConflict,
					"trip %s has duplicate stop_sequence %d", tripID, trip.StopTimes[i].StopSequence)
			}
			if trip.StopTimes[i-1].DepartureTime > trip.StopTimes[i].ArrivalTime {
				return txerr.Newf(txerr.ScheduleConflict,
					"trip %s: stop_sequence %d departs after stop_sequence %d arrives",
					tripID, trip.StopTimes[i-1].StopSequence, trip.StopTimes[i].StopSequence)
			}
		}

		trips[tripID] = trip
	}
	return nil
}
