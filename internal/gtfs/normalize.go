package gtfs

import (
	"math"
	"strings"

	"github.com/fkmjec/prahadlo/internal/models"
)

// TransitMode is a display-only classification of a Route, inferred the
// way the teacher's InferMode did: keyword match on the route name first,
// then the GTFS route_type mapping, defaulting to bus. Nothing in the
// graph builder, query engine, itinerary or CLI reads it; InferMode is not
// called outside this package's tests.
type TransitMode string

const (
	ModeBus   TransitMode = "BUS"
	ModeBRT   TransitMode = "BRT"
	ModeRail  TransitMode = "RAIL"
	ModeFerry TransitMode = "FERRY"
	ModeTram  TransitMode = "TRAM"
)

// InferMode determines the transit mode from a Route. Priority: keyword
// match in the route name (more specific than the numeric code), then the
// GTFS route_type mapping (https://gtfs.org/schedule/reference/#routestxt),
// defaulting to bus.
func InferMode(route models.Route) TransitMode {
	routeName := strings.ToUpper(route.ShortName + " " + route.LongName)

	switch {
	case strings.Contains(routeName, "BRT") || strings.Contains(routeName, "RAPID"):
		return ModeBRT
	case strings.Contains(routeName, "TRAIN") || strings.Contains(routeName, "RAIL"):
		return ModeRail
	case strings.Contains(routeName, "FERRY") || strings.Contains(routeName, "BOAT"):
		return ModeFerry
	case strings.Contains(routeName, "TRAM"):
		return ModeTram
	}

	switch route.RouteType {
	case 0: // Tram, Streetcar, Light rail
		return ModeTram
	case 1: // Subway, Metro
		return ModeBRT
	case 2: // Rail
		return ModeRail
	case 3: // Bus
		return ModeBus
	case 4: // Ferry
		return ModeFerry
	case 5, 6, 7: // Cable tram, aerial lift, funicular
		return ModeTram
	}

	return ModeBus
}

// ValidateAndCleanStops drops stops with invalid or null-island
// coordinates before the spatial index is built over them, since those
// would otherwise corrupt grid bucketing.
func ValidateAndCleanStops(stops map[string]models.Stop) map[string]models.Stop {
	cleaned := make(map[string]models.Stop, len(stops))
	for id, stop := range stops {
		if stop.Lat < -90 || stop.Lat > 90 {
			continue
		}
		if stop.Lon < -180 || stop.Lon > 180 {
			continue
		}
		if stop.Lat == 0 && stop.Lon == 0 {
			continue
		}
		cleaned[id] = stop
	}
	return cleaned
}

// haversineDistance calculates the great-circle distance between two
// coordinates in meters. Nothing outside this package's tests calls it;
// the spatial index projects to a planar system instead (internal/spatial).
func haversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}
