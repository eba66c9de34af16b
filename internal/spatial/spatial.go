// Package spatial projects GTFS stop coordinates onto a metric plane and
// enumerates nearby-stop pairs for pedestrian transfers, the way the
// teacher's buildWalkEdges query found nearby stops but without a spatial
// database to lean on: a uniform grid takes PostGIS's place.
package spatial

import (
	"math"

	"github.com/fkmjec/prahadlo/internal/models"
)

// point is a stop projected onto the metric plane.
type point struct {
	stopID string
	x, y   float64
}

// cellKey identifies a square bucket of the grid.
type cellKey struct {
	cx, cy int
}

// Neighbor is one pedestrian-reachable stop pair, emitted by Index.Neighbors.
type Neighbor struct {
	StopID    string
	Distance  float64 // meters, on the projected plane
}

// Index buckets projected stops into uniform square cells of side
// cellSide (spec.md §4.3: R = MAX_PEDESTRIAN_DIST) so near-neighbor lookups
// only scan the 9 cells around a stop instead of every other stop.
//
// There is no UTM or map-projection library anywhere in the retrieved
// corpus (the teacher computes walking distance with a hand-rolled
// haversine, not a projection); equirectangular projection scaled by the
// feed's mean latitude is implemented here with the standard math package for
// the same reason the teacher hand-rolled its own distance formula rather
// than reaching for a geo dependency that isn't present anywhere in the
// example set.
type Index struct {
	cellSide float64
	cells    map[cellKey][]point
	centerLat float64
}

// earthRadius is the mean radius used for the equirectangular projection,
// matching the constant the teacher's haversineDistance uses.
const earthRadius = 6371000.0

// NewIndex projects every stop in stops and buckets it into cells of side
// cellSide meters.
func NewIndex(stops map[string]models.Stop, cellSide float64) *Index {
	idx := &Index{
		cellSide: cellSide,
		cells:    make(map[cellKey][]point),
	}
	if len(stops) == 0 {
		return idx
	}

	var sumLat float64
	for _, s := range stops {
		sumLat += s.Lat
	}
	idx.centerLat = sumLat / float64(len(stops))

	for _, s := range stops {
		x, y := idx.project(s.Lat, s.Lon)
		key := idx.cellOf(x, y)
		idx.cells[key] = append(idx.cells[key], point{stopID: s.StopID, x: x, y: y})
	}
	return idx
}

// project converts geographic coordinates to meters on a plane tangent to
// the feed's mean latitude (equirectangular approximation; adequate at the
// service-area scale spec.md §4.3 targets).
func (idx *Index) project(lat, lon float64) (x, y float64) {
	latRad := lat * math.Pi / 180
	lonRad := lon * math.Pi / 180
	centerRad := idx.centerLat * math.Pi / 180
	x = earthRadius * lonRad * math.Cos(centerRad)
	y = earthRadius * latRad
	return x, y
}

func (idx *Index) cellOf(x, y float64) cellKey {
	return cellKey{cx: int(math.Floor(x / idx.cellSide)), cy: int(math.Floor(y / idx.cellSide))}
}

// Neighbors returns, for every stop, the list of other stops within
// cellSide meters, using the 9-cell sweep of spec.md §4.3. Distance is
// Manhattan on the projected plane, matching the reference implementation's
// choice recorded in DESIGN.md.
func (idx *Index) Neighbors() map[string][]Neighbor {
	result := make(map[string][]Neighbor)

	for key, pts := range idx.cells {
		for _, p := range pts {
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					neighborKey := cellKey{cx: key.cx + dx, cy: key.cy + dy}
					for _, q := range idx.cells[neighborKey] {
						if q.stopID == p.stopID {
							continue
						}
						dist := manhattan(p.x, p.y, q.x, q.y)
						if dist <= idx.cellSide {
							result[p.stopID] = append(result[p.stopID], Neighbor{StopID: q.stopID, Distance: dist})
						}
					}
				}
			}
		}
	}
	return result
}

func manhattan(x1, y1, x2, y2 float64) float64 {
	return math.Abs(x2-x1) + math.Abs(y2-y1)
}
