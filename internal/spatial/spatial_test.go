package spatial

import (
	"testing"

	"github.com/fkmjec/prahadlo/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestNeighborsWithinRadius(t *testing.T) {
	// Roughly 100m apart along a meridian (~0.0009 degrees of latitude).
	stops := map[string]models.Stop{
		"B":  {StopID: "B", Lat: 50.0870, Lon: 14.4213},
		"Bp": {StopID: "Bp", Lat: 50.08790, Lon: 14.4213},
	}

	idx := NewIndex(stops, 500)
	neighbors := idx.Neighbors()

	if !assert.Contains(t, neighbors, "B") {
		return
	}
	found := false
	for _, n := range neighbors["B"] {
		if n.StopID == "Bp" {
			found = true
			assert.InDelta(t, 100, n.Distance, 50)
		}
	}
	assert.True(t, found)

	// Symmetric: Bp must also see B.
	found = false
	for _, n := range neighbors["Bp"] {
		if n.StopID == "B" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestNeighborsExcludesFarStops(t *testing.T) {
	stops := map[string]models.Stop{
		"near": {StopID: "near", Lat: 50.0, Lon: 14.0},
		"far":  {StopID: "far", Lat: 51.0, Lon: 15.0},
	}

	idx := NewIndex(stops, 500)
	neighbors := idx.Neighbors()

	assert.Empty(t, neighbors["near"])
	assert.Empty(t, neighbors["far"])
}

func TestNeighborsExcludesSelf(t *testing.T) {
	stops := map[string]models.Stop{
		"only": {StopID: "only", Lat: 50.0, Lon: 14.0},
	}
	idx := NewIndex(stops, 500)
	neighbors := idx.Neighbors()
	assert.Empty(t, neighbors["only"])
}
