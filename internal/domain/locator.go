package domain

import "hash/fnv"

// markerJitterDeg bounds the placement offset applied to city-based
// markers: ±0.01° (~1 km) independently in latitude and longitude.
const markerJitterDeg = 0.01

// Marker is a map pin for a business or public resource.
type Marker struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Kind     string     `json:"kind"`
	Position Coordinate `json:"position"`
}

// PlaceMarker resolves an entity to a map position by looking up its
// city in the given centerpoint table and applying a jitter offset
// derived from the entity ID. Returns false when the city is unknown;
// such entities are simply not plotted. The same ID always produces the
// same position, so layouts are reproducible across renders.
func PlaceMarker(id, name, kind, city string, cities map[string]Coordinate) (Marker, bool) {
	center, ok := cities[city]
	if !ok {
		return Marker{}, false
	}
	dLat, dLon := jitterOffsets(id)
	return Marker{
		ID:   id,
		Name: name,
		Kind: kind,
		Position: Coordinate{
			Lat: center.Lat + dLat,
			Lon: center.Lon + dLon,
		},
	}, true
}

// jitterOffsets maps an entity ID to two offsets in [-markerJitterDeg,
// +markerJitterDeg] using the halves of a 64-bit FNV-1a hash.
func jitterOffsets(id string) (dLat, dLon float64) {
	h := fnv.New64a()
	h.Write([]byte(id)) //nolint:errcheck // hash.Hash Write never fails
	sum := h.Sum64()

	lo := uint32(sum)
	hi := uint32(sum >> 32)
	dLat = (float64(lo)/float64(1<<32)*2 - 1) * markerJitterDeg
	dLon = (float64(hi)/float64(1<<32)*2 - 1) * markerJitterDeg
	return dLat, dLon
}

// RegionMarker pairs a region with its computed label position and zoom box.
type RegionMarker struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Slug     string      `json:"slug"`
	Position Coordinate  `json:"position"`
	Bounds   BoundingBox `json:"bounds"`
}

// StatewidePosition is the fixed marker used for the statewide
// pseudo-region, which is excluded from polygon layout.
var StatewidePosition = Coordinate{Lat: 64.2008, Lon: -152.4044}

// RegionMarkers computes label positions and zoom boxes for each region.
// The statewide pseudo-region is skipped (it gets a fixed single marker
// instead), as are regions whose geometry yields no centroid.
func RegionMarkers(regions []Region) []RegionMarker {
	markers := make([]RegionMarker, 0, len(regions))
	for _, r := range regions {
		if r.Slug == StatewideSlug {
			continue
		}
		pos, ok := r.Coordinates.Centroid()
		if !ok {
			continue
		}
		bounds, _ := r.Coordinates.BoundingBox()
		markers = append(markers, RegionMarker{
			ID:       r.ID,
			Name:     r.Name,
			Slug:     r.Slug,
			Position: pos,
			Bounds:   bounds,
		})
	}
	return markers
}
