package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Coordinate is a WGS-84 longitude/latitude pair. It marshals as a
// GeoJSON-style two-element array [lon, lat].
type Coordinate struct {
	Lon float64
	Lat float64
}

func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lon, c.Lat})
}

func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinate: %w", err)
	}
	c.Lon = pair[0]
	c.Lat = pair[1]
	return nil
}

// Geometry type discriminators, matching GeoJSON.
const (
	GeometryPoint   = "Point"
	GeometryPolygon = "Polygon"
)

// Geometry is a GeoJSON-like Point or Polygon. Point uses the Point
// field; Polygon uses Rings (outer ring first). It round-trips through
// the standard GeoJSON {"type":..., "coordinates":...} shape and scans
// to/from a jsonb column.
type Geometry struct {
	Type  string
	Point Coordinate
	Rings [][]Coordinate
}

type geometryJSON struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

func (g Geometry) MarshalJSON() ([]byte, error) {
	var coords any
	switch g.Type {
	case GeometryPoint:
		coords = g.Point
	case GeometryPolygon:
		coords = g.Rings
	default:
		return nil, fmt.Errorf("geometry: unsupported type %q", g.Type)
	}
	raw, err := json.Marshal(coords)
	if err != nil {
		return nil, err
	}
	return json.Marshal(geometryJSON{Type: g.Type, Coordinates: raw})
}

func (g *Geometry) UnmarshalJSON(data []byte) error {
	var wire geometryJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("geometry: %w", err)
	}
	switch wire.Type {
	case GeometryPoint:
		var p Coordinate
		if err := json.Unmarshal(wire.Coordinates, &p); err != nil {
			return fmt.Errorf("geometry point: %w", err)
		}
		*g = Geometry{Type: GeometryPoint, Point: p}
	case GeometryPolygon:
		var rings [][]Coordinate
		if err := json.Unmarshal(wire.Coordinates, &rings); err != nil {
			return fmt.Errorf("geometry polygon: %w", err)
		}
		*g = Geometry{Type: GeometryPolygon, Rings: rings}
	default:
		return fmt.Errorf("geometry: unsupported type %q", wire.Type)
	}
	return nil
}

// Scan implements sql.Scanner so Geometry can be read from a jsonb column.
func (g *Geometry) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return g.UnmarshalJSON(v)
	case string:
		return g.UnmarshalJSON([]byte(v))
	case nil:
		*g = Geometry{}
		return nil
	default:
		return fmt.Errorf("geometry: cannot scan %T", src)
	}
}

// Value implements driver.Valuer for writing to a jsonb column.
func (g Geometry) Value() (driver.Value, error) {
	b, err := g.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Region is one of Alaska's fixed editorial divisions.
type Region struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description,omitempty"`
	Coordinates Geometry  `db:"coordinates" json:"coordinates"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// StatewideSlug names the pseudo-region grouping content that is not
// tied to a single geographic division.
const StatewideSlug = "statewide"

// Centroid returns a label position for the geometry. Points are used
// directly; for polygons it is the arithmetic mean of all ring vertices.
// This is a label-placement approximation, not an area-weighted or
// spherical centroid. The second return is false for empty geometry.
func (g Geometry) Centroid() (Coordinate, bool) {
	switch g.Type {
	case GeometryPoint:
		return g.Point, true
	case GeometryPolygon:
		var sumLon, sumLat float64
		var n int
		for _, ring := range g.Rings {
			for _, v := range ring {
				sumLon += v.Lon
				sumLat += v.Lat
				n++
			}
		}
		if n == 0 {
			return Coordinate{}, false
		}
		return Coordinate{Lon: sumLon / float64(n), Lat: sumLat / float64(n)}, true
	default:
		return Coordinate{}, false
	}
}

// BoundingBox is a lat/lon axis-aligned viewport target.
type BoundingBox struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// BoundingBox returns the zoom-to-region viewport: polygon vertex bounds,
// or a fixed ±1° box around a point. The second return is false for
// empty geometry.
func (g Geometry) BoundingBox() (BoundingBox, bool) {
	switch g.Type {
	case GeometryPoint:
		return BoundingBox{
			MinLon: g.Point.Lon - 1, MinLat: g.Point.Lat - 1,
			MaxLon: g.Point.Lon + 1, MaxLat: g.Point.Lat + 1,
		}, true
	case GeometryPolygon:
		first := true
		var box BoundingBox
		for _, ring := range g.Rings {
			for _, v := range ring {
				if first {
					box = BoundingBox{MinLon: v.Lon, MinLat: v.Lat, MaxLon: v.Lon, MaxLat: v.Lat}
					first = false
					continue
				}
				if v.Lon < box.MinLon {
					box.MinLon = v.Lon
				}
				if v.Lon > box.MaxLon {
					box.MaxLon = v.Lon
				}
				if v.Lat < box.MinLat {
					box.MinLat = v.Lat
				}
				if v.Lat > box.MaxLat {
					box.MaxLat = v.Lat
				}
			}
		}
		if first {
			return BoundingBox{}, false
		}
		return box, true
	default:
		return BoundingBox{}, false
	}
}
