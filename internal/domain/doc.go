// Package domain models Alaska regional news and community content.
//
// # Regions
//
// Alaska is divided into six editorial regions: Southeast, Southcentral,
// Interior, Southwest, Northern, and Western. Region rows live in the
// content store and carry GeoJSON-like geometry (Point or Polygon) used
// for map label placement and zoom targets. A seventh "statewide" row
// groups content that is not tied to a single region; it is excluded
// from polygon layout and rendered as a single fixed marker.
//
// Western is a display name only: community records may reference it,
// but no region row with slug "western" exists, so region-scoped news
// and business lookups for Western communities resolve to empty lists.
// This mirrors the editorial data as it stands today.
//
// # News categorization
//
// Incoming news items are assigned to exactly one display category by
// ordered keyword matching ([CategorizeNews]):
//
//   - Categories are scanned in declaration order; within a category,
//     keywords are scanned in declaration order. The first keyword found
//     as a substring of the lowercased title, description, or source
//     category wins. Declaration order is therefore an implicit priority:
//     an item mentioning both "state" and "gold" lands in government,
//     which precedes resources.
//   - Matching is plain substring containment after lowercasing. There is
//     no tokenization or word-boundary check ("oilfield" matches "oil").
//   - Each bucket holds at most 6 items; items matching a full bucket are
//     truncated deterministically in input order.
//   - Items matching no keyword land in the trailing "general" catch-all.
//
// # Marker placement
//
// Businesses and public resources are not stored with coordinates. They
// are placed on the map by looking up their city in a fixed table of
// known Alaska centerpoints and offsetting by up to ±0.01° (~1 km) so
// co-located markers do not overlap. The offset is derived from an FNV
// hash of the entity ID, so marker layout is reproducible across
// renders. Entities whose city is not in the table are dropped from the
// map without error.
//
// # Synthetic weather
//
// Weather readings are simulated, not fetched: a baseline temperature is
// selected by (season, latitude band), adjusted for coastal moderation
// and night cooling, then perturbed by bounded random draws. Each of the
// five forecast days is an independent draw with no day-to-day
// correlation. Consumers must treat outputs as bounded-random; tests
// assert ranges, never exact values. See [WeatherGenerator].
package domain
