package featureset

import (
	"strconv"

	"github.com/rotisserie/eris"
)

// DefaultWKID is the well-known ID used when no spatial reference is
// configured (WGS 84).
const DefaultWKID = 4326

// SpatialReference identifies the coordinate system for geometry
// coordinates. Exactly one of WKID or LatestWKID is set, and it is a
// positive integer.
type SpatialReference struct {
	WKID       int `json:"wkid,omitempty"`
	LatestWKID int `json:"latestWkid,omitempty"`
}

// DefaultSpatialReference returns the WGS 84 descriptor.
func DefaultSpatialReference() SpatialReference {
	return SpatialReference{WKID: DefaultWKID}
}

// ResolveSpatialReference normalizes a user-supplied spatial reference into
// a SpatialReference value. Accepted inputs:
//
//   - nil: the default {wkid: 4326}
//   - SpatialReference or *SpatialReference: copied through
//   - int, int32, int64: {wkid: v}
//   - string: parsed as a wkid integer
//   - map[string]any holding a "spatialReference" sub-map with a "wkid" or
//     "latestWkid" number
//
// A bare {"wkid": ...} map without the "spatialReference" wrapper is
// rejected. Everything else fails with ErrInvalidSpatialReference.
func ResolveSpatialReference(v any) (SpatialReference, error) {
	switch sr := v.(type) {
	case nil:
		return DefaultSpatialReference(), nil
	case SpatialReference:
		return sr, nil
	case *SpatialReference:
		if sr == nil {
			return DefaultSpatialReference(), nil
		}
		return *sr, nil
	case int:
		return SpatialReference{WKID: sr}, nil
	case int32:
		return SpatialReference{WKID: int(sr)}, nil
	case int64:
		return SpatialReference{WKID: int(sr)}, nil
	case string:
		wkid, err := strconv.Atoi(sr)
		if err != nil {
			return SpatialReference{}, eris.Wrapf(ErrInvalidSpatialReference, "cannot parse %q as a wkid", sr)
		}
		return SpatialReference{WKID: wkid}, nil
	case map[string]any:
		nested, ok := sr["spatialReference"].(map[string]any)
		if !ok {
			return SpatialReference{}, eris.Wrap(ErrInvalidSpatialReference, "mapping must carry a spatialReference key")
		}
		if wkid, ok := intValue(nested["wkid"]); ok {
			return SpatialReference{WKID: wkid}, nil
		}
		if latest, ok := intValue(nested["latestWkid"]); ok {
			return SpatialReference{LatestWKID: latest}, nil
		}
		return SpatialReference{}, eris.Wrap(ErrInvalidSpatialReference, "spatialReference must specify wkid or latestWkid")
	default:
		return SpatialReference{}, eris.Wrapf(ErrInvalidSpatialReference, "cannot interpret %T as a spatial reference", v)
	}
}

// intValue coerces JSON and native number representations to int.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
