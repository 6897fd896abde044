package featureset

import (
	"github.com/rotisserie/eris"
)

// GeometryKind is an esri geometry type literal.
type GeometryKind string

const (
	GeometryPoint      GeometryKind = "esriGeometryPoint"
	GeometryMultipoint GeometryKind = "esriGeometryMultipoint"
	GeometryPolyline   GeometryKind = "esriGeometryPolyline"
	GeometryPolygon    GeometryKind = "esriGeometryPolygon"
)

// shapeColumn is the reserved column name always excluded from feature
// attributes, mirroring the SHAPE column convention of spatially enabled
// dataframes.
const shapeColumn = "SHAPE"

// ParseGeometryKind maps a short name or esri literal to a GeometryKind.
func ParseGeometryKind(s string) (GeometryKind, error) {
	switch s {
	case "point", string(GeometryPoint):
		return GeometryPoint, nil
	case "multipoint", string(GeometryMultipoint):
		return GeometryMultipoint, nil
	case "polyline", string(GeometryPolyline):
		return GeometryPolyline, nil
	case "polygon", string(GeometryPolygon):
		return GeometryPolygon, nil
	default:
		return "", eris.Wrapf(ErrUnsupportedGeometryKind, "%q is not one of point, multipoint, polyline, polygon", s)
	}
}

// Feature is one record's geometry plus its remaining attribute values.
type Feature struct {
	Geometry   map[string]any `json:"geometry"`
	Attributes map[string]any `json:"attributes"`
}

// PointOptions configures how the point encoder locates coordinates inside
// a record.
type PointOptions struct {
	// XCol and YCol name the coordinate columns. Defaults: "x" and "y".
	XCol string
	YCol string
	// NestedKey, when set, names a record key holding a sub-mapping that
	// carries the coordinate values instead of the record itself.
	NestedKey string
	// Exclude lists additional columns to drop from feature attributes.
	Exclude []string
}

func (o PointOptions) xCol() string {
	if o.XCol == "" {
		return "x"
	}
	return o.XCol
}

func (o PointOptions) yCol() string {
	if o.YCol == "" {
		return "y"
	}
	return o.YCol
}

// encoderFunc turns one record into a Feature. Unimplemented geometry
// kinds keep this signature so a future encoder is a drop-in replacement.
type encoderFunc func(record map[string]any, sr SpatialReference, opts PointOptions) (Feature, error)

// encoders is the complete dispatch table over geometry kinds. Every kind
// is present even when its encoder only reports ErrNotImplemented.
var encoders = map[GeometryKind]encoderFunc{
	GeometryPoint:      encodePointFeature,
	GeometryMultipoint: encodeMultipointFeature,
	GeometryPolyline:   encodePolylineFeature,
	GeometryPolygon:    encodePolygonFeature,
}

// encodePointFeature builds a point feature from a record. Coordinate
// values are passed through uninterpreted; the consuming service validates
// them.
func encodePointFeature(record map[string]any, sr SpatialReference, opts PointOptions) (Feature, error) {
	xCol, yCol := opts.xCol(), opts.yCol()

	var x, y any
	consumed := map[string]bool{shapeColumn: true}

	if opts.NestedKey != "" {
		nested, _ := record[opts.NestedKey].(map[string]any)
		if nested == nil {
			return Feature{}, eris.Errorf("point: record key %q does not hold a coordinate mapping", opts.NestedKey)
		}
		x, y = nested[xCol], nested[yCol]
		consumed[opts.NestedKey] = true
	} else {
		x, y = record[xCol], record[yCol]
	}
	consumed[xCol] = true
	consumed[yCol] = true
	for _, k := range opts.Exclude {
		consumed[k] = true
	}

	attrs := make(map[string]any, len(record))
	for k, v := range record {
		if consumed[k] {
			continue
		}
		attrs[k] = v
	}

	return Feature{
		Geometry: map[string]any{
			"x":                x,
			"y":                y,
			"spatialReference": sr,
		},
		Attributes: attrs,
	}, nil
}

func encodeMultipointFeature(map[string]any, SpatialReference, PointOptions) (Feature, error) {
	return Feature{}, eris.Wrap(ErrNotImplemented, "multipoint feature encoding")
}

func encodePolylineFeature(map[string]any, SpatialReference, PointOptions) (Feature, error) {
	return Feature{}, eris.Wrap(ErrNotImplemented, "polyline feature encoding")
}

func encodePolygonFeature(map[string]any, SpatialReference, PointOptions) (Feature, error) {
	return Feature{}, eris.Wrap(ErrNotImplemented, "polygon feature encoding")
}
