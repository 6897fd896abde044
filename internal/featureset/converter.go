package featureset

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/featureset/internal/frame"
)

// Converter is the stateful configuration surface over Build: create one
// against a dataset, set a spatial reference and geometry kind, then build.
// It holds no derived state between builds; every Build call re-runs the
// full pipeline against the current configuration and dataset.
type Converter struct {
	ds  *frame.Dataset
	cfg Config
}

// NewConverter creates a conversion context for the dataset.
func NewConverter(ds *frame.Dataset) *Converter {
	return &Converter{ds: ds}
}

// SetSpatialReference resolves and stores the spatial reference. It accepts
// the same inputs as ResolveSpatialReference and fails the same way.
func (c *Converter) SetSpatialReference(v any) error {
	sr, err := ResolveSpatialReference(v)
	if err != nil {
		return err
	}
	c.cfg.SpatialRef = sr
	return nil
}

// SetGeometry validates and stores the geometry kind.
func (c *Converter) SetGeometry(kind GeometryKind) error {
	if _, ok := encoders[kind]; !ok {
		return eris.Wrapf(ErrUnsupportedGeometryKind, "%q", kind)
	}
	c.cfg.Kind = kind
	return nil
}

// SetPointOptions stores coordinate-lookup options for the point encoder.
func (c *Converter) SetPointOptions(opts PointOptions) {
	c.cfg.Point = opts
}

// Build runs the conversion with the accumulated configuration. A missing
// spatial reference resolves to the default; a missing geometry kind fails
// with ErrGeometryKindRequired.
func (c *Converter) Build() (*FeatureCollection, error) {
	return Build(c.ds, c.cfg)
}

// LayerOptions describes a target hosted feature layer.
type LayerOptions struct {
	Title string
	URL   string
}

// PublishLayer uploads a feature collection to a hosted feature service.
// The publishing collaborator is not implemented.
func PublishLayer(_ context.Context, _ *FeatureCollection, _ LayerOptions) error {
	return eris.Wrap(ErrNotImplemented, "publish to feature layer")
}

// FromLayer reads a hosted feature layer back into a dataset. The reading
// collaborator is not implemented.
func FromLayer(_ context.Context, _ string) (*frame.Dataset, error) {
	return nil, eris.Wrap(ErrNotImplemented, "read from feature layer")
}
