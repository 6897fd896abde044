package featureset

import "github.com/rotisserie/eris"

// Error kinds surfaced by the conversion pipeline. Callers classify with
// eris.Is and either fix their configuration or pre-clean the dataset.
var (
	// ErrInvalidSpatialReference means a spatial reference input could not
	// be normalized into a wkid descriptor.
	ErrInvalidSpatialReference = eris.New("invalid spatial reference")

	// ErrUnsupportedColumnType means a column's sampled value has a runtime
	// type with no esri field type mapping.
	ErrUnsupportedColumnType = eris.New("unsupported column type")

	// ErrUnsupportedGeometryKind means a geometry kind outside the four
	// esri kinds was requested.
	ErrUnsupportedGeometryKind = eris.New("unsupported geometry kind")

	// ErrGeometryKindRequired means Build was called before a geometry kind
	// was configured.
	ErrGeometryKindRequired = eris.New("geometry kind required")

	// ErrNotImplemented marks encoder variants and remote-layer
	// collaborators whose contracts exist but whose implementations do not.
	ErrNotImplemented = eris.New("not implemented")
)
