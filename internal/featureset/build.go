// Package featureset converts columnar datasets into the Esri FeatureSet
// interchange format: a declared field schema, a spatial reference, and one
// geometry-plus-attributes feature per row. The output marshals directly to
// the JSON consumed by GIS feature services.
package featureset

import (
	"runtime"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/featureset/internal/frame"
)

// FeatureCollection is the full conversion output. Field names and
// geometry-type literals match the feature service wire format exactly.
type FeatureCollection struct {
	ObjectIDFieldName string           `json:"objectIdFieldName"`
	GlobalIDFieldName string           `json:"globalIdFieldName"`
	DisplayFieldName  string           `json:"displayFieldName"`
	GeometryType      GeometryKind     `json:"geometryType"`
	SpatialReference  SpatialReference `json:"spatialReference"`
	Fields            []Field          `json:"fields"`
	Features          []Feature        `json:"features"`
}

// Config carries everything a conversion needs beyond the dataset itself.
// A zero Config has no geometry kind and fails Build with
// ErrGeometryKindRequired.
type Config struct {
	// SpatialRef is any input accepted by ResolveSpatialReference; nil
	// resolves the default {wkid: 4326}.
	SpatialRef any
	// Kind selects the geometry encoder. Required.
	Kind GeometryKind
	// Point configures the point encoder's coordinate lookup.
	Point PointOptions
	// Concurrency caps the encoder fan-out. Zero means GOMAXPROCS.
	Concurrency int
}

// Build converts a dataset into a FeatureCollection. It is a pure function
// of the dataset and config: spatial reference resolution, numeric-null
// normalization, field inference, and per-row encoding are all re-derived
// on every call. It either returns a complete collection or an error with
// no partial output.
//
// Rows are encoded chunk-parallel; output feature order always matches
// input row order.
func Build(ds *frame.Dataset, cfg Config) (*FeatureCollection, error) {
	if cfg.Kind == "" {
		return nil, eris.Wrap(ErrGeometryKindRequired, "set a geometry kind before building")
	}
	encode, ok := encoders[cfg.Kind]
	if !ok {
		return nil, eris.Wrapf(ErrUnsupportedGeometryKind, "%q", cfg.Kind)
	}

	sr, err := ResolveSpatialReference(cfg.SpatialRef)
	if err != nil {
		return nil, err
	}

	normalized := frame.FillNumericZeros(ds)

	fields, err := InferFields(normalized)
	if err != nil {
		return nil, err
	}

	features, err := encodeAll(normalized, encode, sr, cfg)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("feature set built",
		zap.String("component", "featureset.build"),
		zap.String("geometry", string(cfg.Kind)),
		zap.Int("fields", len(fields)),
		zap.Int("features", len(features)),
	)

	return &FeatureCollection{
		GeometryType:     cfg.Kind,
		SpatialReference: sr,
		Fields:           fields,
		Features:         features,
	}, nil
}

// encodeAll fans row encoding out across chunks. Each feature is written
// at its own row index, so ordering is preserved regardless of which chunk
// finishes first.
func encodeAll(ds *frame.Dataset, encode encoderFunc, sr SpatialReference, cfg Config) ([]Feature, error) {
	n := ds.Len()
	features := make([]Feature, n)
	if n == 0 {
		return features, nil
	}

	limit := cfg.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g := new(errgroup.Group)
	g.SetLimit(limit)
	for _, r := range frame.Chunks(n, chunkRows(n, limit)) {
		g.Go(func() error {
			for i := r[0]; i < r[1]; i++ {
				f, err := encode(ds.Record(i), sr, cfg.Point)
				if err != nil {
					return eris.Wrapf(err, "encode row %d", i)
				}
				features[i] = f
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return features, nil
}

// chunkRows sizes chunks so each worker gets roughly one.
func chunkRows(n, workers int) int {
	size := (n + workers - 1) / workers
	if size < 1 {
		size = 1
	}
	return size
}
