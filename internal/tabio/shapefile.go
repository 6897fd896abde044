package tabio

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"go.uber.org/zap"

	"github.com/sells-group/featureset/internal/frame"
)

// ShapefileOptions configures the shapefile reader.
type ShapefileOptions struct {
	XCol       string // name for the x coordinate column; default "x"
	YCol       string // name for the y coordinate column; default "y"
	RawStrings bool   // disable type inference on DBF attributes
}

// ReadShapefile reads a shapefile into a dataset with one row per record:
// coordinate columns holding a representative point for the shape, plus one
// column per DBF attribute. Point shapes contribute their own coordinates;
// polyline and polygon shapes are reduced to their centroid. Records with
// no usable geometry get missing coordinate cells.
func ReadShapefile(path string, opts ShapefileOptions) (*frame.Dataset, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "shapefile: open %s", path)
	}
	defer func() { _ = reader.Close() }()

	xCol, yCol := opts.XCol, opts.YCol
	if xCol == "" {
		xCol = "x"
	}
	if yCol == "" {
		yCol = "y"
	}

	fields := reader.Fields()
	attrNames := make([]string, len(fields))
	for i, f := range fields {
		attrNames[i] = strings.TrimRight(f.String(), "\x00")
	}

	var xs, ys []any
	attrs := make([][]any, len(fields))
	var unplaced int

	for reader.Next() {
		_, shape := reader.Shape()

		x, y, ok := representativePoint(shape)
		if ok {
			xs = append(xs, x)
			ys = append(ys, y)
		} else {
			xs = append(xs, nil)
			ys = append(ys, nil)
			unplaced++
		}

		for i := range fields {
			val := strings.TrimSpace(strings.TrimRight(reader.Attribute(i), "\x00"))
			if opts.RawStrings {
				if val == "" {
					attrs[i] = append(attrs[i], nil)
				} else {
					attrs[i] = append(attrs[i], val)
				}
				continue
			}
			attrs[i] = append(attrs[i], inferCell(val))
		}
	}

	if unplaced > 0 {
		zap.L().Debug("shapefile records without usable geometry",
			zap.String("component", "tabio.shapefile"),
			zap.String("path", path),
			zap.Int("records", unplaced),
		)
	}

	cols := make([]frame.Column, 0, len(fields)+2)
	cols = append(cols,
		frame.Column{Name: xCol, Values: xs},
		frame.Column{Name: yCol, Values: ys},
	)
	for i, name := range attrNames {
		cols = append(cols, frame.Column{Name: name, Values: attrs[i]})
	}

	return frame.New(cols...)
}

// representativePoint reduces a shape to a single x/y pair.
func representativePoint(shape shp.Shape) (x, y float64, ok bool) {
	switch s := shape.(type) {
	case *shp.Point:
		return s.X, s.Y, true
	case *shp.PolyLine:
		return lineCentroid(polyLineToMultiLineString(s))
	case *shp.Polygon:
		return areaCentroid(polygonToMultiPolygon(s))
	default:
		return 0, 0, false
	}
}

func lineCentroid(g geom.T) (float64, float64, bool) {
	mls, ok := g.(*geom.MultiLineString)
	if !ok || mls == nil || mls.NumLineStrings() == 0 {
		return 0, 0, false
	}
	lines := make([]*geom.LineString, mls.NumLineStrings())
	for i := range lines {
		lines[i] = mls.LineString(i)
	}
	c := xy.LinesCentroid(lines[0], lines[1:]...)
	return c.X(), c.Y(), true
}

func areaCentroid(g geom.T) (float64, float64, bool) {
	mp, ok := g.(*geom.MultiPolygon)
	if !ok || mp == nil || mp.NumPolygons() == 0 {
		return 0, 0, false
	}
	polys := make([]*geom.Polygon, mp.NumPolygons())
	for i := range polys {
		polys[i] = mp.Polygon(i)
	}
	c := xy.PolygonsCentroid(polys[0], polys[1:]...)
	return c.X(), c.Y(), true
}

// polyLineToMultiLineString converts a shapefile PolyLine to a
// geom.MultiLineString.
func polyLineToMultiLineString(pl *shp.PolyLine) geom.T {
	if pl == nil || pl.NumParts == 0 || len(pl.Points) == 0 {
		return nil
	}

	mls := geom.NewMultiLineString(geom.XY).SetSRID(4326)

	for i := int32(0); i < pl.NumParts; i++ {
		start := pl.Parts[i]
		var end int32
		if i+1 < pl.NumParts {
			end = pl.Parts[i+1]
		} else {
			end = int32(len(pl.Points))
		}

		coords := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			coords = append(coords, pl.Points[j].X, pl.Points[j].Y)
		}

		ls := geom.NewLineStringFlat(geom.XY, coords)
		if err := mls.Push(ls); err != nil {
			zap.L().Debug("skipping malformed linestring part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mls.NumLineStrings() == 0 {
		return nil
	}
	return mls
}

// polygonToMultiPolygon converts a shapefile Polygon to a geom.MultiPolygon.
func polygonToMultiPolygon(p *shp.Polygon) geom.T {
	if p == nil || p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}

		coords := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			coords = append(coords, p.Points[j].X, p.Points[j].Y)
		}

		ring := geom.NewLinearRingFlat(geom.XY, coords)
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}

		if err := mp.Push(poly); err != nil {
			zap.L().Debug("skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
