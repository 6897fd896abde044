package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/sells-group/featureset/internal/featureset"
	"github.com/sells-group/featureset/internal/frame"
	"github.com/sells-group/featureset/internal/profile"
	"github.com/sells-group/featureset/internal/tabio"
)

var convertFlags struct {
	input     string
	format    string
	query     string
	sheet     string
	charset   string
	geometry  string
	sr        string
	xCol      string
	yCol      string
	nestedKey string
	exclude   []string
	profile   string
	out       string
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a tabular source into FeatureSet JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ds, err := readDataset(ctx)
		if err != nil {
			return err
		}

		buildCfg, err := buildConfig()
		if err != nil {
			return err
		}

		fc, err := featureset.Build(ds, buildCfg)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(fc, "", "  ")
		if err != nil {
			return eris.Wrap(err, "convert: marshal feature collection")
		}
		data = append(data, '\n')

		if convertFlags.out == "" || convertFlags.out == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(convertFlags.out, data, 0o644); err != nil {
			return eris.Wrapf(err, "convert: write %s", convertFlags.out)
		}

		zap.L().Info("conversion complete",
			zap.String("input", convertFlags.input),
			zap.String("output", convertFlags.out),
			zap.Int("features", len(fc.Features)),
		)
		return nil
	},
}

// readDataset loads the input into a frame using the reader selected by
// --format, falling back to the file extension.
func readDataset(ctx context.Context) (*frame.Dataset, error) {
	format := convertFlags.format
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(convertFlags.input), ".")
	}

	switch format {
	case "csv":
		f, err := os.Open(convertFlags.input)
		if err != nil {
			return nil, eris.Wrapf(err, "convert: open %s", convertFlags.input)
		}
		defer f.Close()
		return tabio.ReadCSV(ctx, f, tabio.CSVOptions{Charset: convertFlags.charset, TrimSpace: true})
	case "xlsx":
		return tabio.ReadXLSX(convertFlags.input, tabio.XLSXOptions{SheetName: convertFlags.sheet})
	case "shp":
		return tabio.ReadShapefile(convertFlags.input, tabio.ShapefileOptions{
			XCol: convertFlags.xCol,
			YCol: convertFlags.yCol,
		})
	case "sqlite", "db":
		if convertFlags.query == "" {
			return nil, eris.New("convert: --query is required for sqlite inputs")
		}
		db, err := sql.Open("sqlite", convertFlags.input)
		if err != nil {
			return nil, eris.Wrapf(err, "convert: open sqlite %s", convertFlags.input)
		}
		defer db.Close()
		return tabio.QueryDataset(ctx, db, convertFlags.query)
	default:
		return nil, eris.Errorf("convert: unknown input format %q (want csv, xlsx, shp, or sqlite)", format)
	}
}

// buildConfig merges profile, flags, and config-file defaults into a
// conversion config. Flags win over the profile, which wins over defaults.
func buildConfig() (featureset.Config, error) {
	geometry := convertFlags.geometry
	srInput := convertFlags.sr
	point := featureset.PointOptions{
		XCol:      convertFlags.xCol,
		YCol:      convertFlags.yCol,
		NestedKey: convertFlags.nestedKey,
		Exclude:   convertFlags.exclude,
	}

	if convertFlags.profile != "" {
		p, err := profile.Load(convertFlags.profile)
		if err != nil {
			return featureset.Config{}, err
		}
		if geometry == "" {
			geometry = p.Geometry
		}
		if srInput == "" && p.WKID != 0 {
			srInput = strconv.Itoa(p.WKID)
		}
		if point.XCol == "" {
			point.XCol = p.XColumn
		}
		if point.YCol == "" {
			point.YCol = p.YColumn
		}
		if point.NestedKey == "" {
			point.NestedKey = p.NestedKey
		}
		if len(point.Exclude) == 0 {
			point.Exclude = p.Exclude
		}
	}

	if geometry == "" {
		geometry = "point"
	}
	kind, err := featureset.ParseGeometryKind(geometry)
	if err != nil {
		return featureset.Config{}, err
	}

	if point.XCol == "" {
		point.XCol = cfg.Convert.XColumn
	}
	if point.YCol == "" {
		point.YCol = cfg.Convert.YColumn
	}

	var sr any
	switch {
	case srInput != "":
		sr = srInput
	case cfg.Convert.WKID != 0:
		sr = cfg.Convert.WKID
	}

	return featureset.Config{
		SpatialRef:  sr,
		Kind:        kind,
		Point:       point,
		Concurrency: cfg.Convert.Concurrency,
	}, nil
}

func init() {
	convertCmd.Flags().StringVarP(&convertFlags.input, "input", "i", "", "input file (csv, xlsx, shp, sqlite)")
	convertCmd.Flags().StringVar(&convertFlags.format, "format", "", "input format override")
	convertCmd.Flags().StringVar(&convertFlags.query, "query", "", "SQL query for sqlite inputs")
	convertCmd.Flags().StringVar(&convertFlags.sheet, "sheet", "", "XLSX sheet name (default first sheet)")
	convertCmd.Flags().StringVar(&convertFlags.charset, "charset", "", "CSV charset (default UTF-8)")
	convertCmd.Flags().StringVarP(&convertFlags.geometry, "geometry", "g", "", "geometry kind: point, multipoint, polyline, polygon")
	convertCmd.Flags().StringVar(&convertFlags.sr, "sr", "", "spatial reference wkid")
	convertCmd.Flags().StringVar(&convertFlags.xCol, "x", "", "x coordinate column")
	convertCmd.Flags().StringVar(&convertFlags.yCol, "y", "", "y coordinate column")
	convertCmd.Flags().StringVar(&convertFlags.nestedKey, "nested-key", "", "column holding a nested coordinate mapping")
	convertCmd.Flags().StringSliceVar(&convertFlags.exclude, "exclude", nil, "columns to exclude from attributes")
	convertCmd.Flags().StringVar(&convertFlags.profile, "profile", "", "conversion profile YAML")
	convertCmd.Flags().StringVarP(&convertFlags.out, "out", "o", "", "output path (default stdout)")
	_ = convertCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(convertCmd)
}
