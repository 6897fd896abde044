package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/featureset/internal/featureset"
)

func writeTempFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestConvertCommand_CSVToFeatureSet(t *testing.T) {
	csvPath := writeTempFile(t, "sites.csv", "x,y,names\n36.12,28.21,geography\n47.32,87.12,place\n,,location\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"convert", "--input", csvPath, "--geometry", "point"})
	t.Cleanup(resetConvertFlags)

	require.NoError(t, rootCmd.Execute())

	var fc map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &fc))

	assert.Equal(t, "esriGeometryPoint", fc["geometryType"])
	features := fc["features"].([]any)
	require.Len(t, features, 3)

	last := features[2].(map[string]any)
	geom := last["geometry"].(map[string]any)
	assert.Equal(t, float64(0), geom["x"])
	assert.Equal(t, float64(0), geom["y"])
}

func TestConvertCommand_OutputFile(t *testing.T) {
	csvPath := writeTempFile(t, "sites.csv", "x,y\n1.5,2.5\n")
	outPath := filepath.Join(t.TempDir(), "out.json")

	rootCmd.SetArgs([]string{"convert", "--input", csvPath, "--out", outPath})
	t.Cleanup(resetConvertFlags)

	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "esriGeometryPoint")
}

func TestReadDataset_UnknownFormat(t *testing.T) {
	convertFlags.input = "data.parquet"
	convertFlags.format = ""
	t.Cleanup(resetConvertFlags)

	_, err := readDataset(context.Background())
	assert.Error(t, err)
}

func TestReadDataset_SQLiteRequiresQuery(t *testing.T) {
	convertFlags.input = "data.sqlite"
	convertFlags.query = ""
	t.Cleanup(resetConvertFlags)

	_, err := readDataset(context.Background())
	assert.Error(t, err)
}

func TestBuildConfig_FlagsWinOverProfile(t *testing.T) {
	setTestConfig(t)

	profilePath := writeTempFile(t, "profile.yaml", `
profile:
  geometry: polygon
  wkid: 3857
  x_column: plng
  y_column: plat
  exclude: [hidden]
`)

	convertFlags.profile = profilePath
	convertFlags.geometry = "point"
	convertFlags.xCol = "lng"
	t.Cleanup(resetConvertFlags)

	bc, err := buildConfig()
	require.NoError(t, err)

	assert.Equal(t, featureset.GeometryPoint, bc.Kind)
	assert.Equal(t, "lng", bc.Point.XCol, "flag wins over profile")
	assert.Equal(t, "plat", bc.Point.YCol, "profile fills unset flag")
	assert.Equal(t, []string{"hidden"}, bc.Point.Exclude)
	assert.Equal(t, "3857", bc.SpatialRef)
}

func TestBuildConfig_Defaults(t *testing.T) {
	setTestConfig(t)
	t.Cleanup(resetConvertFlags)

	bc, err := buildConfig()
	require.NoError(t, err)

	assert.Equal(t, featureset.GeometryPoint, bc.Kind)
	assert.Equal(t, "x", bc.Point.XCol)
	assert.Equal(t, "y", bc.Point.YCol)
	assert.Equal(t, 4326, bc.SpatialRef)
}

func TestBuildConfig_BadGeometry(t *testing.T) {
	setTestConfig(t)
	convertFlags.geometry = "hexagon"
	t.Cleanup(resetConvertFlags)

	_, err := buildConfig()
	assert.Error(t, err)
}

func resetConvertFlags() {
	convertFlags.input = ""
	convertFlags.format = ""
	convertFlags.query = ""
	convertFlags.sheet = ""
	convertFlags.charset = ""
	convertFlags.geometry = ""
	convertFlags.sr = ""
	convertFlags.xCol = ""
	convertFlags.yCol = ""
	convertFlags.nestedKey = ""
	convertFlags.exclude = nil
	convertFlags.profile = ""
	convertFlags.out = ""
}
