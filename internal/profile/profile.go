// Package profile loads reusable conversion profiles from YAML files. A
// profile captures the geometry and spatial-reference settings for a
// recurring conversion so the CLI doesn't need them respelled as flags.
package profile

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Profile describes one conversion.
type Profile struct {
	// Geometry is the geometry kind short name: point, multipoint,
	// polyline, or polygon.
	Geometry string `yaml:"geometry"`
	// WKID is the spatial reference well-known ID; 0 means the default.
	WKID int `yaml:"wkid"`
	// XColumn and YColumn name the coordinate columns.
	XColumn string `yaml:"x_column"`
	YColumn string `yaml:"y_column"`
	// NestedKey names a column holding a nested coordinate mapping.
	NestedKey string `yaml:"nested_key"`
	// Exclude lists columns to drop from feature attributes.
	Exclude []string `yaml:"exclude"`
}

// Load reads a profile from a YAML file with a top-level "profile" key.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "profile: read %s", path)
	}

	var wrapper struct {
		Profile Profile `yaml:"profile"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrapf(err, "profile: parse %s", path)
	}

	return &wrapper.Profile, nil
}
