package featureset

import (
	"encoding/json"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSpatialReference_Default(t *testing.T) {
	sr, err := ResolveSpatialReference(nil)
	require.NoError(t, err)
	assert.Equal(t, SpatialReference{WKID: 4326}, sr)
}

func TestResolveSpatialReference_Int(t *testing.T) {
	sr, err := ResolveSpatialReference(3857)
	require.NoError(t, err)
	assert.Equal(t, SpatialReference{WKID: 3857}, sr)

	sr, err = ResolveSpatialReference(int64(3857))
	require.NoError(t, err)
	assert.Equal(t, 3857, sr.WKID)
}

func TestResolveSpatialReference_String(t *testing.T) {
	sr, err := ResolveSpatialReference("4326")
	require.NoError(t, err)
	assert.Equal(t, SpatialReference{WKID: 4326}, sr)

	_, err = ResolveSpatialReference("abc")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalidSpatialReference))
}

func TestResolveSpatialReference_PassThrough(t *testing.T) {
	in := SpatialReference{LatestWKID: 3857}
	sr, err := ResolveSpatialReference(in)
	require.NoError(t, err)
	assert.Equal(t, in, sr)

	sr, err = ResolveSpatialReference(&in)
	require.NoError(t, err)
	assert.Equal(t, in, sr)
}

func TestResolveSpatialReference_WrappedMapping(t *testing.T) {
	sr, err := ResolveSpatialReference(map[string]any{
		"spatialReference": map[string]any{"wkid": 102100},
	})
	require.NoError(t, err)
	assert.Equal(t, SpatialReference{WKID: 102100}, sr)

	// JSON-decoded numbers arrive as float64.
	sr, err = ResolveSpatialReference(map[string]any{
		"spatialReference": map[string]any{"latestWkid": float64(3857)},
	})
	require.NoError(t, err)
	assert.Equal(t, SpatialReference{LatestWKID: 3857}, sr)
}

func TestResolveSpatialReference_BareMappingRejected(t *testing.T) {
	// A bare wkid mapping without the spatialReference wrapper is not
	// accepted; only the wrapped form is.
	_, err := ResolveSpatialReference(map[string]any{"wkid": 4326})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalidSpatialReference))
}

func TestResolveSpatialReference_MappingWithoutWKID(t *testing.T) {
	_, err := ResolveSpatialReference(map[string]any{
		"spatialReference": map[string]any{"name": "web mercator"},
	})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalidSpatialReference))
}

func TestResolveSpatialReference_UnsupportedType(t *testing.T) {
	_, err := ResolveSpatialReference(3.14)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalidSpatialReference))
}

func TestSpatialReference_JSON(t *testing.T) {
	data, err := json.Marshal(SpatialReference{WKID: 4326})
	require.NoError(t, err)
	assert.JSONEq(t, `{"wkid":4326}`, string(data))

	data, err = json.Marshal(SpatialReference{LatestWKID: 3857})
	require.NoError(t, err)
	assert.JSONEq(t, `{"latestWkid":3857}`, string(data))
}
