package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMapRoundTrip(t *testing.T) {
	original := JSONMap{"post_id": float64(42), "note": "hi"}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned JSONMap
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestJSONMapNil(t *testing.T) {
	var m JSONMap
	value, err := m.Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	var scanned JSONMap
	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
}

func TestJSONMapScanString(t *testing.T) {
	var scanned JSONMap
	require.NoError(t, scanned.Scan(`{"k":"v"}`))
	assert.Equal(t, "v", scanned["k"])
}

func TestJSONMapScanUnsupported(t *testing.T) {
	var scanned JSONMap
	assert.Error(t, scanned.Scan(42))
}
