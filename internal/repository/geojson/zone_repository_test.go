package geojson

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleZones = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Город", "color": "#3388ff", "priority": 2, "min_order": 1500, "delivery_time": "60-90 мин"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [
          [[49.00, 55.70], [49.30, 55.70], [49.30, 55.90], [49.00, 55.90], [49.00, 55.70]],
          [[49.05, 55.75], [49.08, 55.75], [49.08, 55.78], [49.05, 55.78], [49.05, 55.75]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {"id": "5f0c8a9e-3c1d-4b8e-9a51-0c3d2e1f4a7b", "name": "Центр", "priority": 1, "min_order": 1000, "delivery_time": "30-45 мин"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[49.10, 55.78], [49.16, 55.78], [49.16, 55.82], [49.10, 55.82], [49.10, 55.78]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"name": "Архив", "priority": 0, "active": false},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[48.0, 54.0], [48.1, 54.0], [48.1, 54.1], [48.0, 54.0]]]
      }
    }
  ]
}`

func TestParseZones(t *testing.T) {
	zones, err := ParseZones([]byte(sampleZones))
	require.NoError(t, err)
	require.Len(t, zones, 3)

	// порядок по приоритету
	assert.Equal(t, "Архив", zones[0].Name)
	assert.Equal(t, "Центр", zones[1].Name)
	assert.Equal(t, "Город", zones[2].Name)

	center := zones[1]
	assert.Equal(t, uuid.MustParse("5f0c8a9e-3c1d-4b8e-9a51-0c3d2e1f4a7b"), center.ID)
	assert.Equal(t, int64(1000), center.MinOrder)
	assert.Equal(t, "30-45 мин", center.DeliveryTime)
	assert.True(t, center.IsActive)

	// [lon, lat] -> Lat/Lon, замыкающая точка отброшена
	require.Len(t, center.OuterRing, 4)
	assert.Equal(t, 55.78, center.OuterRing[0].Lat)
	assert.Equal(t, 49.10, center.OuterRing[0].Lon)

	city := zones[2]
	assert.Equal(t, "#3388ff", city.Color)
	require.Len(t, city.HoleRings, 1)
	assert.Len(t, city.HoleRings[0], 4)

	assert.False(t, zones[0].IsActive)
}

func TestParseZones_DeterministicID(t *testing.T) {
	first, err := ParseZones([]byte(sampleZones))
	require.NoError(t, err)
	second, err := ParseZones([]byte(sampleZones))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, first[2].ID)
	assert.Equal(t, first[2].ID, second[2].ID)
}

func TestParseZones_DefaultPriorityIsFeatureIndex(t *testing.T) {
	data := `{"type":"FeatureCollection","features":[
	  {"type":"Feature","properties":{"name":"A"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}},
	  {"type":"Feature","properties":{"name":"B"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}
	]}`

	zones, err := ParseZones([]byte(data))
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, 0, zones[0].Priority)
	assert.Equal(t, 1, zones[1].Priority)
	assert.Equal(t, "A", zones[0].Name)
}

func TestParseZones_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "not geojson",
			data: `{"type":`,
			want: "decode geojson",
		},
		{
			name: "missing name",
			data: `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`,
			want: "\"name\" is required",
		},
		{
			name: "multipolygon",
			data: `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"name":"M"},"geometry":{"type":"MultiPolygon","coordinates":[[[[0,0],[1,0],[1,1],[0,0]]]]}}]}`,
			want: "geometry must be Polygon, got MultiPolygon",
		},
		{
			name: "point",
			data: `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"name":"P"},"geometry":{"type":"Point","coordinates":[0,0]}}]}`,
			want: "got Point",
		},
		{
			name: "bad id",
			data: `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"name":"X","id":"zone-1"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`,
			want: "invalid id",
		},
		{
			name: "fractional min order",
			data: `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"name":"F","min_order":999.9},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`,
			want: "feature #0 \"F\": min_order must be a whole number, got 999.9",
		},
		{
			name: "min order as string",
			data: `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"name":"S","min_order":"1000"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`,
			want: "min_order must be a number, got string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseZones([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseZones_MinOrder(t *testing.T) {
	data := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"name":"Whole","min_order":1500.0},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}},
		{"type":"Feature","properties":{"name":"Free"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}
	]}`

	zones, err := ParseZones([]byte(data))
	require.NoError(t, err)
	require.Len(t, zones, 2)

	assert.Equal(t, int64(1500), zones[0].MinOrder)
	assert.Equal(t, int64(0), zones[1].MinOrder)
}

func TestZoneRepository_ListActive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.geojson")
	require.NoError(t, os.WriteFile(path, []byte(sampleZones), 0o600))

	repo := NewZoneRepository(path, zap.NewNop())
	zones, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "Центр", zones[0].Name)
	assert.Equal(t, "Город", zones[1].Name)
}

func TestZoneRepository_ListActive_MissingFile(t *testing.T) {
	repo := NewZoneRepository(filepath.Join(t.TempDir(), "absent.geojson"), zap.NewNop())
	_, err := repo.ListActive(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestZoneRepository_ExampleFile(t *testing.T) {
	repo := NewZoneRepository(filepath.Join("..", "..", "..", "configs", "zones.example.geojson"), zap.NewNop())

	zones, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 2)

	assert.Equal(t, "Центр", zones[0].Name)
	assert.Equal(t, "Город", zones[1].Name)
	assert.Len(t, zones[1].HoleRings, 1)
	assert.Len(t, zones[0].OuterRing, 4)
}
