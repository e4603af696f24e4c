package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneResolveEvent_Inputs(t *testing.T) {
	lat, lon := 51.538, 46.010
	empty := ""
	addr := "Саратов, Московская 1"

	t.Run("coordinates", func(t *testing.T) {
		e := ZoneResolveEvent{Latitude: &lat, Longitude: &lon}
		assert.True(t, e.HasCoordinates())
		assert.False(t, e.HasAddress())
	})

	t.Run("half coordinates are not coordinates", func(t *testing.T) {
		e := ZoneResolveEvent{Latitude: &lat}
		assert.False(t, e.HasCoordinates())
	})

	t.Run("empty address", func(t *testing.T) {
		e := ZoneResolveEvent{Address: &empty}
		assert.False(t, e.HasAddress())

		e.Address = &addr
		assert.True(t, e.HasAddress())
	})
}

func TestZoneResolveEvent_JSON(t *testing.T) {
	raw := `{"order_id":"7f0c2f9e-3b1e-4a53-9d55-5c3f6a2b9a10","address":"Саратов","cart_total":1200}`

	var e ZoneResolveEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	assert.Equal(t, uuid.MustParse("7f0c2f9e-3b1e-4a53-9d55-5c3f6a2b9a10"), e.OrderID)
	require.NotNil(t, e.CartTotal)
	assert.Equal(t, int64(1200), *e.CartTotal)
	assert.Nil(t, e.Latitude)
}
