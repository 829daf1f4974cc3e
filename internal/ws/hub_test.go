package ws

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishQueuesEnvelope(t *testing.T) {
	h := NewHub()
	h.Publish(EventSaleStockAdded, map[string]int{"id": 3})

	require.Len(t, h.Broadcast, 1)
	var ev struct {
		Type string         `json:"type"`
		Data map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(<-h.Broadcast, &ev))
	assert.Equal(t, EventSaleStockAdded, ev.Type)
	assert.Equal(t, 3, ev.Data["id"])
}

func TestPublishNeverBlocks(t *testing.T) {
	h := NewHub()
	for i := 0; i < cap(h.Broadcast)+10; i++ {
		h.Publish(EventSaleStockUpdated, i)
	}
	assert.Len(t, h.Broadcast, cap(h.Broadcast))
}

func TestNilHubPublish(t *testing.T) {
	var h *Hub
	assert.NotPanics(t, func() { h.Publish(EventInventoryTransaction, nil) })
}
