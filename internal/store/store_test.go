package store_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphlayout/layered/core"
	"github.com/graphlayout/layered/internal/store"
)

// Connect requires a live MongoDB instance and is exercised in the
// integration environment, not here; this test covers the Record
// shape that actually crosses the wire.
func TestRecordJSONRoundTrip(t *testing.T) {
	t.Parallel()

	rec := store.Record{
		ID:        "abc123",
		Graph:     core.InputGraph{Directed: true, Nodes: []core.InputNode{{ID: "a"}}},
		Layout:    &core.OutputGraph{Directed: true, Nodes: []core.OutputNode{{ID: "a"}}},
		CreatedAt: time.Unix(0, 0).UTC(),
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var back store.Record
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rec.ID, back.ID)
	assert.Equal(t, rec.Graph.Nodes[0].ID, back.Graph.Nodes[0].ID)
	require.NotNil(t, back.Layout)
	assert.Equal(t, rec.Layout.Nodes[0].ID, back.Layout.Nodes[0].ID)
}
