package cli_test

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphlayout/layered/core"
	"github.com/graphlayout/layered/internal/cli"
)

func TestRunCommandWritesLayoutFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "graph.json")
	in := core.InputGraph{
		Directed: true,
		Nodes:    []core.InputNode{{ID: "a"}, {ID: "b"}},
		Edges:    []core.InputEdge{{ID: "ab", Source: "a", Target: "b"}},
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(input, data, 0o644))

	c := cli.New(io.Discard, cli.LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"run", input})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	require.NoError(t, root.Execute())

	outPath := filepath.Join(dir, "graph.layout.json")
	outData, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var out core.OutputGraph
	require.NoError(t, json.Unmarshal(outData, &out))
	assert.Len(t, out.Nodes, 2)
	assert.Len(t, out.Edges, 1)
}
