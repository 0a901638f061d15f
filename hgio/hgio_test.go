package hgio_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/wusunjie/kahypar/hgio"
	"github.com/wusunjie/kahypar/hgraph"
)

func TestReadHypergraphPlainFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "% a comment line\n3 4\n1 2\n2 3 4\n1 4\n"
	require.NoError(t, afero.WriteFile(fs, "in.hgr", []byte(content), 0o644))

	h, err := hgio.ReadHypergraph(fs, "in.hgr")
	require.NoError(t, err)
	require.Equal(t, 4, h.NumVertices())
	require.Equal(t, 3, h.NumEdges())
	require.ElementsMatch(t, []hgraph.VertexId{0, 1}, h.Pins(0))
	require.ElementsMatch(t, []hgraph.VertexId{1, 2, 3}, h.Pins(1))
	require.ElementsMatch(t, []hgraph.VertexId{0, 3}, h.Pins(2))
}

func TestReadHypergraphWithEdgeAndVertexWeights(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "2 3 11\n5 1 2\n7 2 3\n10\n20\n30\n"
	require.NoError(t, afero.WriteFile(fs, "in.hgr", []byte(content), 0o644))

	h, err := hgio.ReadHypergraph(fs, "in.hgr")
	require.NoError(t, err)
	require.EqualValues(t, 5, h.EdgeWeight(0))
	require.EqualValues(t, 7, h.EdgeWeight(1))
	require.EqualValues(t, 10, h.VertexWeight(0))
	require.EqualValues(t, 20, h.VertexWeight(1))
	require.EqualValues(t, 30, h.VertexWeight(2))
}

func TestReadHypergraphRejectsOutOfRangePin(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "1 2\n1 5\n"
	require.NoError(t, afero.WriteFile(fs, "bad.hgr", []byte(content), 0o644))

	_, err := hgio.ReadHypergraph(fs, "bad.hgr")
	require.ErrorIs(t, err, hgio.ErrInputFormat)
}

func TestReadHypergraphRejectsTruncatedInput(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := "2 3\n1 2\n"
	require.NoError(t, afero.WriteFile(fs, "short.hgr", []byte(content), 0o644))

	_, err := hgio.ReadHypergraph(fs, "short.hgr")
	require.ErrorIs(t, err, hgio.ErrInputFormat)
}

func TestWriteAssignmentWritesOneBlockIdPerLine(t *testing.T) {
	fs := afero.NewMemMapFs()
	blocks := []hgraph.BlockId{0, 1, 1, 0}
	require.NoError(t, hgio.WriteAssignment(fs, "out.part", blocks))

	data, err := afero.ReadFile(fs, "out.part")
	require.NoError(t, err)
	require.Equal(t, "0\n1\n1\n0\n", string(data))
}
