package hgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/wusunjie/kahypar/hgraph"
)

// HypergraphSuite exercises the core invariants of the dense-array
// hypergraph: Φ/λ bookkeeping, contraction/uncontraction round-trips,
// and block extraction.
type HypergraphSuite struct {
	suite.Suite
}

func TestHypergraphSuite(t *testing.T) {
	suite.Run(t, new(HypergraphSuite))
}

func buildTriangle(h *hgraph.Hypergraph) (v0, v1, v2 hgraph.VertexId, e0, e1 hgraph.HyperedgeId) {
	v0 = h.AddVertex(1)
	v1 = h.AddVertex(1)
	v2 = h.AddVertex(1)
	e0 = h.AddHyperedge(1, []hgraph.VertexId{v0, v1, v2})
	e1 = h.AddHyperedge(1, []hgraph.VertexId{v0, v1})
	return
}

func (s *HypergraphSuite) TestPinCountAndConnectivityMatchAssignment() {
	h := hgraph.New()
	h.SetK(2)
	v0, v1, v2, e0, e1 := buildTriangle(h)

	require.NoError(s.T(), h.SetNodePart(v0, 0))
	require.NoError(s.T(), h.SetNodePart(v1, 0))
	require.NoError(s.T(), h.SetNodePart(v2, 1))

	require.EqualValues(s.T(), 2, h.PinCount(e0, 0))
	require.EqualValues(s.T(), 1, h.PinCount(e0, 1))
	require.EqualValues(s.T(), 2, h.Connectivity(e0))
	require.EqualValues(s.T(), 2, h.PinCount(e1, 0))
	require.EqualValues(s.T(), 1, h.Connectivity(e1))

	require.EqualValues(s.T(), 2, h.BlockWeight(0))
	require.EqualValues(s.T(), 1, h.BlockWeight(1))
}

func (s *HypergraphSuite) TestSetNodePartRejectsDoubleAssignment() {
	h := hgraph.New()
	h.SetK(2)
	v0 := h.AddVertex(1)
	require.NoError(s.T(), h.SetNodePart(v0, 0))
	require.ErrorIs(s.T(), h.SetNodePart(v0, 1), hgraph.ErrAlreadyAssigned)
}

func (s *HypergraphSuite) TestChangeNodePartRejectsWrongSource() {
	h := hgraph.New()
	h.SetK(2)
	v0 := h.AddVertex(1)
	require.NoError(s.T(), h.SetNodePart(v0, 0))
	require.ErrorIs(s.T(), h.ChangeNodePart(v0, 1, 0), hgraph.ErrWrongSource)
}

func (s *HypergraphSuite) TestChangeNodePartUpdatesPinCounts() {
	h := hgraph.New()
	h.SetK(2)
	v0, v1, v2, e0, _ := buildTriangle(h)
	require.NoError(s.T(), h.SetNodePart(v0, 0))
	require.NoError(s.T(), h.SetNodePart(v1, 0))
	require.NoError(s.T(), h.SetNodePart(v2, 0))
	require.EqualValues(s.T(), 1, h.Connectivity(e0))

	require.NoError(s.T(), h.ChangeNodePart(v2, 0, 1))
	require.EqualValues(s.T(), 2, h.PinCount(e0, 0))
	require.EqualValues(s.T(), 1, h.PinCount(e0, 1))
	require.EqualValues(s.T(), 2, h.Connectivity(e0))
}

// TestContractUncontractRoundTrip is invariant 3: contract followed by
// uncontract with no intervening structural edit restores every
// observable to its pre-contraction value.
func (s *HypergraphSuite) TestContractUncontractRoundTrip() {
	h := hgraph.New()
	h.SetK(2)
	v0, v1, v2, e0, e1 := buildTriangle(h)
	require.NoError(s.T(), h.SetNodePart(v0, 0))
	require.NoError(s.T(), h.SetNodePart(v1, 0))
	require.NoError(s.T(), h.SetNodePart(v2, 0))

	beforePins0 := append([]hgraph.VertexId(nil), h.Pins(e0)...)
	beforePins1 := append([]hgraph.VertexId(nil), h.Pins(e1)...)
	beforeIncV0 := append([]hgraph.HyperedgeId(nil), h.IncidentEdges(v0)...)
	beforeWeightU := h.VertexWeight(v0)
	beforePC0 := [2]int32{h.PinCount(e0, 0), h.PinCount(e0, 1)}
	beforePC1 := [2]int32{h.PinCount(e1, 0), h.PinCount(e1, 1)}

	m, err := h.Contract(v0, v1)
	require.NoError(s.T(), err)
	require.False(s.T(), h.IsActive(v1))
	require.Equal(s.T(), int64(2), h.VertexWeight(v0))

	require.NoError(s.T(), h.Uncontract(m))

	require.True(s.T(), h.IsActive(v1))
	require.Equal(s.T(), beforeWeightU, h.VertexWeight(v0))
	require.Equal(s.T(), beforePins0, h.Pins(e0))
	require.Equal(s.T(), beforePins1, h.Pins(e1))
	require.Equal(s.T(), beforeIncV0, h.IncidentEdges(v0))
	require.EqualValues(s.T(), beforePC0[0], h.PinCount(e0, 0))
	require.EqualValues(s.T(), beforePC0[1], h.PinCount(e0, 1))
	require.EqualValues(s.T(), beforePC1[0], h.PinCount(e1, 0))
	require.EqualValues(s.T(), beforePC1[1], h.PinCount(e1, 1))
}

// TestContractCollapsesParallelHyperedges exercises the lazy
// fingerprint-based merge: contracting v2 into v0 makes e0 and e1
// identical pin sets {v0,v1}, so one must merge into the other.
func (s *HypergraphSuite) TestContractCollapsesParallelHyperedges() {
	h := hgraph.New()
	h.SetK(1)
	v0 := h.AddVertex(1)
	v1 := h.AddVertex(1)
	v2 := h.AddVertex(1)
	e0 := h.AddHyperedge(1, []hgraph.VertexId{v0, v1})
	e1 := h.AddHyperedge(1, []hgraph.VertexId{v0, v1, v2})

	before := h.NumEdges()
	m, err := h.Contract(v0, v2)
	require.NoError(s.T(), err)
	require.Equal(s.T(), before-1, h.NumEdges())
	require.NotEmpty(s.T(), m.Merges)

	require.NoError(s.T(), h.Uncontract(m))
	require.Equal(s.T(), before, h.NumEdges())
	require.True(s.T(), h.EdgeActive(e0))
	require.True(s.T(), h.EdgeActive(e1))
}

func (s *HypergraphSuite) TestContractRejectsMismatchedBlocks() {
	h := hgraph.New()
	h.SetK(2)
	v0, v1, _, _, _ := buildTriangle(h)
	require.NoError(s.T(), h.SetNodePart(v0, 0))
	require.NoError(s.T(), h.SetNodePart(v1, 1))
	_, err := h.Contract(v0, v1)
	require.ErrorIs(s.T(), err, hgraph.ErrBlockMismatch)
}

func (s *HypergraphSuite) TestContractRejectsSameVertex() {
	h := hgraph.New()
	v0 := h.AddVertex(1)
	_, err := h.Contract(v0, v0)
	require.ErrorIs(s.T(), err, hgraph.ErrSameVertex)
}

func (s *HypergraphSuite) TestUncontractOnEmptyHistoryFails() {
	h := hgraph.New()
	v0 := h.AddVertex(1)
	v1 := h.AddVertex(1)
	m, err := h.Contract(v0, v1)
	require.NoError(s.T(), err)
	require.NoError(s.T(), h.Uncontract(m))
	require.ErrorIs(s.T(), h.Uncontract(m), hgraph.ErrEmptyHistory)
}

// TestMultipleContractionsUncontractInReverseOrder drives a chain of
// three contractions and unwinds them in reverse order, checking the
// vertex count and the edge's pin count before and after the unwind.
func (s *HypergraphSuite) TestMultipleContractionsUncontractInReverseOrder() {
	h := hgraph.New()
	h.SetK(1)
	vs := make([]hgraph.VertexId, 5)
	for i := range vs {
		vs[i] = h.AddVertex(1)
	}
	e := h.AddHyperedge(1, []hgraph.VertexId{vs[0], vs[1], vs[2], vs[3], vs[4]})

	var mementos []*hgraph.Memento
	m1, err := h.Contract(vs[0], vs[1])
	require.NoError(s.T(), err)
	mementos = append(mementos, m1)
	m2, err := h.Contract(vs[0], vs[2])
	require.NoError(s.T(), err)
	mementos = append(mementos, m2)
	m3, err := h.Contract(vs[3], vs[4])
	require.NoError(s.T(), err)
	mementos = append(mementos, m3)

	require.Equal(s.T(), 2, h.NumVertices())
	require.Len(s.T(), h.Pins(e), 2)

	for i := len(mementos) - 1; i >= 0; i-- {
		require.NoError(s.T(), h.Uncontract(mementos[i]))
	}
	require.Equal(s.T(), 5, h.NumVertices())
	require.Len(s.T(), h.Pins(e), 5)
}

func (s *HypergraphSuite) TestExtractBlockInducesSubHypergraph() {
	h := hgraph.New()
	h.SetK(2)
	v0, v1, v2, _, _ := buildTriangle(h)
	require.NoError(s.T(), h.SetNodePart(v0, 0))
	require.NoError(s.T(), h.SetNodePart(v1, 0))
	require.NoError(s.T(), h.SetNodePart(v2, 1))

	sub, mapping := h.ExtractBlock(0, false)
	require.Equal(s.T(), 2, sub.NumVertices())
	require.Len(s.T(), mapping, 2)
	for nv, ov := range mapping {
		require.Equal(s.T(), h.VertexWeight(ov), sub.VertexWeight(nv))
	}
}

func (s *HypergraphSuite) TestExtractBlockDropsSingletonsOnlyWhenRequested() {
	h := hgraph.New()
	h.SetK(2)
	v0 := h.AddVertex(1)
	v1 := h.AddVertex(1)
	v2 := h.AddVertex(1)
	h.AddHyperedge(1, []hgraph.VertexId{v0, v1, v2})
	require.NoError(s.T(), h.SetNodePart(v0, 0))
	require.NoError(s.T(), h.SetNodePart(v1, 1))
	require.NoError(s.T(), h.SetNodePart(v2, 1))

	subKeep, _ := h.ExtractBlock(0, false)
	require.Equal(s.T(), 1, subKeep.NumEdges())

	subDrop, _ := h.ExtractBlock(0, true)
	require.Equal(s.T(), 0, subDrop.NumEdges())
}
