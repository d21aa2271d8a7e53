package plan

import (
	"testing"

	nemo "github.com/nikosnikolaidis/incubator-nemo"
	"github.com/stretchr/testify/require"
)

func TestVertexAttributesOverwriteAndReportAbsence(t *testing.T) {
	v := CreateVertex("map")
	require.Equal(t, "map", v.Name())
	require.NotEqual(t, "", v.ID())

	_, ok := v.GetAttr(nemo.Placement)
	require.False(t, ok)

	v.SetAttr(nemo.Placement, nemo.Transient)
	placement, ok := v.GetAttr(nemo.Placement)
	require.True(t, ok)
	require.Equal(t, nemo.Transient, placement)

	// setting the same key twice overwrites
	v.SetAttr(nemo.Placement, nemo.Reserved)
	placement, _ = v.GetAttr(nemo.Placement)
	require.Equal(t, nemo.Reserved, placement)

	_, ok = v.GetIntAttr(nemo.StageID)
	require.False(t, ok)
	v.SetIntAttr(nemo.StageID, 0)
	stage, ok := v.GetIntAttr(nemo.StageID)
	require.True(t, ok)
	require.Equal(t, 0, stage)
}

func TestVerticesHaveDistinctIdentities(t *testing.T) {
	a := CreateVertex("map")
	b := CreateVertex("map")
	require.NotEqual(t, a.ID(), b.ID())
}

func TestEdgeCarriesTypeAndEndpoints(t *testing.T) {
	src := CreateVertex("src")
	dst := CreateVertex("dst")
	e := CreateEdge(nemo.ScatterGather, src, dst)
	require.Equal(t, src.ID(), e.Src().ID())
	require.Equal(t, dst.ID(), e.Dst().ID())

	edgeType, ok := e.GetAttr(nemo.EdgeType)
	require.True(t, ok)
	require.Equal(t, nemo.ScatterGather, edgeType)

	_, ok = e.GetAttr(nemo.ChannelDataPlacement)
	require.False(t, ok)
	e.SetAttr(nemo.ChannelDataPlacement, nemo.Memory)
	channel, ok := e.GetAttr(nemo.ChannelDataPlacement)
	require.True(t, ok)
	require.Equal(t, nemo.Memory, channel)
}
