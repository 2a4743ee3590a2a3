package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitListUpdateVertex(t *testing.T) {
	vl := NewVisitListWithNeighbours(1, 2)

	assert.True(t, vl.UpdateVertex(NewPathSegment(5, 3, NewPathSegmentRoot(1))))
	assert.False(t, vl.UpdateVertex(NewPathSegment(5, 4, NewPathSegmentRoot(2))))
	assert.False(t, vl.UpdateVertex(NewPathSegment(5, 3, NewPathSegmentRoot(2))))
	assert.True(t, vl.UpdateVertex(NewPathSegment(5, 1, NewPathSegmentRoot(2))))

	require.True(t, vl.Contains(5))
	assert.Equal(t, 1.0, vl.GetPathTo(5).Weight())
	assert.Equal(t, []Index{2, 5}, vl.GetPathTo(5).ToArray())
	assert.Nil(t, vl.GetPathTo(6))

	n1, n2, ok := vl.ResolutionArc()
	assert.True(t, ok)
	assert.Equal(t, Index(1), n1)
	assert.Equal(t, Index(2), n2)
}

func TestVisitListGetFirst(t *testing.T) {
	vl := NewVisitList()
	vl.UpdateVertex(NewPathSegment(3, 2, NewPathSegmentRoot(0)))
	vl.UpdateVertex(NewPathSegment(1, 5, NewPathSegmentRoot(0)))
	vl.UpdateVertex(NewPathSegment(2, 2, NewPathSegmentRoot(0)))

	got := make([]Index, 0)
	for seg := vl.GetFirst(); seg != nil; seg = vl.GetFirst() {
		got = append(got, seg.Vertex())
	}
	assert.Equal(t, []Index{2, 3, 1}, got)
	assert.Equal(t, 0, vl.Count())

	_, _, ok := vl.ResolutionArc()
	assert.False(t, ok)
}

func TestVisitListFromVertex(t *testing.T) {
	vl := NewVisitListFromVertex(4)
	assert.Equal(t, []Index{4}, vl.GetVertices())
	assert.Equal(t, 0.0, vl.GetPathTo(4).Weight())
	_, _, ok := vl.ResolutionArc()
	assert.False(t, ok)
}
