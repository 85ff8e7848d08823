package meshtopo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncidence_Strip(t *testing.T) {
	// 3---4---5
	// | A | B |
	// 0---1---2
	m := gridMesh(t, 2, 1)
	inc, err := m.Incidence()
	require.NoError(t, err)

	f, ok := inc.FaceAt(1, 4)
	assert.True(t, ok)
	assert.Equal(t, 0, f)
	f, ok = inc.FaceAt(4, 1)
	assert.True(t, ok)
	assert.Equal(t, 1, f)
	_, ok = inc.FaceAt(1, 0)
	assert.False(t, ok)

	assert.True(t, inc.HasEdge(0, 1))
	assert.True(t, inc.HasEdge(1, 0))
	assert.False(t, inc.HasEdge(0, 4))

	assert.True(t, inc.IsBoundaryEdge(0, 1))
	assert.False(t, inc.IsBoundaryEdge(1, 4))
	assert.False(t, inc.IsBoundaryEdge(0, 5))

	assert.Equal(t, []int{0, 2, 4}, inc.Neighbors(1))
	assert.Equal(t, 3, inc.Degree(1))
	assert.Equal(t, 2, inc.Degree(0))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, inc.BoundaryVertices())
}

func TestIncidence_OrderedNeighbors(t *testing.T) {
	t.Run("boundary vertex starts and ends on the boundary", func(t *testing.T) {
		inc, err := gridMesh(t, 2, 1).Incidence()
		require.NoError(t, err)

		nbrs, err := inc.OrderedNeighbors(1)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 4, 2}, nbrs)

		nbrs, err = inc.OrderedNeighbors(4)
		require.NoError(t, err)
		assert.Equal(t, []int{5, 1, 3}, nbrs)
	})

	t.Run("interior vertex is a full cycle", func(t *testing.T) {
		// Centre of a 2x2 grid is vertex 4.
		inc, err := gridMesh(t, 2, 2).Incidence()
		require.NoError(t, err)
		assert.False(t, inc.IsBoundaryVertex(4))

		nbrs, err := inc.OrderedNeighbors(4)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3, 7, 5}, nbrs)
	})

	t.Run("cube corner", func(t *testing.T) {
		inc, err := cubeMesh(t).Incidence()
		require.NoError(t, err)
		assert.Empty(t, inc.BoundaryVertices())

		nbrs, err := inc.OrderedNeighbors(4)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 7, 5}, nbrs)
	})

	t.Run("isolated vertex", func(t *testing.T) {
		m := gridMesh(t, 1, 1)
		v := m.AddVertex(Pt(5, 5, 0), nil)
		inc, err := m.Incidence()
		require.NoError(t, err)

		nbrs, err := inc.OrderedNeighbors(v)
		require.NoError(t, err)
		assert.Empty(t, nbrs)
		assert.False(t, inc.IsBoundaryVertex(v))
	})
}
