package utils

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 3x2 node lattice, two quads: nodes 0..5 row-major over X
//
//	3 - 4 - 5
//	|   |   |
//	0 - 1 - 2
var twoQuads = [][]int{{0, 1, 3, 4}, {1, 2, 4, 5}}

func TestBuildPortrait(t *testing.T) {
	p, err := BuildPortrait(6, twoQuads)
	require.NoError(t, err)
	assert.Equal(t, 6, p.N)
	assert.Equal(t, []int{0, 1, 3, 4}, p.Columns(0))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, p.Columns(1))
	assert.Equal(t, []int{1, 2, 4, 5}, p.Columns(2))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, p.Columns(4))
	assert.Equal(t, 4+6+4+4+6+4, p.NNZ())
	for i := 0; i < p.N; i++ {
		assert.Equal(t, i, p.ColIndex[p.DiagonalIndex(i)])
		// Symmetric structure
		for _, j := range p.Columns(i) {
			assert.GreaterOrEqual(t, p.Position(j, i), 0)
		}
	}
	assert.Equal(t, -1, p.Position(0, 2))
	assert.Equal(t, 4, p.Bandwidth())
}

func TestBuildPortraitOrderInvariance(t *testing.T) {
	var (
		nx, ny = 5, 4
		conn   [][]int
	)
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			n0 := i + j*nx
			conn = append(conn, []int{n0, n0 + 1, n0 + nx, n0 + nx + 1})
		}
	}
	ref, err := BuildPortrait(nx*ny, conn)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([][]int, len(conn))
		copy(shuffled, conn)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		p, err := BuildPortrait(nx*ny, shuffled)
		require.NoError(t, err)
		assert.True(t, ref.Equal(p), "trial %d", trial)
	}
}

func TestBuildPortraitErrors(t *testing.T) {
	cases := []struct {
		name  string
		nodes int
		conn  [][]int
		err   error
	}{
		{"NodeTooLarge", 6, [][]int{{0, 1, 3, 6}}, ErrTopology},
		{"NegativeNode", 6, [][]int{{-1, 1, 3, 4}}, ErrTopology},
		{"NoNodes", 0, nil, ErrEmptyPortrait},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildPortrait(tc.nodes, tc.conn)
			assert.True(t, errors.Is(err, tc.err), "got %v", err)
		})
	}
}
