package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	getHisto := func(K, Np int) (histo map[int]int) {
		pm := NewPartitionMap(Np, K)
		histo = make(map[int]int)
		for np := 0; np < pm.ParallelDegree; np++ {
			kMin, kMax := pm.GetBucketRange(np)
			histo[kMax-kMin]++
		}
		return
	}
	assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
	assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
	assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
	assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
	for n := 64; n < 2000; n++ {
		var (
			sizes []int
			total int
		)
		for size, count := range getHisto(n, 32) {
			sizes = append(sizes, size)
			total += size * count
		}
		assert.Equal(t, n, total)
		if len(sizes) == 2 {
			assert.Equal(t, 1, abs(sizes[0]-sizes[1]))
		}
		assert.LessOrEqual(t, len(sizes), 2)
	}
}

func TestPartitionCover(t *testing.T) {
	for _, tc := range []struct{ degree, maxIndex int }{{6, 100}, {4, 3}, {1, 17}, {8, 64}} {
		pm := NewPartitionMap(tc.degree, tc.maxIndex)
		var next int
		for bn := 0; bn < pm.ParallelDegree; bn++ {
			kMin, kMax := pm.GetBucketRange(bn)
			assert.Equal(t, next, kMin)
			assert.GreaterOrEqual(t, kMax, kMin)
			next = kMax
		}
		assert.Equal(t, tc.maxIndex, next)
	}
	// A degenerate degree is raised to one bucket
	pm := NewPartitionMap(0, 10)
	assert.Equal(t, 1, pm.ParallelDegree)
	kMin, kMax := pm.GetBucketRange(0)
	assert.Equal(t, [2]int{0, 10}, [2]int{kMin, kMax})
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
