package utils

import (
	"fmt"
	"sort"
)

// Portrait is the fixed nonzero structure of a square sparse matrix, stored in compressed
// row form. Column indices within a row are sorted ascending and every row holds its diagonal.
type Portrait struct {
	N        int
	RowPtr   []int // len N+1
	ColIndex []int // len RowPtr[N]
	diag     []int // position of (i,i) inside ColIndex
}

// BuildPortrait collects, for every row, the union of node indices sharing an element with
// that row's node. The result does not depend on the order of the connectivity slice.
func BuildPortrait(nodeCount int, connectivity [][]int) (p *Portrait, err error) {
	var (
		adjacency = make([]map[int]struct{}, nodeCount)
	)
	if nodeCount <= 0 {
		err = fmt.Errorf("%w: node count = %d", ErrEmptyPortrait, nodeCount)
		return
	}
	for i := range adjacency {
		adjacency[i] = map[int]struct{}{i: {}}
	}
	for k, nodes := range connectivity {
		for _, n := range nodes {
			if n < 0 || n >= nodeCount {
				err = fmt.Errorf("%w: element %d references node %d, node count = %d",
					ErrTopology, k, n, nodeCount)
				return
			}
		}
		for _, i := range nodes {
			for _, j := range nodes {
				adjacency[i][j] = struct{}{}
			}
		}
	}
	p = &Portrait{
		N:      nodeCount,
		RowPtr: make([]int, nodeCount+1),
		diag:   make([]int, nodeCount),
	}
	for i, row := range adjacency {
		p.RowPtr[i+1] = p.RowPtr[i] + len(row)
	}
	p.ColIndex = make([]int, p.RowPtr[nodeCount])
	for i, row := range adjacency {
		cols := p.ColIndex[p.RowPtr[i]:p.RowPtr[i+1]]
		var ii int
		for j := range row {
			cols[ii] = j
			ii++
		}
		sort.Ints(cols)
		p.diag[i] = p.RowPtr[i] + sort.SearchInts(cols, i)
	}
	return
}

// NNZ is the number of stored entries, explicit zeros included.
func (p *Portrait) NNZ() int { return len(p.ColIndex) }

// Columns returns the sorted column indices of row i. The slice aliases the portrait.
func (p *Portrait) Columns(i int) []int {
	return p.ColIndex[p.RowPtr[i]:p.RowPtr[i+1]]
}

// Position returns the storage offset of (i,j), or -1 when (i,j) is outside the portrait.
func (p *Portrait) Position(i, j int) int {
	var (
		cols = p.Columns(i)
		k    = sort.SearchInts(cols, j)
	)
	if k == len(cols) || cols[k] != j {
		return -1
	}
	return p.RowPtr[i] + k
}

// DiagonalIndex returns the storage offset of (i,i).
func (p *Portrait) DiagonalIndex(i int) int { return p.diag[i] }

// Equal reports whether two portraits describe the same row/column sets.
func (p *Portrait) Equal(o *Portrait) bool {
	if p.N != o.N || len(p.ColIndex) != len(o.ColIndex) {
		return false
	}
	for i, v := range p.RowPtr {
		if o.RowPtr[i] != v {
			return false
		}
	}
	for i, v := range p.ColIndex {
		if o.ColIndex[i] != v {
			return false
		}
	}
	return true
}

// Bandwidth returns the largest |i-j| over stored entries.
func (p *Portrait) Bandwidth() (bw int) {
	for i := 0; i < p.N; i++ {
		cols := p.Columns(i)
		if d := i - cols[0]; d > bw {
			bw = d
		}
		if d := cols[len(cols)-1] - i; d > bw {
			bw = d
		}
	}
	return
}
