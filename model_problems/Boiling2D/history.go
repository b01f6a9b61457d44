package Boiling2D

import "sort"

// SolutionHistory keeps the most recent Window layers plus any pinned layers. Storing layer i
// releases layer i-Window unless it is pinned.
type SolutionHistory struct {
	Window int
	pinned map[int]struct{}
	layers map[int][]float64
}

func NewSolutionHistory(pinnedLayers ...int) (h *SolutionHistory) {
	h = &SolutionHistory{
		Window: 2,
		pinned: make(map[int]struct{}),
		layers: make(map[int][]float64),
	}
	for _, l := range pinnedLayers {
		h.Pin(l)
	}
	return
}

// Pin keeps layer past the window. Pinning a layer already released does not bring it back.
func (h *SolutionHistory) Pin(layer int) { h.pinned[layer] = struct{}{} }

func (h *SolutionHistory) IsPinned(layer int) bool {
	_, ok := h.pinned[layer]
	return ok
}

// Store keeps a copy of x as layer.
func (h *SolutionHistory) Store(layer int, x []float64) {
	h.layers[layer] = append([]float64(nil), x...)
	if old := layer - h.Window; old >= 0 && !h.IsPinned(old) {
		delete(h.layers, old)
	}
}

// Layer returns the stored vector, which must not be modified.
func (h *SolutionHistory) Layer(layer int) (x []float64, ok bool) {
	x, ok = h.layers[layer]
	return
}

// Retained lists the stored layers in increasing order.
func (h *SolutionHistory) Retained() (layers []int) {
	for l := range h.layers {
		layers = append(layers, l)
	}
	sort.Ints(layers)
	return
}
