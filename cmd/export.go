package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/notargets/boiling/geometry2D"
)

// LayerFileName is data<t>.txt in dir.
func LayerFileName(dir string, t float64) string {
	return filepath.Join(dir, fmt.Sprintf("data%g.txt", t))
}

// WriteLayer writes one "r z u" line per node.
func WriteLayer(w io.Writer, grid *geometry2D.Grid, x []float64) (err error) {
	if len(x) != grid.TotalPoints() {
		return fmt.Errorf("layer has %d values for %d nodes", len(x), grid.TotalPoints())
	}
	bw := bufio.NewWriter(w)
	for i, p := range grid.Nodes {
		if _, err = fmt.Fprintf(bw, "%.5f %.5f %.5E\n", p.X, p.Y, x[i]); err != nil {
			return
		}
	}
	return bw.Flush()
}

func WriteLayerFile(dir string, t float64, grid *geometry2D.Grid, x []float64) (err error) {
	var (
		f *os.File
	)
	if f, err = os.Create(LayerFileName(dir, t)); err != nil {
		return
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteLayer(f, grid, x)
}
