package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

var (
	fileA, fileB string
)

// layerdiff compares two layer files written by "boiling run", for instance the same export time
// solved with two different solvers or grids sharing nodes.
func main() {
	filePtrA := flag.String("a", fileA, "first layer file (r z u per line)")
	filePtrB := flag.String("b", fileB, "second layer file (r z u per line)")
	flag.Parse()
	fileA, fileB = *filePtrA, *filePtrB
	if len(fileA) == 0 || len(fileB) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	a, err := readLayerFile(fileA)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	b, err := readLayerFile(fileB)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	ld, err := Compare(a, b)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	fmt.Printf("Nodes = %d, RMS = %.5E, MAX = %.5E at (%.5f, %.5f)\n", ld.Nodes, ld.RMS, ld.MAX, ld.At[0], ld.At[1])
}

type Layer struct {
	r, z, u []float64
}

func (l *Layer) Add(r, z, u float64) {
	l.r = append(l.r, r)
	l.z = append(l.z, z)
	l.u = append(l.u, u)
}

type LayerDiff struct {
	Nodes    int
	RMS, MAX float64
	At       [2]float64
}

// Compare requires both layers to list the same nodes in the same order.
func Compare(a, b *Layer) (ld LayerDiff, err error) {
	const tol = 1.e-5
	if len(a.u) != len(b.u) {
		err = fmt.Errorf("layers have %d and %d nodes", len(a.u), len(b.u))
		return
	}
	ld.Nodes = len(a.u)
	for i := range a.u {
		if math.Abs(a.r[i]-b.r[i]) > tol || math.Abs(a.z[i]-b.z[i]) > tol {
			err = fmt.Errorf("node %d differs: (%v, %v) and (%v, %v)", i, a.r[i], a.z[i], b.r[i], b.z[i])
			return
		}
		d := math.Abs(a.u[i] - b.u[i])
		ld.RMS += d * d
		if d > ld.MAX {
			ld.MAX = d
			ld.At = [2]float64{a.r[i], a.z[i]}
		}
	}
	if ld.Nodes != 0 {
		ld.RMS = math.Sqrt(ld.RMS / float64(ld.Nodes))
	}
	return
}

func readLayerFile(name string) (l *Layer, err error) {
	var (
		f *os.File
	)
	if f, err = os.Open(name); err != nil {
		return
	}
	defer f.Close()
	return readLayer(bufio.NewReader(f))
}

func readLayer(rd io.Reader) (l *Layer, err error) {
	var (
		records [][]string
		vals    [3]float64
	)
	r := csv.NewReader(rd)
	r.Comma = ' '
	r.FieldsPerRecord = 3
	if records, err = r.ReadAll(); err != nil {
		return
	}
	l = &Layer{}
	for i, rec := range records {
		for j, txt := range rec {
			if vals[j], err = strconv.ParseFloat(txt, 64); err != nil {
				err = fmt.Errorf("line %d: %w", i+1, err)
				return
			}
		}
		l.Add(vals[0], vals[1], vals[2])
	}
	return
}
