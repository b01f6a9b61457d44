package geometry2D

import (
	"fmt"
	"math"
)

type Interval struct {
	Begin, End float64
}

func NewInterval(begin, end float64) Interval { return Interval{begin, end} }

func (iv Interval) Length() float64 { return iv.End - iv.Begin }

// Splitter divides an interval into ordered points, both ends included.
type Splitter interface {
	Steps() int
	Split(iv Interval) ([]float64, error)
}

type UniformSplitter struct {
	NSteps int
}

func NewUniformSplitter(steps int) UniformSplitter { return UniformSplitter{steps} }

func (us UniformSplitter) Steps() int { return us.NSteps }

func (us UniformSplitter) Split(iv Interval) (x []float64, err error) {
	if err = checkSplit(iv, us.NSteps); err != nil {
		return
	}
	var (
		h = iv.Length() / float64(us.NSteps)
	)
	x = make([]float64, us.NSteps+1)
	for i := range x {
		x[i] = iv.Begin + float64(i)*h
	}
	x[us.NSteps] = iv.End
	return
}

// ProportionalSplitter grows each step by Ratio relative to the previous one.
type ProportionalSplitter struct {
	NSteps int
	Ratio  float64
}

func NewProportionalSplitter(steps int, ratio float64) ProportionalSplitter {
	return ProportionalSplitter{steps, ratio}
}

func (ps ProportionalSplitter) Steps() int { return ps.NSteps }

func (ps ProportionalSplitter) Split(iv Interval) (x []float64, err error) {
	if err = checkSplit(iv, ps.NSteps); err != nil {
		return
	}
	if ps.Ratio <= 0 {
		err = fmt.Errorf("%w: ratio = %v", ErrBadSplit, ps.Ratio)
		return
	}
	if math.Abs(ps.Ratio-1) < 1.e-14 {
		return UniformSplitter{ps.NSteps}.Split(iv)
	}
	var (
		n = float64(ps.NSteps)
		h = iv.Length() * (1 - ps.Ratio) / (1 - math.Pow(ps.Ratio, n))
	)
	x = make([]float64, ps.NSteps+1)
	x[0] = iv.Begin
	for i := 1; i < ps.NSteps; i++ {
		x[i] = x[i-1] + h
		h *= ps.Ratio
	}
	x[ps.NSteps] = iv.End
	return
}

func checkSplit(iv Interval, steps int) error {
	if steps < 1 {
		return fmt.Errorf("%w: steps = %d", ErrBadSplit, steps)
	}
	if !(iv.End > iv.Begin) {
		return fmt.Errorf("%w: [%v, %v]", ErrBadInterval, iv.Begin, iv.End)
	}
	return nil
}

// AxisSplitParameter describes one axis as consecutive sections between Points, each divided
// by its own splitter. len(Splitters) must be len(Points)-1.
type AxisSplitParameter struct {
	Points    []float64
	Splitters []Splitter
}

func NewAxisSplitParameter(points []float64, splitters ...Splitter) AxisSplitParameter {
	return AxisSplitParameter{points, splitters}
}

// Nest refines every splitter of the axis by the nesting degree.
func (ap AxisSplitParameter) Nest(degree int) AxisSplitParameter {
	if degree <= 1 {
		return ap
	}
	nested := AxisSplitParameter{Points: ap.Points, Splitters: make([]Splitter, len(ap.Splitters))}
	for i, s := range ap.Splitters {
		switch sp := s.(type) {
		case UniformSplitter:
			nested.Splitters[i] = UniformSplitter{sp.NSteps * degree}
		case ProportionalSplitter:
			nested.Splitters[i] = ProportionalSplitter{sp.NSteps * degree, math.Pow(sp.Ratio, 1/float64(degree))}
		default:
			nested.Splitters[i] = s
		}
	}
	return nested
}

// Values returns the ordered axis coordinates without duplicated section joints.
func (ap AxisSplitParameter) Values() (x []float64, err error) {
	if len(ap.Points) < 2 || len(ap.Splitters) != len(ap.Points)-1 {
		err = fmt.Errorf("%w: %d points, %d splitters", ErrAxisMismatch, len(ap.Points), len(ap.Splitters))
		return
	}
	for i, s := range ap.Splitters {
		var section []float64
		if section, err = s.Split(Interval{ap.Points[i], ap.Points[i+1]}); err != nil {
			return
		}
		if i > 0 {
			section = section[1:]
		}
		x = append(x, section...)
	}
	return
}
