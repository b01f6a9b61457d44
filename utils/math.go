package utils

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

// Linspace returns N+1 equally spaced values covering [a, b], both ends included.
func Linspace(a, b float64, N int) (v []float64) {
	v = make([]float64, N+1)
	h := (b - a) / float64(N)
	for i := range v {
		v[i] = a + float64(i)*h
	}
	v[N] = b
	return
}
