package random_test

// fixedSource replays a scripted sequence of Float64 draws; Intn derives its
// value from the same sequence.
type fixedSource struct {
	draws []float64
	next  int
}

func (f *fixedSource) Float64() float64 {
	v := f.draws[f.next%len(f.draws)]
	f.next++
	return v
}

func (f *fixedSource) Intn(n int) int {
	return int(f.Float64() * float64(n))
}
