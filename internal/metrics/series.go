package metrics

// Point is one row of a per-frame series.
type Point struct {
	Frame     uint64
	Energy    float64
	Edges     int
	MeanSpeed float64
	Escapes   int
}

// Series accumulates per-frame points and a set of summary metrics. A
// positive capacity keeps only the most recent points.
type Series struct {
	capacity int
	points   []Point
	metrics  []Metric
}

func NewSeries(capacity int, ms ...Metric) *Series {
	return &Series{capacity: capacity, metrics: ms}
}

func (s *Series) Observe(sample Sample) {
	s.points = append(s.points, Point{
		Frame:     sample.Frame,
		Energy:    KineticEnergy(sample.Particles),
		Edges:     sample.Edges,
		MeanSpeed: MeanSpeed(sample.Particles),
		Escapes:   OutOfBounds(sample.Particles, sample.Width, sample.Height),
	})
	if s.capacity > 0 && len(s.points) > s.capacity {
		s.points = s.points[len(s.points)-s.capacity:]
	}
	for _, m := range s.metrics {
		m.Observe(sample)
	}
}

func (s *Series) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// EdgeHistory returns the edge counts as floats for plotting.
func (s *Series) EdgeHistory() []float64 {
	out := make([]float64, len(s.points))
	for i, p := range s.points {
		out[i] = float64(p.Edges)
	}
	return out
}

// Summary returns the current value of each metric by name.
func (s *Series) Summary() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Series) Reset() {
	s.points = s.points[:0]
	for _, m := range s.metrics {
		m.Reset()
	}
}
