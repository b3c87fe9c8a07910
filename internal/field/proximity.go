package field

import (
	"math"
	"sort"
)

// Edge joins particles I and J, with I < J. The line takes particle I's colour.
type Edge struct {
	I, J int
}

// Finder reports every pair of particles closer than threshold, ordered
// by I then J. Results are appended to dst.
type Finder interface {
	Pairs(ps []Particle, threshold float64, dst []Edge) []Edge
}

func connected(a, b Particle, threshold float64) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx+dy*dy < threshold*threshold
}

// Pairwise checks every unordered pair.
type Pairwise struct{}

func (Pairwise) Pairs(ps []Particle, threshold float64, dst []Edge) []Edge {
	if threshold <= 0 {
		return dst
	}
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			if connected(ps[i], ps[j], threshold) {
				dst = append(dst, Edge{I: i, J: j})
			}
		}
	}
	return dst
}

type cell struct{ cx, cy int }

// Grid buckets particles into threshold-sized cells so only neighbouring
// cells are compared. Buckets are reused between calls.
type Grid struct {
	cells map[cell][]int
	near  []int
}

func NewGrid() *Grid {
	return &Grid{cells: make(map[cell][]int)}
}

func (g *Grid) Pairs(ps []Particle, threshold float64, dst []Edge) []Edge {
	if threshold <= 0 {
		return dst
	}
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
	keyOf := func(p Particle) cell {
		return cell{int(math.Floor(p.X / threshold)), int(math.Floor(p.Y / threshold))}
	}
	for i, p := range ps {
		k := keyOf(p)
		g.cells[k] = append(g.cells[k], i)
	}

	for i, p := range ps {
		k := keyOf(p)
		g.near = g.near[:0]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				for _, j := range g.cells[cell{k.cx + dx, k.cy + dy}] {
					if j > i && connected(p, ps[j], threshold) {
						g.near = append(g.near, j)
					}
				}
			}
		}
		sort.Ints(g.near)
		for _, j := range g.near {
			dst = append(dst, Edge{I: i, J: j})
		}
	}
	return dst
}
