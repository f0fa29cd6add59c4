package sampler

import (
	"math"
	"math/rand"
)

// Source yields uniformly distributed values in [0, 1).
type Source interface {
	Float64() float64
}

// NewSource returns a math/rand backed source seeded for reproducible output.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

const (
	parkMillerModulus    = 2147483647 // 2^31 - 1
	parkMillerMultiplier = 16807
)

// ParkMiller is the Lehmer "minimal standard" generator.
type ParkMiller struct {
	state int64
}

// NewParkMiller creates a generator. Seeds outside (0, modulus) are folded
// into range.
func NewParkMiller(seed int64) *ParkMiller {
	s := seed % parkMillerModulus
	if s <= 0 {
		s += parkMillerModulus - 1
	}
	return &ParkMiller{state: s}
}

// Next advances the generator and returns the new state in [1, 2^31-2].
func (p *ParkMiller) Next() int64 {
	p.state = p.state * parkMillerMultiplier % parkMillerModulus
	return p.state
}

// Float64 returns the next value in [0, 1).
func (p *ParkMiller) Float64() float64 {
	return float64(p.Next()-1) / float64(parkMillerModulus-1)
}

// FloatInRange returns a value in [lo, hi).
func (p *ParkMiller) FloatInRange(lo, hi float64) float64 {
	return lo + (hi-lo)*p.Float64()
}

// IntInRange returns an integer in [lo, hi]. The draw spans
// [lo-0.4999, hi+0.4999) and rounds half up, the same arithmetic as the
// park-miller package the reference map server used.
func (p *ParkMiller) IntInRange(lo, hi int) int {
	f := p.FloatInRange(float64(lo)-0.4999, float64(hi)+0.4999)
	return int(math.Floor(f + 0.5))
}

type quantized struct {
	pm    *ParkMiller
	steps int
}

// Quantized draws IntInRange(0, steps)/steps from a Park-Miller generator.
// With steps=100 it yields whole percentages. Values may equal 1.
func Quantized(pm *ParkMiller, steps int) Source {
	if steps <= 0 {
		steps = 100
	}
	return &quantized{pm: pm, steps: steps}
}

func (q *quantized) Float64() float64 {
	return float64(q.pm.IntInRange(0, q.steps)) / float64(q.steps)
}

// Sequence is a Source that cycles through a fixed list of values.
// An empty Sequence always yields 0.
type Sequence struct {
	Values []float64
	next   int
}

// NewSequence creates a fixed-sequence source.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{Values: values}
}

// Float64 returns the next value in the sequence, wrapping around at the end.
func (s *Sequence) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return v
}
