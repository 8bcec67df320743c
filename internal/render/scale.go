package render

import (
	"math"
)

// Linear maps a continuous domain onto a pixel range.
type Linear struct {
	D0, D1 float64 // domain
	R0, R1 float64 // range
}

// Map converts a domain value to pixels.
func (s Linear) Map(v float64) float64 {
	d := s.D1 - s.D0
	if d == 0 {
		return s.R0
	}
	return s.R0 + (v-s.D0)/d*(s.R1-s.R0)
}

// Invert converts pixels back to a domain value.
func (s Linear) Invert(px float64) float64 {
	r := s.R1 - s.R0
	if r == 0 {
		return s.D0
	}
	return s.D0 + (px-s.R0)/r*(s.D1-s.D0)
}

// Band splits a pixel range into equal slots, one per label.
type Band struct {
	N       int
	R0, R1  float64
	Padding float64 // fraction of each slot left empty, 0..1
}

// Step is the width of one slot.
func (b Band) Step() float64 {
	if b.N <= 0 {
		return 0
	}
	return (b.R1 - b.R0) / float64(b.N)
}

// Width is the drawn width of one bar inside its slot.
func (b Band) Width() float64 {
	return b.Step() * (1 - b.Padding)
}

// Pos is the leading edge of the bar in slot i.
func (b Band) Pos(i int) float64 {
	return b.R0 + float64(i)*b.Step() + b.Step()*b.Padding/2
}

// Center is the middle of slot i.
func (b Band) Center(i int) float64 {
	return b.R0 + (float64(i)+0.5)*b.Step()
}

// niceDomain pads an extent and widens it to tick boundaries. zeroBased pulls
// the lower bound down to zero for non-negative data.
func niceDomain(lo, hi float64, zeroBased bool) (float64, float64, []float64) {
	if zeroBased && lo > 0 {
		lo = 0
	}
	if lo == hi {
		if lo == 0 {
			hi = 1
		} else {
			pad := math.Abs(lo) * 0.1
			lo, hi = lo-pad, hi+pad
		}
	} else if !zeroBased {
		pad := (hi - lo) * 0.05
		lo, hi = lo-pad, hi+pad
	}
	step := niceStep(lo, hi, 6)
	lo = math.Floor(lo/step) * step
	hi = math.Ceil(hi/step) * step
	var ticks []float64
	for v := lo; v <= hi+step/2; v += step {
		ticks = append(ticks, roundTo(v, step))
	}
	return lo, hi, ticks
}

// niceStep picks a 1, 2 or 5 times power-of-ten step giving about maxTicks ticks.
func niceStep(lo, hi float64, maxTicks int) float64 {
	raw := (hi - lo) / float64(maxTicks-1)
	if raw <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch n := raw / mag; {
	case n <= 1:
		return mag
	case n <= 2:
		return 2 * mag
	case n <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// roundTo removes accumulated float error from a tick value.
func roundTo(v, step float64) float64 {
	digits := math.Max(0, -math.Floor(math.Log10(step))+1)
	p := math.Pow(10, digits)
	return math.Round(v*p) / p
}

// yearTicks returns integer years from first to last, thinned to at most max ticks.
func yearTicks(first, last, max int) []int {
	if last < first {
		return nil
	}
	span := last - first
	step := 1
	for span/step+1 > max {
		step++
	}
	var out []int
	for y := first; y <= last; y += step {
		out = append(out, y)
	}
	return out
}

// tickDecimals picks enough decimals to tell adjacent ticks apart.
func tickDecimals(ticks []float64) int {
	if len(ticks) < 2 {
		return 0
	}
	diff := math.Abs(ticks[1] - ticks[0])
	if diff == 0 {
		return 0
	}
	d := int(math.Max(0, -math.Floor(math.Log10(diff))))
	if d > 6 {
		d = 6
	}
	return d
}
