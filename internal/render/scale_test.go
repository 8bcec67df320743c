package render

import (
	"math"
	"testing"
)

func TestLinearRoundTrip(t *testing.T) {
	s := Linear{D0: 2000, D1: 2023, R0: 50, R1: 650}
	if got := s.Map(2000); got != 50 {
		t.Errorf("Map(D0) = %v", got)
	}
	if got := s.Map(2023); math.Abs(got-650) > 1e-9 {
		t.Errorf("Map(D1) = %v", got)
	}
	if got := s.Invert(s.Map(2011.5)); math.Abs(got-2011.5) > 1e-9 {
		t.Errorf("Invert(Map(x)) = %v", got)
	}
	flat := Linear{D0: 1, D1: 1, R0: 10, R1: 20}
	if flat.Map(1) != 10 {
		t.Error("a zero-width domain should map to the range start")
	}
}

func TestNiceDomain(t *testing.T) {
	tests := []struct {
		name      string
		lo, hi    float64
		zero      bool
		wantLo    float64
		wantHi    float64
		wantTicks int
	}{
		{"shares", 0, 100, true, 0, 100, 6},
		{"index", 1.02, 1.31, false, 1, 1.4, 5},
		{"zero based", 12, 87, true, 0, 100, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ticks := niceDomain(tt.lo, tt.hi, tt.zero)
			if lo > tt.lo || hi < tt.hi {
				t.Errorf("domain [%v, %v] does not cover [%v, %v]", lo, hi, tt.lo, tt.hi)
			}
			if math.Abs(lo-tt.wantLo) > 1e-9 || math.Abs(hi-tt.wantHi) > 1e-9 {
				t.Errorf("domain = [%v, %v], want [%v, %v]", lo, hi, tt.wantLo, tt.wantHi)
			}
			if len(ticks) != tt.wantTicks {
				t.Errorf("ticks = %v, want %d of them", ticks, tt.wantTicks)
			}
		})
	}
}

func TestNiceDomainFlat(t *testing.T) {
	lo, hi, ticks := niceDomain(5, 5, false)
	if !(lo < 5 && hi > 5) || len(ticks) < 2 {
		t.Errorf("flat extent gave [%v, %v] with ticks %v", lo, hi, ticks)
	}
	if lo, hi, _ := niceDomain(0, 0, true); lo != 0 || math.Abs(hi-1) > 1e-9 {
		t.Errorf("all-zero extent gave [%v, %v], want [0, 1]", lo, hi)
	}
}

func TestYearTicks(t *testing.T) {
	got := yearTicks(2000, 2023, 8)
	if len(got) > 8 || got[0] != 2000 {
		t.Errorf("yearTicks = %v", got)
	}
	if got := yearTicks(2019, 2023, 10); len(got) != 5 {
		t.Errorf("short span should tick every year, got %v", got)
	}
}

func TestBand(t *testing.T) {
	b := Band{N: 4, R0: 0, R1: 400, Padding: 0.2}
	if b.Step() != 100 || b.Width() != 80 || b.Pos(1) != 110 || b.Center(1) != 150 {
		t.Errorf("band geometry: step=%v width=%v pos=%v center=%v", b.Step(), b.Width(), b.Pos(1), b.Center(1))
	}
}
