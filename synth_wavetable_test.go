// synth_wavetable_test.go - Wave table generation and wrap-around lookup

package main

import (
	"math"
	"testing"
)

func TestWaveTable_SineQuarterPoints(t *testing.T) {
	for _, n := range []int{4, 64, 256, 8192} {
		table := NewSineTable(n)
		if table.Len() != n {
			t.Fatalf("n=%d: len = %d", n, table.Len())
		}
		checks := []struct {
			idx  int
			want float64
		}{
			{0, 0},
			{n / 4, 1},
			{n / 2, 0},
			{3 * n / 4, -1},
		}
		for _, c := range checks {
			if got := float64(table[c.idx]); math.Abs(got-c.want) > 1e-6 {
				t.Errorf("n=%d: table[%d] = %f, want %f", n, c.idx, got, c.want)
			}
		}
	}
}

// TestWaveTable_Periodic verifies that reading one past the end lands back on
// the first entry, so the interpolator never needs a guard sample.
func TestWaveTable_Periodic(t *testing.T) {
	table := NewSineTable(64)
	if table.At(64) != table[0] {
		t.Fatalf("At(N) = %f, want table[0] = %f", table.At(64), table[0])
	}
	if table.At(-1) != table[63] {
		t.Fatalf("At(-1) = %f, want table[N-1] = %f", table.At(-1), table[63])
	}
	// The analytic continuation at N must also agree with entry 0.
	if next := math.Sin(2 * math.Pi * 64 / 64); math.Abs(next-float64(table[0])) > 1e-6 {
		t.Fatalf("sin(2π) = %f does not match table[0] = %f", next, table[0])
	}
}

func TestWaveTable_CustomShape(t *testing.T) {
	table := NewWaveTable(8, func(x float64) float64 { return x / (2 * math.Pi) })
	for i, v := range table {
		want := float32(i) / 8
		if math.Abs(float64(v-want)) > 1e-6 {
			t.Fatalf("table[%d] = %f, want %f", i, v, want)
		}
	}
}

func TestWaveTable_ClampsSize(t *testing.T) {
	for _, n := range []int{0, -5} {
		if got := NewSineTable(n).Len(); got != 1 {
			t.Fatalf("NewSineTable(%d).Len() = %d, want 1", n, got)
		}
	}
}

func TestWaveTable_Range(t *testing.T) {
	for i, v := range NewSineTable(1024) {
		if v > MAX_SAMPLE || v < MIN_SAMPLE {
			t.Fatalf("table[%d] = %f out of [-1, 1]", i, v)
		}
	}
}
