package fpa

import (
	"math"
	"testing"
)

func TestDis64Identity(t *testing.T) {
	if d := Dis64(1.0, 1.0); d != 0 {
		t.Errorf("Dis64(1,1): expected 0, got %v", d)
	}
}

func TestDis64Symmetric(t *testing.T) {
	a, b := 1.0, 2.5
	if Dis64(a, b) != Dis64(b, a) {
		t.Errorf("Dis64 not symmetric: Dis64(%v,%v)=%v Dis64(%v,%v)=%v", a, b, Dis64(a, b), b, a, Dis64(b, a))
	}
}

func TestDis64NaN(t *testing.T) {
	nan := math.NaN()
	if d := Dis64(nan, 1.0); d != 0 {
		t.Errorf("Dis64(NaN,1): expected 0, got %v", d)
	}
	if d := Dis64(1.0, nan); d != 0 {
		t.Errorf("Dis64(1,NaN): expected 0, got %v", d)
	}
}

func TestDis64ZeroImpliesEqualOrNaN(t *testing.T) {
	cases := [][2]float64{{0, 0}, {3.5, 3.5}, {-1.0, -1.0}}
	for _, c := range cases {
		if d := Dis64(c[0], c[1]); d != 0 {
			t.Errorf("Dis64(%v,%v): expected 0, got %v", c[0], c[1], d)
		}
	}
}

func TestDis64Scale(t *testing.T) {
	// a single ULP at magnitude 1 maps to ~5.6e-17 under the 2^54 scale.
	one := 1.0
	next := math.Nextafter(one, 2.0)
	d := Dis64(one, next)
	if d <= 0 || d > 1e-15 {
		t.Errorf("Dis64 ULP distance out of expected range: got %v", d)
	}
}

func TestDis64SignMismatchUsesSum(t *testing.T) {
	d := Dis64(1.0, -1.0)
	if d <= 0 {
		t.Errorf("expected positive distance across sign flip, got %v", d)
	}
}

func TestNeqDis64(t *testing.T) {
	if NeqDis64(1.0, 2.0) != 0 {
		t.Error("NeqDis64 expected 0 for unequal operands")
	}
	if NeqDis64(1.0, 1.0) != 1 {
		t.Error("NeqDis64 expected 1 for equal operands")
	}
}

func TestIsNaN64(t *testing.T) {
	nan := math.NaN()
	if IsNaN64(nan, 0) != 0 {
		t.Error("IsNaN64(NaN, 0) expected 0")
	}
	if IsNaN64(1.0, 0) != 1 {
		t.Error("IsNaN64(1, 0) expected 1")
	}
	if IsNaN64(nan, 1) != 1 {
		t.Error("IsNaN64(NaN, 1) expected 1")
	}
	if IsNaN64(1.0, 1) != 0 {
		t.Error("IsNaN64(1, 1) expected 0")
	}
}
