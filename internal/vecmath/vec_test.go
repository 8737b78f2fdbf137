package vecmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestForwardRight(t *testing.T) {
	tests := []struct {
		name    string
		yaw     float64
		forward Vec3
		right   Vec3
	}{
		{"yaw 0", 0, V3(0, 0, -1), V3(1, 0, 0)},
		{"yaw pi/2", math.Pi / 2, V3(1, 0, 0), V3(0, 0, 1)},
		{"yaw pi", math.Pi, V3(0, 0, 1), V3(-1, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := Forward(tc.yaw)
			r := Right(tc.yaw)
			if !f.ApproxEqualThreshold(tc.forward, 1e-9) {
				t.Errorf("Forward(%f) = %v, expected %v", tc.yaw, f, tc.forward)
			}
			if !r.ApproxEqualThreshold(tc.right, 1e-9) {
				t.Errorf("Right(%f) = %v, expected %v", tc.yaw, r, tc.right)
			}
			if !approx(f.Dot(r), 0, eps) {
				t.Errorf("Forward and Right should be orthogonal, dot = %f", f.Dot(r))
			}
		})
	}
}

func TestLerp(t *testing.T) {
	a := V3(0, 0, 0)
	b := V3(10, -4, 2)

	mid := Lerp(a, b, 0.5)
	if !mid.ApproxEqualThreshold(V3(5, -2, 1), eps) {
		t.Errorf("Lerp midpoint = %v", mid)
	}
	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp at 0 = %v, want %v", got, a)
	}
}

func TestFinite(t *testing.T) {
	if !Finite(V3(1, 2, 3)) {
		t.Error("regular vector should be finite")
	}
	if Finite(V3(math.NaN(), 0, 0)) {
		t.Error("NaN vector should not be finite")
	}
	if Finite(V3(0, math.Inf(1), 0)) {
		t.Error("Inf vector should not be finite")
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{2*math.Pi + 0.5, 0.5},
		{-0.5, -0.5},
	}

	for _, tc := range tests {
		if got := WrapAngle(tc.in); !approx(got, tc.expected, 1e-9) {
			t.Errorf("WrapAngle(%f) = %f, expected %f", tc.in, got, tc.expected)
		}
	}
}
