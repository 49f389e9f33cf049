package utils

import (
	"math"
	"testing"
)

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 6, 3}

	if got := a.Add(b); got != (Vec3{5, 8, 6}) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 4, 0}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Distance(b); math.Abs(got-5) > 1e-9 {
		t.Errorf("Distance = %v, 期望 5", got)
	}
	if got := LerpVec3(a, b, 0.5); got != (Vec3{2.5, 4, 3}) {
		t.Errorf("LerpVec3 = %v", got)
	}
}

func TestWrapDegrees(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{90, 90},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-720, 0},
	}
	for _, tt := range tests {
		if got := WrapDegrees(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("WrapDegrees(%v) = %v, 期望 %v", tt.in, got, tt.want)
		}
	}
}

func TestRangeHelpers(t *testing.T) {
	r := NewRand(42)
	for i := 0; i < 200; i++ {
		if v := RangeInt(r, 3, 6); v < 3 || v >= 6 {
			t.Fatalf("RangeInt(3, 6) = %d, 超出 [3, 6)", v)
		}
		if v := RangeFloat(r, 1.5, 2.5); v < 1.5 || v > 2.5 {
			t.Fatalf("RangeFloat(1.5, 2.5) = %v, 超出 [1.5, 2.5]", v)
		}
	}

	if RangeInt(r, 4, 4) != 4 || RangeInt(r, 5, 2) != 5 {
		t.Error("max <= min 时应返回 min")
	}
	if RangeFloat(r, 2, 2) != 2 {
		t.Error("浮点区间退化时应返回 min")
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a, b := NewRand(7), NewRand(7)
	for i := 0; i < 10; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatal("相同种子应产生相同序列")
		}
	}
}
