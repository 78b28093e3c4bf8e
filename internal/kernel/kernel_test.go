package kernel

import (
	"math"
	"testing"
)

func TestFloat64KernelArithmetic(t *testing.T) {
	k := For[float64]()

	if got := k.Add(2, 3); got != 5 {
		t.Fatalf("Add(2,3) = %v, want 5", got)
	}
	if got, err := k.Div(7, 2); err != nil || got != 3.5 {
		t.Fatalf("Div(7,2) = %v, %v, want 3.5, nil", got, err)
	}
	if !k.Float.IsNaN(k.Float.Sqrt(-1)) {
		t.Fatalf("sqrt(-1) should be NaN")
	}
}

func TestFloatMinMaxNaN(t *testing.T) {
	k := For[float64]()
	nan := math.NaN()

	if got := k.MinOp(nan, 1); got != 1 {
		t.Fatalf("min(NaN,1) = %v, want 1 (NaN loses)", got)
	}
	if got := k.MaxOp(nan, 1); got != 1 {
		t.Fatalf("max(NaN,1) = %v, want 1 (NaN loses)", got)
	}
	if got := k.MinOp(nan, nan); !math.IsNaN(got) {
		t.Fatalf("min(NaN,NaN) = %v, want NaN", got)
	}
}

func TestIntegerKernelDivByZero(t *testing.T) {
	k := For[int32]()

	if _, err := k.Div(4, 0); err == nil {
		t.Fatalf("expected Arithmetic error for integer divide by zero")
	}
}

func TestIntegerKernelNegativeExponent(t *testing.T) {
	k := For[int32]()

	if _, err := k.Pow(2, -1); err == nil {
		t.Fatalf("expected Unsupported error for negative integer exponent")
	}

	got, err := k.Pow(2, 10)
	if err != nil || got != 1024 {
		t.Fatalf("Pow(2,10) = %v, %v, want 1024, nil", got, err)
	}
}

func TestIntegerKernelBounds(t *testing.T) {
	k := For[uint8]()
	if k.Min != 0 || k.Max != 255 {
		t.Fatalf("uint8 bounds = [%v,%v], want [0,255]", k.Min, k.Max)
	}

	signed := For[int8]()
	if signed.Min != -128 || signed.Max != 127 {
		t.Fatalf("int8 bounds = [%v,%v], want [-128,127]", signed.Min, signed.Max)
	}
}

func TestSaturatingFromFloat(t *testing.T) {
	k := For[uint8]()
	if got := k.FromFloat64(1e9); got != k.Max {
		t.Fatalf("FromFloat64(1e9) = %v, want saturated max %v", got, k.Max)
	}
	if got := k.FromFloat64(-5); got != k.Min {
		t.Fatalf("FromFloat64(-5) = %v, want saturated min %v", got, k.Min)
	}
	if got := k.FromFloat64(math.NaN()); got != 0 {
		t.Fatalf("FromFloat64(NaN) = %v, want 0", got)
	}
}
