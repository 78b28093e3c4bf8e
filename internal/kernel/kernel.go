// Package kernel defines the numeric element-type contract that every
// buffer, op, and array in tensorgraph is generic over.
package kernel

import (
	"math"

	"golang.org/x/exp/constraints"
	"modernc.org/mathutil"

	"github.com/tensorgraph/tensorgraph/internal/tensorerr"
)

// Real is the set of Go types tensorgraph can store in a buffer: every
// signed/unsigned integer kind plus both float kinds.
type Real interface {
	constraints.Integer | constraints.Float
}

// FloatOps holds the transcendental and classification primitives that only
// make sense for a floating-point element type. A Kernel's Float field is
// nil for integer kernels; callers must check it before dereferencing.
type FloatOps[T Real] struct {
	IsInf func(T) bool
	IsNaN func(T) bool
	Sin   func(T) T
	Cos   func(T) T
	Tan   func(T) T
	Asin  func(T) T
	Acos  func(T) T
	Atan  func(T) T
	Sinh  func(T) T
	Cosh  func(T) T
	Tanh  func(T) T
	Sqrt  func(T) T
	Exp   func(T) T
	Ln    func(T) T
}

// Kernel is the function-pointer vtable standing in for the source
// language's compile-time trait dispatch. It is copy-sized (every field is
// either a constant or a function pointer) so it can be embedded by value
// inside op structs without indirection, per the "function-pointer zips"
// design note: ops carry a plain fn(T,T) T, not a boxed closure.
type Kernel[T Real] struct {
	Zero, One T
	Min, Max  T
	IsSigned  bool
	IsFloat   bool

	Add, Sub, Mul, Rem func(a, b T) T
	Div                func(a, b T) (T, error)
	Pow                func(a, b T) (T, error)
	Abs, Round         func(a T) T
	MinOp, MaxOp       func(a, b T) T

	ToFloat64   func(T) float64
	FromFloat64 func(float64) T

	Float *FloatOps[T]
}

// For builds the Kernel for T by switching on a zero value of T. Go
// generics cannot specialize a function body per instantiation the way the
// source language's trait impls do, so the dispatch happens once, here, at
// the boundary between the generic algebra and the concrete arithmetic.
func For[T Real]() Kernel[T] {
	var zero T
	switch any(zero).(type) {
	case float32:
		return any(float32Kernel()).(Kernel[T])
	case float64:
		return any(float64Kernel()).(Kernel[T])
	default:
		return integerKernel[T]()
	}
}

func float32Kernel() Kernel[float32] {
	k := Kernel[float32]{
		Zero: 0, One: 1,
		Min: -math.MaxFloat32, Max: math.MaxFloat32,
		IsSigned: true, IsFloat: true,
		Add: func(a, b float32) float32 { return a + b },
		Sub: func(a, b float32) float32 { return a - b },
		Mul: func(a, b float32) float32 { return a * b },
		Rem: func(a, b float32) float32 { return float32(math.Mod(float64(a), float64(b))) },
		Div: func(a, b float32) (float32, error) { return a / b, nil },
		Pow: func(a, b float32) (float32, error) {
			return float32(math.Pow(float64(a), float64(b))), nil
		},
		Abs:   func(a float32) float32 { return float32(math.Abs(float64(a))) },
		Round: func(a float32) float32 { return float32(math.Round(float64(a))) },
		MinOp: func(a, b float32) float32 { return float32(natMin(float64(a), float64(b))) },
		MaxOp: func(a, b float32) float32 { return float32(natMax(float64(a), float64(b))) },

		ToFloat64:   func(a float32) float64 { return float64(a) },
		FromFloat64: func(f float64) float32 { return float32(f) },
	}
	k.Float = &FloatOps[float32]{
		IsInf: func(a float32) bool { return math.IsInf(float64(a), 0) },
		IsNaN: func(a float32) bool { return math.IsNaN(float64(a)) },
		Sin:   wrap32(math.Sin), Cos: wrap32(math.Cos), Tan: wrap32(math.Tan),
		Asin: wrap32(math.Asin), Acos: wrap32(math.Acos), Atan: wrap32(math.Atan),
		Sinh: wrap32(math.Sinh), Cosh: wrap32(math.Cosh), Tanh: wrap32(math.Tanh),
		Sqrt: wrap32(math.Sqrt), Exp: wrap32(math.Exp), Ln: wrap32(math.Log),
	}
	return k
}

func wrap32(f func(float64) float64) func(float32) float32 {
	return func(a float32) float32 { return float32(f(float64(a))) }
}

func float64Kernel() Kernel[float64] {
	k := Kernel[float64]{
		Zero: 0, One: 1,
		Min: -math.MaxFloat64, Max: math.MaxFloat64,
		IsSigned: true, IsFloat: true,
		Add: func(a, b float64) float64 { return a + b },
		Sub: func(a, b float64) float64 { return a - b },
		Mul: func(a, b float64) float64 { return a * b },
		Rem: math.Mod,
		Div: func(a, b float64) (float64, error) { return a / b, nil },
		Pow: func(a, b float64) (float64, error) { return math.Pow(a, b), nil },
		Abs: math.Abs, Round: math.Round,
		MinOp: natMin, MaxOp: natMax,

		ToFloat64:   func(a float64) float64 { return a },
		FromFloat64: func(f float64) float64 { return f },
	}
	k.Float = &FloatOps[float64]{
		IsInf: func(a float64) bool { return math.IsInf(a, 0) },
		IsNaN: math.IsNaN,
		Sin:   math.Sin, Cos: math.Cos, Tan: math.Tan,
		Asin: math.Asin, Acos: math.Acos, Atan: math.Atan,
		Sinh: math.Sinh, Cosh: math.Cosh, Tanh: math.Tanh,
		Sqrt: math.Sqrt, Exp: math.Exp, Ln: math.Log,
	}
	return k
}

// natMin/natMax implement the NaN ordering decided for the open question
// in the numeric kernel design: NaN never wins a min or a max, so the
// non-NaN operand is returned whenever there is one.
func natMin(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	if a < b {
		return a
	}
	return b
}

func natMax(a, b float64) float64 {
	if math.IsNaN(a) {
		return b
	}
	if math.IsNaN(b) {
		return a
	}
	if a > b {
		return a
	}
	return b
}

func integerKernel[T Real]() Kernel[T] {
	var zero T
	signed := isSigned(zero)

	minV, maxV := integerBounds[T](signed)

	return Kernel[T]{
		Zero: 0, One: 1,
		Min: minV, Max: maxV,
		IsSigned: signed, IsFloat: false,
		Add: func(a, b T) T { return a + b },
		Sub: func(a, b T) T { return a - b },
		Mul: func(a, b T) T { return a * b },
		Rem: func(a, b T) T {
			if b == 0 {
				return 0
			}
			return a % b
		},
		Div: func(a, b T) (T, error) {
			if b == 0 {
				return 0, tensorerr.New(tensorerr.Arithmetic, "div", "integer division by zero")
			}
			return a / b, nil
		},
		Pow: integerPow[T],
		Abs: func(a T) T {
			if signed && a < 0 {
				return -a
			}
			return a
		},
		Round: func(a T) T { return a },
		MinOp: func(a, b T) T { return T(mathutil.Min(int(a), int(b))) },
		MaxOp: func(a, b T) T { return T(mathutil.Max(int(a), int(b))) },

		ToFloat64:   func(a T) float64 { return float64(a) },
		FromFloat64: func(f float64) T { return saturatingFromFloat[T](f, signed, minV, maxV) },
	}
}

// isSigned and integerBounds type-switch on a zero value of T rather than
// comparing T(0)-1 < 0, since that comparison is not meaningful for
// unsigned types without wraparound tricks.
func isSigned[T Real](zero T) bool {
	switch any(zero).(type) {
	case int, int8, int16, int32, int64:
		return true
	default:
		return false
	}
}

func integerBounds[T Real](signed bool) (T, T) {
	var probe T
	bits := 8
	switch any(probe).(type) {
	case int8, uint8:
		bits = 8
	case int16, uint16:
		bits = 16
	case int32, uint32:
		bits = 32
	default:
		bits = 64
	}

	if signed {
		maxV := T(int64(1)<<(bits-1) - 1)
		minV := -maxV - 1
		return minV, maxV
	}

	var maxV T
	if bits >= 64 {
		maxV = T(uint64(math.MaxUint64))
	} else {
		maxV = T(uint64(1)<<bits - 1)
	}
	return 0, maxV
}

func saturatingFromFloat[T Real](f float64, signed bool, minV, maxV T) T {
	if math.IsNaN(f) {
		return 0
	}
	lo, hi := float64(minV), float64(maxV)
	if f <= lo {
		return minV
	}
	if f >= hi {
		return maxV
	}
	return T(f)
}

func integerPow[T Real](base, exp T) (T, error) {
	if exp < 0 {
		return 0, tensorerr.New(tensorerr.Unsupported, "pow", "negative exponent on integer type")
	}
	result := T(1)
	b := base
	e := exp
	for e > 0 {
		if e&1 == 1 {
			result *= b
		}
		b *= b
		e >>= 1
	}
	return result, nil
}
