package tensor

import (
	"github.com/tensorgraph/tensorgraph/internal/ops"
	"github.com/tensorgraph/tensorgraph/internal/shape"
	"github.com/tensorgraph/tensorgraph/internal/tensorerr"
)

// dual builds an elementwise binary op between a and b. Elementwise ops
// require equal shapes; when the shapes merely happen to be
// broadcast-compatible the error steers the caller toward an explicit
// Broadcast call instead of guessing at implicit broadcasting.
func (a Array[T]) dual(b Array[T], op string, zip func(x, y T) (T, error)) (Array[T], error) {
	if !a.shape.Equal(b.shape) {
		if shape.BroadcastCompatible(a.shape, b.shape) || shape.BroadcastCompatible(b.shape, a.shape) {
			return Array[T]{}, tensorerr.Newf(tensorerr.Bounds, op,
				"shapes %v and %v are broadcast-compatible but not equal; call Broadcast explicitly first", a.shape, b.shape).WithShape(a.shape)
		}
		return Array[T]{}, tensorerr.Newf(tensorerr.Bounds, op, "shapes %v and %v do not match", a.shape, b.shape).WithShape(a.shape)
	}
	node := ops.Dual[T]{Left: a.acc, Right: b.acc, Zip: zip}
	return wrap(a.shape.Clone(), ops.Bound[T]{Node: node, Platform: a.plat}, a.plat), nil
}

func (a Array[T]) scalarOp(value T, g func(x, y T) (T, error)) Array[T] {
	node := ops.Scalar[T]{Input: a.acc, Value: value, G: g}
	return wrap(a.shape.Clone(), ops.Bound[T]{Node: node, Platform: a.plat}, a.plat)
}

func (a Array[T]) unaryOp(fn func(T) T) Array[T] {
	node := ops.Unary[T]{Input: a.acc, Fn: fn}
	return wrap(a.shape.Clone(), ops.Bound[T]{Node: node, Platform: a.plat}, a.plat)
}

// Add, Sub, Mul, Div, Rem, Pow are the elementwise arithmetic family.
func (a Array[T]) Add(b Array[T]) (Array[T], error) {
	return a.dual(b, "add", func(x, y T) (T, error) { return a.k.Add(x, y), nil })
}
func (a Array[T]) Sub(b Array[T]) (Array[T], error) {
	return a.dual(b, "sub", func(x, y T) (T, error) { return a.k.Sub(x, y), nil })
}
func (a Array[T]) Mul(b Array[T]) (Array[T], error) {
	return a.dual(b, "mul", func(x, y T) (T, error) { return a.k.Mul(x, y), nil })
}
func (a Array[T]) Div(b Array[T]) (Array[T], error) { return a.dual(b, "div", a.k.Div) }
func (a Array[T]) Rem(b Array[T]) (Array[T], error) {
	return a.dual(b, "rem", func(x, y T) (T, error) { return a.k.Rem(x, y), nil })
}
func (a Array[T]) Pow(b Array[T]) (Array[T], error) { return a.dual(b, "pow", a.k.Pow) }

// MinWith/MaxWith are the elementwise pairwise min/max (NaN never wins).
func (a Array[T]) MinWith(b Array[T]) (Array[T], error) {
	return a.dual(b, "min", func(x, y T) (T, error) { return a.k.MinOp(x, y), nil })
}
func (a Array[T]) MaxWith(b Array[T]) (Array[T], error) {
	return a.dual(b, "max", func(x, y T) (T, error) { return a.k.MaxOp(x, y), nil })
}

// AddScalar, SubScalar, MulScalar, DivScalar are the fixed-right-operand
// family; DivScalar rejects zero at the façade level with Unsupported.
func (a Array[T]) AddScalar(v T) Array[T] {
	return a.scalarOp(v, func(x, y T) (T, error) { return a.k.Add(x, y), nil })
}
func (a Array[T]) SubScalar(v T) Array[T] {
	return a.scalarOp(v, func(x, y T) (T, error) { return a.k.Sub(x, y), nil })
}
func (a Array[T]) MulScalar(v T) Array[T] {
	return a.scalarOp(v, func(x, y T) (T, error) { return a.k.Mul(x, y), nil })
}

func (a Array[T]) DivScalar(v T) (Array[T], error) {
	if v == a.k.Zero {
		return Array[T]{}, tensorerr.New(tensorerr.Unsupported, "div_scalar", "scalar division by zero")
	}
	return a.scalarOp(v, a.k.Div), nil
}

// Abs, Round, Neg are the elementwise unary family available for every
// numeric T.
func (a Array[T]) Abs() Array[T]   { return a.unaryOp(a.k.Abs) }
func (a Array[T]) Round() Array[T] { return a.unaryOp(a.k.Round) }
func (a Array[T]) Neg() Array[T]   { return a.unaryOp(func(x T) T { return a.k.Sub(a.k.Zero, x) }) }

func (a Array[T]) requireFloat(op string) error {
	if a.k.Float == nil {
		return tensorerr.Newf(tensorerr.Unsupported, op, "operation requires a floating-point element type")
	}
	return nil
}

// The transcendental family is only defined for floating-point T; on an
// integer array every one of these returns Unsupported without touching
// the accessor.
func (a Array[T]) Sin() (Array[T], error) {
	if err := a.requireFloat("sin"); err != nil {
		return Array[T]{}, err
	}
	return a.unaryOp(a.k.Float.Sin), nil
}

func (a Array[T]) Cos() (Array[T], error) {
	if err := a.requireFloat("cos"); err != nil {
		return Array[T]{}, err
	}
	return a.unaryOp(a.k.Float.Cos), nil
}

func (a Array[T]) Tan() (Array[T], error) {
	if err := a.requireFloat("tan"); err != nil {
		return Array[T]{}, err
	}
	return a.unaryOp(a.k.Float.Tan), nil
}

func (a Array[T]) Asin() (Array[T], error) {
	if err := a.requireFloat("asin"); err != nil {
		return Array[T]{}, err
	}
	return a.unaryOp(a.k.Float.Asin), nil
}

func (a Array[T]) Acos() (Array[T], error) {
	if err := a.requireFloat("acos"); err != nil {
		return Array[T]{}, err
	}
	return a.unaryOp(a.k.Float.Acos), nil
}

func (a Array[T]) Atan() (Array[T], error) {
	if err := a.requireFloat("atan"); err != nil {
		return Array[T]{}, err
	}
	return a.unaryOp(a.k.Float.Atan), nil
}

func (a Array[T]) Sinh() (Array[T], error) {
	if err := a.requireFloat("sinh"); err != nil {
		return Array[T]{}, err
	}
	return a.unaryOp(a.k.Float.Sinh), nil
}

func (a Array[T]) Cosh() (Array[T], error) {
	if err := a.requireFloat("cosh"); err != nil {
		return Array[T]{}, err
	}
	return a.unaryOp(a.k.Float.Cosh), nil
}

func (a Array[T]) Tanh() (Array[T], error) {
	if err := a.requireFloat("tanh"); err != nil {
		return Array[T]{}, err
	}
	return a.unaryOp(a.k.Float.Tanh), nil
}

func (a Array[T]) Sqrt() (Array[T], error) {
	if err := a.requireFloat("sqrt"); err != nil {
		return Array[T]{}, err
	}
	return a.unaryOp(a.k.Float.Sqrt), nil
}

func (a Array[T]) Exp() (Array[T], error) {
	if err := a.requireFloat("exp"); err != nil {
		return Array[T]{}, err
	}
	return a.unaryOp(a.k.Float.Exp), nil
}

func (a Array[T]) Ln() (Array[T], error) {
	if err := a.requireFloat("ln"); err != nil {
		return Array[T]{}, err
	}
	return a.unaryOp(a.k.Float.Ln), nil
}

// IsInf and IsNaN are classification predicates returning the boolean
// (0/1 of T) convention used throughout the comparison family.
func (a Array[T]) IsInf() (Array[T], error) {
	if err := a.requireFloat("is_inf"); err != nil {
		return Array[T]{}, err
	}
	return a.unaryOp(func(x T) T {
		if a.k.Float.IsInf(x) {
			return a.k.One
		}
		return a.k.Zero
	}), nil
}

func (a Array[T]) IsNaN() (Array[T], error) {
	if err := a.requireFloat("is_nan"); err != nil {
		return Array[T]{}, err
	}
	return a.unaryOp(func(x T) T {
		if a.k.Float.IsNaN(x) {
			return a.k.One
		}
		return a.k.Zero
	}), nil
}
