package ops

import (
	"github.com/tensorgraph/tensorgraph/internal/access"
	"github.com/tensorgraph/tensorgraph/internal/buffer"
	"github.com/tensorgraph/tensorgraph/internal/kernel"
	"github.com/tensorgraph/tensorgraph/internal/platform"
)

// Unary is the elementwise map family: abs/exp/ln/round, trig, not,
// is_inf/is_nan. Fn cannot fail; there is no checked unary variant. Fn is a plain
// function pointer, not a boxed closure, per the engine's "function
// pointer zips" design note — Unary stays copy-sized regardless of which
// scalar kernel it wraps.
type Unary[T kernel.Real] struct {
	Input access.Reader[T]
	Fn    func(T) T
}

func (u Unary[T]) Size() int { return u.Input.Size() }

func (u Unary[T]) ReadValue(i int) (T, error) {
	v, err := u.Input.ReadValue(i)
	if err != nil {
		return v, err
	}
	return u.Fn(v), nil
}

func (u Unary[T]) Enqueue(p *platform.Platform) (buffer.Any[T], error) {
	in, err := u.Input.Read()
	if err != nil {
		return nil, err
	}
	src := in.Slice()
	return materialize(p, len(src), func(i int) T { return u.Fn(src[i]) }), nil
}

// Scalar is elementwise-with-fixed-right-operand: same shape as Input,
// zipped against a constant via G.
type Scalar[T kernel.Real] struct {
	Input access.Reader[T]
	Value T
	G     func(a, b T) (T, error)
}

func (s Scalar[T]) Size() int { return s.Input.Size() }

func (s Scalar[T]) ReadValue(i int) (T, error) {
	v, err := s.Input.ReadValue(i)
	if err != nil {
		return v, err
	}
	return s.G(v, s.Value)
}

func (s Scalar[T]) Enqueue(p *platform.Platform) (buffer.Any[T], error) {
	in, err := s.Input.Read()
	if err != nil {
		return nil, err
	}
	src := in.Slice()
	return materializeErr(p, len(src), func(i int) (T, error) { return s.G(src[i], s.Value) })
}

// Dual is the elementwise zip family (add/sub/mul/div/compare/...): Left
// and Right must have equal size, validated by the façade before the op
// is constructed.
type Dual[T kernel.Real] struct {
	Left, Right access.Reader[T]
	Zip         func(a, b T) (T, error)
}

func (d Dual[T]) Size() int { return d.Left.Size() }

func (d Dual[T]) ReadValue(i int) (T, error) {
	l, err := d.Left.ReadValue(i)
	if err != nil {
		return l, err
	}
	r, err := d.Right.ReadValue(i)
	if err != nil {
		return r, err
	}
	return d.Zip(l, r)
}

func (d Dual[T]) Enqueue(p *platform.Platform) (buffer.Any[T], error) {
	var lr, rr buffer.Reader[T]
	var lerr, rerr error

	// Fork-join the two operand reads so they run concurrently and both
	// complete before either slice is touched.
	if err := p.Pool().Fork(
		func() error { lr, lerr = d.Left.Read(); return lerr },
		func() error { rr, rerr = d.Right.Read(); return rerr },
	); err != nil {
		return nil, err
	}

	left, right := lr.Slice(), rr.Slice()
	return materializeErr(p, len(left), func(i int) (T, error) { return d.Zip(left[i], right[i]) })
}

// Compare is Dual specialized to a boolean-valued (0/1) output, kept as a
// distinct constructor set in algebra.go for readability; it reuses Dual
// directly since the output element type equals the input element type in
// this engine's boolean convention (0/1 of T).

// Cond implements per-element select: output[i] = Then[i] if Cond[i] != 0
// else Else[i]. All three accessors must share the op's declared size.
type Cond[T kernel.Real] struct {
	Cond access.Reader[uint8]
	Then access.Reader[T]
	Else access.Reader[T]
}

func (c Cond[T]) Size() int { return c.Then.Size() }

func (c Cond[T]) ReadValue(i int) (T, error) {
	cv, err := c.Cond.ReadValue(i)
	if err != nil {
		var zero T
		return zero, err
	}
	if cv != 0 {
		return c.Then.ReadValue(i)
	}
	return c.Else.ReadValue(i)
}

func (c Cond[T]) Enqueue(p *platform.Platform) (buffer.Any[T], error) {
	condR, err := c.Cond.Read()
	if err != nil {
		return nil, err
	}
	thenR, err := c.Then.Read()
	if err != nil {
		return nil, err
	}
	elseR, err := c.Else.Read()
	if err != nil {
		return nil, err
	}
	cond, then, els := condR.Slice(), thenR.Slice(), elseR.Slice()

	return materialize(p, len(then), func(i int) T {
		if cond[i] != 0 {
			return then[i]
		}
		return els[i]
	}), nil
}

// Cast converts an accessor of element type In into one of element type
// Out via the universal f64 round trip (ToFloat64 then FromFloat64).
type Cast[In, Out kernel.Real] struct {
	Input       access.Reader[In]
	ToFloat64   func(In) float64
	FromFloat64 func(float64) Out
}

func (c Cast[In, Out]) Size() int { return c.Input.Size() }

func (c Cast[In, Out]) ReadValue(i int) (Out, error) {
	v, err := c.Input.ReadValue(i)
	if err != nil {
		var zero Out
		return zero, err
	}
	return c.FromFloat64(c.ToFloat64(v)), nil
}

func (c Cast[In, Out]) Enqueue(p *platform.Platform) (buffer.Any[Out], error) {
	in, err := c.Input.Read()
	if err != nil {
		return nil, err
	}
	src := in.Slice()
	return materialize(p, len(src), func(i int) Out { return c.FromFloat64(c.ToFloat64(src[i])) }), nil
}
