package tensor

import (
	"github.com/tensorgraph/tensorgraph/internal/kernel"
	"github.com/tensorgraph/tensorgraph/internal/ops"
	"github.com/tensorgraph/tensorgraph/internal/tensorerr"
)

// Eq, Ne, Lt, Le, Gt, Ge are the elementwise comparison family. Results are
// arrays of the same element type T carrying the 1/0 boolean convention;
// comparisons never change element type, a caller that wants a boolean
// mask casts afterward.
func (a Array[T]) Eq(b Array[T]) (Array[T], error) { return a.dual(b, "eq", ops.CompareZip[T](ops.Eq)) }
func (a Array[T]) Ne(b Array[T]) (Array[T], error) { return a.dual(b, "ne", ops.CompareZip[T](ops.Ne)) }
func (a Array[T]) Lt(b Array[T]) (Array[T], error) { return a.dual(b, "lt", ops.CompareZip[T](ops.Lt)) }
func (a Array[T]) Le(b Array[T]) (Array[T], error) { return a.dual(b, "le", ops.CompareZip[T](ops.Le)) }
func (a Array[T]) Gt(b Array[T]) (Array[T], error) { return a.dual(b, "gt", ops.CompareZip[T](ops.Gt)) }
func (a Array[T]) Ge(b Array[T]) (Array[T], error) { return a.dual(b, "ge", ops.CompareZip[T](ops.Ge)) }

// EqScalar, NeScalar, LtScalar, LeScalar, GtScalar, GeScalar compare every
// element of a against a fixed right operand.
func (a Array[T]) EqScalar(v T) Array[T] { return a.scalarOp(v, ops.CompareZip[T](ops.Eq)) }
func (a Array[T]) NeScalar(v T) Array[T] { return a.scalarOp(v, ops.CompareZip[T](ops.Ne)) }
func (a Array[T]) LtScalar(v T) Array[T] { return a.scalarOp(v, ops.CompareZip[T](ops.Lt)) }
func (a Array[T]) LeScalar(v T) Array[T] { return a.scalarOp(v, ops.CompareZip[T](ops.Le)) }
func (a Array[T]) GtScalar(v T) Array[T] { return a.scalarOp(v, ops.CompareZip[T](ops.Gt)) }
func (a Array[T]) GeScalar(v T) Array[T] { return a.scalarOp(v, ops.CompareZip[T](ops.Ge)) }

// Cond selects elementwise between then and els according to cond, which
// must carry the same shape as both operands: nonzero selects then,
// zero selects els.
func Cond[T kernel.Real](cond Array[uint8], then, els Array[T]) (Array[T], error) {
	if !cond.shape.Equal(then.shape) || !then.shape.Equal(els.shape) {
		return Array[T]{}, tensorerr.Newf(tensorerr.Bounds, "cond",
			"cond shape %v, then shape %v, and else shape %v must match", cond.shape, then.shape, els.shape).WithShape(then.shape)
	}
	node := ops.Cond[T]{Cond: cond.acc, Then: then.acc, Else: els.acc}
	return wrap(then.shape.Clone(), ops.Bound[T]{Node: node, Platform: then.plat}, then.plat), nil
}
