package tensor

import (
	"github.com/tensorgraph/tensorgraph/internal/ops"
	"github.com/tensorgraph/tensorgraph/internal/shape"
	"github.com/tensorgraph/tensorgraph/internal/tensorerr"
)

// MatMul multiplies a by b, batching over every leading axis but the last
// two. Leading dims must match exactly between operands — matmul does not
// broadcast them — and a's last dim must equal b's second-to-last dim.
func (a Array[T]) MatMul(b Array[T]) (Array[T], error) {
	if a.shape.Ndim() < 2 || b.shape.Ndim() < 2 {
		return Array[T]{}, tensorerr.Newf(tensorerr.Bounds, "matmul", "both operands must have at least 2 dimensions, got %v and %v", a.shape, b.shape)
	}
	aLead, bLead := a.shape[:a.shape.Ndim()-2], b.shape[:b.shape.Ndim()-2]
	if !aLead.Equal(bLead) {
		return Array[T]{}, tensorerr.Newf(tensorerr.Bounds, "matmul", "leading dims %v and %v must match exactly; matmul does not broadcast them", aLead, bLead)
	}
	m, k := a.shape[a.shape.Ndim()-2], a.shape[a.shape.Ndim()-1]
	k2, n := b.shape[b.shape.Ndim()-2], b.shape[b.shape.Ndim()-1]
	if k != k2 {
		return Array[T]{}, tensorerr.Newf(tensorerr.Bounds, "matmul", "inner dims %d and %d must match", k, k2)
	}

	batch := aLead.Size()
	node := ops.MatMul[T]{Left: a.acc, Right: b.acc, Batch: batch, M: m, K: k, N: n, Kernel: a.k}

	out := append(aLead.Clone(), m, n)
	return wrap(out, ops.Bound[T]{Node: node, Platform: a.plat}, a.plat), nil
}

// Diag is both directions of the diagonal op: a 1-D array constructs the
// n×n diagonal matrix, a 2-D array extracts its main diagonal. Arbitrary
// batched diag (3-D and beyond) is not supported; ops.MatDiag only ever
// interprets its input as plain 1-D or 2-D.
func (a Array[T]) Diag() (Array[T], error) {
	if a.shape.Ndim() != 1 && a.shape.Ndim() != 2 {
		return Array[T]{}, tensorerr.Newf(tensorerr.Bounds, "diag", "diag requires a 1-D or 2-D array, got shape %v", a.shape)
	}
	node := ops.MatDiag[T]{Input: a.acc, InShape: a.shape.Clone()}
	var out shape.Shape
	if a.shape.Ndim() == 1 {
		n := a.shape[0]
		out = shape.Shape{n, n}
	} else {
		rows, cols := a.shape[0], a.shape[1]
		n := rows
		if cols < n {
			n = cols
		}
		out = shape.Shape{n}
	}
	return wrap(out, ops.Bound[T]{Node: node, Platform: a.plat}, a.plat), nil
}
