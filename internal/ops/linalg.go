package ops

import (
	"github.com/tensorgraph/tensorgraph/internal/access"
	"github.com/tensorgraph/tensorgraph/internal/buffer"
	"github.com/tensorgraph/tensorgraph/internal/kernel"
	"github.com/tensorgraph/tensorgraph/internal/platform"
	"github.com/tensorgraph/tensorgraph/internal/shape"
	"github.com/tensorgraph/tensorgraph/internal/tensorerr"
)

// MatDiag is both directions of the diagonal op: a 1-D input of length n
// constructs the n×n diagonal matrix; a 2-D input extracts its main
// diagonal (length min(rows, cols)).
type MatDiag[T kernel.Real] struct {
	Input   access.Accessor[T]
	InShape shape.Shape
}

func (d MatDiag[T]) outShape() shape.Shape {
	if d.InShape.Ndim() == 1 {
		n := d.InShape[0]
		return shape.Shape{n, n}
	}
	rows, cols := d.InShape[0], d.InShape[1]
	n := rows
	if cols < n {
		n = cols
	}
	return shape.Shape{n}
}

func (d MatDiag[T]) Size() int { return d.outShape().Size() }

func (d MatDiag[T]) ReadValue(i int) (T, error) {
	var zero T
	if i < 0 || i >= d.Size() {
		return zero, boundsf("mat_diag.read_value", d.Size(), i)
	}
	if d.InShape.Ndim() == 1 {
		n := d.InShape[0]
		row, col := i/n, i%n
		if row != col {
			return zero, nil
		}
		return d.Input.ReadValue(row)
	}
	cols := d.InShape[1]
	return d.Input.ReadValue(i*cols + i)
}

func (d MatDiag[T]) Enqueue(p *platform.Platform) (buffer.Any[T], error) {
	return materializeErr(p, d.Size(), func(i int) (T, error) { return d.ReadValue(i) })
}

// MatMul multiplies Batch stacked M×K left matrices by Batch stacked K×N
// right matrices into Batch stacked M×N results (Batch is 1 for a plain
// 2-D matmul). Leading batch dims must already match between operands —
// the façade validates this before constructing the op, since matmul does
// not broadcast its leading dims. Random access is unsupported:
// a single output element still requires a full K-length dot product, so
// point reads give the engine no savings over materializing the whole
// result, and the op declares this with a Bounds error rather than
// silently doing the dot product per call.
type MatMul[T kernel.Real] struct {
	Left, Right    access.Reader[T]
	Batch, M, K, N int
	Kernel         kernel.Kernel[T]
}

func (m MatMul[T]) Size() int { return m.Batch * m.M * m.N }

func (m MatMul[T]) ReadValue(int) (T, error) {
	var zero T
	return zero, tensorerr.New(tensorerr.Bounds, "matmul.read_value", "random access is not supported for MatMul")
}

// matMulChunk is the dot-product chunk width used when summing each row:
// wide enough to vectorize well, narrow enough to stay a flat loop rather
// than the blocked triple loop a cache-tiled implementation would use.
const matMulChunk = 8

func (m MatMul[T]) Enqueue(p *platform.Platform) (buffer.Any[T], error) {
	leftR, err := m.Left.Read()
	if err != nil {
		return nil, err
	}
	rightR, err := m.Right.Read()
	if err != nil {
		return nil, err
	}
	left, right := leftR.Slice(), rightR.Slice()

	if len(left) != m.Batch*m.M*m.K {
		return nil, tensorerr.Newf(tensorerr.Bounds, "matmul.enqueue", "left operand has %d elements, want %d for %d batches of %dx%d", len(left), m.Batch*m.M*m.K, m.Batch, m.M, m.K)
	}
	if len(right) != m.Batch*m.K*m.N {
		return nil, tensorerr.Newf(tensorerr.Bounds, "matmul.enqueue", "right operand has %d elements, want %d for %d batches of %dx%d", len(right), m.Batch*m.K*m.N, m.Batch, m.K, m.N)
	}

	// Transpose each batch's K×N right-operand slab into an N×K slab once,
	// up front, so every row's dot product below reads both operands
	// contiguously instead of re-transposing per output element.
	rightT := make([]T, m.Batch*m.N*m.K)
	for b := 0; b < m.Batch; b++ {
		rbase, tbase := b*m.K*m.N, b*m.N*m.K
		for k := 0; k < m.K; k++ {
			for n := 0; n < m.N; n++ {
				rightT[tbase+n*m.K+k] = right[rbase+k*m.N+n]
			}
		}
	}

	out := make([]T, m.Batch*m.M*m.N)
	dotRow := func(batch, row int) {
		lbase := batch * m.M * m.K
		tbase := batch * m.N * m.K
		obase := batch * m.M * m.N
		lrow := left[lbase+row*m.K : lbase+row*m.K+m.K]
		for n := 0; n < m.N; n++ {
			rrow := rightT[tbase+n*m.K : tbase+n*m.K+m.K]
			var acc T
			k := 0
			for ; k+matMulChunk <= m.K; k += matMulChunk {
				for kk := 0; kk < matMulChunk; kk++ {
					acc = m.Kernel.Add(acc, m.Kernel.Mul(lrow[k+kk], rrow[k+kk]))
				}
			}
			for ; k < m.K; k++ {
				acc = m.Kernel.Add(acc, m.Kernel.Mul(lrow[k], rrow[k]))
			}
			out[obase+row*m.N+n] = acc
		}
	}

	totalRows := m.Batch * m.M
	run := func(idx int) { dotRow(idx/m.M, idx%m.M) }

	kind := p.Select(m.Batch * m.M * m.N)
	switch kind {
	case platform.KindStack:
		for idx := 0; idx < totalRows; idx++ {
			run(idx)
		}
	default:
		p.Pool().Chunks(totalRows, func(start, end int) error {
			for idx := start; idx < end; idx++ {
				run(idx)
			}
			return nil
		})
	}

	if kind == platform.KindDevice {
		return platform.DeviceUpload(p, out)
	}
	return buffer.NewHeap(out), nil
}
