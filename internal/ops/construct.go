package ops

import (
	"math"
	"math/rand"

	"github.com/tensorgraph/tensorgraph/internal/buffer"
	"github.com/tensorgraph/tensorgraph/internal/kernel"
	"github.com/tensorgraph/tensorgraph/internal/platform"
	"github.com/tensorgraph/tensorgraph/internal/tensorerr"
)

// Linear materializes start + i*step cast to T via f64; random access is
// exact since each element is a pure function of its index.
type Linear[T kernel.Real] struct {
	StartF64    float64
	Step        float64
	N           int
	FromFloat64 func(float64) T
}

func (l Linear[T]) Size() int { return l.N }

func (l Linear[T]) ReadValue(i int) (T, error) {
	if i < 0 || i >= l.N {
		var zero T
		return zero, boundsf("linear.read_value", l.N, i)
	}
	return l.FromFloat64(l.StartF64 + float64(i)*l.Step), nil
}

func (l Linear[T]) Enqueue(p *platform.Platform) (buffer.Any[T], error) {
	return materialize(p, l.N, func(i int) T { return l.FromFloat64(l.StartF64 + float64(i)*l.Step) }), nil
}

// RandomUniform draws f32 in [0,1) per element, cast to T. Random access
// is legal: each draw is independent, so a point read is just one more
// draw from the same external-collaborator RNG (math/rand; generating
// random numbers itself is out of scope for this engine).
type RandomUniform[T kernel.Real] struct {
	N           int
	FromFloat64 func(float64) T
}

func (r RandomUniform[T]) Size() int { return r.N }

func (r RandomUniform[T]) ReadValue(i int) (T, error) {
	if i < 0 || i >= r.N {
		var zero T
		return zero, boundsf("random_uniform.read_value", r.N, i)
	}
	return r.FromFloat64(float64(rand.Float32())), nil
}

func (r RandomUniform[T]) Enqueue(p *platform.Platform) (buffer.Any[T], error) {
	return materialize(p, r.N, func(i int) T { return r.FromFloat64(float64(rand.Float32())) }), nil
}

// RandomNormal draws Box-Muller pairs over uniform draws. Random access is
// NOT supported: a single normal sample is only well-defined as one half
// of a pair drawn together, so ReadValue always fails.
type RandomNormal[T kernel.Real] struct {
	N           int
	FromFloat64 func(float64) T
}

func (r RandomNormal[T]) Size() int { return r.N }

func (r RandomNormal[T]) ReadValue(i int) (T, error) {
	var zero T
	return zero, tensorerr.New(tensorerr.Bounds, "random_normal.read_value", "random access is not supported for RandomNormal")
}

// boxMuller turns one pair of independent U(0,1) draws into one pair of
// independent standard-normal draws.
func boxMuller(u1, u2 float32) (float32, float32) {
	r := float32(math.Sqrt(-2 * math.Log(float64(u1))))
	theta := float32(2 * math.Pi * float64(u2))
	return r * float32(math.Cos(float64(theta))), r * float32(math.Sin(float64(theta)))
}

func (r RandomNormal[T]) Enqueue(p *platform.Platform) (buffer.Any[T], error) {
	pairs := (r.N + 1) / 2
	samples := make([]float32, pairs*2)

	fill := func(pairIdx int) {
		u1, u2 := rand.Float32(), rand.Float32()
		if u1 <= 0 {
			u1 = math.SmallestNonzeroFloat32
		}
		z0, z1 := boxMuller(u1, u2)
		samples[pairIdx*2] = z0
		samples[pairIdx*2+1] = z1
	}

	switch p.Select(r.N) {
	case platform.KindStack:
		for i := 0; i < pairs; i++ {
			fill(i)
		}
	default:
		p.Pool().Chunks(pairs, func(start, end int) error {
			for i := start; i < end; i++ {
				fill(i)
			}
			return nil
		})
	}

	return materialize(p, r.N, func(i int) T { return r.FromFloat64(float64(samples[i])) }), nil
}
