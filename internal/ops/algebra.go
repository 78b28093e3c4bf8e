package ops

import "github.com/tensorgraph/tensorgraph/internal/kernel"

// Comparison names the six comparison operators available to Dual; each
// one produces a boolean (0/1 of T) result rather than a distinct boolean
// element type, matching the engine's single-element-type-per-array
// convention.
type Comparison int

const (
	Eq Comparison = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// CompareZip builds the Dual.Zip function for a Comparison.
func CompareZip[T kernel.Real](c Comparison) func(a, b T) (T, error) {
	return func(a, b T) (T, error) {
		var hit bool
		switch c {
		case Eq:
			hit = a == b
		case Ne:
			hit = a != b
		case Lt:
			hit = a < b
		case Le:
			hit = a <= b
		case Gt:
			hit = a > b
		case Ge:
			hit = a >= b
		}
		if hit {
			return T(1), nil
		}
		return T(0), nil
	}
}
