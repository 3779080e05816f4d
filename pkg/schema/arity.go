package schema

import "strconv"

// Arity is the number of tokens an argument declaration consumes. The zero
// value consumes a single token, as does Exactly(1). Negative values mean
// unbounded; use the Many constant.
type Arity int

// Many marks a declaration that consumes every positional token available
// to it, or every flagged token up to the next flag.
const Many Arity = -1

// Exactly returns the arity consuming exactly n tokens.
func Exactly(n int) Arity {
	return Arity(n)
}

// IsMany reports whether the arity is unbounded.
func (a Arity) IsMany() bool {
	return a < 0
}

// IsSingle reports whether the arity consumes exactly one token.
func (a Arity) IsSingle() bool {
	return a == 0 || a == 1
}

// Count returns the exact token count: 1 for the zero value, 0 when the
// arity is unbounded.
func (a Arity) Count() int {
	switch {
	case a.IsMany():
		return 0
	case a == 0:
		return 1
	default:
		return int(a)
	}
}

func (a Arity) String() string {
	switch {
	case a.IsMany():
		return "many"
	case a.IsSingle():
		return "one"
	default:
		return strconv.Itoa(int(a))
	}
}
