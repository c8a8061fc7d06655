package support

// Unsigned is the set of numeric types usable as block numbers, nonces and
// balances.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Zero returns the additive identity of T.
func Zero[T Unsigned]() T {
	return 0
}

// One returns the multiplicative identity of T.
func One[T Unsigned]() T {
	return 1
}

// CheckedAdd returns a+b, or false if the sum does not fit in T.
func CheckedAdd[T Unsigned](a, b T) (T, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// CheckedSub returns a-b, or false if the result would be negative.
func CheckedSub[T Unsigned](a, b T) (T, bool) {
	if b > a {
		return 0, false
	}
	return a - b, true
}
