package bigint

import "strings"

// Int is a signed fixed-width integer: a sign flag plus a Uint magnitude.
// Negative zero is indistinguishable from zero in every operation.
type Int struct {
	negative  bool
	magnitude Uint
}

// NewInt builds an Int from a native signed value.
func NewInt(x int64) Int {
	if x < 0 {
		return Int{negative: true, magnitude: NewUint(uint64(-x))}
	}
	return Int{magnitude: NewUint(uint64(x))}
}

// IntFromUint builds a non-negative Int from a magnitude.
func IntFromUint(u Uint) Int {
	return Int{magnitude: u}
}

// ParseInt parses an optionally '-'-prefixed string of decimal digits,
// wrapping modulo 2^Bits if the magnitude does not fit.
func ParseInt(input string) (Int, bool) {
	negative := strings.HasPrefix(input, "-")
	if negative {
		input = input[1:]
	}
	magnitude, ok := ParseUint(input)
	if !ok {
		return Int{}, false
	}
	return Int{negative: negative, magnitude: magnitude}, true
}

// IsZero reports whether i is zero, regardless of sign flag.
func (i Int) IsZero() bool {
	return i.magnitude.IsZero()
}

// Sign returns -1 for negative values, 0 for zero, and +1 for positive.
func (i Int) Sign() int {
	if i.magnitude.IsZero() {
		return 0
	}
	if i.negative {
		return -1
	}
	return 1
}

// Neg returns -i.
func (i Int) Neg() Int {
	i.negative = !i.negative
	return i
}

// Abs returns the magnitude of i.
func (i Int) Abs() Uint {
	return i.magnitude
}

// Add returns i + o. When the signs differ the smaller magnitude is
// subtracted from the larger and the result takes the larger side's sign.
func (i Int) Add(o Int) Int {
	switch {
	case i.negative == o.negative:
		i.magnitude = i.magnitude.Add(o.magnitude)
	case i.magnitude.Cmp(o.magnitude) < 0:
		i.negative = !i.negative
		i.magnitude = o.magnitude.Sub(i.magnitude)
	default:
		i.magnitude = i.magnitude.Sub(o.magnitude)
	}
	return i
}

// Sub returns i - o.
func (i Int) Sub(o Int) Int {
	return i.Add(o.Neg())
}

// Mul returns i * o.
func (i Int) Mul(o Int) Int {
	return Int{
		negative:  i.negative != o.negative,
		magnitude: i.magnitude.Mul(o.magnitude),
	}
}

// Div returns i / o, truncated toward zero. o must be nonzero.
func (i Int) Div(o Int) Int {
	return Int{
		negative:  i.negative != o.negative,
		magnitude: i.magnitude.Div(o.magnitude),
	}
}

// Mod returns i mod o, with the sign of the dividend. o must be nonzero.
func (i Int) Mod(o Int) Int {
	return Int{
		negative:  i.negative,
		magnitude: i.magnitude.Mod(o.magnitude),
	}
}

// Equal reports whether i and o hold the same value. +0 and -0 are equal.
func (i Int) Equal(o Int) bool {
	if i.magnitude.IsZero() && o.magnitude.IsZero() {
		return true
	}
	return i.negative == o.negative && i.magnitude.Cmp(o.magnitude) == 0
}

// Cmp returns -1, 0, or +1 ordering i against o. All negative values
// order below all non-negative values.
func (i Int) Cmp(o Int) int {
	if i.magnitude.IsZero() && o.magnitude.IsZero() {
		return 0
	}
	switch {
	case i.negative && !o.negative:
		return -1
	case !i.negative && o.negative:
		return 1
	case i.negative:
		return o.magnitude.Cmp(i.magnitude)
	default:
		return i.magnitude.Cmp(o.magnitude)
	}
}

// GCD returns the greatest common divisor of the magnitudes of a and b,
// as a non-negative Int. GCD(a, 0) is |a|.
func GCD(a, b Int) Int {
	return IntFromUint(GCDUint(a.magnitude, b.magnitude))
}

// Float64 returns the nearest floating-point value.
func (i Int) Float64() float64 {
	magnitude := i.magnitude.Float64()
	if i.negative {
		return -magnitude
	}
	return magnitude
}

// String renders i in decimal. Negative zero renders as "0".
func (i Int) String() string {
	if i.negative && !i.magnitude.IsZero() {
		return "-" + i.magnitude.String()
	}
	return i.magnitude.String()
}
