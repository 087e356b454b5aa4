// Package rational implements exact arithmetic over signed fractions of
// fixed-width integers.
//
// Every Rational is kept normalized: the denominator is strictly positive
// and shares no factor with the numerator, and zero is uniquely
// represented as 0/1. The zero value of the type is 0.
package rational

import (
	"github.com/shopspring/decimal"

	"factoryopt/pkg/bigint"
)

// Rational is a signed fraction in lowest terms with a positive
// denominator.
type Rational struct {
	num, den bigint.Int
}

// canon maps the uninitialized zero value onto the canonical 0/1.
func (r Rational) canon() Rational {
	if r.den.IsZero() {
		r.den = bigint.NewInt(1)
	}
	return r
}

// Zero returns 0.
func Zero() Rational {
	return FromInt64(0)
}

// One returns 1.
func One() Rational {
	return FromInt64(1)
}

// FromInt64 returns x/1.
func FromInt64(x int64) Rational {
	return Rational{num: bigint.NewInt(x), den: bigint.NewInt(1)}
}

// FromInt returns x/1.
func FromInt(x bigint.Int) Rational {
	return Rational{num: x, den: bigint.NewInt(1)}
}

// New returns num/den, normalized. A zero denominator is a caller bug and
// panics.
func New(num, den bigint.Int) Rational {
	if den.IsZero() {
		panic("rational: zero denominator")
	}
	if den.Sign() < 0 {
		num = num.Neg()
		den = den.Neg()
	}
	r := Rational{num: num, den: den}
	r.normalize()
	return r
}

// NewInt64 returns num/den from native integers, normalized.
func NewInt64(num, den int64) Rational {
	return New(bigint.NewInt(num), bigint.NewInt(den))
}

// normalize divides both parts by their greatest common divisor. The
// denominator is already positive here.
func (r *Rational) normalize() {
	x := bigint.GCD(r.num, r.den)
	r.num = r.num.Div(x)
	r.den = r.den.Div(x)
}

// Num returns the numerator.
func (r Rational) Num() bigint.Int { return r.canon().num }

// Den returns the denominator.
func (r Rational) Den() bigint.Int { return r.canon().den }

// IsZero reports whether r is zero.
func (r Rational) IsZero() bool { return r.num.IsZero() }

// Sign returns -1, 0, or +1.
func (r Rational) Sign() int { return r.num.Sign() }

// Neg returns -r.
func (r Rational) Neg() Rational {
	r = r.canon()
	return Rational{num: r.num.Neg(), den: r.den}
}

// Inverse returns 1/r. The divisor's sign moves to the numerator so the
// denominator stays positive. r must be nonzero.
func (r Rational) Inverse() Rational {
	r = r.canon()
	if r.num.IsZero() {
		panic("rational: inverse of zero")
	}
	if r.num.Sign() > 0 {
		return Rational{num: r.den, den: r.num}
	}
	return Rational{num: r.den.Neg(), den: r.num.Neg()}
}

// Add returns r + o, normalizing once after the cross-multiplication.
func (r Rational) Add(o Rational) Rational {
	r, o = r.canon(), o.canon()
	return New(
		r.num.Mul(o.den).Add(o.num.Mul(r.den)),
		r.den.Mul(o.den),
	)
}

// Sub returns r - o.
func (r Rational) Sub(o Rational) Rational {
	return r.Add(o.Neg())
}

// Mul returns r * o. Common factors are cancelled across the two
// fractions before multiplying to keep intermediate magnitudes small.
func (r Rational) Mul(o Rational) Rational {
	r, o = r.canon(), o.canon()
	one := bigint.NewInt(1)
	if x := bigint.GCD(r.num, o.den); !x.Equal(one) {
		r.num = r.num.Div(x)
		o.den = o.den.Div(x)
	}
	if x := bigint.GCD(o.num, r.den); !x.Equal(one) {
		o.num = o.num.Div(x)
		r.den = r.den.Div(x)
	}
	return New(r.num.Mul(o.num), r.den.Mul(o.den))
}

// Div returns r / o. o must be nonzero.
func (r Rational) Div(o Rational) Rational {
	return r.Mul(o.Inverse())
}

// Equal reports whether r and o hold the same value.
func (r Rational) Equal(o Rational) bool {
	r, o = r.canon(), o.canon()
	return r.num.Equal(o.num) && r.den.Equal(o.den)
}

// Cmp orders r against o by cross-multiplication, which is valid because
// denominators are positive. It returns -1, 0, or +1.
func (r Rational) Cmp(o Rational) int {
	r, o = r.canon(), o.canon()
	return r.num.Mul(o.den).Cmp(o.num.Mul(r.den))
}

// Float64 returns the nearest floating-point value.
func (r Rational) Float64() float64 {
	r = r.canon()
	return r.num.Float64() / r.den.Float64()
}

// Decimal returns r rounded half-up to the given number of decimal
// places.
func (r Rational) Decimal(scale int32) decimal.Decimal {
	r = r.canon()
	num := decimal.RequireFromString(r.num.String())
	den := decimal.RequireFromString(r.den.String())
	return num.DivRound(den, scale)
}

// String renders r as "n" for integers and "n/d" otherwise.
func (r Rational) String() string {
	r = r.canon()
	if r.den.Equal(bigint.NewInt(1)) {
		return r.num.String()
	}
	return r.num.String() + "/" + r.den.String()
}
