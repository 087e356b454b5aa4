package bigint

// Uint is an unsigned fixed-width integer of Bits bits. The zero value is
// zero. Arithmetic wraps modulo 2^Bits.
type Uint struct {
	words [Words]uint32
}

// NewUint builds a Uint from a native unsigned value.
func NewUint(x uint64) Uint {
	var u Uint
	u.words[0] = uint32(x)
	if Words > 1 {
		u.words[1] = uint32(x >> 32)
	}
	return u
}

// ParseUint parses a string of decimal digits, wrapping modulo 2^Bits if
// the value does not fit. It returns false if the input is empty or
// contains a non-digit.
func ParseUint(input string) (Uint, bool) {
	if len(input) == 0 {
		return Uint{}, false
	}
	for i := 0; i < len(input); i++ {
		if input[i] < '0' || input[i] > '9' {
			return Uint{}, false
		}
	}
	var u, scratch Uint
	ParseDecimal(u.words[:], scratch.words[:], input)
	return u, true
}

// IsZero reports whether u is zero.
func (u Uint) IsZero() bool {
	return RealSize(u.words[:]) == 0
}

// Cmp returns -1, 0, or +1 ordering u against o.
func (u Uint) Cmp(o Uint) int {
	return Compare(u.words[:], o.words[:])
}

// Add returns u + o.
func (u Uint) Add(o Uint) Uint {
	Add(u.words[:], o.words[:])
	return u
}

// Sub returns u - o.
func (u Uint) Sub(o Uint) Uint {
	Sub(u.words[:], o.words[:])
	return u
}

// Mul returns u * o.
func (u Uint) Mul(o Uint) Uint {
	var product Uint
	Mul(product.words[:], u.words[:], o.words[:])
	return product
}

// DivWord returns u / x and u mod x for a single nonzero word divisor.
func (u Uint) DivWord(x uint32) (Uint, uint32) {
	remainder := DivWord(u.words[:], x)
	return u, remainder
}

// DivMod returns u / o and u mod o. o must be nonzero.
func (u Uint) DivMod(o Uint) (Uint, Uint) {
	var quotient Uint
	DivMod(quotient.words[:], u.words[:], o.words[:])
	return quotient, u
}

// Div returns u / o. o must be nonzero.
func (u Uint) Div(o Uint) Uint {
	quotient, _ := u.DivMod(o)
	return quotient
}

// Mod returns u mod o. o must be nonzero.
func (u Uint) Mod(o Uint) Uint {
	_, remainder := u.DivMod(o)
	return remainder
}

// Shl returns u * 2^amount.
func (u Uint) Shl(amount int) Uint {
	ShiftLeft(u.words[:], amount)
	return u
}

// Shr returns u / 2^amount.
func (u Uint) Shr(amount int) Uint {
	ShiftRight(u.words[:], amount)
	return u
}

// TrailingZeros returns the number of trailing zero bits, or Bits when u
// is zero.
func (u Uint) TrailingZeros() int {
	return trailingZeros(u.words[:])
}

// GCDUint returns the greatest common divisor of a and b by the binary
// method: the shared factor of two is stripped up front and reattached at
// the end, and each round subtracts the smaller value from the larger and
// discards the fresh trailing zeros.
func GCDUint(a, b Uint) Uint {
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	i := a.TrailingZeros()
	a = a.Shr(i)
	j := b.TrailingZeros()
	b = b.Shr(j)
	shared := min(i, j)
	for {
		if a.Cmp(b) > 0 {
			a, b = b, a
		}
		b = b.Sub(a)
		if b.IsZero() {
			return a.Shl(shared)
		}
		b = b.Shr(b.TrailingZeros())
	}
}

// Float64 returns the nearest floating-point value.
func (u Uint) Float64() float64 {
	var result float64
	for i := Words - 1; i >= 0; i-- {
		result = result*(1<<32) + float64(u.words[i])
	}
	return result
}

// String renders u in decimal.
func (u Uint) String() string {
	var buffer [Words*10 + decimalBatchSize]byte
	return string(EncodeDecimal(buffer[:], u.words[:]))
}
