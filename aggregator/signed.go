package aggregator

// SignedU128 is a sign/magnitude representation of a delta: either a
// non-negative addition or a non-negative subtraction, each bounded in
// magnitude by the owning aggregator's max_value. Splitting sign from
// magnitude avoids ever materializing a true signed 128-bit integer, whose
// range would have to be asymmetric around zero relative to max_value.
type SignedU128 struct {
	negative  bool
	magnitude Uint128
}

// PositiveU128 constructs a non-negative SignedU128.
func PositiveU128(magnitude Uint128) SignedU128 {
	return SignedU128{negative: false, magnitude: magnitude}
}

// NegativeU128 constructs a negative SignedU128. A zero magnitude is always
// treated as positive zero (there is only one zero).
func NegativeU128(magnitude Uint128) SignedU128 {
	if magnitude.IsZero() {
		return SignedU128{}
	}
	return SignedU128{negative: true, magnitude: magnitude}
}

// IsPositive reports whether the value is zero or positive.
func (s SignedU128) IsPositive() bool {
	return !s.negative
}

// IsNegative reports whether the value is strictly negative.
func (s SignedU128) IsNegative() bool {
	return s.negative
}

// Magnitude returns the absolute value.
func (s SignedU128) Magnitude() Uint128 {
	return s.magnitude
}

// Minus returns the additive inverse.
func (s SignedU128) Minus() SignedU128 {
	if s.magnitude.IsZero() {
		return s
	}
	return SignedU128{negative: !s.negative, magnitude: s.magnitude}
}

// Equal reports whether s and o denote the same value.
func (s SignedU128) Equal(o SignedU128) bool {
	if s.magnitude.IsZero() && o.magnitude.IsZero() {
		return true
	}
	return s.negative == o.negative && s.magnitude.Cmp(o.magnitude) == 0
}

// IsZero reports whether the value is exactly zero.
func (s SignedU128) IsZero() bool {
	return s.magnitude.IsZero()
}

// String renders the value with an explicit sign for negatives.
func (s SignedU128) String() string {
	if s.negative {
		return "-" + s.magnitude.String()
	}
	return s.magnitude.String()
}
