package aggregator

// BoundedMath implements checked arithmetic over Uint128 values constrained
// to the inclusive range [0, maxValue]. Every operation is pure and total:
// it always returns either a valid in-range result or an error, never a
// silently wrapped or truncated value.
type BoundedMath struct {
	maxValue Uint128
}

// NewBoundedMath constructs a BoundedMath bounded by maxValue.
func NewBoundedMath(maxValue Uint128) BoundedMath {
	return BoundedMath{maxValue: maxValue}
}

// UnsignedAdd returns a+b, or an error if the sum overflows 128 bits or
// exceeds maxValue.
func (m BoundedMath) UnsignedAdd(a, b Uint128) (Uint128, error) {
	sum, overflowed := a.addOverflows(b)
	if overflowed || m.maxValue.Less(sum) {
		return Uint128{}, codeInvariantError("unsigned_add: %s + %s overflows max_value %s", a, b, m.maxValue)
	}
	return sum, nil
}

// UnsignedSubtract returns a-b, or an error if b > a.
func (m BoundedMath) UnsignedSubtract(a, b Uint128) (Uint128, error) {
	diff, underflowed := a.subUnderflows(b)
	if underflowed {
		return Uint128{}, codeInvariantError("unsigned_subtract: %s - %s underflows", a, b)
	}
	return diff, nil
}

// UnsignedAddDelta applies a signed delta d to a, constrained to
// [0, maxValue]. Overflowing above maxValue or underflowing below zero is
// an error.
func (m BoundedMath) UnsignedAddDelta(a Uint128, d SignedU128) (Uint128, error) {
	if d.IsPositive() {
		return m.UnsignedAdd(a, d.Magnitude())
	}
	return m.UnsignedSubtract(a, d.Magnitude())
}

// SignedAdd adds two signed deltas, bounding the result's magnitude to
// maxValue in either direction.
func (m BoundedMath) SignedAdd(d1, d2 SignedU128) (SignedU128, error) {
	switch {
	case d1.IsPositive() && d2.IsPositive():
		sum, err := m.UnsignedAdd(d1.Magnitude(), d2.Magnitude())
		if err != nil {
			return SignedU128{}, err
		}
		return PositiveU128(sum), nil
	case d1.IsNegative() && d2.IsNegative():
		sum, overflowed := d1.Magnitude().addOverflows(d2.Magnitude())
		if overflowed || m.maxValue.Less(sum) {
			return SignedU128{}, codeInvariantError("signed_add: magnitude of %s + %s exceeds max_value %s", d1, d2, m.maxValue)
		}
		return NegativeU128(sum), nil
	case d1.IsPositive() && d2.IsNegative():
		return m.signedSubtractMagnitudes(d1.Magnitude(), d2.Magnitude())
	default: // d1 negative, d2 positive
		return m.signedSubtractMagnitudes(d2.Magnitude(), d1.Magnitude())
	}
}

// signedSubtractMagnitudes returns pos - neg as a SignedU128, where both
// arguments are plain (non-negative) magnitudes.
func (m BoundedMath) signedSubtractMagnitudes(pos, neg Uint128) (SignedU128, error) {
	if neg.Less(pos) || neg.Cmp(pos) == 0 {
		diff, _ := pos.subUnderflows(neg)
		return PositiveU128(diff), nil
	}
	diff, _ := neg.subUnderflows(pos)
	if m.maxValue.Less(diff) {
		return SignedU128{}, codeInvariantError("signed_add: magnitude %s exceeds max_value %s", diff, m.maxValue)
	}
	return NegativeU128(diff), nil
}

// okOverflow reports (value, true) when err is nil, and (Uint128{}, false)
// when the operation failed — i.e. it turns "did this overflow" into an
// optional value, mirroring the source's ok_overflow helper used to decide
// whether an overflow/underflow delta is itself in-range and therefore
// worth recording in a DeltaHistory.
func okOverflow(v Uint128, err error) (Uint128, bool) {
	if err != nil {
		return Uint128{}, false
	}
	return v, true
}
