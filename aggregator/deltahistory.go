package aggregator

// DeltaHistory accumulates the minimal sufficient statistic over a
// transaction's recorded try_add/try_sub outcomes: the tightest achieved
// deltas and the loosest deltas observed to fail. Any base value that
// satisfies ValidateAgainstBaseValue reproduces the same sequence of
// true/false outcomes the transaction actually observed.
type DeltaHistory struct {
	// maxAchievedPositiveDelta is the largest delta a successful operation
	// produced, when that delta was non-negative.
	maxAchievedPositiveDelta Uint128
	// minAchievedNegativeDelta is the magnitude of the most-negative delta
	// a successful operation produced.
	minAchievedNegativeDelta Uint128

	// minOverflowPositiveDelta is the smallest positive delta-post-operation
	// observed to overflow against the speculative base, if any.
	minOverflowPositiveDelta    Uint128
	hasMinOverflowPositiveDelta bool

	// maxUnderflowNegativeDelta is the smallest negative delta magnitude
	// observed to underflow against the speculative base, if any (see
	// RecordUnderflow for why the minimum is kept despite the name).
	maxUnderflowNegativeDelta    Uint128
	hasMaxUnderflowNegativeDelta bool
}

// NewDeltaHistory returns an empty history, as required for a freshly
// Unset aggregator.
func NewDeltaHistory() DeltaHistory {
	return DeltaHistory{}
}

// IsEmpty reports whether no success, overflow, or underflow has been
// recorded yet.
func (h DeltaHistory) IsEmpty() bool {
	return h.maxAchievedPositiveDelta.IsZero() &&
		h.minAchievedNegativeDelta.IsZero() &&
		!h.hasMinOverflowPositiveDelta &&
		!h.hasMaxUnderflowNegativeDelta
}

// RecordSuccess updates the achieved extrema after a successful try_add or
// try_sub produced newDelta as the aggregator's new accumulated delta.
func (h *DeltaHistory) RecordSuccess(newDelta SignedU128) {
	if newDelta.IsPositive() {
		if h.maxAchievedPositiveDelta.Less(newDelta.Magnitude()) {
			h.maxAchievedPositiveDelta = newDelta.Magnitude()
		}
		return
	}
	if h.minAchievedNegativeDelta.Less(newDelta.Magnitude()) {
		h.minAchievedNegativeDelta = newDelta.Magnitude()
	}
}

// RecordOverflow records that overflowDelta — a positive delta-post-operation
// — was observed to overflow against the speculative base. It keeps the
// smallest such delta seen.
func (h *DeltaHistory) RecordOverflow(overflowDelta Uint128) {
	if !h.hasMinOverflowPositiveDelta || overflowDelta.Less(h.minOverflowPositiveDelta) {
		h.minOverflowPositiveDelta = overflowDelta
		h.hasMinOverflowPositiveDelta = true
	}
}

// RecordUnderflow records that underflowDelta — a negative delta magnitude —
// was observed to underflow against the speculative base.
//
// The validity constraint this bound must express is "base < underflowDelta"
// for every recorded underflow; the tightest (and therefore sufficient)
// single bound across all of them is the smallest underflowDelta observed,
// since base < min(u_i) implies base < u_i for every i. The field keeps the
// minimum accordingly — despite its name, which mirrors the source's
// max_underflow_negative_delta naming; see the worked scenarios this is
// validated against.
func (h *DeltaHistory) RecordUnderflow(underflowDelta Uint128) {
	if !h.hasMaxUnderflowNegativeDelta || underflowDelta.Less(h.maxUnderflowNegativeDelta) {
		h.maxUnderflowNegativeDelta = underflowDelta
		h.hasMaxUnderflowNegativeDelta = true
	}
}

// ValidateAgainstBaseValue reports whether base reproduces the same
// true/false outcomes this history recorded, for an aggregator bounded by
// maxValue. A nil return means base is valid.
func (h DeltaHistory) ValidateAgainstBaseValue(base, maxValue Uint128) error {
	m := NewBoundedMath(maxValue)
	if _, err := m.UnsignedAdd(base, h.maxAchievedPositiveDelta); err != nil {
		return speculativeInvalidationError(
			"base value %s is inconsistent with history: base + max_achieved_positive_delta %s exceeds max_value %s",
			base, h.maxAchievedPositiveDelta, maxValue)
	}
	if base.Less(h.minAchievedNegativeDelta) {
		return speculativeInvalidationError(
			"base value %s is inconsistent with history: base is less than min_achieved_negative_delta %s",
			base, h.minAchievedNegativeDelta)
	}
	if h.hasMinOverflowPositiveDelta {
		if _, err := m.UnsignedAdd(base, h.minOverflowPositiveDelta); err == nil {
			return speculativeInvalidationError(
				"base value %s is inconsistent with history: base + min_overflow_positive_delta %s no longer overflows max_value %s",
				base, h.minOverflowPositiveDelta, maxValue)
		}
	}
	if h.hasMaxUnderflowNegativeDelta {
		if !base.Less(h.maxUnderflowNegativeDelta) {
			return speculativeInvalidationError(
				"base value %s is inconsistent with history: base is not less than max_underflow_negative_delta %s",
				base, h.maxUnderflowNegativeDelta)
		}
	}
	return nil
}
