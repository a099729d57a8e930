package aggregator

// startValueTag distinguishes the SpeculativeStartValue variants.
type startValueTag uint8

const (
	startUnset startValueTag = iota
	startLastCommitted
	startAggregated
)

// SpeculativeStartValue describes how a Delta-state aggregator's start
// value was obtained.
//
//   - Unset: no read has occurred yet; delta must be zero and history empty.
//   - LastCommittedValue: a cheap read. May be used only as the arithmetic
//     pivot inside try_add/try_sub; it is not tracked as a read-conflict
//     dependency, so it must never be handed back to user code directly.
//   - AggregatedValue: an expensive read that folded in all prior deltas;
//     safe to return to user code.
type SpeculativeStartValue struct {
	tag   startValueTag
	value Uint128
}

// UnsetStartValue is the initial state of a freshly materialized Delta
// aggregator.
func UnsetStartValue() SpeculativeStartValue {
	return SpeculativeStartValue{tag: startUnset}
}

// LastCommittedStartValue wraps a cheap read.
func LastCommittedStartValue(v Uint128) SpeculativeStartValue {
	return SpeculativeStartValue{tag: startLastCommitted, value: v}
}

// AggregatedStartValue wraps an expensive, user-visible read.
func AggregatedStartValue(v Uint128) SpeculativeStartValue {
	return SpeculativeStartValue{tag: startAggregated, value: v}
}

// IsUnset reports whether no read has occurred yet.
func (s SpeculativeStartValue) IsUnset() bool {
	return s.tag == startUnset
}

// IsAggregated reports whether this start value came from an expensive,
// user-visible read.
func (s SpeculativeStartValue) IsAggregated() bool {
	return s.tag == startAggregated
}

// GetAnyValue returns the start value regardless of how it was obtained.
// It fails with an invariant violation if called while Unset — the only
// legitimate internal use is as the arithmetic pivot inside try_add/try_sub.
func (s SpeculativeStartValue) GetAnyValue() (Uint128, error) {
	if s.tag == startUnset {
		return Uint128{}, codeInvariantError("get_any_value called on Unset speculative start value")
	}
	return s.value, nil
}

// GetValueForRead returns the start value only if it is safe to expose to
// user code, i.e. only if it came from an aggregated (expensive) read.
func (s SpeculativeStartValue) GetValueForRead() (Uint128, error) {
	switch s.tag {
	case startUnset:
		return Uint128{}, codeInvariantError("get_value_for_read called on Unset speculative start value")
	case startLastCommitted:
		return Uint128{}, codeInvariantError("get_value_for_read called on LastCommittedValue speculative start value")
	default:
		return s.value, nil
	}
}

// stateTag distinguishes the AggregatorState variants.
type stateTag uint8

const (
	stateData stateTag = iota
	stateDelta
)

// AggregatorState is the sum type Data{value} | Delta{start, delta, history}.
type AggregatorState struct {
	tag   stateTag
	value Uint128 // valid when tag == stateData

	start   SpeculativeStartValue // valid when tag == stateDelta
	delta   SignedU128
	history DeltaHistory
}

// DataState constructs a Data{value} state: the aggregator's exact value is
// known.
func DataState(value Uint128) AggregatorState {
	return AggregatorState{tag: stateData, value: value}
}

// FreshDeltaState constructs the initial Delta state for an aggregator
// retrieved for an existing on-chain aggregator: Unset start, zero delta,
// empty history.
func FreshDeltaState() AggregatorState {
	return AggregatorState{
		tag:   stateDelta,
		start: UnsetStartValue(),
		delta: PositiveU128(ZeroU128),
	}
}

// IsData reports whether this is a Data state.
func (s AggregatorState) IsData() bool {
	return s.tag == stateData
}

// IsDelta reports whether this is a Delta state.
func (s AggregatorState) IsDelta() bool {
	return s.tag == stateDelta
}

// DataValue returns the known value and true if this is a Data state.
func (s AggregatorState) DataValue() (Uint128, bool) {
	if s.tag != stateData {
		return Uint128{}, false
	}
	return s.value, true
}

// DeltaParts returns the start value, accumulated delta, and history, and
// true, if this is a Delta state.
func (s AggregatorState) DeltaParts() (SpeculativeStartValue, SignedU128, DeltaHistory, bool) {
	if s.tag != stateDelta {
		return SpeculativeStartValue{}, SignedU128{}, DeltaHistory{}, false
	}
	return s.start, s.delta, s.history, true
}
