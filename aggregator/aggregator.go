package aggregator

// Aggregator is the per-transaction state machine for a single bounded
// counter. It owns its identity, its upper bound, and its current state;
// all mutation goes through TryAdd, TrySub, ReadLastCommitted, and
// ReadMostRecent.
type Aggregator struct {
	id       AggregatorVersionedID
	maxValue Uint128
	state    AggregatorState
}

// MaxValue returns the aggregator's inclusive upper bound.
func (a *Aggregator) MaxValue() Uint128 {
	return a.maxValue
}

// ID returns the aggregator's versioned identifier.
func (a *Aggregator) ID() AggregatorVersionedID {
	return a.id
}

// State returns the aggregator's current state, for inspection (e.g. by
// AggregatorData.Into when building the emitted change set).
func (a *Aggregator) State() AggregatorState {
	return a.state
}

// TryAdd attempts to add input to the aggregator's value. It returns
// (true, nil) on success, (false, nil) if the sum would exceed max_value
// (for input > max_value, without reading the resolver or recording
// anything; otherwise against the current, possibly speculative, value),
// and a non-nil error only if the
// state machine itself cannot proceed (an invariant violation or a
// resolver failure).
func (a *Aggregator) TryAdd(resolver Resolver, input Uint128) (bool, error) {
	if a.maxValue.Less(input) {
		// No base value could make this succeed; nothing to record.
		return false, nil
	}
	math := NewBoundedMath(a.maxValue)
	if err := a.readLastCommitted(resolver); err != nil {
		return false, err
	}

	if value, ok := a.state.DataValue(); ok {
		newValue, err := math.UnsignedAdd(value, input)
		if err != nil {
			return false, nil
		}
		a.state = DataState(newValue)
		return true, nil
	}

	start, delta, history, _ := a.state.DeltaParts()
	curValue, err := start.GetAnyValue()
	if err != nil {
		return false, err
	}
	curValue, err = math.UnsignedAddDelta(curValue, delta)
	if err != nil {
		return false, err
	}

	if _, err := math.UnsignedAdd(curValue, input); err != nil {
		if overflowDelta, ok := okOverflow(math.UnsignedAddDelta(input, delta)); ok {
			history.RecordOverflow(overflowDelta)
		}
		a.state = deltaState(start, delta, history)
		return false, nil
	}

	newDelta, err := math.SignedAdd(delta, PositiveU128(input))
	if err != nil {
		return false, err
	}
	history.RecordSuccess(newDelta)
	a.state = deltaState(start, newDelta, history)
	return true, nil
}

// TrySub attempts to subtract input from the aggregator's value. It is the
// mirror image of TryAdd: (false, nil) on underflow, with the loosest
// failing delta recorded in history.
func (a *Aggregator) TrySub(resolver Resolver, input Uint128) (bool, error) {
	if a.maxValue.Less(input) {
		return false, nil
	}
	math := NewBoundedMath(a.maxValue)
	if err := a.readLastCommitted(resolver); err != nil {
		return false, err
	}

	if value, ok := a.state.DataValue(); ok {
		newValue, err := math.UnsignedSubtract(value, input)
		if err != nil {
			return false, nil
		}
		a.state = DataState(newValue)
		return true, nil
	}

	start, delta, history, _ := a.state.DeltaParts()
	curValue, err := start.GetAnyValue()
	if err != nil {
		return false, err
	}
	curValue, err = math.UnsignedAddDelta(curValue, delta)
	if err != nil {
		return false, err
	}

	if curValue.Less(input) {
		if underflowDelta, ok := okOverflow(math.UnsignedAddDelta(input, delta.Minus())); ok {
			history.RecordUnderflow(underflowDelta)
		}
		a.state = deltaState(start, delta, history)
		return false, nil
	}

	newDelta, err := math.SignedAdd(delta, NegativeU128(input))
	if err != nil {
		return false, err
	}
	history.RecordSuccess(newDelta)
	a.state = deltaState(start, newDelta, history)
	return true, nil
}

// ReadLastCommitted ensures the speculative start value is initialized,
// performing a cheap read through resolver if it is currently Unset. It is
// a no-op for Data states and for Delta states that already have a start
// value. Its precondition — delta == 0 and history empty when Unset — is an
// invariant of how Delta states are constructed, so a violation here
// indicates a code defect, not a data problem.
func (a *Aggregator) ReadLastCommitted(resolver Resolver) error {
	return a.readLastCommitted(resolver)
}

func (a *Aggregator) readLastCommitted(resolver Resolver) error {
	start, delta, history, isDelta := a.state.DeltaParts()
	if !isDelta || !start.IsUnset() {
		return nil
	}
	if !delta.Equal(PositiveU128(ZeroU128)) || !history.IsEmpty() {
		return codeInvariantError("delta or history not empty with Unset speculative start value")
	}

	value, err := a.readFromResolver(resolver, LastCommitted)
	if err != nil {
		return err
	}

	a.state = deltaState(LastCommittedStartValue(value), delta, history)
	return nil
}

// ReadMostRecent returns the aggregator's current value, performing an
// expensive aggregated read through resolver the first time it is needed
// for a Delta-state aggregator. The returned history-validation failure is
// a speculative invalidation: the recorded try_add/try_sub decisions do not
// hold against the real committed base.
func (a *Aggregator) ReadMostRecent(resolver Resolver) (Uint128, error) {
	if value, ok := a.state.DataValue(); ok {
		return value, nil
	}

	start, delta, history, _ := a.state.DeltaParts()
	math := NewBoundedMath(a.maxValue)

	if start.IsAggregated() {
		startValue, err := start.GetValueForRead()
		if err != nil {
			return Uint128{}, err
		}
		return math.UnsignedAddDelta(startValue, delta)
	}

	value, err := a.readFromResolver(resolver, Aggregated)
	if err != nil {
		return Uint128{}, err
	}

	if err := history.ValidateAgainstBaseValue(value, a.maxValue); err != nil {
		return Uint128{}, err
	}

	result, err := math.UnsignedAddDelta(value, delta)
	if err != nil {
		return Uint128{}, codeInvariantError("applying delta %s to validated base %s unexpectedly failed", delta, value)
	}

	a.state = deltaState(AggregatedStartValue(value), delta, history)
	return result, nil
}

// readFromResolver performs a single resolver read in the given mode,
// translating "absent" and error results into the error taxonomy shared by
// ReadLastCommitted and ReadMostRecent.
func (a *Aggregator) readFromResolver(resolver Resolver, mode ReadMode) (Uint128, error) {
	if key, ok := a.id.AsStateKey(); ok {
		value, err := resolver.GetAggregatorV1Value(key, mode)
		if err != nil {
			return Uint128{}, speculativeInvalidationError("could not find the value of the aggregator: %s", err)
		}
		if value == nil {
			return Uint128{}, deletedAggregatorError(a.id)
		}
		return *value, nil
	}
	id, _ := a.id.AsAggregatorID()
	value, err := resolver.GetAggregatorV2Value(id, mode)
	if err != nil {
		return Uint128{}, speculativeInvalidationError("could not find the value of the aggregator: %s", err)
	}
	return value, nil
}

// deltaState constructs a Delta state from its three parts.
func deltaState(start SpeculativeStartValue, delta SignedU128, history DeltaHistory) AggregatorState {
	return AggregatorState{tag: stateDelta, start: start, delta: delta, history: history}
}
