package aggregator

// SnapshotValue is the value carried by a Data-variant snapshot: either an
// integer or a raw byte string. String-typed aggregators are modeled only
// at the data level here; their evaluation is out of scope.
type SnapshotValue struct {
	isString bool
	integer  Uint128
	str      []byte
}

// IntegerSnapshotValue wraps an integer snapshot value.
func IntegerSnapshotValue(v Uint128) SnapshotValue {
	return SnapshotValue{integer: v}
}

// StringSnapshotValue wraps a raw byte-string snapshot value.
func StringSnapshotValue(b []byte) SnapshotValue {
	return SnapshotValue{isString: true, str: append([]byte(nil), b...)}
}

// IsString reports whether this is a string-typed snapshot value.
func (v SnapshotValue) IsString() bool {
	return v.isString
}

// Integer returns the integer value and true, if this is an integer
// snapshot value.
func (v SnapshotValue) Integer() (Uint128, bool) {
	if v.isString {
		return Uint128{}, false
	}
	return v.integer, true
}

// Bytes returns the raw bytes and true, if this is a string snapshot value.
func (v SnapshotValue) Bytes() ([]byte, bool) {
	if !v.isString {
		return nil, false
	}
	return v.str, true
}

// formulaTag distinguishes DerivedFormula variants.
type formulaTag uint8

const (
	formulaIdentity formulaTag = iota
	formulaConcat
)

// DerivedFormula describes how a Delta-variant snapshot's value is derived
// from its base aggregator's eventual value.
type DerivedFormula struct {
	tag    formulaTag
	prefix []byte
	suffix []byte
}

// IdentityFormula is the trivial formula: the snapshot equals the base
// aggregator's value plus the recorded delta.
func IdentityFormula() DerivedFormula {
	return DerivedFormula{tag: formulaIdentity}
}

// ConcatFormula wraps prefix/suffix byte strings around a derived value.
// Evaluating this formula against a resolved base is an open question left
// unimplemented — see AggregatorData.ReadSnapshot.
func ConcatFormula(prefix, suffix []byte) DerivedFormula {
	return DerivedFormula{tag: formulaConcat, prefix: prefix, suffix: suffix}
}

// IsIdentity reports whether this is the identity formula.
func (f DerivedFormula) IsIdentity() bool {
	return f.tag == formulaIdentity
}

// snapshotStateTag distinguishes AggregatorSnapshotState variants.
type snapshotStateTag uint8

const (
	snapshotData snapshotStateTag = iota
	snapshotDelta
	snapshotReference
)

// AggregatorSnapshotState is the sum type Data(value) |
// Delta{base_aggregator, delta, formula} | Reference{speculative_value}.
// Snapshots are immutable once created.
type AggregatorSnapshotState struct {
	tag            snapshotStateTag
	data           SnapshotValue
	baseAggregator AggregatorID
	delta          SignedU128
	formula        DerivedFormula
	referenceValue SnapshotValue
}

// DataSnapshotState constructs a Data-variant snapshot with an explicit
// value, fixed at creation time.
func DataSnapshotState(value SnapshotValue) AggregatorSnapshotState {
	return AggregatorSnapshotState{tag: snapshotData, data: value}
}

// DeltaSnapshotState constructs a Delta-variant snapshot over a base
// aggregator's delta, captured via the identity formula unless stated
// otherwise by the caller.
func DeltaSnapshotState(base AggregatorID, delta SignedU128, formula DerivedFormula) AggregatorSnapshotState {
	return AggregatorSnapshotState{tag: snapshotDelta, baseAggregator: base, delta: delta, formula: formula}
}

// ReferenceSnapshotState constructs a Reference-variant snapshot, seeded by
// an aggregated (expensive, always-safe-to-read) read performed when the
// snapshot id was first accessed in this transaction.
func ReferenceSnapshotState(value SnapshotValue) AggregatorSnapshotState {
	return AggregatorSnapshotState{tag: snapshotReference, referenceValue: value}
}

// IsData reports whether this is a Data-variant snapshot.
func (s AggregatorSnapshotState) IsData() bool { return s.tag == snapshotData }

// IsDelta reports whether this is a Delta-variant snapshot.
func (s AggregatorSnapshotState) IsDelta() bool { return s.tag == snapshotDelta }

// IsReference reports whether this is a Reference-variant snapshot.
func (s AggregatorSnapshotState) IsReference() bool { return s.tag == snapshotReference }

// DataValue returns the snapshot's value and true, if it is a Data-variant.
func (s AggregatorSnapshotState) DataValue() (SnapshotValue, bool) {
	if s.tag != snapshotData {
		return SnapshotValue{}, false
	}
	return s.data, true
}

// DeltaParts returns the base aggregator, delta, and formula, and true, if
// this is a Delta-variant snapshot.
func (s AggregatorSnapshotState) DeltaParts() (AggregatorID, SignedU128, DerivedFormula, bool) {
	if s.tag != snapshotDelta {
		return 0, SignedU128{}, DerivedFormula{}, false
	}
	return s.baseAggregator, s.delta, s.formula, true
}

// ReferenceValue returns the seeded value and true, if this is a
// Reference-variant snapshot.
func (s AggregatorSnapshotState) ReferenceValue() (SnapshotValue, bool) {
	if s.tag != snapshotReference {
		return SnapshotValue{}, false
	}
	return s.referenceValue, true
}

// AggregatorSnapshot is an immutable, per-transaction derived value keyed by
// its own freshly generated AggregatorID.
type AggregatorSnapshot struct {
	id    AggregatorID
	state AggregatorSnapshotState
}

// ID returns the snapshot's identifier.
func (s AggregatorSnapshot) ID() AggregatorID {
	return s.id
}

// Into unpacks the snapshot into its state, consuming it conceptually (as
// the source's into(self) does) even though Go does not enforce move
// semantics.
func (s AggregatorSnapshot) Into() AggregatorSnapshotState {
	return s.state
}
