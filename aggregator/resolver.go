package aggregator

// ReadMode selects which view of an aggregator's value a Resolver read
// returns: the cheap last-committed cell, or the expensive aggregated
// (all-deltas-applied) value.
type ReadMode int

const (
	// LastCommitted is a cheap, single-cell read. The result must never be
	// exposed directly to user code; it may only feed the arithmetic pivot
	// inside try_add/try_sub, whose semantic guarantee is carried entirely
	// by DeltaHistory.
	LastCommitted ReadMode = iota
	// Aggregated applies all prior deltas and is safe to return to user
	// code.
	Aggregated
)

// Resolver is the read-only capability the aggregator core consults for the
// values of aggregators it does not yet know exactly. It is the only
// shared-state dependency of this package; the multi-version store behind
// it, the transaction scheduler, and conflict detection are all external
// collaborators out of scope here.
type Resolver interface {
	// GetAggregatorV1Value reads a V1 (state-item) aggregator. A nil value
	// with a nil error means the aggregator has been deleted.
	GetAggregatorV1Value(key StateKey, mode ReadMode) (*Uint128, error)
	// GetAggregatorV2Value reads a V2 (table) aggregator. V2 aggregators
	// cannot be deleted out from under a resolver read the way V1 ones can.
	GetAggregatorV2Value(id AggregatorID, mode ReadMode) (Uint128, error)
}
