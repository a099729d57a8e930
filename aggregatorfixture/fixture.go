// Package aggregatorfixture provides a deterministic, in-memory
// aggregator.Resolver for tests and the CLI demo driver. It models the two
// read modes as two independent maps: committed values as they would sit in
// the state tree, and a pending aggregated view that has already folded in
// deltas from transactions that ran (and committed) earlier than the one
// under observation.
package aggregatorfixture

import (
	"sync"

	"github.com/kaspanet/kaspad-aggregator/aggregator"
)

// Fixture is a Resolver backed by plain maps, guarded by a mutex so it can
// be shared across the concurrent goroutines the CLI driver spawns, each
// owning its own independent aggregator.AggregatorData.
type Fixture struct {
	mtx sync.RWMutex

	v1Committed  map[aggregator.StateKey]*aggregator.Uint128
	v1Aggregated map[aggregator.StateKey]aggregator.Uint128

	v2Committed  map[aggregator.AggregatorID]aggregator.Uint128
	v2Aggregated map[aggregator.AggregatorID]aggregator.Uint128
}

// New returns an empty fixture.
func New() *Fixture {
	return &Fixture{
		v1Committed:  make(map[aggregator.StateKey]*aggregator.Uint128),
		v1Aggregated: make(map[aggregator.StateKey]aggregator.Uint128),
		v2Committed:  make(map[aggregator.AggregatorID]aggregator.Uint128),
		v2Aggregated: make(map[aggregator.AggregatorID]aggregator.Uint128),
	}
}

// SeedV1 seeds a V1 aggregator's committed and aggregated value to the same
// starting point. A nil value models a deleted/absent aggregator.
func (f *Fixture) SeedV1(key aggregator.StateKey, value *aggregator.Uint128) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	f.v1Committed[key] = value
	if value != nil {
		f.v1Aggregated[key] = *value
	} else {
		delete(f.v1Aggregated, key)
	}
}

// SeedV2 seeds a V2 aggregator's committed and aggregated value to the same
// starting point.
func (f *Fixture) SeedV2(id aggregator.AggregatorID, value aggregator.Uint128) {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	f.v2Committed[id] = value
	f.v2Aggregated[id] = value
}

// DivergeV1Aggregated sets the aggregated (but not the last-committed) view
// of a V1 aggregator to a different value than what was seeded, so tests can
// exercise DeltaHistory.ValidateAgainstBaseValue against a base that moved
// between the cheap and expensive reads.
func (f *Fixture) DivergeV1Aggregated(key aggregator.StateKey, value aggregator.Uint128) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.v1Aggregated[key] = value
}

// DivergeV2Aggregated is the V2 counterpart of DivergeV1Aggregated.
func (f *Fixture) DivergeV2Aggregated(id aggregator.AggregatorID, value aggregator.Uint128) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.v2Aggregated[id] = value
}

// GetAggregatorV1Value implements aggregator.Resolver.
func (f *Fixture) GetAggregatorV1Value(key aggregator.StateKey, mode aggregator.ReadMode) (*aggregator.Uint128, error) {
	f.mtx.RLock()
	defer f.mtx.RUnlock()

	if mode == aggregator.LastCommitted {
		value, ok := f.v1Committed[key]
		if !ok {
			return nil, nil
		}
		return value, nil
	}

	value, ok := f.v1Aggregated[key]
	if !ok {
		return nil, nil
	}
	return &value, nil
}

// GetAggregatorV2Value implements aggregator.Resolver.
func (f *Fixture) GetAggregatorV2Value(id aggregator.AggregatorID, mode aggregator.ReadMode) (aggregator.Uint128, error) {
	f.mtx.RLock()
	defer f.mtx.RUnlock()

	if mode == aggregator.LastCommitted {
		return f.v2Committed[id], nil
	}
	return f.v2Aggregated[id], nil
}
