package aggregator

import "sort"

// AggregatorData is the per-transaction registry of every aggregator and
// snapshot instance touched by the transaction executing against it. It is
// single-threaded, transaction-scoped, and is the sole owner of all
// aggregator/snapshot state for that transaction; it is drained wholesale
// at commit via Into, or simply discarded on abort.
type AggregatorData struct {
	newAggregators       map[AggregatorVersionedID]struct{}
	destroyedAggregators map[StateKey]struct{}
	aggregators          map[AggregatorVersionedID]*Aggregator
	snapshots            map[AggregatorID]*AggregatorSnapshot
	idCounter            uint64
}

// NewAggregatorData constructs an empty registry seeded with idCounter, the
// externally supplied id-generation seed for this transaction.
func NewAggregatorData(idCounter uint64) *AggregatorData {
	return &AggregatorData{
		newAggregators:       make(map[AggregatorVersionedID]struct{}),
		destroyedAggregators: make(map[StateKey]struct{}),
		aggregators:          make(map[AggregatorVersionedID]*Aggregator),
		snapshots:            make(map[AggregatorID]*AggregatorSnapshot),
		idCounter:            idCounter,
	}
}

// GetAggregator returns a mutable handle to the aggregator identified by id,
// creating a fresh Delta{Unset, 0, empty} entry if this transaction has not
// touched it yet. It never consults the resolver.
func (d *AggregatorData) GetAggregator(id AggregatorVersionedID, maxValue Uint128) *Aggregator {
	if a, ok := d.aggregators[id]; ok {
		return a
	}
	a := &Aggregator{id: id, maxValue: maxValue, state: FreshDeltaState()}
	d.aggregators[id] = a
	return a
}

// NumAggregators returns how many aggregators this transaction has touched.
func (d *AggregatorData) NumAggregators() int {
	return len(d.aggregators)
}

// CreateNewAggregator creates a brand-new aggregator with a known,
// zero-initialized value — new aggregators always start in the Data state,
// since their value is known by construction.
func (d *AggregatorData) CreateNewAggregator(id AggregatorVersionedID, maxValue Uint128) {
	d.aggregators[id] = &Aggregator{id: id, maxValue: maxValue, state: DataState(ZeroU128)}
	d.newAggregators[id] = struct{}{}
}

// RemoveAggregatorV1 removes a V1 aggregator. If it was created within this
// transaction it is simply dropped; otherwise its underlying StateKey is
// recorded as destroyed so the change-set consumer deletes it on commit.
// Only V1 identifiers are removable; calling this with a V2 id is an
// invariant violation (V2 aggregators are table rows with no deletion path
// in this model).
func (d *AggregatorData) RemoveAggregatorV1(id AggregatorVersionedID) error {
	key, ok := id.AsStateKey()
	if !ok {
		return codeInvariantError("remove_aggregator_v1 called with a non-V1 identifier %s", id)
	}

	delete(d.aggregators, id)

	if _, isNew := d.newAggregators[id]; isNew {
		delete(d.newAggregators, id)
		return nil
	}
	d.destroyedAggregators[key] = struct{}{}
	return nil
}

// Snapshot creates an immutable snapshot of the V2 aggregator identified by
// id, keyed by a freshly generated AggregatorID, and returns that new id.
func (d *AggregatorData) Snapshot(id AggregatorID) (AggregatorID, error) {
	versionedID := V2ID(id)
	a, ok := d.aggregators[versionedID]
	if !ok {
		return 0, codeInvariantError("snapshot: aggregator id %d not found", id)
	}

	var state AggregatorSnapshotState
	if value, ok := a.state.DataValue(); ok {
		state = DataSnapshotState(IntegerSnapshotValue(value))
	} else {
		_, delta, _, _ := a.state.DeltaParts()
		state = DeltaSnapshotState(id, delta, IdentityFormula())
	}

	snapshotID := d.GenerateID()
	d.snapshots[snapshotID] = &AggregatorSnapshot{id: snapshotID, state: state}
	return snapshotID, nil
}

// ReadSnapshot is not implemented: the contract for evaluating a snapshot
// against its (possibly Concat-derived) formula once the base aggregator's
// value is resolved is an open question carried over from the source this
// module is modeled on, not a guessed-at behavior.
func (d *AggregatorData) ReadSnapshot(id AggregatorVersionedID) (Uint128, error) {
	return Uint128{}, codeInvariantError("read_snapshot is not implemented")
}

// GenerateID increments the id counter and returns the new value. Two
// transactions seeded with the same counter and given the same operation
// sequence mint byte-identical ids.
func (d *AggregatorData) GenerateID() AggregatorID {
	d.idCounter++
	return AggregatorID(d.idCounter)
}

// ChangeSet is the deterministic, sorted output drained from an
// AggregatorData at commit.
type ChangeSet struct {
	NewAggregators       []AggregatorVersionedID
	DestroyedAggregators []StateKey
	Aggregators          []AggregatorEntry
	Snapshots            []SnapshotEntry
}

// AggregatorEntry pairs a versioned id with the max_value and final state
// the change-set consumer should commit for it.
type AggregatorEntry struct {
	ID       AggregatorVersionedID
	MaxValue Uint128
	State    AggregatorState
}

// SnapshotEntry pairs a snapshot id with its final, immutable state.
type SnapshotEntry struct {
	ID    AggregatorID
	State AggregatorSnapshotState
}

// Into drains d into a deterministic ChangeSet, sorted by id/state key so
// that two identical transactions produce byte-identical output. The
// receiver should not be used again afterwards.
func (d *AggregatorData) Into() ChangeSet {
	cs := ChangeSet{
		NewAggregators:       make([]AggregatorVersionedID, 0, len(d.newAggregators)),
		DestroyedAggregators: make([]StateKey, 0, len(d.destroyedAggregators)),
		Aggregators:          make([]AggregatorEntry, 0, len(d.aggregators)),
		Snapshots:            make([]SnapshotEntry, 0, len(d.snapshots)),
	}

	for id := range d.newAggregators {
		cs.NewAggregators = append(cs.NewAggregators, id)
	}
	sort.Slice(cs.NewAggregators, func(i, j int) bool { return cs.NewAggregators[i].Less(cs.NewAggregators[j]) })

	for key := range d.destroyedAggregators {
		cs.DestroyedAggregators = append(cs.DestroyedAggregators, key)
	}
	sort.Slice(cs.DestroyedAggregators, func(i, j int) bool { return cs.DestroyedAggregators[i].Less(cs.DestroyedAggregators[j]) })

	for id, a := range d.aggregators {
		cs.Aggregators = append(cs.Aggregators, AggregatorEntry{ID: id, MaxValue: a.maxValue, State: a.state})
	}
	sort.Slice(cs.Aggregators, func(i, j int) bool { return cs.Aggregators[i].ID.Less(cs.Aggregators[j].ID) })

	for id, s := range d.snapshots {
		cs.Snapshots = append(cs.Snapshots, SnapshotEntry{ID: id, State: s.state})
	}
	sort.Slice(cs.Snapshots, func(i, j int) bool { return cs.Snapshots[i].ID < cs.Snapshots[j].ID })

	*d = AggregatorData{}
	return cs
}
