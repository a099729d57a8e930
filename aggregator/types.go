package aggregator

import (
	"encoding/hex"
	"fmt"
)

// AggregatorID identifies a V2 (table-based) aggregator or a snapshot,
// minted by AggregatorData.GenerateID.
type AggregatorID uint64

// StateKey is the opaque, fixed-encoding identifier of a V1 (state-item
// based) aggregator. Its contents are meaningless to this package; it is
// only ever compared, sorted, and handed to a Resolver.
type StateKey [32]byte

// String renders the full key as lowercase hex.
func (k StateKey) String() string {
	return hex.EncodeToString(k[:])
}

// Less orders StateKeys lexicographically, used to keep emitted change sets
// deterministic.
func (k StateKey) Less(o StateKey) bool {
	for i := range k {
		if k[i] != o[i] {
			return k[i] < o[i]
		}
	}
	return false
}

// versionTag distinguishes the two AggregatorVersionedID variants.
type versionTag uint8

const (
	versionV1 versionTag = iota
	versionV2
)

// AggregatorVersionedID is the sum type V1(StateKey) | V2(AggregatorID).
type AggregatorVersionedID struct {
	tag      versionTag
	stateKey StateKey
	id       AggregatorID
}

// V1ID constructs a V1 identifier addressed by a StateKey.
func V1ID(key StateKey) AggregatorVersionedID {
	return AggregatorVersionedID{tag: versionV1, stateKey: key}
}

// V2ID constructs a V2 identifier addressed by an AggregatorID.
func V2ID(id AggregatorID) AggregatorVersionedID {
	return AggregatorVersionedID{tag: versionV2, id: id}
}

// IsV1 reports whether this identifier is the V1 (StateKey) variant.
func (v AggregatorVersionedID) IsV1() bool {
	return v.tag == versionV1
}

// IsV2 reports whether this identifier is the V2 (AggregatorID) variant.
func (v AggregatorVersionedID) IsV2() bool {
	return v.tag == versionV2
}

// AsStateKey returns the underlying StateKey and true if this is a V1
// identifier, else the zero value and false.
func (v AggregatorVersionedID) AsStateKey() (StateKey, bool) {
	if v.tag != versionV1 {
		return StateKey{}, false
	}
	return v.stateKey, true
}

// AsAggregatorID returns the underlying AggregatorID and true if this is a V2
// identifier, else zero and false.
func (v AggregatorVersionedID) AsAggregatorID() (AggregatorID, bool) {
	if v.tag != versionV2 {
		return 0, false
	}
	return v.id, true
}

// Less orders AggregatorVersionedIDs deterministically: V1 before V2, then
// by underlying key/id, so emitted change sets can be sorted reproducibly.
func (v AggregatorVersionedID) Less(o AggregatorVersionedID) bool {
	if v.tag != o.tag {
		return v.tag < o.tag
	}
	if v.tag == versionV1 {
		return v.stateKey.Less(o.stateKey)
	}
	return v.id < o.id
}

// String renders the identifier for logging/debugging.
func (v AggregatorVersionedID) String() string {
	if v.tag == versionV1 {
		return fmt.Sprintf("V1(%s)", v.stateKey)
	}
	return fmt.Sprintf("V2(%d)", v.id)
}
