package aggregator

import (
	"bytes"
	"fmt"
)

// String renders a ChangeSet deterministically, one line per entry in the
// order Into already sorted them in. Intended for logs and the CLI driver,
// not as a wire format.
func (cs ChangeSet) String() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "new_aggregators: %d\n", len(cs.NewAggregators))
	for _, id := range cs.NewAggregators {
		fmt.Fprintf(&buf, "  + %s\n", id)
	}

	fmt.Fprintf(&buf, "destroyed_aggregators: %d\n", len(cs.DestroyedAggregators))
	for _, key := range cs.DestroyedAggregators {
		fmt.Fprintf(&buf, "  - %s\n", key)
	}

	fmt.Fprintf(&buf, "aggregators: %d\n", len(cs.Aggregators))
	for _, entry := range cs.Aggregators {
		fmt.Fprintf(&buf, "  %s max=%s %s\n", entry.ID, entry.MaxValue, entry.State.describe())
	}

	fmt.Fprintf(&buf, "snapshots: %d\n", len(cs.Snapshots))
	for _, entry := range cs.Snapshots {
		fmt.Fprintf(&buf, "  %d %s\n", entry.ID, entry.State.describe())
	}

	return buf.String()
}

// describe renders an AggregatorState's variant and payload for logging.
func (s AggregatorState) describe() string {
	if value, ok := s.DataValue(); ok {
		return fmt.Sprintf("Data(%s)", value)
	}
	start, delta, history, _ := s.DeltaParts()
	status := "unset"
	if start.IsAggregated() {
		status = "aggregated"
	} else if !start.IsUnset() {
		status = "last_committed"
	}
	return fmt.Sprintf("Delta(start=%s, delta=%s, history_empty=%v)", status, delta, history.IsEmpty())
}

// describe renders an AggregatorSnapshotState's variant and payload for
// logging.
func (s AggregatorSnapshotState) describe() string {
	if value, ok := s.DataValue(); ok {
		if b, ok := value.Bytes(); ok {
			return fmt.Sprintf("Data(%q)", b)
		}
		v, _ := value.Integer()
		return fmt.Sprintf("Data(%s)", v)
	}
	if base, delta, formula, ok := s.DeltaParts(); ok {
		kind := "identity"
		if !formula.IsIdentity() {
			kind = "concat"
		}
		return fmt.Sprintf("Delta(base=%d, delta=%s, formula=%s)", base, delta, kind)
	}
	if value, ok := s.ReferenceValue(); ok {
		if b, ok := value.Bytes(); ok {
			return fmt.Sprintf("Reference(%q)", b)
		}
		v, _ := value.Integer()
		return fmt.Sprintf("Reference(%s)", v)
	}
	return "Reference(<empty>)"
}
