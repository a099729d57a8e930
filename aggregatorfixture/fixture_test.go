package aggregatorfixture

import (
	"testing"

	"github.com/kaspanet/kaspad-aggregator/aggregator"
)

func TestFixtureV1SeedAndRead(t *testing.T) {
	f := New()
	var key aggregator.StateKey
	key[0] = 1
	value := aggregator.NewUint128FromUint64(50)
	f.SeedV1(key, &value)

	got, err := f.GetAggregatorV1Value(key, aggregator.LastCommitted)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got == nil || got.Cmp(value) != 0 {
		t.Fatalf("GetAggregatorV1Value(LastCommitted) = %v want %s", got, value)
	}

	got, err = f.GetAggregatorV1Value(key, aggregator.Aggregated)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got == nil || got.Cmp(value) != 0 {
		t.Fatalf("GetAggregatorV1Value(Aggregated) = %v want %s", got, value)
	}
}

func TestFixtureV1DeletedIsNil(t *testing.T) {
	f := New()
	var key aggregator.StateKey
	key[0] = 2
	f.SeedV1(key, nil)

	got, err := f.GetAggregatorV1Value(key, aggregator.LastCommitted)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got != nil {
		t.Fatalf("deleted aggregator should read back nil, got %s", got)
	}
}

func TestFixtureDivergeAggregatedView(t *testing.T) {
	f := New()
	var key aggregator.StateKey
	key[0] = 3
	committed := aggregator.NewUint128FromUint64(100)
	f.SeedV1(key, &committed)
	f.DivergeV1Aggregated(key, aggregator.NewUint128FromUint64(250))

	lastCommitted, err := f.GetAggregatorV1Value(key, aggregator.LastCommitted)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if lastCommitted == nil || lastCommitted.Cmp(committed) != 0 {
		t.Fatalf("last_committed read should be unaffected by divergence, got %v", lastCommitted)
	}

	aggregated, err := f.GetAggregatorV1Value(key, aggregator.Aggregated)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if aggregated == nil || aggregated.Cmp(aggregator.NewUint128FromUint64(250)) != 0 {
		t.Fatalf("aggregated read should reflect the diverged value, got %v", aggregated)
	}
}

func TestFixtureV2(t *testing.T) {
	f := New()
	id := aggregator.AggregatorID(7)
	f.SeedV2(id, aggregator.NewUint128FromUint64(42))

	got, err := f.GetAggregatorV2Value(id, aggregator.LastCommitted)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got.Cmp(aggregator.NewUint128FromUint64(42)) != 0 {
		t.Fatalf("GetAggregatorV2Value = %s want 42", got)
	}
}
