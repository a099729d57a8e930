package aggregator

import "testing"

func TestSnapshotValueVariants(t *testing.T) {
	intVal := IntegerSnapshotValue(NewUint128FromUint64(9))
	if intVal.IsString() {
		t.Fatalf("integer snapshot value should not report IsString")
	}
	if _, ok := intVal.Bytes(); ok {
		t.Fatalf("integer snapshot value should not yield Bytes")
	}
	if v, ok := intVal.Integer(); !ok || v.Cmp(NewUint128FromUint64(9)) != 0 {
		t.Fatalf("Integer() = %v %s want true 9", ok, v)
	}

	strVal := StringSnapshotValue([]byte("hello"))
	if !strVal.IsString() {
		t.Fatalf("string snapshot value should report IsString")
	}
	if _, ok := strVal.Integer(); ok {
		t.Fatalf("string snapshot value should not yield Integer")
	}
	if b, ok := strVal.Bytes(); !ok || string(b) != "hello" {
		t.Fatalf("Bytes() = %v %q want true \"hello\"", ok, b)
	}
}

func TestDerivedFormulaVariants(t *testing.T) {
	if !IdentityFormula().IsIdentity() {
		t.Fatalf("IdentityFormula should report IsIdentity")
	}
	if ConcatFormula([]byte("a"), []byte("b")).IsIdentity() {
		t.Fatalf("ConcatFormula should not report IsIdentity")
	}
}

func TestAggregatorSnapshotStateVariants(t *testing.T) {
	data := DataSnapshotState(IntegerSnapshotValue(NewUint128FromUint64(1)))
	if !data.IsData() || data.IsDelta() || data.IsReference() {
		t.Fatalf("DataSnapshotState should report only IsData")
	}

	delta := DeltaSnapshotState(3, NegativeU128(NewUint128FromUint64(5)), IdentityFormula())
	if !delta.IsDelta() || delta.IsData() || delta.IsReference() {
		t.Fatalf("DeltaSnapshotState should report only IsDelta")
	}
	base, d, formula, ok := delta.DeltaParts()
	if !ok || base != 3 || !d.Equal(NegativeU128(NewUint128FromUint64(5))) || !formula.IsIdentity() {
		t.Fatalf("DeltaParts() = %v %d %s %v, unexpected", ok, base, d, formula.IsIdentity())
	}

	ref := ReferenceSnapshotState(IntegerSnapshotValue(NewUint128FromUint64(2)))
	if !ref.IsReference() || ref.IsData() || ref.IsDelta() {
		t.Fatalf("ReferenceSnapshotState should report only IsReference")
	}
}

func TestAggregatorSnapshotInto(t *testing.T) {
	state := DataSnapshotState(IntegerSnapshotValue(NewUint128FromUint64(4)))
	snap := AggregatorSnapshot{id: 11, state: state}
	if snap.ID() != 11 {
		t.Fatalf("ID() = %d want 11", snap.ID())
	}
	if !snap.Into().IsData() {
		t.Fatalf("Into() should return the Data-variant state")
	}
}
