package aggregator

import "testing"

func TestBoundedMathUnsignedAdd(t *testing.T) {
	m := NewBoundedMath(NewUint128FromUint64(100))

	tests := []struct {
		name    string
		a, b    Uint128
		wantErr bool
		want    Uint128
	}{
		{"within_bound", NewUint128FromUint64(40), NewUint128FromUint64(40), false, NewUint128FromUint64(80)},
		{"exactly_at_bound", NewUint128FromUint64(60), NewUint128FromUint64(40), false, NewUint128FromUint64(100)},
		{"exceeds_bound", NewUint128FromUint64(60), NewUint128FromUint64(41), true, Uint128{}},
	}
	for _, test := range tests {
		got, err := m.UnsignedAdd(test.a, test.b)
		if (err != nil) != test.wantErr {
			t.Errorf("%s: err = %v wantErr %v", test.name, err, test.wantErr)
			continue
		}
		if err == nil && got.Cmp(test.want) != 0 {
			t.Errorf("%s: got %s want %s", test.name, got, test.want)
		}
	}
}

func TestBoundedMathUnsignedSubtract(t *testing.T) {
	m := NewBoundedMath(NewUint128FromUint64(100))
	if _, err := m.UnsignedSubtract(NewUint128FromUint64(3), NewUint128FromUint64(5)); err == nil {
		t.Errorf("expected underflow error")
	}
	got, err := m.UnsignedSubtract(NewUint128FromUint64(5), NewUint128FromUint64(3))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got.Cmp(NewUint128FromUint64(2)) != 0 {
		t.Errorf("got %s want 2", got)
	}
}

func TestBoundedMathSignedAdd(t *testing.T) {
	m := NewBoundedMath(NewUint128FromUint64(100))

	tests := []struct {
		name    string
		d1, d2  SignedU128
		wantErr bool
		want    SignedU128
	}{
		{"pos_plus_pos", PositiveU128(NewUint128FromUint64(30)), PositiveU128(NewUint128FromUint64(20)), false, PositiveU128(NewUint128FromUint64(50))},
		{"neg_plus_neg", NegativeU128(NewUint128FromUint64(30)), NegativeU128(NewUint128FromUint64(20)), false, NegativeU128(NewUint128FromUint64(50))},
		{"pos_plus_neg_stays_positive", PositiveU128(NewUint128FromUint64(30)), NegativeU128(NewUint128FromUint64(20)), false, PositiveU128(NewUint128FromUint64(10))},
		{"pos_plus_neg_flips_negative", PositiveU128(NewUint128FromUint64(20)), NegativeU128(NewUint128FromUint64(30)), false, NegativeU128(NewUint128FromUint64(10))},
		{"neg_plus_pos_cancels_to_zero", NegativeU128(NewUint128FromUint64(30)), PositiveU128(NewUint128FromUint64(30)), false, PositiveU128(ZeroU128)},
		{"magnitude_exceeds_max", NegativeU128(NewUint128FromUint64(60)), NegativeU128(NewUint128FromUint64(60)), true, SignedU128{}},
	}
	for _, test := range tests {
		got, err := m.SignedAdd(test.d1, test.d2)
		if (err != nil) != test.wantErr {
			t.Errorf("%s: err = %v wantErr %v", test.name, err, test.wantErr)
			continue
		}
		if err == nil && !got.Equal(test.want) {
			t.Errorf("%s: got %s want %s", test.name, got, test.want)
		}
	}
}

func TestBoundedMathUnsignedAddDelta(t *testing.T) {
	m := NewBoundedMath(NewUint128FromUint64(100))

	got, err := m.UnsignedAddDelta(NewUint128FromUint64(50), NegativeU128(NewUint128FromUint64(10)))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if got.Cmp(NewUint128FromUint64(40)) != 0 {
		t.Errorf("got %s want 40", got)
	}

	if _, err := m.UnsignedAddDelta(NewUint128FromUint64(50), NegativeU128(NewUint128FromUint64(60))); err == nil {
		t.Errorf("expected underflow error")
	}
	if _, err := m.UnsignedAddDelta(NewUint128FromUint64(50), PositiveU128(NewUint128FromUint64(60))); err == nil {
		t.Errorf("expected overflow error")
	}
}
