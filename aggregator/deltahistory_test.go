package aggregator

import "testing"

func TestDeltaHistoryIsEmpty(t *testing.T) {
	h := NewDeltaHistory()
	if !h.IsEmpty() {
		t.Fatalf("a fresh history should be empty")
	}
	h.RecordSuccess(PositiveU128(NewUint128FromUint64(5)))
	if h.IsEmpty() {
		t.Fatalf("history should no longer be empty after RecordSuccess")
	}
}

func TestDeltaHistoryRecordOverflowKeepsMinimum(t *testing.T) {
	h := NewDeltaHistory()
	h.RecordOverflow(NewUint128FromUint64(500))
	h.RecordOverflow(NewUint128FromUint64(300))
	h.RecordOverflow(NewUint128FromUint64(400))
	if h.minOverflowPositiveDelta.Cmp(NewUint128FromUint64(300)) != 0 {
		t.Fatalf("min_overflow = %s want 300", h.minOverflowPositiveDelta)
	}
}

func TestDeltaHistoryRecordUnderflowKeepsMinimum(t *testing.T) {
	h := NewDeltaHistory()
	h.RecordUnderflow(NewUint128FromUint64(250))
	h.RecordUnderflow(NewUint128FromUint64(150))
	h.RecordUnderflow(NewUint128FromUint64(200))
	if h.maxUnderflowNegativeDelta.Cmp(NewUint128FromUint64(150)) != 0 {
		t.Fatalf("max_underflow = %s want 150 (tightest/minimum observed underflow delta)", h.maxUnderflowNegativeDelta)
	}
}

func TestDeltaHistoryValidateAgainstBaseValue(t *testing.T) {
	maxValue := NewUint128FromUint64(600)

	tests := []struct {
		name    string
		build   func() DeltaHistory
		base    uint64
		wantErr bool
	}{
		{
			name: "empty_history_accepts_anything_in_range",
			build: func() DeltaHistory {
				return NewDeltaHistory()
			},
			base:    300,
			wantErr: false,
		},
		{
			name: "achieved_positive_respected",
			build: func() DeltaHistory {
				h := NewDeltaHistory()
				h.RecordSuccess(PositiveU128(NewUint128FromUint64(400)))
				return h
			},
			base:    201, // 201+400 > 600
			wantErr: true,
		},
		{
			name: "achieved_negative_respected",
			build: func() DeltaHistory {
				h := NewDeltaHistory()
				h.RecordSuccess(NegativeU128(NewUint128FromUint64(70)))
				return h
			},
			base:    69, // base < 70
			wantErr: true,
		},
		{
			name: "overflow_bound_must_still_overflow",
			build: func() DeltaHistory {
				h := NewDeltaHistory()
				h.RecordOverflow(NewUint128FromUint64(501))
				return h
			},
			base:    100, // 100+501=601 > 600, correctly still overflows
			wantErr: false,
		},
		{
			name: "overflow_bound_violated",
			build: func() DeltaHistory {
				h := NewDeltaHistory()
				h.RecordOverflow(NewUint128FromUint64(501))
				return h
			},
			base:    99, // 99+501=600, no longer overflows
			wantErr: true,
		},
		{
			name: "underflow_bound_must_still_underflow",
			build: func() DeltaHistory {
				h := NewDeltaHistory()
				h.RecordUnderflow(NewUint128FromUint64(201))
				return h
			},
			base:    200, // 200 < 201, correctly still underflows
			wantErr: false,
		},
		{
			name: "underflow_bound_violated",
			build: func() DeltaHistory {
				h := NewDeltaHistory()
				h.RecordUnderflow(NewUint128FromUint64(201))
				return h
			},
			base:    201, // not < 201 anymore
			wantErr: true,
		},
	}

	for _, test := range tests {
		h := test.build()
		err := h.ValidateAgainstBaseValue(NewUint128FromUint64(test.base), maxValue)
		if (err != nil) != test.wantErr {
			t.Errorf("%s: err = %v wantErr %v", test.name, err, test.wantErr)
		}
	}
}
