package rent

import (
	"math"
	"testing"
)

func TestDefaultMinimumBalance(t *testing.T) {
	r := Default()

	// (128 + 0) * 3480 * 2
	if got := r.MinimumBalance(0); got != 890880 {
		t.Errorf("Expected 890880 for empty record, got %d", got)
	}
	// (128 + 100) * 3480 * 2
	if got := r.MinimumBalance(100); got != 1586880 {
		t.Errorf("Expected 1586880 for 100 bytes, got %d", got)
	}
}

func TestMinimumBalanceGrowsWithSize(t *testing.T) {
	r := Default()
	prev := r.MinimumBalance(0)
	for _, size := range []int{1, 10, 200, 10_000} {
		got := r.MinimumBalance(size)
		if got <= prev {
			t.Errorf("Expected minimum balance to grow at size %d: %d <= %d", size, got, prev)
		}
		prev = got
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Expected default rent to be valid, got %v", err)
	}
	if err := (&Rent{ExemptionThreshold: 2}).Validate(); err == nil {
		t.Error("Expected error for zero lamports per byte year")
	}
	if err := (&Rent{LamportsPerByteYear: 1}).Validate(); err == nil {
		t.Error("Expected error for zero exemption threshold")
	}
}

func TestFixed(t *testing.T) {
	if got := Fixed(500).MinimumBalance(12345); got != 500 {
		t.Errorf("Expected 500, got %d", got)
	}
}

func TestMinimumBalanceSaturatesOnOverflow(t *testing.T) {
	r := &Rent{LamportsPerByteYear: math.MaxUint64 / 100, ExemptionThreshold: 2, StorageOverhead: 128}
	if got := r.MinimumBalance(0); got != math.MaxUint64 {
		t.Errorf("Expected saturated floor, got %d", got)
	}
	if err := r.Validate(); err == nil {
		t.Error("Expected error for a price that overflows the balance range")
	}

	r = &Rent{LamportsPerByteYear: 1 << 40, ExemptionThreshold: 1 << 30}
	if got := r.MinimumBalance(1); got != math.MaxUint64 {
		t.Errorf("Expected saturated floor from threshold, got %d", got)
	}

	r = &Rent{LamportsPerByteYear: 1, ExemptionThreshold: 1}
	if got := r.MinimumBalance(1 << 30); got != 1<<30 {
		t.Errorf("Expected %d, got %d", uint64(1<<30), got)
	}
}

func TestValidateRejectsNonFiniteThreshold(t *testing.T) {
	for _, threshold := range []float64{math.Inf(1), math.NaN()} {
		if err := (&Rent{LamportsPerByteYear: 1, ExemptionThreshold: threshold}).Validate(); err == nil {
			t.Errorf("Expected error for exemption threshold %v", threshold)
		}
	}
}
