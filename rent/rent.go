package rent

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"
)

const (
	// DefaultLamportsPerByteYear is the storage price per byte per year
	DefaultLamportsPerByteYear uint64 = 3480
	// DefaultExemptionThreshold is how many years of rent make a record exempt
	DefaultExemptionThreshold = 2.0
	// DefaultStorageOverhead is the per-record bookkeeping size charged on top of its data
	DefaultStorageOverhead uint64 = 128
)

// Rent is the rent-exemption formula used as the minimum balance policy:
// ((overhead + dataLen) * lamportsPerByteYear) * exemptionThreshold
type Rent struct {
	LamportsPerByteYear uint64  `ini:"lamports_per_byte_year"`
	ExemptionThreshold  float64 `ini:"exemption_threshold"`
	StorageOverhead     uint64  `ini:"storage_overhead"`
}

func Default() *Rent {
	return &Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
		StorageOverhead:     DefaultStorageOverhead,
	}
}

func (r *Rent) Validate() error {
	if r.LamportsPerByteYear == 0 {
		return fmt.Errorf("lamports_per_byte_year must be positive")
	}
	if r.ExemptionThreshold <= 0 || math.IsInf(r.ExemptionThreshold, 0) || math.IsNaN(r.ExemptionThreshold) {
		return fmt.Errorf("exemption_threshold must be a positive finite number")
	}
	if r.MinimumBalance(0) == math.MaxUint64 {
		return fmt.Errorf("lamports_per_byte_year %d with exemption_threshold %g overflows the balance range", r.LamportsPerByteYear, r.ExemptionThreshold)
	}
	return nil
}

// MinimumBalance implements interfaces.MinimumBalancePolicy. A floor beyond the
// uint64 range saturates to math.MaxUint64, which no record can hold.
func (r *Rent) MinimumBalance(dataLen int) uint64 {
	if dataLen < 0 {
		dataLen = 0
	}
	bytes := new(uint256.Int).AddUint64(uint256.NewInt(r.StorageOverhead), uint64(dataLen))
	perYear := new(uint256.Int).Mul(bytes, uint256.NewInt(r.LamportsPerByteYear))
	if !perYear.IsUint64() {
		return math.MaxUint64
	}
	exempt := float64(perYear.Uint64()) * r.ExemptionThreshold
	if exempt >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(exempt)
}

// Fixed is a flat policy, handy for tests and for ledgers without storage pricing
type Fixed uint64

func (f Fixed) MinimumBalance(int) uint64 {
	return uint64(f)
}
