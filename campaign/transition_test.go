package campaign

import (
	"math"
	"testing"

	"github.com/mezonai/crowdfund/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCampaignResetsDonatedAmount(t *testing.T) {
	for _, donated := range []uint64{0, 1, 500, math.MaxUint64} {
		rec := NewCampaign(CampaignRecord{Admin: pk(1), Name: "n", AmountDonated: donated})
		assert.Zero(t, rec.AmountDonated)
		assert.Equal(t, "n", rec.Name)
	}
}

func TestApplyDonation(t *testing.T) {
	rec, err := ApplyDonation(CampaignRecord{AmountDonated: 100}, 50)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), rec.AmountDonated)

	_, err = ApplyDonation(CampaignRecord{AmountDonated: math.MaxUint64}, 1)
	assert.ErrorIs(t, err, errors.ErrArithmeticOverflow)
}

func TestCheckWithdrawalBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		balance uint64
		floor   uint64
		amount  uint64
		ok      bool
	}{
		{"exact surplus", 1500, 1000, 500, true},
		{"one over surplus", 1500, 1000, 501, false},
		{"balance equals floor, zero amount", 1000, 1000, 0, true},
		{"balance equals floor, one unit", 1000, 1000, 1, false},
		{"balance below floor, zero amount", 999, 1000, 0, false},
		{"balance below floor, any amount", 10, 1000, 5, false},
		{"no floor", 7, 0, 7, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckWithdrawal(tc.balance, tc.floor, tc.amount)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, errors.ErrInsufficientFunds)
			}
		})
	}
}

func TestWithdrawableDoesNotUnderflow(t *testing.T) {
	_, err := Withdrawable(0, math.MaxUint64)
	assert.ErrorIs(t, err, errors.ErrInsufficientFunds)

	available, err := Withdrawable(math.MaxUint64, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), available)
}
