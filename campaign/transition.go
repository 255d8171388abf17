package campaign

import (
	"math"

	"github.com/mezonai/crowdfund/errors"
)

// The functions below hold the state transition rules. They take old values
// and return new ones; the ledger performs the reads and writes around them.

// NewCampaign returns the record to persist for a create request.
// The donated counter always starts from zero whatever the payload said.
func NewCampaign(candidate CampaignRecord) CampaignRecord {
	candidate.AmountDonated = 0
	return candidate
}

// ApplyDonation adds a swept amount to the lifetime donation counter
func ApplyDonation(rec CampaignRecord, amount uint64) (CampaignRecord, error) {
	if amount > math.MaxUint64-rec.AmountDonated {
		return rec, errors.NewError(errors.ErrCodeArithmeticOverflow, "amount_donated %d + %d overflows", rec.AmountDonated, amount)
	}
	rec.AmountDonated += amount
	return rec, nil
}

// Withdrawable is what can leave a campaign without dropping it below floor.
// A campaign already under its floor cannot release anything.
func Withdrawable(balance, floor uint64) (uint64, error) {
	if balance < floor {
		return 0, errors.NewError(errors.ErrCodeInsufficientFunds, errors.ErrMsgBelowMinimumBalance, balance, floor)
	}
	return balance - floor, nil
}

// CheckWithdrawal succeeds iff balance - floor >= amount, with balance >= floor
func CheckWithdrawal(balance, floor, amount uint64) error {
	available, err := Withdrawable(balance, floor)
	if err != nil {
		return err
	}
	if available < amount {
		return errors.NewError(errors.ErrCodeInsufficientFunds, errors.ErrMsgInsufficientBalance, available, amount)
	}
	return nil
}
