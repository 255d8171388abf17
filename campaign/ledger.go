package campaign

import (
	"fmt"
	"math"

	"github.com/mezonai/crowdfund/errors"
	"github.com/mezonai/crowdfund/events"
	"github.com/mezonai/crowdfund/interfaces"
	"github.com/mezonai/crowdfund/logx"
	"github.com/mezonai/crowdfund/types"
)

// Ledger is the crowdfunding program. It owns campaign records (accounts whose
// owner is its program id) and performs the three authorized transitions on them.
// It keeps no state of its own; every call works only on the AccountStore it is given.
type Ledger struct {
	programID types.Pubkey
	policy    interfaces.MinimumBalancePolicy
}

func NewLedger(programID types.Pubkey, policy interfaces.MinimumBalancePolicy) *Ledger {
	return &Ledger{programID: programID, policy: policy}
}

// ID returns the program identity that must own campaign records
func (l *Ledger) ID() types.Pubkey {
	return l.programID
}

func (l *Ledger) Name() string {
	return "campaign"
}

// Process decodes raw instruction data and runs it against the ordered account keys
func (l *Ledger) Process(accounts interfaces.AccountStore, keys []types.Pubkey, data []byte) (events.LedgerEvent, error) {
	ins, err := DecodeInstruction(data)
	if err != nil {
		logx.Warn("CAMPAIGN", "Invalid instruction: ", err)
		return nil, err
	}
	return l.Execute(accounts, keys, ins)
}

// Execute dispatches a decoded instruction. keys are positional:
//
//	CreateCampaign: [campaign record, creator (signer)]
//	Withdraw:       [campaign record, admin (signer)]
//	Donate:         [campaign record, donation record, donator (signer)]
func (l *Ledger) Execute(accounts interfaces.AccountStore, keys []types.Pubkey, ins Instruction) (events.LedgerEvent, error) {
	if len(keys) < ins.AccountCount() {
		return nil, errors.NewError(errors.ErrCodeNotEnoughAccountKeys, errors.ErrMsgNotEnoughAccountKeys, ins.AccountCount(), len(keys))
	}

	switch v := ins.(type) {
	case CreateCampaign:
		return l.CreateCampaign(accounts, keys[0], keys[1], v.Record)
	case Withdraw:
		return l.Withdraw(accounts, keys[0], keys[1], v.Request)
	case Donate:
		return l.Donate(accounts, keys[0], keys[1], keys[2])
	default:
		return nil, errors.NewError(errors.ErrCodeInvalidInstructionData, "unsupported instruction %T", ins)
	}
}

// CreateCampaign writes a fresh record into campaignKey. Calling it again on the
// same record overwrites the previous campaign entirely.
func (l *Ledger) CreateCampaign(accounts interfaces.AccountStore, campaignKey, creatorKey types.Pubkey, candidate CampaignRecord) (events.LedgerEvent, error) {
	if !accounts.IsSigner(creatorKey) {
		logx.Warn("CAMPAIGN", errors.ErrMsgCreatorNotSigner)
		return nil, errors.NewError(errors.ErrCodeIncorrectOwner, errors.ErrMsgCreatorNotSigner)
	}
	if err := l.requireOwned(accounts, campaignKey); err != nil {
		return nil, err
	}

	if candidate.Admin != creatorKey {
		logx.Warn("CAMPAIGN", fmt.Sprintf("%s: admin=%s creator=%s", errors.ErrMsgAdminMismatch, candidate.Admin, creatorKey))
		return nil, errors.NewError(errors.ErrCodeInvalidInstructionData, errors.ErrMsgAdminMismatch)
	}

	record := NewCampaign(candidate)
	data, err := record.Encode()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInstructionData, err, errors.ErrMsgMalformedCampaign)
	}

	target, err := accounts.Get(campaignKey)
	if err != nil {
		return nil, err
	}
	// the floor covers the record's current size and the size it has after the write
	floor := l.policy.MinimumBalance(max(target.DataLen(), len(data)))
	if target.Balance < floor {
		logx.Warn("CAMPAIGN", fmt.Sprintf("Campaign %s balance %d below minimum balance %d", campaignKey, target.Balance, floor))
		return nil, errors.NewError(errors.ErrCodeInsufficientFunds, errors.ErrMsgBelowMinimumBalance, target.Balance, floor)
	}

	if err := accounts.SetData(campaignKey, data); err != nil {
		return nil, err
	}

	logx.Info("CAMPAIGN", fmt.Sprintf("Created campaign %s admin=%s name=%q", campaignKey, record.Admin, record.Name))
	return events.NewCampaignCreated(campaignKey, record.Admin, record.Name), nil
}

// Withdraw moves req.Amount from the campaign's balance to its admin. The
// campaign record itself is left untouched.
func (l *Ledger) Withdraw(accounts interfaces.AccountStore, campaignKey, adminKey types.Pubkey, req WithdrawRequest) (events.LedgerEvent, error) {
	if err := l.requireOwned(accounts, campaignKey); err != nil {
		return nil, err
	}
	if !accounts.IsSigner(adminKey) {
		logx.Warn("CAMPAIGN", errors.ErrMsgAdminNotSigner)
		return nil, errors.NewError(errors.ErrCodeIncorrectOwner, errors.ErrMsgAdminNotSigner)
	}

	record, dataLen, err := l.loadCampaign(accounts, campaignKey)
	if err != nil {
		return nil, err
	}
	if record.Admin != adminKey {
		logx.Warn("CAMPAIGN", fmt.Sprintf("%s: campaign=%s caller=%s", errors.ErrMsgOnlyAdminCanWithdraw, campaignKey, adminKey))
		return nil, errors.NewError(errors.ErrCodeInvalidAccountData, errors.ErrMsgOnlyAdminCanWithdraw)
	}

	balance, err := accounts.GetBalance(campaignKey)
	if err != nil {
		return nil, err
	}
	if err := CheckWithdrawal(balance, l.policy.MinimumBalance(dataLen), req.Amount); err != nil {
		logx.Warn("CAMPAIGN", fmt.Sprintf("Withdraw of %d from %s rejected: %v", req.Amount, campaignKey, err))
		return nil, err
	}

	if err := accounts.Transfer(campaignKey, adminKey, req.Amount); err != nil {
		return nil, err
	}

	logx.Info("CAMPAIGN", fmt.Sprintf("Withdrew %d from campaign %s to %s", req.Amount, campaignKey, adminKey))
	return events.NewFundsWithdrawn(campaignKey, adminKey, req.Amount), nil
}

// Donate sweeps the donation record's whole balance into the campaign and adds
// it to the campaign's lifetime donation counter.
func (l *Ledger) Donate(accounts interfaces.AccountStore, campaignKey, donationKey, donatorKey types.Pubkey) (events.LedgerEvent, error) {
	if err := l.requireOwned(accounts, campaignKey); err != nil {
		return nil, err
	}
	if err := l.requireOwned(accounts, donationKey); err != nil {
		return nil, err
	}
	if !accounts.IsSigner(donatorKey) {
		logx.Warn("CAMPAIGN", errors.ErrMsgDonatorNotSigner)
		return nil, errors.NewError(errors.ErrCodeIncorrectOwner, errors.ErrMsgDonatorNotSigner)
	}
	if donationKey == campaignKey {
		return nil, errors.NewError(errors.ErrCodeInvalidAccountData, errors.ErrMsgSelfDonation)
	}

	record, _, err := l.loadCampaign(accounts, campaignKey)
	if err != nil {
		return nil, err
	}

	amount, err := accounts.GetBalance(donationKey)
	if err != nil {
		return nil, err
	}
	campaignBalance, err := accounts.GetBalance(campaignKey)
	if err != nil {
		return nil, err
	}
	if amount > math.MaxUint64-campaignBalance {
		return nil, errors.NewError(errors.ErrCodeArithmeticOverflow, "campaign balance %d + %d overflows", campaignBalance, amount)
	}

	updated, err := ApplyDonation(record, amount)
	if err != nil {
		return nil, err
	}
	data, err := updated.Encode()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAccountData, err, errors.ErrMsgMalformedCampaign)
	}

	if err := accounts.Transfer(donationKey, campaignKey, amount); err != nil {
		return nil, err
	}
	if err := accounts.SetData(campaignKey, data); err != nil {
		return nil, err
	}

	logx.Info("CAMPAIGN", fmt.Sprintf("Donation of %d into campaign %s from %s, total donated %d", amount, campaignKey, donatorKey, updated.AmountDonated))
	return events.NewDonationReceived(campaignKey, donationKey, donatorKey, amount, updated.AmountDonated), nil
}

func (l *Ledger) requireOwned(accounts interfaces.AccountStore, key types.Pubkey) error {
	owner, err := accounts.Owner(key)
	if err != nil {
		return err
	}
	if owner != l.programID {
		logx.Warn("CAMPAIGN", fmt.Sprintf(errors.ErrMsgNotOwnedByProgram, key))
		return errors.NewError(errors.ErrCodeIncorrectOwner, errors.ErrMsgNotOwnedByProgram, key)
	}
	return nil
}

// loadCampaign decodes the stored record; a record that does not decode is fatal for the call
func (l *Ledger) loadCampaign(accounts interfaces.AccountStore, key types.Pubkey) (CampaignRecord, int, error) {
	acc, err := accounts.Get(key)
	if err != nil {
		return CampaignRecord{}, 0, err
	}
	record, err := DecodeCampaignRecord(acc.Data)
	if err != nil {
		logx.Error("CAMPAIGN", fmt.Sprintf("Error deserializing campaign %s: %v", key, err))
		return CampaignRecord{}, 0, errors.Wrap(errors.ErrCodeInvalidAccountData, err, errors.ErrMsgMalformedCampaign)
	}
	return record, len(acc.Data), nil
}
