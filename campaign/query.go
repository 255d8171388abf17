package campaign

import (
	"fmt"

	"github.com/mezonai/crowdfund/errors"
	"github.com/mezonai/crowdfund/logx"
	"github.com/mezonai/crowdfund/types"
)

// Campaign is a read model joining a record with its account's balance
type Campaign struct {
	Key     types.Pubkey   `json:"key"`
	Balance uint64         `json:"balance"`
	Record  CampaignRecord `json:"record"`
}

// AccountGetter reads one account, nil when missing
type AccountGetter interface {
	GetByKey(key types.Pubkey) (*types.Account, error)
}

// AccountLister returns every account owned by a program
type AccountLister interface {
	ListByOwner(owner types.Pubkey) ([]*types.Account, error)
}

// Get loads one campaign owned by programID
func Get(getter AccountGetter, programID, key types.Pubkey) (*Campaign, error) {
	acc, err := getter.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return nil, errors.NewError(errors.ErrCodeAccountNotFound, "account %s not found", key)
	}
	if !acc.IsOwnedBy(programID) {
		return nil, errors.NewError(errors.ErrCodeIncorrectOwner, errors.ErrMsgNotOwnedByProgram, key)
	}
	record, err := DecodeCampaignRecord(acc.Data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidAccountData, err, errors.ErrMsgMalformedCampaign)
	}
	if !record.Initialized() {
		return nil, errors.NewError(errors.ErrCodeInvalidAccountData, errors.ErrMsgCampaignNotCreated, key)
	}
	return &Campaign{Key: key, Balance: acc.Balance, Record: record}, nil
}

// List returns all initialized campaigns of programID. Program-owned accounts that
// do not hold a campaign (provisioned but never created, or donation records) are skipped.
func List(lister AccountLister, programID types.Pubkey) ([]Campaign, error) {
	accounts, err := lister.ListByOwner(programID)
	if err != nil {
		return nil, fmt.Errorf("failed to list program accounts: %w", err)
	}

	campaigns := make([]Campaign, 0, len(accounts))
	for _, acc := range accounts {
		record, err := DecodeCampaignRecord(acc.Data)
		if err != nil {
			logx.Debug("CAMPAIGN", fmt.Sprintf("Skipping account %s: %v", acc.Key, err))
			continue
		}
		if !record.Initialized() {
			continue
		}
		campaigns = append(campaigns, Campaign{Key: acc.Key, Balance: acc.Balance, Record: record})
	}
	return campaigns, nil
}
