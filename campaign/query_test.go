package campaign

import (
	"testing"

	"github.com/mezonai/crowdfund/errors"
	"github.com/mezonai/crowdfund/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	byKey map[types.Pubkey]*types.Account
}

func (f fakeLister) GetByKey(key types.Pubkey) (*types.Account, error) {
	return f.byKey[key], nil
}

func (f fakeLister) ListByOwner(owner types.Pubkey) ([]*types.Account, error) {
	out := make([]*types.Account, 0)
	for _, acc := range f.byKey {
		if acc.Owner == owner {
			out = append(out, acc)
		}
	}
	return out, nil
}

func TestListSkipsNonCampaignAccounts(t *testing.T) {
	rec := NewCampaign(sampleRecord(adminA))
	data, err := rec.Encode()
	require.NoError(t, err)

	lister := fakeLister{byKey: map[types.Pubkey]*types.Account{
		campaignK: {Key: campaignK, Owner: programID, Balance: 99, Data: data},
		donationK: {Key: donationK, Owner: programID},
		pk(0x12):  {Key: pk(0x12), Owner: programID, Data: make([]byte, (&CampaignRecord{}).EncodedLen())},
		adminA:    {Key: adminA, Owner: types.SystemProgramID, Data: data},
	}}

	campaigns, err := List(lister, programID)
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, campaignK, campaigns[0].Key)
	assert.Equal(t, uint64(99), campaigns[0].Balance)
	assert.Equal(t, rec, campaigns[0].Record)
}

func TestGet(t *testing.T) {
	data, err := (&CampaignRecord{Admin: adminA, Name: "x"}).Encode()
	require.NoError(t, err)
	lister := fakeLister{byKey: map[types.Pubkey]*types.Account{
		campaignK: {Key: campaignK, Owner: programID, Data: data},
		otherB:    {Key: otherB, Owner: types.SystemProgramID},
		donationK: {Key: donationK, Owner: programID, Data: make([]byte, (&CampaignRecord{}).EncodedLen())},
	}}

	c, err := Get(lister, programID, campaignK)
	require.NoError(t, err)
	assert.Equal(t, "x", c.Record.Name)

	_, err = Get(lister, programID, otherB)
	assert.ErrorIs(t, err, errors.ErrIncorrectOwner)

	_, err = Get(lister, programID, donationK)
	assert.ErrorIs(t, err, errors.ErrInvalidAccountData, "provisioned record was never created")

	_, err = Get(lister, programID, pk(0x55))
	assert.ErrorIs(t, err, errors.ErrAccountNotFound)
}
