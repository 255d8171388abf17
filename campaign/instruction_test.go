package campaign

import (
	"testing"

	"github.com/mezonai/crowdfund/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInstructionRejectsEmptyAndUnknown(t *testing.T) {
	_, err := DecodeInstruction(nil)
	assert.ErrorIs(t, err, errors.ErrInvalidInstructionData)

	_, err = DecodeInstruction([]byte{})
	assert.ErrorIs(t, err, errors.ErrInvalidInstructionData)

	for _, op := range []byte{3, 7, 255} {
		_, err = DecodeInstruction([]byte{op, 1, 2, 3})
		assert.ErrorIs(t, err, errors.ErrInvalidInstructionData, "opcode %d", op)
	}
}

func TestDecodeInstructionVariants(t *testing.T) {
	rec := CampaignRecord{Admin: pk(4), Name: "n", Description: "d", ImageLink: "i", AmountDonated: 9}
	data, err := EncodeInstruction(CreateCampaign{Record: rec})
	require.NoError(t, err)
	assert.Equal(t, byte(OpCreateCampaign), data[0])

	ins, err := DecodeInstruction(data)
	require.NoError(t, err)
	assert.Equal(t, CreateCampaign{Record: rec}, ins)

	data, err = EncodeInstruction(Withdraw{Request: WithdrawRequest{Amount: 77}})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 77, 0, 0, 0, 0, 0, 0, 0}, data)
	ins, err = DecodeInstruction(data)
	require.NoError(t, err)
	assert.Equal(t, Withdraw{Request: WithdrawRequest{Amount: 77}}, ins)

	data, err = EncodeInstruction(Donate{})
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, data)
	ins, err = DecodeInstruction([]byte{2, 0xde, 0xad})
	require.NoError(t, err)
	assert.Equal(t, Donate{}, ins)
}

func TestDecodeInstructionMalformedPayloadIsFatal(t *testing.T) {
	_, err := DecodeInstruction([]byte{0, 1, 2})
	assert.ErrorIs(t, err, errors.ErrInvalidInstructionData)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = DecodeInstruction([]byte{1, 1, 2, 3})
	assert.ErrorIs(t, err, errors.ErrInvalidInstructionData)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestOpcodeString(t *testing.T) {
	assert.Equal(t, "create_campaign", OpCreateCampaign.String())
	assert.Equal(t, "withdraw", OpWithdraw.String())
	assert.Equal(t, "donate", OpDonate.String())
	assert.Equal(t, "unknown(9)", Opcode(9).String())
}
