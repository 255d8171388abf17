package campaign

import (
	"fmt"

	"github.com/mezonai/crowdfund/errors"
)

// Opcode is the first byte of an instruction
type Opcode uint8

const (
	OpCreateCampaign Opcode = 0
	OpWithdraw       Opcode = 1
	OpDonate         Opcode = 2
)

func (o Opcode) String() string {
	switch o {
	case OpCreateCampaign:
		return "create_campaign"
	case OpWithdraw:
		return "withdraw"
	case OpDonate:
		return "donate"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(o))
	}
}

// Instruction is one of CreateCampaign, Withdraw or Donate
type Instruction interface {
	Opcode() Opcode
	// AccountCount is how many ordered account keys the instruction needs
	AccountCount() int
	isInstruction()
}

type CreateCampaign struct {
	Record CampaignRecord
}

type Withdraw struct {
	Request WithdrawRequest
}

// Donate carries no payload; the amount is the donation record's whole balance
type Donate struct{}

func (CreateCampaign) Opcode() Opcode { return OpCreateCampaign }
func (Withdraw) Opcode() Opcode       { return OpWithdraw }
func (Donate) Opcode() Opcode         { return OpDonate }

func (CreateCampaign) AccountCount() int { return 2 }
func (Withdraw) AccountCount() int       { return 2 }
func (Donate) AccountCount() int         { return 3 }

func (CreateCampaign) isInstruction() {}
func (Withdraw) isInstruction()       {}
func (Donate) isInstruction()         {}

// DecodeInstruction splits off the opcode and decodes the payload it selects.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, errors.NewError(errors.ErrCodeInvalidInstructionData, errors.ErrMsgEmptyInstruction)
	}

	payload := data[1:]
	switch Opcode(data[0]) {
	case OpCreateCampaign:
		rec, err := DecodeCampaignRecord(payload)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInstructionData, err, errors.ErrMsgMalformedCampaign)
		}
		return CreateCampaign{Record: rec}, nil
	case OpWithdraw:
		req, err := DecodeWithdrawRequest(payload)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInstructionData, err, errors.ErrMsgMalformedWithdraw)
		}
		return Withdraw{Request: req}, nil
	case OpDonate:
		// any trailing payload is ignored
		return Donate{}, nil
	default:
		return nil, errors.NewError(errors.ErrCodeInvalidInstructionData, errors.ErrMsgUnknownInstruction, data[0])
	}
}

// EncodeInstruction produces opcode-prefixed instruction data
func EncodeInstruction(ins Instruction) ([]byte, error) {
	var payload []byte
	var err error
	switch v := ins.(type) {
	case CreateCampaign:
		payload, err = v.Record.Encode()
	case Withdraw:
		payload, err = v.Request.Encode()
	case Donate:
	default:
		return nil, fmt.Errorf("unsupported instruction %T", ins)
	}
	if err != nil {
		return nil, err
	}

	data := make([]byte, 0, 1+len(payload))
	data = append(data, byte(ins.Opcode()))
	return append(data, payload...), nil
}
