package campaign

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/mezonai/crowdfund/types"
	"github.com/near/borsh-go"
)

// ErrMalformed marks bytes that do not decode into a record or request.
// Decoding never falls back to a zero value.
var ErrMalformed = errors.New("malformed borsh data")

const (
	stringLenPrefix    = 4
	withdrawRequestLen = 8
)

// CampaignRecord is the state stored in a campaign's account data.
// Field order is the wire order.
type CampaignRecord struct {
	Admin         types.Pubkey `json:"admin"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	ImageLink     string       `json:"image_link"`
	AmountDonated uint64       `json:"amount_donated"`
}

// WithdrawRequest is the payload of a withdraw instruction
type WithdrawRequest struct {
	Amount uint64 `json:"amount"`
}

// Initialized reports whether the record was written by CreateCampaign. A record
// that was only provisioned holds zero bytes and therefore no admin.
func (r *CampaignRecord) Initialized() bool {
	return !r.Admin.IsZero()
}

// EncodedLen is the exact size of the record's binary form
func (r *CampaignRecord) EncodedLen() int {
	return types.PubkeyLength +
		3*stringLenPrefix + len(r.Name) + len(r.Description) + len(r.ImageLink) +
		8
}

func (r *CampaignRecord) Encode() ([]byte, error) {
	data, err := borsh.Serialize(*r)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize campaign record: %w", err)
	}
	return data, nil
}

// DecodeCampaignRecord requires data to hold exactly one record with valid UTF-8 strings
func DecodeCampaignRecord(data []byte) (CampaignRecord, error) {
	var rec CampaignRecord
	if err := checkCampaignLayout(data); err != nil {
		return rec, err
	}
	if err := borsh.Deserialize(&rec, data); err != nil {
		return CampaignRecord{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for _, s := range []string{rec.Name, rec.Description, rec.ImageLink} {
		if !utf8.ValidString(s) {
			return CampaignRecord{}, fmt.Errorf("%w: invalid utf-8 string", ErrMalformed)
		}
	}
	return rec, nil
}

// checkCampaignLayout walks the length prefixes before handing data to the
// reflective decoder so a corrupt prefix can never trigger a huge allocation.
func checkCampaignLayout(data []byte) error {
	off := types.PubkeyLength
	if len(data) < off {
		return fmt.Errorf("%w: %d bytes is too short for admin", ErrMalformed, len(data))
	}
	for i := 0; i < 3; i++ {
		if len(data)-off < stringLenPrefix {
			return fmt.Errorf("%w: truncated string length at offset %d", ErrMalformed, off)
		}
		n := uint64(binary.LittleEndian.Uint32(data[off:]))
		off += stringLenPrefix
		if uint64(len(data)-off) < n {
			return fmt.Errorf("%w: string of %d bytes overruns buffer at offset %d", ErrMalformed, n, off)
		}
		off += int(n)
	}
	if len(data)-off < 8 {
		return fmt.Errorf("%w: truncated amount_donated", ErrMalformed)
	}
	off += 8
	if off != len(data) {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(data)-off)
	}
	return nil
}

func (r *WithdrawRequest) Encode() ([]byte, error) {
	data, err := borsh.Serialize(*r)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize withdraw request: %w", err)
	}
	return data, nil
}

func DecodeWithdrawRequest(data []byte) (WithdrawRequest, error) {
	var req WithdrawRequest
	if len(data) != withdrawRequestLen {
		return req, fmt.Errorf("%w: withdraw request must be %d bytes, got %d", ErrMalformed, withdrawRequestLen, len(data))
	}
	if err := borsh.Deserialize(&req, data); err != nil {
		return WithdrawRequest{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return req, nil
}
