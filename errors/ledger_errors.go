package errors

import (
	stderrors "errors"
	"fmt"
)

// LedgerErrorCode classifies why an instruction was rejected
type LedgerErrorCode string

const (
	ErrCodeInvalidInstructionData LedgerErrorCode = "invalid_instruction_data"
	ErrCodeIncorrectOwner         LedgerErrorCode = "incorrect_owner"
	ErrCodeInvalidAccountData     LedgerErrorCode = "invalid_account_data"
	ErrCodeInsufficientFunds      LedgerErrorCode = "insufficient_funds"

	ErrCodeNotEnoughAccountKeys LedgerErrorCode = "not_enough_account_keys"
	ErrCodeAccountNotFound      LedgerErrorCode = "account_not_found"
	ErrCodeArithmeticOverflow   LedgerErrorCode = "arithmetic_overflow"
	ErrCodeMissingSignature     LedgerErrorCode = "missing_signature"
	ErrCodeUnknownProgram       LedgerErrorCode = "unknown_program"
	ErrCodeAccountExists        LedgerErrorCode = "account_exists"
)

const (
	ErrMsgEmptyInstruction      = "Instruction data is empty"
	ErrMsgUnknownInstruction    = "Unknown instruction code %d"
	ErrMsgCreatorNotSigner      = "Campaign creator should be the signer"
	ErrMsgAdminNotSigner        = "Admin should be the signer"
	ErrMsgDonatorNotSigner      = "Donator should be the signer"
	ErrMsgNotOwnedByProgram     = "Account %s isn't owned by program"
	ErrMsgAdminMismatch         = "Campaign admin must be the creator"
	ErrMsgOnlyAdminCanWithdraw  = "Only the campaign admin can withdraw"
	ErrMsgBelowMinimumBalance   = "Account balance %d is below minimum balance %d"
	ErrMsgInsufficientBalance   = "Insufficient balance: available %d, requested %d"
	ErrMsgSelfDonation          = "Donation account must differ from the campaign account"
	ErrMsgMalformedCampaign     = "Campaign data could not be deserialized"
	ErrMsgMalformedWithdraw     = "Withdraw request could not be deserialized"
	ErrMsgCampaignNotCreated    = "Account %s holds no created campaign"
	ErrMsgCampaignExists        = "Campaign %s already exists"
	ErrMsgNotEnoughAccountKeys  = "Expected %d accounts, got %d"
	ErrMsgUnbalancedInstruction = "Instruction changed the total balance of its accounts"
)

// LedgerError is returned by every rejected ledger operation. Errors compare equal
// under errors.Is when their codes match, so callers test for a kind with the
// exported sentinels below.
type LedgerError struct {
	Code    LedgerErrorCode `json:"code"`
	Message string          `json:"message"`
	Err     error           `json:"-"`
}

func (e *LedgerError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}

func (e *LedgerError) Is(target error) bool {
	t, ok := target.(*LedgerError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrInvalidInstructionData = &LedgerError{Code: ErrCodeInvalidInstructionData}
	ErrIncorrectOwner         = &LedgerError{Code: ErrCodeIncorrectOwner}
	ErrInvalidAccountData     = &LedgerError{Code: ErrCodeInvalidAccountData}
	ErrInsufficientFunds      = &LedgerError{Code: ErrCodeInsufficientFunds}
	ErrNotEnoughAccountKeys   = &LedgerError{Code: ErrCodeNotEnoughAccountKeys}
	ErrAccountNotFound        = &LedgerError{Code: ErrCodeAccountNotFound}
	ErrArithmeticOverflow     = &LedgerError{Code: ErrCodeArithmeticOverflow}
	ErrMissingSignature       = &LedgerError{Code: ErrCodeMissingSignature}
	ErrUnknownProgram         = &LedgerError{Code: ErrCodeUnknownProgram}
	ErrAccountExists          = &LedgerError{Code: ErrCodeAccountExists}
)

// NewError creates a LedgerError with a formatted message
func NewError(code LedgerErrorCode, format string, args ...interface{}) error {
	return &LedgerError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a LedgerError
func Wrap(code LedgerErrorCode, cause error, format string, args ...interface{}) error {
	return &LedgerError{Code: code, Message: fmt.Sprintf(format, args...), Err: cause}
}

// CodeOf extracts the code of the first LedgerError in err's chain, or "" if none.
func CodeOf(err error) LedgerErrorCode {
	var le *LedgerError
	if stderrors.As(err, &le) {
		return le.Code
	}
	return ""
}
