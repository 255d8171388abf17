package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	err := NewError(ErrCodeInsufficientFunds, ErrMsgInsufficientBalance, 1, 2)
	wrapped := fmt.Errorf("withdraw: %w", err)

	if !stderrors.Is(wrapped, ErrInsufficientFunds) {
		t.Error("expected InsufficientFunds")
	}
	if stderrors.Is(wrapped, ErrIncorrectOwner) {
		t.Error("codes must not cross-match")
	}
	if CodeOf(wrapped) != ErrCodeInsufficientFunds {
		t.Errorf("CodeOf = %q", CodeOf(wrapped))
	}
	if CodeOf(stderrors.New("plain")) != "" {
		t.Error("plain errors carry no code")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("short buffer")
	err := Wrap(ErrCodeInvalidAccountData, cause, ErrMsgMalformedCampaign)

	if !stderrors.Is(err, cause) {
		t.Error("cause lost")
	}
	if !stderrors.Is(err, ErrInvalidAccountData) {
		t.Error("code lost")
	}
	want := "invalid_account_data: Campaign data could not be deserialized: short buffer"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
