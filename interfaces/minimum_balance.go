package interfaces

// MinimumBalancePolicy computes the funds a record needs to stay persisted.
type MinimumBalancePolicy interface {
	MinimumBalance(dataLen int) uint64
}
