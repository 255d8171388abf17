package store

// Declare database key prefix for objects
const (
	PrefixAccount = "account:"

	PrefixStateMeta       = "state_meta:"
	StateMetaKeyExecution = PrefixStateMeta + "execution"
)
