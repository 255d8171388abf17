package transaction

import (
	"crypto/ed25519"
	"testing"

	"github.com/mezonai/crowdfund/errors"
	"github.com/mezonai/crowdfund/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) (types.Pubkey, ed25519.PrivateKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	key, err := types.PubkeyFromBytes(pub)
	require.NoError(t, err)
	return key, priv
}

func TestSignAndVerify(t *testing.T) {
	alice, alicePriv := newKey(t)
	bob, _ := newKey(t)
	program, _ := newKey(t)

	tx := NewTransaction(program, []byte{2}, ReadOnly(bob), Signer(alice))
	require.NoError(t, tx.Sign(alicePriv))

	signers, err := tx.Verify()
	require.NoError(t, err)
	assert.True(t, signers[alice])
	assert.False(t, signers[bob])
	assert.Equal(t, []types.Pubkey{bob, alice}, tx.Keys())
}

func TestSignRejectsNonSigner(t *testing.T) {
	alice, _ := newKey(t)
	_, bobPriv := newKey(t)

	tx := NewTransaction(types.ZeroPubkey, nil, Signer(alice))
	assert.Error(t, tx.Sign(bobPriv))
}

func TestVerifyRequiresEverySigner(t *testing.T) {
	alice, alicePriv := newKey(t)
	bob, _ := newKey(t)

	tx := NewTransaction(types.ZeroPubkey, []byte{1}, Signer(alice), Signer(bob))
	require.NoError(t, tx.Sign(alicePriv))

	_, err := tx.Verify()
	assert.ErrorIs(t, err, errors.ErrMissingSignature)
}

func TestVerifyDetectsTampering(t *testing.T) {
	alice, alicePriv := newKey(t)
	tx := NewTransaction(types.ZeroPubkey, []byte{1, 0, 0, 0, 0, 0, 0, 0, 5}, Signer(alice))
	require.NoError(t, tx.Sign(alicePriv))

	tx.Data[1] = 0xFF
	_, err := tx.Verify()
	assert.ErrorIs(t, err, errors.ErrMissingSignature)

	tx.Data[1] = 0
	tx.Accounts[0].IsSigner = false
	_, err = tx.Verify()
	assert.NoError(t, err, "no signer left to verify")
	assert.NotEqual(t, tx.Message(), NewTransaction(types.ZeroPubkey, tx.Data, Signer(alice)).Message())
}

func TestVerifyRejectsGarbageSignature(t *testing.T) {
	alice, _ := newKey(t)
	tx := NewTransaction(types.ZeroPubkey, nil, Signer(alice))
	tx.Signatures[alice.String()] = "0OIl"

	_, err := tx.Verify()
	assert.ErrorIs(t, err, errors.ErrMissingSignature)
}
