package wallet

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtendedKey(t *testing.T) {
	wallet, err := newTestWallet()
	require.NoError(t, err)

	opts := ExtendedKeyOpts{
		Account: 0,
	}

	xprv, err := wallet.ExtendedPrivateKey(opts)
	require.NoError(t, err)
	assert.NotEmpty(t, xprv)

	xpub, err := wallet.ExtendedPublicKey(opts)
	require.NoError(t, err)
	assert.NotEmpty(t, xpub)
}

func TestFailingExtendedKey(t *testing.T) {
	wallet, err := newTestWallet()
	require.NoError(t, err)

	tests := []struct {
		opts ExtendedKeyOpts
		err  error
	}{
		{
			opts: ExtendedKeyOpts{
				Account: MaxHardenedValue + 1,
			},
			err: ErrInvalidDerivationPathAccount,
		},
	}

	for _, tt := range tests {
		_, err := wallet.ExtendedPrivateKey(tt.opts)
		assert.Equal(t, tt.err, err)
		_, err = wallet.ExtendedPublicKey(tt.opts)
		assert.Equal(t, tt.err, err)
	}
}

func TestDeriveSigningKeyPair(t *testing.T) {
	wallet, err := newTestWallet()
	require.NoError(t, err)

	opts := DeriveSigningKeyPairOpts{
		DerivationPath: "m/84'/0'/0'/0/0",
	}
	prvkey, pubkey, err := wallet.DeriveSigningKeyPair(opts)
	require.NoError(t, err)
	assert.NotNil(t, prvkey)
	assert.NotNil(t, pubkey)

	// BIP84 test vector: pubkey of the first receiving address
	assert.Equal(
		t,
		"0330d54fd0dd420a6e5f8d3624f5f3482cae350f79d5f0753bf5beef9c2d91af3c",
		hex.EncodeToString(pubkey.SerializeCompressed()),
	)
}

func TestFailingDeriveSigningKeyPair(t *testing.T) {
	wallet, err := newTestWallet()
	require.NoError(t, err)

	tests := []struct {
		opts DeriveSigningKeyPairOpts
		err  error
	}{
		{
			opts: DeriveSigningKeyPairOpts{"m/84'/0'/0'/0"},
			err:  ErrInvalidDerivationPathLength,
		},
		{
			opts: DeriveSigningKeyPairOpts{"m/84'/0'/0'/0/0/0"},
			err:  ErrInvalidDerivationPathLength,
		},
		{
			opts: DeriveSigningKeyPairOpts{"m/84'/0'/0/0/0"},
			err:  ErrInvalidDerivationPathAccount,
		},
		{
			opts: DeriveSigningKeyPairOpts{"m/84'/0'/0'/0'/0"},
			err:  ErrInvalidDerivationPath,
		},
	}

	for _, tt := range tests {
		_, _, err := wallet.DeriveSigningKeyPair(tt.opts)
		assert.Equal(t, tt.err, err)
	}
}

// BIP84 test vectors for mnemonic "abandon ... about".
func TestDeriveAddress(t *testing.T) {
	wallet, err := newTestWallet()
	require.NoError(t, err)

	tests := []struct {
		path    string
		address string
	}{
		{
			path:    "m/84'/0'/0'/0/0",
			address: "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu",
		},
		{
			path:    "m/84'/0'/0'/0/1",
			address: "bc1qnjg0jd8228aq7egyzacy8cys3knf9xvrerkf9g",
		},
		{
			path:    "m/84'/0'/0'/1/0",
			address: "bc1q8c6fshw2dlwun7ekn9qwf37cu2rn755upcp6el",
		},
	}

	for _, tt := range tests {
		addr, script, err := wallet.DeriveAddress(DeriveAddressOpts{
			DerivationPath: tt.path,
			Network:        &chaincfg.MainNetParams,
		})
		require.NoError(t, err)
		assert.Equal(t, tt.address, addr)
		assert.Len(t, script, 22)
	}
}

func TestFailingDeriveAddress(t *testing.T) {
	wallet, err := newTestWallet()
	require.NoError(t, err)

	tests := []struct {
		opts DeriveAddressOpts
		err  error
	}{
		{
			opts: DeriveAddressOpts{
				DerivationPath: "",
				Network:        &chaincfg.MainNetParams,
			},
			err: ErrNullDerivationPath,
		},
		{
			opts: DeriveAddressOpts{
				DerivationPath: "m/84'/0'/0'/0/0",
				Network:        nil,
			},
			err: ErrNullNetwork,
		},
	}

	for _, tt := range tests {
		_, _, err := wallet.DeriveAddress(tt.opts)
		assert.Equal(t, tt.err, err)
	}
}
