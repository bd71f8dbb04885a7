package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// BIP39/BIP84 test vector mnemonic.
var testMnemonic = strings.Split(
	"abandon abandon abandon abandon abandon abandon "+
		"abandon abandon abandon abandon abandon about",
	" ",
)

func newTestWallet() (*Wallet, error) {
	return NewWalletFromMnemonic(NewWalletFromMnemonicOpts{
		Mnemonic: testMnemonic,
	})
}

func TestNewWallet(t *testing.T) {
	wallet, err := NewWallet(NewWalletOpts{EntropySize: 128})
	require.NoError(t, err)

	mnemonic, err := wallet.Mnemonic()
	require.NoError(t, err)
	assert.Len(t, mnemonic, 12)
	assert.True(t, IsMnemonicValid(mnemonic))

	phrase, err := wallet.MnemonicString()
	require.NoError(t, err)
	assert.Equal(t, strings.Join(mnemonic, " "), phrase)
}

func TestNewWalletFromMnemonicIsDeterministic(t *testing.T) {
	first, err := newTestWallet()
	require.NoError(t, err)
	second, err := newTestWallet()
	require.NoError(t, err)

	assert.Equal(t, first.seed, second.seed)
	assert.Equal(t, first.masterKey, second.masterKey)
}

func TestNewWalletFromMnemonicWithPassphrase(t *testing.T) {
	plain, err := newTestWallet()
	require.NoError(t, err)

	withPassphrase, err := NewWalletFromMnemonic(NewWalletFromMnemonicOpts{
		Mnemonic:   testMnemonic,
		Passphrase: "TREZOR",
	})
	require.NoError(t, err)

	assert.NotEqual(t, plain.seed, withPassphrase.seed)
}

func TestFailingNewWallet(t *testing.T) {
	tests := []struct {
		opts NewWalletOpts
		err  error
	}{
		{
			opts: NewWalletOpts{EntropySize: 0},
			err:  ErrInvalidEntropySize,
		},
		{
			opts: NewWalletOpts{EntropySize: 130},
			err:  ErrInvalidEntropySize,
		},
		{
			opts: NewWalletOpts{EntropySize: 288},
			err:  ErrInvalidEntropySize,
		},
	}

	for _, tt := range tests {
		_, err := NewWallet(tt.opts)
		assert.Equal(t, tt.err, err)
	}
}

func TestFailingNewWalletFromMnemonic(t *testing.T) {
	tests := []struct {
		opts NewWalletFromMnemonicOpts
		err  error
	}{
		{
			opts: NewWalletFromMnemonicOpts{Mnemonic: nil},
			err:  ErrNullMnemonic,
		},
		{
			opts: NewWalletFromMnemonicOpts{
				Mnemonic: []string{"not", "a", "valid", "mnemonic"},
			},
			err: ErrInvalidMnemonic,
		},
	}

	for _, tt := range tests {
		_, err := NewWalletFromMnemonic(tt.opts)
		assert.Equal(t, tt.err, err)
	}
}

func TestCloseWipesSecrets(t *testing.T) {
	wallet, err := newTestWallet()
	require.NoError(t, err)

	wallet.Close()

	assert.Nil(t, wallet.seed)
	assert.Nil(t, wallet.masterKey)
	_, err = wallet.Mnemonic()
	assert.Error(t, err)
}

func TestNewMnemonic(t *testing.T) {
	mnemonic, err := NewMnemonic(NewMnemonicOpts{})
	require.NoError(t, err)
	assert.Len(t, mnemonic, 12)
	assert.True(t, IsMnemonicValid(mnemonic))

	mnemonic, err = NewMnemonic(NewMnemonicOpts{EntropySize: 256})
	require.NoError(t, err)
	assert.Len(t, mnemonic, 24)
	assert.True(t, IsMnemonicValid(mnemonic))
}

func TestFailingNewMnemonic(t *testing.T) {
	tests := []struct {
		opts NewMnemonicOpts
		err  error
	}{
		{
			opts: NewMnemonicOpts{EntropySize: -128},
			err:  ErrInvalidEntropySize,
		},
		{
			opts: NewMnemonicOpts{EntropySize: 100},
			err:  ErrInvalidEntropySize,
		},
	}

	for _, tt := range tests {
		_, err := NewMnemonic(tt.opts)
		assert.Equal(t, tt.err, err)
	}
}

func TestIsMnemonicValid(t *testing.T) {
	assert.True(t, IsMnemonicValid(testMnemonic))
	// tampered checksum
	tampered := append([]string{}, testMnemonic...)
	tampered[11] = "abandon"
	assert.False(t, IsMnemonicValid(tampered))
	assert.False(t, IsMnemonicValid(nil))
}
