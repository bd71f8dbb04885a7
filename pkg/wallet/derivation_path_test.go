package wallet

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDerivationPath(t *testing.T) {
	tests := []struct {
		strPath string
		path    DerivationPath
	}{
		{
			strPath: "m/84'/0'/0'/0/0",
			path: DerivationPath{
				hdkeychain.HardenedKeyStart + 84,
				hdkeychain.HardenedKeyStart,
				hdkeychain.HardenedKeyStart,
				0, 0,
			},
		},
		{
			strPath: "84'/1'/0'/1/42",
			path: DerivationPath{
				hdkeychain.HardenedKeyStart + 84,
				hdkeychain.HardenedKeyStart + 1,
				hdkeychain.HardenedKeyStart,
				1, 42,
			},
		},
	}

	for _, tt := range tests {
		path, err := ParseDerivationPath(tt.strPath)
		require.NoError(t, err)
		assert.Equal(t, tt.path, path)
	}
}

func TestDerivationPathString(t *testing.T) {
	path, err := ParseDerivationPath("m/84'/0'/0'/1/7")
	require.NoError(t, err)
	assert.Equal(t, "m/84'/0'/0'/1/7", path.String())

	assert.Equal(t, "", DerivationPath{}.String())
}

func TestFailingParseDerivationPath(t *testing.T) {
	tests := []struct {
		strPath string
		err     error
	}{
		{
			strPath: "",
			err:     ErrNullDerivationPath,
		},
		{
			strPath: "m/",
			err:     ErrMalformedDerivationPath,
		},
		{
			strPath: "/84'/0'/0'",
			err:     ErrMalformedDerivationPath,
		},
		{
			strPath: "m/84'/0'/0'/",
			err:     ErrMalformedDerivationPath,
		},
		{
			strPath: "m",
			err:     ErrMalformedDerivationPath,
		},
	}

	for _, tt := range tests {
		_, err := ParseDerivationPath(tt.strPath)
		assert.Equal(t, tt.err, err)
	}
}
