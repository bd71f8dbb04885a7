package domain

import (
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/bitcli/bitcli/pkg/wallet"
)

const (
	// VaultVersion is the current version of the persisted vault format
	VaultVersion = 1

	// NetworkMainnet ...
	NetworkMainnet = "mainnet"
	// NetworkTestnet ...
	NetworkTestnet = "testnet"

	// AccountIndex is the only BIP84 account managed by the wallet
	AccountIndex = 0
)

// Vault is the persisted, single authoritative record of the wallet: the
// encrypted mnemonic, the network it operates on and the derivation
// bookkeeping of the addresses handed out so far. The secret material is
// stored only in encrypted form; everything else is not security sensitive.
type Vault struct {
	Version             int
	EncryptedMnemonic   string
	PassphraseHash      []byte
	Network             string
	Account             *Account
	AddressInfoByScript map[string]AddressInfo
}

// Account holds the derivation bookkeeping for the wallet's BIP84 account:
// the next unused index per chain and the path of every derived script.
type Account struct {
	AccountIndex           int
	NextExternalIndex      uint32
	NextInternalIndex      uint32
	DerivationPathByScript map[string]string
}

// AddressInfo holds the info of an address derived by the wallet.
type AddressInfo struct {
	Address        string
	Script         string
	DerivationPath string
	Chain          uint32
	Index          uint32
}

// NewVault encrypts the provided mnemonic with the passphrase and returns a
// new Vault initialized with the encrypted mnemonic, the hash of the
// passphrase and empty derivation bookkeeping for the given network.
func NewVault(mnemonic []string, passphrase, network string) (*Vault, error) {
	if len(mnemonic) <= 0 || len(passphrase) <= 0 {
		return nil, ErrNullMnemonicOrPassphrase
	}
	if network != NetworkMainnet && network != NetworkTestnet {
		return nil, ErrInvalidNetwork
	}
	if _, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: mnemonic,
	}); err != nil {
		return nil, ErrInvalidMnemonic
	}

	encryptedMnemonic, err := wallet.Encrypt(wallet.EncryptOpts{
		PlainText:  strings.Join(mnemonic, " "),
		Passphrase: passphrase,
	})
	if err != nil {
		return nil, err
	}

	return &Vault{
		Version:           VaultVersion,
		EncryptedMnemonic: encryptedMnemonic,
		PassphraseHash:    btcutil.Hash160([]byte(passphrase)),
		Network:           network,
		Account: &Account{
			AccountIndex:           AccountIndex,
			DerivationPathByScript: map[string]string{},
		},
		AddressInfoByScript: map[string]AddressInfo{},
	}, nil
}

// NetworkParams returns the chain parameters of the vault's network.
func (v *Vault) NetworkParams() *chaincfg.Params {
	if v.Network == NetworkTestnet {
		return &chaincfg.TestNet3Params
	}
	return &chaincfg.MainNetParams
}

func (v *Vault) baseDerivationPath() wallet.DerivationPath {
	if v.Network == NetworkTestnet {
		return wallet.TestnetBaseDerivationPath
	}
	return wallet.DefaultBaseDerivationPath
}
