package domain

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/bitcli/bitcli/pkg/wallet"
)

// IsInitialized returns whether the Vault holds an encrypted mnemonic.
func (v *Vault) IsInitialized() bool {
	return v != nil && len(v.EncryptedMnemonic) > 0
}

// Unlock attempts to decrypt the mnemonic with the provided passphrase and
// returns the in-memory wallet derived from it. The caller owns the wallet
// and must Close it before exiting to wipe the secret material.
func (v *Vault) Unlock(passphrase string) (*wallet.Wallet, error) {
	if !v.IsInitialized() {
		return nil, ErrWalletNotInitialized
	}
	if !v.isValidPassphrase(passphrase) {
		return nil, ErrInvalidPassphrase
	}

	mnemonic, err := wallet.Decrypt(wallet.DecryptOpts{
		CypherText: v.EncryptedMnemonic,
		Passphrase: passphrase,
	})
	if err != nil {
		return nil, ErrInvalidPassphrase
	}

	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletFromMnemonicOpts{
		Mnemonic: strings.Split(mnemonic, " "),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorruptState, err)
	}
	return w, nil
}

func (v *Vault) isValidPassphrase(passphrase string) bool {
	return bytes.Equal(v.PassphraseHash, btcutil.Hash160([]byte(passphrase)))
}

// NextExternalAddress returns the receiving address at the current unused
// external index. The index is NOT advanced here: it moves forward only when
// the address is observed as funded on sync or used as an output, so that
// querying never orphans addresses (see MarkAddressesFunded).
func (v *Vault) NextExternalAddress(w *wallet.Wallet) (*AddressInfo, error) {
	return v.deriveAddress(w, wallet.ExternalChain, v.Account.NextExternalIndex)
}

// NextInternalAddress returns the change address at the current unused
// internal index and advances it, since change addresses are consumed by the
// transaction being built.
func (v *Vault) NextInternalAddress(w *wallet.Wallet) (*AddressInfo, error) {
	info, err := v.deriveAddress(w, wallet.InternalChain, v.Account.NextInternalIndex)
	if err != nil {
		return nil, err
	}
	v.Account.NextInternalIndex++
	return info, nil
}

func (v *Vault) deriveAddress(
	w *wallet.Wallet, chain, index uint32,
) (*AddressInfo, error) {
	if w == nil {
		return nil, ErrVaultMustBeUnlocked
	}

	derivationPath := fmt.Sprintf(
		"%s/%d/%d", v.baseDerivationPath().String(), chain, index,
	)
	addr, script, err := w.DeriveAddress(wallet.DeriveAddressOpts{
		DerivationPath: derivationPath,
		Network:        v.NetworkParams(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDerivation, err)
	}

	info := AddressInfo{
		Address:        addr,
		Script:         hex.EncodeToString(script),
		DerivationPath: derivationPath,
		Chain:          chain,
		Index:          index,
	}
	v.AddressInfoByScript[info.Script] = info
	v.Account.DerivationPathByScript[info.Script] = derivationPath

	return &info, nil
}

// TrackAddress derives the address at the given chain and index and caches
// it so that sync watches it. Tracking is idempotent and never moves the
// next unused indexes.
func (v *Vault) TrackAddress(w *wallet.Wallet, chain, index uint32) error {
	_, err := v.deriveAddress(w, chain, index)
	return err
}

// MarkAddressesFunded advances the next unused external index past every
// given address that belongs to the external chain.
func (v *Vault) MarkAddressesFunded(addresses []string) {
	byAddress := map[string]AddressInfo{}
	for _, info := range v.AddressInfoByScript {
		byAddress[info.Address] = info
	}

	for _, addr := range addresses {
		info, ok := byAddress[addr]
		if !ok || info.Chain != wallet.ExternalChain {
			continue
		}
		if info.Index >= v.Account.NextExternalIndex {
			v.Account.NextExternalIndex = info.Index + 1
		}
	}
}

// AllDerivedAddresses returns the info of every address derived so far.
func (v *Vault) AllDerivedAddresses() []AddressInfo {
	addresses := make([]AddressInfo, 0, len(v.AddressInfoByScript))
	for _, info := range v.AddressInfoByScript {
		addresses = append(addresses, info)
	}
	return addresses
}

// DerivationPathByScript returns the map of hex scripts to derivation paths
// needed to sign transactions spending the wallet's unspents.
func (v *Vault) DerivationPathByScript() map[string]string {
	paths := make(map[string]string, len(v.Account.DerivationPathByScript))
	for script, path := range v.Account.DerivationPathByScript {
		paths[script] = path
	}
	return paths
}
