package wallet

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// ExtendedKeyOpts is the struct given to
// ExtendedPrivateKey and ExtendedPublicKey methods
type ExtendedKeyOpts struct {
	Account uint32
}

func (o ExtendedKeyOpts) validate() error {
	if o.Account > MaxHardenedValue {
		return ErrInvalidDerivationPathAccount
	}
	return nil
}

// ExtendedPrivateKey returns the extended private key in base58 format
// for the provided account index
func (w *Wallet) ExtendedPrivateKey(opts ExtendedKeyOpts) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}
	if err := w.validate(); err != nil {
		return "", err
	}

	hdNode, err := w.masterKeyNode()
	if err != nil {
		return "", err
	}

	for _, step := range append(
		DerivationPath{}, DefaultBaseDerivationPath[:2]...,
	) {
		hdNode, err = hdNode.Derive(step)
		if err != nil {
			return "", err
		}
	}

	xprv, err := hdNode.Derive(hardened(opts.Account))
	if err != nil {
		return "", err
	}

	return xprv.String(), nil
}

// ExtendedPublicKey returns the extended public key in base58 format
// for the provided account index
func (w *Wallet) ExtendedPublicKey(opts ExtendedKeyOpts) (string, error) {
	xprvStr, err := w.ExtendedPrivateKey(opts)
	if err != nil {
		return "", err
	}

	xprv, err := keyNodeFromString(xprvStr)
	if err != nil {
		return "", err
	}
	xpub, err := xprv.Neuter()
	if err != nil {
		return "", err
	}
	return xpub.String(), nil
}

// DeriveSigningKeyPairOpts is the struct given to DeriveSigningKeyPair method
type DeriveSigningKeyPairOpts struct {
	DerivationPath string
}

func (o DeriveSigningKeyPairOpts) validate() error {
	derivationPath, err := ParseDerivationPath(o.DerivationPath)
	if err != nil {
		return err
	}

	return checkDerivationPath(derivationPath)
}

// DeriveSigningKeyPair derives the key pair at the provided derivation path.
// The derivation is deterministic, the same path always yields the same pair.
func (w *Wallet) DeriveSigningKeyPair(opts DeriveSigningKeyPairOpts) (
	*btcec.PrivateKey,
	*btcec.PublicKey,
	error,
) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	if err := w.validate(); err != nil {
		return nil, nil, err
	}

	hdNode, err := w.masterKeyNode()
	if err != nil {
		return nil, nil, err
	}

	derivationPath, _ := ParseDerivationPath(opts.DerivationPath)
	for _, step := range derivationPath {
		hdNode, err = hdNode.Derive(step)
		if err != nil {
			return nil, nil, err
		}
	}

	privateKey, err := hdNode.ECPrivKey()
	if err != nil {
		return nil, nil, err
	}
	publicKey, err := hdNode.ECPubKey()
	if err != nil {
		return nil, nil, err
	}

	return privateKey, publicKey, nil
}

// DeriveAddressOpts is the struct given to DeriveAddress method
type DeriveAddressOpts struct {
	DerivationPath string
	Network        *chaincfg.Params
}

func (o DeriveAddressOpts) validate() error {
	derivationPath, err := ParseDerivationPath(o.DerivationPath)
	if err != nil {
		return err
	}

	if err := checkDerivationPath(derivationPath); err != nil {
		return err
	}

	if o.Network == nil {
		return ErrNullNetwork
	}

	return nil
}

// DeriveAddress derives the pubkey at the given path and encodes it as a
// native segwit (P2WPKH, bech32) address for the given network. It returns
// the address along with its output script.
func (w *Wallet) DeriveAddress(opts DeriveAddressOpts) (string, []byte, error) {
	if err := opts.validate(); err != nil {
		return "", nil, err
	}
	if err := w.validate(); err != nil {
		return "", nil, err
	}

	_, pubkey, err := w.DeriveSigningKeyPair(DeriveSigningKeyPairOpts{
		DerivationPath: opts.DerivationPath,
	})
	if err != nil {
		return "", nil, err
	}

	return p2wpkhFromPubKey(pubkey, opts.Network)
}

func p2wpkhFromPubKey(
	pubkey *btcec.PublicKey, net *chaincfg.Params,
) (string, []byte, error) {
	witnessProg := btcutil.Hash160(pubkey.SerializeCompressed())
	addr, err := btcutil.NewAddressWitnessPubKeyHash(witnessProg, net)
	if err != nil {
		return "", nil, err
	}
	script, err := payToAddrScript(addr)
	if err != nil {
		return "", nil, err
	}
	return addr.EncodeAddress(), script, nil
}
