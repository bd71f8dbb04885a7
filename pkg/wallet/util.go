package wallet

import (
	"math"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/vulpemventures/go-bip39"
)

const (
	// MaxHardenedValue is the max value for hardened indexes of BIP32
	// derivation paths
	MaxHardenedValue = math.MaxUint32 - hdkeychain.HardenedKeyStart
)

func generateMnemonic(entropySize int) ([]string, error) {
	entropy, err := bip39.NewEntropy(entropySize)
	if err != nil {
		return nil, err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, err
	}
	return strings.Split(mnemonic, " "), nil
}

func generateSeedFromMnemonic(mnemonic []string, passphrase string) []byte {
	m := strings.Join(mnemonic, " ")
	return bip39.NewSeed(m, passphrase)
}

func isMnemonicValid(mnemonic []string) bool {
	m := strings.Join(mnemonic, " ")
	return bip39.IsMnemonicValid(m)
}

func generateMasterKey(seed []byte) ([]byte, error) {
	// the extended key is serialized with mainnet version bytes, but this
	// does not prevent deriving children for other networks.
	hdNode, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, err
	}
	return base58.Decode(hdNode.String()), nil
}

func (w *Wallet) masterKeyNode() (*hdkeychain.ExtendedKey, error) {
	return hdkeychain.NewKeyFromString(base58.Encode(w.masterKey))
}

func keyNodeFromString(xkey string) (*hdkeychain.ExtendedKey, error) {
	return hdkeychain.NewKeyFromString(xkey)
}

func hardened(index uint32) uint32 {
	return hdkeychain.HardenedKeyStart + index
}

func payToAddrScript(addr btcutil.Address) ([]byte, error) {
	return txscript.PayToAddrScript(addr)
}

func varIntSerializeSize(val uint64) int {
	// The value is small enough to be represented by itself, so it's
	// just 1 byte.
	if val < 0xfd {
		return 1
	}

	// Discriminant 1 byte plus 2 bytes for the uint16.
	if val <= math.MaxUint16 {
		return 3
	}

	// Discriminant 1 byte plus 4 bytes for the uint32.
	if val <= math.MaxUint32 {
		return 5
	}

	// Discriminant 1 byte plus 8 bytes for the uint64.
	return 9
}
