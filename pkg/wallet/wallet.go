package wallet

import (
	"errors"
	"strings"
)

var (
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params are null")
	// ErrNullMnemonic ...
	ErrNullMnemonic = errors.New("mnemonic is null")
	// ErrNullMasterKey ...
	ErrNullMasterKey = errors.New("master key is null")
	// ErrNullPassphrase ...
	ErrNullPassphrase = errors.New("passphrase must not be null")
	// ErrNullPlainText ...
	ErrNullPlainText = errors.New("text to encrypt must not be null")
	// ErrNullCypherText ...
	ErrNullCypherText = errors.New("cypher to decrypt must not be null")
	// ErrNullDerivationPath ...
	ErrNullDerivationPath = errors.New("derivation path must not be null")
	// ErrNullOutputScript ...
	ErrNullOutputScript = errors.New("output script must not be null")
	// ErrNullUnsignedTx ...
	ErrNullUnsignedTx = errors.New("unsigned transaction must not be null")

	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrInvalidCypherText ...
	ErrInvalidCypherText = errors.New("cypher must be in base64 format")
	// ErrInvalidDerivationPath ...
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
	// ErrInvalidDerivationPathLength ...
	ErrInvalidDerivationPathLength = errors.New(
		"derivation path must be an absolute path in the form " +
			"\"m/purpose'/coin'/account'/chain/index\"",
	)
	// ErrInvalidDerivationPathAccount ...
	ErrInvalidDerivationPathAccount = errors.New(
		"derivation path's first three elems must be hardened (suffix \"'\")",
	)
	// ErrMalformedDerivationPath ...
	ErrMalformedDerivationPath = errors.New(
		"path must not start or end with a '/' and " +
			"can optionally start with 'm/' for absolute paths",
	)
	// ErrInvalidOutputAddress ...
	ErrInvalidOutputAddress = errors.New("output address must be a valid address")
	// ErrInvalidChangeAddress ...
	ErrInvalidChangeAddress = errors.New("change address must be a valid address")

	// ErrEmptyDerivationPaths ...
	ErrEmptyDerivationPaths = errors.New("derivation path list must not be empty")
	// ErrEmptyUnspents ...
	ErrEmptyUnspents = errors.New("unspent list must not be empty")
	// ErrMissingDerivationPath ...
	ErrMissingDerivationPath = errors.New(
		"derivation path not found for input script",
	)

	// ErrZeroOutputAmount ...
	ErrZeroOutputAmount = errors.New("output amount must not be zero")
	// ErrZeroFeeRate ...
	ErrZeroFeeRate = errors.New("fee rate must not be zero")
)

// Wallet data structure allows to create a new wallet from a mnemonic,
// derive signing key pairs and segwit addresses, and build and sign
// transactions spending outputs it owns.
type Wallet struct {
	mnemonic  []string
	seed      []byte
	masterKey []byte
}

// NewWalletOpts is the struct given to the NewWallet method
type NewWalletOpts struct {
	EntropySize int
}

func (o NewWalletOpts) validate() error {
	if o.EntropySize < 128 || o.EntropySize > 256 || o.EntropySize%32 != 0 {
		return ErrInvalidEntropySize
	}
	return nil
}

// NewWallet creates a new wallet holding a randomly generated mnemonic and
// the seed and master key derived from it.
func NewWallet(opts NewWalletOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	mnemonic, err := generateMnemonic(opts.EntropySize)
	if err != nil {
		return nil, err
	}

	return NewWalletFromMnemonic(NewWalletFromMnemonicOpts{
		Mnemonic: mnemonic,
	})
}

// NewWalletFromMnemonicOpts is the struct given to the NewWalletFromMnemonic method
type NewWalletFromMnemonicOpts struct {
	Mnemonic   []string
	Passphrase string
}

func (o NewWalletFromMnemonicOpts) validate() error {
	if len(o.Mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if !isMnemonicValid(o.Mnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

// NewWalletFromMnemonic generates the seed and master key from the provided
// mnemonic and optional BIP39 passphrase. Same inputs always yield the same
// wallet.
func NewWalletFromMnemonic(opts NewWalletFromMnemonicOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	seed := generateSeedFromMnemonic(opts.Mnemonic, opts.Passphrase)
	masterKey, err := generateMasterKey(seed)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		mnemonic:  opts.Mnemonic,
		seed:      seed,
		masterKey: masterKey,
	}, nil
}

func (w *Wallet) validate() error {
	if len(w.masterKey) <= 0 {
		return ErrNullMasterKey
	}
	if len(w.mnemonic) <= 0 {
		return ErrNullMnemonic
	}
	if !isMnemonicValid(w.mnemonic) {
		return ErrInvalidMnemonic
	}
	return nil
}

// Mnemonic is the getter for the wallet's mnemonic in plain text
func (w *Wallet) Mnemonic() ([]string, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	return w.mnemonic, nil
}

// MnemonicString returns the mnemonic joined as a single phrase
func (w *Wallet) MnemonicString() (string, error) {
	mnemonic, err := w.Mnemonic()
	if err != nil {
		return "", err
	}
	return strings.Join(mnemonic, " "), nil
}

// Close wipes the wallet's secret material from memory. The wallet must not
// be used afterwards.
func (w *Wallet) Close() {
	for i := range w.seed {
		w.seed[i] = 0
	}
	for i := range w.masterKey {
		w.masterKey[i] = 0
	}
	w.seed = nil
	w.masterKey = nil
	w.mnemonic = nil
}
