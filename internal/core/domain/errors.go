package domain

import "errors"

var (
	// ErrWalletNotInitialized is thrown when loading state before a wallet
	// has been created or after a reset
	ErrWalletNotInitialized = errors.New("wallet is not initialized")
	// ErrWalletAlreadyInitialized ...
	ErrWalletAlreadyInitialized = errors.New("wallet is already initialized")
	// ErrInvalidPassphrase is thrown when the unlock secret does not decrypt
	// the persisted seed
	ErrInvalidPassphrase = errors.New("passphrase is not valid")
	// ErrVaultMustBeUnlocked is thrown when trying to make an operation that
	// requires the vault to be unlocked
	ErrVaultMustBeUnlocked = errors.New(
		"vault must be unlocked to perform this operation",
	)
	// ErrNullMnemonicOrPassphrase ...
	ErrNullMnemonicOrPassphrase = errors.New(
		"mnemonic and/or passphrase must not be null",
	)
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address is not valid for the network")
	// ErrInvalidNetwork ...
	ErrInvalidNetwork = errors.New("network must be either mainnet or testnet")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New(
		"balance does not cover the requested amount plus fee",
	)
	// ErrDerivation is thrown when an owning key cannot be re-derived for a
	// tracked address, meaning the persisted bookkeeping is corrupted
	ErrDerivation = errors.New("could not re-derive key for tracked address")
	// ErrCorruptState is thrown when the persisted wallet state cannot be
	// decoded
	ErrCorruptState = errors.New("persisted wallet state is corrupted")
	// ErrConcurrentAccess is thrown when the wallet store is already locked
	// by another process
	ErrConcurrentAccess = errors.New(
		"wallet store is locked by another process",
	)
	// ErrNetworkUnavailable is thrown when the explorer cannot be reached
	// after all retries
	ErrNetworkUnavailable = errors.New("chain data source is unreachable")
	// ErrUnspentNotFound ...
	ErrUnspentNotFound = errors.New("unspent not found")
)
