package explorer

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New(
		"total utxo amount does not cover target amount plus fee",
	)
	// ErrNetworkUnavailable ...
	ErrNetworkUnavailable = errors.New("explorer is unreachable")
)

// BroadcastError is returned when the explorer refuses a transaction at
// broadcast time. Reason carries the provider's message verbatim (eg.
// insufficient fee, double spend).
type BroadcastError struct {
	Reason string
}

func (e *BroadcastError) Error() string {
	return fmt.Sprintf("transaction rejected by explorer: %s", e.Reason)
}

// Utxo represents an unspent transaction output tracked by the wallet.
type Utxo interface {
	Hash() string
	Index() uint32
	Value() uint64
	Script() []byte
	Address() string
	IsConfirmed() bool
	ConfirmationHeight() int
}

// Service is the representation of an explorer that allows to fetch utxo
// data from the blockchain, to retrieve a recommended fee rate, and to
// broadcast raw transactions.
type Service interface {
	// GetUnspents fetches the utxos currently locked to the given address.
	GetUnspents(ctx context.Context, addr string) ([]Utxo, error)
	// GetFeeRate returns the recommended fee rate in sats per virtual byte
	// for confirmation within the given number of blocks.
	GetFeeRate(ctx context.Context, targetBlocks int) (uint64, error)
	// BroadcastTransaction attempts to add the given tx in hex format to the
	// mempool and returns its tx hash.
	BroadcastTransaction(ctx context.Context, txHex string) (txid string, err error)
	// GetBlockHeight returns the number of blocks of the blockchain.
	GetBlockHeight(ctx context.Context) (int, error)
}
