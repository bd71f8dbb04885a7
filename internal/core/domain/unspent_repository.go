package domain

import (
	"context"

	"github.com/google/uuid"
)

// UnspentRepository is the abstraction for any kind of database intended to
// persist the cached set of Unspents and the sync checkpoint. The cache is
// not security sensitive, it only avoids a full re-sync on every run.
type UnspentRepository interface {
	// GetAllUnspents returns all the stored unspents.
	GetAllUnspents(ctx context.Context) ([]Unspent, error)
	// GetAvailableUnspents returns the unspents spendable right now, ie.
	// neither spent nor locked by an in-flight send.
	GetAvailableUnspents(ctx context.Context) ([]Unspent, error)
	// GetUnspentsForAddress returns the stored unspents of a single address.
	GetUnspentsForAddress(ctx context.Context, address string) ([]Unspent, error)
	// ReplaceUnspentsForAddress atomically swaps the whole set of unspents
	// of an address with the given one.
	ReplaceUnspentsForAddress(
		ctx context.Context, address string, unspents []Unspent,
	) error
	// LockUnspents marks the given unspents as reserved by the send
	// identified by id.
	LockUnspents(ctx context.Context, keys []UnspentKey, id uuid.UUID) error
	// UnlockUnspents releases the given unspents.
	UnlockUnspents(ctx context.Context, keys []UnspentKey) error
	// SpendUnspents marks the given unspents as spent.
	SpendUnspents(ctx context.Context, keys []UnspentKey) error
	// GetSyncCheckpoint returns the chain height of the last full sync, or 0.
	GetSyncCheckpoint(ctx context.Context) (int, error)
	// SetSyncCheckpoint stores the chain height of the last full sync.
	SetSyncCheckpoint(ctx context.Context, height int) error
	// Reset drops the whole cache.
	Reset(ctx context.Context) error
}
