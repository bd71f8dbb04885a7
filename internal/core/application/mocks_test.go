package application_test

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/bitcli/bitcli/internal/core/domain"
	"github.com/bitcli/bitcli/pkg/explorer"
)

/*
 * Explorer
 */
type mockExplorer struct {
	mock.Mock
}

func (m *mockExplorer) GetUnspents(
	ctx context.Context, addr string,
) ([]explorer.Utxo, error) {
	args := m.Called(ctx, addr)

	var res []explorer.Utxo
	if a := args.Get(0); a != nil {
		res = a.([]explorer.Utxo)
	}
	return res, args.Error(1)
}

func (m *mockExplorer) GetFeeRate(
	ctx context.Context, targetBlocks int,
) (uint64, error) {
	args := m.Called(ctx, targetBlocks)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockExplorer) BroadcastTransaction(
	ctx context.Context, txHex string,
) (string, error) {
	args := m.Called(ctx, txHex)
	return args.String(0), args.Error(1)
}

func (m *mockExplorer) GetBlockHeight(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

/*
 * In-memory repositories
 */
type inmemoryVaultRepo struct {
	vault *domain.Vault
	lock  sync.Mutex
}

func newInmemoryVaultRepo() *inmemoryVaultRepo {
	return &inmemoryVaultRepo{}
}

func (r *inmemoryVaultRepo) GetVault(_ context.Context) (*domain.Vault, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.vault == nil {
		return nil, domain.ErrWalletNotInitialized
	}
	return r.vault, nil
}

func (r *inmemoryVaultRepo) CreateVault(
	_ context.Context, vault *domain.Vault,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.vault != nil {
		return domain.ErrWalletAlreadyInitialized
	}
	r.vault = vault
	return nil
}

func (r *inmemoryVaultRepo) UpdateVault(
	_ context.Context, vault *domain.Vault,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.vault = vault
	return nil
}

func (r *inmemoryVaultRepo) ResetVault(_ context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.vault = nil
	return nil
}

type inmemoryUnspentRepo struct {
	unspents   map[domain.UnspentKey]domain.Unspent
	checkpoint int
	lock       sync.Mutex
}

func newInmemoryUnspentRepo() *inmemoryUnspentRepo {
	return &inmemoryUnspentRepo{
		unspents: map[domain.UnspentKey]domain.Unspent{},
	}
}

func (r *inmemoryUnspentRepo) GetAllUnspents(
	_ context.Context,
) ([]domain.Unspent, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.filter(func(domain.Unspent) bool { return true }), nil
}

func (r *inmemoryUnspentRepo) GetAvailableUnspents(
	_ context.Context,
) ([]domain.Unspent, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.filter(func(u domain.Unspent) bool {
		return !u.Spent && !u.Locked
	}), nil
}

func (r *inmemoryUnspentRepo) GetUnspentsForAddress(
	_ context.Context, address string,
) ([]domain.Unspent, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.filter(func(u domain.Unspent) bool {
		return u.Address == address
	}), nil
}

func (r *inmemoryUnspentRepo) ReplaceUnspentsForAddress(
	_ context.Context, address string, unspents []domain.Unspent,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	known := map[domain.UnspentKey]domain.Unspent{}
	for key, u := range r.unspents {
		if u.Address == address {
			known[key] = u
			delete(r.unspents, key)
		}
	}
	for _, u := range unspents {
		if old, ok := known[u.Key()]; ok {
			u.Spent = old.Spent
			u.Locked = old.Locked
			u.LockedBy = old.LockedBy
		}
		r.unspents[u.Key()] = u
	}
	return nil
}

func (r *inmemoryUnspentRepo) LockUnspents(
	_ context.Context, keys []domain.UnspentKey, id uuid.UUID,
) error {
	return r.update(keys, func(u *domain.Unspent) {
		u.Lock(&id)
	})
}

func (r *inmemoryUnspentRepo) UnlockUnspents(
	_ context.Context, keys []domain.UnspentKey,
) error {
	return r.update(keys, func(u *domain.Unspent) {
		u.Unlock()
	})
}

func (r *inmemoryUnspentRepo) SpendUnspents(
	_ context.Context, keys []domain.UnspentKey,
) error {
	return r.update(keys, func(u *domain.Unspent) {
		u.Spent = true
		u.Unlock()
	})
}

func (r *inmemoryUnspentRepo) GetSyncCheckpoint(_ context.Context) (int, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.checkpoint, nil
}

func (r *inmemoryUnspentRepo) SetSyncCheckpoint(
	_ context.Context, height int,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.checkpoint = height
	return nil
}

func (r *inmemoryUnspentRepo) Reset(_ context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.unspents = map[domain.UnspentKey]domain.Unspent{}
	r.checkpoint = 0
	return nil
}

func (r *inmemoryUnspentRepo) filter(
	keep func(domain.Unspent) bool,
) []domain.Unspent {
	unspents := make([]domain.Unspent, 0, len(r.unspents))
	for _, u := range r.unspents {
		if keep(u) {
			unspents = append(unspents, u)
		}
	}
	return unspents
}

func (r *inmemoryUnspentRepo) update(
	keys []domain.UnspentKey, apply func(*domain.Unspent),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, key := range keys {
		u, ok := r.unspents[key]
		if !ok {
			return domain.ErrUnspentNotFound
		}
		apply(&u)
		r.unspents[key] = u
	}
	return nil
}
