package dbbadger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitcli/bitcli/internal/core/domain"
)

func newTestUnspent(txid string, vout uint32, address string) domain.Unspent {
	return domain.Unspent{
		TxID:               txid,
		VOut:               vout,
		Value:              10000,
		ScriptPubKey:       []byte{0x00, 0x14},
		Address:            address,
		Confirmed:          true,
		ConfirmationHeight: 100,
	}
}

func TestUnspentRepository(t *testing.T) {
	repo := NewUnspentRepositoryImpl(newTestDb(t))
	ctx := context.Background()

	unspents, err := repo.GetAllUnspents(ctx)
	require.NoError(t, err)
	assert.Empty(t, unspents)

	require.NoError(t, repo.ReplaceUnspentsForAddress(ctx, "addr1", []domain.Unspent{
		newTestUnspent("aa", 0, "addr1"),
		newTestUnspent("bb", 1, "addr1"),
	}))
	require.NoError(t, repo.ReplaceUnspentsForAddress(ctx, "addr2", []domain.Unspent{
		newTestUnspent("cc", 0, "addr2"),
	}))

	unspents, err = repo.GetAllUnspents(ctx)
	require.NoError(t, err)
	assert.Len(t, unspents, 3)

	unspents, err = repo.GetUnspentsForAddress(ctx, "addr1")
	require.NoError(t, err)
	assert.Len(t, unspents, 2)

	available, err := repo.GetAvailableUnspents(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 3)
}

func TestLockUnlockSpendUnspents(t *testing.T) {
	repo := NewUnspentRepositoryImpl(newTestDb(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceUnspentsForAddress(ctx, "addr1", []domain.Unspent{
		newTestUnspent("aa", 0, "addr1"),
		newTestUnspent("bb", 1, "addr1"),
	}))

	keys := []domain.UnspentKey{{TxID: "aa", VOut: 0}}
	id := uuid.New()

	require.NoError(t, repo.LockUnspents(ctx, keys, id))
	available, err := repo.GetAvailableUnspents(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 1)

	require.NoError(t, repo.UnlockUnspents(ctx, keys))
	available, err = repo.GetAvailableUnspents(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 2)

	require.NoError(t, repo.SpendUnspents(ctx, keys))
	available, err = repo.GetAvailableUnspents(ctx)
	require.NoError(t, err)
	assert.Len(t, available, 1)

	// spent unspents are still stored for balance bookkeeping
	all, err := repo.GetAllUnspents(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	err = repo.LockUnspents(ctx, []domain.UnspentKey{{TxID: "zz", VOut: 9}}, id)
	assert.Equal(t, domain.ErrUnspentNotFound, err)
}

func TestReplaceUnspentsCarriesOverMarkers(t *testing.T) {
	repo := NewUnspentRepositoryImpl(newTestDb(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceUnspentsForAddress(ctx, "addr1", []domain.Unspent{
		newTestUnspent("aa", 0, "addr1"),
	}))
	require.NoError(t, repo.SpendUnspents(ctx, []domain.UnspentKey{{TxID: "aa", VOut: 0}}))

	// the explorer still reports the outpoint while the spending tx is in
	// the mempool, the local spent marker must survive the swap
	require.NoError(t, repo.ReplaceUnspentsForAddress(ctx, "addr1", []domain.Unspent{
		newTestUnspent("aa", 0, "addr1"),
	}))

	available, err := repo.GetAvailableUnspents(ctx)
	require.NoError(t, err)
	assert.Empty(t, available)

	all, err := repo.GetAllUnspents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Spent)
}

func TestSyncCheckpoint(t *testing.T) {
	repo := NewUnspentRepositoryImpl(newTestDb(t))
	ctx := context.Background()

	height, err := repo.GetSyncCheckpoint(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, height)

	require.NoError(t, repo.SetSyncCheckpoint(ctx, 800000))
	height, err = repo.GetSyncCheckpoint(ctx)
	require.NoError(t, err)
	assert.Equal(t, 800000, height)
}

func TestUnspentsReset(t *testing.T) {
	repo := NewUnspentRepositoryImpl(newTestDb(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceUnspentsForAddress(ctx, "addr1", []domain.Unspent{
		newTestUnspent("aa", 0, "addr1"),
	}))
	require.NoError(t, repo.SetSyncCheckpoint(ctx, 800000))

	require.NoError(t, repo.Reset(ctx))

	all, err := repo.GetAllUnspents(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	height, err := repo.GetSyncCheckpoint(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, height)
}
