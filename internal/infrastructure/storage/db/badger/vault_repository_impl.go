package dbbadger

import (
	"context"
	"errors"
	"fmt"

	"github.com/timshannon/badgerhold/v4"

	"github.com/bitcli/bitcli/internal/core/domain"
)

const vaultKey = "vault"

type vaultRepositoryImpl struct {
	db *DbManager
}

// NewVaultRepositoryImpl returns a badger implementation of the
// domain.VaultRepository interface.
func NewVaultRepositoryImpl(db *DbManager) domain.VaultRepository {
	return vaultRepositoryImpl{db: db}
}

func (r vaultRepositoryImpl) GetVault(
	_ context.Context,
) (*domain.Vault, error) {
	var vault domain.Vault
	if err := r.db.Store.Get(vaultKey, &vault); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrWalletNotInitialized
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrCorruptState, err)
	}

	if !vault.IsInitialized() || vault.Account == nil {
		return nil, fmt.Errorf(
			"%w: vault record is missing mandatory fields", domain.ErrCorruptState,
		)
	}

	return &vault, nil
}

func (r vaultRepositoryImpl) CreateVault(
	ctx context.Context, vault *domain.Vault,
) error {
	if _, err := r.GetVault(ctx); err == nil {
		return domain.ErrWalletAlreadyInitialized
	} else if !errors.Is(err, domain.ErrWalletNotInitialized) {
		return err
	}

	return r.db.Store.Upsert(vaultKey, vault)
}

func (r vaultRepositoryImpl) UpdateVault(
	_ context.Context, vault *domain.Vault,
) error {
	return r.db.Store.Upsert(vaultKey, vault)
}

func (r vaultRepositoryImpl) ResetVault(_ context.Context) error {
	err := r.db.Store.Delete(vaultKey, &domain.Vault{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil
	}
	return err
}
