package domain

import "context"

// VaultRepository is the abstraction for any kind of database intended to
// persist the Vault.
type VaultRepository interface {
	// GetVault returns the stored Vault, or ErrWalletNotInitialized if no
	// vault has been created yet.
	GetVault(ctx context.Context) (*Vault, error)
	// CreateVault stores a brand new Vault, or returns
	// ErrWalletAlreadyInitialized if one exists.
	CreateVault(ctx context.Context, vault *Vault) error
	// UpdateVault replaces the stored Vault.
	UpdateVault(ctx context.Context, vault *Vault) error
	// ResetVault irreversibly deletes the stored Vault.
	ResetVault(ctx context.Context) error
}
