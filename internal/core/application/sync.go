package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bitcli/bitcli/internal/core/domain"
	"github.com/bitcli/bitcli/pkg/explorer"
	"github.com/bitcli/bitcli/pkg/wallet"
)

const syncRetryBaseDelay = 500 * time.Millisecond

// sync refreshes the stored utxo set of every tracked address from the
// explorer and advances the external index past the addresses seen funded.
//
// Addresses are fetched concurrently up to the configured bound, each with
// its own retry budget. An address whose fetch ultimately fails keeps its
// previous snapshot, so a flaky explorer degrades the view instead of
// corrupting it. Only a total failure aborts the operation.
func (s *WalletService) sync(
	ctx context.Context, vault *domain.Vault, w *wallet.Wallet,
) error {
	if err := s.ensureAddressWindow(vault, w); err != nil {
		return err
	}

	addresses := vault.AllDerivedAddresses()

	var (
		mtx         sync.Mutex
		fundedAddrs []string
		failedAddrs []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.syncMaxConcurrency)

	for i := range addresses {
		info := addresses[i]
		g.Go(func() error {
			funded, err := s.syncAddress(gctx, info)
			mtx.Lock()
			defer mtx.Unlock()
			if err != nil {
				log.WithError(err).WithField("address", info.Address).Warn(
					"skipping address, keeping previous unspents",
				)
				failedAddrs = append(failedAddrs, info.Address)
				return nil
			}
			if funded {
				fundedAddrs = append(fundedAddrs, info.Address)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if len(addresses) > 0 && len(failedAddrs) == len(addresses) {
		return fmt.Errorf(
			"%w: could not sync any of the %d tracked addresses",
			domain.ErrNetworkUnavailable, len(addresses),
		)
	}

	vault.MarkAddressesFunded(fundedAddrs)
	if err := s.vaultRepo.UpdateVault(ctx, vault); err != nil {
		return err
	}

	s.updateCheckpoint(ctx)

	return nil
}

// syncAddress fetches the unspents of a single address with bounded retries
// and swaps the stored snapshot with the fetched one. It returns whether the
// address has ever been funded.
func (s *WalletService) syncAddress(
	ctx context.Context, info domain.AddressInfo,
) (bool, error) {
	utxos, err := s.fetchUnspentsWithRetry(ctx, info.Address)
	if err != nil {
		return false, err
	}

	known, err := s.unspentRepo.GetUnspentsForAddress(ctx, info.Address)
	if err != nil {
		return false, err
	}

	if domain.DetectReorg(known, toDomainUnspents(utxos, info)) {
		log.WithField("address", info.Address).Warn(
			"chain reorganization detected, refreshing unspents",
		)
		if utxos, err = s.fetchUnspentsWithRetry(ctx, info.Address); err != nil {
			return false, err
		}
	}

	unspents := toDomainUnspents(utxos, info)
	if err := s.unspentRepo.ReplaceUnspentsForAddress(
		ctx, info.Address, unspents,
	); err != nil {
		return false, err
	}

	return len(unspents) > 0 || len(known) > 0, nil
}

func (s *WalletService) fetchUnspentsWithRetry(
	ctx context.Context, address string,
) ([]explorer.Utxo, error) {
	var lastErr error
	for attempt := 0; attempt < s.syncMaxRetries; attempt++ {
		if attempt > 0 {
			delay := syncRetryBaseDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		reqCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
		utxos, err := s.explorerSvc.GetUnspents(reqCtx, address)
		cancel()
		if err == nil {
			return utxos, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// updateCheckpoint stores the current chain height. Best effort, a failure
// only costs a deeper reconciliation on the next run.
func (s *WalletService) updateCheckpoint(ctx context.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	height, err := s.explorerSvc.GetBlockHeight(reqCtx)
	if err != nil {
		log.WithError(err).Debug("could not fetch chain tip")
		return
	}
	if err := s.unspentRepo.SetSyncCheckpoint(ctx, height); err != nil {
		log.WithError(err).Debug("could not store sync checkpoint")
	}
}

func toDomainUnspents(
	utxos []explorer.Utxo, info domain.AddressInfo,
) []domain.Unspent {
	unspents := make([]domain.Unspent, 0, len(utxos))
	for _, u := range utxos {
		unspents = append(unspents, domain.Unspent{
			TxID:               u.Hash(),
			VOut:               u.Index(),
			Value:              u.Value(),
			ScriptPubKey:       u.Script(),
			Address:            info.Address,
			Confirmed:          u.IsConfirmed(),
			ConfirmationHeight: u.ConfirmationHeight(),
		})
	}
	return unspents
}
