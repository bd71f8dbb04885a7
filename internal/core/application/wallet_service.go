package application

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/bitcli/bitcli/internal/core/domain"
	"github.com/bitcli/bitcli/pkg/explorer"
	"github.com/bitcli/bitcli/pkg/wallet"
)

// AddressGapLimit is how many addresses beyond the last known used index are
// derived and watched on every sync, so that restoring a mnemonic on a fresh
// wallet re-discovers its funded addresses.
const AddressGapLimit = 20

// WalletService is the application layer of the wallet engine. Every
// operation is a single load → act → persist cycle over the injected
// repositories, with the explorer as the only external collaborator.
type WalletService struct {
	vaultRepo   domain.VaultRepository
	unspentRepo domain.UnspentRepository
	explorerSvc explorer.Service

	network            string
	requestTimeout     time.Duration
	feeTargetBlocks    int
	syncMaxConcurrency int
	syncMaxRetries     int
}

// NewWalletServiceOpts is the struct given to NewWalletService.
type NewWalletServiceOpts struct {
	VaultRepo   domain.VaultRepository
	UnspentRepo domain.UnspentRepository
	ExplorerSvc explorer.Service

	Network            string
	RequestTimeout     time.Duration
	FeeTargetBlocks    int
	SyncMaxConcurrency int
	SyncMaxRetries     int
}

// NewWalletService returns a new WalletService.
func NewWalletService(opts NewWalletServiceOpts) *WalletService {
	feeTarget := opts.FeeTargetBlocks
	if feeTarget <= 0 {
		feeTarget = 1
	}
	maxConcurrency := opts.SyncMaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 4
	}
	maxRetries := opts.SyncMaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &WalletService{
		vaultRepo:          opts.VaultRepo,
		unspentRepo:        opts.UnspentRepo,
		explorerSvc:        opts.ExplorerSvc,
		network:            opts.Network,
		requestTimeout:     opts.RequestTimeout,
		feeTargetBlocks:    feeTarget,
		syncMaxConcurrency: maxConcurrency,
		syncMaxRetries:     maxRetries,
	}
}

// CreateWallet generates a new mnemonic, initializes the vault with it and
// returns the mnemonic for the user to back up, along with the first
// receiving address.
func (s *WalletService) CreateWallet(
	ctx context.Context, passphrase string,
) ([]string, string, error) {
	mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{})
	if err != nil {
		return nil, "", err
	}

	addr, err := s.initVault(ctx, mnemonic, passphrase)
	if err != nil {
		return nil, "", err
	}

	return mnemonic, addr, nil
}

// RestoreWallet initializes the vault from an existing mnemonic. The funded
// addresses of the wallet are re-discovered by the next sync thanks to the
// address gap window.
func (s *WalletService) RestoreWallet(
	ctx context.Context, mnemonic []string, passphrase string,
) (string, error) {
	return s.initVault(ctx, mnemonic, passphrase)
}

func (s *WalletService) initVault(
	ctx context.Context, mnemonic []string, passphrase string,
) (string, error) {
	vault, err := domain.NewVault(mnemonic, passphrase, s.network)
	if err != nil {
		return "", err
	}

	w, err := vault.Unlock(passphrase)
	if err != nil {
		return "", err
	}
	defer w.Close()

	if err := s.ensureAddressWindow(vault, w); err != nil {
		return "", err
	}
	info, err := vault.NextExternalAddress(w)
	if err != nil {
		return "", err
	}

	if err := s.vaultRepo.CreateVault(ctx, vault); err != nil {
		return "", err
	}
	return info.Address, nil
}

// GetBalance syncs the utxo set of all tracked addresses and returns the
// confirmed and unconfirmed balances in satoshis.
func (s *WalletService) GetBalance(
	ctx context.Context, passphrase string,
) (domain.Balance, error) {
	vault, w, err := s.loadAndUnlock(ctx, passphrase)
	if err != nil {
		return domain.Balance{}, err
	}
	defer w.Close()

	if err := s.sync(ctx, vault, w); err != nil {
		return domain.Balance{}, err
	}

	unspents, err := s.unspentRepo.GetAllUnspents(ctx)
	if err != nil {
		return domain.Balance{}, err
	}

	return domain.CountBalance(unspents), nil
}

// NewAddress returns the receiving address at the current unused external
// index. The index advances only once the address is seen funded, so calling
// this repeatedly without funding returns the same address.
func (s *WalletService) NewAddress(
	ctx context.Context, passphrase string,
) (string, error) {
	vault, w, err := s.loadAndUnlock(ctx, passphrase)
	if err != nil {
		return "", err
	}
	defer w.Close()

	if err := s.sync(ctx, vault, w); err != nil {
		return "", err
	}

	info, err := vault.NextExternalAddress(w)
	if err != nil {
		return "", err
	}
	if err := s.vaultRepo.UpdateVault(ctx, vault); err != nil {
		return "", err
	}

	return info.Address, nil
}

// SendToAddress selects coins to cover the given amount in satoshis plus
// fee, builds and signs a transaction paying the destination address with
// change back to a fresh internal address, broadcasts it and returns its
// txid. On any failure the local state is left untouched.
func (s *WalletService) SendToAddress(
	ctx context.Context, passphrase, address string, amount uint64,
) (string, error) {
	vault, w, err := s.loadAndUnlock(ctx, passphrase)
	if err != nil {
		return "", err
	}
	defer w.Close()

	netParams := vault.NetworkParams()
	addr, err := btcutil.DecodeAddress(address, netParams)
	if err != nil || !addr.IsForNet(netParams) {
		return "", domain.ErrInvalidAddress
	}

	if err := s.sync(ctx, vault, w); err != nil {
		return "", err
	}

	feeRate, err := s.fetchFeeRate(ctx)
	if err != nil {
		return "", err
	}

	available, err := s.unspentRepo.GetAvailableUnspents(ctx)
	if err != nil {
		return "", err
	}

	coins, _, err := explorer.SelectUnspents(
		toExplorerUtxos(available), amount, feeRate,
	)
	if err != nil {
		return "", domain.ErrInsufficientFunds
	}

	changeInfo, err := vault.NextInternalAddress(w)
	if err != nil {
		return "", err
	}
	changeScript, _ := hex.DecodeString(changeInfo.Script)

	res, err := w.CreateTx(wallet.CreateTxOpts{
		Unspents:      coins,
		OutputAddress: address,
		OutputAmount:  amount,
		ChangeScript:  changeScript,
		SatsPerVByte:  feeRate,
		Network:       netParams,
	})
	if err != nil {
		return "", err
	}

	signed, err := w.SignTransaction(wallet.SignTransactionOpts{
		UnsignedTx:             res.UnsignedTx,
		Unspents:               coins,
		DerivationPathByScript: vault.DerivationPathByScript(),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrDerivation, err)
	}

	sendID := uuid.New()
	keys := unspentKeys(coins)
	if err := s.unspentRepo.LockUnspents(ctx, keys, sendID); err != nil {
		return "", err
	}

	txid, err := s.broadcast(ctx, signed.TxHex)
	if err != nil {
		if unlockErr := s.unspentRepo.UnlockUnspents(ctx, keys); unlockErr != nil {
			log.WithError(unlockErr).Warn("could not unlock unspents after failed broadcast")
		}
		return "", err
	}

	if err := s.unspentRepo.SpendUnspents(ctx, keys); err != nil {
		return "", err
	}
	if err := s.vaultRepo.UpdateVault(ctx, vault); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"txid": txid,
		"fee":  res.FeeAmount,
	}).Debug("transaction broadcast")

	return txid, nil
}

// GetNetwork returns the network the initialized wallet operates on.
func (s *WalletService) GetNetwork(ctx context.Context) (string, error) {
	vault, err := s.vaultRepo.GetVault(ctx)
	if err != nil {
		return "", err
	}
	return vault.Network, nil
}

// Reset irreversibly deletes the persisted wallet state. A subsequent load
// reports an uninitialized wallet.
func (s *WalletService) Reset(ctx context.Context) error {
	if err := s.vaultRepo.ResetVault(ctx); err != nil {
		return err
	}
	return s.unspentRepo.Reset(ctx)
}

func (s *WalletService) loadAndUnlock(
	ctx context.Context, passphrase string,
) (*domain.Vault, *wallet.Wallet, error) {
	vault, err := s.vaultRepo.GetVault(ctx)
	if err != nil {
		return nil, nil, err
	}

	w, err := vault.Unlock(passphrase)
	if err != nil {
		return nil, nil, err
	}

	return vault, w, nil
}

// ensureAddressWindow makes sure the vault tracks every address up to the
// gap limit past the next unused index of both chains.
func (s *WalletService) ensureAddressWindow(
	vault *domain.Vault, w *wallet.Wallet,
) error {
	account := vault.Account
	for index := uint32(0); index < account.NextExternalIndex+AddressGapLimit; index++ {
		if err := vault.TrackAddress(w, wallet.ExternalChain, index); err != nil {
			return err
		}
	}
	for index := uint32(0); index < account.NextInternalIndex+AddressGapLimit; index++ {
		if err := vault.TrackAddress(w, wallet.InternalChain, index); err != nil {
			return err
		}
	}
	return nil
}

func (s *WalletService) fetchFeeRate(ctx context.Context) (uint64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	feeRate, err := s.explorerSvc.GetFeeRate(ctx, s.feeTargetBlocks)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrNetworkUnavailable, err)
	}
	return feeRate, nil
}

func (s *WalletService) broadcast(
	ctx context.Context, txHex string,
) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	txid, err := s.explorerSvc.BroadcastTransaction(ctx, txHex)
	if err != nil {
		var rejected *explorer.BroadcastError
		if errors.As(err, &rejected) {
			return "", rejected
		}
		return "", fmt.Errorf("%w: %s", domain.ErrNetworkUnavailable, err)
	}
	return txid, nil
}

func toExplorerUtxos(unspents []domain.Unspent) []explorer.Utxo {
	utxos := make([]explorer.Utxo, 0, len(unspents))
	for _, u := range unspents {
		utxos = append(utxos, explorer.NewWitnessUtxo(
			u.TxID, u.VOut, u.Value,
			u.ScriptPubKey, u.Address,
			u.Confirmed, u.ConfirmationHeight,
		))
	}
	return utxos
}

func unspentKeys(utxos []explorer.Utxo) []domain.UnspentKey {
	keys := make([]domain.UnspentKey, 0, len(utxos))
	for _, u := range utxos {
		keys = append(keys, domain.UnspentKey{TxID: u.Hash(), VOut: u.Index()})
	}
	return keys
}
