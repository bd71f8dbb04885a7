package dbbadger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/bitcli/bitcli/internal/core/domain"
)

const checkpointKey = "checkpoint"

type syncCheckpoint struct {
	Height int
}

type unspentRepositoryImpl struct {
	db *DbManager
}

// NewUnspentRepositoryImpl returns a badger implementation of the
// domain.UnspentRepository interface.
func NewUnspentRepositoryImpl(db *DbManager) domain.UnspentRepository {
	return unspentRepositoryImpl{db: db}
}

func (r unspentRepositoryImpl) GetAllUnspents(
	_ context.Context,
) ([]domain.Unspent, error) {
	return r.findUnspents(nil)
}

func (r unspentRepositoryImpl) GetAvailableUnspents(
	_ context.Context,
) ([]domain.Unspent, error) {
	query := badgerhold.Where("Spent").Eq(false).And("Locked").Eq(false)
	return r.findUnspents(query)
}

func (r unspentRepositoryImpl) GetUnspentsForAddress(
	_ context.Context, address string,
) ([]domain.Unspent, error) {
	query := badgerhold.Where("Address").Eq(address)
	return r.findUnspents(query)
}

func (r unspentRepositoryImpl) ReplaceUnspentsForAddress(
	_ context.Context, address string, unspents []domain.Unspent,
) error {
	query := badgerhold.Where("Address").Eq(address)
	known, err := r.findUnspents(query)
	if err != nil {
		return err
	}
	knownByKey := make(map[domain.UnspentKey]domain.Unspent, len(known))
	for _, u := range known {
		knownByKey[u.Key()] = u
	}

	if err := r.db.Store.DeleteMatching(&domain.Unspent{}, query); err != nil {
		return err
	}

	for i := range unspents {
		u := unspents[i]
		// carry over local-only markers for outpoints the explorer still
		// reports, eg. an unspent spent by a broadcast not yet in a block.
		if old, ok := knownByKey[u.Key()]; ok {
			u.Spent = old.Spent
			u.Locked = old.Locked
			u.LockedBy = old.LockedBy
		}
		if err := r.db.Store.Upsert(u.Key(), &u); err != nil {
			return err
		}
	}

	return nil
}

func (r unspentRepositoryImpl) LockUnspents(
	_ context.Context, keys []domain.UnspentKey, id uuid.UUID,
) error {
	return r.updateUnspents(keys, func(u *domain.Unspent) {
		u.Lock(&id)
	})
}

func (r unspentRepositoryImpl) UnlockUnspents(
	_ context.Context, keys []domain.UnspentKey,
) error {
	return r.updateUnspents(keys, func(u *domain.Unspent) {
		u.Unlock()
	})
}

func (r unspentRepositoryImpl) SpendUnspents(
	_ context.Context, keys []domain.UnspentKey,
) error {
	return r.updateUnspents(keys, func(u *domain.Unspent) {
		u.Spent = true
		u.Unlock()
	})
}

func (r unspentRepositoryImpl) GetSyncCheckpoint(_ context.Context) (int, error) {
	var cp syncCheckpoint
	if err := r.db.Store.Get(checkpointKey, &cp); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return cp.Height, nil
}

func (r unspentRepositoryImpl) SetSyncCheckpoint(
	_ context.Context, height int,
) error {
	return r.db.Store.Upsert(checkpointKey, &syncCheckpoint{Height: height})
}

func (r unspentRepositoryImpl) Reset(_ context.Context) error {
	if err := r.db.Store.DeleteMatching(&domain.Unspent{}, nil); err != nil {
		return err
	}
	err := r.db.Store.Delete(checkpointKey, &syncCheckpoint{})
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil
	}
	return err
}

func (r unspentRepositoryImpl) findUnspents(
	query *badgerhold.Query,
) ([]domain.Unspent, error) {
	var unspents []domain.Unspent
	if err := r.db.Store.Find(&unspents, query); err != nil {
		return nil, err
	}
	return unspents, nil
}

func (r unspentRepositoryImpl) updateUnspents(
	keys []domain.UnspentKey, update func(*domain.Unspent),
) error {
	for _, key := range keys {
		var u domain.Unspent
		if err := r.db.Store.Get(key, &u); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return domain.ErrUnspentNotFound
			}
			return err
		}
		update(&u)
		if err := r.db.Store.Upsert(key, &u); err != nil {
			return err
		}
	}
	return nil
}
