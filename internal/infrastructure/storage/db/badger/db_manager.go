package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/bitcli/bitcli/internal/core/domain"
)

// DbManager holds the badgerhold store backing all the repositories.
// Badger keeps an exclusive lock on the db directory for the whole life of
// the process, which doubles as the cross-process lock on the wallet state:
// a second invocation fails fast instead of interleaving writes.
type DbManager struct {
	Store *badgerhold.Store
}

// NewDbManager opens (or creates if not existing) the badger store on disk
// under the given data directory.
func NewDbManager(datadir string, logger badger.Logger) (*DbManager, error) {
	store, err := createDb(filepath.Join(datadir, "db"), logger)
	if err != nil {
		if isLockedErr(err) {
			return nil, domain.ErrConcurrentAccess
		}
		return nil, fmt.Errorf("opening wallet db: %w", err)
	}

	return &DbManager{Store: store}, nil
}

// Close releases the store and its directory lock.
func (d *DbManager) Close() error {
	return d.Store.Close()
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)
	if err := en.Encode(value); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	de := json.NewDecoder(bytes.NewReader(data))
	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}

func isLockedErr(err error) bool {
	return err != nil &&
		strings.Contains(err.Error(), "Cannot acquire directory lock")
}
