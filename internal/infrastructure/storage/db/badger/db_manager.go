package dbbadger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/slp-cli-wallet/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const walletsDir = "wallets"

// RepoManager holds the badgerhold store and the repositories built on
// top of it.
type RepoManager struct {
	store            *badgerhold.Store
	walletRepository domain.WalletRepository
	gcTicker         *time.Ticker
	done             chan struct{}
	closeOnce        sync.Once
}

// NewRepoManager opens (or creates if not exists) the badger store in a
// dedicated directory of the given base dir. An empty dir opens an in
// memory store. logger is optional.
func NewRepoManager(baseDbDir string, logger badger.Logger) (*RepoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, walletsDir)
	}

	store, err := createDb(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening wallets db: %w", err)
	}

	r := &RepoManager{
		store:            store,
		walletRepository: newWalletRepositoryImpl(store),
		done:             make(chan struct{}),
	}
	if len(dbDir) > 0 {
		r.gcTicker = time.NewTicker(30 * time.Minute)
		go r.runValueLogGC()
	}
	return r, nil
}

// WalletRepository ...
func (r *RepoManager) WalletRepository() domain.WalletRepository {
	return r.walletRepository
}

// Close stops the value log GC and closes the store. It is safe to call
// it more than once.
func (r *RepoManager) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		if r.gcTicker != nil {
			r.gcTicker.Stop()
		}
		if err := r.store.Close(); err != nil {
			log.WithError(err).Warn("failed to close wallets db")
		}
	})
}

func (r *RepoManager) runValueLogGC() {
	for {
		select {
		case <-r.done:
			return
		case <-r.gcTicker.C:
			if err := r.store.Badger().RunValueLogGC(0.5); err != nil &&
				err != badger.ErrNoRewrite {
				log.Error(err)
			}
		}
	}
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	return json.NewDecoder(bytes.NewReader(data)).Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}
