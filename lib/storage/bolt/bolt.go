package bolt

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/storagemap/lib/common"
	"github.com/ValentinKolb/storagemap/lib/storage"
	"github.com/boltdb/bolt"
	"github.com/lni/dragonboat/v4/logger"
	"sync/atomic"
	"time"
)

var plog = logger.GetLogger(common.LoggerStorage)

// keyPrefix is prepended to every key, bolt does not accept empty keys.
const keyPrefix = "."

// DefaultBucket is the bucket used when none is given.
const DefaultBucket = "storagemap"

// Storage keeps all items in one bolt bucket.
type Storage struct {
	db     *bolt.DB
	bucket []byte
	closed atomic.Bool
}

// Options configures Open.
type Options struct {
	// Bucket is the name of the bucket holding the items (DefaultBucket if empty)
	Bucket string
	// Timeout is how long Open waits for the file lock held by another process (1s if zero)
	Timeout time.Duration
}

// Open opens (or creates) the bolt database at path and makes sure the bucket exists.
func Open(path string, opts Options) (*Storage, error) {
	if opts.Bucket == "" {
		opts.Bucket = DefaultBucket
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: opts.Timeout})
	if err != nil {
		return nil, fmt.Errorf("open bolt db %s: %w", path, err)
	}

	s := &Storage{
		db:     db,
		bucket: []byte(opts.Bucket),
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket %s: %w", opts.Bucket, err)
	}

	plog.Infof("opened bolt storage %s (bucket %s)", path, opts.Bucket)
	return s, nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see storage/interface.go)
// --------------------------------------------------------------------------

func (s *Storage) SetItem(key, value string) error {
	if s.closed.Load() {
		return storage.ErrClosed
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(keyPrefix+key), []byte(value))
	})
}

func (s *Storage) GetItem(key string) (value string, found bool, err error) {
	if s.closed.Load() {
		return "", false, storage.ErrClosed
	}
	err = s.db.View(func(tx *bolt.Tx) error {
		// the returned slice is only valid during the transaction, string() copies it
		v := tx.Bucket(s.bucket).Get([]byte(keyPrefix + key))
		if v != nil {
			value, found = string(v), true
		}
		return nil
	})
	return value, found, err
}

func (s *Storage) RemoveItem(key string) error {
	if s.closed.Load() {
		return storage.ErrClosed
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(keyPrefix + key))
	})
}

func (s *Storage) Clear() error {
	if s.closed.Load() {
		return storage.ErrClosed
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(s.bucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(s.bucket)
		return err
	})
}

// Close releases the database file. Further operations fail with storage.ErrClosed.
func (s *Storage) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	plog.Infof("closing bolt storage %s", s.db.Path())
	return s.db.Close()
}
