// Package iocache keeps priority scores between runs in a Badger v4
// key-value store. A key depends on the content of the reference and
// candidate alignments and on the scoring method, so cached scores are
// reused only for identical inputs.
package iocache

import (
	"encoding/hex"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsubsample/pkg/dataset"
	"github.com/gnames/gnsys"
	"github.com/gnames/gnuuid"
	"golang.org/x/crypto/blake2b"
)

// Cache manages the Badger database with priority scores.
type Cache struct {
	dir string
	db  *badger.DB
}

// New creates a cache at the directory. The directory is created if it
// does not exist, existing data is kept.
func New(dir string) (*Cache, error) {
	err := gnsys.MakeDir(dir)
	if err != nil {
		slog.Error("Cannot create cache directory", "error", err, "dir", dir)
		return nil, OpenError(dir, err)
	}
	return &Cache{dir: dir}, nil
}

// Open opens the Badger database.
func (c *Cache) Open() error {
	if c.db != nil {
		slog.Warn("Cache database is already open")
		return nil
	}

	options := badger.DefaultOptions(c.dir)
	options.Logger = nil

	db, err := badger.Open(options)
	if err != nil {
		slog.Error("Cannot open cache database", "error", err, "dir", c.dir)
		return OpenError(c.dir, err)
	}

	c.db = db
	slog.Info("Cache database opened", "dir", c.dir)
	return nil
}

// Close closes the Badger database.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}

	err := c.db.Close()
	c.db = nil
	if err != nil {
		slog.Error("Cannot close cache database", "error", err)
		return err
	}
	slog.Info("Cache database closed")
	return nil
}

// Reset closes the database and removes all cached scores.
func (c *Cache) Reset() error {
	if err := c.Close(); err != nil {
		return err
	}
	err := gnsys.CleanDir(c.dir)
	if err != nil {
		slog.Error("Cannot clean cache directory", "error", err, "dir", c.dir)
		return err
	}
	slog.Info("Cache cleaned up", "dir", c.dir)
	return nil
}

// Key returns a UUID derived from the scoring method and the content of
// reference and candidate records.
func Key(method string, reference, candidates []dataset.Record) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(method))
	for _, recs := range [][]dataset.Record{reference, candidates} {
		h.Write([]byte{0})
		for _, r := range recs {
			h.Write([]byte(r.ID))
			h.Write([]byte{'\n'})
			h.Write(r.Seq)
			h.Write([]byte{'\n'})
		}
	}
	return gnuuid.New(hex.EncodeToString(h.Sum(nil))).String()
}

// Store saves scores under the key, encoded with GOB.
func (c *Cache) Store(key string, scores dataset.Scores) error {
	if c.db == nil {
		return NotOpenError()
	}

	enc := gnfmt.GNgob{}
	val, err := enc.Encode(scores)
	if err != nil {
		return StoreError(key, err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), val)
	})
	if err != nil {
		slog.Error("Cannot store scores", "error", err, "key", key)
		return StoreError(key, err)
	}
	return nil
}

// Get returns scores saved under the key. Scores are nil if the key is
// not found.
func (c *Cache) Get(key string) (dataset.Scores, error) {
	if c.db == nil {
		return nil, NotOpenError()
	}

	var val []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		slog.Error("Cannot retrieve scores", "error", err, "key", key)
		return nil, ReadError(key, err)
	}
	if val == nil {
		return nil, nil
	}

	enc := gnfmt.GNgob{}
	res := make(dataset.Scores)
	if err = enc.Decode(val, &res); err != nil {
		slog.Error("Cannot decode scores", "error", err, "key", key)
		return nil, ReadError(key, err)
	}
	return res, nil
}
