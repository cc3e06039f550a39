// Package settings persists operator preferences across runs: whether
// custom endpoint overrides are honored, and the last selected cluster.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	bolt "go.etcd.io/bbolt"
)

func logger() *log.Logger { return log.Default().WithPrefix("settings") }

var (
	bucketSettings = []byte("settings")

	keyCustomURLAllowed = []byte("custom_url_allowed")
	keyLastCluster      = []byte("last_cluster")
	keyLastCustomURL    = []byte("last_custom_url")
)

// Store is a small bbolt-backed key/value store.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the settings database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating settings directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening settings db %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSettings)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating settings bucket: %w", err)
	}

	logger().Debug("settings store opened", "path", path)
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// CustomURLAllowed reports whether user-supplied endpoint overrides are
// honored. Defaults to false until explicitly enabled.
func (s *Store) CustomURLAllowed() bool {
	var allowed bool
	s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketSettings).Get(keyCustomURLAllowed)
		allowed = string(v) == "true"
		return nil
	})
	return allowed
}

// SetCustomURLAllowed persists the custom endpoint gate.
func (s *Store) SetCustomURLAllowed(allowed bool) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSettings).Put(keyCustomURLAllowed, []byte(fmt.Sprintf("%t", allowed)))
	})
}

// LastSelection returns the persisted cluster name and custom URL, either of
// which may be empty when nothing has been saved.
func (s *Store) LastSelection() (clusterName, customURL string) {
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSettings)
		clusterName = string(b.Get(keyLastCluster))
		customURL = string(b.Get(keyLastCustomURL))
		return nil
	})
	return clusterName, customURL
}

// SaveSelection persists the current cluster selection.
func (s *Store) SaveSelection(clusterName, customURL string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSettings)
		if err := b.Put(keyLastCluster, []byte(clusterName)); err != nil {
			return err
		}
		return b.Put(keyLastCustomURL, []byte(customURL))
	})
}
