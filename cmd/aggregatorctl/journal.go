package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var bucketChangeSets = []byte("change_sets_by_worker")

// journal persists each worker's committed change-set summary to a bbolt
// database, keyed by worker index, so repeated runs against --dbfile can be
// diffed against prior ones.
type journal struct {
	db *bolt.DB
}

// openJournal opens (creating if absent) the bbolt database at path and
// ensures its bucket exists.
func openJournal(path string) (*journal, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open journal")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketChangeSets)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create journal bucket")
	}
	return &journal{db: db}, nil
}

// Record stores worker's change-set summary.
func (j *journal) Record(worker int, summary string) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketChangeSets).Put(workerKey(worker), []byte(summary))
	})
}

// Close releases the underlying database handle.
func (j *journal) Close() error {
	return j.db.Close()
}

func workerKey(worker int) []byte {
	return []byte(fmt.Sprintf("worker-%04d", worker))
}
