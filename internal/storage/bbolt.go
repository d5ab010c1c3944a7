package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	ConfigBucket = []byte("config") // Schema version, timestamps
	RunsBucket   = []byte("runs")   // Attack run summaries keyed by sequence
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
)

var (
	ErrNotInitialized = errors.New("journal not initialized")
	ErrRunNotFound    = errors.New("run not found")
)

// reopen opens the compacted file in place of the original
var reopen = func(path string) (*bolt.DB, error) {
	return bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
}

// Storage provides BBolt-based storage for the attack journal
type Storage struct {
	db *bolt.DB
}

// Open opens or creates a journal database, creating parent directories
func Open(path string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database. Closing twice is a no-op.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Initialize creates the bucket structure. It is safe to call on an
// already initialized journal.
func (s *Storage) Initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, RunsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if config.Get(ConfigVersion) != nil {
			return nil
		}
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}

		created, _ := time.Now().MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		return config.Put(ConfigModified, created)
	})
}

// IsInitialized checks if the database has been initialized
func (s *Storage) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// GetModified retrieves the last modified timestamp
func (s *Storage) GetModified() (time.Time, error) {
	var modified time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return ErrNotInitialized
		}
		data := config.Get(ConfigModified)
		if data == nil {
			return fmt.Errorf("modified time not found")
		}
		return modified.UnmarshalBinary(data)
	})
	return modified, err
}

// AppendRun stores a run summary. An empty ID is replaced by a new UUID,
// which is written back to run.
func (s *Storage) AppendRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Started.IsZero() {
		run.Started = time.Now()
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket(RunsBucket)
		if runs == nil {
			return ErrNotInitialized
		}

		seq, err := runs.NextSequence()
		if err != nil {
			return err
		}
		data, err := json.Marshal(run)
		if err != nil {
			return fmt.Errorf("failed to marshal run: %w", err)
		}
		if err := runs.Put(sequenceKey(seq), data); err != nil {
			return err
		}

		return touch(tx)
	})
}

// Runs returns every stored run, oldest first
func (s *Storage) Runs() ([]Run, error) {
	var list []Run
	err := s.db.View(func(tx *bolt.Tx) error {
		runs := tx.Bucket(RunsBucket)
		if runs == nil {
			return ErrNotInitialized
		}
		return runs.ForEach(func(k, v []byte) error {
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("failed to decode run %d: %w", binary.BigEndian.Uint64(k), err)
			}
			list = append(list, run)
			return nil
		})
	})
	return list, err
}

// GetRun returns the run with the given ID
func (s *Storage) GetRun(id string) (*Run, error) {
	var found *Run
	err := s.db.View(func(tx *bolt.Tx) error {
		runs := tx.Bucket(RunsBucket)
		if runs == nil {
			return ErrNotInitialized
		}
		return runs.ForEach(func(_, v []byte) error {
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return err
			}
			if run.ID == id {
				found = &run
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return found, nil
}

// Clear removes every run and resets the sequence
func (s *Storage) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(RunsBucket) != nil {
			if err := tx.DeleteBucket(RunsBucket); err != nil {
				return err
			}
		}
		if _, err := tx.CreateBucket(RunsBucket); err != nil {
			return err
		}
		return touch(tx)
	})
}

// Compact creates a compacted copy of the database, removing unused space.
// This is useful after Clear to reclaim disk space.
func (s *Storage) Compact() error {
	srcPath := s.db.Path()
	tmpPath := srcPath + ".compact"

	// Create new database
	dst, err := bolt.Open(tmpPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	// Copy all buckets, sequences included
	err = s.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				if err := dstBucket.SetSequence(srcBucket.Sequence()); err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, v []byte) error {
					return dstBucket.Put(k, v)
				})
			})
		})
	})

	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := s.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	// Atomic replace
	backupPath := srcPath + ".backup"
	if err := os.Rename(srcPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup original: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Rename(backupPath, srcPath) // rollback
		return fmt.Errorf("failed to replace database: %w", err)
	}
	os.Remove(backupPath)

	// Keep the closed handle on failure so Close stays safe
	db, err := reopen(srcPath)
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}
	s.db = db

	return nil
}

func touch(tx *bolt.Tx) error {
	config := tx.Bucket(ConfigBucket)
	if config == nil {
		return ErrNotInitialized
	}
	modified, _ := time.Now().MarshalBinary()
	return config.Put(ConfigModified, modified)
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
