// Package bolt is an embedded, single-file record store for running the
// tracker without a MongoDB server.
package bolt

import (
	"context"
	"fmt"
	"time"

	"stargazer/exercise-tracker/internal/repository"

	"go.etcd.io/bbolt"
)

var (
	bucketUsers     = []byte("users")
	bucketExercises = []byte("exercises")
)

// Store implements repository.Store on a bbolt database file.
type Store struct {
	db        *bbolt.DB
	users     *userRepository
	exercises *exerciseRepository
}

// New opens (or creates) the database at dbPath and makes sure its buckets exist.
func New(dbPath string) (*Store, error) {
	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketUsers, bucketExercises} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:        db,
		users:     &userRepository{db: db},
		exercises: &exerciseRepository{db: db},
	}, nil
}

func (s *Store) Users() repository.UserRepository         { return s.users }
func (s *Store) Exercises() repository.ExerciseRepository { return s.exercises }

// Ping reports whether the database file is still open.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.View(func(tx *bbolt.Tx) error { return nil })
}

// Close closes the database file.
func (s *Store) Close(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ repository.Store = (*Store)(nil)
