// Package store persists named chirp commands. Commands are stored as
// source text and parsed at run time, so stored commands never go stale
// against the evaluator.
package store

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// ErrNoCommand is returned when a named command does not exist.
var ErrNoCommand = errors.New("no command with that name")

const bucketCommands = "commands"

// openTimeout bounds the wait for the database file lock, so a second
// chirp process fails fast instead of blocking.
const openTimeout = time.Second

// Command is one stored command.
type Command struct {
	Name   string
	Source string
}

// Store is a named-command database backed by a bolt file.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the command database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("open command store: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCommands))

		return err
	})
	if err != nil {
		db.Close()

		return nil, fmt.Errorf("initialize command store: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a command source under a name, replacing any existing one.
func (s *Store) Put(name, source string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCommands))

		return b.Put([]byte(name), []byte(source))
	})
}

// Get returns the source of a named command.
func (s *Store) Get(name string) (string, error) {
	var source string

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCommands))

		v := b.Get([]byte(name))
		if v == nil {
			return ErrNoCommand
		}

		source = string(v)

		return nil
	})

	return source, err
}

// Delete removes a named command. Deleting a missing command fails with
// ErrNoCommand.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCommands))

		if b.Get([]byte(name)) == nil {
			return ErrNoCommand
		}

		return b.Delete([]byte(name))
	})
}

// List returns all stored commands in name order.
func (s *Store) List() ([]Command, error) {
	var cmds []Command

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketCommands))

		// Bolt iterates keys in byte order, which is the order we want.
		return b.ForEach(func(k, v []byte) error {
			cmds = append(cmds, Command{
				Name:   string(k),
				Source: string(v),
			})

			return nil
		})
	})

	return cmds, err
}
