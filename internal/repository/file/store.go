// Package file implements the user store as a whole-set JSON snapshot on disk.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/akarasev/userhub/internal/model"
)

var _ model.UserStore = (*Store)(nil)

// snapshot is the on-disk layout: one document holding every record.
type snapshot struct {
	Users []userRecord `json:"users"`
}

type userRecord struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
}

// Store keeps the authoritative user set in memory and writes the full
// snapshot through to disk on every successful insert. A single mutex
// serializes the load-check-append-persist sequence, so two concurrent
// registrations of the same username cannot both pass the uniqueness check.
// The store assumes it is the sole writer to the file for the process
// lifetime.
type Store struct {
	path string

	mu     sync.Mutex
	loaded bool
	users  []model.User
}

// NewStore creates a store backed by the snapshot file at path. The file is
// read lazily on first access; a missing file is an empty directory.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// GetByUsername returns the record with the exact (case-sensitive) username,
// or model.ErrNotFound.
func (s *Store) GetByUsername(ctx context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return model.User{}, err
	}

	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}

	return model.User{}, model.ErrNotFound
}

// Create appends the record and persists the whole snapshot before reporting
// success. On a persistence failure the in-memory append is rolled back:
// durable storage is the source of truth, and a failed insert leaves no trace.
func (s *Store) Create(ctx context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return model.User{}, err
	}

	for _, u := range s.users {
		if u.Username == user.Username {
			return model.User{}, model.ErrUsernameTaken
		}
	}

	s.users = append(s.users, user)

	if err := s.persist(); err != nil {
		s.users = s.users[:len(s.users)-1]
		return model.User{}, fmt.Errorf("%w: %v", model.ErrStorage, err)
	}

	return user, nil
}

// List returns a copy of every record in internal iteration order.
func (s *Store) List(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	users := make([]model.User, len(s.users))
	copy(users, s.users)

	return users, nil
}

// ensureLoaded parses the snapshot into memory on first access. Callers must
// hold the mutex.
func (s *Store) ensureLoaded() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.loaded = true
			return nil
		}
		return fmt.Errorf("%w: failed to read snapshot: %v", model.ErrStorage, err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: failed to parse snapshot: %v", model.ErrStorage, err)
	}

	s.users = make([]model.User, 0, len(snap.Users))
	for _, r := range snap.Users {
		s.users = append(s.users, model.User{ID: r.ID, Username: r.Username, PasswordHash: r.PasswordHash})
	}
	s.loaded = true

	return nil
}

// persist serializes the full set to a temporary file in the same directory
// and renames it over the snapshot, so a crash mid-write cannot leave a
// corrupt file behind. Callers must hold the mutex.
func (s *Store) persist() error {
	snap := snapshot{Users: make([]userRecord, 0, len(s.users))}
	for _, u := range s.users {
		snap.Users = append(snap.Users, userRecord{ID: u.ID, Username: u.Username, PasswordHash: u.PasswordHash})
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}
