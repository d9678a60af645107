package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"seedvault/internal/domain"
)

const (
	deviceFile  = "device.enc"    // encrypted DeviceSecret envelope
	sessionFile = "recovery.json" // in-progress session record, no secrets
)

// sessionRecord is the persisted per-session recovery state.
type sessionRecord struct {
	InProgress bool `json:"in_progress"`
	DryRun     bool `json:"dry_run"`
}

// FileStore persists the device secret and recovery session state on disk.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir.
func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// ---------- Device secret ----------

// SaveSecret seals sec under passphrase and writes it atomically.
func (s *FileStore) SaveSecret(passphrase string, sec domain.DeviceSecret) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(sec)
	if err != nil {
		return err
	}
	N, r, p := scryptParamsDefault()
	sealed, err := encrypt(passphrase, raw, N, r, p)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, deviceFile), sealed, 0o600)
}

// LoadSecret opens and returns the stored secret. A missing device file
// maps to domain.ErrNoSecret.
func (s *FileStore) LoadSecret(passphrase string) (domain.DeviceSecret, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sealed, err := os.ReadFile(filepath.Join(s.dir, deviceFile))
	if errors.Is(err, os.ErrNotExist) {
		return domain.DeviceSecret{}, domain.ErrNoSecret
	}
	if err != nil {
		return domain.DeviceSecret{}, err
	}
	raw, err := decrypt(passphrase, sealed)
	if err != nil {
		return domain.DeviceSecret{}, err
	}
	var sec domain.DeviceSecret
	if err := json.Unmarshal(raw, &sec); err != nil {
		return domain.DeviceSecret{}, fmt.Errorf("corrupted device secret: %w", err)
	}
	return sec, nil
}

// HasSecret reports whether a device secret exists without opening it.
func (s *FileStore) HasSecret() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := os.Stat(filepath.Join(s.dir, deviceFile))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteSecret removes the stored secret. Deleting an absent secret is not
// an error.
func (s *FileStore) DeleteSecret() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, deviceFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ---------- Recovery session ----------

// BeginRecovery records a new in-progress session and its dry-run flag.
func (s *FileStore) BeginRecovery(dryRun bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := sessionRecord{InProgress: true, DryRun: dryRun}
	return writeJSON(filepath.Join(s.dir, sessionFile), rec, 0o600)
}

// DryRun returns the persisted dry-run flag of the current session.
func (s *FileStore) DryRun() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec sessionRecord
	if err := readJSON(filepath.Join(s.dir, sessionFile), &rec); err != nil {
		return false, err
	}
	if !rec.InProgress {
		return false, errors.New("no recovery session in progress")
	}
	return rec.DryRun, nil
}

// EndRecovery clears the session record so no state leaks into the next
// session.
func (s *FileStore) EndRecovery() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Compile-time assertions that FileStore implements the domain stores.
var (
	_ domain.DeviceStore   = (*FileStore)(nil)
	_ domain.RecoveryStore = (*FileStore)(nil)
)
