package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Store persists raw session bytes. FileStore is the durable
// "remember me" variant; MemStore lives only as long as the process.
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Clear() error
}

type FileStore struct {
	path string
}

func NewFileStore(path string) FileStore {
	return FileStore{path: path}
}

// DefaultPath places the session file under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "taskgo", "session.json"), nil
}

func (s FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s FileStore) Save(data []byte) error {
	err := os.MkdirAll(filepath.Dir(s.path), 0o700)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

type MemStore struct {
	data []byte
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load() ([]byte, error) {
	return s.data, nil
}

func (s *MemStore) Save(data []byte) error {
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *MemStore) Clear() error {
	s.data = nil
	return nil
}
