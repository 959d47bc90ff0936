package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Credentials are what a device keeps between runs to resume a session.
type Credentials struct {
	UserID string `yaml:"user_id"`
	Token  string `yaml:"token"`
}

// Valid reports whether both the user id and the token are present.
func (c Credentials) Valid() bool {
	return c.UserID != "" && c.Token != ""
}

// CredentialStore persists Credentials.
type CredentialStore interface {
	// Load returns zero Credentials if none were saved.
	Load() (Credentials, error)
	Save(c Credentials) error
	Clear() error
}

// FileCredentials keeps credentials in a YAML file readable only by the owner.
type FileCredentials struct {
	Path string
}

func (f FileCredentials) Load() (Credentials, error) {
	var c Credentials
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("failed to read credentials: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse credentials %s: %w", f.Path, err)
	}
	return c, nil
}

func (f FileCredentials) Save(c Credentials) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}
	if err := os.WriteFile(f.Path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}

func (f FileCredentials) Clear() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}

// MemoryCredentials keeps credentials in memory.
type MemoryCredentials struct {
	mu sync.Mutex
	c  Credentials
}

func (m *MemoryCredentials) Load() (Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.c, nil
}

func (m *MemoryCredentials) Save(c Credentials) error {
	m.mu.Lock()
	m.c = c
	m.mu.Unlock()
	return nil
}

func (m *MemoryCredentials) Clear() error {
	return m.Save(Credentials{})
}
