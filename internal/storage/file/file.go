package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/dtroode/ttportal/internal/model"
)

// Internal adapter interface to enable mocking without touching the disk.
type fsAPI interface {
	MkdirAll(path string, perm os.FileMode) error
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

// Wrapper to adapt the os package to fsAPI.
type osFS struct{}

func (osFS) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }
func (osFS) ReadFile(name string) ([]byte, error)         { return os.ReadFile(name) }
func (osFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}
func (osFS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }
func (osFS) Remove(name string) error             { return os.Remove(name) }

var validKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var _ model.Storage = (*Client)(nil)

// Client is a key/value store keeping one file per key inside a directory.
type Client struct {
	api fsAPI
	dir string
	mu  sync.Mutex
}

// NewClient creates a new file storage client rooted at dir.
func NewClient(dir string) (*Client, error) {
	return NewClientWithAPI(osFS{}, dir)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(api fsAPI, dir string) (*Client, error) {
	c := &Client{
		api: api,
		dir: dir,
	}

	if err := c.api.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return c, nil
}

func (c *Client) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(c.dir, key), nil
}

// Get returns the value stored under key or model.ErrNotFound.
func (c *Client) Get(key string) ([]byte, error) {
	p, err := c.path(key)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.api.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return data, nil
}

// Set stores value under key, replacing any previous value.
func (c *Client) Set(key string, value []byte) error {
	p, err := c.path(key)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tmp := p + ".tmp"
	if err := c.api.WriteFile(tmp, value, 0o600); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	if err := c.api.Rename(tmp, p); err != nil {
		_ = c.api.Remove(tmp)
		return fmt.Errorf("failed to commit key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (c *Client) Delete(key string) error {
	p, err := c.path(key)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.api.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
