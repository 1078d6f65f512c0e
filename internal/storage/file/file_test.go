package file

import (
	"errors"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/ttportal/internal/model"
)

// fakeFS implements fsAPI for testing without a disk.
type fakeFS struct {
	files     map[string][]byte
	mkdirErr  error
	readErr   error
	writeErr  error
	renameErr error
	removeErr error
	removed   []string
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: map[string][]byte{}}
}

func (f *fakeFS) MkdirAll(string, os.FileMode) error { return f.mkdirErr }

func (f *fakeFS) ReadFile(name string) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	data, ok := f.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (f *fakeFS) WriteFile(name string, data []byte, _ os.FileMode) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.files[name] = append([]byte(nil), data...)
	return nil
}

func (f *fakeFS) Rename(oldpath, newpath string) error {
	if f.renameErr != nil {
		return f.renameErr
	}
	f.files[newpath] = f.files[oldpath]
	delete(f.files, oldpath)
	return nil
}

func (f *fakeFS) Remove(name string) error {
	f.removed = append(f.removed, name)
	if f.removeErr != nil {
		return f.removeErr
	}
	if _, ok := f.files[name]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	delete(f.files, name)
	return nil
}

func TestNewClientWithAPI_MkdirError(t *testing.T) {
	api := newFakeFS()
	api.mkdirErr = errors.New("read-only")

	_, err := NewClientWithAPI(api, "/state")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create storage directory")
}

func TestClient_SetGetDelete(t *testing.T) {
	api := newFakeFS()
	c, err := NewClientWithAPI(api, "/state")
	require.NoError(t, err)

	require.NoError(t, c.Set("token", []byte("abc")))
	assert.Contains(t, api.files, "/state/token")
	assert.NotContains(t, api.files, "/state/token.tmp")

	got, err := c.Get("token")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	require.NoError(t, c.Delete("token"))
	_, err = c.Get("token")
	assert.ErrorIs(t, err, model.ErrNotFound)

	// second delete is a no-op
	require.NoError(t, c.Delete("token"))
}

func TestClient_Get_ReadError(t *testing.T) {
	api := newFakeFS()
	api.readErr = errors.New("io failure")
	c, err := NewClientWithAPI(api, "/state")
	require.NoError(t, err)

	_, err = c.Get("user")
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "failed to read key user")
}

func TestClient_Set_Errors(t *testing.T) {
	t.Run("write", func(t *testing.T) {
		api := newFakeFS()
		api.writeErr = errors.New("disk full")
		c, err := NewClientWithAPI(api, "/state")
		require.NoError(t, err)

		err = c.Set("user", []byte("{}"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to write key user")
	})

	t.Run("rename cleans up temp file", func(t *testing.T) {
		api := newFakeFS()
		api.renameErr = errors.New("cross-device")
		c, err := NewClientWithAPI(api, "/state")
		require.NoError(t, err)

		err = c.Set("user", []byte("{}"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to commit key user")
		assert.Equal(t, []string{"/state/user.tmp"}, api.removed)
	})
}

func TestClient_InvalidKey(t *testing.T) {
	c, err := NewClientWithAPI(newFakeFS(), "/state")
	require.NoError(t, err)

	for _, key := range []string{"", "../etc/passwd", "a/b", "with space"} {
		_, err := c.Get(key)
		assert.Error(t, err, key)
		assert.Error(t, c.Set(key, nil), key)
		assert.Error(t, c.Delete(key), key)
	}
}

func TestClient_OnDisk(t *testing.T) {
	c, err := NewClient(t.TempDir() + "/nested")
	require.NoError(t, err)

	require.NoError(t, c.Set("user", []byte(`{"_id":"1"}`)))
	got, err := c.Get("user")
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"1"}`, string(got))

	require.NoError(t, c.Delete("user"))
	_, err = c.Get("user")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
