package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	// Setup
	ctx := context.Background()
	base := t.TempDir()
	s, err := NewLocalStorage(base, "http://localhost:5001/uploads/")
	require.NoError(t, err)

	// Act
	path, err := s.Upload(ctx, strings.NewReader("jpeg-bytes"), "employees/EMP001/photo.jpg", "image/jpeg")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "employees/EMP001/photo.jpg", path)

	data, err := os.ReadFile(filepath.Join(base, "employees", "EMP001", "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	url, err := s.GetURL(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5001/uploads/employees/EMP001/photo.jpg", url)

	require.NoError(t, s.Delete(ctx, path))
	require.NoError(t, s.Delete(ctx, path), "deleting twice is not an error")
	_, err = os.Stat(filepath.Join(base, "employees", "EMP001", "photo.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_TraversalStaysInsideBase(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocalStorage(base, "http://x")
	require.NoError(t, err)

	path, err := s.Upload(context.Background(), strings.NewReader("x"), "../../etc/evil.txt", "text/plain")

	require.NoError(t, err)
	assert.Equal(t, "etc/evil.txt", path)
	_, err = os.Stat(filepath.Join(base, "etc", "evil.txt"))
	assert.NoError(t, err)
}

func TestLocalStorage_EmptyPathRejected(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://x")
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), strings.NewReader("x"), "", "text/plain")
	assert.Error(t, err)
}
