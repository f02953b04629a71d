package storage

import (
	"context"
	"io"
)

type FileStorage interface {
	// Upload uploads a file and returns the file path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// GetURL returns the public URL of a stored file
	GetURL(ctx context.Context, path string) (string, error)
}
