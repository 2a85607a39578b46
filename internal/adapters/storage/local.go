// Package storage holds the proof-photo stores a field visit upload can be written to.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
)

var _ portssvc.ProofStorage = (*LocalProofStorage)(nil)

// LocalProofStorage writes proofs below a directory that the HTTP server exposes under /uploads.
type LocalProofStorage struct {
	dir     string
	baseURL string
}

// NewLocalProofStorage creates dir if needed.
func NewLocalProofStorage(dir, publicBaseURL string) (*LocalProofStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalProofStorage{dir: dir, baseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

func (s *LocalProofStorage) Save(ctx context.Context, key, _ string, size int64, body io.Reader) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid proof key %q", key)
	}
	path := filepath.Join(s.dir, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create proof dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create proof file: %w", err)
	}
	written, err := io.Copy(f, io.LimitReader(body, size+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && written != size {
		err = fmt.Errorf("proof upload was %d bytes, expected %d", written, size)
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}
	if err := ctx.Err(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return s.baseURL + "/uploads/" + filepath.ToSlash(clean), nil
}
