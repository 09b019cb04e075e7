// Package upload stores employee photos and documents on the local filesystem.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	dErrors "hrcore/pkg/domain-errors"
	id "hrcore/pkg/domain"
)

// Kind selects the subdirectory a file is stored in.
type Kind string

const (
	KindPhoto    Kind = "photos"
	KindDocument Kind = "documents"
)

// PublicPrefix is the URL prefix returned paths start with.
const PublicPrefix = "/uploads/"

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// LocalStorage writes uploads below a root directory. All file access goes through
// an os.Root so paths cannot escape it.
type LocalStorage struct {
	dir      string
	maxBytes int64
	now      func() time.Time
}

// Option configures LocalStorage.
type Option func(*LocalStorage)

// WithClock overrides the clock used to build unique file names.
func WithClock(now func() time.Time) Option {
	return func(s *LocalStorage) {
		s.now = now
	}
}

// NewLocal creates the root and its subdirectories if needed.
// maxBytes <= 0 disables the size limit.
func NewLocal(dir string, maxBytes int64, opts ...Option) (*LocalStorage, error) {
	for _, kind := range []Kind{KindPhoto, KindDocument} {
		if err := os.MkdirAll(filepath.Join(dir, string(kind)), 0o755); err != nil {
			return nil, fmt.Errorf("create upload dir %s: %w", kind, err)
		}
	}
	s := &LocalStorage{dir: dir, maxBytes: maxBytes, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Save writes r to {kind}/{employeeID}_{unixMillis}_{sanitized name} and returns the
// public path, e.g. /uploads/documents/<id>_1739174400000_passport.pdf.
func (s *LocalStorage) Save(_ context.Context, kind Kind, employeeID id.EmployeeID, filename string, r io.Reader) (string, error) {
	if kind != KindPhoto && kind != KindDocument {
		return "", fmt.Errorf("unknown upload kind %q", kind)
	}

	name := fmt.Sprintf("%s_%d_%s", employeeID, s.now().UnixMilli(), SanitizeFileName(filename))
	rel := path.Join(string(kind), name)

	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return "", fmt.Errorf("open upload root: %w", err)
	}
	defer root.Close()

	f, err := root.OpenFile(rel, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	written, copyErr := io.Copy(f, src)
	closeErr := f.Close()
	if copyErr == nil && s.maxBytes > 0 && written > s.maxBytes {
		copyErr = dErrors.Newf(dErrors.CodeTooLarge, "file exceeds %d bytes", s.maxBytes)
	}
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = root.Remove(rel)
		return "", err
	}

	return PublicPrefix + rel, nil
}

// Delete removes a file previously returned by Save. Missing files are ignored.
func (s *LocalStorage) Delete(_ context.Context, publicPath string) error {
	rel := strings.TrimPrefix(publicPath, "/")
	rel = strings.TrimPrefix(rel, strings.TrimPrefix(PublicPrefix, "/"))
	if rel == "" {
		return nil
	}

	root, err := os.OpenRoot(s.dir)
	if err != nil {
		return fmt.Errorf("open upload root: %w", err)
	}
	defer root.Close()

	if err := root.Remove(rel); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete upload: %w", err)
	}
	return nil
}

// Handler serves stored files under PublicPrefix.
func (s *LocalStorage) Handler() http.Handler {
	return http.StripPrefix(strings.TrimSuffix(PublicPrefix, "/"), http.FileServerFS(os.DirFS(s.dir)))
}

// SanitizeFileName keeps the base name of filename and replaces every character
// outside [a-zA-Z0-9.-] with an underscore.
func SanitizeFileName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	return unsafeNameChars.ReplaceAllString(base, "_")
}
