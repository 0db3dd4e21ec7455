// internal/store/bucket.go
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mwiater/bleuboard/internal/logging"
)

// ErrInvalidRef is returned for image references that could escape the bucket.
var ErrInvalidRef = errors.New("invalid image reference")

// Bucket stores training images as flat files under a root directory.
type Bucket struct {
	root    string
	baseURL string
}

// NewBucket creates the root directory if needed. When baseURL is empty,
// previews resolve to file:// URLs.
func NewBucket(root, baseURL string) (*Bucket, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("image bucket root is empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create image bucket %s: %w", root, err)
	}
	return &Bucket{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Put copies body into the bucket and returns the new reference. The
// original file extension is kept so previews get a sensible content type.
func (b *Bucket) Put(ctx context.Context, filename string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ref := uuid.NewString() + strings.ToLower(filepath.Ext(filename))

	tmp, err := os.CreateTemp(b.root, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("unable to stage image upload: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("unable to write image %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("unable to close image %s: %w", filename, err)
	}
	if err := os.Rename(tmpName, filepath.Join(b.root, ref)); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("unable to store image %s: %w", filename, err)
	}

	logging.LogOperation("upload", ref, nil)
	return ref, nil
}

// Delete removes the image behind ref. ref may also be a preview URL, in
// which case its last path segment is used. Missing files are not an error.
func (b *Bucket) Delete(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ref = refFromURL(ref)
	if ref == "" {
		return nil
	}
	path, err := b.Path(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.LogOperation("remove-image", ref, err)
		return fmt.Errorf("unable to delete image %s: %w", ref, err)
	}
	logging.LogOperation("remove-image", ref, nil)
	return nil
}

// Path returns the on-disk location of ref.
func (b *Bucket) Path(ref string) (string, error) {
	if ref == "" || ref == "." || ref == ".." || strings.ContainsAny(ref, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return filepath.Join(b.root, ref), nil
}

// Stat checks that ref names a stored image file.
func (b *Bucket) Stat(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := b.Path(ref)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %q is a directory", ErrInvalidRef, ref)
	}
	return nil
}

// PreviewURL resolves ref to a displayable URL, or "" when there is no image.
func (b *Bucket) PreviewURL(ref string) string {
	if strings.TrimSpace(ref) == "" {
		return ""
	}
	if b.baseURL != "" {
		return b.baseURL + "/" + ref
	}
	path, err := b.Path(ref)
	if err != nil {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "file://" + filepath.ToSlash(path)
}

func refFromURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndexAny(ref, `/\`); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
