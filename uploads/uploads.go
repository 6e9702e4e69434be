package uploads

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"boutique-tailoring/apperrors"

	"github.com/google/uuid"
)

// Policy decides which uploaded files are accepted.
type Policy struct {
	MaxSize      int64
	AllowedTypes []string
}

// Check returns the lower-cased extension of an acceptable file.
func (p Policy) Check(name string, size int64) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if !p.allowed(ext) {
		return "", fmt.Errorf("%w: %s", apperrors.ErrFileType, name)
	}
	if p.MaxSize > 0 && size > p.MaxSize {
		return "", fmt.Errorf("%w: %s is %d bytes", apperrors.ErrFileTooLarge, name, size)
	}
	return ext, nil
}

func (p Policy) allowed(ext string) bool {
	if ext == "" {
		return false
	}
	for _, t := range p.AllowedTypes {
		if t == ext {
			return true
		}
	}
	return false
}

// Store writes files below a root directory. Paths handed in and returned
// are slash separated and relative to the root.
type Store struct {
	root   string
	policy Policy
}

func NewStore(root string, policy Policy) *Store {
	return &Store{root: root, policy: policy}
}

func (s *Store) Root() string { return s.root }

func (s *Store) Policy() Policy { return s.policy }

// Sub returns a store rooted at a subdirectory with the same policy.
func (s *Store) Sub(dir string) *Store {
	return &Store{root: filepath.Join(s.root, filepath.FromSlash(dir)), policy: s.policy}
}

func (s *Store) abs(rel string) string {
	return filepath.Join(s.root, filepath.FromSlash(rel))
}

// EnsureDir creates dir and its parents if missing.
func (s *Store) EnsureDir(dir string) error {
	if err := os.MkdirAll(s.abs(dir), 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrUploadDirectory, dir, err)
	}
	return nil
}

// Save writes r to dir under a generated name and returns the relative path.
// The content is cut off at the policy size limit.
func (s *Store) Save(dir, ext string, r io.Reader) (string, error) {
	rel := path.Join(dir, uuid.New().String()+"."+ext)
	f, err := os.OpenFile(s.abs(rel), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", rel, err)
	}

	src := r
	if s.policy.MaxSize > 0 {
		src = io.LimitReader(r, s.policy.MaxSize+1)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && s.policy.MaxSize > 0 && n > s.policy.MaxSize {
		err = fmt.Errorf("%w: %s", apperrors.ErrFileTooLarge, rel)
	}
	if err != nil {
		_ = os.Remove(s.abs(rel))
		return "", fmt.Errorf("write %s: %w", rel, err)
	}
	return rel, nil
}

func (s *Store) Remove(rel string) error {
	if err := os.Remove(s.abs(rel)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Batch tracks the files written for one unit of work so they can be
// removed if that work is abandoned.
type Batch struct {
	store *Store
	saved []string
}

func (s *Store) NewBatch() *Batch {
	return &Batch{store: s}
}

func (b *Batch) Save(dir, ext string, r io.Reader) (string, error) {
	rel, err := b.store.Save(dir, ext, r)
	if err != nil {
		return "", err
	}
	b.saved = append(b.saved, rel)
	return rel, nil
}

func (b *Batch) Saved() []string { return b.saved }

// Discard removes every file saved through the batch. It returns the first
// removal error but always attempts all of them.
func (b *Batch) Discard() error {
	var first error
	for _, rel := range b.saved {
		if err := b.store.Remove(rel); err != nil && first == nil {
			first = err
		}
	}
	b.saved = nil
	return first
}

// DecodeDataURI parses "data:image/<type>;base64,<payload>".
func DecodeDataURI(uri string) ([]byte, string, error) {
	const prefix = "data:image/"
	if !strings.HasPrefix(uri, prefix) {
		return nil, "", apperrors.ErrInvalidDataURI
	}
	rest := uri[len(prefix):]
	sep := strings.Index(rest, ";base64,")
	if sep <= 0 {
		return nil, "", apperrors.ErrInvalidDataURI
	}
	ext := strings.ToLower(rest[:sep])
	for _, r := range ext {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_') {
			return nil, "", apperrors.ErrInvalidDataURI
		}
	}
	data, err := base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil || len(data) == 0 {
		return nil, "", apperrors.ErrInvalidDataURI
	}
	return data, ext, nil
}

// SaveDataURI decodes a data URI, applies the policy and writes the image.
func (b *Batch) SaveDataURI(dir, uri string) (string, error) {
	data, ext, err := DecodeDataURI(uri)
	if err != nil {
		return "", err
	}
	if _, err := b.store.policy.Check("photo."+ext, int64(len(data))); err != nil {
		return "", err
	}
	return b.Save(dir, ext, bytes.NewReader(data))
}
