// Package store implements append-only flat-file persistence. Each owner
// gets one file per entity kind under a single injected root directory;
// records are appended as delimited lines and read back in file order.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/anoudmohamed/budget-manager/internal/record"
)

// ownerKeyPattern matches every character that may not appear in a file
// name derived from an email address.
var ownerKeyPattern = regexp.MustCompile(`[^A-Za-z0-9]`)

// OwnerKey derives the stable per-user file namespace from an email
// address by replacing every non-alphanumeric character with '_'.
// Distinct emails can collide after sanitization; the sign-up uniqueness
// check operates on the raw email, so collisions only merge file
// namespaces, never accounts.
func OwnerKey(email string) string {
	return ownerKeyPattern.ReplaceAllString(email, "_")
}

// Store persists records under a root directory. It performs no locking:
// the tracker is a single-session, single-process tool.
type Store struct {
	root string
}

// New returns a Store rooted at dir. The directory is created lazily on
// the first append.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the directory this store writes under.
func (s *Store) Root() string {
	return s.root
}

// Path returns the file holding owner's records of the codec's kind.
func (s *Store) Path(owner string, kind record.Kind) string {
	return filepath.Join(s.root, owner+"_"+string(kind)+".txt")
}

// Append encodes rec and appends it to owner's file for the codec's kind,
// creating the directory and file as needed. The line and its terminator
// are written in a single call so an interrupted append never truncates
// previously written lines.
func Append[T any](s *Store, owner string, c record.Codec[T], rec T) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	f, err := os.OpenFile(s.Path(owner, c.Kind), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s file: %w", c.Kind, err)
	}
	if _, err := f.WriteString(c.EncodeLine(rec) + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("appending %s record: %w", c.Kind, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s file: %w", c.Kind, err)
	}
	return nil
}

// LoadAll reads every record of the codec's kind for owner, oldest first.
// A missing file yields an empty slice. Lines that fail to decode are
// skipped. The file is re-read on every call; there is no cached snapshot.
func LoadAll[T any](s *Store, owner string, c record.Codec[T]) ([]T, error) {
	return DecodeFile(s.Path(owner, c.Kind), c)
}

// DecodeFile reads and decodes all well-formed lines of one record file.
func DecodeFile[T any](path string, c record.Codec[T]) ([]T, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s file: %w", c.Kind, err)
	}

	var recs []T
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		rec, err := c.DecodeLine(line)
		if err != nil {
			// Malformed lines are skipped, never repaired or surfaced.
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// AppendLine appends an already-encoded line to path, creating parent
// directories as needed. Used by the user directory, which manages its
// own shared file outside the per-owner namespace.
func AppendLine(path, line string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("appending to %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	return nil
}
