package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound indicates that no document is stored for the requested key.
var ErrNotFound = errors.New("session document not found")

// Store persists one graph document per (namespace, session id) pair as a
// flat file on the local filesystem. The layout is the key-value contract
// (namespace, id) -> text; a real key-value store could replace it without
// touching callers.
type Store struct {
	root string
}

// NewStore creates a store rooted at the given directory.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// EnsureNamespace idempotently creates the storage location for a namespace.
func (s *Store) EnsureNamespace(namespace string) error {
	if err := os.MkdirAll(filepath.Join(s.root, namespace), 0o755); err != nil {
		return fmt.Errorf("failed to create namespace %s: %w", namespace, err)
	}
	return nil
}

// Read returns the current document for the key.
func (s *Store) Read(namespace, sessionID string) (string, error) {
	data, err := os.ReadFile(s.documentPath(namespace, sessionID))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%s/%s: %w", namespace, sessionID, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session document: %w", err)
	}
	return string(data), nil
}

// Write creates or fully overwrites the document for the key. The text is
// staged to a temporary file and renamed into place, so a concurrent reader
// never observes a partial document. Concurrent writers to the same key are
// last-writer-wins.
func (s *Store) Write(namespace, sessionID, text string) error {
	if err := s.EnsureNamespace(namespace); err != nil {
		return err
	}

	path := s.documentPath(namespace, sessionID)
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+sessionID+".*")
	if err != nil {
		return fmt.Errorf("failed to stage session document: %w", err)
	}

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write session document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write session document: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to commit session document: %w", err)
	}
	return nil
}

// Exists reports whether a document is stored for the key.
func (s *Store) Exists(namespace, sessionID string) bool {
	_, err := os.Stat(s.documentPath(namespace, sessionID))
	return err == nil
}

// documentPath generates the filesystem path for a session document.
func (s *Store) documentPath(namespace, sessionID string) string {
	return filepath.Join(s.root, namespace, sessionID+".dot")
}
