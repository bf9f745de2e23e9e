package storage

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	ErrInvalidName    = errors.New("Invalid filename")
	ErrOutsideRoot    = errors.New("Resolved path escapes the upload directory")
	ErrBadExtension   = errors.New("File type not allowed")
	ErrBadContent     = errors.New("File content does not match its type")
	ErrTooLarge       = errors.New("File exceeds the 10MB limit")
	ErrNotFound       = errors.New("File not found")
	ErrBadVisibility  = errors.New("Visibility must be public or private")
	ErrEmptyFile      = errors.New("File is empty")
	ErrExists         = errors.New("A file with this name already exists")
	unsafeFilenameSet = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

const maxNameLen = 255

// Sanitize rejects names that could address anything but a plain file in the target directory,
// then strips the rest to [A-Za-z0-9._-].
func Sanitize(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLen {
		return "", ErrInvalidName
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return "", ErrInvalidName
	}
	if strings.HasPrefix(name, ".") {
		return "", ErrInvalidName
	}
	clean := unsafeFilenameSet.ReplaceAllString(name, "_")
	clean = strings.Trim(clean, "_")
	if clean == "" || strings.HasPrefix(clean, ".") {
		return "", ErrInvalidName
	}
	return clean, nil
}

// resolveWithin joins name onto dir and verifies the result is a direct child of dir.
func resolveWithin(dir, name string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	full := filepath.Join(absDir, name)
	rel, err := filepath.Rel(absDir, full)
	if err != nil {
		return "", ErrOutsideRoot
	}
	if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) ||
		strings.ContainsRune(rel, filepath.Separator) || filepath.IsAbs(rel) {
		return "", ErrOutsideRoot
	}
	return full, nil
}
