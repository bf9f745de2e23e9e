// Package storage keeps uploads on local disk under <root>/public and <root>/private.
// Every name is sanitized and every path re-resolved inside its directory before any
// filesystem call.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"estatehub_backend/internals/constants"
)

const (
	Public  = "public"
	Private = "private"
)

type StoredFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	URL          string `json:"url"`
	Visibility   string `json:"visibility"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mimeType"`
}

type Storage struct {
	Root    string
	BaseURL string
	WebP    WebPOptions
}

func New(root, baseURL string) *Storage {
	return &Storage{Root: root, BaseURL: strings.TrimRight(baseURL, "/"), WebP: defaultWebPOptions()}
}

// Init creates both visibility directories.
func (s *Storage) Init() error {
	for _, v := range []string{Public, Private} {
		if err := os.MkdirAll(filepath.Join(s.Root, v), 0o755); err != nil {
			return err
		}
	}
	return nil
}

func Visibility(private bool) string {
	if private {
		return Private
	}
	return Public
}

func (s *Storage) dir(visibility string) (string, error) {
	switch visibility {
	case Public, Private:
		return filepath.Join(s.Root, visibility), nil
	}
	return "", ErrBadVisibility
}

func (s *Storage) URL(visibility, name string) string {
	return fmt.Sprintf("%s/%s/%s", s.BaseURL, visibility, url.PathEscape(name))
}

// GenerateName prefixes a sanitized original name with the date and a uuid.
func GenerateName(original string) (string, error) {
	clean, err := Sanitize(original)
	if err != nil {
		return "", err
	}
	if !constants.IsAllowedExt(clean) {
		return "", ErrBadExtension
	}
	return fmt.Sprintf("%s-%s-%s", time.Now().UTC().Format("20060102"), uuid.NewString(), clean), nil
}

// verify checks the extension, the sniffed MIME type and, for images, that the bytes decode.
func verify(name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if len(data) > constants.MaxUploadSize {
		return "", ErrTooLarge
	}
	if !constants.IsAllowedExt(name) {
		return "", ErrBadExtension
	}
	mt := mimetype.Detect(data)
	if !constants.IsAllowedMIME(name, mt.String()) {
		return "", ErrBadContent
	}
	if constants.IsImageExt(name) {
		if _, err := decodeImage(data); err != nil {
			return "", err
		}
	}
	return mt.String(), nil
}

// Save stores data under a generated name. With optimize, jpeg and png become webp.
func (s *Storage) Save(visibility, original string, data []byte, optimize bool) (StoredFile, error) {
	name, err := GenerateName(original)
	if err != nil {
		return StoredFile{}, err
	}
	return s.write(visibility, name, original, data, optimize)
}

// SaveAs stores data under name exactly, after the same sanitize and verify as Save.
// An existing file is never overwritten.
func (s *Storage) SaveAs(visibility, name string, data []byte) (StoredFile, error) {
	clean, err := Sanitize(name)
	if err != nil {
		return StoredFile{}, err
	}
	if clean != name {
		return StoredFile{}, ErrInvalidName
	}
	return s.write(visibility, clean, name, data, false)
}

func (s *Storage) write(visibility, name, original string, data []byte, optimize bool) (StoredFile, error) {
	dir, err := s.dir(visibility)
	if err != nil {
		return StoredFile{}, err
	}
	mt, err := verify(name, data)
	if err != nil {
		return StoredFile{}, err
	}
	if optimize {
		name, data, err = toWebP(name, data, s.WebP)
		if err != nil {
			return StoredFile{}, err
		}
		mt = mimetype.Detect(data).String()
	}
	path, err := resolveWithin(dir, name)
	if err != nil {
		return StoredFile{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StoredFile{}, err
	}
	if err := createFile(path, data); err != nil {
		return StoredFile{}, err
	}
	return StoredFile{
		Filename:     name,
		OriginalName: original,
		URL:          s.URL(visibility, name),
		Visibility:   visibility,
		Size:         int64(len(data)),
		MimeType:     mt,
	}, nil
}

// createFile never replaces an existing file.
func createFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return ErrExists
	}
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// Path resolves an existing file.
func (s *Storage) Path(visibility, name string) (string, error) {
	dir, err := s.dir(visibility)
	if err != nil {
		return "", err
	}
	clean, err := Sanitize(name)
	if err != nil || clean != name {
		return "", ErrInvalidName
	}
	path, err := resolveWithin(dir, clean)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func (s *Storage) Delete(visibility, name string) error {
	path, err := s.Path(visibility, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
