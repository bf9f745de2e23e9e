package constants

import (
	"path/filepath"
	"strings"
)

const MaxUploadSize = 10 * 1024 * 1024

// AllowedUploadExt maps extension to the MIME types accepted for it.
var AllowedUploadExt = map[string][]string{
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
	".png":  {"image/png"},
	".gif":  {"image/gif"},
	".webp": {"image/webp"},
	".pdf":  {"application/pdf"},
}

func IsAllowedExt(filename string) bool {
	_, ok := AllowedUploadExt[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// IsAllowedMIME checks a sniffed MIME type against the allow-list for the extension.
func IsAllowedMIME(filename, mime string) bool {
	for _, m := range AllowedUploadExt[strings.ToLower(filepath.Ext(filename))] {
		if strings.EqualFold(m, mime) {
			return true
		}
	}
	return false
}

func IsImageExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif":
		return true
	}
	return false
}
