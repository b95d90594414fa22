// Package upload serves the admin file-upload endpoint.
package upload

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// ObjectKey derives a storage key "<uuid>.<ext>" from the client's filename.
// Filenames without an extension are rejected with ErrInvalidFilename.
func ObjectKey(filename string) (string, error) {
	ext, err := extension(filename)
	if err != nil {
		return "", err
	}
	return uuid.NewString() + "." + ext, nil
}

// extension returns the text after the last "." of the base name.
func extension(filename string) (string, error) {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	i := strings.LastIndexByte(base, '.')
	if i < 0 || i == len(base)-1 {
		return "", ErrInvalidFilename
	}
	return base[i+1:], nil
}
