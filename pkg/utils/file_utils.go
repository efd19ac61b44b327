package utils

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var unsafeFilenamechars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename strips path components and unsafe characters from an
// uploaded filename.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenamechars.ReplaceAllString(name, "_")
	return name
}

// UniqueFilename builds a collision-free filename keeping the original
// extension, e.g. "employee_12_1a2b3c4d.png".
func UniqueFilename(original, prefix string) string {
	ext := strings.ToLower(filepath.Ext(SanitizeFilename(original)))
	id := uuid.New().String()[:8]
	if prefix != "" {
		return fmt.Sprintf("%s_%s%s", prefix, id, ext)
	}
	return id + ext
}
