// Package importer reads gloss text files and adds them to the library.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MaxFileSize is the largest gloss file ReadFile accepts.
const MaxFileSize = 1 << 20

// ErrFileTooLarge is returned for files over MaxFileSize.
var ErrFileTooLarge = errors.New("gloss file too large")

// ReadFile returns the text of a gloss file. A UTF-8 or UTF-16 byte order
// mark selects the decoding; without one the file is read as UTF-8.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open gloss file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat gloss file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("gloss file %s is a directory", path)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("%w: %s is %d bytes", ErrFileTooLarge, path, info.Size())
	}

	raw, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("read gloss file: %w", err)
	}
	if len(raw) > MaxFileSize {
		return "", fmt.Errorf("%w: %s", ErrFileTooLarge, path)
	}
	return decodeText(raw)
}

func decodeText(raw []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", fmt.Errorf("decode gloss file: %w", err)
	}
	return string(text), nil
}

// TitleFromFilename guesses a song title from a gloss file name.
func TitleFromFilename(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	lower := strings.ToLower(base)
	switch {
	case strings.HasSuffix(lower, "-gloss.txt"):
		base = base[:len(base)-len("-gloss.txt")]
	case strings.HasSuffix(lower, ".txt"):
		base = base[:len(base)-len(".txt")]
	}
	return strings.TrimSpace(strings.ReplaceAll(base, "_", " "))
}

// LooksLikeGloss reports whether name is a .txt file with "gloss" in its name.
func LooksLikeGloss(name string) bool {
	lower := strings.ToLower(filepath.Base(name))
	return strings.HasSuffix(lower, ".txt") && strings.Contains(lower, "gloss")
}
