package main

import (
	"fmt"
	"strings"

	"github.com/jwulff/glossplayer/internal/config"
)

// resolveFileArg expands ~ and makes a file argument absolute.
func resolveFileArg(arg string) (string, error) {
	path, err := config.ExpandPath(strings.TrimSpace(arg))
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", arg, err)
	}
	if path == "" {
		return "", fmt.Errorf("file path is required")
	}
	return path, nil
}
