// Package config loads, normalizes, and validates glossplayer configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the GLOSSPLAYER_LIBRARY_DB environment override for
// the library database location. The CLI, the terminal UI, and the MCP server
// all obtain their settings through this package.
package config
