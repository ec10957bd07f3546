// Command glossplayer plays ASL gloss notation in sync with a playback clock.
// Without a subcommand it opens the terminal UI; subcommands manage the song
// library and expose the gloss tools over MCP.
package main
