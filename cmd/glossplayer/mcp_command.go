package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jwulff/glossplayer/internal/mcpserver"
)

func newMCPCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the gloss tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.ensureLogger()

			// Stdout carries the protocol, so library problems are only logged.
			var reader mcpserver.SongReader
			store, songs, err := ctx.openLibrary()
			if err != nil {
				logger.Warn("mcp serving without library", "error", err)
			} else {
				defer store.Close()
				reader = songs
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server := mcpserver.NewServer(mcpserver.NewHandlers(reader, logger), version)
			logger.Info("mcp server starting", "library", reader != nil)
			return mcpserver.Serve(runCtx, server, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
