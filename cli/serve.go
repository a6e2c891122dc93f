package main

import (
	"log/slog"

	"github.com/ankit-chaubey/exifkit/core/server"
	"github.com/spf13/cobra"
)

var listenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve metadata extraction over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Listen
		if listenAddr != "" {
			addr = listenAddr
		}
		return server.New(service, cfg.MaxUploadBytes, slog.Default()).Start(addr)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "listen address (default from config)")
}
