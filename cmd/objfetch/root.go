package main

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the objfetch root command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "objfetch",
		Short: "Fetch objects from MinIO or S3 to local disk",
		Long: `objfetch downloads objects from a MinIO or S3-compatible bucket.

Connection settings are read from OBJFETCH_* environment variables.
Downloads use a managed transfer and fall back to a stream copy when the
transfer fails.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewFetchCommand())
	return rootCmd
}
