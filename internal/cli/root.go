// Package cli wires configuration, storage and services into the
// panda-server commands.
package cli

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"panda-server/internal/config"
)

type options struct {
	cfg *config.Config
}

// NewRootCommand builds the command tree. Running the root command without a
// subcommand starts the server.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "panda-server",
		Short:        "Patient and appointment records API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional; real environment variables win.
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), opts.cfg)
		},
	}

	rootCmd.AddCommand(serveCmd(opts))
	rootCmd.AddCommand(seedCmd(opts))
	rootCmd.AddCommand(validateCmd(opts))
	rootCmd.AddCommand(tokenCmd(opts))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
