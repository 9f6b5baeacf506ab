package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"panda-server/internal/utils"
)

func tokenCmd(opts *options) *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <subject>",
		Short: "Issue a bearer token for the mutating API routes",
		Long:  "Signs an HS256 token for subject with JWT_SECRET and prints it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.cfg.AuthEnabled() {
				return errors.New("JWT_SECRET is not set; the server accepts unauthenticated writes")
			}
			if ttl <= 0 {
				return fmt.Errorf("ttl must be positive, got %s", ttl)
			}

			token, err := utils.GenerateToken(args[0], opts.cfg.JWTSecret, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}
