package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"panda-server/internal/seed"
)

func seedCmd(opts *options) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load example patients and appointments",
		Long: "Loads " + seed.PatientsFile + " and " + seed.AppointmentsFile +
			" from the given directory through the services. Invalid records are logged and skipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = opts.cfg.SeedDir
			}
			if dir == "" {
				dir = "data"
			}

			a, err := newApp(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer a.Close(cmd.Context())

			summaries, err := seed.New(a.patients, a.appointments, a.log).Run(cmd.Context(), os.DirFS(dir))
			if err != nil {
				return err
			}
			for _, s := range summaries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d loaded, %d skipped\n", s.File, s.Loaded, s.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory holding the example JSON files (default $SEED_DIR or ./data)")
	return cmd
}
