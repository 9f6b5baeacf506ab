package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"panda-server/internal/localisation"
	"panda-server/internal/models"
	"panda-server/internal/seed"
	"panda-server/internal/validation"
)

var validators = map[string]func(validation.Record) []models.Message{
	"patient":     validation.ValidatePatient,
	"appointment": validation.ValidateAppointment,
}

func validateCmd(opts *options) *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:       "validate patient|appointment <file>",
		Short:     "Validate a JSON array of records without storing them",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"patient", "appointment"},
		RunE: func(cmd *cobra.Command, args []string) error {
			validate, ok := validators[args[0]]
			if !ok {
				return fmt.Errorf("unknown entity %q: want patient or appointment", args[0])
			}

			translator, err := localisation.LoadDir(opts.cfg.LocalesDir, opts.cfg.DefaultLanguage)
			if err != nil {
				return err
			}
			if lang == "" {
				lang = translator.DetectLanguage(localeFromEnv())
			}

			path := args[1]
			records, err := seed.ReadRecords(os.DirFS(filepath.Dir(path)), filepath.Base(path))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			invalid := 0
			for i, record := range records {
				errs := validate(record)
				if len(errs) == 0 {
					fmt.Fprintf(out, "record %d: ok\n", i)
					continue
				}
				invalid++
				for _, e := range errs {
					fmt.Fprintf(out, "record %d: %s\n", i, translator.Translate(string(e.Key), lang, e.Params))
				}
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d records invalid", invalid, len(records))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "language for error messages (default from $LANG)")
	return cmd
}

// localeFromEnv turns a POSIX locale such as fr_FR.UTF-8 into a language tag.
func localeFromEnv() string {
	locale := os.Getenv("LC_ALL")
	if locale == "" {
		locale = os.Getenv("LANG")
	}
	if i := strings.IndexByte(locale, '.'); i >= 0 {
		locale = locale[:i]
	}
	return strings.ReplaceAll(locale, "_", "-")
}
