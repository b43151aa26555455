package cmd

import (
	"fmt"

	"github.com/Iron-Ham/panelkit/internal/config"
	"github.com/Iron-Ham/panelkit/internal/definition"
	"github.com/Iron-Ham/panelkit/internal/errors"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check panel definition files",
	Long: `Parse and validate panel definition files (.yaml, .yml, .json, .jsonc).

Without arguments every definition in the configured panels directory is
checked. All problems are reported, not just the first.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	var (
		specs []*definition.Spec
		err   error
	)
	if len(args) > 0 {
		specs, err = definition.LoadFiles(args)
	} else {
		dir := configuredPanelsDir()
		specs, err = definition.LoadDir(dir)
		if err == nil && len(specs) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No definitions in %s\n", dir)
			return nil
		}
	}

	out := cmd.OutOrStdout()
	seen := make(map[string]string, len(specs))
	for _, spec := range specs {
		if first, dup := seen[spec.Namespace]; dup {
			err = errors.Join(err, errors.NewAlreadyExistsError("namespace", spec.Namespace).
				WithCause(fmt.Errorf("declared by %s and %s", first, spec.Source)))
			continue
		}
		seen[spec.Namespace] = spec.Source
		fmt.Fprintf(out, "ok  %s (%s, %d tabs)\n", spec.Source, spec.Namespace, len(spec.Tabs))
	}
	if err != nil {
		return errors.Wrap(err, "validation failed")
	}
	return nil
}

func configuredPanelsDir() string {
	return config.Get().PanelsDir()
}
