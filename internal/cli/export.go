package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/core"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/ronmurphy/iconstudio/pkg/iconfile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newExportCmd(get func() *app) *cobra.Command {
	var (
		inputs    []string
		out       string
		assumeYes bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Bundle a list of icon configurations into one theme stylesheet",
		Long: `Bundle a list of icon configurations into one theme stylesheet.

Each input is a YAML or JSON list of configurations; keys may be camelCase,
snake_case or kebab-case. Entries that share a working-set identifier ask
before replacing the earlier one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get().session(cmd, assumeYes)
			added, skipped, err := importConfigs(s, inputs)
			if err != nil {
				return err
			}
			if added == 0 {
				return errors.Wrap(model.ErrNotFound, "no icon configurations to export")
			}
			css, name := s.ExportAll()
			if err := writeOutput(cmd, out, name, []byte(css)); err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"icons": s.Working().Len(), "skipped": skipped}).Info("exported theme")
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&inputs, "input", nil, "Configuration list file (repeatable)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file or directory instead of stdout")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Replace duplicate entries without asking")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// importConfigs loads every input into the session's working set. The first
// configuration becomes the theme base. Declined duplicates are skipped.
func importConfigs(s *core.Session, inputs []string) (added, skipped int, err error) {
	for _, path := range inputs {
		configs, err := iconfile.Load(path)
		if err != nil {
			return added, skipped, err
		}
		for i, cfg := range configs {
			if added == 0 {
				if err := s.Apply(cfg); err != nil {
					return added, skipped, errors.Wrapf(err, "%s entry %d", path, i+1)
				}
			}
			if _, err := s.Working().Import(cfg); err != nil {
				if model.IsKind(err, model.ErrDeclined) {
					skipped++
					continue
				}
				return added, skipped, errors.Wrapf(err, "%s entry %d", path, i+1)
			}
			added++
		}
	}
	if skipped > 0 {
		logrus.Warn(fmt.Sprintf("kept the earlier entry for %d duplicate configuration(s)", skipped))
	}
	return added, skipped, nil
}
