package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSavedCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Manage saved icon configurations",
	}
	cmd.AddCommand(
		newSavedListCmd(get),
		newSavedSaveCmd(get),
		newSavedLoadCmd(get),
		newSavedDeleteCmd(get),
		newSavedAutoSaveCmd(get),
	)
	return cmd
}

func newSavedListCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved configurations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := get().saved.List(cmd.Context())
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tICON\tLIBRARY\tSAVED")
			for _, s := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s/%s\t%s\n",
					s.ID, s.Name, s.Icon, s.Library, s.Family, s.Time().Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func newSavedSaveCmd(get func() *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save an icon configuration",
		Args:  cobra.NoArgs,
	}
	style := addStyleFlags(cmd)
	cmd.Flags().StringVar(&name, "name", "", `Display name (default "<icon> - <date>")`)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s := get().session(cmd, false)
		if err := style.apply(s); err != nil {
			return err
		}
		saved, err := s.SaveConfiguration(cmd.Context(), name)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), saved.ID)
		return nil
	}
	return cmd
}

func newSavedLoadCmd(get func() *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "load <id>",
		Short: "Print a saved configuration as CSS or YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := get().session(cmd, false)
			if err := s.LoadSaved(cmd.Context(), args[0]); err != nil {
				return err
			}
			switch format {
			case "css":
				css, err := s.CSS()
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), css)
				return err
			case "yaml":
				cfg, err := s.Config()
				if err != nil {
					return err
				}
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				defer enc.Close()
				return enc.Encode(cfg)
			}
			return &model.FieldError{Field: "format", Reason: "use css or yaml"}
		},
	}
	cmd.Flags().StringVar(&format, "format", "css", "Output format: css or yaml")
	return cmd
}

func newSavedDeleteCmd(get func() *app) *cobra.Command {
	var assumeYes bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			saved, err := a.saved.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !terminalConfirmer(assumeYes).Confirm(fmt.Sprintf("Delete %q?", saved.Name)) {
				return model.NewExitError(model.UserCanceled, errors.New("deletion cancelled"))
			}
			return a.session(cmd, assumeYes).DeleteSaved(cmd.Context(), saved.ID)
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Delete without asking")
	return cmd
}

func newSavedAutoSaveCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "autosave [on|off]",
		Short: "Show or set the auto-save preference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if len(args) == 1 {
				on, err := parseSwitch(args[0])
				if err != nil {
					return err
				}
				if err := a.saved.SetAutoSave(cmd.Context(), on); err != nil {
					return err
				}
			}
			state := "off"
			if a.saved.AutoSave(cmd.Context()) {
				state = "on"
			}
			fmt.Fprintln(cmd.OutOrStdout(), state)
			return nil
		},
	}
}

func parseSwitch(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	on, err := strconv.ParseBool(s)
	if err != nil {
		return false, &model.FieldError{Field: "autosave", Reason: "use on or off"}
	}
	return on, nil
}
