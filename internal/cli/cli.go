package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/internal/config"
	"github.com/ronmurphy/iconstudio/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// InitCLI builds the iconstudio command tree.
func InitCLI() *cobra.Command {
	var a *app
	get := func() *app { return a }

	RootCmd := &cobra.Command{
		Use:           "iconstudio",
		Short:         "iconstudio styles icon-font glyphs and exports them as CSS and PNG",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if initConfig, _ := cmd.Flags().GetBool("init-config"); initConfig {
				return nil
			}
			cfg, err := config.InitConfig(cmd)
			if err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			if err := logger.SetupLogger(cfg.LogLevel, cmd.Name() == "serve"); err != nil {
				return err
			}
			a, err = newApp(cmd.Context(), cfg)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a == nil {
				return nil
			}
			return a.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			initConfig, _ := cmd.Flags().GetBool("init-config")
			if !initConfig {
				return cmd.Help()
			}
			configPath, err := config.InitConfigFile()
			if err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Config file created successfully at: %s\n", configPath)
			fmt.Fprintf(cmd.OutOrStdout(), "📝 Edit the file to customize your settings\n")
			return nil
		},
	}

	config.BindFlags(RootCmd)

	RootCmd.AddCommand(
		newCSSCmd(get),
		newThemeCmd(get),
		newPNGCmd(get),
		newExportCmd(get),
		newSavedCmd(get),
		newCatalogCmd(get),
		newServeCmd(get),
	)
	return RootCmd
}

// writeOutput writes data to path, or to the command's stdout when path is
// empty. A directory path gets defaultName appended.
func writeOutput(cmd *cobra.Command, path, defaultName string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, defaultName)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	logrus.WithField("path", path).Info("wrote file")
	fmt.Fprintln(cmd.ErrOrStderr(), path)
	return nil
}

func newCSSCmd(get func() *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "css",
		Short: "Print the CSS fragment for one icon configuration",
		Args:  cobra.NoArgs,
	}
	style := addStyleFlags(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s := get().session(cmd, false)
		if err := style.apply(s); err != nil {
			return err
		}
		css, err := s.CSS()
		if err != nil {
			return err
		}
		return writeOutput(cmd, out, "icon.css", []byte(css))
	}
	return cmd
}

func newThemeCmd(get func() *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Print the reusable theme stylesheet for one icon configuration",
		Args:  cobra.NoArgs,
	}
	style := addStyleFlags(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file or directory instead of stdout")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s := get().session(cmd, false)
		if err := style.apply(s); err != nil {
			return err
		}
		css, name, err := s.ThemeCSS()
		if err != nil {
			return err
		}
		return writeOutput(cmd, out, name, []byte(css))
	}
	return cmd
}

func newPNGCmd(get func() *app) *cobra.Command {
	var (
		out     string
		pngSize int
	)
	cmd := &cobra.Command{
		Use:   "png",
		Short: "Rasterise one icon configuration to PNG",
		Long: `Rasterise one icon configuration to PNG.

The glyph comes from the font files in --font-dir and the codepoint from the
catalog, so Material icons need --material-codepoints.`,
		Args: cobra.NoArgs,
	}
	style := addStyleFlags(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", ".", "Output file or directory")
	cmd.Flags().IntVar(&pngSize, "png-size", 0, "Edge length in px (default: size axis times default_png_scale)")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		a := get()
		if _, err := a.readyCatalog(cmd.Context()); err != nil {
			return err
		}
		s := a.session(cmd, false)
		if err := style.apply(s); err != nil {
			return err
		}
		data, name, err := s.PNG(pngSize)
		if err != nil {
			return err
		}
		if out == "" {
			out = name
		}
		return writeOutput(cmd, out, name, data)
	}
	return cmd
}

func newServeCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the studio API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), get())
		},
	}
}
