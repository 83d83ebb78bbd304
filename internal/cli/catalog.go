package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/catalog"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newCatalogCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Build and inspect the icon catalog",
	}
	cmd.AddCommand(newCatalogFetchCmd(get), newCatalogListCmd(get))
	return cmd
}

func newCatalogFetchCmd(get func() *app) *cobra.Command {
	var (
		outDir         string
		materialURL    string
		fontAwesomeURL string
	)
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the icon name lists and write the catalog files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f := get().fetcher
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return errors.Wrapf(err, "creating %s", outDir)
			}

			logrus.Info("fetching Material Symbols metadata")
			material, err := f.BuildMaterial(ctx, materialURL)
			if err != nil {
				return errors.Wrap(model.ErrCatalogFetch, err.Error())
			}
			data, err := catalog.EncodeMaterial(material)
			if err != nil {
				return err
			}
			if err := writeCatalogFile(filepath.Join(outDir, "material_icons.json"), data); err != nil {
				return err
			}

			logrus.Info("fetching Font Awesome package listings")
			fontAwesome, err := f.BuildFontAwesome(ctx, fontAwesomeURL)
			if err != nil {
				return errors.Wrap(model.ErrCatalogFetch, err.Error())
			}
			data, err = catalog.EncodeFontAwesome(fontAwesome)
			if err != nil {
				return err
			}
			if err := writeCatalogFile(filepath.Join(outDir, "fa_free_icons.json"), data); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "material: %d icons\n", len(material))
			for _, fam := range model.LibraryFontAwesome.Families() {
				if icons, ok := fontAwesome[fam]; ok {
					fmt.Fprintf(out, "fontawesome %s: %d icons\n", fam, len(icons))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "icons", "Directory to write the catalog files to")
	cmd.Flags().StringVar(&materialURL, "material-url", catalog.MaterialMetadataURL, "Material Symbols metadata document")
	cmd.Flags().StringVar(&fontAwesomeURL, "fontawesome-url", catalog.FontAwesomeContentsURL, "Font Awesome package listing base")
	return cmd
}

func writeCatalogFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	logrus.WithField("path", path).Info("wrote catalog")
	return nil
}

func newCatalogListCmd(get func() *app) *cobra.Command {
	var (
		library string
		family  string
		near    string
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the icons of one library family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := model.ParseLibrary(library)
			if err != nil {
				return &model.FieldError{Field: "library", Reason: err.Error()}
			}
			fam := model.Family(family)
			if fam == "" {
				fam = lib.DefaultFamily()
			}
			if !lib.HasFamily(fam) {
				return &model.FieldError{Field: "family", Reason: string(fam) + " is not a " + string(lib) + " family"}
			}
			cat, err := get().readyCatalog(cmd.Context())
			if err != nil {
				return err
			}

			names := cat.Icons(lib, fam)
			if near != "" {
				n := limit
				if n <= 0 {
					n = 10
				}
				names = cat.Suggest(lib, fam, near, n)
			}
			if limit > 0 && len(names) > limit {
				names = names[:limit]
			}
			if len(names) == 0 {
				return errors.Wrapf(model.ErrNotFound, "no icons in %s", lib.DisplayName(fam))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
			return err
		},
	}
	cmd.Flags().StringVar(&library, "library", string(model.LibraryMaterial), "Icon library")
	cmd.Flags().StringVar(&family, "family", "", "Family (default: the library's first family)")
	cmd.Flags().StringVar(&near, "near", "", "Show the closest matches to this name instead")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many names")
	return cmd
}
