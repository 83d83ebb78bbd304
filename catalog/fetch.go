package catalog

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/sirupsen/logrus"
)

// Source names where each catalog document lives. Each entry is a file path
// or an http(s) URL. MaterialCodepoints is optional.
type Source struct {
	Material           string
	FontAwesome        string
	MaterialCodepoints string
}

// Fetcher reads catalog documents from disk or over HTTP.
type Fetcher struct {
	client *retryablehttp.Client
}

// NewFetcher returns a fetcher that retries HTTP reads up to retries times.
func NewFetcher(retries int) *Fetcher {
	client := retryablehttp.NewClient()
	client.Logger = log.New(io.Discard, "", 0)
	client.RetryMax = retries
	return &Fetcher{client: client}
}

// Read returns the document at loc.
func (f *Fetcher) Read(ctx context.Context, loc string) ([]byte, error) {
	if strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://") {
		req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
		if err != nil {
			return nil, err
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, errors.Errorf("GET %s: %s", loc, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	path, err := homedir.Expand(loc)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// Load reads and parses both catalogs. progress, when set, receives the
// loading stage messages.
func (f *Fetcher) Load(ctx context.Context, src Source, progress func(string)) (*Catalog, error) {
	if progress == nil {
		progress = func(string) {}
	}

	progress("Loading Material Icons...")
	data, err := f.Read(ctx, src.Material)
	if err != nil {
		return nil, errors.Wrapf(model.ErrCatalogFetch, "material catalog: %v", err)
	}
	material, err := ParseMaterial(data)
	if err != nil {
		return nil, errors.Wrap(model.ErrCatalogFetch, err.Error())
	}

	progress("Loading Font Awesome Icons...")
	data, err = f.Read(ctx, src.FontAwesome)
	if err != nil {
		return nil, errors.Wrapf(model.ErrCatalogFetch, "font awesome catalog: %v", err)
	}
	fontAwesome, err := ParseFontAwesome(data)
	if err != nil {
		return nil, errors.Wrap(model.ErrCatalogFetch, err.Error())
	}

	progress("Initializing...")
	if len(material) == 0 || len(fontAwesome) == 0 {
		return nil, errors.Wrap(model.ErrCatalogFetch, "icon data is incomplete")
	}
	c := New(material, fontAwesome)

	if src.MaterialCodepoints != "" {
		data, err := f.Read(ctx, src.MaterialCodepoints)
		if err != nil {
			logrus.WithError(err).Warn("material codepoints unavailable, material PNG export disabled")
		} else {
			c.SetMaterialCodepoints(ParseCodepoints(data))
		}
	}

	logrus.WithFields(logrus.Fields{
		"material": len(material),
		"solid":    len(fontAwesome[model.FamilySolid]),
		"regular":  len(fontAwesome[model.FamilyRegular]),
		"brands":   len(fontAwesome[model.FamilyBrands]),
	}).Info("icons loaded")
	return c, nil
}
