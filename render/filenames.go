package render

import (
	"fmt"
	"time"

	"github.com/ronmurphy/iconstudio/model"
)

const fileDateLayout = "2006-01-02"

// ExportFileName names the stylesheet produced from a whole working set.
func ExportFileName(now time.Time) string {
	return "icon-studio-theme-" + now.Format(fileDateLayout) + ".css"
}

// ThemeFileName names the theme stylesheet of a single configuration.
func ThemeFileName(c model.IconConfig, now time.Time) string {
	return fmt.Sprintf("icon-studio-theme-%s-%s-%s-%s.css", c.Library, c.Family, c.Icon, now.Format(fileDateLayout))
}

// PNGFileName names a rasterised export.
func PNGFileName(c model.IconConfig, size int) string {
	return fmt.Sprintf("icon-studio-%s-%dx%d.png", c.Icon, size, size)
}
