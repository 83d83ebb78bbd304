package render

import (
	"fmt"

	"github.com/ronmurphy/iconstudio/model"
)

// GradientDirection maps a named corner to a CSS angle and raster endpoints.
// Start and End are fractions of the canvas size.
type GradientDirection struct {
	Angle int
	Start [2]float64
	End   [2]float64
}

var gradientDirections = map[model.GradientAngle]GradientDirection{
	model.GradientTopRight:    {Angle: 225, Start: [2]float64{1, 0}, End: [2]float64{0, 1}},
	model.GradientTopLeft:     {Angle: 135, Start: [2]float64{0, 0}, End: [2]float64{1, 1}},
	model.GradientBottomRight: {Angle: 315, Start: [2]float64{1, 1}, End: [2]float64{0, 0}},
	model.GradientBottomLeft:  {Angle: 45, Start: [2]float64{0, 1}, End: [2]float64{1, 0}},
}

// Direction resolves a gradient angle, falling back to top-right.
func Direction(a model.GradientAngle) GradientDirection {
	return gradientDirections[a.OrDefault()]
}

// LinearGradient is the CSS background value for a two-colour gradient.
func LinearGradient(a model.GradientAngle, primary, secondary string) string {
	return fmt.Sprintf("linear-gradient(%ddeg, %s, %s)", Direction(a).Angle, primary, secondary)
}
