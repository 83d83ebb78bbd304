package model

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// IconConfig is the complete visual recipe for one styled icon.
type IconConfig struct {
	Library        Library `json:"library" yaml:"library"`
	Family         Family  `json:"family" yaml:"family"`
	Icon           string  `json:"icon" yaml:"icon"`
	PrimaryColor   string  `json:"primaryColor" yaml:"primaryColor"`
	SecondaryColor string  `json:"secondaryColor" yaml:"secondaryColor"`
	// Weight, Fill, Grade and Size are the variable font axes. Font Awesome ignores them.
	Weight  int     `json:"weight" yaml:"weight"`
	Fill    int     `json:"fill" yaml:"fill"`
	Grade   int     `json:"grade" yaml:"grade"`
	Size    int     `json:"size" yaml:"size"`
	Offset  float64 `json:"offset" yaml:"offset"`
	Opacity float64 `json:"opacity" yaml:"opacity"`

	Effects       Effects       `json:"effects,omitempty" yaml:"effects,omitempty"`
	GradientAngle GradientAngle `json:"gradientAngle,omitempty" yaml:"gradientAngle,omitempty"`
	Animation     Animation     `json:"animation,omitempty" yaml:"animation,omitempty"`
	// Timestamp is unix milliseconds of the last write to the working set.
	Timestamp int64 `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// RequiredFields are the JSON keys every persisted configuration must carry.
var RequiredFields = []string{
	"library", "family", "icon", "primaryColor", "secondaryColor",
	"weight", "fill", "grade", "size", "offset", "opacity",
}

const (
	MinWeight = 100
	MaxWeight = 700
	MinGrade  = -50
	MaxGrade  = 200
	MinSize   = 20
	MaxSize   = 48
)

// Validate checks that every required field is present and usable.
// The returned error is a *MissingFieldError or *FieldError.
func (c IconConfig) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"library", string(c.Library)},
		{"family", string(c.Family)},
		{"icon", c.Icon},
		{"primaryColor", c.PrimaryColor},
		{"secondaryColor", c.SecondaryColor},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &MissingFieldError{Field: f.name}
		}
	}
	if !c.Library.Valid() {
		return &FieldError{Field: "library", Reason: "unknown library " + string(c.Library)}
	}
	if !c.Library.HasFamily(c.Family) {
		return &FieldError{Field: "family", Reason: string(c.Family) + " is not a " + string(c.Library) + " family"}
	}
	if _, _, err := ParseColor(c.PrimaryColor); err != nil {
		return &FieldError{Field: "primaryColor", Reason: err.Error()}
	}
	if _, _, err := ParseColor(c.SecondaryColor); err != nil {
		return &FieldError{Field: "secondaryColor", Reason: err.Error()}
	}
	switch {
	case c.Weight < MinWeight || c.Weight > MaxWeight:
		return &FieldError{Field: "weight", Reason: "must be between 100 and 700"}
	case c.Fill != 0 && c.Fill != 1:
		return &FieldError{Field: "fill", Reason: "must be 0 or 1"}
	case c.Grade < MinGrade || c.Grade > MaxGrade:
		return &FieldError{Field: "grade", Reason: "must be between -50 and 200"}
	case c.Size < MinSize || c.Size > MaxSize:
		return &FieldError{Field: "size", Reason: "must be between 20 and 48"}
	case math.IsNaN(c.Offset) || math.IsInf(c.Offset, 0):
		return &FieldError{Field: "offset", Reason: "must be a finite number"}
	case c.Opacity < 0 || c.Opacity > 1 || math.IsNaN(c.Opacity):
		return &FieldError{Field: "opacity", Reason: "must be between 0 and 1"}
	}
	if c.GradientAngle != "" && !c.GradientAngle.Valid() {
		return &FieldError{Field: "gradientAngle", Reason: "unknown direction " + string(c.GradientAngle)}
	}
	if _, err := ParseAnimation(string(c.Animation)); err != nil {
		return &FieldError{Field: "animation", Reason: err.Error()}
	}
	return nil
}

// IsValid is the boolean form of Validate. The failing field is logged.
func IsValid(c IconConfig) bool {
	if err := c.Validate(); err != nil {
		logrus.WithField("icon", c.Icon).Warn(err.Error())
		return false
	}
	return true
}

// ParseIconConfig decodes a JSON configuration, distinguishing absent fields
// from zero values, and validates the result.
func ParseIconConfig(data []byte) (IconConfig, error) {
	var c IconConfig
	if !gjson.ValidBytes(data) {
		return c, errors.Wrap(ErrInvalidConfig, "malformed JSON")
	}
	for _, field := range RequiredFields {
		if !gjson.GetBytes(data, field).Exists() {
			return c, &MissingFieldError{Field: field}
		}
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, &FieldError{Field: "config", Reason: err.Error()}
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Normalized fills the optional fields with their defaults.
func (c IconConfig) Normalized() IconConfig {
	c.GradientAngle = c.GradientAngle.OrDefault()
	c.Animation = c.Animation.OrNone()
	c.Effects = NewEffects(c.Effects...)
	return c
}

// CSSName is the icon name in class-name form.
func (c IconConfig) CSSName() string {
	return strings.ReplaceAll(c.Icon, "_", "-")
}
