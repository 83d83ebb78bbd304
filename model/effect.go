package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Effect is a named visual modifier toggled on a configuration.
type Effect string

const (
	EffectShadow    Effect = "shadow"
	EffectGlow      Effect = "glow"
	EffectGradient  Effect = "gradient"
	EffectBlend     Effect = "blend"
	EffectAnimation Effect = "animation"
)

var allEffects = []Effect{EffectShadow, EffectGlow, EffectGradient, EffectBlend, EffectAnimation}

// AllEffects lists every effect in canonical order.
func AllEffects() []Effect {
	return append([]Effect(nil), allEffects...)
}

// ParseEffect normalizes an effect name.
func ParseEffect(s string) (Effect, error) {
	e := Effect(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range allEffects {
		if e == known {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown effect %q", s)
}

// Effects is a set of effects kept in canonical order without duplicates.
type Effects []Effect

// NewEffects builds a normalized set, dropping unknown names.
func NewEffects(names ...Effect) Effects {
	seen := make(map[Effect]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	out := Effects{}
	for _, e := range allEffects {
		if seen[e] {
			out = append(out, e)
		}
	}
	return out
}

// Has reports whether e is in the set.
func (es Effects) Has(e Effect) bool {
	for _, x := range es {
		if x == e {
			return true
		}
	}
	return false
}

// With returns a copy of the set including e.
func (es Effects) With(e Effect) Effects {
	return NewEffects(append(append(Effects{}, es...), e)...)
}

// Without returns a copy of the set excluding e.
func (es Effects) Without(e Effect) Effects {
	out := Effects{}
	for _, x := range es {
		if x != e {
			out = append(out, x)
		}
	}
	return out
}

// Toggle flips membership of e.
func (es Effects) Toggle(e Effect) Effects {
	if es.Has(e) {
		return es.Without(e)
	}
	return es.With(e)
}

// Strings returns the names in canonical order.
func (es Effects) Strings() []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = string(e)
	}
	return out
}

// UnmarshalJSON normalizes the decoded names and rejects unknown ones.
func (es *Effects) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	parsed := make([]Effect, 0, len(names))
	for _, n := range names {
		e, err := ParseEffect(n)
		if err != nil {
			return err
		}
		parsed = append(parsed, e)
	}
	*es = NewEffects(parsed...)
	return nil
}

// GradientAngle names the corner a gradient runs toward.
type GradientAngle string

const (
	GradientTopRight    GradientAngle = "top-right"
	GradientTopLeft     GradientAngle = "top-left"
	GradientBottomRight GradientAngle = "bottom-right"
	GradientBottomLeft  GradientAngle = "bottom-left"

	DefaultGradientAngle = GradientTopRight
)

// GradientAngles lists the supported directions.
func GradientAngles() []GradientAngle {
	return []GradientAngle{GradientTopRight, GradientTopLeft, GradientBottomRight, GradientBottomLeft}
}

// Valid reports whether the angle is one of the four corners.
func (g GradientAngle) Valid() bool {
	for _, a := range GradientAngles() {
		if g == a {
			return true
		}
	}
	return false
}

// OrDefault substitutes the default direction for an empty or unknown value.
func (g GradientAngle) OrDefault() GradientAngle {
	if g.Valid() {
		return g
	}
	return DefaultGradientAngle
}

// BlendMode is a CSS mix-blend-mode keyword.
type BlendMode string

const BlendNormal BlendMode = "normal"

var blendModes = []BlendMode{
	BlendNormal, "multiply", "screen", "overlay", "darken", "lighten",
	"color-dodge", "color-burn", "hard-light", "soft-light", "difference",
	"exclusion", "hue", "saturation", "color", "luminosity",
}

// BlendModes lists the supported blend modes.
func BlendModes() []BlendMode {
	return append([]BlendMode(nil), blendModes...)
}

// ParseBlendMode validates a blend mode keyword. Empty means normal.
func ParseBlendMode(s string) (BlendMode, error) {
	m := BlendMode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return BlendNormal, nil
	}
	for _, known := range blendModes {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown blend mode %q", s)
}

// Animation names a looping keyframe animation.
type Animation string

const AnimationNone Animation = "none"

var animations = []Animation{
	"bounce", "pulse", "shake", "spin", "flip", "swing", "float", "tada",
	"wobble", "jello", "heartbeat", "rubberband", "rollin", "zoompulse", "spiral",
}

// Animations lists the named animations, excluding none.
func Animations() []Animation {
	return append([]Animation(nil), animations...)
}

// ParseAnimation validates an animation name. Empty means none.
func ParseAnimation(s string) (Animation, error) {
	a := Animation(strings.ToLower(strings.TrimSpace(s)))
	if a == "" || a == AnimationNone {
		return AnimationNone, nil
	}
	for _, known := range animations {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown animation %q", s)
}

// Active reports whether the animation is a real one rather than none.
func (a Animation) Active() bool {
	return a != "" && a != AnimationNone
}

// OrNone substitutes none for an empty value.
func (a Animation) OrNone() Animation {
	if a == "" {
		return AnimationNone
	}
	return a
}
