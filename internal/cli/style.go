package cli

import (
	"github.com/ronmurphy/iconstudio/core"
	"github.com/ronmurphy/iconstudio/model"
	"github.com/spf13/cobra"
)

// styleFlags are the flags that describe one icon configuration.
type styleFlags struct {
	library        string
	family         string
	icon           string
	primary        string
	secondary      string
	weight         int
	fill           int
	grade          int
	size           int
	offset         float64
	opacity        float64
	effects        []string
	animation      string
	gradientAngle  string
	rotation       int
	blendMode      string
	darkBackground bool
}

func addStyleFlags(cmd *cobra.Command) *styleFlags {
	def := core.DefaultState()
	f := &styleFlags{}
	flags := cmd.Flags()
	flags.StringVar(&f.library, "library", string(def.Library), "Icon library: material or fontawesome")
	flags.StringVar(&f.family, "family", "", "Family within the library (default: the library's first family)")
	flags.StringVarP(&f.icon, "icon", "i", "", "Icon name")
	flags.StringVar(&f.primary, "primary", def.PrimaryColor, "Primary colour")
	flags.StringVar(&f.secondary, "secondary", def.SecondaryColor, "Secondary colour")
	flags.IntVar(&f.weight, "weight", def.Weight, "Weight axis (100-700)")
	flags.IntVar(&f.fill, "fill", def.Fill, "Fill axis (0 or 1)")
	flags.IntVar(&f.grade, "grade", def.Grade, "Grade axis (-50 to 200)")
	flags.IntVar(&f.size, "size", def.Size, "Optical size axis (20-48)")
	flags.Float64Var(&f.offset, "offset", def.Offset, "Secondary layer offset in px")
	flags.Float64Var(&f.opacity, "opacity", def.Opacity, "Secondary layer opacity (0-1)")
	flags.StringSliceVarP(&f.effects, "effect", "e", nil, "Effect to enable (repeatable): shadow, glow, gradient, blend, animation")
	flags.StringVar(&f.animation, "animation", string(def.Animation), "Animation name")
	flags.StringVar(&f.gradientAngle, "gradient-angle", string(def.GradientAngle), "Gradient direction")
	flags.IntVar(&f.rotation, "rotation", 0, "Rotation in degrees")
	flags.StringVar(&f.blendMode, "blend-mode", string(def.BlendMode), "Blend mode used with the blend effect")
	flags.BoolVar(&f.darkBackground, "dark-background", false, "Render on the dark backdrop")
	_ = cmd.MarkFlagRequired("icon")
	return f
}

// config builds the configuration the flags describe.
func (f *styleFlags) config() (model.IconConfig, error) {
	lib, err := model.ParseLibrary(f.library)
	if err != nil {
		return model.IconConfig{}, &model.FieldError{Field: "library", Reason: err.Error()}
	}
	fam := model.Family(f.family)
	if fam == "" {
		fam = lib.DefaultFamily()
	}
	effects := make([]model.Effect, 0, len(f.effects))
	for _, name := range f.effects {
		e, err := model.ParseEffect(name)
		if err != nil {
			return model.IconConfig{}, &model.FieldError{Field: "effects", Reason: err.Error()}
		}
		effects = append(effects, e)
	}
	cfg := model.IconConfig{
		Library:        lib,
		Family:         fam,
		Icon:           f.icon,
		PrimaryColor:   f.primary,
		SecondaryColor: f.secondary,
		Weight:         f.weight,
		Fill:           f.fill,
		Grade:          f.grade,
		Size:           f.size,
		Offset:         f.offset,
		Opacity:        f.opacity,
		Effects:        model.NewEffects(effects...),
		GradientAngle:  model.GradientAngle(f.gradientAngle),
		Animation:      model.Animation(f.animation),
	}
	if err := cfg.Validate(); err != nil {
		return model.IconConfig{}, err
	}
	return cfg.Normalized(), nil
}

// apply loads the flags into a session: the configuration plus the view settings.
func (f *styleFlags) apply(s *core.Session) error {
	cfg, err := f.config()
	if err != nil {
		return err
	}
	if err := s.Apply(cfg); err != nil {
		return err
	}
	blend := model.BlendMode(f.blendMode)
	rotation := f.rotation
	return s.Edit(core.Patch{BlendMode: &blend, Rotation: &rotation, DarkBackground: &f.darkBackground})
}
