package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gogpu/gg"
	"github.com/spf13/viper"

	"github.com/matzehuels/lookbook/pkg/render"
)

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Render holds rasterizer settings.
type Render struct {
	Strategies []string
	Config     render.Config
}

func setRenderDefaults(v *viper.Viper) {
	v.SetDefault("render.background", "#FFFBEB")
	v.SetDefault("render.scale", render.DefaultScale)
	v.SetDefault("render.strategies", render.DefaultStrategies)
	v.SetDefault("render.cross_origin", "strict")
}

func getRenderConfig(v *viper.Viper) (*Render, error) {
	bg := strings.TrimSpace(v.GetString("render.background"))
	if !hexColor.MatchString(bg) {
		return nil, fmt.Errorf("render.background must be a hex color, got %q", bg)
	}
	mode, err := render.ParseCrossOrigin(v.GetString("render.cross_origin"))
	if err != nil {
		return nil, err
	}
	return &Render{
		Strategies: splitList(v.GetStringSlice("render.strategies")),
		Config: render.Config{
			Background:  gg.Hex(bg).Color(),
			Scale:       v.GetFloat64("render.scale"),
			CrossOrigin: mode,
		},
	}, nil
}

// splitList accepts both ["a", "b"] and ["a,b"] (the env var form).
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
