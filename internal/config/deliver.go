package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/lookbook/pkg/deliver"
)

// Deliver holds delivery agent settings.
type Deliver struct {
	Dir     string
	ViewDir string
	Grace   time.Duration
	Direct  bool
	Open    bool
}

// Agent converts the settings into a [deliver.Config].
func (d *Deliver) Agent() deliver.Config {
	return deliver.Config{Dir: d.Dir, ViewDir: d.ViewDir, Grace: d.Grace, Direct: d.Direct, Open: d.Open}
}

func setDeliverDefaults(v *viper.Viper) {
	v.SetDefault("deliver.dir", "~/Downloads")
	v.SetDefault("deliver.view_dir", "")
	v.SetDefault("deliver.grace", "100ms")
	v.SetDefault("deliver.direct", true)
	v.SetDefault("deliver.open", true)
}

func getDeliverConfig(v *viper.Viper) *Deliver {
	return &Deliver{
		Dir:     expandHome(v.GetString("deliver.dir")),
		ViewDir: expandHome(v.GetString("deliver.view_dir")),
		Grace:   v.GetDuration("deliver.grace"),
		Direct:  v.GetBool("deliver.direct"),
		Open:    v.GetBool("deliver.open"),
	}
}
