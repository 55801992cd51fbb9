package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/lookbook/pkg/export"
)

// Export holds orchestrator settings.
type Export struct {
	Prefix  string
	Delay   time.Duration
	Display time.Duration

	// BatchScale is the output scale of --all exports; render.scale covers
	// single looks.
	BatchScale float64
}

func setExportDefaults(v *viper.Viper) {
	v.SetDefault("export.prefix", "peridot")
	v.SetDefault("export.delay", "1s")
	v.SetDefault("export.display", "1.5s")
	v.SetDefault("export.batch_scale", export.DefaultBatchScale)
}

func getExportConfig(v *viper.Viper) *Export {
	return &Export{
		Prefix:  v.GetString("export.prefix"),
		Delay:   v.GetDuration("export.delay"),
		Display: v.GetDuration("export.display"),

		BatchScale: v.GetFloat64("export.batch_scale"),
	}
}
