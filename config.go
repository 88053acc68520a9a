package orbitcore

import (
	"os"
	"sync"

	"github.com/spf13/viper"
)

// Config holds the numerical tunables that are safe to override from an
// environment file. The hard iteration caps of numeric.go are a contract of
// the algorithms themselves and stay compiled-in, but the propagator's
// default step size is a deployment knob.
type Config struct {
	DefaultStepSize float64 // seconds, used by Rocket.Simulate when dt<=0
}

var defaultConfig = Config{DefaultStepSize: 10}

var (
	cfgOnce   sync.Once
	cfgLoaded Config
)

// LoadConfig returns the process-wide Config, reading it once (lazily) from
// the file named by the ORBITCORE_CONFIG environment variable. Any field or
// the file itself missing falls back to defaultConfig.
func LoadConfig() Config {
	cfgOnce.Do(func() {
		cfgLoaded = defaultConfig
		path := os.Getenv("ORBITCORE_CONFIG")
		if path == "" {
			return
		}
		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return
		}
		if v.IsSet("default_step_size") {
			cfgLoaded.DefaultStepSize = v.GetFloat64("default_step_size")
		}
	})
	return cfgLoaded
}
