package orbitcore

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	if cfg.DefaultStepSize != defaultConfig.DefaultStepSize {
		t.Errorf("DefaultStepSize = %v, want %v (ORBITCORE_CONFIG unset)", cfg.DefaultStepSize, defaultConfig.DefaultStepSize)
	}
}
