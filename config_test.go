package greenflag

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stage.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// --- Defaults ---

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Stage() != DefaultStage {
		t.Errorf("Stage() = %v, want %v", cfg.Stage(), DefaultStage)
	}
	if cfg.Origin != OriginCenter || cfg.TPS != 60 || cfg.MaxClones != 300 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.StageWidth = 0 }},
		{"negative height", func(c *Config) { c.StageHeight = -1 }},
		{"unknown origin", func(c *Config) { c.Origin = 7 }},
		{"zero tps", func(c *Config) { c.TPS = 0 }},
		{"negative clones", func(c *Config) { c.MaxClones = -1 }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

// --- LoadConfig ---

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
stage_width = 640
stage_height = 480
origin = "top-left"
tps = 30
seed = 42
log_level = "debug"
debug = true
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StageWidth != 640 || cfg.StageHeight != 480 {
		t.Errorf("stage = %vx%v, want 640x480", cfg.StageWidth, cfg.StageHeight)
	}
	if cfg.Origin != OriginTopLeft || cfg.TPS != 30 || cfg.Seed != 42 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.LogLevel != "debug" || !cfg.Debug {
		t.Errorf("log_level = %q debug = %v", cfg.LogLevel, cfg.Debug)
	}
	// Missing keys keep their defaults.
	if cfg.MaxClones != 300 || cfg.LogJSON {
		t.Errorf("max_clones = %d log_json = %v, want defaults", cfg.MaxClones, cfg.LogJSON)
	}
}

func TestLoadConfigNoFile(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "tps = 30\nmax_clones = 10\n")
	t.Setenv("GREENFLAG_TPS", "120")
	t.Setenv("GREENFLAG_ORIGIN", "top-left")
	t.Setenv("GREENFLAG_LOG_JSON", "true")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TPS != 120 {
		t.Errorf("TPS = %d, want env value 120", cfg.TPS)
	}
	if cfg.MaxClones != 10 {
		t.Errorf("MaxClones = %d, want file value 10", cfg.MaxClones)
	}
	if cfg.Origin != OriginTopLeft || !cfg.LogJSON {
		t.Errorf("origin = %v log_json = %v", cfg.Origin, cfg.LogJSON)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{"malformed toml", "tps = = 3", nil, "load config"},
		{"unknown origin", `origin = "bottom"`, nil, "parse origin"},
		{"negative seed", "seed = -4", nil, "parse seed"},
		{"invalid value", "tps = 0", nil, "invalid config"},
		{"bad env number", "", map[string]string{"GREENFLAG_TPS": "fast"}, "parse env"},
		{"bad env origin", "", map[string]string{"GREENFLAG_ORIGIN": "left"}, "parse env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

// --- OriginMode text ---

func TestOriginModeText(t *testing.T) {
	for _, o := range []OriginMode{OriginCenter, OriginTopLeft} {
		text, err := o.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back OriginMode
		if err := back.UnmarshalText(text); err != nil || back != o {
			t.Errorf("round trip %v = %v, %v", o, back, err)
		}
	}
	var o OriginMode
	if err := o.UnmarshalText([]byte("sideways")); !errors.Is(err, ErrUnknownOrigin) {
		t.Errorf("err = %v, want ErrUnknownOrigin", err)
	}
}
