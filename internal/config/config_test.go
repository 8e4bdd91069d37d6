package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"photo-watermarker/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "base:\n  quality: 90\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Base.Quality != 90 {
		t.Errorf("quality = %d, want 90", cfg.Base.Quality)
	}
	if cfg.Layout.Type != domain.LayoutWatermarkLeftLogo {
		t.Errorf("layout = %q", cfg.Layout.Type)
	}
	if !cfg.Base.WhiteMargin.Enable || cfg.Base.WhiteMargin.Width != 3 {
		t.Errorf("white margin = %+v", cfg.Base.WhiteMargin)
	}
	if !cfg.Logo.Enable || cfg.Logo.Position != domain.LogoLeft {
		t.Errorf("logo = %+v", cfg.Logo)
	}
	if cfg.Worker.Concurrency != 5 {
		t.Errorf("concurrency = %d, want 5", cfg.Worker.Concurrency)
	}
	if cfg.Layout.Elements.LeftBottom.Name != domain.FieldModel {
		t.Errorf("left bottom = %+v", cfg.Layout.Elements.LeftBottom)
	}
}

func TestLoadExplicitFalse(t *testing.T) {
	cfg, err := Load(writeConfig(t, "base:\n  white_margin:\n    enable: false\nlogo:\n  enable: false\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Base.WhiteMargin.Enable || cfg.Logo.Enable {
		t.Errorf("explicit false overridden: margin=%v logo=%v", cfg.Base.WhiteMargin.Enable, cfg.Logo.Enable)
	}
}

func TestMarginWidthClamp(t *testing.T) {
	tests := []struct {
		width, want int
	}{
		{50, 30},
		{-5, 0},
		{12, 12},
		{30, 30},
	}

	for _, tt := range tests {
		cfg := newTestConfig(t)
		cfg.Base.WhiteMargin.Width = tt.width
		if err := cfg.Finalize(); err != nil {
			t.Fatalf("width %d: %v", tt.width, err)
		}
		if cfg.Base.WhiteMargin.Width != tt.want {
			t.Errorf("width %d clamped to %d, want %d", tt.width, cfg.Base.WhiteMargin.Width, tt.want)
		}
	}
}

func TestFontLevelClamp(t *testing.T) {
	tests := []struct {
		level, want, regular, bold int
	}{
		{0, 1, 240, 260},
		{-3, 1, 240, 260},
		{2, 2, 250, 290},
		{7, 3, 300, 320},
	}

	for _, tt := range tests {
		cfg := newTestConfig(t)
		cfg.Base.FontSize = tt.level
		cfg.Base.BoldFontSize = tt.level
		if err := cfg.Finalize(); err != nil {
			t.Fatal(err)
		}
		if cfg.Base.FontSize != tt.want || cfg.Base.BoldFontSize != tt.want {
			t.Errorf("level %d clamped to %d/%d, want %d", tt.level, cfg.Base.FontSize, cfg.Base.BoldFontSize, tt.want)
		}
		if cfg.FontPixelSize() != tt.regular || cfg.BoldFontPixelSize() != tt.bold {
			t.Errorf("level %d sizes = %d/%d", tt.level, cfg.FontPixelSize(), cfg.BoldFontPixelSize())
		}
		if cfg.FontPaddingLevel() != 2*tt.want {
			t.Errorf("padding level = %d", cfg.FontPaddingLevel())
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name: "custom with value",
			mutate: func(c *Config) {
				c.Layout.Elements.LeftTop = domain.Element{Name: domain.FieldCustom, Value: "by me"}
			},
		},
		{
			name: "custom without value",
			mutate: func(c *Config) {
				c.Layout.Elements.LeftTop = domain.Element{Name: domain.FieldCustom}
			},
			wantErr: true,
		},
		{
			name: "unknown field",
			mutate: func(c *Config) {
				c.Layout.Elements.RightBottom = domain.Element{Name: "Aperture"}
			},
			wantErr: true,
		},
		{
			name:    "short hex",
			mutate:  func(c *Config) { c.Layout.BackgroundColor = "#fff" },
			wantErr: true,
		},
		{
			name:    "hex without hash",
			mutate:  func(c *Config) { c.Layout.ForegroundColor = "212121" },
			wantErr: true,
		},
		{
			name: "bad element color",
			mutate: func(c *Config) {
				c.Layout.Elements.LeftTop.Color = "red"
			},
			wantErr: true,
		},
		{
			name:    "quality out of range",
			mutate:  func(c *Config) { c.Base.Quality = 101 },
			wantErr: true,
		},
		{
			name:    "zero quality",
			mutate:  func(c *Config) { c.Base.Quality = 0 },
			wantErr: true,
		},
		{
			name:    "bad logo position",
			mutate:  func(c *Config) { c.Logo.Position = "top" },
			wantErr: true,
		},
		{
			name:   "unknown layout is accepted",
			mutate: func(c *Config) { c.Layout.Type = "polaroid" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t)
			tt.mutate(cfg)
			err := cfg.Finalize()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("got %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadInvalidCustomElement(t *testing.T) {
	body := `
layout:
  elements:
    left_top:
      name: Custom
      value: ""
`
	if _, err := Load(writeConfig(t, body)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("got %v, want ErrInvalidConfig", err)
	}
}

func TestSaveLoad(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.Layout.Type = domain.LayoutCustom
	cfg.Layout.Elements.RightBottom = domain.Element{Name: domain.FieldCustom, Value: "hello", Bold: true}
	cfg.Logo.Enable = false
	cfg.Base.WhiteMargin.Width = 7

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Layout.Type != domain.LayoutCustom || got.Logo.Enable || got.Base.WhiteMargin.Width != 7 {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.Layout.Elements.RightBottom != cfg.Layout.Elements.RightBottom {
		t.Errorf("element = %+v, want %+v", got.Layout.Elements.RightBottom, cfg.Layout.Elements.RightBottom)
	}
	if got.Exiftool.Timeout != cfg.Exiftool.Timeout {
		t.Errorf("timeout = %v, want %v", got.Exiftool.Timeout, cfg.Exiftool.Timeout)
	}
}

func newTestConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := Default()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	return cfg
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := Load("../../config.example.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Layout.Type != domain.LayoutWatermarkLeftLogo || cfg.Worker.Concurrency != 5 {
		t.Errorf("unexpected example config: %+v", cfg.Layout)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "localhost:9092" {
		t.Errorf("brokers = %v", cfg.Kafka.Brokers)
	}
}
