package config

import (
	"fmt"
	"os"
	"time"

	"photo-watermarker/internal/domain"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/wb-go/wbf/retry"
	"gopkg.in/yaml.v3"
)

const (
	MinFontLevel    = 1
	MaxFontLevel    = 3
	MinMarginWidth  = 0
	MaxMarginWidth  = 30
	DefaultFontSize = 240
)

var (
	fontSizes     = [...]int{240, 250, 300}
	boldFontSizes = [...]int{260, 290, 320}
)

type Config struct {
	Base     Base     `yaml:"base" env-prefix:"BASE_"`
	Layout   Layout   `yaml:"layout" env-prefix:"LAYOUT_"`
	Logo     Logo     `yaml:"logo" env-prefix:"LOGO_"`
	Exiftool Exiftool `yaml:"exiftool" env-prefix:"EXIFTOOL_"`
	Worker   Worker   `yaml:"worker" env-prefix:"WORKER_"`
	Retry    Retry    `yaml:"retry" env-prefix:"RETRY_"`
	Server   Server   `yaml:"server" env-prefix:"SERVER_"`
	Kafka    Kafka    `yaml:"kafka" env-prefix:"KAFKA_"`
	Minio    Minio    `yaml:"minio" env-prefix:"MINIO_"`
	DB       DB       `yaml:"db" env-prefix:"DB_"`
}

type Switch struct {
	Enable bool `yaml:"enable" env:"ENABLE"`
}

type FocalLength struct {
	UseEquivalentFocalLength bool `yaml:"use_equivalent_focal_length" env:"USE_EQUIVALENT"`
}

type WhiteMargin struct {
	Enable bool `yaml:"enable" env:"ENABLE"`
	Width  int  `yaml:"width" env:"WIDTH" env-default:"3"`
}

type Base struct {
	Font                     string      `yaml:"font" env:"FONT" env-default:"./fonts/AlibabaPuHuiTi-2-45-Light.otf"`
	BoldFont                 string      `yaml:"bold_font" env:"BOLD_FONT" env-default:"./fonts/AlibabaPuHuiTi-2-85-Bold.otf"`
	AlternativeFont          string      `yaml:"alternative_font" env:"ALTERNATIVE_FONT" env-default:"./fonts/Roboto-Regular.ttf"`
	AlternativeBoldFont      string      `yaml:"alternative_bold_font" env:"ALTERNATIVE_BOLD_FONT" env-default:"./fonts/Roboto-Medium.ttf"`
	FontSize                 int         `yaml:"font_size" env:"FONT_SIZE" env-default:"1"`
	BoldFontSize             int         `yaml:"bold_font_size" env:"BOLD_FONT_SIZE" env-default:"1"`
	Quality                  int         `yaml:"quality" env:"QUALITY" env-default:"100" validate:"min=1,max=100"`
	FocalLength              FocalLength `yaml:"focal_length" env-prefix:"FOCAL_LENGTH_"`
	PaddingWithOriginalRatio Switch      `yaml:"padding_with_original_ratio" env-prefix:"PADDING_RATIO_"`
	Shadow                   Switch      `yaml:"shadow" env-prefix:"SHADOW_"`
	WhiteMargin              WhiteMargin `yaml:"white_margin" env-prefix:"WHITE_MARGIN_"`
	InputDirectory           string      `yaml:"input_directory" env:"INPUT_DIRECTORY" env-default:"./input/"`
	OutputDirectory          string      `yaml:"output_directory" env:"OUTPUT_DIRECTORY" env-default:"./output/"`
}

type Layout struct {
	Type            domain.Layout   `yaml:"type" env:"TYPE" env-default:"watermark_left_logo"`
	BackgroundColor string          `yaml:"background_color" env:"BACKGROUND_COLOR" env-default:"#ffffff" validate:"hex_color"`
	ForegroundColor string          `yaml:"foreground_color" env:"FOREGROUND_COLOR" env-default:"#212121" validate:"hex_color"`
	Elements        domain.Elements `yaml:"elements"`
}

type Logo struct {
	Directory string              `yaml:"directory" env:"DIRECTORY" env-default:"./logos/"`
	Default   string              `yaml:"default" env:"DEFAULT" env-default:"./logos/fujifilm.png" validate:"required"`
	Enable    bool                `yaml:"enable" env:"ENABLE"`
	Position  domain.LogoPosition `yaml:"position" env:"POSITION" env-default:"left" validate:"oneof=left right"`
}

type Exiftool struct {
	Path       string        `yaml:"path" env:"PATH" env-default:"exiftool"`
	DateFormat string        `yaml:"date_format" env:"DATE_FORMAT" env-default:"%Y-%m-%d %H:%M:%S%3f%z"`
	Timeout    time.Duration `yaml:"timeout" env:"TIMEOUT" env-default:"30s"`
}

type Worker struct {
	Concurrency int `yaml:"concurrency" env:"CONCURRENCY" env-default:"5" validate:"min=1"`
}

type Retry struct {
	Attempts int           `yaml:"attempts" env:"ATTEMPTS" env-default:"2" validate:"min=1"`
	Delay    time.Duration `yaml:"delay" env:"DELAY" env-default:"200ms"`
	Backoff  float64       `yaml:"backoff" env:"BACKOFF" env-default:"2"`
}

type Server struct {
	Addr            string        `yaml:"addr" env:"ADDR" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"15s"`
	TempDirectory   string        `yaml:"temp_directory" env:"TEMP_DIRECTORY"`
}

type Kafka struct {
	Brokers     []string `yaml:"brokers" env:"BROKERS" env-default:"localhost:9092" env-separator:","`
	JobsTopic   string   `yaml:"jobs_topic" env:"JOBS_TOPIC" env-default:"watermark-jobs"`
	ResultTopic string   `yaml:"results_topic" env:"RESULTS_TOPIC" env-default:"watermark-results"`
	GroupID     string   `yaml:"group_id" env:"GROUP_ID" env-default:"watermark-workers"`
}

type Minio struct {
	Endpoint  string `yaml:"endpoint" env:"ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `yaml:"access_key" env:"ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"BUCKET" env-default:"photos"`
	UseSSL    bool   `yaml:"use_ssl" env:"USE_SSL"`
}

type DB struct {
	Host            string        `yaml:"host" env:"HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"PORT" env-default:"5432"`
	User            string        `yaml:"user" env:"USER" env-default:"postgres"`
	Password        string        `yaml:"password" env:"PASSWORD"`
	Name            string        `yaml:"name" env:"NAME" env-default:"watermarker"`
	SSLMode         string        `yaml:"sslmode" env:"SSLMODE" env-default:"disable"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"MAX_OPEN_CONNS" env-default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME" env-default:"5m"`
}

// newConfig seeds the values env-default cannot express: cleanenv only fills
// zero fields, so a default of true would override an explicit false.
func newConfig() Config {
	return Config{
		Base: Base{
			WhiteMargin: WhiteMargin{Enable: true},
		},
		Layout: Layout{
			Elements: domain.Elements{
				LeftTop:     domain.Element{Name: domain.FieldLensModel, Bold: true},
				LeftBottom:  domain.Element{Name: domain.FieldModel},
				RightTop:    domain.Element{Name: domain.FieldParam, Bold: true},
				RightBottom: domain.Element{Name: domain.FieldDatetime},
			},
		},
		Logo: Logo{Enable: true},
	}
}

// Load reads the YAML file at path, applies env overrides and defaults,
// then clamps and validates the result.
func Load(path string) (*Config, error) {
	cfg := newConfig()
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault loads path, or builds the default config when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Default builds a config from env-default tags and the environment only.
func Default() (*Config, error) {
	cfg := newConfig()
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Finalize clamps the range-limited fields and validates the record.
// It must be called after any programmatic edit.
func (c *Config) Finalize() error {
	c.Base.FontSize = clampFontLevel(c.Base.FontSize)
	c.Base.BoldFontSize = clampFontLevel(c.Base.BoldFontSize)
	c.Base.WhiteMargin.Width = clampMarginWidth(c.Base.WhiteMargin.Width)
	if c.Layout.Type == "" {
		c.Layout.Type = domain.LayoutWatermarkLeftLogo
	}

	return Validate(c)
}

// Save writes the config back as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}

func (c *Config) FontPixelSize() int {
	return fontSizes[clampFontLevel(c.Base.FontSize)-1]
}

func (c *Config) BoldFontPixelSize() int {
	return boldFontSizes[clampFontLevel(c.Base.BoldFontSize)-1]
}

// FontPaddingLevel is the sum of both font levels, in [2,6].
func (c *Config) FontPaddingLevel() int {
	return clampFontLevel(c.Base.FontSize) + clampFontLevel(c.Base.BoldFontSize)
}

func (c *Config) DefaultRetryStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: c.Retry.Attempts,
		Delay:    c.Retry.Delay,
		Backoff:  c.Retry.Backoff,
	}
}

func (c *Config) DBDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name, c.DB.SSLMode)
}

func clampFontLevel(level int) int {
	return min(max(level, MinFontLevel), MaxFontLevel)
}

func clampMarginWidth(width int) int {
	return min(max(width, MinMarginWidth), MaxMarginWidth)
}
