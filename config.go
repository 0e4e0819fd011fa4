package tex2d

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/tex2d/pixel"
	"github.com/gogpu/tex2d/render"
)

// ErrInvalidConfig is returned for configuration files with unknown keys or
// out of range values.
var ErrInvalidConfig = errors.New("tex2d: invalid config")

// FileConfig is the TOML configuration of a Manager.
//
//	default_alpha_format = "RGBA4444"
//	allow_npot = true
//	max_texture_size = 4096
//	recovery = true
//	content_scale_factor = 2.0
//	scale_to_fit = false
type FileConfig struct {
	DefaultAlphaFormat pixel.Format `toml:"default_alpha_format"`
	AllowNPOT          bool         `toml:"allow_npot"`

	// MaxTextureSize replaces the device capabilities with a static limit
	// when positive. Zero keeps the capabilities passed to the Manager.
	MaxTextureSize int `toml:"max_texture_size"`

	Recovery           bool    `toml:"recovery"`
	ContentScaleFactor float64 `toml:"content_scale_factor"`
	ScaleToFit         bool    `toml:"scale_to_fit"`
}

// DefaultFileConfig returns the configuration used for keys missing from a
// file. It matches the defaults of NewManager.
func DefaultFileConfig() FileConfig {
	def := pixel.DefaultConfig()
	return FileConfig{
		DefaultAlphaFormat: def.DefaultAlphaFormat,
		AllowNPOT:          def.AllowNPOT,
		Recovery:           true,
		ContentScaleFactor: 1,
	}
}

// LoadConfig reads a TOML configuration file. Missing keys keep their
// DefaultFileConfig values.
func LoadConfig(path string) (FileConfig, error) {
	cfg := DefaultFileConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("tex2d: read config %s: %w", path, err)
	}
	return cfg, checkConfig(md, cfg)
}

// DecodeConfig parses a TOML configuration from a string.
func DecodeConfig(data string) (FileConfig, error) {
	cfg := DefaultFileConfig()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("tex2d: decode config: %w", err)
	}
	return cfg, checkConfig(md, cfg)
}

func checkConfig(md toml.MetaData, cfg FileConfig) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Validate checks value ranges.
func (c FileConfig) Validate() error {
	if !c.DefaultAlphaFormat.IsAlphaFormat() {
		return fmt.Errorf("%w: default_alpha_format %s has no alpha channel", ErrInvalidConfig, c.DefaultAlphaFormat)
	}
	if c.MaxTextureSize < 0 {
		return fmt.Errorf("%w: max_texture_size %d", ErrInvalidConfig, c.MaxTextureSize)
	}
	if c.ContentScaleFactor <= 0 {
		return fmt.Errorf("%w: content_scale_factor %g", ErrInvalidConfig, c.ContentScaleFactor)
	}
	return nil
}

// Write encodes c as TOML.
func (c FileConfig) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("tex2d: encode config: %w", err)
	}
	return nil
}

// Options returns the manager options for c.
func (c FileConfig) Options() []ManagerOption {
	opts := []ManagerOption{
		WithConfig(pixel.Config{
			DefaultAlphaFormat: c.DefaultAlphaFormat,
			AllowNPOT:          c.AllowNPOT,
		}),
		WithRecovery(c.Recovery),
		WithContentScaleFactor(c.ContentScaleFactor),
		WithScaleToFit(c.ScaleToFit),
	}
	if c.MaxTextureSize > 0 {
		opts = append(opts, WithCapabilities(render.StaticCapabilities{
			NonPowerOfTwo:  c.AllowNPOT,
			MaxTextureSize: c.MaxTextureSize,
		}))
	}
	return opts
}
