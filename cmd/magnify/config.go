package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/magnify"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var errConfigFormat = errors.New("unsupported config format")

// config is everything one render needs. It is assembled from defaults,
// then the -config file, then explicit flags.
type config struct {
	Width     int     `yaml:"width" toml:"width"`
	Height    int     `yaml:"height" toml:"height"`
	Ratio     float64 `yaml:"ratio" toml:"ratio"`
	Workers   int     `yaml:"workers" toml:"workers"`
	Output    string  `yaml:"output" toml:"output"`
	Thumbnail int     `yaml:"thumbnail" toml:"thumbnail"`
	Caption   bool    `yaml:"caption" toml:"caption"`
	Lang      string  `yaml:"lang" toml:"lang"`
	Image     string  `yaml:"image" toml:"image"`

	Lens lensConfig `yaml:"lens" toml:"lens"`
}

type lensConfig struct {
	Off       bool        `yaml:"off" toml:"off"`
	X         float64     `yaml:"x" toml:"x"`
	Y         float64     `yaml:"y" toml:"y"`
	Zoom      float64     `yaml:"zoom" toml:"zoom"`
	Exponent  float64     `yaml:"exponent" toml:"exponent"`
	Radius    float64     `yaml:"radius" toml:"radius"`
	Thickness float64     `yaml:"thickness" toml:"thickness"`
	Outline   magnify.RGB `yaml:"outline" toml:"outline"`
	Antialias bool        `yaml:"antialias" toml:"antialias"`
}

// cliOptions are flags that steer the command rather than the image.
type cliOptions struct {
	config  string
	watch   bool
	verbose bool
}

func defaultConfig() config {
	p := magnify.SampleParams()
	return config{
		Width:   800,
		Height:  600,
		Ratio:   1,
		Output:  "magnify.png",
		Caption: true,
		Lang:    "en",
		Lens: lensConfig{
			X:         400,
			Y:         300,
			Zoom:      p.Zoom,
			Exponent:  p.Exponent,
			Radius:    p.Radius,
			Thickness: p.OutlineThickness,
			Outline:   p.OutlineColor,
			Antialias: p.Antialias,
		},
	}
}

// params converts the lens section to frame parameters, clamped to the
// library limits.
func (c config) params() magnify.Params {
	p := magnify.Params{
		Zoom:             c.Lens.Zoom,
		Exponent:         c.Lens.Exponent,
		Radius:           c.Lens.Radius,
		OutlineThickness: c.Lens.Thickness,
		OutlineColor:     c.Lens.Outline,
		Antialias:        c.Lens.Antialias,
	}.Clamp(magnify.DefaultLimits())
	if c.Lens.Off {
		return p
	}
	return p.At(c.Lens.X, c.Lens.Y)
}

func (c config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.Output == "" {
		return errors.New("no output file")
	}
	if _, err := language.Parse(c.Lang); err != nil {
		return fmt.Errorf("caption language %q: %w", c.Lang, err)
	}
	return nil
}

func newFlagSet(cfg *config, opts *cliOptions) *flag.FlagSet {
	fs := flag.NewFlagSet("magnify", flag.ContinueOnError)
	fs.StringVar(&opts.config, "config", "", "YAML or TOML config file; flags override its values")
	fs.BoolVar(&opts.watch, "watch", false, "re-render whenever the config file changes")
	fs.BoolVar(&opts.verbose, "v", false, "log frame diagnostics to stderr")

	fs.IntVar(&cfg.Width, "width", cfg.Width, "logical image width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "logical image height")
	fs.Float64Var(&cfg.Ratio, "ratio", cfg.Ratio, "physical pixels per logical pixel")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "pass goroutines (0 = GOMAXPROCS)")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "output file (.png, .jpg or .bmp)")
	fs.IntVar(&cfg.Thumbnail, "thumbnail", cfg.Thumbnail, "also write a thumbnail of this width (0 = none)")
	fs.BoolVar(&cfg.Caption, "caption", cfg.Caption, "draw the lens parameters below the image")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "BCP 47 language for caption number formatting")
	fs.StringVar(&cfg.Image, "image", cfg.Image, "use an image file as the scene instead of the demo")

	fs.BoolVar(&cfg.Lens.Off, "nolens", cfg.Lens.Off, "render without the lens")
	fs.Float64Var(&cfg.Lens.X, "x", cfg.Lens.X, "lens centre x in logical pixels")
	fs.Float64Var(&cfg.Lens.Y, "y", cfg.Lens.Y, "lens centre y in logical pixels")
	fs.Float64Var(&cfg.Lens.Zoom, "zoom", cfg.Lens.Zoom, "magnification at the lens centre")
	fs.Float64Var(&cfg.Lens.Exponent, "exponent", cfg.Lens.Exponent, "falloff exponent")
	fs.Float64Var(&cfg.Lens.Radius, "radius", cfg.Lens.Radius, "lens radius in logical pixels")
	fs.Float64Var(&cfg.Lens.Thickness, "thickness", cfg.Lens.Thickness, "outline thickness in logical pixels")
	fs.TextVar(&cfg.Lens.Outline, "outline", cfg.Lens.Outline, "outline color as hex")
	fs.BoolVar(&cfg.Lens.Antialias, "aa", cfg.Lens.Antialias, "run the FXAA pass")
	return fs
}

// resolve builds the configuration for args. The flag set is parsed twice:
// once to find -config, then again with the file's values as defaults so
// explicit flags win.
func resolve(args []string, stderr io.Writer) (config, cliOptions, error) {
	var opts cliOptions
	scratch := defaultConfig()
	fs := newFlagSet(&scratch, &opts)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		// Report usage errors from the real parse below.
		opts = cliOptions{}
	}

	cfg := defaultConfig()
	if opts.config != "" {
		if err := loadConfig(opts.config, &cfg); err != nil {
			return config{}, opts, err
		}
	}

	fs = newFlagSet(&cfg, &opts)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return config{}, opts, err
	}
	if fs.NArg() > 0 {
		return config{}, opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return cfg, opts, cfg.validate()
}

// loadConfig decodes path into cfg by file extension. Keys missing from
// the file keep their current values.
func loadConfig(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%s: %w %q", path, errConfigFormat, ext)
	}
	return nil
}
