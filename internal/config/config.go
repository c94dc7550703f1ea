// Package config loads the sht-filters command line settings through viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	arraysht "github.com/tphakala/go-array-sht"
	"github.com/tphakala/go-array-sht/geometry"
	"github.com/tphakala/go-array-sht/modal"
)

const (
	AppName    = "sht-filters"
	ConfigType = "yaml"
	EnvPrefix  = "SHT"

	DefaultConfig = `# sht-filters configuration

# Array geometry
radius: 0.042           # Sphere radius in meters
mic_layout: "em32"      # em32, fibonacci:<n>, circle:<n> or "az,el; az,el; ..." in degrees

# Filter design
method: "radinv"        # radinv, softlim or regls
order: 4               # Transform order, clamped to floor(sqrt(mics) - 1)
filter_len: 256         # FFT length of the filters (even)
sample_rate: 48000      # Hz
amp_threshold_db: 10    # Maximum filter amplification in dB
taper_db: 0             # Kaiser taper attenuation in dB, 0 disables
parallel: true          # Solve frequency bins concurrently (regls)

# Array simulation
array: "sph"            # sph or cyl
boundary: "rigid"       # open, rigid or directional
dir_coef: 1.0           # Capsule directivity for directional spheres
max_order: 4            # Plane-wave expansion order
sources: "0,0"          # "az,el; az,el; ..." in degrees

# Output
output_dir: "."
verbose: false
`
)

// Methods and array types accepted by the CLI.
const (
	MethodRadialInversion = "radinv"
	MethodSoftLimit       = "softlim"
	MethodRegularizedLS   = "regls"

	ArraySpherical   = "sph"
	ArrayCylindrical = "cyl"
)

const (
	layoutEm32      = "em32"
	layoutFibonacci = "fibonacci:"
	layoutCircle    = "circle:"

	dirSeparator   = ";"
	coordSeparator = ","

	maxSampleRate = 768000
)

// Settings holds all application configuration
type Settings struct {
	// Array geometry
	Radius    float64 `mapstructure:"radius"`
	MicLayout string  `mapstructure:"mic_layout"`

	// Filter design
	Method         string  `mapstructure:"method"`
	Order          int     `mapstructure:"order"`
	FilterLen      int     `mapstructure:"filter_len"`
	SampleRate     float64 `mapstructure:"sample_rate"`
	AmpThresholdDB float64 `mapstructure:"amp_threshold_db"`
	TaperDB        float64 `mapstructure:"taper_db"`
	Parallel       bool    `mapstructure:"parallel"`

	// Array simulation
	Array    string  `mapstructure:"array"`
	Boundary string  `mapstructure:"boundary"`
	DirCoef  float64 `mapstructure:"dir_coef"`
	MaxOrder int     `mapstructure:"max_order"`
	Sources  string  `mapstructure:"sources"`

	// Output
	OutputDir string `mapstructure:"output_dir"`
	Verbose   bool   `mapstructure:"verbose"`
}

// Init sets the defaults and reads the config file.
//
// An explicit path must exist. Otherwise config.yaml is searched in the
// current directory, then in the user config directory under AppName; a
// missing file is not an error. Environment variables prefixed with SHT_
// override file values.
func Init(path string) error {
	viper.SetDefault("radius", 0.042)
	viper.SetDefault("mic_layout", layoutEm32)
	viper.SetDefault("method", MethodRadialInversion)
	viper.SetDefault("order", 4)
	viper.SetDefault("filter_len", 256)
	viper.SetDefault("sample_rate", 48000)
	viper.SetDefault("amp_threshold_db", 10)
	viper.SetDefault("taper_db", 0)
	viper.SetDefault("parallel", true)
	viper.SetDefault("array", ArraySpherical)
	viper.SetDefault("boundary", "rigid")
	viper.SetDefault("dir_coef", 1.0)
	viper.SetDefault("max_order", 4)
	viper.SetDefault("sources", "0,0")
	viper.SetDefault("output_dir", ".")
	viper.SetDefault("verbose", false)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigType(ConfigType)

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		return nil
	}

	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	if configDir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(configDir, AppName))
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// WriteDefault writes DefaultConfig to dir/config.yaml unless it exists and
// returns the file path.
func WriteDefault(dir string) (string, error) {
	configFile := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configFile); err == nil {
		return configFile, fmt.Errorf("config already exists: %s", configFile)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configFile, []byte(DefaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("write default config: %w", err)
	}
	return configFile, nil
}

// Get returns the current settings
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges
func (s *Settings) Validate() error {
	var errs []error

	if s.Radius <= 0 {
		errs = append(errs, fmt.Errorf("radius must be positive, got %v", s.Radius))
	}
	if _, err := ParseLayout(s.MicLayout); err != nil {
		errs = append(errs, fmt.Errorf("mic_layout: %w", err))
	}

	switch s.Method {
	case MethodRadialInversion, MethodSoftLimit, MethodRegularizedLS:
	default:
		errs = append(errs, fmt.Errorf("method must be one of radinv, softlim, regls, got %q", s.Method))
	}
	if s.Order < 1 {
		errs = append(errs, fmt.Errorf("order must be at least 1, got %d", s.Order))
	}
	if s.FilterLen < 2 || s.FilterLen%2 != 0 {
		errs = append(errs, fmt.Errorf("filter_len must be even and at least 2, got %d", s.FilterLen))
	}
	if s.SampleRate < 1 || s.SampleRate > maxSampleRate {
		errs = append(errs, fmt.Errorf("sample_rate must be between 1 and %d Hz, got %v", maxSampleRate, s.SampleRate))
	}
	if s.TaperDB < 0 {
		errs = append(errs, fmt.Errorf("taper_db must be non-negative, got %v", s.TaperDB))
	}

	switch s.Array {
	case ArraySpherical, ArrayCylindrical:
	default:
		errs = append(errs, fmt.Errorf("array must be sph or cyl, got %q", s.Array))
	}
	if _, err := modal.ParseBoundary(s.Boundary); err != nil {
		errs = append(errs, fmt.Errorf("boundary: %w", err))
	}
	if s.DirCoef < 0 || s.DirCoef > 1 {
		errs = append(errs, fmt.Errorf("dir_coef must be between 0 and 1, got %v", s.DirCoef))
	}
	if s.MaxOrder < 0 {
		errs = append(errs, fmt.Errorf("max_order must be non-negative, got %d", s.MaxOrder))
	}
	if _, err := ParseDirections(s.Sources); err != nil {
		errs = append(errs, fmt.Errorf("sources: %w", err))
	}

	if s.OutputDir == "" {
		errs = append(errs, errors.New("output_dir must not be empty"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// TheoryConfig returns the design configuration of the per-order methods.
// The microphone count is taken from the layout.
func (s *Settings) TheoryConfig() (arraysht.TheoryConfig, error) {
	mics, err := ParseLayout(s.MicLayout)
	if err != nil {
		return arraysht.TheoryConfig{}, err
	}
	return arraysht.TheoryConfig{
		Radius:             s.Radius,
		NumMics:            len(mics),
		Order:              s.Order,
		FilterLen:          s.FilterLen,
		SampleRate:         s.SampleRate,
		AmpThresholdDB:     s.AmpThresholdDB,
		TaperAttenuationDB: s.TaperDB,
	}, nil
}

// LSConfig returns the design configuration of the least-squares method.
func (s *Settings) LSConfig() (arraysht.LSConfig, error) {
	mics, err := ParseLayout(s.MicLayout)
	if err != nil {
		return arraysht.LSConfig{}, err
	}
	return arraysht.LSConfig{
		Radius:             s.Radius,
		MicDirs:            mics,
		Order:              s.Order,
		FilterLen:          s.FilterLen,
		SampleRate:         s.SampleRate,
		AmpThresholdDB:     s.AmpThresholdDB,
		TaperAttenuationDB: s.TaperDB,
		EnableParallel:     s.Parallel,
	}, nil
}

// SimConfig returns the array simulation configuration.
func (s *Settings) SimConfig() (arraysht.SimConfig, error) {
	mics, err := ParseLayout(s.MicLayout)
	if err != nil {
		return arraysht.SimConfig{}, err
	}
	srcs, err := ParseDirections(s.Sources)
	if err != nil {
		return arraysht.SimConfig{}, err
	}
	boundary, err := modal.ParseBoundary(s.Boundary)
	if err != nil {
		return arraysht.SimConfig{}, err
	}
	return arraysht.SimConfig{
		MicDirs:    mics,
		SrcDirs:    srcs,
		Radius:     s.Radius,
		MaxOrder:   s.MaxOrder,
		FilterLen:  s.FilterLen,
		SampleRate: s.SampleRate,
		Boundary:   boundary,
		DirCoef:    s.DirCoef,
	}, nil
}

// ParseLayout resolves a microphone layout: "em32", "fibonacci:<n>",
// "circle:<n>" or an explicit direction list accepted by ParseDirections.
func ParseLayout(s string) ([]geometry.Direction, error) {
	layout := strings.ToLower(strings.TrimSpace(s))
	switch {
	case layout == layoutEm32:
		return geometry.Eigenmike32(), nil
	case strings.HasPrefix(layout, layoutFibonacci):
		n, err := parseCount(layout[len(layoutFibonacci):])
		if err != nil {
			return nil, err
		}
		return geometry.Fibonacci(n), nil
	case strings.HasPrefix(layout, layoutCircle):
		n, err := parseCount(layout[len(layoutCircle):])
		if err != nil {
			return nil, err
		}
		return geometry.Circle(n), nil
	default:
		return ParseDirections(s)
	}
}

// ParseDirections parses "az,el; az,el; ..." in degrees.
func ParseDirections(s string) ([]geometry.Direction, error) {
	var dirs []geometry.Direction
	for entry := range strings.SplitSeq(s, dirSeparator) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		az, el, ok := strings.Cut(entry, coordSeparator)
		if !ok {
			return nil, fmt.Errorf("direction %q: want azimuth,elevation", entry)
		}
		azDeg, err := strconv.ParseFloat(strings.TrimSpace(az), 64)
		if err != nil {
			return nil, fmt.Errorf("direction %q: azimuth: %w", entry, err)
		}
		elDeg, err := strconv.ParseFloat(strings.TrimSpace(el), 64)
		if err != nil {
			return nil, fmt.Errorf("direction %q: elevation: %w", entry, err)
		}
		dirs = append(dirs, geometry.FromDegrees(azDeg, elDeg))
	}
	if err := geometry.Validate(dirs); err != nil {
		return nil, err
	}
	return dirs, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("count %q: %w", s, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("count must be positive, got %d", n)
	}
	return n, nil
}
