package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	arraysht "github.com/tphakala/go-array-sht"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	// Keep the search path away from real config files.
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Chdir(tmp)
}

func TestInit_Defaults(t *testing.T) {
	resetViper(t)
	require.NoError(t, Init(""))

	tests := []struct {
		key      string
		expected any
	}{
		{"radius", 0.042},
		{"mic_layout", "em32"},
		{"method", "radinv"},
		{"order", 4},
		{"filter_len", 256},
		{"sample_rate", 48000},
		{"amp_threshold_db", 10},
		{"array", "sph"},
		{"boundary", "rigid"},
		{"parallel", true},
		{"output_dir", "."},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, viper.Get(tt.key))
		})
	}

	s, err := Get()
	require.NoError(t, err)
	assert.Equal(t, 0.042, s.Radius)
	assert.Equal(t, 48000.0, s.SampleRate)
}

func TestInit_ReadsConfigFile(t *testing.T) {
	resetViper(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "radius: 0.05\nmethod: regls\nmic_layout: \"fibonacci:16\"\norder: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	require.NoError(t, Init(path))
	s, err := Get()
	require.NoError(t, err)
	assert.Equal(t, 0.05, s.Radius)
	assert.Equal(t, MethodRegularizedLS, s.Method)
	assert.Equal(t, 2, s.Order)

	cfg, err := s.LSConfig()
	require.NoError(t, err)
	assert.Len(t, cfg.MicDirs, 16)
	assert.True(t, cfg.EnableParallel)
}

func TestInit_SearchesWorkingDirectory(t *testing.T) {
	resetViper(t)
	require.NoError(t, os.WriteFile("config.yaml", []byte("order: 3\n"), 0o644))

	require.NoError(t, Init(""))
	assert.Equal(t, 3, viper.GetInt("order"))
}

func TestInit_MissingExplicitFile(t *testing.T) {
	resetViper(t)
	assert.Error(t, Init(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestInit_EnvironmentOverride(t *testing.T) {
	resetViper(t)
	t.Setenv("SHT_ORDER", "2")

	require.NoError(t, Init(""))
	s, err := Get()
	require.NoError(t, err)
	assert.Equal(t, 2, s.Order)
}

func TestWriteDefault(t *testing.T) {
	resetViper(t)
	dir := filepath.Join(t.TempDir(), "nested")

	path, err := WriteDefault(dir)
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = WriteDefault(dir)
	assert.Error(t, err)

	// The default file must describe the same settings as the defaults.
	require.NoError(t, Init(path))
	s, err := Get()
	require.NoError(t, err)
	assert.Equal(t, "em32", s.MicLayout)
	assert.Equal(t, 256, s.FilterLen)
}

func validSettings() Settings {
	return Settings{
		Radius:         0.042,
		MicLayout:      "em32",
		Method:         MethodRadialInversion,
		Order:          4,
		FilterLen:      256,
		SampleRate:     48000,
		AmpThresholdDB: 10,
		Array:          ArraySpherical,
		Boundary:       "rigid",
		DirCoef:        1,
		MaxOrder:       4,
		Sources:        "0,0",
		OutputDir:      ".",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"valid", func(*Settings) {}, ""},
		{"radius", func(s *Settings) { s.Radius = 0 }, "radius"},
		{"layout", func(s *Settings) { s.MicLayout = "fibonacci:x" }, "mic_layout"},
		{"method", func(s *Settings) { s.Method = "magic" }, "method"},
		{"order", func(s *Settings) { s.Order = 0 }, "order"},
		{"odd filter", func(s *Settings) { s.FilterLen = 255 }, "filter_len"},
		{"sample rate", func(s *Settings) { s.SampleRate = 0 }, "sample_rate"},
		{"taper", func(s *Settings) { s.TaperDB = -3 }, "taper_db"},
		{"array", func(s *Settings) { s.Array = "cube" }, "array"},
		{"boundary", func(s *Settings) { s.Boundary = "soft" }, "boundary"},
		{"dir coef", func(s *Settings) { s.DirCoef = 2 }, "dir_coef"},
		{"max order", func(s *Settings) { s.MaxOrder = -1 }, "max_order"},
		{"sources", func(s *Settings) { s.Sources = "10" }, "sources"},
		{"output", func(s *Settings) { s.OutputDir = "" }, "output_dir"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	s := validSettings()
	s.Radius = -1
	s.Order = 0
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "radius")
	assert.Contains(t, err.Error(), "order")
}

func TestSettings_Configs(t *testing.T) {
	s := validSettings()
	s.MicLayout = "circle:8"
	s.Boundary = "open"
	s.Sources = "90,0; -90,0"

	theory, err := s.TheoryConfig()
	require.NoError(t, err)
	assert.Equal(t, 8, theory.NumMics)
	require.NoError(t, theory.Validate())

	sim, err := s.SimConfig()
	require.NoError(t, err)
	assert.Len(t, sim.MicDirs, 8)
	assert.Len(t, sim.SrcDirs, 2)
	assert.Equal(t, arraysht.Open, sim.Boundary)
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		layout string
		count  int
	}{
		{"em32", 32},
		{"EM32", 32},
		{"fibonacci:50", 50},
		{"circle:6", 6},
		{"0,0; 90,0; 180,45", 3},
	}
	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			dirs, err := ParseLayout(tt.layout)
			require.NoError(t, err)
			assert.Len(t, dirs, tt.count)
		})
	}

	for _, bad := range []string{"", "fibonacci:0", "circle:-2", "1,2,3;", "a,b", "10,x"} {
		_, err := ParseLayout(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseDirections_Degrees(t *testing.T) {
	dirs, err := ParseDirections("90, 0 ; 0,-30")
	require.NoError(t, err)
	require.Len(t, dirs, 2)
	az, el := dirs[1].Degrees()
	assert.InDelta(t, 0.0, az, 1e-12)
	assert.InDelta(t, -30.0, el, 1e-12)
}
