package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tphakala/go-array-sht/internal/config"
)

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"radius":        "radius",
	"mics":          "mic_layout",
	"order":         "order",
	"filter-len":    "filter_len",
	"sample-rate":   "sample_rate",
	"amp-threshold": "amp_threshold_db",
	"taper":         "taper_db",
	"output":        "output_dir",
	"verbose":       "verbose",
	"method":        "method",
	"parallel":      "parallel",
	"array":         "array",
	"boundary":      "boundary",
	"dir-coef":      "dir_coef",
	"max-order":     "max_order",
	"sources":       "sources",
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:   "sht-filters",
		Short: "Spherical microphone array filter design",
		Long: `Designs filters that convert the capsule signals of a spherical microphone
array into spherical harmonic signals, and simulates array responses to plane
waves. Settings come from flags, SHT_* environment variables and config.yaml.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.Init(configFile); err != nil {
				return err
			}
			return bindFlags(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (default ./config.yaml or <user config>/sht-filters/config.yaml)")
	flags.Float64P("radius", "r", 0.042, "array radius in meters")
	flags.StringP("mics", "m", "em32", "microphone layout: em32, fibonacci:<n>, circle:<n> or \"az,el; ...\" in degrees")
	flags.IntP("order", "n", 4, "transform order")
	flags.IntP("filter-len", "l", 256, "filter length (even)")
	flags.Float64P("sample-rate", "s", 48000, "sample rate in Hz")
	flags.Float64P("amp-threshold", "a", 10, "maximum amplification in dB")
	flags.Float64("taper", 0, "Kaiser taper attenuation in dB (0 disables)")
	flags.StringP("output", "o", ".", "output directory")
	flags.BoolP("verbose", "v", false, "verbose output")

	root.AddCommand(newDesignCmd(), newSimulateCmd(), newInitConfigCmd())
	return root
}

// bindFlags binds the flags of the running command to their config keys so
// explicitly set flags override file and environment values.
func bindFlags(cmd *cobra.Command) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func loadSettings() (*config.Settings, error) {
	s, err := config.Get()
	if err != nil {
		return nil, err
	}
	if s.Verbose {
		if used := viper.ConfigFileUsed(); used != "" {
			log.Printf("Config: %s", used)
		}
	}
	return s, nil
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [dir]",
		Short: "Write a default config.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path, err := config.WriteDefault(dir)
			if err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", path)
			return nil
		},
	}
}
