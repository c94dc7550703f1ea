package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"
	arraysht "github.com/tphakala/go-array-sht"
	"github.com/tphakala/go-array-sht/internal/config"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate the array response to plane waves",
		Long: `Simulates the pressure at every microphone of a spherical (sph) or
cylindrical (cyl) array for each source direction and writes
array_<array>_src<k>.wav, one file per source with one channel per microphone.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			return runSimulate(s)
		},
	}
	flags := cmd.Flags()
	flags.String("array", config.ArraySpherical, "array type: sph or cyl")
	flags.String("boundary", "rigid", "boundary: open, rigid or directional")
	flags.Float64("dir-coef", 1, "capsule directivity for directional spheres (1 omni, 0.5 cardioid)")
	flags.Int("max-order", 4, "plane-wave expansion order")
	flags.String("sources", "0,0", "source directions \"az,el; ...\" in degrees")
	return cmd
}

func runSimulate(s *config.Settings) error {
	cfg, err := s.SimConfig()
	if err != nil {
		return err
	}
	if s.Verbose {
		log.Printf("Array: %s, boundary: %s, max order: %d", s.Array, cfg.Boundary, cfg.MaxOrder)
		log.Printf("Microphones: %d, sources: %d", len(cfg.MicDirs), len(cfg.SrcDirs))
	}

	simulate := arraysht.SimulateSphArray
	if s.Array == config.ArrayCylindrical {
		simulate = arraysht.SimulateCylArray
	}
	resp, err := simulate(cfg)
	if err != nil {
		return fmt.Errorf("simulate %s: %w", s.Array, err)
	}

	for src := range cfg.SrcDirs {
		channels := make([][]float64, len(cfg.MicDirs))
		for m := range channels {
			channels[m] = resp.Time[m][src]
		}
		path := filepath.Join(s.OutputDir, fmt.Sprintf("array_%s_src%d.wav", s.Array, src))
		if err := writeAndReport(path, int(s.SampleRate), channels, s.Verbose); err != nil {
			return err
		}
	}
	return nil
}
