package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"
	arraysht "github.com/tphakala/go-array-sht"
	"github.com/tphakala/go-array-sht/internal/config"
)

func newDesignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Design SHT filters and write their impulse responses",
		Long: `Designs SHT filters with one of three methods:

  radinv   regularized radial inversion, one filter per order
  softlim  soft-limited radial inversion, one filter per order
  regls    regularized least squares, one filter per channel and microphone

Per-order filters are written to sht_<method>.wav with one channel per order.
Least-squares filters are written to sht_regls_acn<k>.wav, one file per
spherical harmonic channel with one channel per microphone.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loadSettings()
			if err != nil {
				return err
			}
			return runDesign(s)
		},
	}
	cmd.Flags().String("method", config.MethodRadialInversion, "design method: radinv, softlim or regls")
	cmd.Flags().Bool("parallel", true, "solve frequency bins concurrently (regls)")
	return cmd
}

func runDesign(s *config.Settings) error {
	if s.Verbose {
		log.Printf("Method: %s", s.Method)
		log.Printf("Radius: %g m, layout: %s", s.Radius, s.MicLayout)
		log.Printf("Order: %d, filter length: %d, sample rate: %g Hz", s.Order, s.FilterLen, s.SampleRate)
		log.Printf("Amplification threshold: %g dB", s.AmpThresholdDB)
	}

	if s.Method == config.MethodRegularizedLS {
		return runDesignLS(s)
	}

	cfg, err := s.TheoryConfig()
	if err != nil {
		return err
	}

	design := arraysht.DesignRadialInversion
	if s.Method == config.MethodSoftLimit {
		design = arraysht.DesignSoftLimit
	}
	fb, err := design(cfg)
	if err != nil {
		return fmt.Errorf("design %s: %w", s.Method, err)
	}
	logWarnings(fb.Warnings)

	channels := make([][]float64, fb.Order+1)
	for n := range channels {
		channels[n] = make([]float64, len(fb.Time))
		for i, row := range fb.Time {
			channels[n][i] = row[n]
		}
	}

	path := filepath.Join(s.OutputDir, fmt.Sprintf("sht_%s.wav", s.Method))
	return writeAndReport(path, int(s.SampleRate), channels, s.Verbose)
}

func runDesignLS(s *config.Settings) error {
	cfg, err := s.LSConfig()
	if err != nil {
		return err
	}
	fb, err := arraysht.DesignRegularizedLS(cfg)
	if err != nil {
		return fmt.Errorf("design %s: %w", s.Method, err)
	}
	logWarnings(fb.Warnings)
	if s.Verbose {
		log.Printf("Array order: %d", fb.ArrayOrder)
	}

	for c, mics := range fb.Time {
		path := filepath.Join(s.OutputDir, fmt.Sprintf("sht_regls_acn%d.wav", c))
		if err := writeAndReport(path, int(s.SampleRate), mics, s.Verbose); err != nil {
			return err
		}
	}
	return nil
}

func logWarnings(warnings []error) {
	for _, w := range warnings {
		log.Printf("Warning: %v", w)
	}
}

func writeAndReport(path string, sampleRate int, channels [][]float64, verbose bool) error {
	gain, err := writeWAV(path, sampleRate, channels)
	if err != nil {
		return err
	}
	log.Printf("Wrote %s (%d channels, gain %.6g)", path, len(channels), gain)
	if verbose {
		log.Printf("Samples per channel: %d", len(channels[0]))
	}
	return nil
}
