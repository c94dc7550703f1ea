package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/simd/f64"
)

const (
	wavBitDepth    = 32
	wavPCMFormat   = 1
	wavPeakTarget  = 0.99
	wavFullScale   = math.MaxInt32
	wavSilentLevel = 0.0
)

// writeWAV writes channels as 32-bit PCM, scaled so the largest magnitude
// across all channels reaches wavPeakTarget. It returns the applied gain,
// 1 for silent input. All channels must have the same length.
func writeWAV(path string, sampleRate int, channels [][]float64) (float64, error) {
	if len(channels) == 0 {
		return 0, errors.New("no channels to write")
	}
	frames := len(channels[0])
	for i, ch := range channels {
		if len(ch) != frames {
			return 0, fmt.Errorf("channel %d has %d samples, want %d", i, len(ch), frames)
		}
	}

	peak := wavSilentLevel
	for _, ch := range channels {
		for _, v := range ch {
			peak = math.Max(peak, math.Abs(v))
		}
	}
	gain := 1.0
	if peak > wavSilentLevel {
		gain = wavPeakTarget / peak
	}

	numCh := len(channels)
	data := make([]int, frames*numCh)
	scaled := make([]float64, frames)
	for c, ch := range channels {
		f64.Scale(scaled, ch, gain)
		for i, v := range scaled {
			data[i*numCh+c] = int(math.Round(v * wavFullScale))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, numCh, wavPCMFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numCh, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("failed to write WAV data: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return 0, fmt.Errorf("failed to finalize WAV file: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("failed to close output file: %w", err)
	}
	return gain, nil
}
