// Command sht-filters designs spherical harmonic transform filters for
// microphone arrays and simulates array responses, writing the impulse
// responses as WAV files.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
