package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"github.com/spf13/cobra"

	"github.com/voxscreen/voxscreen/pkg/audio/decode"
)

var (
	decodeTestMaxDuration time.Duration
	decodeTestVerbose     bool
)

var decodeTestCmd = &cobra.Command{
	Use:   "decode-test [audio-file...]",
	Short: "Test the decode fallback chain against local files",
	Long: `Run each file through the decode fallback chain and report which
strategy succeeded, the decoded sample count and the sample rate. Useful
for checking codec coverage before deploying.

Examples:
  # Check one file
  voxscreen decode-test sample.ogg

  # Check a batch
  voxscreen decode-test uploads/*.webm --verbose`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDecodeTest,
}

func init() {
	rootCmd.AddCommand(decodeTestCmd)

	decodeTestCmd.Flags().DurationVar(&decodeTestMaxDuration, "max-duration", 10*time.Second,
		"decoded audio clamp")
	decodeTestCmd.Flags().BoolVar(&decodeTestVerbose, "verbose", false,
		"log each strategy attempt")
}

func runDecodeTest(cmd *cobra.Command, args []string) error {
	opts := decode.DefaultOptions()
	opts.MaxDuration = decodeTestMaxDuration
	if decodeTestVerbose {
		opts.Logger = logging.NewDefaultLogger()
	}

	failures := 0
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("FAIL %s: %v\n", path, err)
			failures++
			continue
		}

		start := time.Now()
		sig, err := decode.Decode(decode.Blob{Data: data, Filename: filepath.Base(path)}, opts)
		if err != nil {
			fmt.Printf("FAIL %s: %v\n", path, err)
			failures++
			continue
		}

		fmt.Printf("OK   %s: %d samples @ %d Hz (%.2fs audio, decoded in %s)\n",
			path, len(sig.Samples), sig.SampleRate,
			sig.Duration().Seconds(), time.Since(start).Round(time.Millisecond))
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed to decode", failures, len(args))
	}
	return nil
}
