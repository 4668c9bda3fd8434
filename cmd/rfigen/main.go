// Command rfigen generates synthetic RFI test vectors from a jspec
// configuration file: a spectrogram artifact and, derived from it, a complex
// time-signal artifact.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcandell/p3388-rfigen/rfi/config"
	"github.com/rcandell/p3388-rfigen/rfi/generator"
)

var (
	configPath string
	seed       int64
	verbose    bool
)

func newGenerator() (*generator.Generator, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	opts := []generator.Option{generator.WithLogger(log)}
	if seed >= 0 {
		opts = append(opts, generator.WithSeed(seed))
	}

	return generator.New(cfg, opts...)
}

func main() {
	root := &cobra.Command{
		Use:           "rfigen",
		Short:         "Generate synthetic RFI interference test vectors",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the jspec configuration file")
	root.PersistentFlags().Int64Var(&seed, "seed", -1, "random seed for reproducible runs (negative uses entropy)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := root.MarkPersistentFlagRequired("config"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root.AddCommand(&cobra.Command{
		Use:   "spectrogram",
		Short: "Run the frame-synthesis pass and write the spectrogram artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := newGenerator()
			if err != nil {
				return err
			}

			return g.MakeSpectrogram()
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "timesignal",
		Short: "Convert an existing spectrogram artifact into the time-signal artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := newGenerator()
			if err != nil {
				return err
			}

			return g.MakeTimeSignal()
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Run both passes in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := newGenerator()
			if err != nil {
				return err
			}

			return g.Run()
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "rfigen:", err)
		os.Exit(1)
	}
}
