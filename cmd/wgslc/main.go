// Command wgslc is the WGSL front-end CLI.
//
// Usage:
//
//	wgslc check shader.wgsl       # parse and validate, print diagnostics
//	wgslc tokens shader.wgsl      # dump the token stream
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
)

var (
	flagColor   string
	flagVerbose bool
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:           "wgslc",
		Short:         "Parse and validate WGSL shaders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newTokensCommand())

	if err := rootCmd.Execute(); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}
	return nil
}

// newLogger builds the CLI logger. The core packages are log-free;
// logging is strictly a CLI concern.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
