// Command wavedump is a small CLI over the wave package: it reads a VCD
// or GHW trace file, drives the decoders against the waveref reference
// collaborators, and prints a summary (or, with --dump, every recorded
// change) to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"

	"github.com/deepteams/tracecore/internal/wavelog"
)

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "wavedump",
		Short: "Inspect VCD and GHW waveform trace files",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			wavelog.Setup("wavedump", levelFor(logLevel))
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "NOTICE",
		"log level: CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG")

	rootCmd.AddCommand(newVersionCmd(), newVCDCmd(), newGHWCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func levelFor(s string) logging.Level {
	switch s {
	case "CRITICAL":
		return logging.CRITICAL
	case "ERROR":
		return logging.ERROR
	case "WARNING":
		return logging.WARNING
	case "INFO":
		return logging.INFO
	case "DEBUG":
		return logging.DEBUG
	default:
		return logging.NOTICE
	}
}

func wavelogger() *logging.Logger { return wavelog.Logger() }
