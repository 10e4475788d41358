package main

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/spf13/cobra"
)

// Version is the module's release version, overridden at link time with
// -ldflags "-X main.Version=...". It must parse as semver; an invalid
// override is a build-time mistake, not something the CLI should paper
// over at runtime.
var Version = "0.1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wavedump version",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := semver.Parse(Version)
			if err != nil {
				return fmt.Errorf("wavedump: built with invalid version string %q: %w", Version, err)
			}
			fmt.Printf("wavedump %s\n", v.String())
			return nil
		},
	}
}
