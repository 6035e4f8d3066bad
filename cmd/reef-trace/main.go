// Package main provides the reef-trace binary: run reef programs with
// function-boundary probes attached and report what fired.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reeflang/reef/internal/cli"
	"github.com/reeflang/reef/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "reef-trace",
		Short:         "reef-trace - function-boundary tracing for reef programs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(cli.NewRunCmd())
	rootCmd.AddCommand(newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("reef-trace version %s\n", version.Version)
			cmd.Printf("Git commit: %s\n", version.GitCommit)
			cmd.Printf("Build date: %s\n", version.BuildDate)
			cmd.Printf("Go version: %s\n", version.GoVersion)
		},
	}
}
