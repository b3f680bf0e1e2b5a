// Package cli provides the command-line interface for autobase16.
package cli

import (
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/autobase16/internal/version"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	verbose bool
	quiet   bool
	debug   bool
}

// logger builds the diagnostics logger for a command. Warnings are shown by
// default; --verbose adds progress, --debug adds per-comparison traces.
func (o *globalOptions) logger(w io.Writer) hclog.Logger {
	level := hclog.Warn
	switch {
	case o.quiet:
		level = hclog.Off
	case o.debug:
		level = hclog.Trace
	case o.verbose:
		level = hclog.Info
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:   "autobase16",
		Output: w,
		Level:  level,
	})
}

// NewRootCmd builds the command tree. Each call returns independent commands
// and flag state, so tests can run several in one process.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "autobase16",
		Short: "Pick a base16 colour scheme from a colour pool",
		Long: `autobase16 selects sixteen colours from a pool of candidates (a list of hex
colours, or colours extracted from an image) and assigns them to the base16
roles: progressively lighter background shades, readable foreground shades and
eight high-contrast accents. The scheme is then rendered into a template.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "trace every brightness and contrast comparison")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newExtractCmd(opts))
	rootCmd.AddCommand(newRenderCmd(opts))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
