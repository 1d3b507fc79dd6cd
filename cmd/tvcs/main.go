package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/tvcs/cmd/ui"
)

var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
	CommitSHA = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorMessage("Error: "+err.Error()))
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Each call has its own settings so
// tests can run commands side by side.
func newRootCmd() *cobra.Command {
	s := newSettings()

	rootCmd := &cobra.Command{
		Use:   "tvcs",
		Short: "tvcs - a content-addressable object store",
		Long: `tvcs stores blobs, trees, commits and tags the way git's loose object
database does: every object is framed, keyed by the SHA-1 of the frame,
compressed with zlib and written under .source/objects.`,
		Version:       fmt.Sprintf("%s (built: %s, commit: %s)", Version, BuildTime, CommitSHA),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(s, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	s.bindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newInitCmd(s))
	rootCmd.AddCommand(newHashObjectCmd(s))
	rootCmd.AddCommand(newShowObjectCmd(s))
	rootCmd.AddCommand(newListObjectsCmd(s))

	return rootCmd
}
