package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/utkarsh5026/tvcs/cmd/ui"
	"github.com/utkarsh5026/tvcs/pkg/repository/scpath"
	"github.com/utkarsh5026/tvcs/pkg/repository/sourcerepo"
)

func newInitCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty repository",
		Long: `Create an empty repository in the current directory or the given path.
This creates a .source directory holding the objects directory, the
repository config and a description file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := s.resolvePath(path)
			if err != nil {
				return err
			}

			repoPath, err := scpath.NewRepositoryPath(absPath)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			repo, err := sourcerepo.Initialize(repoPath)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(),
				ui.SuccessMessage("Initialized empty tvcs repository in", repo.SourceDirectory().String()))
			return nil
		},
	}

	return cmd
}
