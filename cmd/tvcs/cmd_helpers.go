package main

import (
	"fmt"

	"github.com/utkarsh5026/tvcs/pkg/repository/scpath"
	"github.com/utkarsh5026/tvcs/pkg/repository/sourcerepo"
	"github.com/utkarsh5026/tvcs/pkg/store"
)

// findRepository locates the repository enclosing the working directory.
func findRepository(s *settings) (*sourcerepo.SourceRepository, error) {
	dir, err := s.workingDir()
	if err != nil {
		return nil, err
	}

	start, err := scpath.NewRepositoryPath(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	return sourcerepo.FindRepository(start)
}

// openStore locates the repository and returns its object store.
func openStore(s *settings) (*store.FileObjectStore, error) {
	repo, err := findRepository(s)
	if err != nil {
		return nil, err
	}
	return store.New(repo), nil
}
