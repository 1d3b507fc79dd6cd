package sourcerepo

import (
	"github.com/utkarsh5026/tvcs/pkg/config"
	"github.com/utkarsh5026/tvcs/pkg/repository/scpath"
)

// Repository is a validated handle on an on-disk repository.
type Repository interface {
	// WorkingDirectory returns the directory that contains .source
	WorkingDirectory() scpath.RepositoryPath

	// SourceDirectory returns the path to the .source directory
	SourceDirectory() scpath.SourcePath

	// ObjectsDirectory returns the path to .source/objects
	ObjectsDirectory() scpath.SourcePath

	// Config returns the configuration loaded when the handle was built
	Config() *config.Config
}

var _ Repository = (*SourceRepository)(nil)
