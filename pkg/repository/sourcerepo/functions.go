package sourcerepo

import (
	"github.com/utkarsh5026/tvcs/pkg/common/fileops"
	"github.com/utkarsh5026/tvcs/pkg/common/logger"
	"github.com/utkarsh5026/tvcs/pkg/config"
	"github.com/utkarsh5026/tvcs/pkg/repository/scpath"
)

// RepositoryExists reports whether path has a .source directory. It does
// not validate the configuration.
func RepositoryExists(path scpath.RepositoryPath) (bool, error) {
	sourceDir := path.SourcePath()
	ok, err := fileops.IsDirectory(sourceDir.ToAbsolutePath())
	if err != nil {
		return false, ioError("exists", sourceDir.String(), err)
	}
	return ok, nil
}

// Open validates the repository rooted at path and returns a handle.
//
// The checks run in order: the .source directory must exist, the config file
// must exist and parse, core.repositoryformatversion must be an integer and
// it must be 0. Open never writes.
func Open(path scpath.RepositoryPath) (*SourceRepository, error) {
	exists, err := RepositoryExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, notARepository("open", path.String())
	}

	configPath := path.SourcePath().ConfigPath()
	cfg, err := config.Load(configPath.ToAbsolutePath())
	if err != nil {
		return nil, wrapConfig("open", configPath.String(), err)
	}

	version, err := cfg.FormatVersion()
	if err != nil {
		return nil, wrapConfig("open", configPath.String(), err)
	}
	if version != config.SupportedFormatVersion {
		return nil, unsupportedVersion("open", configPath.String(), version)
	}

	logger.Debug("repository opened", "path", path.String())
	return newSourceRepository(path, cfg), nil
}

// FindRepository walks from startPath towards the filesystem root and opens
// the first directory that contains .source. The nearest ancestor wins.
// Reaching the root without a match is a not-a-repository error.
func FindRepository(startPath scpath.RepositoryPath) (*SourceRepository, error) {
	current, err := scpath.NewRepositoryPath(startPath.String())
	if err != nil {
		return nil, ioError("find", startPath.String(), err)
	}

	for {
		exists, err := RepositoryExists(current)
		if err != nil {
			return nil, err
		}
		if exists {
			logger.Debug("repository located", "start", startPath.String(), "root", current.String())
			return Open(current)
		}

		parent, ok := current.Parent()
		if !ok {
			return nil, notARepository("find", startPath.String())
		}
		current = parent
	}
}
