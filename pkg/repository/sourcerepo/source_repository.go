package sourcerepo

import (
	"os"

	"github.com/utkarsh5026/tvcs/pkg/common/fileops"
	"github.com/utkarsh5026/tvcs/pkg/common/logger"
	"github.com/utkarsh5026/tvcs/pkg/config"
	"github.com/utkarsh5026/tvcs/pkg/repository/scpath"
)

const defaultDescription = "Unnamed repository; edit this file 'description' to name the repository.\n"

// SourceRepository is a repository whose metadata has been validated.
//
// Layout on disk:
// ┌─ <working-directory>/
// │ ├─ .source/ ← metadata directory
// │ │ ├─ objects/ ← object storage
// │ │ │ ├─ ab/ ← first 2 chars of the key
// │ │ │ │ └─ cdef123... ← remaining 38 chars
// │ │ │ └─ ...
// │ │ ├─ config ← repository configuration
// │ │ └─ description ← repository description
// │ ├─ file1.txt ← working directory files
// │ └─ ...
//
// A SourceRepository never changes after construction. The configuration is
// a snapshot taken when the handle was built.
type SourceRepository struct {
	workingDir scpath.RepositoryPath
	sourceDir  scpath.SourcePath
	config     *config.Config
}

func newSourceRepository(path scpath.RepositoryPath, cfg *config.Config) *SourceRepository {
	return &SourceRepository{
		workingDir: path,
		sourceDir:  path.SourcePath(),
		config:     cfg,
	}
}

// WorkingDirectory returns the path to the repository's working directory
func (sr *SourceRepository) WorkingDirectory() scpath.RepositoryPath {
	return sr.workingDir
}

// SourceDirectory returns the path to the .source directory
func (sr *SourceRepository) SourceDirectory() scpath.SourcePath {
	return sr.sourceDir
}

// ObjectsDirectory returns the path to the objects directory
func (sr *SourceRepository) ObjectsDirectory() scpath.SourcePath {
	return sr.sourceDir.ObjectsPath()
}

// Config returns the configuration snapshot. Callers must not modify it;
// use Clone for a private copy.
func (sr *SourceRepository) Config() *config.Config {
	return sr.config
}

// Initialize creates a new repository at path.
//
// Directory structure created:
// - .source/
// - .source/objects/
//
// Files created:
// - .source/config (repositoryformatversion = 0, filemode = false, bare = false)
// - .source/description
//
// Initialize fails with an already-exists error when path/.source is present
// in any form. It does not guard against a concurrent initializer.
func Initialize(path scpath.RepositoryPath) (*SourceRepository, error) {
	sourceDir := path.SourcePath()

	exists, err := fileops.Exists(sourceDir.ToAbsolutePath())
	if err != nil {
		return nil, ioError("init", sourceDir.String(), err)
	}
	if exists {
		return nil, alreadyExists("init", sourceDir.String())
	}

	repo := newSourceRepository(path, config.NewDefault())

	if err := repo.createDirectories(); err != nil {
		return nil, err
	}
	if err := repo.createInitialFiles(); err != nil {
		return nil, err
	}

	logger.Debug("repository initialized", "path", path.String())
	return repo, nil
}

// createDirectories creates all necessary directories for the repository
func (sr *SourceRepository) createDirectories() error {
	directories := []scpath.SourcePath{
		sr.sourceDir,
		sr.sourceDir.ObjectsPath(),
	}

	for _, dir := range directories {
		if err := fileops.EnsureDir(dir.ToAbsolutePath()); err != nil {
			return ioError("init", dir.String(), err)
		}
	}
	return nil
}

// createInitialFiles writes the config and description files
func (sr *SourceRepository) createInitialFiles() error {
	configPath := sr.sourceDir.ConfigPath()
	if err := sr.config.Save(configPath.ToAbsolutePath()); err != nil {
		return wrapConfig("init", configPath.String(), err)
	}

	descriptionPath := sr.sourceDir.DescriptionPath()
	if err := os.WriteFile(descriptionPath.String(), []byte(defaultDescription), 0644); err != nil {
		return ioError("init", descriptionPath.String(), err)
	}
	return nil
}
