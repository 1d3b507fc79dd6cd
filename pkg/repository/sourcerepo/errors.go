package sourcerepo

import (
	"strconv"

	"github.com/utkarsh5026/tvcs/pkg/common/err"
)

const pkgName = "sourcerepo"

func notARepository(op, path string) error {
	return err.New(pkgName, err.CodeNotARepository, op, "not a source repository: "+path, nil).
		WithContext("path", path)
}

func alreadyExists(op, path string) error {
	return err.New(pkgName, err.CodeAlreadyExists, op, "repository already exists: "+path, nil).
		WithContext("path", path)
}

func unsupportedVersion(op, path string, version int) error {
	return err.New(pkgName, err.CodeUnsupportedFormatVersion, op,
		"unsupported repositoryformatversion "+strconv.Itoa(version), nil).
		WithContext("path", path).
		WithContext("version", version)
}

func ioError(op, path string, cause error) error {
	return err.New(pkgName, err.CodeIO, op, "repository i/o failed", cause).
		WithContext("path", path)
}

// wrapConfig keeps the config package's code and adds the config path.
func wrapConfig(op, path string, cause error) error {
	return err.New(pkgName, "", op, "config "+path, cause).
		WithContext("path", path)
}

// IsNotARepository reports whether e means no repository was found.
func IsNotARepository(e error) bool {
	return err.IsCode(e, err.CodeNotARepository)
}

// IsAlreadyExists reports whether e means init found an existing repository.
func IsAlreadyExists(e error) bool {
	return err.IsCode(e, err.CodeAlreadyExists)
}

// IsUnsupportedFormatVersion reports whether e means the repository format is too new.
func IsUnsupportedFormatVersion(e error) bool {
	return err.IsCode(e, err.CodeUnsupportedFormatVersion)
}
