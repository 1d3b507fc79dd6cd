package config

import (
	"github.com/utkarsh5026/tvcs/pkg/common/err"
)

const pkgName = "config"

// Sentinel errors for errors.Is checks. They match any error with the same code.
var (
	// ErrMissing indicates the config file does not exist
	ErrMissing = err.New(pkgName, err.CodeConfigMissing, "", "configuration file missing", nil)

	// ErrCorrupt indicates the config file could not be parsed or lacks a required key
	ErrCorrupt = err.New(pkgName, err.CodeConfigCorrupt, "", "configuration file corrupt", nil)
)

func missing(op, path string, cause error) error {
	return err.New(pkgName, err.CodeConfigMissing, op, "configuration file missing", cause).
		WithContext("path", path)
}

func corrupt(op, path, message string, cause error) *err.Error {
	return err.New(pkgName, err.CodeConfigCorrupt, op, message, cause).
		WithContext("path", path)
}

func ioError(op, path string, cause error) error {
	return err.New(pkgName, err.CodeIO, op, "configuration i/o failed", cause).
		WithContext("path", path)
}

// IsMissing reports whether e means the config file is absent.
func IsMissing(e error) bool {
	return err.IsCode(e, err.CodeConfigMissing)
}

// IsCorrupt reports whether e means the config file is unreadable as configuration.
func IsCorrupt(e error) bool {
	return err.IsCode(e, err.CodeConfigCorrupt)
}
