package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/utkarsh5026/tvcs/pkg/common/logger"
)

const envPrefix = "TVCS"

const (
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
	keyVerbose   = "verbose"
	keyDirectory = "directory"
)

// settings holds process-wide options. Every key can come from a flag or
// from a TVCS_* environment variable, flags taking precedence.
type settings struct {
	v *viper.Viper
}

func newSettings() *settings {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyLogFormat, "text")
	v.SetDefault(keyVerbose, false)

	return &settings{v: v}
}

func (s *settings) bindFlags(flags *pflag.FlagSet) {
	flags.String(keyLogLevel, "info", "Log level (debug, info, warn, error)")
	flags.String(keyLogFormat, "text", "Log format (text, json)")
	flags.BoolP(keyVerbose, "v", false, "Enable verbose output (sets log level to debug)")
	flags.StringP(keyDirectory, "C", "", "Run as if tvcs was started in this directory")

	if err := s.bind(flags, keyLogLevel, keyLogFormat, keyVerbose, keyDirectory); err != nil {
		panic(err)
	}
}

// bind ties each key to the flag of the same name.
func (s *settings) bind(flags *pflag.FlagSet, keys ...string) error {
	for _, key := range keys {
		if err := s.v.BindPFlag(key, flags.Lookup(key)); err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	return nil
}

func (s *settings) logLevel() string  { return s.v.GetString(keyLogLevel) }
func (s *settings) logFormat() string { return s.v.GetString(keyLogFormat) }
func (s *settings) verbose() bool     { return s.v.GetBool(keyVerbose) }

// workingDir returns the absolute directory commands operate from.
func (s *settings) workingDir() (string, error) {
	dir := s.v.GetString(keyDirectory)
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}
	return abs, nil
}

// resolvePath interprets p relative to the working directory.
func (s *settings) resolvePath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	dir, err := s.workingDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, p), nil
}

func setupLogging(s *settings, out io.Writer) error {
	level, err := logger.ParseLevel(s.logLevel())
	if err != nil {
		return err
	}
	if s.verbose() {
		level = logger.LevelDebug
	}

	format, err := logger.ParseFormat(s.logFormat())
	if err != nil {
		return err
	}

	logger.Default = logger.New(logger.Config{
		Level:  level,
		Format: format,
		Output: out,
	})
	return nil
}
