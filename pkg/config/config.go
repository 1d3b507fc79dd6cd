// Package config holds the repository configuration: a two-level
// section -> key -> value mapping persisted as .source/config.
package config

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Well-known sections and keys.
const (
	SectionCore = "core"

	KeyRepositoryFormatVersion = "repositoryformatversion"
	KeyFileMode                = "filemode"
	KeyBare                    = "bare"

	// SupportedFormatVersion is the only repository format this module reads.
	SupportedFormatVersion = 0
)

// Config is a section -> key -> string snapshot. The zero value is empty and usable.
//
// A Config handed out by a repository is treated as read-only; callers that
// want to change settings work on a Clone and Save it explicitly.
type Config struct {
	sections map[string]map[string]string
}

// New returns an empty configuration.
func New() *Config {
	return &Config{sections: make(map[string]map[string]string)}
}

// NewDefault returns the configuration written by a fresh init.
func NewDefault() *Config {
	c := New()
	c.Set(SectionCore, KeyRepositoryFormatVersion, strconv.Itoa(SupportedFormatVersion))
	c.Set(SectionCore, KeyFileMode, "false")
	c.Set(SectionCore, KeyBare, "false")
	return c
}

// Get returns the raw value of section.key and whether it is set.
func (c *Config) Get(section, key string) (string, bool) {
	if c == nil || c.sections == nil {
		return "", false
	}
	keys, ok := c.sections[normalize(section)]
	if !ok {
		return "", false
	}
	v, ok := keys[normalize(key)]
	return v, ok
}

// GetInt returns section.key parsed as a decimal integer.
func (c *Config) GetInt(section, key string) (int, error) {
	v, ok := c.Get(section, key)
	if !ok {
		return 0, fmt.Errorf("%s.%s is not set", section, key)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s.%s = %q is not an integer", section, key, v)
	}
	return n, nil
}

// GetBool returns section.key parsed as a boolean.
func (c *Config) GetBool(section, key string) (bool, error) {
	v, ok := c.Get(section, key)
	if !ok {
		return false, fmt.Errorf("%s.%s is not set", section, key)
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("%s.%s = %q is not a boolean", section, key, v)
	}
	return b, nil
}

// Set stores value under section.key. Section and key names are case-insensitive.
func (c *Config) Set(section, key, value string) {
	if c.sections == nil {
		c.sections = make(map[string]map[string]string)
	}
	s := normalize(section)
	if c.sections[s] == nil {
		c.sections[s] = make(map[string]string)
	}
	c.sections[s][normalize(key)] = value
}

// Sections returns the section names in sorted order.
func (c *Config) Sections() []string {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.sections))
}

// Keys returns the key names of a section in sorted order.
func (c *Config) Keys(section string) []string {
	if c == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(c.sections[normalize(section)]))
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := New()
	if c == nil {
		return out
	}
	for name, keys := range c.sections {
		out.sections[name] = maps.Clone(keys)
	}
	return out
}

// FormatVersion returns core.repositoryformatversion. A missing or
// non-integer value is reported as a corrupt configuration.
func (c *Config) FormatVersion() (int, error) {
	v, err := c.GetInt(SectionCore, KeyRepositoryFormatVersion)
	if err != nil {
		return 0, corrupt("format-version", "", err.Error(), nil).
			WithContext("key", SectionCore+"."+KeyRepositoryFormatVersion)
	}
	return v, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
