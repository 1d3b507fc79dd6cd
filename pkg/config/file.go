package config

import (
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/utkarsh5026/tvcs/pkg/common/fileops"
	"github.com/utkarsh5026/tvcs/pkg/repository/scpath"
	"gopkg.in/ini.v1"
)

// configFileMode is the permission used when writing the config file.
const configFileMode = 0644

// loadOptions reads the file the way git reads its config: quoted
// subsections, ';' and '#' comments and valueless boolean keys.
var loadOptions = ini.LoadOptions{
	AllowBooleanKeys:          true,
	UnescapeValueDoubleQuotes: true,
}

// Load reads and parses the config file at path.
//
// Every key must live under a [section] header. Values are kept as text,
// so `bare = false` and `bare = "false"` read the same.
func Load(path scpath.AbsolutePath) (*Config, error) {
	data, err := os.ReadFile(path.String())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, missing("load", path.String(), err)
		}
		return nil, ioError("load", path.String(), err)
	}
	return Parse(data, path.String())
}

// Parse decodes config file contents. origin is only used in error context.
func Parse(data []byte, origin string) (*Config, error) {
	file, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return nil, corrupt("parse", origin, "invalid configuration syntax", err)
	}

	c := New()
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection {
			if keys := section.KeyStrings(); len(keys) > 0 {
				return nil, corrupt("parse", origin, "entry outside of a section", nil).
					WithContext("key", keys[0])
			}
			continue
		}
		for _, key := range section.Keys() {
			c.Set(section.Name(), key.Name(), key.Value())
		}
	}
	return c, nil
}

// Save writes the configuration to path atomically.
func (c *Config) Save(path scpath.AbsolutePath) error {
	data, err := c.Encode()
	if err != nil {
		return err
	}
	if err := fileops.AtomicWrite(path, data, configFileMode); err != nil {
		return ioError("save", path.String(), err)
	}
	return nil
}

// Encode renders the configuration in INI form, one [section] per block,
// keys in sorted order.
func (c *Config) Encode() ([]byte, error) {
	file := ini.Empty()
	for _, name := range c.Sections() {
		section, err := file.NewSection(name)
		if err != nil {
			return nil, corrupt("encode", "", "cannot encode configuration", err).
				WithContext("key", name)
		}
		for _, key := range c.Keys(name) {
			v, _ := c.Get(name, key)
			if _, err := section.NewKey(key, v); err != nil {
				return nil, corrupt("encode", "", "cannot encode configuration", err).
					WithContext("key", name+"."+key)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		return nil, corrupt("encode", "", "cannot encode configuration", err)
	}
	return []byte(strings.TrimLeft(buf.String(), "\n")), nil
}
