// Package config loads the key-grouped IVR configuration file and exposes
// it as named sections of flat string fields, plus the typed process-level
// settings derived from it. A Store is read-only after Load.
package config

import (
	"fmt"
	"sort"
	"strings"

	ini "gopkg.in/ini.v1"

	"github.com/dialplan/dialplan/pkg/ivr"
)

// Fields is the flat key/value content of one configuration section.
// Callers must treat it as read-only.
type Fields map[string]string

// Has reports whether the field is present.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// Store holds every section of one loaded configuration file.
type Store struct {
	path     string
	sections map[string]Fields
}

// Load reads and parses the configuration at path. Any I/O or parse failure
// is returned as *ivr.ConfigError; nothing is partially loaded.
func Load(path string) (*Store, error) {
	file, err := ini.LoadSources(ini.LoadOptions{}, path)
	if err != nil {
		return nil, &ivr.ConfigError{Path: path, Err: err}
	}

	s := &Store{
		path:     path,
		sections: make(map[string]Fields),
	}

	for _, sec := range file.Sections() {
		if sec.Name() == ini.DefaultSection && len(sec.Keys()) == 0 {
			continue
		}

		fields := make(Fields, len(sec.Keys()))
		for key, value := range sec.KeysHash() {
			fields[strings.ToLower(key)] = strings.TrimSpace(value)
		}
		s.sections[sec.Name()] = fields
	}

	if len(s.sections) == 0 {
		return nil, &ivr.ConfigError{Path: path, Err: fmt.Errorf("no sections defined")}
	}

	return s, nil
}

// Path returns the file the store was loaded from.
func (s *Store) Path() string { return s.path }

// Section returns the fields of a named section, or
// *ivr.SectionNotFoundError when it does not exist.
func (s *Store) Section(name string) (Fields, error) {
	fields, ok := s.sections[name]
	if !ok {
		return nil, &ivr.SectionNotFoundError{Name: name}
	}
	return fields, nil
}

// HasSection reports whether a named section exists.
func (s *Store) HasSection(name string) bool {
	_, ok := s.sections[name]
	return ok
}

// SectionNames returns every section name in sorted order.
func (s *Store) SectionNames() []string {
	names := make([]string, 0, len(s.sections))
	for name := range s.sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
