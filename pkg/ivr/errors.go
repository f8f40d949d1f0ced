package ivr

import "fmt"

// ConfigError indicates the configuration file could not be loaded or parsed.
// It is fatal at startup; no partial operation is attempted.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %q: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// SectionNotFoundError indicates a named configuration section is absent.
type SectionNotFoundError struct {
	Name string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("section %q not found", e.Name)
}

// InvalidFieldError indicates a configured field is outside a section's
// valid field set, or its value cannot be parsed.
type InvalidFieldError struct {
	Section string
	Field   string
	Reason  string
}

func (e *InvalidFieldError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("section %q: invalid field %q", e.Section, e.Field)
	}
	return fmt.Sprintf("section %q: invalid field %q: %s", e.Section, e.Field, e.Reason)
}

// MissingMandatoryFieldError indicates a mandatory field is absent from a
// section.
type MissingMandatoryFieldError struct {
	Section string
	Field   string
}

func (e *MissingMandatoryFieldError) Error() string {
	return fmt.Sprintf("section %q: missing mandatory field %q", e.Section, e.Field)
}
