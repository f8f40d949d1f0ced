package flow

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dialplan/dialplan/internal/config"
	"github.com/dialplan/dialplan/pkg/ivr"
)

// Configuration section names understood by the interpreter.
const (
	SectionWelcome          = "ivr_welcome"
	SectionMenu             = "ivr_menu"
	SectionMenuOptionPrefix = "ivr_menu_option_"
	SectionActionPrefix     = "action_"
	SectionHoursPrefix      = "hours_"
)

// Source supplies configuration sections by name. *config.Store satisfies it.
type Source interface {
	Section(name string) (config.Fields, error)
	SectionNames() []string
}

// Clock returns the current time. Injected so hours gating is testable.
type Clock func() time.Time

// Factory resolves section names and variant discriminators out of the
// configuration into constructed, validated sections. It is safe for
// concurrent use; every call builds a fresh section.
type Factory struct {
	source Source
	loc    *time.Location
	clock  Clock
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithClock overrides the factory's time source.
func WithClock(clock Clock) FactoryOption {
	return func(f *Factory) {
		f.clock = clock
	}
}

// NewFactory builds a factory over a configuration source. loc is the
// process-wide IVR timezone every hours gate is evaluated in.
func NewFactory(source Source, loc *time.Location, opts ...FactoryOption) *Factory {
	f := &Factory{
		source: source,
		loc:    loc,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// now returns the current time in the configured IVR timezone.
func (f *Factory) now() time.Time {
	return f.clock().In(f.loc)
}

// Welcome resolves the ivr_welcome section.
func (f *Factory) Welcome() (*WelcomeSection, error) {
	fields, err := f.source.Section(SectionWelcome)
	if err != nil {
		return nil, err
	}
	return newWelcomeSection(f, fields)
}

// Menu resolves the ivr_menu section.
func (f *Factory) Menu() (*MenuSection, error) {
	fields, err := f.source.Section(SectionMenu)
	if err != nil {
		return nil, err
	}
	return newMenuSection(f, fields)
}

// MenuOption resolves one ivr_menu_option_<n> section for option 0-9.
func (f *Factory) MenuOption(option int) (*MenuOptionSection, error) {
	if option < 0 || option > 9 {
		return nil, fmt.Errorf("menu option out of range: %d", option)
	}

	fields, err := f.source.Section(SectionMenuOptionPrefix + strconv.Itoa(option))
	if err != nil {
		return nil, err
	}
	return newMenuOptionSection(f, option, fields)
}

// Action resolves an action_<name> section into the variant its type field
// selects.
func (f *Factory) Action(name string) (Section, error) {
	sectionName := SectionActionPrefix + name

	fields, err := f.source.Section(sectionName)
	if err != nil {
		return nil, err
	}

	kind, ok := fields[fieldType]
	if !ok {
		return nil, &ivr.MissingMandatoryFieldError{Section: sectionName, Field: fieldType}
	}

	construct, ok := actionConstructors[kind]
	if !ok {
		return nil, &ivr.InvalidFieldError{
			Section: sectionName,
			Field:   fieldType,
			Reason:  fmt.Sprintf("unknown action type %q", kind),
		}
	}

	return construct(f, name, sectionName, fields)
}

// ActionFields returns the raw fields of an action section. Callback
// resolution reads routing fields from the initiating action without
// re-running its variant logic.
func (f *Factory) ActionFields(name string) (config.Fields, error) {
	return f.source.Section(SectionActionPrefix + name)
}

// Hours resolves a hours_<name> section into a gate.
func (f *Factory) Hours(name string) (*HoursGate, error) {
	sectionName := SectionHoursPrefix + name

	fields, err := f.source.Section(sectionName)
	if err != nil {
		return nil, err
	}
	return NewHoursGate(name, sectionName, fields)
}
