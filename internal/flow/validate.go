package flow

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate constructs every section the configuration declares, surfacing
// the first schema violation. report, when non-nil, is called with each
// section name before it is checked; the CLI uses it for progress output.
func (f *Factory) Validate(report func(sectionName string)) error {
	progress := func(name string) {
		if report != nil {
			report(name)
		}
	}

	progress(SectionWelcome)
	if _, err := f.Welcome(); err != nil {
		return err
	}

	progress(SectionMenu)
	if _, err := f.Menu(); err != nil {
		return err
	}

	for _, name := range f.source.SectionNames() {
		switch {
		case strings.HasPrefix(name, SectionMenuOptionPrefix):
			progress(name)
			option, err := strconv.Atoi(strings.TrimPrefix(name, SectionMenuOptionPrefix))
			if err != nil || option < 0 || option > 9 {
				return fmt.Errorf("section %q: menu option must be 0-9", name)
			}
			if _, err := f.MenuOption(option); err != nil {
				return err
			}

		case strings.HasPrefix(name, SectionActionPrefix):
			progress(name)
			if _, err := f.Action(strings.TrimPrefix(name, SectionActionPrefix)); err != nil {
				return err
			}

		case strings.HasPrefix(name, SectionHoursPrefix):
			progress(name)
			if _, err := f.Hours(strings.TrimPrefix(name, SectionHoursPrefix)); err != nil {
				return err
			}
		}
	}

	return nil
}
