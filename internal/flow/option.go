package flow

import (
	"strconv"

	"github.com/dialplan/dialplan/internal/config"
	"github.com/dialplan/dialplan/pkg/ivr"
)

const fieldAction = "action"

// MenuOptionSection is one keypad choice (0-9) of the main menu: an optional
// sample, then a redirect into the configured action.
type MenuOptionSection struct {
	base

	option int
}

func newMenuOptionSection(env *Factory, option int, fields config.Fields) (*MenuOptionSection, error) {
	sectionName := SectionMenuOptionPrefix + strconv.Itoa(option)

	b, err := newBase(env, strconv.Itoa(option), sectionName, fields,
		[]string{fieldPlaySample, fieldAction},
		[]string{fieldAction},
	)
	if err != nil {
		return nil, err
	}

	return &MenuOptionSection{base: b, option: option}, nil
}

// Option returns the keypad digit this section answers to.
func (s *MenuOptionSection) Option() int { return s.option }

func (s *MenuOptionSection) Execute() (*ivr.Document, error) {
	if doc, err := s.closedRedirect(); doc != nil || err != nil {
		return doc, err
	}

	doc := ivr.New()
	s.playSample(doc)
	doc.Redirect(ActionPath(s.fields[fieldAction]))

	return doc, nil
}
