package flow

import (
	"github.com/dialplan/dialplan/internal/config"
	"github.com/dialplan/dialplan/pkg/ivr"
)

// WelcomeSection is the root of the phone tree: an optional greeting sample
// followed by an unconditional redirect into the main menu.
type WelcomeSection struct {
	base
}

func newWelcomeSection(env *Factory, fields config.Fields) (*WelcomeSection, error) {
	b, err := newBase(env, "welcome", SectionWelcome, fields,
		[]string{fieldPlaySample},
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &WelcomeSection{base: b}, nil
}

func (s *WelcomeSection) Execute() (*ivr.Document, error) {
	if doc, err := s.closedRedirect(); doc != nil || err != nil {
		return doc, err
	}

	doc := ivr.New()
	s.playSample(doc)
	doc.Redirect(PathMenu)

	return doc, nil
}
