package flow

import (
	"strconv"

	"github.com/dialplan/dialplan/internal/config"
	"github.com/dialplan/dialplan/pkg/ivr"
)

const (
	fieldNoInputSample      = "no_input_sample"
	fieldNoInputMaxLoops    = "no_input_max_loops"
	fieldNoInputActionOnMax = "no_input_action_on_max_loops"
	fieldPause              = "pause"

	// defaultMenuPause is how long the gather waits for a digit, in seconds.
	defaultMenuPause = 2
)

// MenuSection gathers a single digit while playing the menu prompt. When no
// input arrives within the pause window the platform falls through to the
// instructions after the gather: an optional max-loops escape (redirect or
// hangup), an optional no-input sample, and a redirect back to the menu
// carrying the loop counter.
type MenuSection struct {
	base

	pause     int
	maxLoops  int // 0 when unconfigured
	loopCount int // request-scoped, seeded from the loop_count query param
}

func newMenuSection(env *Factory, fields config.Fields) (*MenuSection, error) {
	b, err := newBase(env, "menu", SectionMenu, fields,
		[]string{fieldPlaySample, fieldNoInputSample, fieldNoInputMaxLoops, fieldNoInputActionOnMax, fieldPause},
		[]string{fieldPlaySample},
	)
	if err != nil {
		return nil, err
	}

	s := &MenuSection{base: b, pause: defaultMenuPause, loopCount: 1}

	if fields.Has(fieldPause) {
		s.pause, err = positiveInt(SectionMenu, fieldPause, fields[fieldPause])
		if err != nil {
			return nil, err
		}
	}

	if fields.Has(fieldNoInputMaxLoops) {
		s.maxLoops, err = positiveInt(SectionMenu, fieldNoInputMaxLoops, fields[fieldNoInputMaxLoops])
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

// SetLoopCount seeds the replay counter for this request. Loop state lives
// only in the round-tripped query parameter, never in the process.
func (s *MenuSection) SetLoopCount(n int) {
	if n > 0 {
		s.loopCount = n
	}
}

// LoopCount returns the current replay counter.
func (s *MenuSection) LoopCount() int { return s.loopCount }

func (s *MenuSection) Execute() (*ivr.Document, error) {
	if doc, err := s.closedRedirect(); doc != nil || err != nil {
		return doc, err
	}

	doc := ivr.New()

	doc.Append(ivr.Gather{
		NumDigits: 1,
		Inner: []ivr.Instruction{
			ivr.Play{URL: s.fields[fieldPlaySample]},
			ivr.Pause{Seconds: s.pause},
		},
	})

	// Everything below the gather only runs if the caller entered nothing
	// within the pause window.
	if s.maxLoops > 0 && s.loopCount >= s.maxLoops {
		if action, ok := s.fields[fieldNoInputActionOnMax]; ok {
			doc.Redirect(ActionPath(action))
		} else {
			doc.Hangup()
		}
	}

	if sample := s.fields[fieldNoInputSample]; sample != "" {
		doc.Play(sample)
	}

	doc.Redirect(menuLoopPath(s.loopCount))

	return doc, nil
}

func positiveInt(sectionName, field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, &ivr.InvalidFieldError{
			Section: sectionName,
			Field:   field,
			Reason:  "must be a positive integer",
		}
	}
	return n, nil
}
