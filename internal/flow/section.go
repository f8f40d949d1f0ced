// Package flow implements the call-flow interpreter: the section variants a
// phone-tree is built from, the factory that resolves them out of the loaded
// configuration, and the controller that maps webhook entrypoints onto them.
//
// Sections are constructed fresh per request and discarded after producing a
// document; the only request-scoped state is the menu loop counter, which the
// telephony platform round-trips via a query parameter.
package flow

import (
	"github.com/dialplan/dialplan/internal/config"
	"github.com/dialplan/dialplan/pkg/ivr"
)

// Section is one node of the phone tree. Execute produces the
// voice-response document for the current request.
type Section interface {
	Name() string
	Execute() (*ivr.Document, error)
}

// Fields every section may carry regardless of variant.
const (
	fieldHours             = "hours"
	fieldHoursActionClosed = "hours_action_on_closed"
	fieldPlaySample        = "play_sample"
	fieldType              = "type"
)

// base carries the shared state and contract of every section variant:
// field-set validation at construction and the closed-hours pre-check at
// execution.
type base struct {
	env         *Factory
	name        string
	sectionName string
	fields      config.Fields
	hasHours    bool
}

// newBase validates the variant's field sets and builds the shared state.
// The hours and hours_action_on_closed fields are implicitly valid for every
// variant.
func newBase(env *Factory, name, sectionName string, fields config.Fields, valid, mandatory []string) (base, error) {
	valid = append([]string{fieldHours, fieldHoursActionClosed}, valid...)

	if err := checkValidFields(sectionName, fields, valid); err != nil {
		return base{}, err
	}
	if err := checkMandatoryFields(sectionName, fields, mandatory); err != nil {
		return base{}, err
	}

	return base{
		env:         env,
		name:        name,
		sectionName: sectionName,
		fields:      fields,
		hasHours:    fields.Has(fieldHours),
	}, nil
}

func (b *base) Name() string { return b.name }

// closedRedirect runs the shared hours pre-check. When the section is gated
// and currently closed it returns the redirect document to the configured
// closed-hours action; otherwise it returns nil and the variant's own logic
// proceeds. Closed-hours redirection always takes precedence.
func (b *base) closedRedirect() (*ivr.Document, error) {
	if !b.hasHours {
		return nil, nil
	}

	gate, err := b.env.Hours(b.fields[fieldHours])
	if err != nil {
		return nil, err
	}

	if gate.IsOpen(b.env.now()) {
		return nil, nil
	}

	action, ok := b.fields[fieldHoursActionClosed]
	if !ok {
		return nil, &ivr.MissingMandatoryFieldError{
			Section: b.sectionName,
			Field:   fieldHoursActionClosed,
		}
	}

	return ivr.New().Redirect(ActionPath(action)), nil
}

// playSample appends the optional play_sample field to the document.
func (b *base) playSample(doc *ivr.Document) {
	if sample := b.fields[fieldPlaySample]; sample != "" {
		doc.Play(sample)
	}
}

func checkValidFields(sectionName string, fields config.Fields, valid []string) error {
	allowed := make(map[string]struct{}, len(valid))
	for _, field := range valid {
		allowed[field] = struct{}{}
	}

	for field := range fields {
		if _, ok := allowed[field]; !ok {
			return &ivr.InvalidFieldError{Section: sectionName, Field: field}
		}
	}
	return nil
}

func checkMandatoryFields(sectionName string, fields config.Fields, mandatory []string) error {
	for _, field := range mandatory {
		if !fields.Has(field) {
			return &ivr.MissingMandatoryFieldError{Section: sectionName, Field: field}
		}
	}
	return nil
}
