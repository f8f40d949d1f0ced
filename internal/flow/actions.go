package flow

import (
	"github.com/dialplan/dialplan/internal/config"
	"github.com/dialplan/dialplan/pkg/ivr"
)

// Action type discriminators, selected by the type field of an action_
// section.
const (
	ActionTypeRedirect  = "redirect"
	ActionTypeHangup    = "hangup"
	ActionTypeForward   = "forward"
	ActionTypeVoicemail = "voicemail"
)

// Action field names.
const (
	fieldPath        = "path"
	fieldPhoneNumber = "phone_number"

	fieldActionOnBusy     = "action_on_busy"
	fieldActionOnNoAnswer = "action_on_no_answer"
	fieldActionOnFailed   = "action_on_failed"
	fieldActionOnCanceled = "action_on_canceled"

	fieldHangupSample     = "hangup_sample"
	fieldAlertSMSFrom     = "voicemail_alert_sms_from"
	fieldAlertSMSTo       = "voicemail_alert_sms_to"
	fieldVoicemailTimeout = "voicemail_timeout"
	fieldVoicemailMaxLen  = "voicemail_max_length"
)

// actionConstructors dispatches an action section's type discriminator to
// the variant constructor.
var actionConstructors = map[string]func(env *Factory, name, sectionName string, fields config.Fields) (Section, error){
	ActionTypeRedirect:  newActionRedirect,
	ActionTypeHangup:    newActionHangup,
	ActionTypeForward:   newActionForward,
	ActionTypeVoicemail: newActionVoicemail,
}

// ActionRedirect plays an optional sample and hands the call to another
// document path.
type ActionRedirect struct {
	base
}

func newActionRedirect(env *Factory, name, sectionName string, fields config.Fields) (Section, error) {
	b, err := newBase(env, name, sectionName, fields,
		[]string{fieldType, fieldPlaySample, fieldPath},
		[]string{fieldPath},
	)
	if err != nil {
		return nil, err
	}

	if fields[fieldPath] == "" {
		return nil, &ivr.InvalidFieldError{Section: sectionName, Field: fieldPath, Reason: "must not be empty"}
	}

	return &ActionRedirect{base: b}, nil
}

func (s *ActionRedirect) Execute() (*ivr.Document, error) {
	if doc, err := s.closedRedirect(); doc != nil || err != nil {
		return doc, err
	}

	doc := ivr.New()
	s.playSample(doc)
	doc.Redirect(s.fields[fieldPath])

	return doc, nil
}

// ActionHangup plays an optional sample and terminates the call.
type ActionHangup struct {
	base
}

func newActionHangup(env *Factory, name, sectionName string, fields config.Fields) (Section, error) {
	b, err := newBase(env, name, sectionName, fields,
		[]string{fieldType, fieldPlaySample},
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &ActionHangup{base: b}, nil
}

func (s *ActionHangup) Execute() (*ivr.Document, error) {
	if doc, err := s.closedRedirect(); doc != nil || err != nil {
		return doc, err
	}

	doc := ivr.New()
	s.playSample(doc)
	doc.Hangup()

	return doc, nil
}

// ActionForward dials out to a phone number. The dial's status callback is
// tagged with this section's name so the later disposition callback can be
// correlated back to the action_on_* routing fields.
type ActionForward struct {
	base
}

func newActionForward(env *Factory, name, sectionName string, fields config.Fields) (Section, error) {
	b, err := newBase(env, name, sectionName, fields,
		[]string{fieldType, fieldPlaySample, fieldPhoneNumber,
			fieldActionOnBusy, fieldActionOnNoAnswer, fieldActionOnFailed, fieldActionOnCanceled},
		[]string{fieldPhoneNumber,
			fieldActionOnBusy, fieldActionOnNoAnswer, fieldActionOnFailed, fieldActionOnCanceled},
	)
	if err != nil {
		return nil, err
	}
	return &ActionForward{base: b}, nil
}

func (s *ActionForward) Execute() (*ivr.Document, error) {
	if doc, err := s.closedRedirect(); doc != nil || err != nil {
		return doc, err
	}

	doc := ivr.New()
	s.playSample(doc)
	doc.Append(ivr.Dial{
		Number: s.fields[fieldPhoneNumber],
		Action: callbackPath(PathForwardStatusCallback, s.name),
		Method: "POST",
	})

	return doc, nil
}

// ActionVoicemail plays its prompt and records a message. Both the
// completion callback and the recording-status callback are tagged with this
// section's name.
type ActionVoicemail struct {
	base

	timeout   int
	maxLength int
}

func newActionVoicemail(env *Factory, name, sectionName string, fields config.Fields) (Section, error) {
	b, err := newBase(env, name, sectionName, fields,
		[]string{fieldType, fieldPlaySample, fieldHangupSample,
			fieldAlertSMSFrom, fieldAlertSMSTo, fieldVoicemailTimeout, fieldVoicemailMaxLen},
		[]string{fieldPlaySample, fieldHangupSample,
			fieldAlertSMSFrom, fieldAlertSMSTo, fieldVoicemailTimeout, fieldVoicemailMaxLen},
	)
	if err != nil {
		return nil, err
	}

	timeout, err := positiveInt(sectionName, fieldVoicemailTimeout, fields[fieldVoicemailTimeout])
	if err != nil {
		return nil, err
	}
	maxLength, err := positiveInt(sectionName, fieldVoicemailMaxLen, fields[fieldVoicemailMaxLen])
	if err != nil {
		return nil, err
	}

	return &ActionVoicemail{base: b, timeout: timeout, maxLength: maxLength}, nil
}

func (s *ActionVoicemail) Execute() (*ivr.Document, error) {
	if doc, err := s.closedRedirect(); doc != nil || err != nil {
		return doc, err
	}

	doc := ivr.New()
	if sample := s.fields[fieldPlaySample]; sample != "" {
		doc.Play(sample)
		doc.Pause(1)
	}

	doc.Append(ivr.Record{
		Action:               callbackPath(PathVoicemailHangupCallback, s.name),
		TimeoutSeconds:       s.timeout,
		MaxLengthSeconds:     s.maxLength,
		StatusCallback:       callbackPath(PathVoicemailAlertCallback, s.name),
		StatusCallbackMethod: "POST",
	})

	return doc, nil
}
