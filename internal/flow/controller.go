package flow

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/dialplan/dialplan/internal/logging"
	"github.com/dialplan/dialplan/pkg/ivr"
)

// RecordingStatusCompleted is the platform's recording-status value that
// triggers the voicemail alert.
const RecordingStatusCompleted = "completed"

// invalidSelectionMessage is spoken before redirecting a caller who picked a
// digit the script does not understand.
const invalidSelectionMessage = "Invalid menu option selected"

// dialStatusNames maps the platform's dial disposition vocabulary onto the
// internal names used by the action_on_* routing fields. Any status outside
// this map (a completed dial, for instance) needs no further script
// execution.
var dialStatusNames = map[string]string{
	"busy":      "busy",
	"no-answer": "no_answer",
	"failed":    "failed",
	"canceled":  "canceled",
}

// Notifier dispatches the voicemail alert SMS. It is an external side
// effect; the interpreter only decides when to fire it.
type Notifier interface {
	SendSMS(ctx context.Context, from, to, body string) error
}

// Controller is the façade the transport layer drives: one method per
// logical entrypoint, each an isolated, stateless evaluation over the loaded
// configuration.
type Controller struct {
	factory  *Factory
	logger   *slog.Logger
	notifier Notifier
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the controller's structured logger.
func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithNotifier sets the SMS notifier used for voicemail alerts.
func WithNotifier(n Notifier) ControllerOption {
	return func(c *Controller) {
		c.notifier = n
	}
}

// NewController builds the call-flow controller over a section factory.
func NewController(factory *Factory, opts ...ControllerOption) *Controller {
	c := &Controller{
		factory: factory,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Welcome runs the root welcome section.
func (c *Controller) Welcome() (*ivr.Document, error) {
	section, err := c.factory.Welcome()
	if err != nil {
		return nil, err
	}
	return section.Execute()
}

// Menu runs the main menu. When the platform posted gathered digits, the
// response is a redirect straight to the selected option; otherwise the menu
// replays with the loop counter seeded from the round-tripped query value.
func (c *Controller) Menu(digits string, loopParam int) (*ivr.Document, error) {
	if digits != "" {
		return ivr.New().Redirect(MenuOptionPath(digits)), nil
	}

	section, err := c.factory.Menu()
	if err != nil {
		return nil, err
	}
	if loopParam > 0 {
		section.SetLoopCount(loopParam + 1)
	}
	return section.Execute()
}

// MenuOption runs the section behind a gathered digit. Unparsable or
// out-of-range selections degrade to a spoken redirect back to the menu; a
// digit with no configured section surfaces *ivr.SectionNotFoundError.
func (c *Controller) MenuOption(raw string) (*ivr.Document, error) {
	option, err := strconv.Atoi(raw)
	if err != nil || option < 0 || option > 9 {
		c.logger.Warn("invalid menu option selected", "option", raw)
		return c.InvalidSelection(), nil
	}

	section, err := c.factory.MenuOption(option)
	if err != nil {
		return nil, err
	}
	return section.Execute()
}

// Action runs a named action section.
func (c *Controller) Action(name string) (*ivr.Document, error) {
	section, err := c.factory.Action(name)
	if err != nil {
		return nil, err
	}
	return section.Execute()
}

// Hangup returns a bare hangup document.
func (c *Controller) Hangup() *ivr.Document {
	return ivr.New().Hangup()
}

// InvalidSelection returns the spoken known-safe redirect used whenever live
// request handling would otherwise surface a raw failure.
func (c *Controller) InvalidSelection() *ivr.Document {
	return ivr.New().Say(invalidSelectionMessage).Redirect(PathMenu)
}

// ForwardCallStatus resolves the disposition callback of a forward action.
// Busy, no-answer, failed and canceled dials redirect to the action the
// initiating section routes them to; anything else, including a callback
// missing its correlation tag, hangs up.
func (c *Controller) ForwardCallStatus(dialStatus, initiatedBy string) (*ivr.Document, error) {
	internal, ok := dialStatusNames[dialStatus]
	if !ok {
		return c.Hangup(), nil
	}

	if initiatedBy == "" {
		c.logger.Warn("forward status callback without initiating section", "status", dialStatus)
		return c.Hangup(), nil
	}

	fields, err := c.factory.ActionFields(initiatedBy)
	if err != nil {
		c.logger.Warn("forward status callback for unknown action",
			"initiated_by", initiatedBy, "err", err)
		return c.Hangup(), nil
	}

	action, ok := fields["action_on_"+internal]
	if !ok {
		c.logger.Warn("forward action has no route for disposition",
			"initiated_by", initiatedBy, "status", dialStatus)
		return c.Hangup(), nil
	}

	return ivr.New().Redirect(ActionPath(action)), nil
}

// VoicemailHangup resolves the recording-completion callback: play the
// initiating action's hangup sample, then hang up.
func (c *Controller) VoicemailHangup(initiatedBy string) (*ivr.Document, error) {
	if initiatedBy == "" {
		c.logger.Warn("voicemail hangup callback without initiating section")
		return c.Hangup(), nil
	}

	fields, err := c.factory.ActionFields(initiatedBy)
	if err != nil {
		c.logger.Warn("voicemail hangup callback for unknown action",
			"initiated_by", initiatedBy, "err", err)
		return c.Hangup(), nil
	}

	doc := ivr.New()
	if sample := fields[fieldHangupSample]; sample != "" {
		doc.Play(sample)
	}
	doc.Hangup()

	return doc, nil
}

// VoicemailAlertSMS resolves the recording-status callback. Only a completed
// recording with a URL dispatches the alert; everything else is a no-op.
func (c *Controller) VoicemailAlertSMS(ctx context.Context, recordingURL, recordingStatus, initiatedBy string) error {
	if recordingStatus != RecordingStatusCompleted || recordingURL == "" {
		return nil
	}

	if initiatedBy == "" {
		c.logger.Warn("voicemail alert callback without initiating section")
		return nil
	}

	fields, err := c.factory.ActionFields(initiatedBy)
	if err != nil {
		return err
	}

	if c.notifier == nil {
		c.logger.Warn("voicemail recorded but no SMS notifier configured",
			"initiated_by", initiatedBy)
		return nil
	}

	c.logger.Info("dispatching voicemail alert",
		"initiated_by", initiatedBy, "to", fields[fieldAlertSMSTo])

	return c.notifier.SendSMS(ctx,
		fields[fieldAlertSMSFrom],
		fields[fieldAlertSMSTo],
		"New voicemail: "+recordingURL,
	)
}
