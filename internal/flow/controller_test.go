package flow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialplan/dialplan/internal/flow"
	"github.com/dialplan/dialplan/pkg/ivr"
)

type sentSMS struct {
	from, to, body string
}

type fakeNotifier struct {
	sent []sentSMS
	err  error
}

func (n *fakeNotifier) SendSMS(ctx context.Context, from, to, body string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentSMS{from: from, to: to, body: body})
	return nil
}

func newController(src stubSource, notifier flow.Notifier) *flow.Controller {
	opts := []flow.ControllerOption{}
	if notifier != nil {
		opts = append(opts, flow.WithNotifier(notifier))
	}
	return flow.NewController(newFactory(src, noonMonday), opts...)
}

func TestController_Welcome(t *testing.T) {
	doc, err := newController(testSource(), nil).Welcome()
	require.NoError(t, err)
	assert.Equal(t, ivr.Redirect{URL: "/ivr/menu"}, doc.Last())
}

func TestController_Menu(t *testing.T) {
	c := newController(testSource(), nil)

	t.Run("digits short-circuit to the option", func(t *testing.T) {
		doc, err := c.Menu("3", 0)
		require.NoError(t, err)

		require.Len(t, doc.Instructions, 1)
		assert.Equal(t, ivr.Redirect{URL: "/ivr/menu/3"}, doc.Instructions[0])
	})

	t.Run("no digits replays the menu", func(t *testing.T) {
		doc, err := c.Menu("", 0)
		require.NoError(t, err)

		assert.IsType(t, ivr.Gather{}, doc.Instructions[0])
		assert.Equal(t, ivr.Redirect{URL: "/ivr/menu?loop_count=1"}, doc.Last())
	})

	t.Run("loop query parameter is incremented", func(t *testing.T) {
		doc, err := c.Menu("", 1)
		require.NoError(t, err)

		assert.Equal(t, ivr.Redirect{URL: "/ivr/menu?loop_count=2"}, doc.Last())
	})
}

func TestController_MenuOption(t *testing.T) {
	c := newController(testSource(), nil)

	t.Run("configured option executes", func(t *testing.T) {
		doc, err := c.MenuOption("1")
		require.NoError(t, err)
		assert.Equal(t, ivr.Redirect{URL: "/ivr/action/sales"}, doc.Last())
	})

	t.Run("unconfigured option surfaces section not found", func(t *testing.T) {
		_, err := c.MenuOption("7")
		var notFound *ivr.SectionNotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("non-numeric selection degrades to the menu", func(t *testing.T) {
		doc, err := c.MenuOption("a")
		require.NoError(t, err)

		require.Len(t, doc.Instructions, 2)
		assert.IsType(t, ivr.Say{}, doc.Instructions[0])
		assert.Equal(t, ivr.Redirect{URL: "/ivr/menu"}, doc.Instructions[1])
	})

	t.Run("out-of-range selection degrades to the menu", func(t *testing.T) {
		doc, err := c.MenuOption("15")
		require.NoError(t, err)
		assert.Equal(t, ivr.Redirect{URL: "/ivr/menu"}, doc.Last())
	})
}

func TestController_ForwardCallStatus(t *testing.T) {
	c := newController(testSource(), nil)

	t.Run("no-answer routes to the configured action", func(t *testing.T) {
		doc, err := c.ForwardCallStatus("no-answer", "sales")
		require.NoError(t, err)

		require.Len(t, doc.Instructions, 1)
		assert.Equal(t, ivr.Redirect{URL: "/ivr/action/voicemail_main"}, doc.Instructions[0])
	})

	t.Run("busy routes to the configured action", func(t *testing.T) {
		doc, err := c.ForwardCallStatus("busy", "sales")
		require.NoError(t, err)
		assert.Equal(t, ivr.Redirect{URL: "/ivr/action/voicemail_main"}, doc.Last())
	})

	t.Run("completed dial hangs up", func(t *testing.T) {
		doc, err := c.ForwardCallStatus("completed", "sales")
		require.NoError(t, err)
		assert.Equal(t, ivr.Hangup{}, doc.Last())
	})

	t.Run("missing correlation tag hangs up", func(t *testing.T) {
		doc, err := c.ForwardCallStatus("busy", "")
		require.NoError(t, err)

		require.Len(t, doc.Instructions, 1)
		assert.Equal(t, ivr.Hangup{}, doc.Instructions[0])
	})

	t.Run("unknown initiating section hangs up", func(t *testing.T) {
		doc, err := c.ForwardCallStatus("busy", "ghost")
		require.NoError(t, err)
		assert.Equal(t, ivr.Hangup{}, doc.Last())
	})
}

func TestController_VoicemailHangup(t *testing.T) {
	c := newController(testSource(), nil)

	t.Run("plays the hangup sample", func(t *testing.T) {
		doc, err := c.VoicemailHangup("voicemail_main")
		require.NoError(t, err)

		require.Len(t, doc.Instructions, 2)
		assert.Equal(t, ivr.Play{URL: "https://cdn.example.com/thanks.mp3"}, doc.Instructions[0])
		assert.Equal(t, ivr.Hangup{}, doc.Instructions[1])
	})

	t.Run("missing correlation tag hangs up", func(t *testing.T) {
		doc, err := c.VoicemailHangup("")
		require.NoError(t, err)

		require.Len(t, doc.Instructions, 1)
		assert.Equal(t, ivr.Hangup{}, doc.Instructions[0])
	})
}

func TestController_VoicemailAlertSMS(t *testing.T) {
	ctx := context.Background()

	t.Run("completed recording dispatches the alert", func(t *testing.T) {
		notifier := &fakeNotifier{}
		c := newController(testSource(), notifier)

		err := c.VoicemailAlertSMS(ctx, "https://api.example.com/rec/123", "completed", "voicemail_main")
		require.NoError(t, err)

		require.Len(t, notifier.sent, 1)
		assert.Equal(t, "+15550111", notifier.sent[0].from)
		assert.Equal(t, "+15550122", notifier.sent[0].to)
		assert.Equal(t, "New voicemail: https://api.example.com/rec/123", notifier.sent[0].body)
	})

	t.Run("non-completed status is a no-op", func(t *testing.T) {
		notifier := &fakeNotifier{}
		c := newController(testSource(), notifier)

		require.NoError(t, c.VoicemailAlertSMS(ctx, "https://api.example.com/rec/123", "in-progress", "voicemail_main"))
		assert.Empty(t, notifier.sent)
	})

	t.Run("missing recording URL is a no-op", func(t *testing.T) {
		notifier := &fakeNotifier{}
		c := newController(testSource(), notifier)

		require.NoError(t, c.VoicemailAlertSMS(ctx, "", "completed", "voicemail_main"))
		assert.Empty(t, notifier.sent)
	})

	t.Run("missing correlation tag is a no-op", func(t *testing.T) {
		notifier := &fakeNotifier{}
		c := newController(testSource(), notifier)

		require.NoError(t, c.VoicemailAlertSMS(ctx, "https://api.example.com/rec/123", "completed", ""))
		assert.Empty(t, notifier.sent)
	})

	t.Run("unknown initiating section surfaces the error", func(t *testing.T) {
		c := newController(testSource(), &fakeNotifier{})

		err := c.VoicemailAlertSMS(ctx, "https://api.example.com/rec/123", "completed", "ghost")
		var notFound *ivr.SectionNotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}
