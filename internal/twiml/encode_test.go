package twiml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialplan/dialplan/internal/twiml"
	"github.com/dialplan/dialplan/pkg/ivr"
)

func TestEncode_Verbs(t *testing.T) {
	doc := ivr.New().
		Say("Invalid menu option selected").
		Play("https://cdn.example.com/menu.mp3").
		Pause(2).
		Redirect("/ivr/menu").
		Hangup()

	out, err := twiml.Encode(doc, "")
	require.NoError(t, err)

	assert.Contains(t, out, "<Say>Invalid menu option selected</Say>")
	assert.Contains(t, out, "<Play>https://cdn.example.com/menu.mp3</Play>")
	assert.Contains(t, out, `<Pause length="2"`)
	assert.Contains(t, out, "<Redirect>/ivr/menu</Redirect>")
	assert.Contains(t, out, "<Hangup")
}

func TestEncode_Gather(t *testing.T) {
	doc := ivr.New().Append(ivr.Gather{
		NumDigits: 1,
		Action:    "/ivr/menu",
		Inner: []ivr.Instruction{
			ivr.Play{URL: "https://cdn.example.com/menu.mp3"},
			ivr.Pause{Seconds: 3},
		},
	})

	out, err := twiml.Encode(doc, "")
	require.NoError(t, err)

	assert.Contains(t, out, `numDigits="1"`)
	assert.Contains(t, out, "<Play>https://cdn.example.com/menu.mp3</Play>")
	assert.Contains(t, out, `<Pause length="3"`)
}

func TestEncode_Dial(t *testing.T) {
	doc := ivr.New().Append(ivr.Dial{
		Number: "+15550100",
		Action: "/ivr/callback/forward/call_status?initiated_by_section=sales",
		Method: "POST",
	})

	out, err := twiml.Encode(doc, "https://ivr.example.com")
	require.NoError(t, err)

	assert.Contains(t, out, "+15550100")
	assert.Contains(t, out, `action="https://ivr.example.com/ivr/callback/forward/call_status?initiated_by_section=sales"`)
	assert.Contains(t, out, `method="POST"`)
}

func TestEncode_Record(t *testing.T) {
	doc := ivr.New().Append(ivr.Record{
		Action:               "/ivr/callback/voicemail/hangup?initiated_by_section=voicemail_main",
		TimeoutSeconds:       5,
		MaxLengthSeconds:     120,
		StatusCallback:       "/ivr/callback/voicemail/alert_sms?initiated_by_section=voicemail_main",
		StatusCallbackMethod: "POST",
	})

	out, err := twiml.Encode(doc, "https://ivr.example.com")
	require.NoError(t, err)

	assert.Contains(t, out, `timeout="5"`)
	assert.Contains(t, out, `maxLength="120"`)
	assert.Contains(t, out, `recordingStatusCallback="https://ivr.example.com/ivr/callback/voicemail/alert_sms?initiated_by_section=voicemail_main"`)
}

func TestEncode_BaseURLOnlyPrefixesRootedPaths(t *testing.T) {
	doc := ivr.New().
		Redirect("/ivr/menu").
		Redirect("https://elsewhere.example.com/x")

	out, err := twiml.Encode(doc, "https://ivr.example.com/")
	require.NoError(t, err)

	assert.Contains(t, out, "<Redirect>https://ivr.example.com/ivr/menu</Redirect>")
	assert.Contains(t, out, "<Redirect>https://elsewhere.example.com/x</Redirect>")
}
