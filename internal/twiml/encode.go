// Package twiml serializes voice-response documents into the telephony
// platform's wire format. The interpreter only decides which instructions to
// emit; everything about their XML shape is delegated to the twilio-go twiml
// library here.
package twiml

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/twilio/twilio-go/twiml"

	"github.com/dialplan/dialplan/pkg/ivr"
)

// Encode renders a document as a TwiML voice response. A non-empty base URL
// absolutizes rooted instruction paths ("/ivr/..."); with an empty base they
// are emitted as-is and the platform resolves them against the webhook URL.
func Encode(doc *ivr.Document, base string) (string, error) {
	return twiml.Voice(elements(doc.Instructions, base))
}

func elements(instructions []ivr.Instruction, base string) []twiml.Element {
	out := make([]twiml.Element, 0, len(instructions))

	for _, in := range instructions {
		switch v := in.(type) {
		case ivr.Say:
			out = append(out, &twiml.VoiceSay{Message: v.Text})

		case ivr.Play:
			out = append(out, &twiml.VoicePlay{Url: v.URL})

		case ivr.Pause:
			out = append(out, &twiml.VoicePause{Length: strconv.Itoa(v.Seconds)})

		case ivr.Gather:
			out = append(out, &twiml.VoiceGather{
				NumDigits:     strconv.Itoa(v.NumDigits),
				Action:        resolve(base, v.Action),
				InnerElements: elements(v.Inner, base),
			})

		case ivr.Dial:
			out = append(out, &twiml.VoiceDial{
				Number: v.Number,
				Action: resolve(base, v.Action),
				Method: v.Method,
			})

		case ivr.Record:
			out = append(out, &twiml.VoiceRecord{
				Action:                        resolve(base, v.Action),
				Timeout:                       strconv.Itoa(v.TimeoutSeconds),
				MaxLength:                     strconv.Itoa(v.MaxLengthSeconds),
				RecordingStatusCallback:       resolve(base, v.StatusCallback),
				RecordingStatusCallbackMethod: v.StatusCallbackMethod,
			})

		case ivr.Redirect:
			out = append(out, &twiml.VoiceRedirect{Url: resolve(base, v.URL)})

		case ivr.Hangup:
			out = append(out, &twiml.VoiceHangup{})

		default:
			// The instruction set is closed; an unknown variant is a
			// programming error worth surfacing loudly in the output.
			out = append(out, &twiml.VoiceSay{Message: fmt.Sprintf("unsupported instruction %T", v)})
		}
	}

	return out
}

func resolve(base, path string) string {
	if base == "" || !strings.HasPrefix(path, "/") {
		return path
	}
	return strings.TrimRight(base, "/") + path
}
