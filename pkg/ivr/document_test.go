package ivr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dialplan/dialplan/pkg/ivr"
)

func TestDocument_Chaining(t *testing.T) {
	doc := ivr.New().
		Say("hello").
		Play("https://cdn.example.com/menu.mp3").
		Pause(2).
		Redirect("/ivr/menu").
		Hangup()

	assert.Equal(t, []ivr.Instruction{
		ivr.Say{Text: "hello"},
		ivr.Play{URL: "https://cdn.example.com/menu.mp3"},
		ivr.Pause{Seconds: 2},
		ivr.Redirect{URL: "/ivr/menu"},
		ivr.Hangup{},
	}, doc.Instructions)
}

func TestDocument_Last(t *testing.T) {
	assert.Nil(t, ivr.New().Last())
	assert.Equal(t, ivr.Hangup{}, ivr.New().Say("bye").Hangup().Last())
}

func TestErrors_Messages(t *testing.T) {
	assert.Equal(t, `section "ivr_welcome" not found`,
		(&ivr.SectionNotFoundError{Name: "ivr_welcome"}).Error())

	assert.Equal(t, `section "ivr_menu": invalid field "surprise"`,
		(&ivr.InvalidFieldError{Section: "ivr_menu", Field: "surprise"}).Error())

	assert.Equal(t, `section "ivr_menu": invalid field "pause": must be a positive integer`,
		(&ivr.InvalidFieldError{Section: "ivr_menu", Field: "pause", Reason: "must be a positive integer"}).Error())

	assert.Equal(t, `section "ivr_menu": missing mandatory field "play_sample"`,
		(&ivr.MissingMandatoryFieldError{Section: "ivr_menu", Field: "play_sample"}).Error())
}
