package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/dialplan/dialplan/pkg/ivr"
)

// Section names for process-level settings.
const (
	sectionIVR      = "ivr"
	sectionTwilio   = "twilio"
	sectionServer   = "server"
	sectionKeepWarm = "keepwarm"
)

// DefaultListen is the server address used when [server] listen is not set.
const DefaultListen = ":8080"

// IVRSettings controls the interpreter itself.
type IVRSettings struct {
	Timezone string `mapstructure:"timezone"`
}

// TwilioSettings holds the REST credentials used for voicemail SMS alerts.
type TwilioSettings struct {
	AccountSID string `mapstructure:"account_sid"`
	AuthToken  string `mapstructure:"auth_token"`
}

// ServerSettings configures the HTTP listener.
type ServerSettings struct {
	Listen string `mapstructure:"listen"`
}

// KeepWarmSettings configures the optional scheduled self-ping.
// A zero interval disables it.
type KeepWarmSettings struct {
	PingIntervalMinutes int    `mapstructure:"ping_interval_minutes"`
	PingEndpoint        string `mapstructure:"ping_endpoint"`
}

// Settings is the decoded, validated process configuration.
type Settings struct {
	IVR      IVRSettings
	Twilio   TwilioSettings
	Server   ServerSettings
	KeepWarm KeepWarmSettings

	// Location is the IVR timezone, resolved once at load. Every hours
	// evaluation uses it.
	Location *time.Location
}

// LoadSettings decodes and validates the process-level sections of a store.
func LoadSettings(store *Store) (*Settings, error) {
	s := &Settings{
		Server: ServerSettings{Listen: DefaultListen},
	}

	if err := decodeSection(store, sectionIVR, &s.IVR); err != nil {
		return nil, err
	}
	if err := decodeSection(store, sectionTwilio, &s.Twilio); err != nil {
		return nil, err
	}
	if err := decodeSection(store, sectionServer, &s.Server); err != nil {
		return nil, err
	}
	if err := decodeSection(store, sectionKeepWarm, &s.KeepWarm); err != nil {
		return nil, err
	}

	if s.IVR.Timezone == "" {
		return nil, &ivr.MissingMandatoryFieldError{Section: sectionIVR, Field: "timezone"}
	}

	loc, err := time.LoadLocation(s.IVR.Timezone)
	if err != nil {
		return nil, &ivr.InvalidFieldError{
			Section: sectionIVR,
			Field:   "timezone",
			Reason:  err.Error(),
		}
	}
	s.Location = loc

	if s.KeepWarm.PingIntervalMinutes != 0 {
		if s.KeepWarm.PingIntervalMinutes < 1 || s.KeepWarm.PingIntervalMinutes > 60 {
			return nil, &ivr.InvalidFieldError{
				Section: sectionKeepWarm,
				Field:   "ping_interval_minutes",
				Reason:  "must be between 1 and 60",
			}
		}
		if s.KeepWarm.PingEndpoint == "" {
			return nil, &ivr.MissingMandatoryFieldError{Section: sectionKeepWarm, Field: "ping_endpoint"}
		}
	}

	// SMS alerts are only dispatched for voicemail actions, so the REST
	// credentials are mandatory exactly when one is configured.
	if hasVoicemailAction(store) {
		if s.Twilio.AccountSID == "" {
			return nil, &ivr.MissingMandatoryFieldError{Section: sectionTwilio, Field: "account_sid"}
		}
		if s.Twilio.AuthToken == "" {
			return nil, &ivr.MissingMandatoryFieldError{Section: sectionTwilio, Field: "auth_token"}
		}
	}

	return s, nil
}

func decodeSection(store *Store, name string, target any) error {
	fields, err := store.Section(name)
	if err != nil {
		// Process sections are all optional at this layer; validation of
		// what they must contain happens after decoding.
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("build decoder for [%s]: %w", name, err)
	}

	if err := dec.Decode(map[string]string(fields)); err != nil {
		return &ivr.InvalidFieldError{Section: name, Field: "*", Reason: err.Error()}
	}
	return nil
}

func hasVoicemailAction(store *Store) bool {
	for _, name := range store.SectionNames() {
		if !strings.HasPrefix(name, "action_") {
			continue
		}
		if fields, err := store.Section(name); err == nil && fields["type"] == "voicemail" {
			return true
		}
	}
	return false
}
