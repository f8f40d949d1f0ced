package flow

import (
	"fmt"
	"net/url"
)

// Entrypoint paths emitted inside documents. They are rooted; the transport
// layer absolutizes them against the request host when it can.
const (
	PathWelcome = "/ivr"
	PathMenu    = "/ivr/menu"
	PathHangup  = "/ivr/hangup"

	PathForwardStatusCallback   = "/ivr/callback/forward/call_status"
	PathVoicemailHangupCallback = "/ivr/callback/voicemail/hangup"
	PathVoicemailAlertCallback  = "/ivr/callback/voicemail/alert_sms"
)

// Query parameters round-tripped through the telephony platform.
const (
	// QueryLoopCount carries the menu replay counter between requests.
	QueryLoopCount = "loop_count"

	// QueryInitiatedBySection correlates an asynchronous callback with the
	// action section whose document registered it.
	QueryInitiatedBySection = "initiated_by_section"
)

// ActionPath returns the document URL of a named action.
func ActionPath(name string) string {
	return "/ivr/action/" + url.PathEscape(name)
}

// MenuOptionPath returns the document URL of a selected menu option.
func MenuOptionPath(option string) string {
	return PathMenu + "/" + url.PathEscape(option)
}

// menuLoopPath returns the menu URL carrying the loop counter.
func menuLoopPath(loopCount int) string {
	return fmt.Sprintf("%s?%s=%d", PathMenu, QueryLoopCount, loopCount)
}

// callbackPath tags a callback URL with the initiating section name.
func callbackPath(path, initiatedBy string) string {
	return fmt.Sprintf("%s?%s=%s", path, QueryInitiatedBySection, url.QueryEscape(initiatedBy))
}
