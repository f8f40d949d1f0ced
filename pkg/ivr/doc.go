// Package ivr holds the shared vocabulary of the call-flow interpreter:
// the voice-response document model and the error types surfaced while
// resolving configuration into executable sections.
//
// A Document is an ordered sequence of telephony instructions. The package
// deliberately knows nothing about how a document is serialized for a
// particular telephony platform; that lives in the transport adapters.
package ivr
