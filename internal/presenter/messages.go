package presenter

import (
	"errors"

	"github.com/mikey/phishawk/internal/core"
)

// User-facing messages
const (
	MsgAnalyzing      = "Analyzing... please wait."
	MsgOpenAnEmail    = "Please open an email\nYou are currently in the Inbox/List view."
	MsgNoContent      = "Error: Could not extract email content."
	MsgNoResponder    = "Error: Please refresh the page and try again. Make sure you are on a Gmail page."
	MsgEmptyResponse  = "Error: Could not extract email data."
	MsgBackendDown    = "Error connecting to backend. Is the analyzer running?"
	MsgUnexpected     = "Unexpected error occurred."
	NoThreatsDetected = "No specific threats detected."
	UnknownSubject    = "Unknown Subject"
)

// ErrorMessage maps a pipeline failure to the guidance shown to the user
func ErrorMessage(err error) string {
	var extractionErr *core.ExtractionError
	if errors.As(err, &extractionErr) {
		switch extractionErr.Reason {
		case core.NotInMessageView:
			return MsgOpenAnEmail
		case core.NoContentFound:
			return MsgNoContent
		}
	}

	var transportErr *core.TransportError
	if errors.As(err, &transportErr) {
		switch transportErr.Kind {
		case core.NoResponder:
			return MsgNoResponder
		case core.EmptyResponse:
			return MsgEmptyResponse
		}
	}

	var classifierErr *core.ClassifierError
	if errors.As(err, &classifierErr) {
		return MsgBackendDown
	}

	return MsgUnexpected
}
