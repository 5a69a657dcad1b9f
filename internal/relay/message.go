package relay

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mikey/phishawk/internal/core"
)

// ActionExtractEmail asks the host for the currently open email
const ActionExtractEmail = "extractEmail"

// Message is the request sent across the relay
type Message struct {
	Action string `json:"action"`
}

// ErrMalformedReply is returned when a reply is neither an email nor a known failure
var ErrMalformedReply = errors.New("malformed extraction reply")

// reply is the wire form of an ExtractionResult
type reply struct {
	Subject *string `json:"subject,omitempty"`
	Sender  *string `json:"sender,omitempty"`
	Body    *string `json:"body,omitempty"`
	URL     *string `json:"url,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// EncodeResult serializes an ExtractionResult as a host reply
func EncodeResult(result core.ExtractionResult) ([]byte, error) {
	if !result.Succeeded() {
		return json.Marshal(reply{Error: string(result.Failure)})
	}
	return json.Marshal(result.Email)
}

// DecodeResult parses a host reply back into an ExtractionResult
func DecodeResult(data []byte) (core.ExtractionResult, error) {
	var r reply
	if err := json.Unmarshal(data, &r); err != nil {
		return core.ExtractionResult{}, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	if r.Error != "" {
		switch reason := core.FailureReason(r.Error); reason {
		case core.NotInMessageView, core.NoContentFound:
			return core.ExtractionFailed(reason), nil
		default:
			return core.ExtractionResult{}, fmt.Errorf("%w: unknown error %q", ErrMalformedReply, r.Error)
		}
	}

	if r.Subject == nil || r.Body == nil {
		return core.ExtractionResult{}, fmt.Errorf("%w: missing subject or body", ErrMalformedReply)
	}

	return core.ExtractionSucceeded(core.ExtractedEmail{
		Subject:   *r.Subject,
		Sender:    deref(r.Sender),
		Body:      *r.Body,
		SourceURL: deref(r.URL),
	}), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
