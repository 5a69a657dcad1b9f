package core

// UnknownSender is substituted when the open message shows no sender element
const UnknownSender = "Unknown Sender"

// ExtractedEmail represents the fields pulled out of an open webmail message.
// It is also the classification request body, serialized verbatim.
type ExtractedEmail struct {
	Subject   string `json:"subject"`
	Sender    string `json:"sender"`
	Body      string `json:"body"`
	SourceURL string `json:"url"`
}

// FailureReason explains why extraction did not produce an email
type FailureReason string

const (
	// NotInMessageView means no message is open (list view or another screen)
	NotInMessageView FailureReason = "not_in_email"
	// NoContentFound means a message is open but its body could not be located
	NoContentFound FailureReason = "no_content_found"
)

// ExtractionResult is either a successful extraction or a failure reason.
// Exactly one of Email and Failure is set.
type ExtractionResult struct {
	Email   *ExtractedEmail
	Failure FailureReason
}

// Succeeded reports whether the result carries an email
func (r ExtractionResult) Succeeded() bool {
	return r.Email != nil
}

// ExtractionSucceeded builds a successful result
func ExtractionSucceeded(email ExtractedEmail) ExtractionResult {
	return ExtractionResult{Email: &email}
}

// ExtractionFailed builds a failed result
func ExtractionFailed(reason FailureReason) ExtractionResult {
	return ExtractionResult{Failure: reason}
}

// RiskLevel is the service-assigned risk category
type RiskLevel string

const (
	RiskLow     RiskLevel = "LOW"
	RiskMedium  RiskLevel = "MEDIUM"
	RiskHigh    RiskLevel = "HIGH"
	RiskUnknown RiskLevel = "UNKNOWN"
)

// ParseRiskLevel maps a wire value to a RiskLevel, falling back to RiskUnknown
func ParseRiskLevel(s string) RiskLevel {
	switch RiskLevel(s) {
	case RiskLow, RiskMedium, RiskHigh:
		return RiskLevel(s)
	default:
		return RiskUnknown
	}
}

// Verdict labels the classification service is known to emit
const (
	VerdictPhishing   = "PHISHING"
	VerdictSuspicious = "SUSPICIOUS"
	VerdictSafe       = "SAFE"
	VerdictUnknown    = "UNKNOWN"
)

// NormalizedVerdict is the canonical in-memory form of a classification response
type NormalizedVerdict struct {
	Score     int
	Verdict   string
	RiskLevel RiskLevel
	Triggers  []string
}
