package presenter

import (
	"fmt"

	"github.com/mikey/phishawk/internal/core"
)

// Tier is the display risk category
type Tier string

const (
	TierNone   Tier = ""
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// ViewMode selects which of the two panel views is shown
type ViewMode int

const (
	EntryView ViewMode = iota
	ResultView
)

// View is everything a panel needs to draw one frame
type View struct {
	Mode ViewMode
	// Status is the entry view status line, empty when there is nothing to say
	Status  string
	Loading bool
	IsError bool

	Tier        Tier
	Banner      string
	ScoreLine   string
	SubjectLine string
	Triggers    []string
}

// TierFor maps a verdict to a display tier. The first matching rule wins.
func TierFor(v core.NormalizedVerdict) Tier {
	switch {
	case v.RiskLevel == core.RiskHigh || v.Verdict == core.VerdictPhishing:
		return TierHigh
	case v.RiskLevel == core.RiskMedium || v.Verdict == core.VerdictSuspicious:
		return TierMedium
	default:
		return TierLow
	}
}

// Render builds the render model for a state
func Render(s State) View {
	switch s.Mode {
	case Analyzing:
		return View{Mode: EntryView, Status: MsgAnalyzing, Loading: true}
	case ShowingError:
		return View{Mode: EntryView, Status: s.Message, IsError: true}
	case ShowingResult:
		if s.Verdict == nil {
			return View{Mode: EntryView}
		}
		return resultView(*s.Verdict, s.Subject)
	default:
		return View{Mode: EntryView}
	}
}

func resultView(v core.NormalizedVerdict, subject string) View {
	if subject == "" {
		subject = UnknownSubject
	}

	triggers := []string{NoThreatsDetected}
	if len(v.Triggers) > 0 {
		triggers = append([]string(nil), v.Triggers...)
	}

	banner := v.Verdict
	if banner == "" {
		banner = core.VerdictUnknown
	}

	return View{
		Mode:        ResultView,
		Tier:        TierFor(v),
		Banner:      banner,
		ScoreLine:   fmt.Sprintf("Risk Score: %d/100", v.Score),
		SubjectLine: subject,
		Triggers:    triggers,
	}
}
