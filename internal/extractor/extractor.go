// Package extractor pulls the open message's fields out of a rendered webmail page.
// The page is third-party markup; the markers it relies on may change at any time,
// so every lookup fails closed instead of guessing.
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mikey/phishawk/internal/core"
	"github.com/mikey/phishawk/internal/utils"
	"go.uber.org/zap"
)

// Selectors are the CSS markers used to locate message fields
type Selectors struct {
	Subject       string
	Sender        string
	SenderAddress string
	Body          string
}

// DefaultSelectors returns the markers of the Gmail open-message view
func DefaultSelectors() Selectors {
	return Selectors{
		Subject:       "h2.hP",
		Sender:        "span.gD",
		SenderAddress: "email",
		Body:          ".a3s.aiL",
	}
}

// Extractor reads an ExtractionResult out of a document
type Extractor struct {
	selectors     Selectors
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
}

// New creates a new Extractor
func New(selectors Selectors, textProcessor *utils.TextProcessor, logger *zap.Logger) *Extractor {
	return &Extractor{
		selectors:     selectors,
		textProcessor: textProcessor,
		logger:        logger,
	}
}

// Extract scans doc for the open message. location is the page address reported
// back as the email's source URL. The document is never modified.
func (e *Extractor) Extract(doc *goquery.Document, location string) core.ExtractionResult {
	subjectSel := doc.Find(e.selectors.Subject).First()
	if subjectSel.Length() == 0 {
		// No subject heading: list view or some other screen
		e.logger.Debug("Subject marker not found", zap.String("selector", e.selectors.Subject))
		return core.ExtractionFailed(core.NotInMessageView)
	}
	subject := e.visibleText(subjectSel)

	sender := e.sender(doc)

	bodySel := doc.Find(e.selectors.Body)
	if bodySel.Length() == 0 {
		e.logger.Debug("Body marker not found", zap.String("selector", e.selectors.Body))
		return core.ExtractionFailed(core.NoContentFound)
	}

	// The last body in a thread is the most recent message
	body := e.visibleText(bodySel.Last())
	if body == "" {
		e.logger.Debug("Last body element has no text", zap.Int("body_elements", bodySel.Length()))
		return core.ExtractionFailed(core.NoContentFound)
	}

	return core.ExtractionSucceeded(core.ExtractedEmail{
		Subject:   subject,
		Sender:    sender,
		Body:      body,
		SourceURL: location,
	})
}

// sender composes "Name <address>" from the sender marker
func (e *Extractor) sender(doc *goquery.Document) string {
	sel := doc.Find(e.selectors.Sender).First()
	if sel.Length() == 0 {
		return core.UnknownSender
	}

	name := e.visibleText(sel)
	address, ok := sel.Attr(e.selectors.SenderAddress)
	address = strings.TrimSpace(address)
	if !ok || address == "" {
		if name == "" {
			return core.UnknownSender
		}
		return name
	}
	if name == "" {
		return "<" + address + ">"
	}
	return name + " <" + address + ">"
}

func (e *Extractor) visibleText(sel *goquery.Selection) string {
	return e.textProcessor.NormalizeVisibleText(renderText(sel))
}
