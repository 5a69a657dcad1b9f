package ports

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// DocumentSource defines where the rendered webmail page comes from
type DocumentSource interface {
	// Location returns the address of the page, reported as the email's source URL
	Location() string

	// Load returns a freshly parsed copy of the page
	Load(ctx context.Context) (*goquery.Document, error)
}
