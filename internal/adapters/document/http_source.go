package document

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// HTTPSource fetches the page over HTTP on every load
type HTTPSource struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewHTTPSource creates a source for the page at url
func NewHTTPSource(url string, client *http.Client, logger *zap.Logger) *HTTPSource {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPSource{
		url:    url,
		client: client,
		logger: logger,
	}
}

// Location returns the page URL
func (s *HTTPSource) Location() string {
	return s.url
}

// Load fetches and parses the page
func (s *HTTPSource) Load(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create page request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch page, status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	s.logger.Debug("Fetched page", zap.String("url", s.url))
	return doc, nil
}
