package document

import (
	"context"
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// FileSource reads a saved page snapshot from disk on every load
type FileSource struct {
	path     string
	location string
	logger   *zap.Logger
}

// NewFileSource creates a source for the snapshot at path. location is the
// address the page was saved from.
func NewFileSource(path string, location string, logger *zap.Logger) *FileSource {
	return &FileSource{
		path:     path,
		location: location,
		logger:   logger,
	}
}

// Location returns the address the snapshot was saved from
func (s *FileSource) Location() string {
	return s.location
}

// Load parses the snapshot
func (s *FileSource) Load(ctx context.Context) (*goquery.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page snapshot: %w", err)
	}
	defer file.Close()

	doc, err := goquery.NewDocumentFromReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page snapshot: %w", err)
	}

	s.logger.Debug("Loaded page snapshot", zap.String("path", s.path))
	return doc, nil
}
