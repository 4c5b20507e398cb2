package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/shri-jewellery/storefront/internal/integration"
)

const (
	placeholderBaseURL = "https://via.placeholder.com/500x500/1e2640/aab2c8?text="
	sourceBaseURL      = "https://source.unsplash.com/500x500/?jewelry,"
)

// ImageService resolves product images through the search provider with
// deterministic fallbacks. Lookup never fails.
type ImageService struct {
	searcher integration.ImageSearcher
	logger   *zap.Logger
}

// NewImageService creates the service. A nil searcher always falls back.
func NewImageService(searcher integration.ImageSearcher, logger *zap.Logger) *ImageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageService{searcher: searcher, logger: logger}
}

// Lookup returns an image URL for query.
func (s *ImageService) Lookup(ctx context.Context, query string) (imageURL string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("image lookup panic", zap.String("query", query), zap.Any("panic", r))
			imageURL = PlaceholderImageURL(query)
		}
	}()

	if s.searcher == nil {
		return SearchPageImageURL(query)
	}
	found, err := s.searcher.SearchImage(ctx, query)
	switch {
	case err == nil && found != "":
		return found
	case err == nil, errors.Is(err, integration.ErrNoImage):
		if !isDisabled(err) {
			s.logger.Debug("image search miss", zap.String("query", query), zap.Error(err))
		}
		return SearchPageImageURL(query)
	default:
		s.logger.Warn("image search failed", zap.String("query", query), zap.Error(err))
		return PlaceholderImageURL(query)
	}
}

// PlaceholderImageURL labels a flat placeholder with the first query word.
func PlaceholderImageURL(query string) string {
	label := "Item"
	if words := strings.Fields(query); len(words) > 0 {
		label = words[0]
	}
	return placeholderBaseURL + url.QueryEscape(label)
}

// SearchPageImageURL builds a keyword image URL from every query word.
func SearchPageImageURL(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		words[i] = url.QueryEscape(w)
	}
	return sourceBaseURL + strings.Join(words, ",")
}

func isDisabled(err error) bool {
	return errors.Is(err, integration.ErrDisabled)
}
