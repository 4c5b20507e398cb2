package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/shri-jewellery/storefront/internal/config"
)

// ErrNoImage marks an expected miss: no credential, a non-200 reply, a timeout
// or a result set without a usable URL.
var ErrNoImage = errors.New("no image available")

// ImageSearcher resolves a free-text query to a single image URL.
type ImageSearcher interface {
	SearchImage(ctx context.Context, query string) (string, error)
}

// NewImageSearcher returns an Unsplash searcher when an access key is configured.
func NewImageSearcher(cfg config.ImagesConfig) ImageSearcher {
	if cfg.AccessKey == "" {
		return disabledImageSearcher{}
	}
	return &unsplashSearcher{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type disabledImageSearcher struct{}

func (disabledImageSearcher) SearchImage(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: %w", ErrNoImage, ErrDisabled)
}

type unsplashSearcher struct {
	cfg    config.ImagesConfig
	client *http.Client
}

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Small   string `json:"small"`
			Regular string `json:"regular"`
			Thumb   string `json:"thumb"`
		} `json:"urls"`
	} `json:"results"`
}

func (s *unsplashSearcher) SearchImage(ctx context.Context, query string) (string, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	params := url.Values{}
	params.Set("query", query+" jewelry")
	params.Set("per_page", "3")
	params.Set("orientation", "squarish")
	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/search/photos?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Client-ID "+s.cfg.AccessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := s.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: unsplash timeout: %w", ErrNoImage, err)
		}
		return "", fmt.Errorf("unsplash: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %w", ErrNoImage, statusError("unsplash", resp))
	}

	var payload unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if isTimeout(err) {
			return "", fmt.Errorf("%w: unsplash timeout: %w", ErrNoImage, err)
		}
		return "", fmt.Errorf("unsplash decode: %w", err)
	}

	for _, result := range payload.Results {
		for _, candidate := range []string{result.URLs.Small, result.URLs.Regular, result.URLs.Thumb} {
			if candidate != "" {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w: unsplash returned %d results without urls", ErrNoImage, len(payload.Results))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
