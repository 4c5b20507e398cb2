// Package integration holds adapters for the third-party services the storefront
// calls out to. Every capability is a single-method interface with a live adapter
// and a disabled adapter; the constructor picks one from configuration.
package integration

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrDisabled is returned by adapters whose channel is not configured.
var ErrDisabled = errors.New("integration disabled")

// maxErrorBody caps how much of an error response is kept for logging.
const maxErrorBody = 512

func statusError(service string, resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return fmt.Errorf("%s: unexpected status %d: %s", service, resp.StatusCode, strings.TrimSpace(string(snippet)))
}
