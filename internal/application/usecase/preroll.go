package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/bnema/dtabridge/internal/application/port"
	"github.com/bnema/dtabridge/internal/domain/download"
	"github.com/bnema/dtabridge/internal/logging"
)

// ErrMissingURL is returned when a request names no URL.
var ErrMissingURL = errors.New("missing url")

const defaultPrerollTimeout = 10 * time.Second

// PrerollInput describes the header probe.
type PrerollInput struct {
	URL      string
	Referrer string
	// Range defaults to download.DefaultProbeRange.
	Range   string
	Headers []port.Header
}

// PrerollOutput is what the extension needs to name and size a download.
type PrerollOutput struct {
	// Headers holds one [name, value] pair per header value, sorted by name.
	Headers  [][2]string
	FinalURL string
	Status   int
}

// PrerollUseCase fetches response headers without downloading the body.
type PrerollUseCase struct {
	client    port.HTTPClient
	timeout   time.Duration
	userAgent string
}

// NewPrerollUseCase creates a PrerollUseCase. A zero timeout uses 10 seconds.
func NewPrerollUseCase(client port.HTTPClient, timeout time.Duration, userAgent string) *PrerollUseCase {
	if timeout <= 0 {
		timeout = defaultPrerollTimeout
	}
	return &PrerollUseCase{client: client, timeout: timeout, userAgent: userAgent}
}

// Execute issues the probe and returns the response metadata.
func (u *PrerollUseCase) Execute(ctx context.Context, input PrerollInput) (*PrerollOutput, error) {
	if input.URL == "" {
		return nil, ErrMissingURL
	}
	log := logging.FromContext(ctx)

	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	rangeHeader := input.Range
	if rangeHeader == "" {
		rangeHeader = download.DefaultProbeRange
	}
	req.Header.Set("Range", rangeHeader)
	port.ApplyHeaders(req, input.Headers, input.Referrer, u.userAgent)

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("preroll %s: %w", input.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	finalURL := input.URL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	log.Debug().
		Str("url", input.URL).
		Str("final_url", finalURL).
		Int("status", resp.StatusCode).
		Msg("preroll complete")

	return &PrerollOutput{
		Headers:  headerPairs(resp.Header),
		FinalURL: finalURL,
		Status:   resp.StatusCode,
	}, nil
}

func headerPairs(h http.Header) [][2]string {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([][2]string, 0, len(names))
	for _, name := range names {
		for _, value := range h[name] {
			pairs = append(pairs, [2]string{name, value})
		}
	}
	return pairs
}
