// Package httpclient builds the HTTP client used for probes and transfers.
package httpclient

import (
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/bnema/dtabridge/internal/application/port"
	"github.com/bnema/dtabridge/internal/infrastructure/config"
)

const (
	dialTimeout         = 30 * time.Second
	keepAlive           = 30 * time.Second
	tlsHandshakeTimeout = 10 * time.Second
	idleConnTimeout     = 90 * time.Second
	maxIdleConnsPerHost = 8
)

// New returns a client without an overall timeout: transfers can run for
// hours, so only connection setup and response headers are bounded. Body
// stalls are handled by the transfer loop.
func New(cfg config.DownloadsConfig) *http.Client {
	dialer := &net.Dialer{
		Timeout:   dialTimeout,
		KeepAlive: keepAlive,
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		TLSHandshakeTimeout:   tlsHandshakeTimeout,
		ResponseHeaderTimeout: cfg.ResponseHeaderTimeout(),
		IdleConnTimeout:       idleConnTimeout,
		MaxIdleConnsPerHost:   maxIdleConnsPerHost,
		ExpectContinueTimeout: time.Second,
		// Byte offsets must count the bytes on the wire.
		DisableCompression: true,
	}
	return &http.Client{
		Transport: otelhttp.NewTransport(transport),
	}
}

var _ port.HTTPClient = (*http.Client)(nil)
