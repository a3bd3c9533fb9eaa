package port

import (
	"net/http"
	"strings"
)

// HTTPClient sends requests. The request context carries deadlines and cancellation.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Header is one request header. Repeated names are all sent.
type Header struct {
	Name  string
	Value string
}

// ApplyHeaders adds caller headers to req in order, then Referer and a
// default User-Agent when the caller did not set one.
func ApplyHeaders(req *http.Request, headers []Header, referrer, userAgent string) {
	for _, h := range headers {
		if strings.EqualFold(h.Name, "Host") {
			req.Host = h.Value
			continue
		}
		req.Header.Add(h.Name, h.Value)
	}
	if referrer != "" {
		req.Header.Set("Referer", referrer)
	}
	if userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}
}
