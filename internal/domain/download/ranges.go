package download

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// DefaultProbeRange asks for two bytes, enough to learn whether ranges work.
const DefaultProbeRange = "bytes=0-1"

// ResumeRange returns the Range header value that continues a transfer at offset.
func ResumeRange(offset int64) string {
	return fmt.Sprintf("bytes=%d-", offset)
}

// ContentRange is a parsed "bytes first-last/complete" header.
// Complete is -1 when the server sent "*".
type ContentRange struct {
	First    int64
	Last     int64
	Complete int64
}

// ParseContentRange parses a Content-Range response header.
func ParseContentRange(header string) (ContentRange, bool) {
	unit, spec, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(unit, "bytes") {
		return ContentRange{}, false
	}
	span, complete, ok := strings.Cut(strings.TrimSpace(spec), "/")
	if !ok {
		return ContentRange{}, false
	}

	cr := ContentRange{First: -1, Last: -1, Complete: -1}
	if complete != "*" {
		n, err := strconv.ParseInt(complete, 10, 64)
		if err != nil || n < 0 {
			return ContentRange{}, false
		}
		cr.Complete = n
	}
	if span == "*" {
		// Unsatisfied range: "bytes */1234".
		return cr, cr.Complete >= 0
	}

	first, last, ok := strings.Cut(span, "-")
	if !ok {
		return ContentRange{}, false
	}
	var err error
	if cr.First, err = strconv.ParseInt(first, 10, 64); err != nil {
		return ContentRange{}, false
	}
	if cr.Last, err = strconv.ParseInt(last, 10, 64); err != nil || cr.Last < cr.First {
		return ContentRange{}, false
	}
	return cr, true
}

// TotalLength derives the full resource size from a response, in order:
// the Content-Range complete length, offset+Content-Length on 206,
// Content-Length on 200. ok is false when none applies.
func TotalLength(status int, contentLength int64, contentRange string, offset int64) (int64, bool) {
	if contentRange != "" {
		if cr, ok := ParseContentRange(contentRange); ok && cr.Complete >= 0 {
			return cr.Complete, true
		}
	}
	switch {
	case status == http.StatusPartialContent && contentLength >= 0:
		return offset + contentLength, true
	case status == http.StatusOK && contentLength >= 0:
		return contentLength, true
	default:
		return 0, false
	}
}

// RangeIgnored reports whether a resumed request got the whole body back.
func RangeIgnored(offset int64, status int) bool {
	return offset > 0 && status == http.StatusOK
}

// RangeExhausted reports whether a 416 answer to a resume at offset means
// the earlier fetch already wrote the whole resource. The size comes from
// the "bytes */N" header, else from the total learned before the pause.
func RangeExhausted(offset int64, contentRange string, knownTotal *int64) bool {
	if offset <= 0 {
		return false
	}
	if cr, ok := ParseContentRange(contentRange); ok && cr.Complete >= 0 {
		return cr.Complete == offset
	}
	return knownTotal != nil && *knownTotal == offset
}

// CheckResumeStart verifies a 206 answer to a resume starts at offset.
// Appending any other span would corrupt the file.
func CheckResumeStart(offset int64, contentRange string) error {
	cr, ok := ParseContentRange(contentRange)
	if !ok || cr.First < 0 {
		return fmt.Errorf("partial response without usable Content-Range %q", contentRange)
	}
	if cr.First != offset {
		return fmt.Errorf("server resumed at byte %d, expected %d", cr.First, offset)
	}
	return nil
}
