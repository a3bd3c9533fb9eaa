package download

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResumeRange(t *testing.T) {
	assert.Equal(t, "bytes=8192-", ResumeRange(8192))
	assert.Equal(t, "bytes=0-", ResumeRange(0))
}

func TestParseContentRange(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   ContentRange
		ok     bool
	}{
		{name: "full", header: "bytes 0-1/10000", want: ContentRange{First: 0, Last: 1, Complete: 10000}, ok: true},
		{name: "unknown complete", header: "bytes 100-199/*", want: ContentRange{First: 100, Last: 199, Complete: -1}, ok: true},
		{name: "unsatisfied", header: "bytes */500", want: ContentRange{First: -1, Last: -1, Complete: 500}, ok: true},
		{name: "wrong unit", header: "items 0-1/2"},
		{name: "garbage", header: "bytes nope"},
		{name: "inverted", header: "bytes 9-1/10"},
		{name: "empty", header: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseContentRange(tt.header)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTotalLength(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		contentLength int64
		contentRange  string
		offset        int64
		want          int64
		ok            bool
	}{
		{name: "content-range wins", status: http.StatusPartialContent, contentLength: 1808, contentRange: "bytes 8192-9999/10000", offset: 8192, want: 10000, ok: true},
		{name: "206 without usable range", status: http.StatusPartialContent, contentLength: 1808, contentRange: "bytes 8192-9999/*", offset: 8192, want: 10000, ok: true},
		{name: "plain 200", status: http.StatusOK, contentLength: 10000, want: 10000, ok: true},
		{name: "200 unknown length", status: http.StatusOK, contentLength: -1},
		{name: "206 unknown length", status: http.StatusPartialContent, contentLength: -1, offset: 10},
		{name: "other status", status: http.StatusNoContent, contentLength: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TotalLength(tt.status, tt.contentLength, tt.contentRange, tt.offset)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRangeIgnored(t *testing.T) {
	assert.True(t, RangeIgnored(100, http.StatusOK))
	assert.False(t, RangeIgnored(0, http.StatusOK))
	assert.False(t, RangeIgnored(100, http.StatusPartialContent))
}

func TestRangeExhausted(t *testing.T) {
	known := int64(16384)
	other := int64(20000)

	assert.True(t, RangeExhausted(16384, "bytes */16384", nil))
	assert.False(t, RangeExhausted(16384, "bytes */20000", &known), "header wins over the earlier total")
	assert.True(t, RangeExhausted(16384, "", &known))
	assert.False(t, RangeExhausted(16384, "", &other))
	assert.False(t, RangeExhausted(16384, "", nil))
	assert.False(t, RangeExhausted(0, "bytes */0", nil))
}

func TestCheckResumeStart(t *testing.T) {
	assert.NoError(t, CheckResumeStart(8192, "bytes 8192-9999/10000"))
	assert.NoError(t, CheckResumeStart(8192, "bytes 8192-9999/*"))

	err := CheckResumeStart(8192, "bytes 0-9999/10000")
	assert.EqualError(t, err, "server resumed at byte 0, expected 8192")

	assert.Error(t, CheckResumeStart(8192, ""))
	assert.Error(t, CheckResumeStart(8192, "bytes */10000"))
}
