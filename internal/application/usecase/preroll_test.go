package usecase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dtabridge/internal/application/port"
)

func TestPrerollUseCase_Execute(t *testing.T) {
	seen := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Clone()
		w.Header().Set("Content-Range", "bytes 0-1/5000")
		w.Header().Add("X-Multi", "b")
		w.Header().Add("X-Multi", "a")
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write([]byte("PK"))
	}))
	t.Cleanup(srv.Close)

	uc := NewPrerollUseCase(srv.Client(), time.Second, "dtabridge/1.0")
	out, err := uc.Execute(context.Background(), PrerollInput{
		URL:      srv.URL + "/file.zip",
		Referrer: "https://example.com/",
		Headers:  []port.Header{{Name: "Cookie", Value: "s=1"}},
	})
	require.NoError(t, err)

	got := <-seen
	assert.Equal(t, "bytes=0-1", got.Get("Range"))
	assert.Equal(t, "https://example.com/", got.Get("Referer"))
	assert.Equal(t, "s=1", got.Get("Cookie"))
	assert.Equal(t, "dtabridge/1.0", got.Get("User-Agent"))

	assert.Equal(t, http.StatusPartialContent, out.Status)
	assert.Equal(t, srv.URL+"/file.zip", out.FinalURL)
	assert.Contains(t, out.Headers, [2]string{"Content-Range", "bytes 0-1/5000"})

	var multi []string
	for i, pair := range out.Headers {
		if i > 0 {
			assert.LessOrEqual(t, out.Headers[i-1][0], pair[0], "headers sorted by name")
		}
		if pair[0] == "X-Multi" {
			multi = append(multi, pair[1])
		}
	}
	assert.Equal(t, []string{"b", "a"}, multi)
}

func TestPrerollUseCase_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/file.zip", http.StatusFound)
	})
	mux.HandleFunc("/file.zip", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPartialContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	out, err := NewPrerollUseCase(srv.Client(), time.Second, "").Execute(context.Background(), PrerollInput{URL: srv.URL + "/start"})
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/file.zip", out.FinalURL)
	assert.Equal(t, http.StatusPartialContent, out.Status)
}

func TestPrerollUseCase_CustomRange(t *testing.T) {
	seen := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get("Range")
	}))
	t.Cleanup(srv.Close)

	uc := NewPrerollUseCase(srv.Client(), 0, "")
	out, err := uc.Execute(context.Background(), PrerollInput{URL: srv.URL, Range: "bytes=10-20"})
	require.NoError(t, err)
	assert.Equal(t, "bytes=10-20", <-seen)
	assert.Equal(t, http.StatusOK, out.Status)
}

func TestPrerollUseCase_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)
	uc := NewPrerollUseCase(srv.Client(), time.Second, "")

	_, err := uc.Execute(context.Background(), PrerollInput{})
	assert.ErrorIs(t, err, ErrMissingURL)

	_, err = uc.Execute(context.Background(), PrerollInput{URL: srv.URL})
	require.Error(t, err)
	assert.Equal(t, "unexpected status 403", err.Error())
}

func TestPrerollUseCase_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	uc := NewPrerollUseCase(srv.Client(), 50*time.Millisecond, "")
	_, err := uc.Execute(context.Background(), PrerollInput{URL: srv.URL})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
