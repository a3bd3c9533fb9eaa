package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dtabridge/internal/application/port"
	"github.com/bnema/dtabridge/internal/application/port/mocks"
	"github.com/bnema/dtabridge/internal/application/transfer"
	"github.com/bnema/dtabridge/internal/application/usecase"
	"github.com/bnema/dtabridge/internal/infrastructure/filesystem"
	"github.com/bnema/dtabridge/internal/infrastructure/nativemsg"
)

type fakeTransfers struct {
	started []transfer.Params
	begun   int
	known   map[string]bool
	calls   []string
	err     error
}

func (f *fakeTransfers) StartHeld(_ context.Context, p transfer.Params) (string, func(), error) {
	if f.err != nil {
		return "", nil, f.err
	}
	f.started = append(f.started, p)
	return "t1", func() { f.begun++ }, nil
}

func (f *fakeTransfers) control(op string) func(string) error {
	return func(id string) error {
		if !f.known[id] {
			return transfer.ErrUnknownID
		}
		f.calls = append(f.calls, op+":"+id)
		return nil
	}
}

func (f *fakeTransfers) Pause(id string) error  { return f.control("pause")(id) }
func (f *fakeTransfers) Resume(id string) error { return f.control("resume")(id) }
func (f *fakeTransfers) Cancel(id string) error { return f.control("cancel")(id) }

func newRouter(t *testing.T, cfg Config) *nativemsg.MessageRouter {
	t.Helper()
	router := nativemsg.NewMessageRouter(context.Background(), nil)
	require.NoError(t, RegisterAll(context.Background(), router, cfg))
	return router
}

func dispatch(t *testing.T, router *nativemsg.MessageRouter, msg string) string {
	t.Helper()
	resp := router.Dispatch(context.Background(), json.RawMessage(msg))
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(data)
}

func TestDownloadHandlers_Start(t *testing.T) {
	fake := &fakeTransfers{}
	router := newRouter(t, Config{Transfers: fake})

	got := dispatch(t, router, `{"type":"download_start","url":"https://example.com/f.zip","method":"POST","body":"a=1",
		"referrer":"https://example.com/","headers":[{"name":"Cookie","value":"s=1"},{"name":"X","value":2}],
		"filename":"f.zip","path":"/dl/f.zip","offset":"5"}`)

	assert.JSONEq(t, `{"ok":true,"id":"t1"}`, got)
	assert.Zero(t, fake.begun, "fetch is held until the reply is written")
	require.Len(t, fake.started, 1)
	p := fake.started[0]
	assert.Equal(t, "https://example.com/f.zip", p.URL)
	assert.Equal(t, "POST", p.Method)
	require.NotNil(t, p.Body)
	assert.Equal(t, "a=1", *p.Body)
	assert.Equal(t, "https://example.com/", p.Referrer)
	assert.Equal(t, []port.Header{{Name: "Cookie", Value: "s=1"}, {Name: "X", Value: "2"}}, p.Headers)
	assert.Equal(t, "f.zip", p.Filename)
	assert.Equal(t, "/dl/f.zip", p.Path)
	assert.Equal(t, int64(5), p.Offset)
}

func TestDownloadHandlers_StartError(t *testing.T) {
	router := newRouter(t, Config{Transfers: &fakeTransfers{err: transfer.ErrMissingURL}})
	assert.JSONEq(t, `{"ok":false,"error":"missing url"}`, dispatch(t, router, `{"type":"download_start"}`))
}

func TestDownloadHandlers_Control(t *testing.T) {
	fake := &fakeTransfers{known: map[string]bool{"t1": true}}
	router := newRouter(t, Config{Transfers: fake})

	for _, msgType := range []string{"download_pause", "download_resume", "download_cancel"} {
		t.Run(msgType, func(t *testing.T) {
			assert.JSONEq(t, `{"ok":true,"id":"t1"}`, dispatch(t, router, `{"type":"`+msgType+`","id":"t1"}`))
			assert.JSONEq(t, `{"ok":false,"error":"unknown id"}`, dispatch(t, router, `{"type":"`+msgType+`","id":"zz"}`))
			assert.JSONEq(t, `{"ok":false,"error":"unknown id"}`, dispatch(t, router, `{"type":"`+msgType+`"}`))
		})
	}
	assert.Equal(t, []string{"pause:t1", "resume:t1", "cancel:t1"}, fake.calls)
}

func TestDownloadHandlers_Legacy(t *testing.T) {
	router := newRouter(t, Config{Transfers: &fakeTransfers{}})
	assert.JSONEq(t,
		`{"ok":false,"error":"use interactive download via connectNative"}`,
		dispatch(t, router, `{"type":"download","url":"https://example.com"}`))
}

func TestPrerollHandler(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.WriteHeader(http.StatusPartialContent)
	}))
	t.Cleanup(srv.Close)

	router := newRouter(t, Config{PrerollUC: usecase.NewPrerollUseCase(srv.Client(), time.Second, "")})
	got := dispatch(t, router, `{"type":"preroll","url":"`+srv.URL+`"}`)

	var resp struct {
		OK       bool        `json:"ok"`
		Headers  [][2]string `json:"headers"`
		FinalURL string      `json:"finalUrl"`
		Status   int         `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(got), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, http.StatusPartialContent, resp.Status)
	assert.Equal(t, srv.URL, resp.FinalURL)
	assert.Contains(t, resp.Headers, [2]string{"Content-Type", "application/zip"})

	got = dispatch(t, router, `{"type":"preroll"}`)
	assert.JSONEq(t, `{"ok":false,"error":"missing url"}`, got)
}

func fileConfig() Config {
	fs := filesystem.New()
	return Config{
		MoveUC:     usecase.NewMoveFileUseCase(fs),
		StatPathUC: usecase.NewStatPathUseCase(fs),
	}
}

func TestStatPathHandler(t *testing.T) {
	router := newRouter(t, fileConfig())
	dir := t.TempDir()
	quote := func(s string) string {
		b, _ := json.Marshal(s)
		return string(b)
	}

	t.Run("writable dir", func(t *testing.T) {
		got := dispatch(t, router, `{"type":"stat_path","path":`+quote(dir)+`}`)
		assert.JSONEq(t, `{"ok":true,"path":`+quote(dir)+`}`, got)
	})

	t.Run("no path", func(t *testing.T) {
		assert.JSONEq(t, `{"ok":false,"error":"no_path"}`, dispatch(t, router, `{"type":"stat_path"}`))
	})

	t.Run("auto create", func(t *testing.T) {
		newDir := filepath.Join(dir, "new")
		got := dispatch(t, router, `{"type":"stat_path","path":`+quote(newDir)+`,"auto_create":true}`)
		assert.JSONEq(t, `{"ok":true,"path":`+quote(newDir)+`,"created":true}`, got)
		assert.DirExists(t, newDir)
	})

	t.Run("not a directory", func(t *testing.T) {
		file := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		got := dispatch(t, router, `{"type":"stat_path","path":`+quote(file)+`}`)
		assert.JSONEq(t, `{"ok":false,"error":"not_directory"}`, got)
	})

	t.Run("insufficient space", func(t *testing.T) {
		got := dispatch(t, router, `{"type":"stat_path","path":`+quote(dir)+`,"required_bytes":1152921504606846976}`)
		var resp map[string]any
		require.NoError(t, json.Unmarshal([]byte(got), &resp))
		assert.Equal(t, false, resp["ok"])
		assert.Equal(t, "insufficient_space", resp["error"])
		assert.Contains(t, resp, "free_bytes")
	})
}

func TestMoveHandler(t *testing.T) {
	router := newRouter(t, fileConfig())
	dir := t.TempDir()
	src := filepath.Join(dir, "dtabridge-1.bin")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))
	dst := filepath.Join(dir, "nested", "deeper", "final.bin")

	b, err := json.Marshal(map[string]string{"type": "move", "src": src, "dst": dst})
	require.NoError(t, err)
	got := dispatch(t, router, string(b))

	dstJSON, _ := json.Marshal(dst)
	assert.JSONEq(t, `{"ok":true,"path":`+string(dstJSON)+`}`, got)
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.NoFileExists(t, src)

	got = dispatch(t, router, `{"type":"move","dst":"/x"}`)
	assert.JSONEq(t, `{"ok":false,"error":"missing src"}`, got)
}

func TestChooseFolderHandler(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	homeJSON, _ := json.Marshal(home)

	t.Run("selected", func(t *testing.T) {
		chooser := mocks.NewMockFolderChooser(t)
		chooser.EXPECT().Choose(mock.Anything, "/start").Return("/picked", nil)
		chooser.EXPECT().Name().Return("zenity").Maybe()
		router := newRouter(t, Config{ChooseFolderUC: usecase.NewChooseFolderUseCase(chooser)})

		got := dispatch(t, router, `{"type":"choose_folder","default":"/start"}`)
		assert.JSONEq(t, `{"ok":true,"path":"/picked"}`, got)
	})

	t.Run("dismissed", func(t *testing.T) {
		chooser := mocks.NewMockFolderChooser(t)
		chooser.EXPECT().Choose(mock.Anything, "").Return("", port.ErrNoSelection)
		chooser.EXPECT().Name().Return("zenity").Maybe()
		router := newRouter(t, Config{ChooseFolderUC: usecase.NewChooseFolderUseCase(chooser)})

		got := dispatch(t, router, `{"type":"choose_folder"}`)
		assert.JSONEq(t, `{"ok":false,"error":"no_selection","fallback":`+string(homeJSON)+`}`, got)
	})
}

func TestRegisterAll_SkipsMissingDependencies(t *testing.T) {
	router := newRouter(t, Config{})
	assert.Empty(t, router.Types())
	assert.True(t, strings.Contains(dispatch(t, router, `{"type":"move"}`), "unknown type"))
}
