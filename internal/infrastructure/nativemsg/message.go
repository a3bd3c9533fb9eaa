package nativemsg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Message types understood by the host.
const (
	TypePreroll        = "preroll"
	TypeDownload       = "download"
	TypeDownloadStart  = "download_start"
	TypeDownloadPause  = "download_pause"
	TypeDownloadResume = "download_resume"
	TypeDownloadCancel = "download_cancel"
	TypeMove           = "move"
	TypeChooseFolder   = "choose_folder"
	TypeStatPath       = "stat_path"
)

// Envelope is the part of every inbound message the router looks at.
type Envelope struct {
	Type string `json:"type"`
}

// Header is one request header entry as sent by the extension.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HeaderList decodes leniently: entries that are not objects with a string
// name and a value are dropped instead of failing the whole message.
type HeaderList []Header

func (l *HeaderList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*l = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("headers must be a list: %w", err)
	}
	out := make(HeaderList, 0, len(raw))
	for _, item := range raw {
		var entry map[string]json.RawMessage
		if err := json.Unmarshal(item, &entry); err != nil {
			continue
		}
		var name string
		if err := json.Unmarshal(entry["name"], &name); err != nil || name == "" {
			continue
		}
		rawValue, ok := entry["value"]
		if !ok {
			continue
		}
		out = append(out, Header{Name: name, Value: scalarString(rawValue)})
	}
	*l = out
	return nil
}

// scalarString renders a JSON string without quotes and anything else verbatim.
func scalarString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// FlexInt64 accepts a JSON number or a numeric string. null and "" decode to 0.
type FlexInt64 int64

func (n *FlexInt64) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		v = int64(f)
	}
	*n = FlexInt64(v)
	return nil
}

// PrerollRequest probes a URL's response headers.
type PrerollRequest struct {
	Type     string     `json:"type" jsonschema:"const=preroll"`
	URL      string     `json:"url" jsonschema:"required"`
	Referrer string     `json:"referrer,omitempty"`
	Headers  HeaderList `json:"headers,omitempty"`
	Range    string     `json:"range,omitempty" jsonschema:"description=Range header value; defaults to bytes=0-1"`
}

// DownloadStartRequest launches an interactive transfer.
type DownloadStartRequest struct {
	Type     string     `json:"type" jsonschema:"const=download_start"`
	URL      string     `json:"url" jsonschema:"required"`
	Method   string     `json:"method,omitempty"`
	Body     *string    `json:"body,omitempty"`
	Referrer string     `json:"referrer,omitempty"`
	Headers  HeaderList `json:"headers,omitempty"`
	Filename string     `json:"filename,omitempty" jsonschema:"description=Used for the temp file extension when path is empty"`
	Path     string     `json:"path,omitempty" jsonschema:"description=Destination file; a temp file is created when empty"`
	Offset   FlexInt64  `json:"offset,omitempty" jsonschema:"description=Bytes already present in path; resumes with a Range request"`
}

// ControlRequest addresses an existing transfer (pause, resume, cancel).
type ControlRequest struct {
	Type string `json:"type" jsonschema:"enum=download_pause,enum=download_resume,enum=download_cancel"`
	ID   string `json:"id" jsonschema:"required"`
}

// MoveRequest relocates a finished file.
type MoveRequest struct {
	Type string `json:"type" jsonschema:"const=move"`
	Src  string `json:"src" jsonschema:"required"`
	Dst  string `json:"dst" jsonschema:"required"`
}

// ChooseFolderRequest opens the OS directory picker.
type ChooseFolderRequest struct {
	Type    string `json:"type" jsonschema:"const=choose_folder"`
	Default string `json:"default,omitempty"`
}

// StatPathRequest validates a destination directory.
type StatPathRequest struct {
	Type          string    `json:"type" jsonschema:"const=stat_path"`
	Path          string    `json:"path" jsonschema:"required"`
	RequiredBytes FlexInt64 `json:"required_bytes,omitempty"`
	AutoCreate    bool      `json:"auto_create,omitempty"`
}

// DecodeRequest unmarshals a whole inbound message into a typed request.
func DecodeRequest[T any](payload json.RawMessage) (T, error) {
	var req T
	if err := json.Unmarshal(payload, &req); err != nil {
		return req, fmt.Errorf("invalid request: %w", err)
	}
	return req, nil
}
