package download

import (
	"mime"
	"net/url"
	"path"
	"strings"
)

// maxSuffixLen bounds the extension copied onto temp file names.
const maxSuffixLen = 16

// canonicalExt pins MIME types whose system extension list is ordered
// alphabetically (text/html would otherwise give ".ehtml").
var canonicalExt = map[string]string{
	"text/html":                ".html",
	"text/plain":               ".txt",
	"text/xml":                 ".xml",
	"image/jpeg":               ".jpg",
	"image/svg+xml":            ".svg",
	"audio/mpeg":               ".mp3",
	"video/mp4":                ".mp4",
	"video/mp2t":               ".ts",
	"application/octet-stream": ".bin",
}

// TempSuffix returns the extension to give a temp destination file.
// Sources in order: the caller supplied filename, the last segment of the
// request URL, the response Content-Type. Empty when none yields one.
func TempSuffix(filename, rawURL, contentType string) string {
	if ext := nameExt(filename); ext != "" {
		return ext
	}
	if ext := nameExt(urlBase(rawURL)); ext != "" {
		return ext
	}
	return mimeExt(contentType)
}

// nameExt is the extension of name's last path element. Both slash styles
// count as separators so a Windows path sent from the browser is stripped too.
func nameExt(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	if name == "" {
		return ""
	}
	ext := path.Ext(path.Base(name))
	if ext == "." || len(ext) > maxSuffixLen || strings.ContainsAny(ext, " \t") {
		return ""
	}
	return ext
}

func urlBase(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base := path.Base(u.Path)
	if base == "." || base == "/" {
		return ""
	}
	return base
}

func mimeExt(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	if ext, ok := canonicalExt[mediaType]; ok {
		return ext
	}
	exts, err := mime.ExtensionsByType(mediaType)
	if err != nil || len(exts) == 0 {
		return ""
	}
	return exts[0]
}
