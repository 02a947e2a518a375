package acquire

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Payload carries the textual flavors a drag-and-drop or paste can deliver
// when no file is attached.
type Payload struct {
	HTML    string // text/html fragment
	URIList string // text/uri-list
	Text    string // text/plain
}

// ExtractSource resolves the image source URL from a drop payload. Priority:
// an <img> source inside the HTML fragment, then the first URI-list entry,
// then plain text when it is an absolute http(s) URL or a data URI. A drop
// with no candidate is a no-op, not an error.
func ExtractSource(p Payload) (string, bool) {
	if src := firstImageSrc(p.HTML); src != "" {
		return src, true
	}
	if uri := firstURIListEntry(p.URIList); uri != "" {
		return uri, true
	}
	text := strings.TrimSpace(p.Text)
	if isLoadableText(text) {
		return text, true
	}
	return "", false
}

// firstImageSrc returns the src attribute of the first <img> element in an
// HTML fragment, or "".
func firstImageSrc(fragment string) string {
	if fragment == "" {
		return ""
	}

	tz := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch tz.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tz.TagName()
			if string(name) != "img" || !hasAttr {
				continue
			}
			for {
				key, val, more := tz.TagAttr()
				if string(key) == "src" && len(val) > 0 {
					return string(val)
				}
				if !more {
					break
				}
			}
		}
	}
}

// firstURIListEntry returns the first non-comment line of a text/uri-list
// payload. Lines starting with '#' are comments per RFC 2483.
func firstURIListEntry(list string) string {
	for _, line := range strings.Split(list, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line
	}
	return ""
}

// isLoadableText reports whether plain dropped text can serve as an image
// source: an absolute http(s) URL or an embedded data URI.
func isLoadableText(s string) bool {
	if s == "" {
		return false
	}
	if strings.HasPrefix(s, "data:") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
