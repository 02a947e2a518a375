// Package acquire resolves image sources into grid cells: local files,
// remote URLs through a cross-origin fallback chain, and drop payloads.
package acquire

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"

	"ninegrid/internal/grid"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultProxyBase is the public image proxy used for the second fallback
// stage. Best effort: no authentication, no SLA.
const DefaultProxyBase = "https://images.weserv.nl/"

// ErrUnavailable is returned when a remote image could not be obtained at
// any fallback stage. The target cell keeps its prior contents.
var ErrUnavailable = errors.New("image unavailable at every stage")

// Loader resolves image sources and commits the results to a session.
type Loader struct {
	session   *grid.Session
	client    *http.Client
	proxyBase string
	origin    string
}

// NewLoader creates a loader bound to a session. The HTTP client carries no
// timeout: a hung request leaves the chain waiting at that stage.
func NewLoader(session *grid.Session) *Loader {
	return &Loader{
		session:   session,
		client:    &http.Client{},
		proxyBase: DefaultProxyBase,
		origin:    "https://ninegrid.local",
	}
}

// SetClient replaces the HTTP client used for remote loads.
func (l *Loader) SetClient(client *http.Client) {
	if client != nil {
		l.client = client
	}
}

// SetProxyBase replaces the image proxy base URL.
func (l *Loader) SetProxyBase(base string) {
	if base != "" {
		l.proxyBase = base
	}
}

// LoadFile reads a local image file into the cell. Local files are
// same-origin equivalent and never taint.
func (l *Loader) LoadFile(index int, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("read image file failed", "cell", index, "path", path, "err", err)
		return fmt.Errorf("read image file: %w", err)
	}
	return l.LoadBytes(index, data)
}

// LoadReader reads a full image stream into the cell, untainted.
func (l *Loader) LoadReader(index int, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		slog.Warn("read image stream failed", "cell", index, "err", err)
		return fmt.Errorf("read image stream: %w", err)
	}
	return l.LoadBytes(index, data)
}

// LoadBytes decodes in-memory image data into the cell, untainted. On
// decode failure the cell is left unchanged; the failure is logged, never
// dialogued.
func (l *Loader) LoadBytes(index int, data []byte) error {
	img, err := decodeImage(data)
	if err != nil {
		slog.Warn("image decode failed", "cell", index, "err", err)
		return fmt.Errorf("decode image: %w", err)
	}

	l.session.SetCell(index, img, false)
	return nil
}

// LoadURL resolves a remote image into the cell through the three-stage
// fallback chain. Data URIs decode locally and never taint. A total failure
// leaves the cell's prior contents untouched.
func (l *Loader) LoadURL(ctx context.Context, index int, rawURL string) error {
	if strings.HasPrefix(rawURL, "data:") {
		data, err := decodeDataURI(rawURL)
		if err != nil {
			slog.Warn("data URI decode failed", "cell", index, "err", err)
			return err
		}
		return l.LoadBytes(index, data)
	}

	img, stage, tainted, err := l.resolveURL(ctx, rawURL)
	if err != nil {
		slog.Warn("image load failed at every stage", "cell", index, "url", rawURL)
		return err
	}

	l.session.SetCell(index, img, tainted)
	slog.Debug("image loaded", "cell", index, "stage", stage, "tainted", tainted)
	return nil
}

// Probe runs the fallback chain without touching the session and reports
// which stage succeeded and whether the result would taint.
func (l *Loader) Probe(ctx context.Context, rawURL string) (stage string, tainted bool, err error) {
	_, stage, tainted, err = l.resolveURL(ctx, rawURL)
	return stage, tainted, err
}

// fetchStage is one step of the fallback chain. Stages run in strict order;
// each failure advances silently to the next.
type fetchStage struct {
	name   string
	taint  bool
	target func(rawURL string) string
	grant  bool
}

func (l *Loader) stages() []fetchStage {
	direct := func(rawURL string) string { return rawURL }
	return []fetchStage{
		{name: "direct-grant", taint: false, target: direct, grant: true},
		{name: "proxy-grant", taint: false, target: l.proxyURL, grant: true},
		{name: "direct-plain", taint: true, target: direct, grant: false},
	}
}

func (l *Loader) resolveURL(ctx context.Context, rawURL string) (image.Image, string, bool, error) {
	for _, stage := range l.stages() {
		data, err := l.fetch(ctx, stage.target(rawURL), stage.grant)
		if err != nil {
			slog.Debug("fetch stage missed", "stage", stage.name, "url", rawURL, "err", err)
			continue
		}

		img, err := decodeImage(data)
		if err != nil {
			slog.Debug("fetch stage returned undecodable data", "stage", stage.name, "url", rawURL, "err", err)
			continue
		}

		return img, stage.name, stage.taint, nil
	}

	return nil, "", false, fmt.Errorf("%w: %s", ErrUnavailable, rawURL)
}

// fetch performs a GET. When grant is set the request announces our origin
// and the response must carry a matching cross-origin grant; without it any
// 2xx body is accepted.
func (l *Loader) fetch(ctx context.Context, target string, grant bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	if grant {
		req.Header.Set("Origin", l.origin)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	if grant && !originGranted(resp.Header.Get("Access-Control-Allow-Origin"), l.origin) {
		return nil, fmt.Errorf("no cross-origin grant")
	}

	return io.ReadAll(resp.Body)
}

// originGranted checks an Access-Control-Allow-Origin header value.
func originGranted(allow, origin string) bool {
	return allow == "*" || allow == origin
}

// proxyURL rewrites a target URL into a query-parameterized proxy request.
// The proxy takes the target without its scheme.
func (l *Loader) proxyURL(rawURL string) string {
	target := strings.TrimPrefix(rawURL, "https://")
	target = strings.TrimPrefix(target, "http://")

	base := l.proxyBase
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + "?url=" + url.QueryEscape(target)
}

// decodeImage decodes image bytes and normalizes the result to NRGBA.
func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return imaging.Clone(img), nil
}
