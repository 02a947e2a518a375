package acquire_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"ninegrid/internal/acquire"
	"ninegrid/internal/grid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes returns a small encoded PNG for serving from test servers.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

// servePNG writes an image response, optionally with a cross-origin grant.
func servePNG(t *testing.T, w http.ResponseWriter, grant bool) {
	t.Helper()
	if grant {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(pngBytes(t))
}

func newLoader(t *testing.T, proxyBase string) (*acquire.Loader, *grid.Session) {
	t.Helper()
	session := grid.NewSession()
	loader := acquire.NewLoader(session)
	loader.SetClient(&http.Client{})
	if proxyBase != "" {
		loader.SetProxyBase(proxyBase)
	}
	return loader, session
}

func TestLoadURLDirectGrant(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("Origin"))
		servePNG(t, w, true)
	}))
	defer target.Close()

	loader, session := newLoader(t, "")

	require.NoError(t, loader.LoadURL(context.Background(), 0, target.URL+"/img.png"))
	assert.NotNil(t, session.CellImage(0))
	assert.False(t, session.Tainted(0))
}

func TestLoadURLProxyFallback(t *testing.T) {
	// Target refuses to grant; the proxy rewrite is the second stage.
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Origin") != "" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		servePNG(t, w, false)
	}))
	defer target.Close()

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("url"))
		servePNG(t, w, true)
	}))
	defer proxy.Close()

	loader, session := newLoader(t, proxy.URL)

	require.NoError(t, loader.LoadURL(context.Background(), 4, target.URL+"/img.png"))
	assert.NotNil(t, session.CellImage(4))
	assert.False(t, session.Tainted(4))
}

func TestLoadURLPlainFallbackTaints(t *testing.T) {
	// No grant anywhere: the final plain fetch succeeds but taints the cell.
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		servePNG(t, w, false)
	}))
	defer target.Close()

	proxy := httptest.NewServer(http.NotFoundHandler())
	defer proxy.Close()

	loader, session := newLoader(t, proxy.URL)

	require.NoError(t, loader.LoadURL(context.Background(), 2, target.URL+"/img.png"))
	assert.NotNil(t, session.CellImage(2))
	assert.True(t, session.Tainted(2))
}

func TestLoadURLGrantClearsPriorTaint(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		servePNG(t, w, true)
	}))
	defer target.Close()

	loader, session := newLoader(t, "")
	session.SetCell(3, image.NewNRGBA(image.Rect(0, 0, 2, 2)), true)
	require.True(t, session.Tainted(3))

	require.NoError(t, loader.LoadURL(context.Background(), 3, target.URL+"/img.png"))
	assert.False(t, session.Tainted(3))
}

func TestLoadURLTotalFailureLeavesCell(t *testing.T) {
	target := httptest.NewServer(http.NotFoundHandler())
	defer target.Close()

	proxy := httptest.NewServer(http.NotFoundHandler())
	defer proxy.Close()

	loader, session := newLoader(t, proxy.URL)
	prior := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	session.SetCell(6, prior, true)

	err := loader.LoadURL(context.Background(), 6, target.URL+"/missing.png")
	require.ErrorIs(t, err, acquire.ErrUnavailable)

	// The prior bitmap and its mark stay untouched.
	assert.Equal(t, prior, session.CellImage(6))
	assert.True(t, session.Tainted(6))
}

func TestLoadURLDataURI(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t))

	loader, session := newLoader(t, "")

	require.NoError(t, loader.LoadURL(context.Background(), 8, uri))
	assert.NotNil(t, session.CellImage(8))
	assert.False(t, session.Tainted(8))
}

func TestLoadBytesDecodeFailure(t *testing.T) {
	loader, session := newLoader(t, "")
	prior := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	session.SetCell(1, prior, false)

	err := loader.LoadBytes(1, []byte("definitely not an image"))
	require.Error(t, err)
	assert.Equal(t, prior, session.CellImage(1))
}

func TestLoadReader(t *testing.T) {
	loader, session := newLoader(t, "")

	require.NoError(t, loader.LoadReader(5, bytes.NewReader(pngBytes(t))))
	assert.NotNil(t, session.CellImage(5))
	assert.False(t, session.Tainted(5))
}

func TestProbe(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		servePNG(t, w, false)
	}))
	defer target.Close()

	proxy := httptest.NewServer(http.NotFoundHandler())
	defer proxy.Close()

	loader, session := newLoader(t, proxy.URL)

	stage, tainted, err := loader.Probe(context.Background(), target.URL+"/img.png")
	require.NoError(t, err)
	assert.Equal(t, "direct-plain", stage)
	assert.True(t, tainted)

	// Probing never touches the session.
	assert.True(t, session.Empty())
}
