package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSite writes files (path -> content) under a temp root.
func newSite(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandler_ServesExactBytes(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	body := "export default function gauge() {}\n"
	root := newSite(t, map[string]string{"widgets/gauge.js": body})
	srv := New(root, discardLogger())

	// --- Act ---
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/widgets/gauge.js", nil))

	// --- Assert ---
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, body, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Type"), "javascript")
}

func TestHandler_MissingPathIsNotFound(t *testing.T) {
	t.Parallel()

	srv := New(newSite(t, nil), discardLogger())

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope.js", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_DirectoryListing(t *testing.T) {
	t.Parallel()

	root := newSite(t, map[string]string{
		"widgets/text.js":   "t",
		"widgets/slider.js": "s",
	})
	srv := New(root, discardLogger())

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/widgets/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "slider.js")
	assert.Contains(t, rr.Body.String(), "text.js")
}

func TestHandler_IndexServedForRoot(t *testing.T) {
	t.Parallel()

	root := newSite(t, map[string]string{"index.html": "<h1>dashboard</h1>"})
	srv := New(root, discardLogger())

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "<h1>dashboard</h1>", rr.Body.String())
}

func TestHandler_LogsRequests(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	srv := New(newSite(t, map[string]string{"widgets.json": `["a"]`}), logger)

	srv.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/widgets.json", nil))
	srv.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	out := buf.String()
	assert.Contains(t, out, "path=/widgets.json")
	assert.Contains(t, out, "status=200")
	assert.Contains(t, out, "bytes=5")
	assert.Contains(t, out, "path=/missing")
	assert.Contains(t, out, "status=404")
}

func TestServe_EndToEnd(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := newSite(t, map[string]string{"widgets.json": `["a","b"]`})
	srv := New(root, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ln, err := Listen(ctx, "127.0.0.1:0")
	require.NoError(t, err)
	base := "http://" + ln.Addr().String()

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	// --- Act ---
	resp, err := http.Get(base + "/widgets.json")
	require.NoError(t, err)
	got, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)

	missing, err := http.Get(base + "/does-not-exist")
	require.NoError(t, err)
	missing.Body.Close()

	// --- Assert ---
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `["a","b"]`, string(got))
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}

	// The listener is released.
	_, err = net.DialTimeout("tcp", ln.Addr().String(), time.Second)
	assert.Error(t, err)
}

func TestListen_PortInUse(t *testing.T) {
	t.Parallel()

	first, err := Listen(context.Background(), "127.0.0.1:0")
	require.NoError(t, err)
	defer first.Close()

	_, err = Listen(context.Background(), first.Addr().String())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen on")
}

func TestListen_RebindAfterClose(t *testing.T) {
	t.Parallel()

	first, err := Listen(context.Background(), "127.0.0.1:0")
	require.NoError(t, err)
	addr := first.Addr().String()

	// Leave a connection behind so the port has TIME_WAIT state.
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	accepted, err := first.Accept()
	require.NoError(t, err)
	accepted.Close()
	conn.Close()
	require.NoError(t, first.Close())

	second, err := Listen(context.Background(), addr)
	require.NoError(t, err)
	second.Close()
}

func TestListenAndServe_BindFailure(t *testing.T) {
	t.Parallel()

	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	srv := New(t.TempDir(), discardLogger())
	err = srv.ListenAndServe(context.Background(), taken.Addr().String())

	require.Error(t, err)
	var opErr *net.OpError
	assert.True(t, errors.As(err, &opErr))
}
