package api_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/0xalexb/hjarta-kv/api"
	yamlcodec "github.com/0xalexb/hjarta-kv/codec/yaml"
	"github.com/0xalexb/hjarta-kv/registry"
	"github.com/0xalexb/hjarta-kv/store/file"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) (*api.Handler, string) {
	t.Helper()

	baseDir := t.TempDir()

	reg, err := registry.New(
		registry.Config{BaseDir: baseDir},
		file.NewStore(yamlcodec.NewCodec()),
		slog.New(slog.DiscardHandler),
	)
	require.NoError(t, err)

	return api.NewHandler(reg), baseDir
}

func serve(t *testing.T, handler http.Handler, method, target, body string) (int, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var decoded map[string]any

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))

	return rec.Code, decoded
}

func TestHandler_SetGetDelete(t *testing.T) {
	t.Parallel()

	handler, _ := newHandler(t)

	status, body := serve(t, handler, http.MethodPut, "/documents/settings/server.port", "8080")
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["previous"])

	status, body = serve(t, handler, http.MethodPut, "/documents/settings/server.port", "9090")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 8080, body["previous"])

	status, body = serve(t, handler, http.MethodGet, "/documents/settings/server.port", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 9090, body["value"])
	assert.Equal(t, "server.port", body["path"])

	status, body = serve(t, handler, http.MethodGet, "/documents/settings", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"server"}, body["keys"])

	status, body = serve(t, handler, http.MethodDelete, "/documents/settings/server.port", "")
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 9090, body["previous"])

	status, _ = serve(t, handler, http.MethodGet, "/documents/settings/server.port", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHandler_PutStructuredValue(t *testing.T) {
	t.Parallel()

	handler, _ := newHandler(t)

	status, _ := serve(t, handler, http.MethodPut, "/documents/settings/window", `{"width": 1280, "title": "main"}`)
	require.Equal(t, http.StatusOK, status)

	status, body := serve(t, handler, http.MethodGet, "/documents/settings/window.title", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "main", body["value"])
}

func TestHandler_Errors(t *testing.T) {
	t.Parallel()

	handler, _ := newHandler(t)

	status, _ := serve(t, handler, http.MethodPut, "/documents/settings/a", "5")
	require.Equal(t, http.StatusOK, status)

	status, body := serve(t, handler, http.MethodGet, "/documents/settings/a.b", "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body["error"], "not a mapping")

	status, _ = serve(t, handler, http.MethodGet, "/documents/settings/missing.key", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = serve(t, handler, http.MethodPut, "/documents/settings/a", `{"broken": `)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHandler_RejectsNamesOutsideBaseDir(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{name: "put", method: http.MethodPut, target: "/documents/..%2Fescaped/k", body: "1"},
		{name: "get", method: http.MethodGet, target: "/documents/..%2Fescaped/k"},
		{name: "delete", method: http.MethodDelete, target: "/documents/..%2Fescaped/k"},
		{name: "dump", method: http.MethodGet, target: "/documents/..%2F..%2Fescaped"},
		{name: "save", method: http.MethodPost, target: "/documents/..%2Fescaped/save"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			handler, baseDir := newHandler(t)

			status, body := serve(t, handler, testCase.method, testCase.target, testCase.body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Contains(t, body["error"], "inside the base directory")

			status, body = serve(t, handler, http.MethodPost, "/save", "")
			require.Equal(t, http.StatusOK, status)
			assert.Empty(t, body["saved"])
			assert.NoFileExists(t, filepath.Join(baseDir, "..", "escaped.yaml"))
		})
	}
}

func TestHandler_CorruptDocumentIsUnavailable(t *testing.T) {
	t.Parallel()

	handler, baseDir := newHandler(t)

	err := os.WriteFile(filepath.Join(baseDir, "broken.yaml"), []byte("- a\n- b\n"), 0o600)
	require.NoError(t, err)

	status, _ := serve(t, handler, http.MethodGet, "/documents/broken/a", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)

	status, _ = serve(t, handler, http.MethodPost, "/documents/broken/save", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestHandler_Save(t *testing.T) {
	t.Parallel()

	handler, baseDir := newHandler(t)

	status, _ := serve(t, handler, http.MethodPut, "/documents/first/x", "1")
	require.Equal(t, http.StatusOK, status)

	status, _ = serve(t, handler, http.MethodPut, "/documents/second/y", "2")
	require.Equal(t, http.StatusOK, status)

	status, body := serve(t, handler, http.MethodPost, "/documents/first/save", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"first"}, body["saved"])
	assert.FileExists(t, filepath.Join(baseDir, "first.yaml"))
	assert.NoFileExists(t, filepath.Join(baseDir, "second.yaml"))

	status, body = serve(t, handler, http.MethodPost, "/save", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []any{"first", "second"}, body["saved"])
	assert.FileExists(t, filepath.Join(baseDir, "second.yaml"))
}
