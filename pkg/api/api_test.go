package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lil-go/pkg/store"
	"lil-go/pkg/transform"
)

func newTestApi(t *testing.T) *BufferApi {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return NewBufferApi(st, 8, transform.NewGzipTransform())
}

func do(t *testing.T, a *BufferApi, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.Api.ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) View {
	t.Helper()
	var v View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestPutAndGet(t *testing.T) {
	a := newTestApi(t)

	rec := do(t, a, http.MethodPut, "/buffers/word", `{"value":"overflowing"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	v := decodeView(t, rec)
	require.Equal(t, "overflo", v.Value)
	require.Equal(t, 8, v.Budget)
	require.True(t, v.Truncated)

	rec = do(t, a, http.MethodGet, "/buffers/word", "")
	require.Equal(t, http.StatusOK, rec.Code)
	v = decodeView(t, rec)
	require.Equal(t, "overflo", v.Value)
	require.Equal(t, 0, v.Available)

	rec = do(t, a, http.MethodGet, "/buffers/absent", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, a, http.MethodPut, "/buffers/odd", `{"budget":10,"value":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEditOperations(t *testing.T) {
	a := newTestApi(t)
	require.Equal(t, http.StatusOK, do(t, a, http.MethodPut, "/buffers/n", `{"budget":16,"value":"58"}`).Code)

	steps := []struct {
		path, body, want string
	}{
		{"/buffers/n/insert", `{"index":0,"count":1,"fill":"1"}`, "158"},
		{"/buffers/n/insert", `{"index":1,"value":"000"}`, "100058"},
		{"/buffers/n/append", `{"value":"!"}`, "100058!"},
		{"/buffers/n/erase", `{"index":1,"count":3}`, "158!"},
		{"/buffers/n/push", `{"value":"?"}`, "158!?"},
		{"/buffers/n/clear", "", ""},
	}
	for _, st := range steps {
		rec := do(t, a, http.MethodPost, st.path, st.body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.Equal(t, st.want, decodeView(t, rec).Value, st.path)
	}
}

func TestPreconditionFailures(t *testing.T) {
	a := newTestApi(t)
	require.Equal(t, http.StatusOK, do(t, a, http.MethodPut, "/buffers/p", `{"value":"a"}`).Code)

	rec := do(t, a, http.MethodPost, "/buffers/p/pop", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var popped popResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &popped))
	require.Equal(t, "a", popped.Popped)
	require.Equal(t, 0, popped.Len)

	require.Equal(t, http.StatusConflict, do(t, a, http.MethodPost, "/buffers/p/pop", "").Code)

	require.Equal(t, http.StatusOK, do(t, a, http.MethodPut, "/buffers/p", `{"value":"1234567"}`).Code)
	require.Equal(t, http.StatusConflict, do(t, a, http.MethodPost, "/buffers/p/push", `{"value":"8"}`).Code)
	require.Equal(t, http.StatusBadRequest, do(t, a, http.MethodPost, "/buffers/p/push", `{"value":"89"}`).Code)
	require.Equal(t, http.StatusNotFound, do(t, a, http.MethodPost, "/buffers/q/push", `{"value":"8"}`).Code)
}

func TestListAndDelete(t *testing.T) {
	a := newTestApi(t)
	rec := do(t, a, http.MethodGet, "/buffers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	do(t, a, http.MethodPut, "/buffers/x", `{"value":"1"}`)
	do(t, a, http.MethodPut, "/buffers/y", `{"value":"22"}`)
	require.Equal(t, http.StatusNoContent, do(t, a, http.MethodDelete, "/buffers/x", "").Code)
	require.Equal(t, http.StatusNotFound, do(t, a, http.MethodDelete, "/buffers/x", "").Code)

	rec = do(t, a, http.MethodGet, "/buffers", "")
	var entries []store.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "y", entries[0].Name)
	require.Equal(t, 2, entries[0].Len)
}

func TestSnapshotRoundTrip(t *testing.T) {
	src := newTestApi(t)
	do(t, src, http.MethodPut, "/buffers/s", `{"budget":32,"value":"persist me"}`)

	rec := do(t, src, http.MethodGet, "/snapshot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	snapshot := rec.Body.Bytes()

	dst := newTestApi(t)
	req := httptest.NewRequest(http.MethodPost, "/snapshot", bytes.NewReader(snapshot))
	rec = httptest.NewRecorder()
	dst.Api.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"imported":1}`, rec.Body.String())

	rec = do(t, dst, http.MethodGet, "/buffers/s", "")
	require.Equal(t, "persist me", decodeView(t, rec).Value)

	req = httptest.NewRequest(http.MethodPost, "/snapshot", strings.NewReader("garbage"))
	rec = httptest.NewRecorder()
	dst.Api.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
