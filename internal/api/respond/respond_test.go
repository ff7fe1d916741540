package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, []byte(`{"ok":true}`), `W/"abcd"`, time.Minute, true)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, `W/"abcd"`, rec.Header().Get("ETag"))
	require.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	require.Equal(t, "public, max-age=60, stale-while-revalidate=30", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestWriteNotModified(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteNotModified(rec, `W/"abcd"`)
	require.Equal(t, http.StatusNotModified, rec.Code)
	require.Equal(t, `W/"abcd"`, rec.Header().Get("ETag"))
	require.Empty(t, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorDetail(rec, http.StatusUnprocessableEntity, "PARSE_FAILED", "Table extraction failed", "selector matched nothing")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "PARSE_FAILED", resp.Error.Code)
	require.Equal(t, "Table extraction failed", resp.Error.Message)
	require.Equal(t, "selector matched nothing", resp.Error.Detail)
}
