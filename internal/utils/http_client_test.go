package utils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingTransportKeepsBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Write([]byte("echo:" + string(body)))
	}))
	defer srv.Close()

	core, logs := observer.New(zap.DebugLevel)
	client := NewHTTPClient(time.Second, zap.New(core))

	resp, err := client.Post(srv.URL, "text/plain", strings.NewReader("hello"))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "echo:hello", string(body))
	assert.Equal(t, 1, logs.FilterMessage("host request").Len())
	assert.Equal(t, 1, logs.FilterMessage("host response").Len())
}

func TestLoggingTransportLogsFailures(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	client := NewHTTPClient(time.Second, zap.New(core))

	_, err := client.Get("http://127.0.0.1:1/unreachable")
	assert.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("host request failed").Len())
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", maxLoggedBody+10)
	assert.True(t, strings.HasSuffix(truncate([]byte(long)), "...(truncated)"))
	assert.Equal(t, "short", truncate([]byte("short")))
}
