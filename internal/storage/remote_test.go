package storage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteBackendRoundTrip(t *testing.T) {
	host, srv := newFakeHost(t)
	b := NewRemoteMessageBackend(NewHTTPSender(srv.URL, time.Second, nil))
	ctx := context.Background()

	_, ok, err := b.Get(ctx, "prompts")
	assert.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Set(ctx, "prompts", []byte(`[{"id":"p1"}]`)))
	v, ok, err := b.Get(ctx, "prompts")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"p1"}]`, string(v))
	assert.Equal(t, []string{OpGet, OpSet, OpGet}, host.messages)
}

func TestRemoteBackendPropagatesRejection(t *testing.T) {
	host, srv := newFakeHost(t)
	host.reject = true
	b := NewRemoteMessageBackend(NewHTTPSender(srv.URL, time.Second, nil))

	err := b.Set(context.Background(), "prompts", []byte(`[]`))
	assert.ErrorIs(t, err, ErrHostRejected)
	assert.False(t, IsFault(err))

	_, _, err = b.Get(context.Background(), "prompts")
	assert.ErrorIs(t, err, ErrHostRejected)
}

func TestRemoteBackendRejectsNonJSON(t *testing.T) {
	_, srv := newFakeHost(t)
	b := NewRemoteMessageBackend(NewHTTPSender(srv.URL, time.Second, nil))
	assert.ErrorIs(t, b.Set(context.Background(), "prompts", []byte("{oops")), ErrCorrupt)
}

func TestHTTPSenderStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTPSender(srv.URL, time.Second, nil).Send(context.Background(), OpPing, nil)
	assert.True(t, errors.Is(err, ErrHostRejected))
}

func TestHTTPSenderUnreachable(t *testing.T) {
	_, err := NewHTTPSender("http://127.0.0.1:1", time.Second, nil).Send(context.Background(), OpPing, nil)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrHostRejected))
}
